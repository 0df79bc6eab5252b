package logic

import (
	"context"

	"go.uber.org/zap"

	"storefront/catalog"
	"storefront/storage"
)

// Wishlist is an ordered set of saved product ids, persisted under
// storage.KeyWishlist.
type Wishlist struct {
	gw      storage.Gateway
	catalog *catalog.Catalog
	logger  *zap.Logger
	ids     []string
}

func LoadWishlist(ctx context.Context, gw storage.Gateway, cat *catalog.Catalog, logger *zap.Logger) (*Wishlist, error) {
	w := &Wishlist{gw: gw, catalog: cat, logger: loggerOrNop(logger), ids: []string{}}

	var saved []string
	ok, err := loadBlob(ctx, gw, w.logger, storage.KeyWishlist, &saved)
	if err != nil {
		return nil, err
	}
	if ok {
		seen := make(map[string]bool, len(saved))
		for _, id := range saved {
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			w.ids = append(w.ids, id)
		}
	}
	return w, nil
}

// Items returns saved ids in the order they were added.
func (w *Wishlist) Items() []string {
	return append([]string{}, w.ids...)
}

func (w *Wishlist) Contains(id string) bool {
	return w.index(id) >= 0
}

func (w *Wishlist) index(id string) int {
	for i, v := range w.ids {
		if v == id {
			return i
		}
	}
	return -1
}

// Toggle adds id when absent and removes it when present. It returns
// whether id is saved afterwards.
func (w *Wishlist) Toggle(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, NewInvalidArgument(ErrMsgProductIDRequired)
	}
	if i := w.index(id); i >= 0 {
		return false, w.remove(ctx, i)
	}
	if _, ok := w.catalog.Find(id); !ok {
		return false, NewFailedPrecondition(ErrMsgProductNotFound)
	}
	next := append(w.Items(), id)
	if err := w.commit(ctx, next); err != nil {
		return false, err
	}
	w.logger.Debug("wishlist item saved", zap.String("product_id", id))
	return true, nil
}

// Remove deletes id if present.
func (w *Wishlist) Remove(ctx context.Context, id string) error {
	i := w.index(id)
	if i < 0 {
		return nil
	}
	return w.remove(ctx, i)
}

func (w *Wishlist) remove(ctx context.Context, i int) error {
	next := w.Items()
	next = append(next[:i], next[i+1:]...)
	return w.commit(ctx, next)
}

func (w *Wishlist) commit(ctx context.Context, next []string) error {
	if err := saveBlob(ctx, w.gw, storage.KeyWishlist, next); err != nil {
		return err
	}
	w.ids = next
	return nil
}
