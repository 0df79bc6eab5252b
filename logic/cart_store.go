package logic

import (
	"context"
	"math"

	"go.uber.org/zap"

	"storefront/catalog"
	"storefront/storage"
)

// MaxQuantity bounds the quantity held for a single product.
const MaxQuantity = math.MaxInt32

// CartStore maps product ids to positive quantities. Every mutation is
// persisted under storage.KeyCart before it becomes visible.
type CartStore struct {
	gw      storage.Gateway
	catalog *catalog.Catalog
	logger  *zap.Logger
	items   map[string]int
}

// LoadCartStore restores the cart from gw, falling back to an empty cart.
func LoadCartStore(ctx context.Context, gw storage.Gateway, cat *catalog.Catalog, logger *zap.Logger) (*CartStore, error) {
	s := &CartStore{
		gw:      gw,
		catalog: cat,
		logger:  loggerOrNop(logger),
		items:   make(map[string]int),
	}

	var saved map[string]int
	ok, err := loadBlob(ctx, gw, s.logger, storage.KeyCart, &saved)
	if err != nil {
		return nil, err
	}
	if ok {
		for id, qty := range saved {
			if qty <= 0 || qty > MaxQuantity {
				s.logger.Warn("dropping out-of-range cart entry", zap.String("product_id", id), zap.Int("quantity", qty))
				continue
			}
			s.items[id] = qty
		}
	}
	return s, nil
}

// Quantity returns the quantity held for id, zero when absent.
func (s *CartStore) Quantity(id string) int {
	return s.items[id]
}

// Items returns a copy of the mapping.
func (s *CartStore) Items() map[string]int {
	out := make(map[string]int, len(s.items))
	for id, qty := range s.items {
		out[id] = qty
	}
	return out
}

// Len returns the number of distinct entries.
func (s *CartStore) Len() int {
	return len(s.items)
}

// Count returns the total number of units in the cart.
func (s *CartStore) Count() int {
	n := 0
	for _, qty := range s.items {
		n += qty
	}
	return n
}

// IsEmpty reports whether the cart holds no entries.
func (s *CartStore) IsEmpty() bool {
	return len(s.items) == 0
}

// commit persists next and swaps it in only when the save succeeds.
func (s *CartStore) commit(ctx context.Context, next map[string]int) error {
	if err := saveBlob(ctx, s.gw, storage.KeyCart, next); err != nil {
		return err
	}
	s.items = next
	return nil
}
