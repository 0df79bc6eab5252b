package logic

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"storefront/storage"
)

// Ledger is the append-only order history, most recent first, persisted
// under storage.KeyOrders.
type Ledger struct {
	gw     storage.Gateway
	logger *zap.Logger
	orders []Order
}

func LoadLedger(ctx context.Context, gw storage.Gateway, logger *zap.Logger) (*Ledger, error) {
	l := &Ledger{gw: gw, logger: loggerOrNop(logger), orders: []Order{}}

	var saved []Order
	ok, err := loadBlob(ctx, gw, l.logger, storage.KeyOrders, &saved)
	if err != nil {
		return nil, err
	}
	if ok {
		seen := make(map[string]bool, len(saved))
		for _, o := range saved {
			if o.ID == "" || seen[o.ID] {
				l.logger.Warn("dropping stored order without unique id", zap.String("order_id", o.ID))
				continue
			}
			seen[o.ID] = true
			l.orders = append(l.orders, o)
		}
	}
	return l, nil
}

// Orders returns every order, most recent first.
func (l *Ledger) Orders() []Order {
	out := make([]Order, len(l.orders))
	for i, o := range l.orders {
		out[i] = o.clone()
	}
	return out
}

func (l *Ledger) Len() int {
	return len(l.orders)
}

func (l *Ledger) Find(id string) (Order, bool) {
	for _, o := range l.orders {
		if o.ID == id {
			return o.clone(), true
		}
	}
	return Order{}, false
}

func (l *Ledger) Contains(id string) bool {
	_, ok := l.Find(id)
	return ok
}

// Append puts o at the front of the ledger and persists it.
func (l *Ledger) Append(ctx context.Context, o Order) error {
	if o.ID == "" {
		return fmt.Errorf("order id is required")
	}
	if l.Contains(o.ID) {
		return fmt.Errorf("order %s already recorded", o.ID)
	}
	next := make([]Order, 0, len(l.orders)+1)
	next = append(next, o.clone())
	next = append(next, l.orders...)
	if err := saveBlob(ctx, l.gw, storage.KeyOrders, next); err != nil {
		return err
	}
	l.orders = next
	return nil
}
