package logic

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/catalog"
)

// OrderPlacer turns the current cart into a ledger entry.
type OrderPlacer struct {
	Cart    *CartStore
	Coupon  *CouponState
	Session *SessionState
	Ledger  *Ledger
	Catalog *catalog.Catalog
	Policy  PricingPolicy
	Logger  *zap.Logger

	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

// Quote prices the current cart.
func (p *OrderPlacer) Quote() Quote {
	return Price(p.Cart.Items(), p.Catalog, p.Coupon.Applied(), p.Policy)
}

// Precheck validates everything PlaceOrder would check, without mutating.
func (p *OrderPlacer) Precheck(method string) (User, ShippingMethod, error) {
	user, ok := p.Session.Current()
	if !ok {
		return User{}, "", NewUnauthenticated(ErrMsgNotSignedIn)
	}
	if len(Lines(p.Cart.Items(), p.Catalog)) == 0 {
		return User{}, "", NewFailedPrecondition(ErrMsgCartEmpty)
	}
	sm, err := ParseShippingMethod(method)
	if err != nil {
		return User{}, "", err
	}
	return user, sm, nil
}

// PlaceOrder snapshots the cart and its quote into a new order, records
// it at the front of the ledger, then clears the cart. The ledger write
// happens first; if clearing the cart then fails the order stands and the
// error is returned alongside it.
func (p *OrderPlacer) PlaceOrder(ctx context.Context, method string) (Order, error) {
	user, sm, err := p.Precheck(method)
	if err != nil {
		return Order{}, err
	}

	items := p.Cart.Items()
	lines := Lines(items, p.Catalog)
	quote := Price(items, p.Catalog, p.Coupon.Applied(), p.Policy)
	order := NewOrder(p.uniqueID(), user.ID, lines, quote, p.Coupon.Applied(), sm, p.now())

	if err := p.Ledger.Append(ctx, order); err != nil {
		return Order{}, err
	}
	logger := loggerOrNop(p.Logger)
	if err := p.Cart.Clear(ctx); err != nil {
		logger.Error("order recorded but cart not cleared", zap.String("order_id", order.ID), zap.Error(err))
		return order, fmt.Errorf("clear cart after order %s: %w", order.ID, err)
	}

	logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("customer_id", order.CustomerID),
		zap.Int("lines", len(order.Lines)),
		zap.String("total", order.Total.String()),
	)
	return order.clone(), nil
}

func (p *OrderPlacer) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *OrderPlacer) uniqueID() string {
	newID := p.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	for {
		id := newID()
		if id != "" && !p.Ledger.Contains(id) {
			return id
		}
	}
}
