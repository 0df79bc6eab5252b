// Package shop is the storefront composition root. Every outer surface
// (CLI, gRPC, feature tests) drives the stores through a Shop.
package shop

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"storefront/catalog"
	"storefront/logic"
	"storefront/metrics"
	"storefront/storage"
)

// Options configures Open. Zero values fall back to the defaults.
type Options struct {
	Policy        *logic.PricingPolicy
	CheckoutDelay *time.Duration
	Logger        *zap.Logger
	Metrics       *metrics.ShopMetrics
}

// Shop serializes every operation behind one mutex; the stores
// themselves are not safe for concurrent use.
type Shop struct {
	mu sync.Mutex

	catalog  *catalog.Catalog
	policy   logic.PricingPolicy
	cart     *logic.CartStore
	coupon   *logic.CouponState
	session  *logic.SessionState
	wishlist *logic.Wishlist
	ledger   *logic.Ledger
	placer   *logic.OrderPlacer
	checkout *logic.Checkout

	logger  *zap.Logger
	metrics *metrics.ShopMetrics
}

// Open loads every store from gw.
func Open(ctx context.Context, gw storage.Gateway, cat *catalog.Catalog, opts Options) (*Shop, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	policy := logic.DefaultPricingPolicy()
	if opts.Policy != nil {
		policy = *opts.Policy
	}
	delay := logic.DefaultCheckoutDelay
	if opts.CheckoutDelay != nil {
		delay = *opts.CheckoutDelay
	}

	s := &Shop{catalog: cat, policy: policy, logger: logger, metrics: opts.Metrics}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		s.cart, err = logic.LoadCartStore(gctx, gw, cat, logger.Named("cart"))
		return err
	})
	g.Go(func() (err error) {
		s.coupon, err = logic.LoadCouponState(gctx, gw, policy, logger.Named("coupon"))
		return err
	})
	g.Go(func() (err error) {
		s.session, err = logic.LoadSessionState(gctx, gw, logger.Named("session"))
		return err
	})
	g.Go(func() (err error) {
		s.wishlist, err = logic.LoadWishlist(gctx, gw, cat, logger.Named("wishlist"))
		return err
	})
	g.Go(func() (err error) {
		s.ledger, err = logic.LoadLedger(gctx, gw, logger.Named("ledger"))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load storefront state: %w", err)
	}

	s.placer = &logic.OrderPlacer{
		Cart:    s.cart,
		Coupon:  s.coupon,
		Session: s.session,
		Ledger:  s.ledger,
		Catalog: cat,
		Policy:  policy,
		Logger:  logger.Named("orders"),
	}
	s.checkout = logic.NewCheckout(s.placer, &s.mu, delay, logger.Named("checkout"))
	return s, nil
}

func (s *Shop) Catalog() *catalog.Catalog {
	return s.catalog
}

func (s *Shop) Policy() logic.PricingPolicy {
	return s.policy
}

// CartView is the cart as a surface renders it.
type CartView struct {
	Lines  []logic.Line
	Count  int
	Coupon string
	Quote  logic.Quote
}

// Cart returns the priced cart.
func (s *Shop) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.cart.Items()
	return CartView{
		Lines:  logic.Lines(items, s.catalog),
		Count:  s.cart.Count(),
		Coupon: s.coupon.Applied(),
		Quote:  s.placer.Quote(),
	}
}

// Quote prices the current cart.
func (s *Shop) Quote() logic.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.placer.Quote()
}

func (s *Shop) AddToCart(ctx context.Context, productID string, qty int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.cart.Add(ctx, productID, qty)
	s.metrics.CartOp("add", result(err))
	return n, err
}

func (s *Shop) SetQuantity(ctx context.Context, productID string, qty int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.cart.SetQuantity(ctx, productID, qty)
	s.metrics.CartOp("set", result(err))
	return n, err
}

func (s *Shop) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.cart.Clear(ctx)
	s.metrics.CartOp("clear", result(err))
	return err
}

func (s *Shop) ApplyCoupon(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.coupon.Apply(ctx, code)
	s.metrics.CouponOp("apply", result(err))
	return err
}

func (s *Shop) ResetCoupon(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.coupon.Reset(ctx)
	s.metrics.CouponOp("reset", result(err))
	return err
}

func (s *Shop) SignIn(ctx context.Context, p logic.Profile) (logic.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.SignIn(ctx, p)
}

func (s *Shop) SignOut(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.SignOut(ctx)
}

func (s *Shop) CurrentUser() (logic.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Current()
}

func (s *Shop) AddAddress(ctx context.Context, a logic.Address) (logic.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.AddAddress(ctx, a)
}

func (s *Shop) AddPaymentMethod(ctx context.Context, m logic.PaymentMethod) (logic.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.AddPaymentMethod(ctx, m)
}

// ToggleWishlist reports whether the product is saved afterwards.
func (s *Shop) ToggleWishlist(ctx context.Context, productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlist.Toggle(ctx, productID)
}

// Wishlist returns the saved products that are still in the catalog.
func (s *Shop) Wishlist() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.wishlist.Items()
	products := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.catalog.Find(id); ok {
			products = append(products, p)
		}
	}
	return products
}

// MoveToCart adds one of a saved product to the cart and drops it from
// the wishlist. The cart change is undone when the wishlist save fails.
func (s *Shop) MoveToCart(ctx context.Context, productID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.wishlist.Contains(productID) {
		return 0, logic.NewFailedPrecondition(logic.ErrMsgNotInWishlist)
	}
	prior := s.cart.Quantity(productID)
	n, err := s.cart.Add(ctx, productID, 1)
	s.metrics.CartOp("add", result(err))
	if err != nil {
		return 0, err
	}
	if err := s.wishlist.Remove(ctx, productID); err != nil {
		if _, rbErr := s.cart.SetQuantity(ctx, productID, prior); rbErr != nil {
			s.logger.Error("cart rollback failed",
				zap.String("product_id", productID), zap.Int("quantity", prior), zap.Error(rbErr))
		}
		return 0, err
	}
	return n, nil
}

// PlaceOrder places the order immediately, without the payment wait.
func (s *Shop) PlaceOrder(ctx context.Context, shippingMethod string) (logic.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.placer.PlaceOrder(ctx, shippingMethod)
	if order.ID != "" {
		s.metrics.OrderPlaced(order.Total.InexactFloat64())
	}
	return order, err
}

// Checkout runs the simulated payment and places the order. The shop lock
// is released while the payment is pending.
func (s *Shop) Checkout(ctx context.Context, shippingMethod string) (logic.Receipt, logic.Order, error) {
	start := time.Now()
	receipt, order, err := s.checkout.Pay(ctx, shippingMethod)
	s.metrics.Checkout(result(err), time.Since(start))
	if order.ID != "" {
		s.metrics.OrderPlaced(order.Total.InexactFloat64())
	}
	return receipt, order, err
}

// CheckoutPending reports whether a payment is in progress.
func (s *Shop) CheckoutPending() bool {
	return s.checkout.Pending()
}

func (s *Shop) Orders() []logic.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Orders()
}

func (s *Shop) Order(id string) (logic.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Find(id)
}

func result(err error) string {
	if err == nil {
		return metrics.ResultOK
	}
	var cmdErr *logic.CommandError
	if errors.As(err, &cmdErr) {
		return metrics.ResultRejected
	}
	return metrics.ResultError
}
