package logic

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultCheckoutDelay is how long the simulated payment takes.
const DefaultCheckoutDelay = 1600 * time.Millisecond

// Receipt is the fabricated payment confirmation.
type Receipt struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"order_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// Checkout runs the simulated payment: one fixed wait, then order
// placement. It holds mu only around the store reads and writes, never
// across the wait.
type Checkout struct {
	placer   *OrderPlacer
	mu       sync.Locker
	delay    time.Duration
	logger   *zap.Logger
	inFlight atomic.Bool

	// Sleep defaults to time.Sleep.
	Sleep func(time.Duration)
}

func NewCheckout(placer *OrderPlacer, mu sync.Locker, delay time.Duration, logger *zap.Logger) *Checkout {
	return &Checkout{placer: placer, mu: mu, delay: delay, logger: loggerOrNop(logger)}
}

// Pending reports whether a payment is in progress.
func (c *Checkout) Pending() bool {
	return c.inFlight.Load()
}

// Pay checks preconditions, waits the simulated delay and places the
// order. A second call while one is pending is rejected immediately. The
// wait itself cannot be cancelled and never fails.
func (c *Checkout) Pay(ctx context.Context, method string) (Receipt, Order, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return Receipt{}, Order{}, NewFailedPrecondition(ErrMsgCheckoutPending)
	}
	defer c.inFlight.Store(false)

	c.mu.Lock()
	_, _, err := c.placer.Precheck(method)
	c.mu.Unlock()
	if err != nil {
		return Receipt{}, Order{}, err
	}

	c.logger.Info("processing payment", zap.Duration("delay", c.delay))
	c.sleep(c.delay)

	c.mu.Lock()
	order, err := c.placer.PlaceOrder(ctx, method)
	c.mu.Unlock()
	if err != nil && order.ID == "" {
		return Receipt{}, Order{}, err
	}

	created := c.placer.now().UTC()
	receipt := Receipt{
		ID:        fmt.Sprintf("pi_mock_%d", created.UnixMilli()),
		OrderID:   order.ID,
		Amount:    order.Total,
		CreatedAt: created,
	}
	c.logger.Info("payment succeeded", zap.String("receipt_id", receipt.ID), zap.String("order_id", order.ID))
	return receipt, order, err
}

func (c *Checkout) sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	if c.Sleep != nil {
		c.Sleep(d)
		return
	}
	time.Sleep(d)
}
