// Package metrics holds the Prometheus collectors for the storefront.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

// Result label values.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// ShopMetrics counts storefront operations. A nil *ShopMetrics is valid and
// records nothing.
type ShopMetrics struct {
	CartOps     *prometheus.CounterVec
	CouponOps   *prometheus.CounterVec
	Orders      prometheus.Counter
	OrderValue  prometheus.Histogram
	CheckoutDur *prometheus.HistogramVec
	Requests    *prometheus.CounterVec
	LatencyMS   *prometheus.HistogramVec
}

// NewShopMetrics creates the collectors and registers them with reg.
func NewShopMetrics(reg prometheus.Registerer) *ShopMetrics {
	m := &ShopMetrics{
		CartOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cart",
			Name:      "operations_total",
			Help:      "Cart mutations by operation and result.",
		}, []string{"op", "result"}),
		CouponOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "coupon",
			Name:      "operations_total",
			Help:      "Coupon applications and resets by result.",
		}, []string{"op", "result"}),
		Orders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "placed_total",
			Help:      "Orders appended to the ledger.",
		}),
		OrderValue: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "total_amount",
			Help:      "Order totals in currency units.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		CheckoutDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "checkout",
			Name:      "duration_seconds",
			Help:      "Simulated payment duration by result.",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 1.6, 2, 5},
		}, []string{"result"}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "grpc",
			Name:      "requests_total",
			Help:      "Total number of handled commands.",
		}, []string{"command", "code"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "grpc",
			Name:      "request_duration_ms",
			Help:      "Command latency in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"command"}),
	}
	reg.MustRegister(m.CartOps, m.CouponOps, m.Orders, m.OrderValue, m.CheckoutDur, m.Requests, m.LatencyMS)
	return m
}

func (m *ShopMetrics) CartOp(op, result string) {
	if m == nil {
		return
	}
	m.CartOps.WithLabelValues(op, result).Inc()
}

func (m *ShopMetrics) CouponOp(op, result string) {
	if m == nil {
		return
	}
	m.CouponOps.WithLabelValues(op, result).Inc()
}

// OrderPlaced records one order and its total.
func (m *ShopMetrics) OrderPlaced(total float64) {
	if m == nil {
		return
	}
	m.Orders.Inc()
	m.OrderValue.Observe(total)
}

func (m *ShopMetrics) Checkout(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.CheckoutDur.WithLabelValues(result).Observe(d.Seconds())
}

// Request records one gRPC command with its status code name.
func (m *ShopMetrics) Request(command, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(command, code).Inc()
	m.LatencyMS.WithLabelValues(command).Observe(float64(d.Milliseconds()))
}

// Handler serves the collectors gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
