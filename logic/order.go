package logic

import (
	"time"

	"github.com/shopspring/decimal"

	"storefront/catalog"
)

type OrderStatus string

const OrderStatusProcessing OrderStatus = "Processing"

type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

// ParseShippingMethod accepts "standard", "express", or "" for standard.
func ParseShippingMethod(s string) (ShippingMethod, error) {
	switch ShippingMethod(s) {
	case "", ShippingStandard:
		return ShippingStandard, nil
	case ShippingExpress:
		return ShippingExpress, nil
	default:
		return "", NewInvalidArgument(ErrMsgUnknownShipping)
	}
}

// OrderLine is a frozen copy of a product at placement time.
type OrderLine struct {
	ProductID string           `json:"product_id"`
	Title     string           `json:"title"`
	Brand     string           `json:"brand"`
	Category  catalog.Category `json:"category"`
	Format    catalog.Format   `json:"format"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	Quantity  int              `json:"quantity"`
	Amount    decimal.Decimal  `json:"amount"`
}

type Order struct {
	ID             string          `json:"id"`
	CustomerID     string          `json:"customer_id"`
	Lines          []OrderLine     `json:"lines"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Discount       decimal.Decimal `json:"discount"`
	Shipping       decimal.Decimal `json:"shipping"`
	Total          decimal.Decimal `json:"total"`
	CouponCode     string          `json:"coupon_code,omitempty"`
	ShippingMethod ShippingMethod  `json:"shipping_method"`
	Status         OrderStatus     `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Quote returns the totals captured on the order.
func (o Order) Quote() Quote {
	return Quote{Subtotal: o.Subtotal, Discount: o.Discount, Shipping: o.Shipping, Total: o.Total}
}

// Units returns the number of items across all lines.
func (o Order) Units() int {
	n := 0
	for _, l := range o.Lines {
		n += l.Quantity
	}
	return n
}

func (o Order) clone() Order {
	o.Lines = append([]OrderLine{}, o.Lines...)
	return o
}

// NewOrder snapshots lines and quote into an order in Processing status.
func NewOrder(id, customerID string, lines []Line, quote Quote, coupon string, method ShippingMethod, now time.Time) Order {
	frozen := make([]OrderLine, 0, len(lines))
	for _, l := range lines {
		frozen = append(frozen, OrderLine{
			ProductID: l.Product.ID,
			Title:     l.Product.Title,
			Brand:     l.Product.Brand,
			Category:  l.Product.Category,
			Format:    l.Product.Format,
			UnitPrice: l.Product.Price,
			Quantity:  l.Quantity,
			Amount:    l.Amount(),
		})
	}
	if quote.Discount.IsZero() {
		coupon = ""
	}
	return Order{
		ID:             id,
		CustomerID:     customerID,
		Lines:          frozen,
		Subtotal:       quote.Subtotal,
		Discount:       quote.Discount,
		Shipping:       quote.Shipping,
		Total:          quote.Total,
		CouponCode:     coupon,
		ShippingMethod: method,
		Status:         OrderStatusProcessing,
		CreatedAt:      now.UTC(),
	}
}
