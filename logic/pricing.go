package logic

import (
	"github.com/shopspring/decimal"

	"storefront/catalog"
)

// PricingPolicy holds the constants the pricing engine applies.
type PricingPolicy struct {
	CouponCode       string
	DiscountRate     decimal.Decimal
	FreeShippingOver decimal.Decimal
	FlatShipping     decimal.Decimal
}

// DefaultPricingPolicy: SAVE10 takes 10% off, shipping is free strictly
// above 50 and 4.99 otherwise.
func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		CouponCode:       "SAVE10",
		DiscountRate:     decimal.RequireFromString("0.10"),
		FreeShippingOver: decimal.NewFromInt(50),
		FlatShipping:     decimal.RequireFromString("4.99"),
	}
}

// ValidCoupon reports whether code is the allow-listed code. The match is
// exact and case-sensitive.
func (p PricingPolicy) ValidCoupon(code string) bool {
	return code != "" && code == p.CouponCode
}

// Quote is the pricing engine output. Amounts are exact; round only for
// display.
type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// Rounded returns the quote rounded half away from zero to cents.
func (q Quote) Rounded() Quote {
	return Quote{
		Subtotal: q.Subtotal.Round(2),
		Discount: q.Discount.Round(2),
		Shipping: q.Shipping.Round(2),
		Total:    q.Total.Round(2),
	}
}

// Line is a cart entry joined against its product.
type Line struct {
	Product  catalog.Product
	Quantity int
}

// Amount is price times quantity.
func (l Line) Amount() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Lines joins items against cat in catalog declaration order. Ids with no
// product are skipped.
func Lines(items map[string]int, cat *catalog.Catalog) []Line {
	lines := make([]Line, 0, len(items))
	for _, p := range cat.All() {
		qty, ok := items[p.ID]
		if !ok || qty <= 0 {
			continue
		}
		lines = append(lines, Line{Product: p, Quantity: qty})
	}
	return lines
}

// Price computes subtotal, discount, shipping and total. It performs no
// I/O and has no side effects, so repeated calls with the same inputs
// return the same quote.
//
// An empty cart is still charged shipping since a zero subtotal is not
// above the threshold; order placement rejects empty carts separately.
func Price(items map[string]int, cat *catalog.Catalog, appliedCoupon string, policy PricingPolicy) Quote {
	subtotal := decimal.Zero
	for _, line := range Lines(items, cat) {
		subtotal = subtotal.Add(line.Amount())
	}

	discount := decimal.Zero
	if policy.ValidCoupon(appliedCoupon) {
		discount = subtotal.Mul(policy.DiscountRate)
	}

	shipping := policy.FlatShipping
	if subtotal.GreaterThan(policy.FreeShippingOver) {
		shipping = decimal.Zero
	}

	total := subtotal.Sub(discount).Add(shipping)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Quote{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		Total:    total,
	}
}
