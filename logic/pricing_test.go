package logic

import (
	"testing"

	"storefront/catalog"
)

func TestPrice_TwoOfP1NoCoupon(t *testing.T) {
	q := Price(map[string]int{"p1": 2}, testCatalog(), "", DefaultPricingPolicy())

	assertDecimal(t, "subtotal", q.Subtotal, "19.98")
	assertDecimal(t, "discount", q.Discount, "0")
	assertDecimal(t, "shipping", q.Shipping, "4.99")
	assertDecimal(t, "total", q.Total, "24.97")
}

func TestPrice_CouponAndFreeShipping(t *testing.T) {
	q := Price(map[string]int{"p1": 2, "p3": 1}, testCatalog(), "SAVE10", DefaultPricingPolicy())

	assertDecimal(t, "subtotal", q.Subtotal, "69.97")
	assertDecimal(t, "discount", q.Discount, "6.997")
	assertDecimal(t, "shipping", q.Shipping, "0")
	assertDecimal(t, "total", q.Total, "62.973")

	r := q.Rounded()
	assertDecimal(t, "rounded discount", r.Discount, "7.00")
	assertDecimal(t, "rounded total", r.Total, "62.97")
}

func TestPrice_EmptyCartStillChargesShipping(t *testing.T) {
	q := Price(map[string]int{}, testCatalog(), "", DefaultPricingPolicy())

	assertDecimal(t, "subtotal", q.Subtotal, "0")
	assertDecimal(t, "shipping", q.Shipping, "4.99")
	assertDecimal(t, "total", q.Total, "4.99")
}

func TestPrice_ThresholdIsStrict(t *testing.T) {
	cat := catalog.New([]catalog.Product{{ID: "x", Price: d("25")}})

	q := Price(map[string]int{"x": 2}, cat, "", DefaultPricingPolicy())

	assertDecimal(t, "subtotal", q.Subtotal, "50")
	assertDecimal(t, "shipping", q.Shipping, "4.99")
}

func TestPrice_SkipsUnknownProducts(t *testing.T) {
	q := Price(map[string]int{"p1": 1, "ghost": 4}, testCatalog(), "", DefaultPricingPolicy())

	assertDecimal(t, "subtotal", q.Subtotal, "9.99")
}

func TestPrice_CouponIsCaseSensitive(t *testing.T) {
	q := Price(map[string]int{"p3": 2}, testCatalog(), "save10", DefaultPricingPolicy())

	assertDecimal(t, "discount", q.Discount, "0")
}

func TestPrice_TotalNeverNegative(t *testing.T) {
	policy := DefaultPricingPolicy()
	policy.DiscountRate = d("1.5")
	policy.FlatShipping = d("0")

	q := Price(map[string]int{"p1": 1}, testCatalog(), "SAVE10", policy)

	assertDecimal(t, "total", q.Total, "0")
}

func TestPrice_IsIdempotent(t *testing.T) {
	items := map[string]int{"p1": 3, "p2": 1, "p3": 2}
	cat := testCatalog()

	first := Price(items, cat, "SAVE10", DefaultPricingPolicy())
	second := Price(items, cat, "SAVE10", DefaultPricingPolicy())

	if !first.Subtotal.Equal(second.Subtotal) || !first.Discount.Equal(second.Discount) ||
		!first.Shipping.Equal(second.Shipping) || !first.Total.Equal(second.Total) {
		t.Errorf("expected identical quotes, got %+v and %+v", first, second)
	}
}

func TestLines_FollowsCatalogOrder(t *testing.T) {
	lines := Lines(map[string]int{"p3": 1, "p1": 2, "ghost": 1}, testCatalog())

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Product.ID != "p1" || lines[1].Product.ID != "p3" {
		t.Errorf("expected [p1 p3], got [%s %s]", lines[0].Product.ID, lines[1].Product.ID)
	}
	assertDecimal(t, "line amount", lines[0].Amount(), "19.98")
}

func TestValidCoupon(t *testing.T) {
	p := DefaultPricingPolicy()
	tests := []struct {
		code string
		want bool
	}{
		{"SAVE10", true},
		{"save10", false},
		{"SAVE10 ", false},
		{"", false},
		{"SAVE20", false},
	}
	for _, tt := range tests {
		if got := p.ValidCoupon(tt.code); got != tt.want {
			t.Errorf("ValidCoupon(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
