// Package catalog provides the static product catalog and its filters.
package catalog

import "github.com/shopspring/decimal"

// Category groups products on the storefront.
type Category string

const (
	CategoryBooks      Category = "books"
	CategoryPlanners   Category = "planners"
	CategoryArtPrints  Category = "art-prints"
	CategoryTemplates  Category = "templates"
	CategoryStationery Category = "stationery"
)

// Format is how a product is delivered.
type Format string

const (
	FormatDigital  Format = "digital"
	FormatPrinted  Format = "printed"
	FormatPhysical Format = "physical"
)

// Product is an immutable catalog entry.
type Product struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Category Category        `json:"category"`
	Format   Format          `json:"format"`
	Price    decimal.Decimal `json:"price"`
	Brand    string          `json:"brand"`
	Rating   float64         `json:"rating"`
	Stock    int             `json:"stock"`
	Image    string          `json:"img,omitempty"`
}

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{CategoryBooks, CategoryPlanners, CategoryArtPrints, CategoryTemplates, CategoryStationery}
}

// Formats returns every format in display order.
func Formats() []Format {
	return []Format{FormatDigital, FormatPrinted, FormatPhysical}
}

// ParseCategory maps a user supplied category to a Category.
// The empty string means "any" and is accepted.
func ParseCategory(s string) (Category, bool) {
	if s == "" {
		return "", true
	}
	for _, c := range Categories() {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// ParseFormat maps a user supplied format to a Format.
// The empty string means "any" and is accepted.
func ParseFormat(s string) (Format, bool) {
	if s == "" {
		return "", true
	}
	for _, f := range Formats() {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}
