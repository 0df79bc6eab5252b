package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Filter narrows a catalog scan. Zero values mean "any".
type Filter struct {
	Category Category
	Format   Format
	MinPrice *decimal.Decimal // inclusive
	MaxPrice *decimal.Decimal // inclusive
	Query    string           // case-insensitive substring of title or brand
}

// Catalog is a read-only product list indexed by id.
type Catalog struct {
	products []Product
	byID     map[string]int
}

// New builds a catalog from products. Later duplicates of an id are ignored.
func New(products []Product) *Catalog {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for _, p := range products {
		if _, dup := c.byID[p.ID]; dup {
			continue
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c
}

// Default returns the compiled-in catalog.
func Default() *Catalog {
	return New(defaultProducts)
}

// Find returns the product with the given id.
func (c *Catalog) Find(id string) (Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// All returns every product in declaration order.
func (c *Catalog) All() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Filter scans the catalog and returns matches in declaration order.
// No match yields an empty, non-nil slice.
func (c *Catalog) Filter(f Filter) []Product {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]Product, 0)
	for _, p := range c.products {
		if f.matches(p, query) {
			out = append(out, p)
		}
	}
	return out
}

func (f Filter) matches(p Product, query string) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Format != "" && p.Format != f.Format {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if query != "" &&
		!strings.Contains(strings.ToLower(p.Title), query) &&
		!strings.Contains(strings.ToLower(p.Brand), query) {
		return false
	}
	return true
}
