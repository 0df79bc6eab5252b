package logic

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"storefront/catalog"
	"storefront/storage"
)

var errDiskFull = errors.New("disk full")

// flakyGateway wraps a Memory gateway and fails saves on demand.
type flakyGateway struct {
	*storage.Memory
	failSaves bool
	saves     []string
}

func newFlakyGateway() *flakyGateway {
	return &flakyGateway{Memory: storage.NewMemory()}
}

func (g *flakyGateway) Save(ctx context.Context, key string, data []byte) error {
	if g.failSaves {
		return errDiskFull
	}
	g.saves = append(g.saves, key)
	return g.Memory.Save(ctx, key, data)
}

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Product{
		{ID: "p1", Title: "Planner", Brand: "Paperloom", Category: catalog.CategoryPlanners, Format: catalog.FormatDigital, Price: decimal.RequireFromString("9.99")},
		{ID: "p2", Title: "Print", Brand: "Fernwood", Category: catalog.CategoryArtPrints, Format: catalog.FormatPrinted, Price: decimal.RequireFromString("24.50")},
		{ID: "p3", Title: "Journal", Brand: "Oakhide", Category: catalog.CategoryStationery, Format: catalog.FormatPhysical, Price: decimal.RequireFromString("49.99")},
	})
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(d(want)) {
		t.Errorf("expected %s %s, got %s", name, want, got)
	}
}

func assertCode(t *testing.T, err error, code StatusCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	cmdErr, ok := err.(*CommandError)
	if !ok {
		t.Fatalf("expected CommandError, got %T: %v", err, err)
	}
	if cmdErr.Code != code {
		t.Errorf("expected %s, got %s (%s)", code, cmdErr.Code, cmdErr.Message)
	}
}

func mustCart(t *testing.T, gw storage.Gateway) *CartStore {
	t.Helper()
	s, err := LoadCartStore(context.Background(), gw, testCatalog(), nil)
	if err != nil {
		t.Fatalf("load cart: %v", err)
	}
	return s
}
