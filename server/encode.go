package server

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"storefront/catalog"
	"storefront/logic"
	"storefront/shop"
)

// toStruct converts v through its JSON form. Amounts travel as decimal
// strings.
func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}

type lineView struct {
	ProductID string          `json:"product_id"`
	Title     string          `json:"title"`
	Brand     string          `json:"brand"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
}

// quoteView carries the exact quote plus a cents-rounded display copy.
type quoteView struct {
	logic.Quote
	Display map[string]string `json:"display"`
}

type cartView struct {
	Lines  []lineView `json:"lines"`
	Count  int        `json:"count"`
	Coupon string     `json:"coupon"`
	Quote  quoteView  `json:"quote"`
}

func newQuoteView(q logic.Quote) quoteView {
	r := q.Rounded()
	return quoteView{
		Quote: q,
		Display: map[string]string{
			"subtotal": r.Subtotal.StringFixed(2),
			"discount": r.Discount.StringFixed(2),
			"shipping": r.Shipping.StringFixed(2),
			"total":    r.Total.StringFixed(2),
		},
	}
}

func newCartView(c shop.CartView) cartView {
	lines := make([]lineView, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, lineView{
			ProductID: l.Product.ID,
			Title:     l.Product.Title,
			Brand:     l.Product.Brand,
			UnitPrice: l.Product.Price,
			Quantity:  l.Quantity,
			Amount:    l.Amount(),
		})
	}
	return cartView{Lines: lines, Count: c.Count, Coupon: c.Coupon, Quote: newQuoteView(c.Quote)}
}

func productsView(products []catalog.Product) map[string]any {
	if products == nil {
		products = []catalog.Product{}
	}
	return map[string]any{"products": products}
}

// timestampJSON renders t in the protobuf Timestamp JSON form.
func timestampJSON(t time.Time) (json.RawMessage, error) {
	b, err := protojson.Marshal(timestamppb.New(t))
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode timestamp: %v", err)
	}
	return b, nil
}

type orderView struct {
	logic.Order
	Units     int             `json:"units"`
	CreatedAt json.RawMessage `json:"created_at"`
}

func newOrderView(o logic.Order) (orderView, error) {
	ts, err := timestampJSON(o.CreatedAt)
	if err != nil {
		return orderView{}, err
	}
	return orderView{Order: o, Units: o.Units(), CreatedAt: ts}, nil
}

func newOrderViews(orders []logic.Order) ([]orderView, error) {
	out := make([]orderView, 0, len(orders))
	for _, o := range orders {
		v, err := newOrderView(o)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

type receiptView struct {
	logic.Receipt
	CreatedAt json.RawMessage `json:"created_at"`
}

func newReceiptView(r logic.Receipt) (receiptView, error) {
	ts, err := timestampJSON(r.CreatedAt)
	if err != nil {
		return receiptView{}, err
	}
	return receiptView{Receipt: r, CreatedAt: ts}, nil
}
