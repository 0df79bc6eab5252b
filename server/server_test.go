package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"storefront/catalog"
	"storefront/logic"
	"storefront/shop"
	"storefront/storage"
)

type harness struct {
	client *Client
	health grpc_health_v1.HealthClient
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	noDelay := time.Duration(0)
	sh, err := shop.Open(context.Background(), storage.NewMemory(), catalog.Default(), shop.Options{CheckoutDelay: &noDelay})
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	srv, _ := NewGRPCServer(New(sh, nil, nil))
	go srv.Serve(lis)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
		srv.Stop()
	})
	return &harness{client: ClientFromConn(conn), health: grpc_health_v1.NewHealthClient(conn)}
}

func (h *harness) do(t *testing.T, command string, fields map[string]any) (*structpb.Struct, error) {
	t.Helper()
	req, err := Command(command, fields)
	require.NoError(t, err)
	return h.client.Handle(context.Background(), req)
}

func (h *harness) must(t *testing.T, command string, fields map[string]any) map[string]any {
	t.Helper()
	resp, err := h.do(t, command, fields)
	require.NoError(t, err)
	return resp.AsMap()
}

func quoteOf(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	q, ok := resp["quote"].(map[string]any)
	require.True(t, ok, "response has no quote: %v", resp)
	return q
}

func TestHandle_CartFlow(t *testing.T) {
	h := newHarness(t)

	resp := h.must(t, CmdCartAdd, map[string]any{"product_id": "p1", "quantity": 2})
	assert.Equal(t, float64(2), resp["count"])
	assert.Equal(t, "24.97", quoteOf(t, resp)["total"])

	h.must(t, CmdCartAdd, map[string]any{"product_id": "p3"})
	resp = h.must(t, CmdCouponApply, map[string]any{"code": "SAVE10"})
	q := quoteOf(t, resp)
	assert.Equal(t, "6.997", q["discount"])
	assert.Equal(t, "62.973", q["total"])
	assert.Equal(t, "62.97", q["display"].(map[string]any)["total"])
	assert.Equal(t, "SAVE10", resp["coupon"])

	lines := resp["lines"].([]any)
	require.Len(t, lines, 2)
	assert.Equal(t, "p1", lines[0].(map[string]any)["product_id"])

	resp = h.must(t, CmdCartSet, map[string]any{"product_id": "p1", "quantity": 0})
	assert.Equal(t, float64(1), resp["count"])

	resp = h.must(t, CmdCartClear, nil)
	assert.Equal(t, float64(0), resp["count"])
	assert.Equal(t, "4.99", quoteOf(t, resp)["shipping"])
}

func TestHandle_ErrorMapping(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name    string
		command string
		fields  map[string]any
		code    codes.Code
		message string
	}{
		{"missing command", "", nil, codes.InvalidArgument, "command is required"},
		{"unknown command", "cart.explode", nil, codes.InvalidArgument, "Unknown command: cart.explode"},
		{"zero quantity", CmdCartAdd, map[string]any{"product_id": "p1", "quantity": 0}, codes.InvalidArgument, logic.ErrMsgQuantityPositive},
		{"string quantity above int32", CmdCartAdd, map[string]any{"product_id": "p1", "quantity": "9223372036854775807"}, codes.InvalidArgument, "quantity must be an integer"},
		{"numeric quantity above int32", CmdCartSet, map[string]any{"product_id": "p1", "quantity": float64(1 << 40)}, codes.InvalidArgument, "quantity must be an integer"},
		{"fractional quantity", CmdCartAdd, map[string]any{"product_id": "p1", "quantity": 1.5}, codes.InvalidArgument, "quantity must be an integer"},
		{"unknown product", CmdCartAdd, map[string]any{"product_id": "ghost"}, codes.FailedPrecondition, logic.ErrMsgProductNotFound},
		{"bad coupon", CmdCouponApply, map[string]any{"code": "save10"}, codes.InvalidArgument, logic.ErrMsgInvalidCoupon},
		{"checkout without session", CmdCheckout, nil, codes.Unauthenticated, logic.ErrMsgNotSignedIn},
		{"unknown order", CmdOrdersShow, map[string]any{"order_id": "nope"}, codes.FailedPrecondition, logic.ErrMsgOrderNotFound},
		{"bad category", CmdCatalogList, map[string]any{"category": "toys"}, codes.InvalidArgument, `unknown category "toys"`},
		{"bad price bound", CmdCatalogList, map[string]any{"max_price": "cheap"}, codes.InvalidArgument, "max_price must be a decimal amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.command == "" {
				_, err = h.client.Handle(context.Background(), &structpb.Struct{})
			} else {
				_, err = h.do(t, tt.command, tt.fields)
			}
			st, ok := status.FromError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, st.Code())
			assert.Equal(t, tt.message, st.Message())
		})
	}
}

func TestHandle_QuantityLimit(t *testing.T) {
	h := newHarness(t)

	resp := h.must(t, CmdCartAdd, map[string]any{"product_id": "p1", "quantity": "2147483647"})
	assert.Equal(t, float64(logic.MaxQuantity), resp["count"])

	_, err := h.do(t, CmdCartAdd, map[string]any{"product_id": "p1", "quantity": "1"})
	st, _ := status.FromError(err)
	assert.Equal(t, codes.InvalidArgument, st.Code())
	assert.Equal(t, logic.ErrMsgQuantityTooLarge, st.Message())

	resp = h.must(t, CmdCartShow, nil)
	assert.Equal(t, float64(logic.MaxQuantity), resp["count"])
}

func TestHandle_CheckoutFlow(t *testing.T) {
	h := newHarness(t)

	h.must(t, CmdCartAdd, map[string]any{"product_id": "p2", "quantity": 1})
	user := h.must(t, CmdLogin, map[string]any{"name": "Ada", "email": "ada@example.com"})["user"].(map[string]any)
	assert.NotEmpty(t, user["id"])

	resp := h.must(t, CmdCheckout, map[string]any{"shipping": "express"})
	order := resp["order"].(map[string]any)
	receipt := resp["receipt"].(map[string]any)
	assert.Equal(t, order["id"], receipt["order_id"])
	assert.Regexp(t, `^pi_mock_\d+$`, receipt["id"])
	assert.Equal(t, "Processing", order["status"])
	assert.Equal(t, "express", order["shipping_method"])
	assert.Equal(t, user["id"], order["customer_id"])
	assert.Equal(t, "29.49", order["total"])

	assert.Equal(t, float64(1), order["units"])
	placed, err := time.Parse(time.RFC3339Nano, order["created_at"].(string))
	require.NoError(t, err)
	assert.Equal(t, time.UTC, placed.Location())
	_, err = time.Parse(time.RFC3339Nano, receipt["created_at"].(string))
	require.NoError(t, err)

	orders := h.must(t, CmdOrdersList, nil)["orders"].([]any)
	require.Len(t, orders, 1)
	assert.Equal(t, float64(1), orders[0].(map[string]any)["units"])

	shown := h.must(t, CmdOrdersShow, map[string]any{"order_id": order["id"]})
	assert.Equal(t, order["id"], shown["order"].(map[string]any)["id"])

	_, err = h.do(t, CmdOrderPlace, nil)
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestHandle_CatalogAndWishlist(t *testing.T) {
	h := newHarness(t)

	all := h.must(t, CmdCatalogList, nil)["products"].([]any)
	assert.Len(t, all, catalog.Default().Len())

	planners := h.must(t, CmdCatalogList, map[string]any{"category": "planners", "max_price": 20})["products"].([]any)
	require.Len(t, planners, 1)
	assert.Equal(t, "p1", planners[0].(map[string]any)["id"])

	none := h.must(t, CmdCatalogList, map[string]any{"query": "no such thing"})["products"].([]any)
	assert.Empty(t, none)

	product := h.must(t, CmdCatalogShow, map[string]any{"product_id": "p3"})["product"].(map[string]any)
	assert.Equal(t, "49.99", product["price"])

	resp := h.must(t, CmdWishlistToggle, map[string]any{"product_id": "p6"})
	assert.Equal(t, true, resp["saved"])
	assert.Len(t, resp["products"].([]any), 1)

	cart := h.must(t, CmdWishlistMove, map[string]any{"product_id": "p6"})
	assert.Equal(t, float64(1), cart["count"])
	assert.Empty(t, h.must(t, CmdWishlistShow, nil)["products"].([]any))
}

func TestHandle_Session(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, false, h.must(t, CmdWhoami, nil)["signed_in"])

	_, err := h.do(t, CmdAddressAdd, map[string]any{"line1": "1 Main St", "city": "Springfield"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	h.must(t, CmdLogin, map[string]any{"email": "grace@example.com"})
	who := h.must(t, CmdWhoami, nil)
	assert.Equal(t, true, who["signed_in"])
	assert.Equal(t, "grace", who["user"].(map[string]any)["name"])

	user := h.must(t, CmdAddressAdd, map[string]any{"line1": "1 Main St", "city": "Springfield"})["user"].(map[string]any)
	assert.Len(t, user["addresses"].([]any), 1)
	user = h.must(t, CmdPaymentAdd, map[string]any{"brand": "visa", "last4": "4242"})["user"].(map[string]any)
	assert.Len(t, user["payment_methods"].([]any), 1)

	h.must(t, CmdLogout, nil)
	assert.Equal(t, false, h.must(t, CmdWhoami, nil)["signed_in"])
}

func TestHealth_Serving(t *testing.T) {
	h := newHarness(t)

	resp, err := h.health.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.Status)
}

func TestMapError(t *testing.T) {
	tests := []struct {
		err  error
		code codes.Code
	}{
		{logic.NewInvalidArgument("bad"), codes.InvalidArgument},
		{logic.NewFailedPrecondition("nope"), codes.FailedPrecondition},
		{logic.NewUnauthenticated("who"), codes.Unauthenticated},
		{assert.AnError, codes.Internal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, status.Code(mapError(tt.err)))
	}
}

func TestFormatEndpoint(t *testing.T) {
	assert.Equal(t, "unix:///tmp/storefront.sock", formatEndpoint("/tmp/storefront.sock"))
	assert.Equal(t, "unix://./storefront.sock", formatEndpoint("./storefront.sock"))
	assert.Equal(t, "localhost:50051", formatEndpoint("localhost:50051"))
}
