package server

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"storefront/catalog"
	"storefront/logic"
)

// Command names accepted by Handle.
const (
	CmdCatalogList    = "catalog.list"
	CmdCatalogShow    = "catalog.show"
	CmdCartShow       = "cart.show"
	CmdCartAdd        = "cart.add"
	CmdCartSet        = "cart.set"
	CmdCartClear      = "cart.clear"
	CmdCouponApply    = "coupon.apply"
	CmdCouponReset    = "coupon.reset"
	CmdLogin          = "session.login"
	CmdLogout         = "session.logout"
	CmdWhoami         = "session.whoami"
	CmdAddressAdd     = "address.add"
	CmdPaymentAdd     = "payment.add"
	CmdWishlistShow   = "wishlist.show"
	CmdWishlistToggle = "wishlist.toggle"
	CmdWishlistMove   = "wishlist.move"
	CmdOrderPlace     = "order.place"
	CmdCheckout       = "checkout"
	CmdOrdersList     = "orders.list"
	CmdOrdersShow     = "orders.show"
)

func (s *Server) dispatchCommand(ctx context.Context, command string, a args) (*structpb.Struct, error) {
	switch command {
	case CmdCatalogList:
		f, err := catalogFilter(a)
		if err != nil {
			return nil, err
		}
		return toStruct(productsView(s.shop.Catalog().Filter(f)))

	case CmdCatalogShow:
		p, ok := s.shop.Catalog().Find(a.str("product_id"))
		if !ok {
			return nil, mapError(logic.NewFailedPrecondition(logic.ErrMsgProductNotFound))
		}
		return toStruct(map[string]any{"product": p})

	case CmdCartShow:
		return toStruct(newCartView(s.shop.Cart()))

	case CmdCartAdd:
		qty, err := a.intOr("quantity", 1)
		if err != nil {
			return nil, err
		}
		s.logger.Info("adding item", zap.String("product_id", a.str("product_id")), zap.Int("quantity", qty))
		if _, err := s.shop.AddToCart(ctx, a.str("product_id"), qty); err != nil {
			return nil, mapError(err)
		}
		return toStruct(newCartView(s.shop.Cart()))

	case CmdCartSet:
		qty, err := a.intOr("quantity", 0)
		if err != nil {
			return nil, err
		}
		s.logger.Info("updating quantity", zap.String("product_id", a.str("product_id")), zap.Int("new_quantity", qty))
		if _, err := s.shop.SetQuantity(ctx, a.str("product_id"), qty); err != nil {
			return nil, mapError(err)
		}
		return toStruct(newCartView(s.shop.Cart()))

	case CmdCartClear:
		s.logger.Info("clearing cart")
		if err := s.shop.ClearCart(ctx); err != nil {
			return nil, mapError(err)
		}
		return toStruct(newCartView(s.shop.Cart()))

	case CmdCouponApply:
		s.logger.Info("applying coupon", zap.String("code", a.str("code")))
		if err := s.shop.ApplyCoupon(ctx, a.str("code")); err != nil {
			return nil, mapError(err)
		}
		return toStruct(newCartView(s.shop.Cart()))

	case CmdCouponReset:
		s.logger.Info("resetting coupon")
		if err := s.shop.ResetCoupon(ctx); err != nil {
			return nil, mapError(err)
		}
		return toStruct(newCartView(s.shop.Cart()))

	case CmdLogin:
		user, err := s.shop.SignIn(ctx, logic.Profile{Name: a.str("name"), Email: a.str("email"), Phone: a.str("phone")})
		if err != nil {
			return nil, mapError(err)
		}
		return toStruct(map[string]any{"user": user})

	case CmdLogout:
		if err := s.shop.SignOut(ctx); err != nil {
			return nil, mapError(err)
		}
		return toStruct(map[string]any{"signed_in": false})

	case CmdWhoami:
		user, ok := s.shop.CurrentUser()
		if !ok {
			return toStruct(map[string]any{"signed_in": false})
		}
		return toStruct(map[string]any{"signed_in": true, "user": user})

	case CmdAddressAdd:
		user, err := s.shop.AddAddress(ctx, logic.Address{
			Label:      a.str("label"),
			Line1:      a.str("line1"),
			Line2:      a.str("line2"),
			City:       a.str("city"),
			PostalCode: a.str("postal_code"),
			Country:    a.str("country"),
		})
		if err != nil {
			return nil, mapError(err)
		}
		return toStruct(map[string]any{"user": user})

	case CmdPaymentAdd:
		user, err := s.shop.AddPaymentMethod(ctx, logic.PaymentMethod{
			Brand:  a.str("brand"),
			Last4:  a.str("last4"),
			Expiry: a.str("expiry"),
		})
		if err != nil {
			return nil, mapError(err)
		}
		return toStruct(map[string]any{"user": user})

	case CmdWishlistShow:
		return toStruct(productsView(s.shop.Wishlist()))

	case CmdWishlistToggle:
		saved, err := s.shop.ToggleWishlist(ctx, a.str("product_id"))
		if err != nil {
			return nil, mapError(err)
		}
		resp := productsView(s.shop.Wishlist())
		resp["saved"] = saved
		return toStruct(resp)

	case CmdWishlistMove:
		s.logger.Info("moving wishlist item to cart", zap.String("product_id", a.str("product_id")))
		if _, err := s.shop.MoveToCart(ctx, a.str("product_id")); err != nil {
			return nil, mapError(err)
		}
		return toStruct(newCartView(s.shop.Cart()))

	case CmdOrderPlace:
		s.logger.Info("placing order", zap.String("shipping", a.str("shipping")))
		order, err := s.shop.PlaceOrder(ctx, a.str("shipping"))
		if err != nil && order.ID == "" {
			return nil, mapError(err)
		}
		if err != nil {
			s.logger.Warn("order placed with errors", zap.String("order_id", order.ID), zap.Error(err))
		}
		ov, err := newOrderView(order)
		if err != nil {
			return nil, err
		}
		return toStruct(map[string]any{"order": ov})

	case CmdCheckout:
		s.logger.Info("checking out", zap.String("shipping", a.str("shipping")))
		receipt, order, err := s.shop.Checkout(ctx, a.str("shipping"))
		if err != nil && order.ID == "" {
			return nil, mapError(err)
		}
		if err != nil {
			s.logger.Warn("order placed with errors", zap.String("order_id", order.ID), zap.Error(err))
		}
		ov, err := newOrderView(order)
		if err != nil {
			return nil, err
		}
		rv, err := newReceiptView(receipt)
		if err != nil {
			return nil, err
		}
		return toStruct(map[string]any{"receipt": rv, "order": ov})

	case CmdOrdersList:
		orders, err := newOrderViews(s.shop.Orders())
		if err != nil {
			return nil, err
		}
		return toStruct(map[string]any{"orders": orders})

	case CmdOrdersShow:
		order, ok := s.shop.Order(a.str("order_id"))
		if !ok {
			return nil, mapError(logic.NewFailedPrecondition(logic.ErrMsgOrderNotFound))
		}
		ov, err := newOrderView(order)
		if err != nil {
			return nil, err
		}
		return toStruct(map[string]any{"order": ov})

	default:
		return nil, status.Errorf(codes.InvalidArgument, "Unknown command: %s", command)
	}
}

func catalogFilter(a args) (catalog.Filter, error) {
	category, ok := catalog.ParseCategory(a.str("category"))
	if !ok {
		return catalog.Filter{}, status.Errorf(codes.InvalidArgument, "unknown category %q", a.str("category"))
	}
	format, ok := catalog.ParseFormat(a.str("format"))
	if !ok {
		return catalog.Filter{}, status.Errorf(codes.InvalidArgument, "unknown format %q", a.str("format"))
	}
	minPrice, err := a.amount("min_price")
	if err != nil {
		return catalog.Filter{}, err
	}
	maxPrice, err := a.amount("max_price")
	if err != nil {
		return catalog.Filter{}, err
	}
	return catalog.Filter{
		Category: category,
		Format:   format,
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Query:    a.str("query"),
	}, nil
}
