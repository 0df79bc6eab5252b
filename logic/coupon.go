package logic

import (
	"context"

	"go.uber.org/zap"

	"storefront/storage"
)

// CouponState tracks the applied coupon (persisted under
// storage.KeyCoupon) and the code the user is typing (memory only).
type CouponState struct {
	gw      storage.Gateway
	policy  PricingPolicy
	logger  *zap.Logger
	applied string
	input   string
}

// LoadCouponState restores the applied code. A stored code that the
// policy does not recognise is discarded.
func LoadCouponState(ctx context.Context, gw storage.Gateway, policy PricingPolicy, logger *zap.Logger) (*CouponState, error) {
	s := &CouponState{gw: gw, policy: policy, logger: loggerOrNop(logger)}

	var saved *string
	ok, err := loadBlob(ctx, gw, s.logger, storage.KeyCoupon, &saved)
	if err != nil {
		return nil, err
	}
	if ok && saved != nil {
		if policy.ValidCoupon(*saved) {
			s.applied = *saved
		} else {
			s.logger.Warn("discarding unrecognised stored coupon", zap.String("code", *saved))
		}
	}
	return s, nil
}

// Applied returns the applied code, or "" when none.
func (s *CouponState) Applied() string {
	return s.applied
}

// Input returns the pending input code.
func (s *CouponState) Input() string {
	return s.input
}

// SetInput records the code being typed without validating it.
func (s *CouponState) SetInput(code string) {
	s.input = code
}

// Apply validates code and, on a match, marks it applied. A mismatch
// leaves the applied code unchanged.
func (s *CouponState) Apply(ctx context.Context, code string) error {
	s.input = code
	if code == "" {
		return NewInvalidArgument(ErrMsgCouponCodeRequired)
	}
	if !s.policy.ValidCoupon(code) {
		s.logger.Info("coupon rejected", zap.String("code", code))
		return NewInvalidArgument(ErrMsgInvalidCoupon)
	}

	if err := saveBlob(ctx, s.gw, storage.KeyCoupon, code); err != nil {
		return err
	}
	s.applied = code
	s.logger.Info("coupon applied", zap.String("code", code))
	return nil
}

// Reset clears the applied code and the pending input.
func (s *CouponState) Reset(ctx context.Context) error {
	if err := saveBlob(ctx, s.gw, storage.KeyCoupon, nil); err != nil {
		return err
	}
	s.applied = ""
	s.input = ""
	return nil
}
