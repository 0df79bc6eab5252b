package logic

import (
	"context"

	"go.uber.org/zap"
)

// Add increments the quantity for productID, inserting it when absent,
// and returns the new quantity. The result may not exceed MaxQuantity.
func (s *CartStore) Add(ctx context.Context, productID string, quantity int) (int, error) {
	if productID == "" {
		return 0, NewInvalidArgument(ErrMsgProductIDRequired)
	}
	if quantity <= 0 {
		return 0, NewInvalidArgument(ErrMsgQuantityPositive)
	}
	if _, ok := s.catalog.Find(productID); !ok {
		return 0, NewFailedPrecondition(ErrMsgProductNotFound)
	}

	next := s.Items()
	if quantity > MaxQuantity-next[productID] {
		return 0, NewInvalidArgument(ErrMsgQuantityTooLarge)
	}
	next[productID] += quantity
	if err := s.commit(ctx, next); err != nil {
		return 0, err
	}

	s.logger.Debug("item added", zap.String("product_id", productID), zap.Int("quantity", next[productID]))
	return next[productID], nil
}
