package logic

import (
	"context"

	"go.uber.org/zap"
)

// SetQuantity overwrites the quantity for productID. A quantity of zero or
// below removes the entry; the removal is persisted like any other change.
func (s *CartStore) SetQuantity(ctx context.Context, productID string, quantity int) (int, error) {
	if productID == "" {
		return 0, NewInvalidArgument(ErrMsgProductIDRequired)
	}

	next := s.Items()
	if quantity <= 0 {
		if _, ok := next[productID]; !ok {
			return 0, nil
		}
		delete(next, productID)
		if err := s.commit(ctx, next); err != nil {
			return 0, err
		}
		s.logger.Debug("item removed", zap.String("product_id", productID))
		return 0, nil
	}

	if quantity > MaxQuantity {
		return 0, NewInvalidArgument(ErrMsgQuantityTooLarge)
	}
	if _, ok := s.catalog.Find(productID); !ok {
		return 0, NewFailedPrecondition(ErrMsgProductNotFound)
	}
	next[productID] = quantity
	if err := s.commit(ctx, next); err != nil {
		return 0, err
	}

	s.logger.Debug("quantity updated", zap.String("product_id", productID), zap.Int("quantity", quantity))
	return quantity, nil
}
