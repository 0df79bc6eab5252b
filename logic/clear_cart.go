package logic

import "context"

// Clear empties the cart.
func (s *CartStore) Clear(ctx context.Context) error {
	if err := s.commit(ctx, make(map[string]int)); err != nil {
		return err
	}
	s.logger.Debug("cart cleared")
	return nil
}
