// Package logic holds the storefront stores, the pricing engine and the
// order lifecycle. Stores are not safe for concurrent use; callers
// serialize access.
package logic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"storefront/storage"
)

// loadBlob decodes key into v. It returns false, leaving v untouched,
// when the key is absent or the blob cannot be decoded; the caller keeps
// its default. Gateway failures other than not-found are returned.
func loadBlob(ctx context.Context, gw storage.Gateway, logger *zap.Logger, key string, v any) (bool, error) {
	data, err := gw.Load(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		logger.Warn("discarding unparseable blob", zap.String("key", key), zap.Error(err))
		return false, nil
	}
	return true, nil
}

func saveBlob(ctx context.Context, gw storage.Gateway, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := gw.Save(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func loggerOrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
