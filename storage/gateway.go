// Package storage provides the keyed blob gateway the storefront stores
// persist through, with memory, file, SQLite and NATS KV backends.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// Keys used by the storefront stores.
const (
	KeyCart     = "cart"
	KeyCoupon   = "coupon"
	KeyOrders   = "orders"
	KeyUser     = "user"
	KeyWishlist = "wishlist"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendNATS   = "nats"
)

// ErrNotFound is returned by Load when a key has never been saved.
var ErrNotFound = errors.New("key not found")

// Gateway loads and saves opaque blobs by key.
type Gateway interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend string
	Path    string // file directory or sqlite database path
	NATSURL string
	Bucket  string
}

// Open returns the gateway named by opts.Backend.
func Open(ctx context.Context, opts Options) (Gateway, error) {
	switch opts.Backend {
	case "", BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		return NewFileStore(opts.Path)
	case BackendSQLite:
		return NewSQLiteStore(opts.Path)
	case BackendNATS:
		return DialNATS(ctx, opts.NATSURL, opts.Bucket)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}

func validKey(key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	return nil
}
