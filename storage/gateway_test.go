package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Gateway {
	t.Helper()

	file, err := NewFileStore(filepath.Join(t.TempDir(), "state"))
	require.NoError(t, err)

	lite, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { lite.Close() })

	return map[string]Gateway{
		BackendMemory: NewMemory(),
		BackendFile:   file,
		BackendSQLite: lite,
		BackendNATS:   &NATSStore{kv: newFakeBucket()},
	}
}

func TestGateway_LoadMissingKey(t *testing.T) {
	ctx := context.Background()
	for name, gw := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := gw.Load(ctx, KeyCart)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestGateway_SaveThenLoad(t *testing.T) {
	ctx := context.Background()
	for name, gw := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, gw.Save(ctx, KeyCart, []byte(`{"p1":2}`)))

			data, err := gw.Load(ctx, KeyCart)
			require.NoError(t, err)
			assert.JSONEq(t, `{"p1":2}`, string(data))
		})
	}
}

func TestGateway_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	for name, gw := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, gw.Save(ctx, KeyOrders, []byte(`[1]`)))
			require.NoError(t, gw.Save(ctx, KeyOrders, []byte(`[2,1]`)))

			data, err := gw.Load(ctx, KeyOrders)
			require.NoError(t, err)
			assert.Equal(t, `[2,1]`, string(data))
		})
	}
}

func TestGateway_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	for name, gw := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, gw.Save(ctx, KeyUser, []byte(`{"name":"Ada"}`)))

			_, err := gw.Load(ctx, KeyCoupon)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestGateway_RejectsEmptyKey(t *testing.T) {
	ctx := context.Background()
	for name, gw := range backends(t) {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, gw.Save(ctx, "", []byte(`x`)))
			_, err := gw.Load(ctx, "")
			assert.Error(t, err)
		})
	}
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	in := []byte(`abc`)
	require.NoError(t, m.Save(ctx, "k", in))
	in[0] = 'x'

	out, err := m.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(out))
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, KeyWishlist, []byte(`["p2"]`)))

	second, err := NewFileStore(dir)
	require.NoError(t, err)
	data, err := second.Load(ctx, KeyWishlist)
	require.NoError(t, err)
	assert.Equal(t, `["p2"]`, string(data))
}

func TestFileStore_RejectsPathKeys(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, fs.Save(context.Background(), "../escape", []byte(`x`)))
}

func TestSQLiteStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db", "storefront.db")

	first, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, KeyCart, []byte(`{"p3":1}`)))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer second.Close()

	data, err := second.Load(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, `{"p3":1}`, string(data))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	gw, err := Open(ctx, Options{})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, gw)

	gw, err = Open(ctx, Options{Backend: BackendFile, Path: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, gw)

	gw, err = Open(ctx, Options{Backend: BackendSQLite, Path: ":memory:"})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, gw)
	require.NoError(t, gw.Close())

	_, err = Open(ctx, Options{Backend: "redis"})
	assert.Error(t, err)

	_, err = Open(ctx, Options{Backend: BackendFile})
	assert.Error(t, err)
}
