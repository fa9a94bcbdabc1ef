package kvstore_test

import (
	"path/filepath"
	"testing"

	"github.com/niksmo/storefront/internal/adapter/kvstore"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelDB(t *testing.T) {
	s, err := kvstore.OpenMemLevelDB()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	ctx := t.Context()

	t.Run("MissingKey", func(t *testing.T) {
		_, err := s.Get(ctx, "cart")
		assert.ErrorIs(t, err, port.ErrKeyNotFound)
	})

	t.Run("PutGetOverwrite", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "cart", []byte(`[1]`)))
		require.NoError(t, s.Put(ctx, "cart", []byte(`[2]`)))

		v, err := s.Get(ctx, "cart")
		require.NoError(t, err)
		assert.Equal(t, []byte(`[2]`), v)
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "user", []byte(`{}`)))
		require.NoError(t, s.Delete(ctx, "user"))
		require.NoError(t, s.Delete(ctx, "user"))

		_, err := s.Get(ctx, "user")
		assert.ErrorIs(t, err, port.ErrKeyNotFound)
	})
}

func TestLevelDBReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db")

	s, err := kvstore.OpenLevelDB(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(t.Context(), "wishlist", []byte(`[]`)))
	s.Close()

	s, err = kvstore.OpenLevelDB(path)
	require.NoError(t, err)
	t.Cleanup(s.Close)

	v, err := s.Get(t.Context(), "wishlist")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), v)
}

func TestOpen(t *testing.T) {
	t.Run("Memory", func(t *testing.T) {
		s, err := kvstore.Open(t.Context(), kvstore.Config{Backend: kvstore.BackendMemory})
		require.NoError(t, err)
		s.Close()
	})

	t.Run("LevelDB", func(t *testing.T) {
		s, err := kvstore.Open(t.Context(), kvstore.Config{
			Backend:     kvstore.BackendLevelDB,
			LevelDBPath: filepath.Join(t.TempDir(), "db"),
		})
		require.NoError(t, err)
		s.Close()
	})

	t.Run("UnknownBackend", func(t *testing.T) {
		_, err := kvstore.Open(t.Context(), kvstore.Config{Backend: "redis"})
		assert.ErrorIs(t, err, kvstore.ErrUnknownBackend)
	})
}
