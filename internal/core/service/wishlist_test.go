package service_test

import (
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWishlist(t *testing.T, kv *memKV) (*service.WishlistStore, *service.NoticeBoard) {
	t.Helper()
	nb := service.NewNoticeBoard()
	w, err := service.NewWishlistStore(t.Context(), kv, nb)
	require.NoError(t, err)
	return w, nb
}

func TestWishlistStore(t *testing.T) {
	t.Run("RejectsDuplicate", func(t *testing.T) {
		w, nb := newWishlist(t, newMemKV())
		p := product(t, 7)

		require.NoError(t, w.Add(t.Context(), p))
		err := w.Add(t.Context(), p)
		assert.ErrorIs(t, err, domain.ErrAlreadyInWishlist)

		assert.Len(t, w.Entries(), 1)
		assert.True(t, w.Contains(7))
		assert.Equal(t, []domain.Notice{
			domain.Success("Added to wishlist"),
			domain.Failure("Item already in wishlist"),
		}, nb.Drain())
	})

	t.Run("Remove", func(t *testing.T) {
		w, nb := newWishlist(t, newMemKV())
		require.NoError(t, w.Add(t.Context(), product(t, 1)))
		require.NoError(t, w.Add(t.Context(), product(t, 2)))
		nb.Drain()

		require.NoError(t, w.Remove(t.Context(), 1))
		require.NoError(t, w.Remove(t.Context(), 1))

		assert.False(t, w.Contains(1))
		assert.True(t, w.Contains(2))
		assert.Equal(t, []domain.Notice{domain.Success("Removed from wishlist")}, nb.Drain())
	})

	t.Run("Clear", func(t *testing.T) {
		w, _ := newWishlist(t, newMemKV())
		require.NoError(t, w.Add(t.Context(), product(t, 1)))

		require.NoError(t, w.Clear(t.Context()))
		assert.Empty(t, w.Entries())
	})

	t.Run("ReloadDropsDuplicates", func(t *testing.T) {
		kv := newMemKV()
		data := `[{"id":3,"name":"A"},{"id":3,"name":"B"},{"id":4,"name":"C"}]`
		require.NoError(t, kv.Put(t.Context(), service.WishlistKey, []byte(data)))

		w, _ := newWishlist(t, kv)
		entries := w.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, "A", entries[0].Name)
		assert.Equal(t, 4, entries[1].ID)
	})
}
