package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// WishlistStore holds at most one entry per product.
type WishlistStore struct {
	mu       sync.Mutex
	entries  []domain.WishlistEntry
	record   record[[]domain.WishlistEntry]
	notifier port.Notifier
}

func NewWishlistStore(
	ctx context.Context, kv port.KVStore, n port.Notifier,
) (*WishlistStore, error) {
	const op = "NewWishlistStore"

	s := &WishlistStore{
		record:   newRecord[[]domain.WishlistEntry](kv, WishlistKey),
		notifier: n,
	}

	entries, _, err := s.record.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.entries = dedupEntries(entries)
	return s, nil
}

func dedupEntries(entries []domain.WishlistEntry) []domain.WishlistEntry {
	seen := make(map[int]struct{}, len(entries))
	return slices.DeleteFunc(entries, func(e domain.WishlistEntry) bool {
		if _, ok := seen[e.ID]; ok {
			return true
		}
		seen[e.ID] = struct{}{}
		return false
	})
}

// Add stores a snapshot of p. A product already present is rejected
// with [domain.ErrAlreadyInWishlist] and the list stays unchanged.
func (s *WishlistStore) Add(ctx context.Context, p domain.Product) error {
	const op = "WishlistStore.Add"

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.contains(p.ID) {
		s.notifier.Notify(domain.Failure("Item already in wishlist"))
		return fmt.Errorf("%s: %w", op, domain.ErrAlreadyInWishlist)
	}

	entries := append(slices.Clone(s.entries), domain.WishlistEntry{Product: p})
	if err := s.commit(ctx, entries); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.notifier.Notify(domain.Success("Added to wishlist"))
	return nil
}

func (s *WishlistStore) Remove(ctx context.Context, productID int) error {
	const op = "WishlistStore.Remove"

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.contains(productID) {
		return nil
	}

	entries := slices.DeleteFunc(slices.Clone(s.entries), func(e domain.WishlistEntry) bool {
		return e.ID == productID
	})
	if err := s.commit(ctx, entries); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.notifier.Notify(domain.Success("Removed from wishlist"))
	return nil
}

func (s *WishlistStore) Contains(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contains(productID)
}

func (s *WishlistStore) Clear(ctx context.Context) error {
	const op = "WishlistStore.Clear"

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commit(ctx, []domain.WishlistEntry{}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.notifier.Notify(domain.Success("Wishlist cleared"))
	return nil
}

func (s *WishlistStore) Entries() []domain.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries)
}

func (s *WishlistStore) contains(productID int) bool {
	return slices.ContainsFunc(s.entries, func(e domain.WishlistEntry) bool {
		return e.ID == productID
	})
}

func (s *WishlistStore) commit(
	ctx context.Context, entries []domain.WishlistEntry,
) error {
	if err := s.record.save(ctx, entries); err != nil {
		return err
	}
	s.entries = entries
	return nil
}
