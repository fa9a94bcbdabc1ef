package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/shopspring/decimal"
)

var (
	_ port.CartReader  = (*CartStore)(nil)
	_ port.CartClearer = (*CartStore)(nil)
)

// CartStore owns the ordered cart lines and their persisted copy.
type CartStore struct {
	mu       sync.Mutex
	lines    []domain.CartLine
	record   record[[]domain.CartLine]
	notifier port.Notifier
	now      func() time.Time
}

// NewCartStore loads the persisted cart. A missing or corrupt record
// yields an empty cart.
func NewCartStore(
	ctx context.Context, kv port.KVStore, n port.Notifier,
) (*CartStore, error) {
	const op = "NewCartStore"

	s := &CartStore{
		record:   newRecord[[]domain.CartLine](kv, CartKey),
		notifier: n,
		now:      time.Now,
	}

	lines, _, err := s.record.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.lines = validLines(lines)
	return s, nil
}

// validLines drops broken lines and folds repeated variants into the
// first line holding them, summing quantities.
func validLines(lines []domain.CartLine) []domain.CartLine {
	out := make([]domain.CartLine, 0, len(lines))
	keys := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if l.Key == "" || l.Quantity <= 0 {
			continue
		}
		if _, dup := keys[l.Key]; dup {
			continue
		}
		i := slices.IndexFunc(out, func(o domain.CartLine) bool {
			return o.Matches(l.ProductID, l.Size, l.Color)
		})
		if i >= 0 {
			out[i].Quantity += l.Quantity
			continue
		}
		keys[l.Key] = struct{}{}
		out = append(out, l)
	}
	return out
}

func (s *CartStore) AddItem(
	ctx context.Context, p domain.Product, quantity int, size, color string,
) (domain.AddResult, error) {
	const op = "CartStore.AddItem"

	if err := checkVariant(p, quantity, size, color); err != nil {
		s.notifier.Notify(domain.Failure(err.Error()))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := slices.Clone(s.lines)
	res := domain.AddResultAdded

	i := slices.IndexFunc(lines, func(l domain.CartLine) bool {
		return l.Matches(p.ID, size, color)
	})
	if i >= 0 {
		lines[i].Quantity += quantity
		res = domain.AddResultQuantityUpdated
	} else {
		lines = append(lines, domain.NewCartLine(p, quantity, size, color, s.now()))
	}

	if err := s.commit(ctx, lines); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if res == domain.AddResultQuantityUpdated {
		s.notifier.Notify(domain.Success("Quantity updated in cart"))
	} else {
		s.notifier.Notify(domain.Success("Added to cart"))
	}
	return res, nil
}

func checkVariant(p domain.Product, quantity int, size, color string) error {
	switch {
	case quantity <= 0:
		return domain.ErrInvalidQuantity
	case !p.InStock:
		return domain.ErrOutOfStock
	case size != "" && !p.OffersSize(size):
		return fmt.Errorf("%w: %q", domain.ErrSizeUnavailable, size)
	case color != "" && !p.OffersColor(color):
		return fmt.Errorf("%w: %q", domain.ErrColorUnavailable, color)
	}
	return nil
}

// RemoveItem deletes the line with key. Unknown keys are ignored.
func (s *CartStore) RemoveItem(ctx context.Context, key string) error {
	const op = "CartStore.RemoveItem"

	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.remove(ctx, key)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if removed {
		s.notifier.Notify(domain.Success("Removed from cart"))
	}
	return nil
}

// SetQuantity replaces the quantity of a line; n <= 0 removes it.
func (s *CartStore) SetQuantity(ctx context.Context, key string, n int) error {
	const op = "CartStore.SetQuantity"

	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 {
		removed, err := s.remove(ctx, key)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if removed {
			s.notifier.Notify(domain.Success("Removed from cart"))
		}
		return nil
	}

	i := s.index(key)
	if i < 0 {
		return nil
	}

	lines := slices.Clone(s.lines)
	lines[i].Quantity = n
	if err := s.commit(ctx, lines); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *CartStore) Clear(ctx context.Context) error {
	const op = "CartStore.Clear"

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commit(ctx, []domain.CartLine{}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.notifier.Notify(domain.Success("Cart cleared"))
	return nil
}

// Total is the sum of price times quantity, without shipping or tax.
func (s *CartStore) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.Subtotal(s.lines)
}

// ItemCount is the sum of quantities, not the number of lines.
func (s *CartStore) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

func (s *CartStore) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.lines)
}

func (s *CartStore) Line(key string) (domain.CartLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(key)
	if i < 0 {
		return domain.CartLine{}, false
	}
	return s.lines[i], true
}

func (s *CartStore) index(key string) int {
	return slices.IndexFunc(s.lines, func(l domain.CartLine) bool {
		return l.Key == key
	})
}

func (s *CartStore) remove(ctx context.Context, key string) (bool, error) {
	i := s.index(key)
	if i < 0 {
		return false, nil
	}
	lines := slices.Delete(slices.Clone(s.lines), i, i+1)
	if err := s.commit(ctx, lines); err != nil {
		return false, err
	}
	return true, nil
}

// commit persists lines and only then makes them current.
func (s *CartStore) commit(ctx context.Context, lines []domain.CartLine) error {
	if err := s.record.save(ctx, lines); err != nil {
		return err
	}
	s.lines = lines
	return nil
}
