package service

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

const noticeBoardSize = 50

var _ port.Notifier = (*NoticeBoard)(nil)

// NoticeBoard keeps the latest notices until the view drains them.
type NoticeBoard struct {
	mu      sync.Mutex
	notices []domain.Notice
}

func NewNoticeBoard() *NoticeBoard {
	return &NoticeBoard{}
}

func (b *NoticeBoard) Notify(n domain.Notice) {
	slog.Debug("notice", "kind", n.Kind, "message", n.Message)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.notices = append(b.notices, n)
	if over := len(b.notices) - noticeBoardSize; over > 0 {
		b.notices = slices.Delete(b.notices, 0, over)
	}
}

// Drain returns the pending notices oldest first and forgets them.
func (b *NoticeBoard) Drain() []domain.Notice {
	b.mu.Lock()
	defer b.mu.Unlock()

	ns := b.notices
	b.notices = nil
	return ns
}
