package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var (
	_ port.OrderPublisher   = (*OrderLedger)(nil)
	_ port.OrderStatsReader = (*OrderLedger)(nil)
)

// OrderLedger aggregates placed orders into the local key-value store.
// It stands in for the broker when no Kafka cluster is configured.
type OrderLedger struct {
	mu     sync.Mutex
	stats  domain.OrderStats
	record record[domain.OrderStats]
}

func NewOrderLedger(ctx context.Context, kv port.KVStore) (*OrderLedger, error) {
	const op = "NewOrderLedger"

	l := &OrderLedger{record: newRecord[domain.OrderStats](kv, OrdersKey)}

	stats, _, err := l.record.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	l.stats = stats
	return l, nil
}

func (l *OrderLedger) PublishOrder(ctx context.Context, o domain.Order) error {
	const op = "OrderLedger.PublishOrder"

	l.mu.Lock()
	defer l.mu.Unlock()

	stats := l.stats.Apply(o)
	if err := l.record.save(ctx, stats); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	l.stats = stats
	return nil
}

func (l *OrderLedger) OrderStats(context.Context) (domain.OrderStats, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats, nil
}
