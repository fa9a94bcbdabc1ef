package port

import (
	"context"
	"errors"

	"github.com/niksmo/storefront/internal/core/domain"
)

// ErrKeyNotFound is returned by a [KVStore] when the key holds no value.
var ErrKeyNotFound = errors.New("key not found")

// KVStore is the local key-value storage every persisted store writes to.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type Notifier interface {
	Notify(domain.Notice)
}

type CatalogReader interface {
	Products() []domain.Product
	Categories() []domain.CategoryInfo
	Product(id int) (domain.Product, error)
}

type CartReader interface {
	Lines() []domain.CartLine
}

type CartClearer interface {
	Clear(context.Context) error
}

type SessionReader interface {
	Current() (domain.User, bool)
}

type OrderPublisher interface {
	PublishOrder(context.Context, domain.Order) error
}

type OrderStatsReader interface {
	OrderStats(context.Context) (domain.OrderStats, error)
}

// OrderStatsProcessor aggregates published orders in the background.
type OrderStatsProcessor interface {
	Run(ctx context.Context, stopFn context.CancelFunc)
	Close()
}
