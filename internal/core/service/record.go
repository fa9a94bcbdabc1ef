package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/port"
)

// Keys of the persisted records, one per store.
const (
	CartKey     = "cart"
	WishlistKey = "wishlist"
	SessionKey  = "user"
	OrdersKey   = "orders"
)

// A record binds one store to its key in the [port.KVStore].
type record[T any] struct {
	kv  port.KVStore
	key string
}

func newRecord[T any](kv port.KVStore, key string) record[T] {
	return record[T]{kv: kv, key: key}
}

// load returns the stored value. Missing and corrupt records yield ok=false;
// a corrupt record is deleted.
func (r record[T]) load(ctx context.Context) (v T, ok bool, err error) {
	const op = "record.load"
	log := slog.With("op", op, "key", r.key)

	data, err := r.kv.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, port.ErrKeyNotFound) {
			return v, false, nil
		}
		return v, false, fmt.Errorf("%s: %w", op, err)
	}

	if err := json.Unmarshal(data, &v); err != nil {
		log.Warn("discarding corrupt record", "err", err)
		var zero T
		if err := r.kv.Delete(ctx, r.key); err != nil {
			log.Error("failed to delete corrupt record", "err", err)
		}
		return zero, false, nil
	}
	return v, true, nil
}

func (r record[T]) save(ctx context.Context, v T) error {
	const op = "record.save"

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := r.kv.Put(ctx, r.key, data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r record[T]) delete(ctx context.Context) error {
	const op = "record.delete"

	if err := r.kv.Delete(ctx, r.key); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
