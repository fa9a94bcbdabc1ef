package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/stretchr/testify/require"
)

// memKV is an in-memory [port.KVStore] with an optional write failure.
type memKV struct {
	mu     sync.Mutex
	data   map[string][]byte
	putErr error
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (kv *memKV) Get(_ context.Context, key string) ([]byte, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	v, ok := kv.data[key]
	if !ok {
		return nil, port.ErrKeyNotFound
	}
	return v, nil
}

func (kv *memKV) Put(_ context.Context, key string, value []byte) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if kv.putErr != nil {
		return kv.putErr
	}
	kv.data[key] = value
	return nil
}

func (kv *memKV) Delete(_ context.Context, key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	delete(kv.data, key)
	return nil
}

func (kv *memKV) has(key string) bool {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	_, ok := kv.data[key]
	return ok
}

func (kv *memKV) raw(key string) string {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	return string(kv.data[key])
}

func seedProducts(t *testing.T) []domain.Product {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c.Products()
}

func product(t *testing.T, id int) domain.Product {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	p, err := c.Product(id)
	require.NoError(t, err)
	return p
}

func ids(ps []domain.Product) []int {
	res := make([]int, len(ps))
	for i, p := range ps {
		res[i] = p.ID
	}
	return res
}
