// Package kvstore provides the key-value stores the storefront persists to.
package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/niksmo/storefront/internal/core/port"
)

const (
	BackendLevelDB  = "leveldb"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

var ErrUnknownBackend = errors.New("unknown kv backend")

type Store interface {
	port.KVStore
	Close()
}

type Config struct {
	Backend     string
	LevelDBPath string
	SQLDB       string
}

// Open returns the store selected by cfg.Backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	const op = "kvstore.Open"

	var (
		s   Store
		err error
	)
	switch cfg.Backend {
	case BackendLevelDB, "":
		s, err = OpenLevelDB(cfg.LevelDBPath)
	case BackendMemory:
		s, err = OpenMemLevelDB()
	case BackendPostgres:
		s, err = NewPostgres(ctx, cfg.SQLDB)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}
