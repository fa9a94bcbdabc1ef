package kvstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/port"
	"github.com/syndtr/goleveldb/leveldb"
	lverrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

var _ port.KVStore = (*LevelDB)(nil)

// LevelDB is the default local key-value store.
type LevelDB struct {
	db        *leveldb.DB
	syncWrite bool
}

// OpenLevelDB opens or creates the database at path. A corrupted database
// is recovered rather than rejected.
func OpenLevelDB(path string) (LevelDB, error) {
	const op = "OpenLevelDB"
	log := slog.With("op", op, "path", path)

	db, err := leveldb.OpenFile(path, nil)
	if lverrors.IsCorrupted(err) {
		log.Warn("database is corrupted, recovering", "err", err)
		db, err = leveldb.RecoverFile(path, nil)
	}
	if err != nil {
		return LevelDB{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("database is opened")
	return LevelDB{db: db, syncWrite: true}, nil
}

// OpenMemLevelDB opens a database that lives only in memory.
func OpenMemLevelDB() (LevelDB, error) {
	const op = "OpenMemLevelDB"

	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return LevelDB{}, fmt.Errorf("%s: %w", op, err)
	}
	return LevelDB{db: db}, nil
}

func (s LevelDB) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "LevelDB.Get"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	v, err := s.db.Get([]byte(key), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, port.ErrKeyNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

func (s LevelDB) Put(ctx context.Context, key string, value []byte) error {
	const op = "LevelDB.Put"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := s.db.Put([]byte(key), value, &opt.WriteOptions{Sync: s.syncWrite})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s LevelDB) Delete(ctx context.Context, key string) error {
	const op = "LevelDB.Delete"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := s.db.Delete([]byte(key), &opt.WriteOptions{Sync: s.syncWrite})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s LevelDB) Close() {
	const op = "LevelDB.Close"
	log := slog.With("op", op)

	log.Info("closing database...")
	if err := s.db.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("database is closed")
}
