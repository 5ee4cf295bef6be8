package badgercache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"wistiamirror/internal/domain"
)

// Cache implements domain.PlaylistCache on an embedded Badger database.
type Cache struct {
	db *badger.DB
}

// Open opens (or creates) the Badger database at path. An empty path opens an
// in-memory database, used by tests.
func Open(path string) (*Cache, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts.Logger = nil // Badger's internal logging is noisy

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache db: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("get cache entry %s: %w", key, err)
	}
	return value, nil
}

func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), value).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("set cache entry %s: %w", key, err)
	}
	return nil
}

// Invalidate deletes both playlist keys. The two scopes are cached
// independently but every mutation evicts both.
func (c *Cache) Invalidate(_ context.Context) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		for _, key := range []string{domain.CacheKeyPlaylist, domain.CacheKeyPlaylistAll} {
			if err := txn.Delete([]byte(key)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate playlist cache: %w", err)
	}
	return nil
}
