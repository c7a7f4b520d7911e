package token

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const cacheKeyPrefix = "token/details/"

// CachingDetailsService decorates a DetailsService with a Badger-backed cache.
// Only resolved tokens are cached; misses are always forwarded.
type CachingDetailsService struct {
	db   *badger.DB
	next DetailsService
	ttl  time.Duration
}

// OpenCache opens the Badger database used for caching token details.
// An empty directory opens an in-memory database. The caller must close it.
func OpenCache(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open token details cache: %w", err)
	}

	return db, nil
}

// NewCachingDetailsService returns a DetailsService that answers from db when it can
// and otherwise asks next, caching what it returns for ttl. A zero ttl never expires.
func NewCachingDetailsService(db *badger.DB, next DetailsService, ttl time.Duration) *CachingDetailsService {
	return &CachingDetailsService{db: db, next: next, ttl: ttl}
}

// GetTokenDetails retrieves the token details from the cache or the decorated service.
func (c *CachingDetailsService) GetTokenDetails(ctx context.Context, processID string) (*Details, error) {
	key := []byte(cacheKeyPrefix + processID)

	cached, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		slog.DebugContext(ctx, "Token details served from cache", "process_id", processID)

		return cached, nil
	}

	details, err := c.next.GetTokenDetails(ctx, processID)
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, nil
	}

	if err := c.store(key, details); err != nil {
		// the lookup itself succeeded, so only report the cache failure
		slog.ErrorContext(ctx, "Failed to cache token details", "process_id", processID, "error", err)
	}

	return details, nil
}

func (c *CachingDetailsService) lookup(key []byte) (*Details, error) {
	var details *Details
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			details = &Details{}

			return json.Unmarshal(val, details)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read token details cache: %w", err)
	}

	return details, nil
}

func (c *CachingDetailsService) store(key []byte, details *Details) error {
	val, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("marshal token details: %w", err)
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(key, val)
		if c.ttl > 0 {
			entry = entry.WithTTL(c.ttl)
		}

		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("write token details cache: %w", err)
	}

	return nil
}
