package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidwall/buntdb"

	"github.com/raykavin/chartsnap/core"
)

// DefaultCacheTTL is how long fetched remote bars stay valid
const DefaultCacheTTL = time.Hour

// Cache is a buntdb-backed store for raw remote fetch results, so
// repeated invocations within the TTL reuse the previous download.
// Only ingested bars are cached; computed series are never persisted.
type Cache struct {
	db *buntdb.DB
}

// OpenCache opens (or creates) a cache at the given file path.
// Use ":memory:" for an ephemeral cache.
func OpenCache(path string) (*Cache, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open quote cache: %w", err)
	}

	if err := db.SetConfig(buntdb.Config{SyncPolicy: buntdb.Never}); err != nil {
		return nil, fmt.Errorf("failed to configure quote cache: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close releases the underlying database
func (c *Cache) Close() error { return c.db.Close() }

// Get returns the cached bars for a symbol, if present and unexpired
func (c *Cache) Get(symbol string) ([]core.Candle, bool) {
	var raw string
	err := c.db.View(func(tx *buntdb.Tx) error {
		value, err := tx.Get(cacheKey(symbol))
		raw = value
		return err
	})
	if err != nil {
		return nil, false
	}

	var candles []core.Candle
	if err := json.Unmarshal([]byte(raw), &candles); err != nil {
		return nil, false
	}
	return candles, true
}

// Put stores bars for a symbol with the given TTL
func (c *Cache) Put(symbol string, candles []core.Candle, ttl time.Duration) error {
	payload, err := json.Marshal(candles)
	if err != nil {
		return err
	}

	return c.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(cacheKey(symbol), string(payload),
			&buntdb.SetOptions{Expires: true, TTL: ttl})
		return err
	})
}

func cacheKey(symbol string) string { return "quotes:" + symbol }

// cachedSource decorates a remote source with the quote cache
type cachedSource struct {
	src   Source
	cache *Cache
	ttl   time.Duration
	log   core.Logger
}

// WithCache wraps a source so its results are served from and stored
// into the given cache
func WithCache(src Source, cache *Cache, ttl time.Duration, log core.Logger) Source {
	return &cachedSource{src: src, cache: cache, ttl: ttl, log: log}
}

func (c *cachedSource) Symbol() string { return c.src.Symbol() }

func (c *cachedSource) Candles(ctx context.Context) ([]core.Candle, error) {
	if candles, ok := c.cache.Get(c.src.Symbol()); ok {
		c.log.Debugf("quote cache hit for %s (%d bars)", c.src.Symbol(), len(candles))
		return candles, nil
	}

	candles, err := c.src.Candles(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Put(c.src.Symbol(), candles, c.ttl); err != nil {
		c.log.WithError(err).Warn("failed to cache quotes")
	}
	return candles, nil
}
