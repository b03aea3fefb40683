package taxonomy

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gnames/gnbirds/pkg/catalog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Cache is a process-wide Loader that keeps every loaded table in
// memory. Tables are immutable, so entries are never invalidated.
// Concurrent requests for the same table trigger only one load. Failed
// loads are not cached.
type Cache struct {
	loader Loader
	mu     sync.RWMutex
	tables map[catalog.Key]*Table
	group  singleflight.Group
}

// NewCache creates a Cache in front of a loader.
func NewCache(loader Loader) *Cache {
	return &Cache{
		loader: loader,
		tables: make(map[catalog.Key]*Table),
	}
}

// Load returns a cached table or loads it.
func (c *Cache) Load(
	ctx context.Context,
	authority string,
	year int,
) (*Table, error) {
	key := catalog.Key{Authority: catalog.NormAuthority(authority), Year: year}
	if res, ok := c.get(key); ok {
		return res, nil
	}

	flightKey := fmt.Sprintf("%s|%d", key.Authority, key.Year)
	v, err, _ := c.group.Do(flightKey, func() (any, error) {
		if res, ok := c.get(key); ok {
			return res, nil
		}
		res, err := c.loader.Load(ctx, key.Authority, key.Year)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.tables[key] = res
		c.mu.Unlock()
		slog.Debug("Taxonomy table cached",
			"authority", key.Authority, "year", key.Year, "rows", res.Len())
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Table), nil
}

// Warm loads tables concurrently using up to jobs workers.
func (c *Cache) Warm(ctx context.Context, keys []catalog.Key, jobs int) error {
	g, gCtx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for _, k := range keys {
		g.Go(func() error {
			_, err := c.Load(gCtx, k.Authority, k.Year)
			return err
		})
	}
	return g.Wait()
}

// Len returns the number of cached tables.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tables)
}

func (c *Cache) get(key catalog.Key) (*Table, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res, ok := c.tables[key]
	return res, ok
}
