// Package cache memoizes zone geometry lookups.
package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/jengzang/pollinator-abundance/internal/models"
	"github.com/jengzang/pollinator-abundance/internal/pollination"
)

// GeometryCache wraps a GeometryResolver and remembers the zones it resolved.
// Concurrent misses for the same zone share a single lookup that is not tied to
// any caller's cancellation. Errors are not cached.
type GeometryCache struct {
	next  pollination.GeometryResolver
	zones sync.Map // string -> models.Zone
	group singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

// NewGeometryCache creates a cache in front of next
func NewGeometryCache(next pollination.GeometryResolver) *GeometryCache {
	return &GeometryCache{next: next}
}

func zoneCacheKey(kind models.ZoneKind, id int64) string {
	return fmt.Sprintf("%s/%d", kind, id)
}

// Zone implements pollination.GeometryResolver. Callers receive their own copy.
func (c *GeometryCache) Zone(ctx context.Context, kind models.ZoneKind, id int64) (models.Zone, error) {
	key := zoneCacheKey(kind, id)
	if v, ok := c.zones.Load(key); ok {
		c.hits.Add(1)
		return v.(models.Zone).Clone(), nil
	}

	// The shared lookup outlives any single caller; each caller stops waiting
	// when its own context ends.
	ch := c.group.DoChan(key, func() (interface{}, error) {
		if v, ok := c.zones.Load(key); ok {
			return v, nil
		}
		c.misses.Add(1)
		z, err := c.next.Zone(context.WithoutCancel(ctx), kind, id)
		if err != nil {
			return nil, err
		}
		c.zones.Store(key, z.Clone())
		return z, nil
	})

	select {
	case <-ctx.Done():
		return models.Zone{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return models.Zone{}, res.Err
		}
		return res.Val.(models.Zone).Clone(), nil
	}
}

// Stats returns the number of cache hits and resolver lookups
func (c *GeometryCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
