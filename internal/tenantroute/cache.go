// internal/tenantroute/cache.go
//
// Lazy custom-domain route cache.
//
// Context
// -------
// Every request on a tenant hostname needs the published landing page
// bound to that domain.  Hitting MySQL per request would put the storage
// backend on the serving hot path, so resolved pages are cached in a
// sync.Map keyed by hostname, loaded on demand behind a singleflight
// barrier, and evicted on idle TTL or LRU pressure.  Negative results
// are never cached: a domain published a second ago must route on its
// next request.

package tenantroute

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/singleflight"

	"github.com/converta/converta/internal/landing"
	"github.com/converta/converta/internal/metrics"
)

// Static defaults.  Override via the New parameters if desired.
const (
	IdleTTL       = 30 * time.Minute
	MaxEntries    = 500
	EvictInterval = 5 * time.Minute
)

type entry struct {
	page     *landing.Page
	lastSeen int64 // UnixNano
}

// Cache lazily loads custom-domain pages, stores them in a sync.Map, and
// evicts them on idle TTL or LRU pressure.
type Cache struct {
	db          *sqlx.DB
	sfg         singleflight.Group
	m           sync.Map
	evictTicker *time.Ticker
	idleTTL     time.Duration
	maxEntries  int
}

// New constructs a Cache and starts the background evictor.
func New(db *sqlx.DB, idleTTL time.Duration, maxEntries int) *Cache {
	c := &Cache{
		db:         db,
		idleTTL:    idleTTL,
		maxEntries: maxEntries,
	}
	c.evictTicker = time.NewTicker(EvictInterval)
	go c.evictLoop()
	return c
}

// Resolve returns the published page bound to host, loading it on demand.
// landing.ErrNotFound propagates uncached.
func (c *Cache) Resolve(ctx context.Context, host string) (*landing.Page, error) {
	if v, ok := c.m.Load(host); ok {
		ent := v.(*entry)
		atomic.StoreInt64(&ent.lastSeen, time.Now().UnixNano())
		return ent.page, nil
	}

	v, err, _ := c.sfg.Do(host, func() (interface{}, error) {
		// Double-check after singleflight barrier.
		if v, ok := c.m.Load(host); ok {
			ent := v.(*entry)
			atomic.StoreInt64(&ent.lastSeen, time.Now().UnixNano())
			return ent.page, nil
		}
		p, err := landing.ByCustomDomain(ctx, c.db, host)
		if err != nil {
			if err != landing.ErrNotFound {
				metrics.DomainLoadErrorsTotal.Inc()
			}
			return nil, err
		}
		ent := &entry{
			page:     p,
			lastSeen: time.Now().UnixNano(),
		}
		c.m.Store(host, ent)
		metrics.DomainLoadTotal.Inc()
		metrics.CachedDomains.Inc()
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*landing.Page), nil
}
