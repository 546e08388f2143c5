// internal/widget/cache.go
//
// Read-through Redis cache for public widget configuration.
//
// Context
// -------
// The widget config endpoint is fetched by every page embedding the
// WhatsApp button, so it is the highest-volume read in the system.  The
// row changes rarely; a short Redis TTL absorbs the fan-out without a
// per-request MySQL round trip.  Caching is optional: a nil *Cache (no
// redis.addr configured) degrades to straight DB reads, and any Redis
// error is swallowed so the endpoint never fails because the cache did.

package widget

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/converta/converta/internal/whatsapp"
)

const keyPrefix = "widget:whatsapp:"

// Cache wraps a Redis client.  Nil receiver means caching is disabled.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCache connects to addr.  ttl <= 0 defaults to one minute.
func NewCache(addr string, ttl time.Duration) *Cache {
	if addr == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: ttl,
	}
}

// Get returns the cached config for a workspace, or ok=false on miss,
// disabled cache, or any Redis error.
func (c *Cache) Get(ctx context.Context, workspaceID string) (*whatsapp.Config, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, keyPrefix+workspaceID).Bytes()
	if err != nil {
		if err != redis.Nil {
			zap.S().Debugw("widget cache read failed", "workspace", workspaceID, "err", err)
		}
		return nil, false
	}
	var cfg whatsapp.Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, false
	}
	return &cfg, true
}

// Set stores the config under the workspace key for the cache TTL.
func (c *Cache) Set(ctx context.Context, workspaceID string, cfg *whatsapp.Config) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, keyPrefix+workspaceID, raw, c.ttl).Err(); err != nil {
		zap.S().Debugw("widget cache write failed", "workspace", workspaceID, "err", err)
	}
}
