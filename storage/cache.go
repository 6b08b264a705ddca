package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/justnitesh531/orderflow/domain"
)

type backend interface {
	LoadDraft(ctx context.Context) (domain.Draft, string, error)
	SaveDraft(ctx context.Context, draft domain.Draft, etag string) error
	ResetDraft(ctx context.Context) error
}

// Cache wraps a Storage instance with Redis-backed caching of the draft
// document. The cached entry carries the ETag alongside the draft so writes
// started from a cached read still go through the optimistic-concurrency
// check; every write, successful or conflicted, evicts the entry.
type Cache struct {
	*Storage
	base  backend
	redis *redis.Client
	ttl   time.Duration
}

// NewCache creates a caching Storage wrapper using the provided Redis
// client and TTL.
func NewCache(base backend, client *redis.Client, ttl time.Duration) *Cache {
	if base == nil {
		panic("storage.NewCache: base storage is nil")
	}
	if ttl < 0 {
		ttl = 0
	}

	c := &Cache{
		base:  base,
		redis: client,
		ttl:   ttl,
	}
	if s, ok := base.(*Storage); ok {
		c.Storage = s
	}
	return c
}

type cachedDraft struct {
	Draft domain.Draft `json:"draft"`
	ETag  string       `json:"etag"`
}

func (c *Cache) LoadDraft(ctx context.Context) (domain.Draft, string, error) {
	if draft, etag, ok := c.loadFromCache(ctx); ok {
		return draft, etag, nil
	}

	draft, etag, err := c.base.LoadDraft(ctx)
	if err != nil {
		return domain.Draft{}, "", err
	}

	c.store(ctx, draft, etag)
	return draft, etag, nil
}

func (c *Cache) SaveDraft(ctx context.Context, draft domain.Draft, etag string) error {
	err := c.base.SaveDraft(ctx, draft, etag)
	c.evict(ctx)
	return err
}

func (c *Cache) ResetDraft(ctx context.Context) error {
	if err := c.base.ResetDraft(ctx); err != nil {
		return err
	}
	c.evict(ctx)
	return nil
}

func (c *Cache) loadFromCache(ctx context.Context) (domain.Draft, string, bool) {
	if c.redis == nil {
		return domain.Draft{}, "", false
	}
	data, err := c.redis.Get(ctx, draftCacheKey()).Bytes()
	if err != nil {
		if err != redis.Nil {
			// On redis errors fall back to the backing storage without failing.
			_ = c.redis.Del(ctx, draftCacheKey()).Err()
		}
		return domain.Draft{}, "", false
	}
	var cached cachedDraft
	if err := json.Unmarshal(data, &cached); err != nil {
		_ = c.redis.Del(ctx, draftCacheKey()).Err()
		return domain.Draft{}, "", false
	}
	if cached.Draft.Items == nil {
		cached.Draft.Items = []domain.Item{}
	}
	return cached.Draft, cached.ETag, true
}

func (c *Cache) store(ctx context.Context, draft domain.Draft, etag string) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := json.Marshal(cachedDraft{Draft: draft, ETag: etag})
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, draftCacheKey(), data, c.ttl).Err()
}

func (c *Cache) evict(ctx context.Context) {
	if c.redis == nil {
		return
	}
	_, _ = c.redis.Del(ctx, draftCacheKey()).Result()
}

func draftCacheKey() string {
	return "draft:" + draftPartitionKey + ":" + draftRowKey
}
