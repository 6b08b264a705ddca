package scheduler

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Guard ensures a trigger minute fires at most once, even when the poll
// interval observes the same minute twice or several scheduler replicas run.
type Guard interface {
	// Acquire claims the trigger key and returns true when this caller won it.
	Acquire(ctx context.Context, key string) (bool, error)
	// Release gives the key back so a later tick may retry a failed firing.
	Release(ctx context.Context, key string) error
}

// RedisGuard claims trigger keys in Redis with a TTL.
type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisGuard creates a Guard using the provided Redis client and TTL.
func NewRedisGuard(client *redis.Client, ttl time.Duration) *RedisGuard {
	return &RedisGuard{client: client, ttl: ttl}
}

func (g *RedisGuard) Acquire(ctx context.Context, key string) (bool, error) {
	return g.client.SetNX(ctx, key, 1, g.ttl).Result()
}

func (g *RedisGuard) Release(ctx context.Context, key string) error {
	return g.client.Del(ctx, key).Err()
}
