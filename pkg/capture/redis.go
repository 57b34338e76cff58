package capture

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend persists records in Redis. Intended for server-side capture
// where several instances ingest events for different sessions; the Backend
// contract stays synchronous, so calls use a short internal timeout instead
// of a caller-supplied context.
type RedisBackend struct {
	rdb     *redis.Client
	ttl     time.Duration
	timeout time.Duration
}

// NewRedisBackend wraps an existing client. ttl == 0 keeps records until
// explicitly cleared or evicted.
func NewRedisBackend(rdb *redis.Client, ttl time.Duration) *RedisBackend {
	return &RedisBackend{
		rdb:     rdb,
		ttl:     ttl,
		timeout: 5 * time.Second,
	}
}

func (b *RedisBackend) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), b.timeout)
}

func (b *RedisBackend) Get(key string) ([]byte, bool, error) {
	ctx, cancel := b.ctx()
	defer cancel()

	data, err := b.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (b *RedisBackend) Set(key string, value []byte) error {
	ctx, cancel := b.ctx()
	defer cancel()

	return b.rdb.Set(ctx, key, value, b.ttl).Err()
}

func (b *RedisBackend) Remove(key string) error {
	ctx, cancel := b.ctx()
	defer cancel()

	return b.rdb.Del(ctx, key).Err()
}

func (b *RedisBackend) Keys(prefix string) ([]string, error) {
	ctx, cancel := b.ctx()
	defer cancel()

	keys, err := b.rdb.Keys(ctx, prefix+"*").Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}
