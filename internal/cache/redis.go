package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces response entries so they can share a redis database
// with other keys without colliding.
const keyPrefix = "aidebug:response:"

// ResponseCache stores completed response text keyed by a request hash.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(addr, password string, db int, ttl time.Duration) *ResponseCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &ResponseCache{
		client: rdb,
		ttl:    ttl,
	}
}

func (r *ResponseCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, responseKey(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *ResponseCache) Set(ctx context.Context, key string, value string) error {
	return r.client.Set(ctx, responseKey(key), value, r.ttl).Err()
}

func responseKey(key string) string {
	return keyPrefix + key
}
