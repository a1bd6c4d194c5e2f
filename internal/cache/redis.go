package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// DashboardSummaryKey caches the dashboard headline figures.
const DashboardSummaryKey = "dashboard:summary"

var client *redis.Client

// Init connects to Redis. The cache is strictly optional: on failure the
// client stays nil and every helper degrades to a miss.
func Init(addr, password string) error {
	if addr == "" {
		addr = "localhost:6379"
	}
	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// Enabled reports whether a Redis connection is live.
func Enabled() bool {
	return client != nil
}

// GetJSON loads a cached value into v. Returns false on miss, error or
// when the cache is disabled.
func GetJSON(ctx context.Context, key string, v interface{}) bool {
	if client == nil {
		return false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

// SetJSON stores v under key with a TTL. Failures are ignored.
func SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if client == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// Invalidate drops a key after a write that makes it stale.
func Invalidate(ctx context.Context, key string) {
	if client == nil {
		return
	}
	client.Del(ctx, key)
}
