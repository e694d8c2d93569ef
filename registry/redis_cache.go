package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRecordCache is an optional process-external cache of
// ProviderRecord metadata (never of live *siumai.Client values, which
// hold an *http.Client and cannot cross serialization). It exists for
// multi-process deployments that want every process to see registry
// changes (a new alias, an updated base URL) without a redeploy.
type RedisRecordCache struct {
	client     redis.UniversalClient
	prefix     string
	defaultTTL time.Duration
}

// RedisRecordCacheOptions configures the Redis key prefix and default
// entry lifetime for a record cache.
type RedisRecordCacheOptions struct {
	Addr       string
	Password   string
	DB         int
	KeyPrefix  string
	DefaultTTL time.Duration
}

// NewRedisRecordCache dials Redis (via the supplied client, so callers
// can hand in a *redis.Client or a *miniredis-backed client in tests)
// and wraps it with the key-prefix/TTL conventions above.
func NewRedisRecordCache(client redis.UniversalClient, opts RedisRecordCacheOptions) *RedisRecordCache {
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = "siumai"
	}
	if opts.DefaultTTL == 0 {
		opts.DefaultTTL = 5 * time.Minute
	}
	return &RedisRecordCache{client: client, prefix: opts.KeyPrefix, defaultTTL: opts.DefaultTTL}
}

func (c *RedisRecordCache) key(id string) string {
	return fmt.Sprintf("%s:provider:%s", c.prefix, id)
}

// Get fetches and decodes the record registered under id, if cached.
func (c *RedisRecordCache) Get(ctx context.Context, id string) (ProviderRecord, bool, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Result()
	if err == redis.Nil {
		return ProviderRecord{}, false, nil
	}
	if err != nil {
		return ProviderRecord{}, false, err
	}
	var rec ProviderRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return ProviderRecord{}, false, err
	}
	return rec, true, nil
}

// Set stores record under id with the cache's default TTL.
func (c *RedisRecordCache) Set(ctx context.Context, id string, record ProviderRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(id), raw, c.defaultTTL).Err()
}

// Delete removes a cached record, e.g. after Register overwrites it
// locally and the change needs to propagate to other processes.
func (c *RedisRecordCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}
