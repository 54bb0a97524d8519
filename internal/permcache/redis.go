package permcache

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"

	"upengage.io/seeder/internal/auth"
)

const DefaultKey = "spatie.permission.cache"

const scanBatch = 100

// RedisCache drops the permission cache read by the platform's authorization
// layer. Prefixed variants of the key (per guard or team) are dropped too.
type RedisCache struct {
	client *redis.Client
	key    string
}

var _ auth.Cache = (*RedisCache)(nil)

func NewRedisCache(client *redis.Client, key string) *RedisCache {
	if key == "" {
		key = DefaultKey
	}
	return &RedisCache{client: client, key: key}
}

// New returns a cache for the given redis URL, or auth.NopCache when url is empty.
// The returned close function releases the connection.
func New(url, key string) (auth.Cache, func() error, error) {
	if url == "" {
		return auth.NopCache{}, func() error { return nil }, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, nil, errors.Wrap(err, "parse redis url")
	}
	client := redis.NewClient(opts)
	return NewRedisCache(client, key), client.Close, nil
}

func (c *RedisCache) Forget(ctx context.Context) error {
	keys := []string{c.key}
	var cursor uint64
	for {
		batch, next, err := c.client.Scan(ctx, cursor, c.key+"*", scanBatch).Result()
		if err != nil {
			return errors.Wrap(err, "scan permission cache keys")
		}
		for _, k := range batch {
			if k != c.key {
				keys = append(keys, k)
			}
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return errors.Wrap(err, "delete permission cache")
	}
	return nil
}
