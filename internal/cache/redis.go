package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/mdobak/go-xerrors"
)

const redisKeyPrefix = "pagecache:"

// RedisCache backs the page cache with Redis so a multi-process deployment
// shares one staleness window.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(addr string) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*Entry, bool, error) {
	payload, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, xerrors.New(err)
	}

	entry := &Entry{}
	if err := json.Unmarshal(payload, entry); err != nil {
		return nil, false, xerrors.New(err)
	}

	return entry, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, entry *Entry, ttl time.Duration) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return xerrors.New(err)
	}

	if err := c.client.Set(ctx, redisKeyPrefix+key, payload, ttl).Err(); err != nil {
		return xerrors.New(err)
	}

	return nil
}

func (c *RedisCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return xerrors.New(err)
		}
	}
	if err := iter.Err(); err != nil {
		return xerrors.New(err)
	}

	return nil
}
