package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "assetdesk:assets:list:"
	generationKey = keyPrefix + "gen"
)

// Redis is a ListCache on a Redis server. Invalidation bumps a generation
// counter that is part of every key, so stale pages simply age out by TTL.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Dial creates a client for addr and checks it answers PING.
func Dial(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (c *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	full, err := c.key(ctx, key)
	if err != nil {
		return nil, false, err
	}
	b, err := c.client.Get(ctx, full).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *Redis) Set(ctx context.Context, key string, value []byte) error {
	full, err := c.key(ctx, key)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, full, value, c.ttl).Err()
}

func (c *Redis) InvalidateLists(ctx context.Context) error {
	return c.client.Incr(ctx, generationKey).Err()
}

func (c *Redis) key(ctx context.Context, key string) (string, error) {
	gen, err := c.client.Get(ctx, generationKey).Result()
	if errors.Is(err, redis.Nil) {
		gen = "0"
	} else if err != nil {
		return "", err
	}
	return keyPrefix + gen + ":" + key, nil
}
