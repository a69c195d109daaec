package tokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rustblog/rustblog/internal/common"
)

// RedisRegistry keeps registry entries in Redis. The client pools
// connections internally, so it is safe for concurrent use.
type RedisRegistry struct {
	client *redis.Client
}

func NewRedisRegistry(client *redis.Client) *RedisRegistry {
	return &RedisRegistry{client: client}
}

func (r *RedisRegistry) Get(ctx context.Context, key string) (string, error) {
	token, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("registry error: %w", err)
	}
	return token, nil
}

func (r *RedisRegistry) Save(ctx context.Context, key string, token string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, token, ttl).Err(); err != nil {
		return fmt.Errorf("registry error: %w", err)
	}
	return nil
}

func (r *RedisRegistry) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("registry error: %w", err)
	}
	return nil
}
