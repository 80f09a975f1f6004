package services

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlocklist records revoked JWT IDs until their natural expiry.
type TokenBlocklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type redisTokenBlocklist struct {
	client *redis.Client
}

// NewTokenBlocklist wraps a Redis client. A nil client yields a blocklist that
// never revokes, so tokens are only bounded by their expiry.
func NewTokenBlocklist(client *redis.Client) TokenBlocklist {
	return &redisTokenBlocklist{client: client}
}

func (b *redisTokenBlocklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if b.client == nil || jti == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return b.client.Set(ctx, blocklistKey(jti), "revoked", ttl).Err()
}

func (b *redisTokenBlocklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if b.client == nil || jti == "" {
		return false, nil
	}
	_, err := b.client.Get(ctx, blocklistKey(jti)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func blocklistKey(jti string) string {
	return "token:blocklist:" + jti
}
