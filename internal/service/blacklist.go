package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist records revoked token IDs until their natural expiry.
type TokenBlacklist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

const blacklistKeyPrefix = "token:revoked:"

// RedisBlacklist stores revoked token IDs in Redis with a TTL, so
// entries disappear on their own once the token would have expired anyway.
type RedisBlacklist struct {
	client *redis.Client
}

func NewRedisBlacklist(client *redis.Client) *RedisBlacklist {
	return &RedisBlacklist{client: client}
}

func (b *RedisBlacklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired, nothing to record
		return nil
	}
	return b.client.Set(ctx, blacklistKeyPrefix+tokenID, "1", ttl).Err()
}

func (b *RedisBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
