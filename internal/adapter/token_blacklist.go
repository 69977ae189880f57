package adapter

import (
	"context"
	"fmt"
	"time"

	"quizly/internal/domain"

	"github.com/redis/go-redis/v9"
)

const blacklistKeyPrefix = "token_blacklist:"

// RedisTokenBlacklist stores revoked refresh-token ids in Redis with a
// TTL matching the token's remaining lifetime, so entries expire on
// their own once the token would have anyway.
type RedisTokenBlacklist struct {
	client *redis.Client
}

// NewRedisTokenBlacklist creates a new RedisTokenBlacklist instance.
func NewRedisTokenBlacklist(client *redis.Client) domain.TokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

// Revoke marks the token id as revoked for ttlSeconds.
func (b *RedisTokenBlacklist) Revoke(ctx context.Context, tokenID string, ttlSeconds int64) error {
	if ttlSeconds <= 0 {
		// Token already expired; nothing to record.
		return nil
	}
	key := blacklistKeyPrefix + tokenID
	if err := b.client.Set(ctx, key, "revoked", time.Duration(ttlSeconds)*time.Second).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token id has been revoked.
func (b *RedisTokenBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return n > 0, nil
}
