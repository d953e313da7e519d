package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/api-sage/cfc-rewards/src/internal/logger"
	"github.com/redis/go-redis/v9"
)

const referralCodeKeyPrefix = "cfc:referral-code:"

// ReferralCodeCache maps issued referral codes to their owner. A miss is never an error.
type ReferralCodeCache interface {
	Lookup(ctx context.Context, code string) (string, bool)
	Remember(ctx context.Context, code string, userID string)
}

type RedisReferralCodeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisReferralCodeCache(client *redis.Client, ttl time.Duration) *RedisReferralCodeCache {
	return &RedisReferralCodeCache{client: client, ttl: ttl}
}

func (c *RedisReferralCodeCache) Lookup(ctx context.Context, code string) (string, bool) {
	userID, err := c.client.Get(ctx, referralCodeKey(code)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("referral code cache lookup failed", logger.Fields{
				"error": err.Error(),
			})
		}
		return "", false
	}
	return userID, userID != ""
}

func (c *RedisReferralCodeCache) Remember(ctx context.Context, code string, userID string) {
	if err := c.client.Set(ctx, referralCodeKey(code), userID, c.ttl).Err(); err != nil {
		logger.Warn("referral code cache store failed", logger.Fields{
			"error": err.Error(),
		})
	}
}

func referralCodeKey(code string) string {
	return referralCodeKeyPrefix + strings.ToUpper(strings.TrimSpace(code))
}

// NoopReferralCodeCache is used when no redis address is configured.
type NoopReferralCodeCache struct{}

func (NoopReferralCodeCache) Lookup(context.Context, string) (string, bool) { return "", false }

func (NoopReferralCodeCache) Remember(context.Context, string, string) {}
