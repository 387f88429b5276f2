package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"warbler/internal/observability"

	"github.com/redis/go-redis/v9"
)

const (
	userKeyPrefix         = "user:%d"
	messageKeyPrefix      = "message:%d"
	revokedTokenKeyPrefix = "revoked:%s"
)

const (
	UserTTL    = 5 * time.Minute
	MessageTTL = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

func MessageKey(messageID uint) string {
	return fmt.Sprintf(messageKeyPrefix, messageID)
}

func revokedTokenKey(jti string) string {
	return fmt.Sprintf(revokedTokenKeyPrefix, jti)
}

// Aside implements the cache-aside pattern: return the cached value at key
// if present, otherwise run load, cache its result, and return it. dest must
// be a pointer. Cache failures degrade to the loader; they never fail the call.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, load func() error) error {
	if client != nil {
		raw, err := client.Get(ctx, key).Bytes()
		if err == nil {
			if unmarshalErr := json.Unmarshal(raw, dest); unmarshalErr == nil {
				observability.CacheRequestsTotal.WithLabelValues("hit").Inc()
				return nil
			}
			// Corrupt entry; fall through to the loader and overwrite it.
		} else if !errors.Is(err, redis.Nil) {
			// Redis unreachable; serve from the database.
			observability.RedisErrorRate.WithLabelValues("get").Inc()
		}
		observability.CacheRequestsTotal.WithLabelValues("miss").Inc()
	}

	if err := load(); err != nil {
		return err
	}

	if client != nil {
		if raw, err := json.Marshal(dest); err == nil {
			if err := client.Set(ctx, key, raw, ttl).Err(); err != nil {
				observability.RedisErrorRate.WithLabelValues("set").Inc()
			}
		}
	}
	return nil
}

// Invalidate removes a single cache entry.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateUser removes the cached user entry.
func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateMessage removes the cached message entry.
func InvalidateMessage(ctx context.Context, messageID uint) {
	Invalidate(ctx, MessageKey(messageID))
}

// RevokeToken denylists a JWT by its jti until the token would expire anyway.
func RevokeToken(ctx context.Context, jti string, ttl time.Duration) {
	if client == nil || jti == "" {
		return
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	client.Set(ctx, revokedTokenKey(jti), "1", ttl)
}

// IsTokenRevoked reports whether the JWT with the given jti has been
// denylisted by logout. Without Redis every token stays valid until expiry.
func IsTokenRevoked(ctx context.Context, jti string) bool {
	if client == nil || jti == "" {
		return false
	}
	n, err := client.Exists(ctx, revokedTokenKey(jti)).Result()
	return err == nil && n > 0
}
