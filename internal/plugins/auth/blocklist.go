package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// blocklistKeyPrefix namespaces revoked tokens in Redis.
const blocklistKeyPrefix = "token:"

// blockedSentinel is the value stored under a revoked token's key. The
// value itself carries no information; existence of the key is the signal.
const blockedSentinel = "Blocked"

// Blocklist records session tokens revoked before their natural expiry.
// RequireAuth consults it on every protected request; a token is usable
// only while it verifies, is unexpired, AND has no blocklist entry.
type Blocklist interface {
	// Block revokes a token. The entry expires at the token's own expiry
	// instant -- it never needs to outlive the token's validity window.
	Block(ctx context.Context, token string, expiresAt time.Time) error

	// Contains reports whether the token has an unexpired revocation entry.
	Contains(ctx context.Context, token string) (bool, error)
}

// redisBlocklist implements Blocklist on a shared Redis client. Expiry
// sweeping comes for free from Redis key TTLs.
type redisBlocklist struct {
	rdb *redis.Client
}

// NewRedisBlocklist creates the production blocklist.
func NewRedisBlocklist(rdb *redis.Client) Blocklist {
	return &redisBlocklist{rdb: rdb}
}

func (b *redisBlocklist) Block(ctx context.Context, token string, expiresAt time.Time) error {
	key := blocklistKeyPrefix + token

	// SET then EXPIREAT in one round-trip. EXPIREAT pins the entry's
	// lifetime to the token's own expiry timestamp, so Redis garbage
	// collects it the moment the token would have died anyway.
	pipe := b.rdb.TxPipeline()
	pipe.Set(ctx, key, blockedSentinel, 0)
	pipe.ExpireAt(ctx, key, expiresAt)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("recording revoked token: %w", err)
	}

	return nil
}

func (b *redisBlocklist) Contains(ctx context.Context, token string) (bool, error) {
	n, err := b.rdb.Exists(ctx, blocklistKeyPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("checking token blocklist: %w", err)
	}
	return n > 0, nil
}
