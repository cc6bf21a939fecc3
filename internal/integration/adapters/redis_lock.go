// Package adapters provides infrastructure-backed implementations of the
// application adapter interfaces.
package adapters

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/expensebot/backend/internal/application/adapter"
)

// releaseScript deletes the lock only while it still holds this pass's
// token, so a holder that outlived its TTL cannot free a newer pass's lock.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisGenerationLock implements adapter.GenerationLock with a Redis
// SET NX lock per (rule, local date). The TTL guards against a crashed
// holder; the ledger's unique index catches anything that slips through
// after expiry.
type RedisGenerationLock struct {
	client *redis.Client
	ttl    time.Duration

	mu     sync.Mutex
	tokens map[string]string
}

// NewRedisGenerationLock creates a new Redis-backed generation lock.
func NewRedisGenerationLock(client *redis.Client, ttl time.Duration) *RedisGenerationLock {
	return &RedisGenerationLock{
		client: client,
		ttl:    ttl,
		tokens: make(map[string]string),
	}
}

// TryAcquire attempts to take the lock. Returns false when another
// generation pass holds it.
func (l *RedisGenerationLock) TryAcquire(ctx context.Context, ruleID uuid.UUID, localDate time.Time) (bool, error) {
	key := lockKey(ruleID, localDate)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil || !ok {
		return false, err
	}

	l.mu.Lock()
	l.tokens[key] = token
	l.mu.Unlock()
	return true, nil
}

// Release frees the lock if this instance still holds it. Releasing an
// expired lock that another pass re-acquired is a no-op.
func (l *RedisGenerationLock) Release(ctx context.Context, ruleID uuid.UUID, localDate time.Time) error {
	key := lockKey(ruleID, localDate)

	l.mu.Lock()
	token, held := l.tokens[key]
	delete(l.tokens, key)
	l.mu.Unlock()
	if !held {
		return nil
	}

	return releaseScript.Run(ctx, l.client, []string{key}, token).Err()
}

func lockKey(ruleID uuid.UUID, localDate time.Time) string {
	return fmt.Sprintf("genlock:%s:%s", ruleID, localDate.Format("2006-01-02"))
}

// Ensure implementation satisfies the interface.
var _ adapter.GenerationLock = (*RedisGenerationLock)(nil)
