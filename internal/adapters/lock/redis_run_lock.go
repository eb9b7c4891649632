package lock

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	lockKey = "foodbridge:matching:run-lock"
	// A run that outlives the TTL has lost the lock; the TTL bounds how
	// long a crashed holder can block matching.
	lockTTL       = 2 * time.Minute
	retryInterval = 200 * time.Millisecond
)

// Redis-backed implementation of the RunLocker port, for deployments with
// more than one service replica. SET-NX with a TTL and a holder token;
// release deletes the key only when the token still matches.
type RedisRunLock struct {
	Client *redis.Client
}

func NewRedisRunLock(client *redis.Client) *RedisRunLock {
	return &RedisRunLock{Client: client}
}

// Lua compare-and-delete so a lock that expired and was re-acquired by
// another run is never released by the previous holder.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

func (l *RedisRunLock) Acquire(ctx context.Context) (func(), error) {
	token := uuid.NewString()

	for {
		ok, err := l.Client.SetNX(ctx, lockKey, token, lockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("redis run lock: setnx: %w", err)
		}
		if ok {
			break
		}

		select {
		case <-time.After(retryInterval):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	release := func() {
		// Best effort: an expired key means the TTL already released us.
		if err := releaseScript.Run(context.Background(), l.Client, []string{lockKey}, token).Err(); err != nil && err != redis.Nil {
			log.Printf("redis run lock: release failed: %v", err)
		}
	}
	return release, nil
}
