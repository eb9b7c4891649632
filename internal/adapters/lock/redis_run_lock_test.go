package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLock(t *testing.T) (*RedisRunLock, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisRunLock(client), mr
}

func TestRedisRunLockAcquireRelease(t *testing.T) {
	ctx := context.Background()
	l, mr := newTestLock(t)

	release, err := l.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if !mr.Exists(lockKey) {
		t.Fatal("lock key missing after acquire")
	}

	release()
	if mr.Exists(lockKey) {
		t.Fatal("lock key still present after release")
	}
}

func TestRedisRunLockBlocksSecondHolder(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLock(t)

	release, err := l.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	if _, err := l.Acquire(waitCtx); err == nil {
		t.Fatal("second acquire succeeded while the lock was held")
	}

	release()
	release2, err := l.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	release2()
}

func TestRedisRunLockReleaseKeepsNewHolder(t *testing.T) {
	ctx := context.Background()
	l, mr := newTestLock(t)

	release, err := l.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	// Simulate the TTL expiring and another run taking the lock.
	mr.FastForward(lockTTL + time.Second)
	release2, err := l.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire after expiry: %v", err)
	}

	// The stale holder's release must not delete the new holder's key.
	release()
	if !mr.Exists(lockKey) {
		t.Fatal("stale release deleted the new holder's lock")
	}
	release2()
}
