package lock

import (
	"context"
	"sync"
)

// In-process implementation of the RunLocker port. Sufficient when exactly
// one service replica runs matching; multi-replica deployments use the
// Redis locker instead.
type LocalRunLock struct {
	mu sync.Mutex
}

func NewLocalRunLock() *LocalRunLock {
	return &LocalRunLock{}
}

func (l *LocalRunLock) Acquire(ctx context.Context) (func(), error) {
	acquired := make(chan struct{})
	go func() {
		l.mu.Lock()
		close(acquired)
	}()

	select {
	case <-acquired:
		var once sync.Once
		return func() { once.Do(l.mu.Unlock) }, nil
	case <-ctx.Done():
		// The goroutine still takes the mutex eventually; hand it back then.
		go func() {
			<-acquired
			l.mu.Unlock()
		}()
		return nil, ctx.Err()
	}
}
