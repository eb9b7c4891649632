package ports

import "context"

// Port: mutual exclusion for matching runs. Two concurrent runs reading
// overlapping open-set snapshots would both allocate the same residual
// supply, so every run must hold the lock from snapshot read through apply.
type RunLocker interface {
	// Block until the run lock is held or ctx is done. The returned release
	// function must be called exactly once.
	Acquire(ctx context.Context) (release func(), err error)
}
