package ports

import "context"

// ReleaseFunc gives up an instance slot acquired from an InstanceGuard.
type ReleaseFunc func(ctx context.Context) error

// InstanceGuard enforces that at most one console exists per key.
type InstanceGuard interface {
	// Acquire claims key without blocking.
	// Returns domain.ErrDuplicateInstance if the key is already held.
	Acquire(ctx context.Context, key string) (ReleaseFunc, error)
}
