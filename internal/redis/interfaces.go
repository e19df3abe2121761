package redis

import (
	"context"
	"time"
)

// LockStoreInterface defines the locking contract. The rental service
// depends on this interface so tests can substitute an in-memory locker.
type LockStoreInterface interface {
	AcquireVehicleLock(ctx context.Context, vehicleID string, ttl time.Duration) (bool, error)
	ReleaseVehicleLock(ctx context.Context, vehicleID string) error
}

// Ensure implementations satisfy the interfaces.
var _ LockStoreInterface = (*LockStore)(nil)
