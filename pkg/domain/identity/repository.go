package identity

import (
	"context"
	"time"
)

//go:generate mockery --name=Repository --dir=. --output=../../../mocks --filename=identity_repository_mock.go --structname=IdentityRepository --case=underscore
type Repository interface {
	// FindByKey returns domain.ErrEntityNotFound (wrapped) for unknown keys.
	FindByKey(ctx context.Context, key string) (*Identity, error)
	UpdateLockout(ctx context.Context, key string, fields LockoutFields) error
	Count(ctx context.Context, predicate Predicate) (int64, error)
	ListLocked(ctx context.Context, now time.Time) ([]Identity, error)
	// ClearExpiredLocks clears automatic locks whose lockedUntil is before now.
	ClearExpiredLocks(ctx context.Context, now time.Time) (int64, error)
}
