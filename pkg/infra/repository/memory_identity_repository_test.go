package repository_test

import (
	"context"
	"testing"
	"time"

	domain "github.com/NeuralTrust/AuthShield/pkg/domain/errors"
	"github.com/NeuralTrust/AuthShield/pkg/domain/identity"
	"github.com/NeuralTrust/AuthShield/pkg/infra/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryIdentityRepository_FindAndUpdate(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryIdentityRepository()
	repo.Save(&identity.Identity{Key: "A@Example.com", Role: identity.RoleMember})

	found, err := repo.FindByKey(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleMember, found.Role)

	now := time.Now()
	require.NoError(t, repo.UpdateLockout(ctx, "a@example.com", identity.LockoutFields{
		FailedAttemptCount:  2,
		LastFailedAttemptAt: &now,
	}))

	found.FailedAttemptCount = 99
	again, err := repo.FindByKey(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, again.FailedAttemptCount)

	_, err = repo.FindByKey(ctx, "missing@example.com")
	assert.ErrorIs(t, err, domain.ErrEntityNotFound)
	err = repo.UpdateLockout(ctx, "missing@example.com", identity.LockoutFields{})
	assert.ErrorIs(t, err, domain.ErrEntityNotFound)
}

func TestMemoryIdentityRepository_CountListAndClear(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	future := now.Add(10 * time.Minute)
	past := now.Add(-10 * time.Minute)
	reason := "Account locked after 5 failed login attempts"

	repo := repository.NewMemoryIdentityRepository()
	repo.Save(&identity.Identity{Key: "manual@example.com", IsManuallyLocked: true})
	repo.Save(&identity.Identity{Key: "active@example.com", LockedUntil: &future, LockoutReason: &reason, FailedAttemptCount: 5})
	repo.Save(&identity.Identity{Key: "expired@example.com", LockedUntil: &past, LockoutReason: &reason, FailedAttemptCount: 5})
	repo.Save(&identity.Identity{Key: "free@example.com"})

	manual, err := repo.Count(ctx, identity.ManuallyLocked(now))
	require.NoError(t, err)
	active, err := repo.Count(ctx, identity.AutoLockActive(now))
	require.NoError(t, err)
	expired, err := repo.Count(ctx, identity.AutoLockExpired(now))
	require.NoError(t, err)
	assert.Equal(t, int64(1), manual)
	assert.Equal(t, int64(1), active)
	assert.Equal(t, int64(1), expired)

	locked, err := repo.ListLocked(ctx, now)
	require.NoError(t, err)
	require.Len(t, locked, 2)
	assert.Equal(t, "active@example.com", locked[0].Key)
	assert.Equal(t, "manual@example.com", locked[1].Key)

	cleared, err := repo.ClearExpiredLocks(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleared)

	ident, err := repo.FindByKey(ctx, "expired@example.com")
	require.NoError(t, err)
	assert.Nil(t, ident.LockedUntil)
	assert.Nil(t, ident.LockoutReason)
	assert.Zero(t, ident.FailedAttemptCount)

	stillManual, err := repo.FindByKey(ctx, "manual@example.com")
	require.NoError(t, err)
	assert.True(t, stillManual.IsManuallyLocked)
}
