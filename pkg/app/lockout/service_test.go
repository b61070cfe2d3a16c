package lockout_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/NeuralTrust/AuthShield/mocks"
	"github.com/NeuralTrust/AuthShield/pkg/app/lockout"
	domain "github.com/NeuralTrust/AuthShield/pkg/domain/errors"
	"github.com/NeuralTrust/AuthShield/pkg/domain/identity"
	"github.com/NeuralTrust/AuthShield/pkg/infra/breaker"
	"github.com/NeuralTrust/AuthShield/pkg/infra/logger"
	"github.com/NeuralTrust/AuthShield/pkg/infra/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const userKey = "a@example.com"

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newService(t *testing.T, policy lockout.Policy) (lockout.Service, *repository.MemoryIdentityRepository, *fakeClock) {
	t.Helper()
	repo := repository.NewMemoryIdentityRepository()
	repo.Save(&identity.Identity{Key: userKey, Role: identity.RoleMember})
	clock := newFakeClock()
	svc := lockout.NewService(logger.NewNopLogger(), repo, lockout.Options{
		Policy: policy,
		Clock:  clock.Now,
	})
	return svc, repo, clock
}

func TestService_LocksAfterMaxFailuresWithinWindow(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newService(t, lockout.DefaultPolicy())

	for i := 0; i < 4; i++ {
		status := svc.RecordFailure(ctx, userKey, "10.0.0.1", "Mozilla/5.0")
		assert.False(t, status.Locked)
		clock.Advance(2 * time.Minute)
	}

	status := svc.IsLocked(ctx, userKey)
	assert.False(t, status.Locked)
	assert.Equal(t, 4, status.FailedAttemptCount)
	assert.Equal(t, 1, status.RemainingAttempts)

	status = svc.RecordFailure(ctx, userKey, "10.0.0.1", "Mozilla/5.0")
	require.True(t, status.Locked)
	assert.Contains(t, status.Reason, "5 failed login attempts")
	assert.True(t, status.CanUnlock)
	require.NotNil(t, status.LockedUntil)
	assert.Equal(t, clock.Now().Add(15*time.Minute), *status.LockedUntil)

	status = svc.IsLocked(ctx, userKey)
	assert.True(t, status.Locked)
	assert.False(t, status.Manual)
}

func TestService_FailuresOutsideWindowReset(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newService(t, lockout.DefaultPolicy())

	svc.RecordFailure(ctx, userKey, "10.0.0.1", "")
	svc.RecordFailure(ctx, userKey, "10.0.0.1", "")
	clock.Advance(61 * time.Minute)

	status := svc.RecordFailure(ctx, userKey, "10.0.0.1", "")
	assert.Equal(t, 1, status.FailedAttemptCount)
	assert.False(t, status.Locked)
}

func TestService_SuccessResetsCounter(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newService(t, lockout.DefaultPolicy())

	for i := 0; i < 3; i++ {
		svc.RecordFailure(ctx, userKey, "10.0.0.1", "")
	}
	svc.RecordSuccess(ctx, userKey)

	ident, err := repo.FindByKey(ctx, userKey)
	require.NoError(t, err)
	assert.Zero(t, ident.FailedAttemptCount)
	assert.Nil(t, ident.LastFailedAttemptAt)
	assert.Nil(t, ident.LockedUntil)
	assert.Nil(t, ident.LockoutReason)
}

func TestService_ManualLockSurvivesSuccess(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t, lockout.DefaultPolicy())

	require.True(t, svc.Lock(ctx, userKey, "suspected takeover", "ops@example.com", 0))
	svc.RecordSuccess(ctx, userKey)

	status := svc.IsLocked(ctx, userKey)
	assert.True(t, status.Locked)
	assert.True(t, status.Manual)
	assert.Equal(t, "suspected takeover (locked by ops@example.com)", status.Reason)
	assert.Nil(t, status.LockedUntil)
}

func TestService_ExpiredAutomaticLockIsClearedOnQuery(t *testing.T) {
	ctx := context.Background()
	svc, repo, clock := newService(t, lockout.DefaultPolicy())

	for i := 0; i < 5; i++ {
		svc.RecordFailure(ctx, userKey, "10.0.0.1", "")
	}
	clock.Advance(16 * time.Minute)

	status := svc.IsLocked(ctx, userKey)
	assert.False(t, status.Locked)
	assert.Zero(t, status.FailedAttemptCount)

	ident, err := repo.FindByKey(ctx, userKey)
	require.NoError(t, err)
	assert.Nil(t, ident.LockedUntil)
	assert.Nil(t, ident.LockoutReason)

	status = svc.RecordFailure(ctx, userKey, "10.0.0.1", "")
	assert.False(t, status.Locked)
	assert.Equal(t, 1, status.FailedAttemptCount)
}

func TestService_TimedManualLockExpires(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newService(t, lockout.DefaultPolicy())

	require.True(t, svc.Lock(ctx, userKey, "", "", time.Hour))
	status := svc.IsLocked(ctx, userKey)
	require.True(t, status.Locked)
	assert.Equal(t, "Locked by administrator (locked by system)", status.Reason)

	clock.Advance(61 * time.Minute)
	assert.False(t, svc.IsLocked(ctx, userKey).Locked)
}

func TestService_UnknownIdentityLooksUnlocked(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t, lockout.DefaultPolicy())

	for i := 0; i < 10; i++ {
		status := svc.RecordFailure(ctx, "ghost@example.com", "10.0.0.1", "")
		assert.Equal(t, lockout.LockStatus{RemainingAttempts: 5}, status)
	}
	assert.Equal(t, lockout.LockStatus{RemainingAttempts: 5}, svc.IsLocked(ctx, "ghost@example.com"))
	assert.False(t, svc.Lock(ctx, "ghost@example.com", "x", "admin", 0))
	assert.False(t, svc.Unlock(ctx, "ghost@example.com", "x", "admin"))
}

func TestService_UnlockClearsEverything(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newService(t, lockout.DefaultPolicy())

	for i := 0; i < 5; i++ {
		svc.RecordFailure(ctx, userKey, "10.0.0.1", "")
	}
	require.True(t, svc.Lock(ctx, userKey, "hold", "admin", 0))
	require.True(t, svc.Unlock(ctx, userKey, "verified by phone", "admin"))

	ident, err := repo.FindByKey(ctx, userKey)
	require.NoError(t, err)
	assert.Equal(t, identity.LockoutFields{}, ident.Lockout())
	assert.False(t, svc.IsLocked(ctx, userKey).Locked)
}

func TestService_StatsAndSweep(t *testing.T) {
	ctx := context.Background()
	svc, repo, clock := newService(t, lockout.DefaultPolicy())
	repo.Save(&identity.Identity{Key: "b@example.com"})
	repo.Save(&identity.Identity{Key: "c@example.com"})

	for i := 0; i < 5; i++ {
		svc.RecordFailure(ctx, userKey, "10.0.0.1", "")
	}
	require.True(t, svc.Lock(ctx, "b@example.com", "fraud", "admin", 0))
	clock.Advance(10 * time.Minute)
	for i := 0; i < 5; i++ {
		svc.RecordFailure(ctx, "c@example.com", "10.0.0.2", "")
	}
	clock.Advance(6 * time.Minute)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, lockout.Stats{
		TotalLocked:         2,
		ManualLocks:         1,
		AutomaticLocks:      1,
		ExpiredPendingSweep: 1,
	}, stats)

	locked, err := svc.ListLocked(ctx)
	require.NoError(t, err)
	require.Len(t, locked, 2)
	assert.Equal(t, "b@example.com", locked[0].Key)
	assert.True(t, locked[0].Manual)

	cleared, err := svc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleared)

	stats, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.ExpiredPendingSweep)
	assert.Equal(t, int64(2), stats.TotalLocked)
}

func TestService_ConcurrentFailuresAreNotLost(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newService(t, lockout.Policy{MaxFailedAttempts: 1000})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.RecordFailure(ctx, userKey, "10.0.0.1", "")
		}()
	}
	wg.Wait()

	ident, err := repo.FindByKey(ctx, userKey)
	require.NoError(t, err)
	assert.Equal(t, 50, ident.FailedAttemptCount)
}

func TestService_StorageErrorsFailOpen(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewIdentityRepository(t)
	storageErr := errors.New("connection reset by peer")
	repo.On("FindByKey", mock.Anything, userKey).Return(nil, storageErr)

	svc := lockout.NewService(logger.NewNopLogger(), repo, lockout.Options{
		Breaker: breaker.NewCircuitBreaker(nil, breaker.Settings{
			Name:        "test",
			Timeout:     time.Minute,
			MaxFailures: 100,
		}),
	})

	assert.False(t, svc.IsLocked(ctx, userKey).Locked)
	assert.False(t, svc.RecordFailure(ctx, userKey, "10.0.0.1", "").Locked)
	svc.RecordSuccess(ctx, userKey)
	assert.False(t, svc.Lock(ctx, userKey, "x", "admin", 0))
}

func TestService_UpdateErrorFailsOpen(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewIdentityRepository(t)
	recent := time.Now()
	repo.On("FindByKey", mock.Anything, userKey).Return(&identity.Identity{
		Key:                 userKey,
		FailedAttemptCount:  4,
		LastFailedAttemptAt: &recent,
	}, nil)
	repo.On("UpdateLockout", mock.Anything, userKey, mock.AnythingOfType("identity.LockoutFields")).
		Return(errors.New("deadline exceeded"))

	svc := lockout.NewService(logger.NewNopLogger(), repo, lockout.Options{})

	status := svc.RecordFailure(ctx, userKey, "10.0.0.1", "")
	assert.False(t, status.Locked)
}

func TestService_OpenBreakerSkipsStore(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewIdentityRepository(t)
	repo.On("FindByKey", mock.Anything, userKey).
		Return(nil, errors.New("connection refused")).Times(2)

	svc := lockout.NewService(logger.NewNopLogger(), repo, lockout.Options{
		Breaker: breaker.NewCircuitBreaker(nil, breaker.Settings{
			Name:        "test",
			Timeout:     time.Minute,
			MaxFailures: 2,
			Ignore:      domain.IsNotFoundError,
		}),
	})

	for i := 0; i < 5; i++ {
		assert.False(t, svc.IsLocked(ctx, userKey).Locked)
	}
	repo.AssertNumberOfCalls(t, "FindByKey", 2)
}

func TestService_StatsPropagatesStorageError(t *testing.T) {
	repo := mocks.NewIdentityRepository(t)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(0), errors.New("timeout"))

	svc := lockout.NewService(logger.NewNopLogger(), repo, lockout.Options{})

	_, err := svc.Stats(context.Background())
	assert.Error(t, err)
}

func TestService_BusyIdentityFailsOpenWithinLockWait(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewIdentityRepository(t)
	started := make(chan struct{})
	release := make(chan struct{})
	repo.On("FindByKey", mock.Anything, userKey).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(nil, errors.New("connection reset by peer")).Once()
	repo.On("FindByKey", mock.Anything, userKey).
		Return(&identity.Identity{Key: userKey, FailedAttemptCount: 2}, nil)

	svc := lockout.NewService(logger.NewNopLogger(), repo, lockout.Options{
		StorageTimeout: time.Minute,
		LockWait:       50 * time.Millisecond,
	})

	holderDone := make(chan struct{})
	go func() {
		defer close(holderDone)
		svc.RecordFailure(ctx, userKey, "10.0.0.1", "")
	}()
	<-started

	start := time.Now()
	status := svc.RecordFailure(ctx, userKey, "10.0.0.2", "")
	assert.False(t, status.Locked)
	assert.Less(t, time.Since(start), time.Second)

	assert.False(t, svc.Lock(ctx, userKey, "x", "admin", 0))
	assert.False(t, svc.Unlock(ctx, userKey, "x", "admin"))

	// Reads do not queue behind the stalled writer.
	status = svc.IsLocked(ctx, userKey)
	assert.False(t, status.Locked)
	assert.Equal(t, 2, status.FailedAttemptCount)

	close(release)
	<-holderDone
}

func TestService_CanceledCallerDoesNotWaitForIdentity(t *testing.T) {
	repo := mocks.NewIdentityRepository(t)
	started := make(chan struct{})
	release := make(chan struct{})
	repo.On("FindByKey", mock.Anything, userKey).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(nil, errors.New("connection reset by peer")).Once()

	svc := lockout.NewService(logger.NewNopLogger(), repo, lockout.Options{
		StorageTimeout: time.Minute,
		LockWait:       time.Minute,
	})

	holderDone := make(chan struct{})
	go func() {
		defer close(holderDone)
		svc.RecordSuccess(context.Background(), userKey)
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	start := time.Now()
	assert.False(t, svc.RecordFailure(ctx, userKey, "10.0.0.1", "").Locked)
	assert.Less(t, time.Since(start), time.Second)

	close(release)
	<-holderDone
}
