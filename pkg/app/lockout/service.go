package lockout

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/NeuralTrust/AuthShield/pkg/domain/errors"
	"github.com/NeuralTrust/AuthShield/pkg/domain/identity"
	"github.com/NeuralTrust/AuthShield/pkg/infra/breaker"
	"github.com/NeuralTrust/AuthShield/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

const (
	defaultStorageTimeout = 2 * time.Second
	defaultSweepTimeout   = 30 * time.Second

	reasonExpired       = "lockout period expired"
	defaultManualReason = "Locked by administrator"
)

// LockStatus is what callers learn about an identity. Unknown identities
// produce the same status as an unlocked identity with no failures.
type LockStatus struct {
	Locked             bool       `json:"locked"`
	Manual             bool       `json:"manual"`
	Reason             string     `json:"reason,omitempty"`
	LockedUntil        *time.Time `json:"locked_until,omitempty"`
	CanUnlock          bool       `json:"can_unlock"`
	FailedAttemptCount int        `json:"failed_attempt_count"`
	RemainingAttempts  int        `json:"remaining_attempts"`
}

type Stats struct {
	TotalLocked         int64 `json:"total_locked"`
	ManualLocks         int64 `json:"manual_locks"`
	AutomaticLocks      int64 `json:"automatic_locks"`
	ExpiredPendingSweep int64 `json:"expired_pending_sweep"`
}

type LockedIdentity struct {
	Key                string     `json:"key"`
	Manual             bool       `json:"manual"`
	Reason             string     `json:"reason,omitempty"`
	LockedUntil        *time.Time `json:"locked_until,omitempty"`
	FailedAttemptCount int        `json:"failed_attempt_count"`
}

//go:generate mockery --name=Service --dir=. --output=../../../mocks --filename=lockout_service_mock.go --structname=LockoutService --case=underscore
type Service interface {
	IsLocked(ctx context.Context, key string) LockStatus
	RecordFailure(ctx context.Context, key, sourceAddress, agent string) LockStatus
	RecordSuccess(ctx context.Context, key string)
	// Lock places a manual lock. A zero duration locks until Unlock.
	Lock(ctx context.Context, key, reason, actor string, duration time.Duration) bool
	Unlock(ctx context.Context, key, reason, actor string) bool
	Stats(ctx context.Context) (Stats, error)
	SweepExpired(ctx context.Context) (int64, error)
	ListLocked(ctx context.Context) ([]LockedIdentity, error)
}

// ErrIdentityBusy reports that another operation on the same identity held
// it for longer than the lock wait.
var ErrIdentityBusy = errors.New("identity is busy")

type Options struct {
	Policy         Policy
	StorageTimeout time.Duration
	// LockWait bounds how long an operation queues behind another one on
	// the same identity. Defaults to StorageTimeout.
	LockWait     time.Duration
	SweepTimeout time.Duration
	Breaker        breaker.CircuitBreaker
	Clock          func() time.Time
}

type service struct {
	logger   *logrus.Logger
	repo     identity.Repository
	policy   Policy
	timeout  time.Duration
	lockWait time.Duration
	sweepTTL time.Duration
	breaker  breaker.CircuitBreaker
	locks    *KeyedMutex
	now      func() time.Time
}

func NewService(logger *logrus.Logger, repo identity.Repository, opts Options) Service {
	s := &service{
		logger:   logger,
		repo:     repo,
		policy:   opts.Policy.withDefaults(),
		timeout:  opts.StorageTimeout,
		lockWait: opts.LockWait,
		sweepTTL: opts.SweepTimeout,
		breaker:  opts.Breaker,
		locks:    NewKeyedMutex(),
		now:      opts.Clock,
	}
	if s.timeout <= 0 {
		s.timeout = defaultStorageTimeout
	}
	if s.lockWait <= 0 {
		s.lockWait = s.timeout
	}
	if s.sweepTTL <= 0 {
		s.sweepTTL = defaultSweepTimeout
	}
	if s.breaker == nil {
		s.breaker = breaker.NewCircuitBreaker(logger, breaker.Settings{
			Name:        "identity-store",
			Timeout:     30 * time.Second,
			MaxFailures: 5,
			Ignore:      domain.IsNotFoundError,
		})
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// IsLocked reads without the per-identity lock. The lock is taken only to
// clear a lock that has expired, and the state is read again under it.
func (s *service) IsLocked(ctx context.Context, key string) LockStatus {
	key = identity.NormalizeKey(key)

	ident, err := s.find(ctx, key)
	if err != nil {
		return s.failOpen(err, "is_locked", key)
	}
	now := s.now()
	if ident.IsLockedAt(now) {
		return s.lockedStatus(ident)
	}
	if !ident.LockExpiredAt(now) {
		return s.unlockedStatus(ident.FailedAttemptCount)
	}

	unlock, err := s.acquire(ctx, key)
	if err != nil {
		return s.failOpen(err, "is_locked", key)
	}
	defer unlock()

	ident, err = s.find(ctx, key)
	if err != nil {
		return s.failOpen(err, "is_locked", key)
	}
	now = s.now()
	if ident.IsLockedAt(now) {
		return s.lockedStatus(ident)
	}
	if !ident.LockExpiredAt(now) {
		return s.unlockedStatus(ident.FailedAttemptCount)
	}
	if err := s.update(ctx, key, identity.LockoutFields{}); err != nil {
		return s.failOpen(err, "is_locked", key)
	}
	prometheus.UnlocksTotal.WithLabelValues("expired").Inc()
	s.logger.WithFields(logrus.Fields{
		"identity": key,
		"reason":   reasonExpired,
		"manual":   ident.IsManuallyLocked,
	}).Info("identity unlocked")
	return s.unlockedStatus(0)
}

func (s *service) RecordFailure(ctx context.Context, key, sourceAddress, agent string) LockStatus {
	key = identity.NormalizeKey(key)
	unlock, err := s.acquire(ctx, key)
	if err != nil {
		return s.failOpen(err, "record_failure", key)
	}
	defer unlock()

	ident, err := s.find(ctx, key)
	if err != nil {
		return s.failOpen(err, "record_failure", key)
	}

	now := s.now()
	outcome := NextAttempt(AttemptRecord{
		Count:        ident.FailedAttemptCount,
		LastFailedAt: ident.LastFailedAttemptAt,
	}, now, s.policy)

	fields := ident.Lockout()
	fields.FailedAttemptCount = outcome.Count
	fields.LastFailedAttemptAt = &now
	locking := outcome.Lock && !fields.IsManuallyLocked
	if locking {
		until := outcome.LockedUntil
		reason := fmt.Sprintf("Account locked after %d failed login attempts", outcome.Count)
		fields.LockedUntil = &until
		fields.LockoutReason = &reason
	}

	if err := s.update(ctx, key, fields); err != nil {
		return s.failOpen(err, "record_failure", key)
	}
	prometheus.FailedLoginsTotal.Inc()

	entry := s.logger.WithFields(logrus.Fields{
		"identity":       key,
		"source_address": sourceAddress,
		"user_agent":     truncate(agent, 120),
		"attempts":       outcome.Count,
	})
	if locking {
		prometheus.LockoutsTotal.WithLabelValues("automatic").Inc()
		entry.WithField("locked_until", outcome.LockedUntil.Format(time.RFC3339)).Warn("identity locked after repeated failures")
	} else {
		entry.Debug("failed login recorded")
	}

	ident.ApplyLockout(fields)
	if ident.IsLockedAt(now) {
		return s.lockedStatus(ident)
	}
	return s.unlockedStatus(ident.FailedAttemptCount)
}

func (s *service) RecordSuccess(ctx context.Context, key string) {
	key = identity.NormalizeKey(key)
	unlock, err := s.acquire(ctx, key)
	if err != nil {
		s.failOpen(err, "record_success", key)
		return
	}
	defer unlock()

	ident, err := s.find(ctx, key)
	if err != nil {
		s.failOpen(err, "record_success", key)
		return
	}

	fields := ident.Lockout()
	if fields.FailedAttemptCount == 0 && fields.LastFailedAttemptAt == nil &&
		(fields.IsManuallyLocked || fields.LockedUntil == nil) {
		return
	}
	fields.FailedAttemptCount = 0
	fields.LastFailedAttemptAt = nil
	if !fields.IsManuallyLocked {
		fields.LockedUntil = nil
		fields.LockoutReason = nil
	}
	if err := s.update(ctx, key, fields); err != nil {
		s.failOpen(err, "record_success", key)
	}
}

func (s *service) Lock(ctx context.Context, key, reason, actor string, duration time.Duration) bool {
	key = identity.NormalizeKey(key)
	unlock, err := s.acquire(ctx, key)
	if err != nil {
		s.logAdminError(err, "lock", key)
		return false
	}
	defer unlock()

	ident, err := s.find(ctx, key)
	if err != nil {
		s.logAdminError(err, "lock", key)
		return false
	}

	if reason == "" {
		reason = defaultManualReason
	}
	annotated := fmt.Sprintf("%s (locked by %s)", reason, actorOrDefault(actor))

	fields := ident.Lockout()
	fields.IsManuallyLocked = true
	fields.LockoutReason = &annotated
	fields.LockedUntil = nil
	if duration > 0 {
		until := s.now().Add(duration)
		fields.LockedUntil = &until
	}
	if err := s.update(ctx, key, fields); err != nil {
		s.logAdminError(err, "lock", key)
		return false
	}

	prometheus.LockoutsTotal.WithLabelValues("manual").Inc()
	s.logger.WithFields(logrus.Fields{
		"identity": key,
		"actor":    actorOrDefault(actor),
		"reason":   reason,
		"duration": duration.String(),
	}).Warn("identity locked manually")
	return true
}

func (s *service) Unlock(ctx context.Context, key, reason, actor string) bool {
	key = identity.NormalizeKey(key)
	unlock, err := s.acquire(ctx, key)
	if err != nil {
		s.logAdminError(err, "unlock", key)
		return false
	}
	defer unlock()

	if _, err := s.find(ctx, key); err != nil {
		s.logAdminError(err, "unlock", key)
		return false
	}
	if err := s.update(ctx, key, identity.LockoutFields{}); err != nil {
		s.logAdminError(err, "unlock", key)
		return false
	}

	prometheus.UnlocksTotal.WithLabelValues("admin").Inc()
	s.logger.WithFields(logrus.Fields{
		"identity": key,
		"actor":    actorOrDefault(actor),
		"reason":   reason,
	}).Info("identity unlocked")
	return true
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	now := s.now()
	var stats Stats
	counts := []struct {
		predicate identity.Predicate
		dst       *int64
	}{
		{identity.ManuallyLocked(now), &stats.ManualLocks},
		{identity.AutoLockActive(now), &stats.AutomaticLocks},
		{identity.AutoLockExpired(now), &stats.ExpiredPendingSweep},
	}
	for _, c := range counts {
		err := s.breaker.Execute(func() error {
			ctx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()
			n, err := s.repo.Count(ctx, c.predicate)
			*c.dst = n
			return err
		})
		if err != nil {
			return Stats{}, fmt.Errorf("failed to compute lockout stats: %w", err)
		}
	}
	stats.TotalLocked = stats.ManualLocks + stats.AutomaticLocks
	return stats, nil
}

// SweepExpired does not take per-identity locks; it only clears state
// that has already expired, so racing writers cannot lose a live lock.
func (s *service) SweepExpired(ctx context.Context) (int64, error) {
	var cleared int64
	err := s.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(ctx, s.sweepTTL)
		defer cancel()
		n, err := s.repo.ClearExpiredLocks(ctx, s.now())
		cleared = n
		return err
	})
	if err != nil {
		s.logger.WithError(err).Error("failed to sweep expired lockouts")
		return 0, fmt.Errorf("failed to sweep expired lockouts: %w", err)
	}
	if cleared > 0 {
		prometheus.UnlocksTotal.WithLabelValues("sweep").Add(float64(cleared))
		s.logger.WithField("cleared", cleared).Info("expired lockouts swept")
	}
	return cleared, nil
}

func (s *service) ListLocked(ctx context.Context) ([]LockedIdentity, error) {
	var identities []identity.Identity
	err := s.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		var err error
		identities, err = s.repo.ListLocked(ctx, s.now())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list locked identities: %w", err)
	}

	out := make([]LockedIdentity, 0, len(identities))
	for i := range identities {
		ident := &identities[i]
		out = append(out, LockedIdentity{
			Key:                ident.Key,
			Manual:             ident.IsManuallyLocked,
			Reason:             deref(ident.LockoutReason),
			LockedUntil:        ident.LockedUntil,
			FailedAttemptCount: ident.FailedAttemptCount,
		})
	}
	return out, nil
}

func (s *service) acquire(ctx context.Context, key string) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, s.lockWait)
	defer cancel()
	unlock, err := s.locks.Lock(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIdentityBusy, err)
	}
	return unlock, nil
}

func (s *service) find(ctx context.Context, key string) (*identity.Identity, error) {
	var ident *identity.Identity
	err := s.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		var err error
		ident, err = s.repo.FindByKey(ctx, key)
		return err
	})
	return ident, err
}

func (s *service) update(ctx context.Context, key string, fields identity.LockoutFields) error {
	return s.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		return s.repo.UpdateLockout(ctx, key, fields)
	})
}

// failOpen turns any lookup or storage error into an unlocked status.
// Unknown identities are expected and are not logged as errors.
func (s *service) failOpen(err error, operation, key string) LockStatus {
	if errors.Is(err, domain.ErrEntityNotFound) {
		return s.unlockedStatus(0)
	}
	prometheus.FailOpenTotal.WithLabelValues("lockout", operation).Inc()
	s.logger.WithError(err).WithFields(logrus.Fields{
		"identity":  key,
		"operation": operation,
	}).Error("identity store unavailable, failing open")
	return s.unlockedStatus(0)
}

func (s *service) logAdminError(err error, operation, key string) {
	if errors.Is(err, domain.ErrEntityNotFound) {
		s.logger.WithFields(logrus.Fields{
			"identity":  key,
			"operation": operation,
		}).Info("administrative lockout operation on unknown identity")
		return
	}
	s.logger.WithError(err).WithFields(logrus.Fields{
		"identity":  key,
		"operation": operation,
	}).Error("administrative lockout operation failed")
}

func (s *service) lockedStatus(ident *identity.Identity) LockStatus {
	return LockStatus{
		Locked:             true,
		Manual:             ident.IsManuallyLocked,
		Reason:             deref(ident.LockoutReason),
		LockedUntil:        ident.LockedUntil,
		CanUnlock:          true,
		FailedAttemptCount: ident.FailedAttemptCount,
		RemainingAttempts:  0,
	}
}

func (s *service) unlockedStatus(failed int) LockStatus {
	return LockStatus{
		FailedAttemptCount: failed,
		RemainingAttempts:  s.policy.Remaining(failed),
	}
}

func actorOrDefault(actor string) string {
	if actor == "" {
		return "system"
	}
	return actor
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
