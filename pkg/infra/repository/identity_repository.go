package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/NeuralTrust/AuthShield/pkg/domain/errors"
	"github.com/NeuralTrust/AuthShield/pkg/domain/identity"
	"gorm.io/gorm"
)

const (
	manuallyLockedClause  = "is_manually_locked = ? AND (locked_until IS NULL OR locked_until > ?)"
	autoLockActiveClause  = "is_manually_locked = ? AND locked_until > ?"
	autoLockExpiredClause = "is_manually_locked = ? AND locked_until IS NOT NULL AND locked_until <= ?"
)

type identityRepository struct {
	db *gorm.DB
}

func NewIdentityRepository(db *gorm.DB) identity.Repository {
	return &identityRepository{
		db: db,
	}
}

func (r *identityRepository) FindByKey(ctx context.Context, key string) (*identity.Identity, error) {
	entity := new(identity.Identity)
	if err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("identity", key)
		}
		return nil, fmt.Errorf("failed to find identity: %w", err)
	}
	return entity, nil
}

// UpdateLockout writes every lockout column in one statement.
func (r *identityRepository) UpdateLockout(ctx context.Context, key string, fields identity.LockoutFields) error {
	res := r.db.WithContext(ctx).
		Model(&identity.Identity{}).
		Where("key = ?", key).
		Updates(map[string]interface{}{
			"failed_attempt_count":   fields.FailedAttemptCount,
			"last_failed_attempt_at": fields.LastFailedAttemptAt,
			"locked_until":           fields.LockedUntil,
			"lockout_reason":         fields.LockoutReason,
			"is_manually_locked":     fields.IsManuallyLocked,
			"updated_at":             time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update identity lockout: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NewNotFoundError("identity", key)
	}
	return nil
}

func (r *identityRepository) Count(ctx context.Context, predicate identity.Predicate) (int64, error) {
	q := r.db.WithContext(ctx).Model(&identity.Identity{})
	switch predicate.Kind {
	case identity.PredicateManuallyLocked:
		q = q.Where(manuallyLockedClause, true, predicate.At)
	case identity.PredicateAutoLockActive:
		q = q.Where(autoLockActiveClause, false, predicate.At)
	case identity.PredicateAutoLockExpired:
		q = q.Where(autoLockExpiredClause, false, predicate.At)
	default:
		return 0, fmt.Errorf("unsupported identity predicate %d", predicate.Kind)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count identities: %w", err)
	}
	return n, nil
}

func (r *identityRepository) ListLocked(ctx context.Context, now time.Time) ([]identity.Identity, error) {
	var out []identity.Identity
	if err := r.db.WithContext(ctx).
		Where("("+manuallyLockedClause+") OR ("+autoLockActiveClause+")", true, now, false, now).
		Order("key").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list locked identities: %w", err)
	}
	return out, nil
}

func (r *identityRepository) ClearExpiredLocks(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&identity.Identity{}).
		Where(autoLockExpiredClause, false, now).
		Updates(map[string]interface{}{
			"failed_attempt_count":   0,
			"last_failed_attempt_at": nil,
			"locked_until":           nil,
			"lockout_reason":         nil,
			"updated_at":             now,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to clear expired locks: %w", res.Error)
	}
	return res.RowsAffected, nil
}
