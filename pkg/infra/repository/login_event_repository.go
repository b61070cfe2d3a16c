package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/NeuralTrust/AuthShield/pkg/domain/loginevent"
	"gorm.io/gorm"
)

type loginEventRepository struct {
	db *gorm.DB
}

func NewLoginEventRepository(db *gorm.DB) loginevent.Repository {
	return &loginEventRepository{
		db: db,
	}
}

func (r *loginEventRepository) Record(ctx context.Context, event *loginevent.LoginEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to record login event: %w", err)
	}
	return nil
}

func (r *loginEventRepository) ListSince(
	ctx context.Context,
	identityKey string,
	since time.Time,
	limit int,
) ([]loginevent.LoginEvent, error) {
	var out []loginevent.LoginEvent
	if err := r.db.WithContext(ctx).
		Where("identity_key = ? AND occurred_at >= ?", identityKey, since).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list login events: %w", err)
	}
	return out, nil
}

func (r *loginEventRepository) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("occurred_at < ?", before).
		Delete(&loginevent.LoginEvent{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete login events: %w", res.Error)
	}
	return res.RowsAffected, nil
}
