package loginevent

import (
	"context"
	"time"
)

//go:generate mockery --name=Repository --dir=. --output=../../../mocks --filename=login_event_repository_mock.go --structname=LoginEventRepository --case=underscore
type Repository interface {
	Record(ctx context.Context, event *LoginEvent) error
	// ListSince returns the newest events first, at most limit of them.
	ListSince(ctx context.Context, identityKey string, since time.Time, limit int) ([]LoginEvent, error)
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}
