package threat

import (
	"context"
	"time"
)

// ReputationStore holds the suspicious and blocked address sets. A zero
// until passed to Block means the block never expires.
//
//go:generate mockery --name=ReputationStore --dir=. --output=../../../mocks --filename=reputation_store_mock.go --case=underscore
type ReputationStore interface {
	MarkSuspicious(ctx context.Context, address string) error
	Block(ctx context.Context, address string, until time.Time) error
	IsBlocked(ctx context.Context, address string, now time.Time) (bool, error)
	IsSuspicious(ctx context.Context, address string) (bool, error)
	Remove(ctx context.Context, address string) error
	Clear(ctx context.Context) error
	Blocked(ctx context.Context, now time.Time) ([]BlockEntry, error)
	Suspicious(ctx context.Context) ([]string, error)
	// PruneExpired drops blocks that have already expired. Unexpired and
	// indefinite blocks are never touched.
	PruneExpired(ctx context.Context, now time.Time) (int, error)
}

type BlockEntry struct {
	Address string     `json:"address"`
	Until   *time.Time `json:"until,omitempty"`
}
