package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/NeuralTrust/AuthShield/pkg/domain/errors"
	"github.com/NeuralTrust/AuthShield/pkg/domain/identity"
	"github.com/google/uuid"
)

// MemoryIdentityRepository keeps identities in process. It backs the service
// when no database is configured and is used by tests.
type MemoryIdentityRepository struct {
	mu         sync.RWMutex
	identities map[string]*identity.Identity
}

func NewMemoryIdentityRepository() *MemoryIdentityRepository {
	return &MemoryIdentityRepository{
		identities: make(map[string]*identity.Identity),
	}
}

// Save inserts or replaces an identity, keyed by its normalized key.
func (r *MemoryIdentityRepository) Save(entity *identity.Identity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *entity
	clone.Key = identity.NormalizeKey(entity.Key)
	if clone.ID == uuid.Nil {
		clone.ID = uuid.New()
	}
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now()
	}
	clone.UpdatedAt = time.Now()
	r.identities[clone.Key] = &clone
}

func (r *MemoryIdentityRepository) FindByKey(_ context.Context, key string) (*identity.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entity, ok := r.identities[key]
	if !ok {
		return nil, domain.NewNotFoundError("identity", key)
	}
	clone := *entity
	return &clone, nil
}

func (r *MemoryIdentityRepository) UpdateLockout(_ context.Context, key string, fields identity.LockoutFields) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entity, ok := r.identities[key]
	if !ok {
		return domain.NewNotFoundError("identity", key)
	}
	entity.ApplyLockout(fields)
	entity.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryIdentityRepository) Count(_ context.Context, predicate identity.Predicate) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, entity := range r.identities {
		if predicate.Matches(entity) {
			n++
		}
	}
	return n, nil
}

func (r *MemoryIdentityRepository) ListLocked(_ context.Context, now time.Time) ([]identity.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]identity.Identity, 0)
	for _, entity := range r.identities {
		if entity.IsLockedAt(now) {
			out = append(out, *entity)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *MemoryIdentityRepository) ClearExpiredLocks(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	expired := identity.AutoLockExpired(now)
	var n int64
	for _, entity := range r.identities {
		if !expired.Matches(entity) {
			continue
		}
		entity.ApplyLockout(identity.LockoutFields{})
		entity.UpdatedAt = now
		n++
	}
	return n, nil
}
