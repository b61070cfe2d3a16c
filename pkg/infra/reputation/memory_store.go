package reputation

import (
	"context"
	"sync"
	"time"

	"github.com/NeuralTrust/AuthShield/pkg/domain/threat"
)

// MemoryStore keeps reputation in process. Instances are independent, so
// each engine (and each test) owns its own sets.
type MemoryStore struct {
	suspicious sync.Map // address -> struct{}
	blocked    sync.Map // address -> time.Time, zero means indefinite
}

var _ threat.ReputationStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) MarkSuspicious(_ context.Context, address string) error {
	s.suspicious.Store(address, struct{}{})
	return nil
}

// Block never shortens an existing block.
func (s *MemoryStore) Block(_ context.Context, address string, until time.Time) error {
	for {
		current, loaded := s.blocked.LoadOrStore(address, until)
		if !loaded {
			return nil
		}
		existing := current.(time.Time)
		if !outlasts(until, existing) {
			return nil
		}
		if s.blocked.CompareAndSwap(address, existing, until) {
			return nil
		}
	}
}

func (s *MemoryStore) IsBlocked(_ context.Context, address string, now time.Time) (bool, error) {
	v, ok := s.blocked.Load(address)
	if !ok {
		return false, nil
	}
	return active(v.(time.Time), now), nil
}

func (s *MemoryStore) IsSuspicious(_ context.Context, address string) (bool, error) {
	_, ok := s.suspicious.Load(address)
	return ok, nil
}

func (s *MemoryStore) Remove(_ context.Context, address string) error {
	s.suspicious.Delete(address)
	s.blocked.Delete(address)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.suspicious.Range(func(k, _ interface{}) bool {
		s.suspicious.Delete(k)
		return true
	})
	s.blocked.Range(func(k, _ interface{}) bool {
		s.blocked.Delete(k)
		return true
	})
	return nil
}

func (s *MemoryStore) Blocked(_ context.Context, now time.Time) ([]threat.BlockEntry, error) {
	var out []threat.BlockEntry
	s.blocked.Range(func(k, v interface{}) bool {
		until := v.(time.Time)
		if !active(until, now) {
			return true
		}
		entry := threat.BlockEntry{Address: k.(string)}
		if !until.IsZero() {
			u := until
			entry.Until = &u
		}
		out = append(out, entry)
		return true
	})
	return out, nil
}

func (s *MemoryStore) Suspicious(_ context.Context) ([]string, error) {
	var out []string
	s.suspicious.Range(func(k, _ interface{}) bool {
		out = append(out, k.(string))
		return true
	})
	return out, nil
}

func (s *MemoryStore) PruneExpired(_ context.Context, now time.Time) (int, error) {
	removed := 0
	s.blocked.Range(func(k, v interface{}) bool {
		if !active(v.(time.Time), now) && s.blocked.CompareAndDelete(k, v) {
			removed++
		}
		return true
	})
	return removed, nil
}

func active(until, now time.Time) bool {
	return until.IsZero() || until.After(now)
}

// outlasts reports whether a block ending at a lasts longer than one
// ending at b.
func outlasts(a, b time.Time) bool {
	if b.IsZero() {
		return false
	}
	return a.IsZero() || a.After(b)
}
