package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/NeuralTrust/AuthShield/pkg/domain/loginevent"
)

// maxEventsPerIdentity bounds the in-process history per identity.
const maxEventsPerIdentity = 500

type MemoryLoginEventRepository struct {
	mu     sync.RWMutex
	events map[string][]loginevent.LoginEvent
}

func NewMemoryLoginEventRepository() *MemoryLoginEventRepository {
	return &MemoryLoginEventRepository{
		events: make(map[string][]loginevent.LoginEvent),
	}
}

func (r *MemoryLoginEventRepository) Record(_ context.Context, event *loginevent.LoginEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := append(r.events[event.IdentityKey], *event)
	if len(list) > maxEventsPerIdentity {
		list = list[len(list)-maxEventsPerIdentity:]
	}
	r.events[event.IdentityKey] = list
	return nil
}

func (r *MemoryLoginEventRepository) ListSince(
	_ context.Context,
	identityKey string,
	since time.Time,
	limit int,
) ([]loginevent.LoginEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]loginevent.LoginEvent, 0)
	for _, ev := range r.events[identityKey] {
		if !ev.OccurredAt.Before(since) {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryLoginEventRepository) DeleteBefore(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for key, list := range r.events {
		kept := list[:0]
		for _, ev := range list {
			if ev.OccurredAt.Before(before) {
				n++
				continue
			}
			kept = append(kept, ev)
		}
		if len(kept) == 0 {
			delete(r.events, key)
			continue
		}
		r.events[key] = kept
	}
	return n, nil
}
