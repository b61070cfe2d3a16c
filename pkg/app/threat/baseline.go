package threat

import (
	"context"
	"fmt"
	"time"

	"github.com/NeuralTrust/AuthShield/pkg/domain/loginevent"
	"github.com/NeuralTrust/AuthShield/pkg/infra/useragent"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// Baseline is what an identity normally looks like: the addresses, agent
// families and hours of day of its recent successful logins. It is never
// mutated after it is built.
type Baseline struct {
	Addresses map[string]struct{}
	Agents    map[string]struct{}
	Hours     map[int]struct{}
	BuiltAt   time.Time
}

func newBaseline(events []loginevent.LoginEvent, builtAt time.Time) *Baseline {
	b := &Baseline{
		Addresses: make(map[string]struct{}),
		Agents:    make(map[string]struct{}),
		Hours:     make(map[int]struct{}),
		BuiltAt:   builtAt,
	}
	for _, ev := range events {
		if ev.SourceAddress != "" {
			b.Addresses[ev.SourceAddress] = struct{}{}
		}
		if family := useragent.Family(ev.UserAgent); family != "" {
			b.Agents[family] = struct{}{}
		}
		b.Hours[ev.OccurredAt.UTC().Hour()] = struct{}{}
	}
	return b
}

func (b *Baseline) KnowsAddress(addr string) bool {
	_, ok := b.Addresses[addr]
	return ok
}

func (b *Baseline) KnowsAgent(agent string) bool {
	_, ok := b.Agents[useragent.Family(agent)]
	return ok
}

// HourDistance is the smallest distance on the 24 hour clock between hour
// and any usual hour, or -1 when no hours are known.
func (b *Baseline) HourDistance(hour int) int {
	best := -1
	for h := range b.Hours {
		d := hour - h
		if d < 0 {
			d = -d
		}
		if 24-d < d {
			d = 24 - d
		}
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}

// baselines caches one Baseline per identity. Concurrent rebuilds of the
// same identity share a single store query.
type baselines struct {
	repo     loginevent.Repository
	guard    guardedStore
	cache    *lru.Cache[string, *Baseline]
	group    singleflight.Group
	maxAge   time.Duration
	lookback time.Duration
	limit    int
}

func newBaselines(repo loginevent.Repository, guard guardedStore, opts Options) (*baselines, error) {
	cache, err := lru.New[string, *Baseline](opts.BaselineCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create baseline cache: %w", err)
	}
	return &baselines{
		repo:     repo,
		guard:    guard,
		cache:    cache,
		maxAge:   opts.BaselineMaxAge,
		lookback: opts.BaselineLookback,
		limit:    opts.BaselineLookbackMax,
	}, nil
}

func (b *baselines) get(ctx context.Context, key string, now time.Time) (*Baseline, error) {
	if cached, ok := b.cache.Get(key); ok && now.Sub(cached.BuiltAt) < b.maxAge {
		return cached, nil
	}
	// The shared query ignores the first caller's cancellation and is bounded
	// by the storage timeout. Each waiter leaves when its own context ends.
	shared := context.WithoutCancel(ctx)
	ch := b.group.DoChan(key, func() (interface{}, error) {
		var events []loginevent.LoginEvent
		err := b.guard.do(shared, func(ctx context.Context) error {
			var err error
			events, err = b.repo.ListSince(ctx, key, now.Add(-b.lookback), b.limit)
			return err
		})
		if err != nil {
			return nil, err
		}
		built := newBaseline(events, now)
		b.cache.Add(key, built)
		return built, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("failed to build baseline for %s: %w", key, res.Err)
		}
		return res.Val.(*Baseline), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("failed to build baseline for %s: %w", key, ctx.Err())
	}
}

func (b *baselines) invalidate(key string) {
	b.cache.Remove(key)
}

// expire drops baselines older than maxAge.
func (b *baselines) expire(now time.Time) int {
	removed := 0
	for _, key := range b.cache.Keys() {
		if cached, ok := b.cache.Peek(key); ok && now.Sub(cached.BuiltAt) >= b.maxAge {
			b.cache.Remove(key)
			removed++
		}
	}
	return removed
}

func (b *baselines) len() int {
	return b.cache.Len()
}
