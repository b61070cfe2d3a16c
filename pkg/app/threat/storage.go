package threat

import (
	"context"
	"time"

	"github.com/NeuralTrust/AuthShield/pkg/infra/breaker"
	"github.com/sirupsen/logrus"
)

const (
	reputationBreakerName = "reputation-store"
	historyBreakerName    = "login-history"
)

// guardedStore runs storage calls under a per-call deadline and a circuit
// breaker. While the breaker is open calls fail with breaker.ErrOpen
// without touching the store.
type guardedStore struct {
	breaker breaker.CircuitBreaker
	timeout time.Duration
}

func newGuardedStore(logger *logrus.Logger, name string, opts Options) guardedStore {
	return guardedStore{
		breaker: breaker.NewCircuitBreaker(logger, breaker.Settings{
			Name:        name,
			Timeout:     opts.BreakerTimeout,
			MaxFailures: opts.BreakerMaxFailures,
		}),
		timeout: opts.StorageTimeout,
	}
}

func (g guardedStore) do(ctx context.Context, fn func(ctx context.Context) error) error {
	return g.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()
		return fn(ctx)
	})
}
