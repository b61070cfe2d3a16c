package breaker

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// ErrOpen is returned without calling fn while the breaker is open or the
// half-open trial budget is used up.
var ErrOpen = errors.New("circuit open")

type CircuitBreaker interface {
	Execute(fn func() error) error
	State() gobreaker.State
}

type Settings struct {
	Name        string
	Timeout     time.Duration
	MaxFailures uint32
	// Ignore marks errors that describe a healthy dependency (for example a
	// missing row) so they do not trip the breaker.
	Ignore func(err error) bool
}

type circuitBreakerWrapper struct {
	breaker *gobreaker.CircuitBreaker
}

func NewCircuitBreaker(logger *logrus.Logger, s Settings) CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: 5,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || (s.Ignore != nil && s.Ignore(err))
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if logger == nil {
				return
			}
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state changed")
		},
	}
	return &circuitBreakerWrapper{
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

func (g *circuitBreakerWrapper) Execute(fn func() error) error {
	_, err := g.breaker.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("breaker (%s): %w", g.breaker.Name(), ErrOpen)
	}
	return fmt.Errorf("breaker (%s): %w", g.breaker.Name(), err)
}

func (g *circuitBreakerWrapper) State() gobreaker.State {
	return g.breaker.State()
}
