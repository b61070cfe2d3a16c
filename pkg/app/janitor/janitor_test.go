package janitor_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/NeuralTrust/AuthShield/pkg/app/janitor"
	"github.com/NeuralTrust/AuthShield/pkg/infra/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJanitor_RunsJobsIndependently(t *testing.T) {
	var fast, slow atomic.Int32
	release := make(chan struct{})

	j := janitor.New(logger.NewNopLogger(),
		janitor.Job{
			Name:     "fast",
			Interval: 5 * time.Millisecond,
			Run: func(context.Context) error {
				fast.Add(1)
				return nil
			},
		},
		janitor.Job{
			Name:     "slow",
			Interval: 5 * time.Millisecond,
			Run: func(context.Context) error {
				slow.Add(1)
				<-release
				return nil
			},
		},
	)
	j.Start()
	j.Start()

	assert.Eventually(t, func() bool { return slow.Load() == 1 }, time.Second, time.Millisecond)
	before := fast.Load()
	assert.Eventually(t, func() bool { return fast.Load() >= before+3 }, time.Second, time.Millisecond)
	assert.Equal(t, int32(1), slow.Load())

	close(release)
	j.Stop()
	j.Stop()
}

func TestJanitor_RunOnceSurvivesErrorsAndPanics(t *testing.T) {
	j := janitor.New(logger.NewNopLogger())

	assert.NotPanics(t, func() {
		j.RunOnce(janitor.Job{Name: "boom", Run: func(context.Context) error { panic("bad") }})
		j.RunOnce(janitor.Job{Name: "err", Run: func(context.Context) error { return errors.New("failed") }})
	})
}

func TestJanitor_RunOnceAppliesTimeout(t *testing.T) {
	j := janitor.New(logger.NewNopLogger())
	var deadline bool

	j.RunOnce(janitor.Job{
		Name:    "bounded",
		Timeout: time.Second,
		Run: func(ctx context.Context) error {
			_, deadline = ctx.Deadline()
			return nil
		},
	})
	assert.True(t, deadline)
}

func TestJanitor_DisabledJobsAreSkipped(t *testing.T) {
	var calls atomic.Int32
	j := janitor.New(logger.NewNopLogger(), janitor.Job{
		Name: "off",
		Run: func(context.Context) error {
			calls.Add(1)
			return nil
		},
	})
	j.Start()
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, j.StopWithContext(context.Background()))
	assert.Zero(t, calls.Load())
}
