package janitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Job is one periodic sweep. Run gets a context bounded by Timeout.
type Job struct {
	Name     string
	Interval time.Duration
	Timeout  time.Duration
	Run      func(ctx context.Context) error
}

// Janitor runs each job on its own ticker, so a slow job never delays
// another one.
type Janitor struct {
	logger    *logrus.Logger
	jobs      []Job
	stop      chan struct{}
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

func New(logger *logrus.Logger, jobs ...Job) *Janitor {
	return &Janitor{
		logger: logger,
		jobs:   jobs,
		stop:   make(chan struct{}),
	}
}

func (j *Janitor) Start() {
	j.startOnce.Do(func() {
		for _, job := range j.jobs {
			if job.Interval <= 0 || job.Run == nil {
				j.logger.WithField("job", job.Name).Warn("janitor job disabled")
				continue
			}
			j.wg.Add(1)
			go j.loop(job)
		}
	})
}

// Stop waits for running jobs to return. It is safe to call more than once.
func (j *Janitor) Stop() {
	j.stopOnce.Do(func() {
		close(j.stop)
	})
	j.wg.Wait()
}

// StopWithContext is Stop bounded by ctx.
func (j *Janitor) StopWithContext(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		j.Stop()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.New("janitor shutdown timed out")
	}
}

func (j *Janitor) loop(job Job) {
	defer j.wg.Done()
	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.RunOnce(job)
		case <-j.stop:
			return
		}
	}
}

// RunOnce executes job immediately, recovering from panics.
func (j *Janitor) RunOnce(job Job) {
	ctx := context.Background()
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			j.logger.WithFields(logrus.Fields{
				"job":   job.Name,
				"panic": r,
			}).Error("janitor job panicked")
		}
	}()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		j.logger.WithError(err).WithField("job", job.Name).Error("janitor job failed")
		return
	}
	j.logger.WithFields(logrus.Fields{
		"job":      job.Name,
		"duration": time.Since(start).String(),
	}).Debug("janitor job finished")
}
