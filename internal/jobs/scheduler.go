package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Job is a single-pass batch run with two terminal outcomes: success or
// failure. Jobs hold no state between runs.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Scheduler drives the extraction and pipeline jobs on independent
// intervals from a single goroutine. Running both from one select loop
// means the two jobs can never overlap, which keeps the relative order of
// writes to payment_amount defined without any locking.
type Scheduler struct {
	extract          Job
	pipeline         Job
	extractInterval  time.Duration
	pipelineInterval time.Duration
	retryWait        time.Duration
	logger           *slog.Logger
}

func NewScheduler(extract, pipeline Job, extractInterval, pipelineInterval, retryWait time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		extract:          extract,
		pipeline:         pipeline,
		extractInterval:  extractInterval,
		pipelineInterval: pipelineInterval,
		retryWait:        retryWait,
		logger:           logger,
	}
}

// Run blocks until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("scheduler started",
		"extract_interval", s.extractInterval.String(),
		"pipeline_interval", s.pipelineInterval.String(),
	)

	extractTicker := time.NewTicker(s.extractInterval)
	defer extractTicker.Stop()
	pipelineTicker := time.NewTicker(s.pipelineInterval)
	defer pipelineTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopping")
			return
		case <-extractTicker.C:
			s.RunOnce(ctx, s.extract)
		case <-pipelineTicker.C:
			s.RunOnce(ctx, s.pipeline)
		}
	}
}

// RunOnce executes a job, retrying a failed run once after a fixed wait.
// Nothing inside a run is retried; the whole run either succeeds or is
// marked failed.
func (s *Scheduler) RunOnce(ctx context.Context, job Job) {
	runID := uuid.NewString()
	start := time.Now()

	err := job.Run(ctx)
	if err == nil {
		s.logger.Info("job run succeeded",
			"job", job.Name(),
			"run_id", runID,
			"duration", time.Since(start).String(),
		)
		return
	}

	s.logger.Warn("job run failed, retrying once",
		"job", job.Name(),
		"run_id", runID,
		"error", err,
		"retry_wait", s.retryWait.String(),
	)

	select {
	case <-ctx.Done():
		return
	case <-time.After(s.retryWait):
	}

	if err := job.Run(ctx); err != nil {
		s.logger.Error("job run failed",
			"job", job.Name(),
			"run_id", runID,
			"error", err,
		)
		return
	}

	s.logger.Info("job run succeeded on retry",
		"job", job.Name(),
		"run_id", runID,
		"duration", time.Since(start).String(),
	)
}
