package core

import (
	"context"
	"log/slog"
	"time"

	"github.com/baxromumarov/warlords/internal/observability"
)

type Runner interface {
	Run(ctx context.Context) error
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context) error

func (f RunnerFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// SchedulerService re-runs the pipeline on a fixed interval. Each tick is an
// independent single-shot run; failures are logged and the loop continues.
type SchedulerService struct {
	runner   Runner
	interval time.Duration
}

func NewSchedulerService(runner Runner, interval time.Duration) *SchedulerService {
	return &SchedulerService{runner: runner, interval: interval}
}

func (s *SchedulerService) Start(ctx context.Context) {
	if s.interval <= 0 {
		return
	}
	go s.loop(ctx)
}

func (s *SchedulerService) loop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *SchedulerService) runOnce(ctx context.Context) {
	if err := s.runner.Run(ctx); err != nil {
		slog.Error("scheduled refresh failed",
			"error", err,
			"type", observability.ClassifyRunError(err),
		)
	}
}
