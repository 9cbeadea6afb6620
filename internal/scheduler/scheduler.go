package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joenewbry/prospector/internal/pipeline"
)

// Scheduler runs the pipeline on a fixed interval.
type Scheduler struct {
	pipeline *pipeline.Pipeline
	interval time.Duration
}

// New creates a new scheduler.
func New(pl *pipeline.Pipeline, interval time.Duration) *Scheduler {
	if interval == 0 {
		interval = 6 * time.Hour
	}
	return &Scheduler{
		pipeline: pl,
		interval: interval,
	}
}

// Run starts the scheduler loop. Blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Run immediately on start.
	fmt.Fprintln(os.Stderr, "scheduler: initial run...")
	s.runOnce(ctx)

	fmt.Fprintf(os.Stderr, "scheduler: running every %s\n", s.interval)

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(os.Stderr, "scheduler: stopped")
			return ctx.Err()
		case <-ticker.C:
			fmt.Fprintln(os.Stderr, "scheduler: running pipeline...")
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	run, prospects, err := s.pipeline.Run(ctx, pipeline.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "  pipeline error: %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "  %s: %d prospects\n", run.ID, len(prospects))
}
