package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/me/cpusim/internal/scheduler"
)

// Outcome is the result of simulating one case.
type Outcome struct {
	Case   Case
	Result *scheduler.Result
	Err    error
}

// Runner simulates the cases of a batch concurrently. Cases share no state,
// so each one gets its own scheduler run.
type Runner struct {
	sched  scheduler.Scheduler
	sem    *Semaphore
	logger *slog.Logger
}

// NewRunner creates a runner that simulates at most workers cases at once.
// workers <= 0 means unlimited.
func NewRunner(sched scheduler.Scheduler, workers int, logger *slog.Logger) *Runner {
	return &Runner{
		sched:  sched,
		sem:    NewSemaphore(workers),
		logger: logger.With("component", "batch"),
	}
}

// Run simulates every case and returns the outcomes in input order.
// Cases not started before ctx is cancelled carry ctx.Err().
func (r *Runner) Run(ctx context.Context, b *Batch) []Outcome {
	outcomes := make([]Outcome, len(b.Cases))
	var wg sync.WaitGroup

	for i, c := range b.Cases {
		outcomes[i].Case = c
		if !r.sem.Acquire(ctx) {
			outcomes[i].Err = ctx.Err()
			continue
		}
		r.logger.Debug("case started", "case", c.Name, "in_flight", r.sem.InUse())
		wg.Add(1)
		go func(i int, c Case) {
			defer wg.Done()
			defer r.sem.Release()

			res, err := r.sched.Simulate(c.Jobs, c.Options)
			if err != nil {
				err = fmt.Errorf("case %s: %w", c.Name, err)
				r.logger.Error("case failed", "case", c.Name, "error", err)
			} else {
				r.logger.Debug("case done", "case", c.Name, "bursts", len(res.Bursts))
			}
			outcomes[i].Result = res
			outcomes[i].Err = err
		}(i, c)
	}

	wg.Wait()
	r.logger.Info("batch finished", "cases", len(b.Cases), "workers", r.sem.Capacity())
	return outcomes
}
