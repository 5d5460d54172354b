package scheduler

import (
	"fmt"
	"log/slog"

	"github.com/me/cpusim/internal/logging"
	"github.com/me/cpusim/internal/pqueue"
	"github.com/me/cpusim/pkg/model"
)

// Loop implements the Scheduler interface with a priority-queue driven
// discrete-event loop.
type Loop struct {
	logger *slog.Logger
}

// NewLoop creates a new scheduler loop.
func NewLoop(logger *slog.Logger) *Loop {
	return &Loop{logger: logger.With("component", "scheduler")}
}

// Simulate runs the policy over jobs and computes the schedule metrics.
func (l *Loop) Simulate(jobs []model.Job, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	bursts, err := run(jobs, opts, l.logger.With("policy", opts.Policy))
	if err != nil {
		return nil, err
	}
	l.logger.Info("simulation finished", "policy", opts.Policy, "jobs", len(jobs), "bursts", len(bursts))
	return &Result{
		Policy:  opts.Policy,
		Quantum: quantumOf(opts),
		Bursts:  bursts,
		Metrics: ComputeMetrics(jobs, bursts),
	}, nil
}

// Run returns the execution timeline of jobs under opts.
// Job ids are taken from the input and must be unique.
func Run(jobs []model.Job, opts Options) ([]model.Burst, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return run(jobs, opts, logging.Discard())
}

func quantumOf(opts Options) int {
	if opts.Policy.Sliced() {
		return opts.Quantum
	}
	return 0
}

// sequence hands out fragment creation numbers for one run.
type sequence int

func (s *sequence) next() int {
	*s++
	return int(*s)
}

// state is everything one simulation run mutates.
type state struct {
	opts    Options
	key     keyFunc
	pending *pqueue.Queue[*model.Fragment]
	output  []model.Burst
	clock   int
	seq     sequence
	logger  *slog.Logger
}

func run(jobs []model.Job, opts Options, logger *slog.Logger) ([]model.Burst, error) {
	s := &state{
		opts:   opts,
		key:    keyFuncs[opts.Policy],
		output: make([]model.Burst, 0, len(jobs)),
		logger: logger,
	}
	s.pending = pqueue.New(func(a, b *model.Fragment) int {
		return s.key(a).Compare(s.key(b))
	})

	for _, j := range jobs {
		f, err := model.NewFragment(j.ID, j.Arrival, j.Duration, j.Priority, s.seq.next(), true)
		if err != nil {
			return nil, err
		}
		s.pending.Push(f)
	}

	for !s.pending.Empty() {
		if err := s.step(); err != nil {
			return nil, err
		}
	}
	return s.output, nil
}

// step pops the best pending fragment and either re-queues, slices,
// commits or preempts it.
func (s *state) step() error {
	f, err := s.pending.PopMin()
	if err != nil {
		return fmt.Errorf("pop pending fragment: %w", err)
	}

	// The CPU is still busy: re-sort the fragment by the time it can actually start.
	if f.Arrival < s.clock {
		f.Arrival = s.clock
		s.pending.Push(f)
		return nil
	}

	switch {
	case s.opts.Policy.Sliced() && f.Duration > s.opts.Quantum:
		return s.slice(f)
	case !s.opts.Policy.Preemptive():
		s.commit(f)
		return nil
	default:
		return s.interruptSearch(f)
	}
}

// slice runs one quantum of f and re-queues the rest.
func (s *state) slice(f *model.Fragment) error {
	tail, err := model.NewFragment(f.ID, f.Arrival+s.opts.Quantum, f.Duration-s.opts.Quantum, f.Priority, s.seq.next(), f.Final)
	if err != nil {
		return fmt.Errorf("slice fragment %v: %w", f, err)
	}
	f.Duration = s.opts.Quantum
	f.Final = false
	s.commit(f)
	s.pending.Push(tail)
	s.logger.Debug("quantum expired", "job_id", f.ID, "at", s.clock, "remaining", tail.Duration)
	return nil
}

// interruptSearch probes fragments arriving while f would run. The first one
// that beats the unexecuted remainder of f cuts f short; otherwise f runs to
// completion. Probed fragments are always returned to the queue.
func (s *state) interruptSearch(f *model.Fragment) error {
	var rejected []*model.Fragment
	defer func() {
		for _, c := range rejected {
			s.pending.Push(c)
		}
	}()

	for !s.pending.Empty() {
		c, err := s.pending.PeekMin()
		if err != nil {
			return fmt.Errorf("peek pending fragment: %w", err)
		}
		if c.Arrival >= f.EndTime() {
			break
		}

		rest := &model.Fragment{
			ID:       f.ID,
			Arrival:  c.Arrival,
			Duration: f.EndTime() - c.Arrival,
			Priority: f.Priority,
			Final:    f.Final,
		}
		if s.key(c).Compare(s.key(rest)) < 0 {
			rest.Seq = s.seq.next()
			f.Duration = c.Arrival - f.Arrival
			f.Final = false
			s.pending.Push(f)
			s.pending.Push(rest)
			s.logger.Debug("preempted", "job_id", f.ID, "by", c.ID, "at", c.Arrival, "remaining", rest.Duration)
			return nil
		}

		if _, err := s.pending.PopMin(); err != nil {
			return fmt.Errorf("pop probed fragment: %w", err)
		}
		rejected = append(rejected, c)
	}

	s.commit(f)
	return nil
}

// commit appends f to the schedule, extending the last burst when it belongs
// to the same job, and moves the clock to the end of f.
func (s *state) commit(f *model.Fragment) {
	if n := len(s.output); n > 0 && s.output[n-1].ID == f.ID {
		last := &s.output[n-1]
		last.Duration += f.Duration
		last.Terminates = f.Final
	} else {
		s.output = append(s.output, model.Burst{
			Start:      f.Arrival,
			ID:         f.ID,
			Duration:   f.Duration,
			Terminates: f.Final,
		})
	}
	s.clock = f.EndTime()
	s.logger.Debug("committed", "job_id", f.ID, "start", f.Arrival, "duration", f.Duration, "final", f.Final)
}
