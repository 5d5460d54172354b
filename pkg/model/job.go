package model

import "fmt"

// Job is one input job of a simulation case.
type Job struct {
	ID       int `json:"id" yaml:"id"`
	Arrival  int `json:"arrival" yaml:"arrival"`
	Duration int `json:"duration" yaml:"duration"`
	Priority int `json:"priority" yaml:"priority"`
}

// Validate checks that the job can be turned into a schedulable fragment.
func (j Job) Validate() error {
	if j.Arrival < 0 || j.Duration <= 0 {
		return &InvalidJobError{ID: j.ID, Arrival: j.Arrival, Duration: j.Duration}
	}
	return nil
}

// Fragment is a (possibly partial) slice of a job waiting for the CPU.
//
// Arrival is the time the fragment becomes ready and is re-stamped by the
// engine when the processor frees up later than that. Seq is the creation
// order within one simulation run.
type Fragment struct {
	ID       int
	Arrival  int
	Duration int
	Priority int
	Seq      int
	// Final is set when running this fragment completes the job.
	Final bool
}

// NewFragment creates a fragment, rejecting negative arrivals and
// non-positive durations.
func NewFragment(id, arrival, duration, priority, seq int, final bool) (*Fragment, error) {
	if arrival < 0 || duration <= 0 {
		return nil, &InvalidJobError{ID: id, Arrival: arrival, Duration: duration}
	}
	return &Fragment{
		ID:       id,
		Arrival:  arrival,
		Duration: duration,
		Priority: priority,
		Seq:      seq,
		Final:    final,
	}, nil
}

// EndTime returns the time the fragment finishes if started at Arrival.
func (f *Fragment) EndTime() int {
	return f.Arrival + f.Duration
}

func (f *Fragment) String() string {
	return fmt.Sprintf("(id=%d arrival=%d duration=%d final=%t seq=%d)", f.ID, f.Arrival, f.Duration, f.Final, f.Seq)
}

// Burst is one contiguous stretch of CPU time given to a single job.
type Burst struct {
	Start      int  `json:"start" yaml:"start"`
	ID         int  `json:"id" yaml:"id"`
	Duration   int  `json:"duration" yaml:"duration"`
	Terminates bool `json:"terminates" yaml:"terminates"`
}

// End returns the time the burst releases the CPU.
func (b Burst) End() int {
	return b.Start + b.Duration
}
