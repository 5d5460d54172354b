package scheduler

import "github.com/me/cpusim/pkg/model"

// Scheduler simulates one batch of jobs under a single policy.
type Scheduler interface {
	// Simulate runs the policy over jobs and returns the schedule with its metrics.
	Simulate(jobs []model.Job, opts Options) (*Result, error)
}

// Options selects the policy for one simulation run.
type Options struct {
	Policy model.Policy `json:"policy" yaml:"policy"`
	// Quantum is the round-robin time slice; ignored by other policies.
	Quantum int `json:"quantum,omitempty" yaml:"quantum,omitempty"`
}

// Validate checks the policy and, for sliced policies, the quantum.
func (o Options) Validate() error {
	if !o.Policy.Valid() {
		return &model.UnknownPolicyError{Value: string(o.Policy)}
	}
	if o.Policy.Sliced() && o.Quantum <= 0 {
		return &model.MissingQuantumError{Policy: o.Policy, Quantum: o.Quantum}
	}
	return nil
}

// Result is a finished simulation.
type Result struct {
	Policy  model.Policy  `json:"policy" yaml:"policy"`
	Quantum int           `json:"quantum,omitempty" yaml:"quantum,omitempty"`
	Bursts  []model.Burst `json:"bursts" yaml:"bursts"`
	Metrics *Metrics      `json:"metrics" yaml:"metrics"`
}
