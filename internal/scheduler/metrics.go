package scheduler

import (
	"sort"

	"github.com/gonum/stat"

	"github.com/me/cpusim/pkg/model"
)

// JobMetrics holds the timing of a single job in a schedule.
type JobMetrics struct {
	ID         int `json:"id" yaml:"id"`
	Arrival    int `json:"arrival" yaml:"arrival"`
	Duration   int `json:"duration" yaml:"duration"`
	FirstStart int `json:"first_start" yaml:"first_start"`
	Completion int `json:"completion" yaml:"completion"`
	Turnaround int `json:"turnaround" yaml:"turnaround"`
	Waiting    int `json:"waiting" yaml:"waiting"`
	Response   int `json:"response" yaml:"response"`
}

// Stat is the mean and sample standard deviation of a per-job quantity.
type Stat struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"stddev" yaml:"stddev"`
}

// Metrics summarizes a schedule.
type Metrics struct {
	Makespan        int          `json:"makespan" yaml:"makespan"`
	BusyTime        int          `json:"busy_time" yaml:"busy_time"`
	IdleTime        int          `json:"idle_time" yaml:"idle_time"`
	ContextSwitches int          `json:"context_switches" yaml:"context_switches"`
	Utilization     float64      `json:"utilization" yaml:"utilization"`
	Throughput      float64      `json:"throughput" yaml:"throughput"`
	Turnaround      Stat         `json:"turnaround" yaml:"turnaround"`
	Waiting         Stat         `json:"waiting" yaml:"waiting"`
	Response        Stat         `json:"response" yaml:"response"`
	Jobs            []JobMetrics `json:"jobs" yaml:"jobs"`
}

// ComputeMetrics derives per-job and aggregate timings from a schedule.
// Jobs that never appear in bursts are left out.
func ComputeMetrics(jobs []model.Job, bursts []model.Burst) *Metrics {
	m := &Metrics{Jobs: make([]JobMetrics, 0, len(jobs))}

	byID := make(map[int]*JobMetrics, len(jobs))
	for _, j := range jobs {
		byID[j.ID] = &JobMetrics{ID: j.ID, Arrival: j.Arrival, Duration: j.Duration, FirstStart: -1}
	}

	for i, b := range bursts {
		m.BusyTime += b.Duration
		if b.End() > m.Makespan {
			m.Makespan = b.End()
		}
		if i > 0 && bursts[i-1].ID != b.ID {
			m.ContextSwitches++
		}
		jm, ok := byID[b.ID]
		if !ok {
			continue
		}
		if jm.FirstStart < 0 {
			jm.FirstStart = b.Start
		}
		if b.Terminates {
			jm.Completion = b.End()
		}
	}
	m.IdleTime = m.Makespan - m.BusyTime

	var turnaround, waiting, response []float64
	for _, jm := range byID {
		if jm.FirstStart < 0 {
			continue
		}
		jm.Turnaround = jm.Completion - jm.Arrival
		jm.Waiting = jm.Turnaround - jm.Duration
		jm.Response = jm.FirstStart - jm.Arrival
		m.Jobs = append(m.Jobs, *jm)
	}
	sort.Slice(m.Jobs, func(i, j int) bool { return m.Jobs[i].ID < m.Jobs[j].ID })

	for _, jm := range m.Jobs {
		turnaround = append(turnaround, float64(jm.Turnaround))
		waiting = append(waiting, float64(jm.Waiting))
		response = append(response, float64(jm.Response))
	}
	m.Turnaround = summarize(turnaround)
	m.Waiting = summarize(waiting)
	m.Response = summarize(response)

	if m.Makespan > 0 {
		m.Utilization = float64(m.BusyTime) / float64(m.Makespan)
		m.Throughput = float64(len(m.Jobs)) / float64(m.Makespan)
	}
	return m
}

func summarize(x []float64) Stat {
	var s Stat
	if len(x) == 0 {
		return s
	}
	s.Mean = stat.Mean(x, nil)
	// StdDev is the unbiased estimate and undefined for a single sample.
	if len(x) > 1 {
		s.StdDev = stat.StdDev(x, nil)
	}
	return s
}
