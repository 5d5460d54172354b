package model

import "time"

// Response is the standard API response envelope.
type Response struct {
	Status    string    `json:"status"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Error     *APIError `json:"error"`
}

// ScheduleRequest is the body of POST /api/v1/schedules.
type ScheduleRequest struct {
	Policy  string     `json:"policy"`
	Quantum int        `json:"quantum,omitempty"`
	Jobs    []JobInput `json:"jobs"`
}

// JobInput is a job as submitted by a client; ids are assigned by position.
type JobInput struct {
	Arrival  int `json:"arrival" yaml:"arrival"`
	Duration int `json:"duration" yaml:"duration"`
	Priority int `json:"priority" yaml:"priority"`
}

// ToJobs assigns ids 1..N in input order.
func ToJobs(inputs []JobInput) []Job {
	jobs := make([]Job, len(inputs))
	for i, in := range inputs {
		jobs[i] = Job{ID: i + 1, Arrival: in.Arrival, Duration: in.Duration, Priority: in.Priority}
	}
	return jobs
}
