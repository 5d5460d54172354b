package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/me/cpusim/internal/batch"
	"github.com/me/cpusim/internal/render"
	"github.com/me/cpusim/internal/scheduler"
	"github.com/me/cpusim/pkg/model"
)

const (
	maxBodyBytes = 1 << 20
	maxJobs      = 10000
)

type scheduleResponse struct {
	ID      string             `json:"id"`
	Policy  model.Policy       `json:"policy"`
	Quantum int                `json:"quantum,omitempty"`
	Bursts  []model.Burst      `json:"bursts"`
	Metrics *scheduler.Metrics `json:"metrics"`
}

type batchResponse struct {
	ID    string                `json:"id"`
	Cases []render.CaseDocument `json:"cases"`
}

// validateScheduleRequest collects every problem with req instead of stopping
// at the first one.
func validateScheduleRequest(req model.ScheduleRequest, defaultQuantum int) (scheduler.Options, []model.Job, []model.FieldError) {
	var details []model.FieldError

	opts := scheduler.Options{Quantum: req.Quantum}
	policy, err := model.ParsePolicy(req.Policy)
	if err != nil {
		details = append(details, model.FieldError{Field: "policy", Message: err.Error()})
	} else {
		opts.Policy = policy
		if policy.Sliced() && opts.Quantum == 0 {
			opts.Quantum = defaultQuantum
		}
		if policy.Sliced() && opts.Quantum <= 0 {
			details = append(details, model.FieldError{Field: "quantum", Message: "must be positive for " + policy.String()})
		}
	}

	if len(req.Jobs) > maxJobs {
		details = append(details, model.FieldError{Field: "jobs", Message: fmt.Sprintf("at most %d jobs per request", maxJobs)})
	}
	jobs := model.ToJobs(req.Jobs)
	for i, j := range jobs {
		if err := j.Validate(); err != nil {
			details = append(details, model.FieldError{Field: fmt.Sprintf("jobs[%d]", i), Message: err.Error()})
		}
	}
	return opts, jobs, details
}

func (s *Server) handleCreateSchedule(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req model.ScheduleRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("Invalid JSON body: "+err.Error()))
		return
	}

	opts, jobs, details := validateScheduleRequest(req, s.config.DefaultQuantum)
	if len(details) > 0 {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("invalid schedule request", details...))
		return
	}

	res, err := s.scheduler.Simulate(jobs, opts)
	if err != nil {
		s.logger.Error("simulation failed", "request_id", reqID, "error", err)
		respondSimulationError(w, reqID, err)
		return
	}

	id := runID()
	s.logger.Info("schedule created", "id", id, "policy", res.Policy, "jobs", len(jobs), "bursts", len(res.Bursts))
	respondCreated(w, reqID, scheduleResponse{
		ID:      id,
		Policy:  res.Policy,
		Quantum: res.Quantum,
		Bursts:  res.Bursts,
		Metrics: res.Metrics,
	})
}

// handleRunBatch accepts a batch in the text or YAML format. Failed cases are
// reported per case; the request itself only fails when the batch cannot be
// parsed. Pass ?metrics=true to include metrics.
func (s *Server) handleRunBatch(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	b, err := batch.Parse(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, reqID, http.StatusRequestEntityTooLarge, model.NewValidationError(err.Error()))
			return
		}
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("invalid batch: "+err.Error()))
		return
	}

	outcomes := s.runner.Run(r.Context(), b)
	id := runID()
	s.logger.Info("batch simulated", "id", id, "cases", len(outcomes))
	respondOK(w, reqID, batchResponse{
		ID:    id,
		Cases: render.Documents(outcomes, render.Options{Metrics: r.URL.Query().Get("metrics") == "true"}),
	})
}
