package model

import (
	"errors"
	"fmt"
)

// ErrEmptyQueue is returned by queue operations on an empty queue.
// Inside the engine it indicates a defect, not a recoverable condition.
var ErrEmptyQueue = errors.New("queue is empty")

// InvalidJobError is returned when a job or fragment has a negative arrival
// or a non-positive duration.
type InvalidJobError struct {
	ID       int
	Arrival  int
	Duration int
}

func (e *InvalidJobError) Error() string {
	return fmt.Sprintf("invalid job %d: arrival=%d duration=%d (need arrival >= 0, duration > 0)", e.ID, e.Arrival, e.Duration)
}

// UnknownPolicyError is returned when a policy code is not recognized.
type UnknownPolicyError struct {
	Value string
}

func (e *UnknownPolicyError) Error() string {
	return fmt.Sprintf("unknown scheduling policy %q", e.Value)
}

// MissingQuantumError is returned when a time-sliced policy has no positive quantum.
type MissingQuantumError struct {
	Policy  Policy
	Quantum int
}

func (e *MissingQuantumError) Error() string {
	return fmt.Sprintf("policy %s requires a positive quantum, got %d", e.Policy, e.Quantum)
}

// ErrorCode represents a structured API error code.
type ErrorCode string

const (
	ErrValidation ErrorCode = "VALIDATION_ERROR"
	ErrNotFound   ErrorCode = "NOT_FOUND"
	ErrInternal   ErrorCode = "INTERNAL_ERROR"
)

// APIError is a structured error returned by the HTTP API.
type APIError struct {
	Code    ErrorCode    `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// FieldError describes a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// NewValidationError creates an APIError with validation details.
func NewValidationError(msg string, details ...FieldError) *APIError {
	return &APIError{Code: ErrValidation, Message: msg, Details: details}
}

// IsValidation reports whether err is caused by bad input rather than a defect.
func IsValidation(err error) bool {
	var jobErr *InvalidJobError
	var policyErr *UnknownPolicyError
	var quantumErr *MissingQuantumError
	return errors.As(err, &jobErr) || errors.As(err, &policyErr) || errors.As(err, &quantumErr)
}
