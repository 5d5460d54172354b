package model

import (
	"errors"
	"testing"
)

func TestPolicy_Attributes(t *testing.T) {
	tests := []struct {
		policy     Policy
		preemptive bool
		sliced     bool
	}{
		{PolicyFCFS, false, false},
		{PolicySJF, false, false},
		{PolicySRTF, true, false},
		{PolicyPriority, true, false},
		{PolicyRoundRobin, false, true},
	}
	for _, tt := range tests {
		if got := tt.policy.Preemptive(); got != tt.preemptive {
			t.Errorf("Policy(%q).Preemptive() = %v, want %v", tt.policy, got, tt.preemptive)
		}
		if got := tt.policy.Sliced(); got != tt.sliced {
			t.Errorf("Policy(%q).Sliced() = %v, want %v", tt.policy, got, tt.sliced)
		}
		if !tt.policy.Valid() {
			t.Errorf("Policy(%q).Valid() = false", tt.policy)
		}
	}
	if Policy("LOTTERY").Valid() {
		t.Error("LOTTERY should not be valid")
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		input string
		want  Policy
	}{
		{"FCFS", PolicyFCFS},
		{"fcfs", PolicyFCFS},
		{"SJF", PolicySJF},
		{"SRTF", PolicySRTF},
		{"P", PolicyPriority},
		{"priority", PolicyPriority},
		{"RR", PolicyRoundRobin},
		{"round_robin", PolicyRoundRobin},
		{" rr ", PolicyRoundRobin},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.input)
		if err != nil {
			t.Errorf("ParsePolicy(%q): unexpected error %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePolicy(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParsePolicy_Unknown(t *testing.T) {
	_, err := ParsePolicy("MLFQ")
	var policyErr *UnknownPolicyError
	if !errors.As(err, &policyErr) {
		t.Fatalf("expected UnknownPolicyError, got %v", err)
	}
	if policyErr.Value != "MLFQ" {
		t.Errorf("Value = %q, want MLFQ", policyErr.Value)
	}
}
