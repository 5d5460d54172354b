package scheduler

import (
	"testing"

	"github.com/me/cpusim/pkg/model"
)

func TestKeyOf(t *testing.T) {
	f := &model.Fragment{ID: 2, Arrival: 3, Duration: 4, Priority: 7, Seq: 9}
	tests := []struct {
		policy model.Policy
		want   Key
	}{
		{model.PolicyFCFS, Key{3, 2, 0}},
		{model.PolicySJF, Key{7, 4, 2}},
		{model.PolicySRTF, Key{3, 7, 2}},
		{model.PolicyPriority, Key{3, 7, 2}},
		{model.PolicyRoundRobin, Key{3, 9, 0}},
	}
	for _, tt := range tests {
		if got := KeyOf(tt.policy, f); got != tt.want {
			t.Errorf("KeyOf(%s) = %v, want %v", tt.policy, got, tt.want)
		}
	}
}

func TestKeyOf_EveryPolicyHasKey(t *testing.T) {
	for _, p := range model.Policies {
		if _, ok := keyFuncs[p]; !ok {
			t.Errorf("policy %s has no key function", p)
		}
	}
}

func TestKey_Compare(t *testing.T) {
	tests := []struct {
		a, b Key
		want int
	}{
		{Key{1, 2, 3}, Key{1, 2, 3}, 0},
		{Key{0, 9, 9}, Key{1, 0, 0}, -1},
		{Key{1, 2, 4}, Key{1, 2, 3}, 1},
		{Key{1, 1}, Key{1, 2}, -1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"fcfs", Options{Policy: model.PolicyFCFS}, false},
		{"rr with quantum", Options{Policy: model.PolicyRoundRobin, Quantum: 2}, false},
		{"rr without quantum", Options{Policy: model.PolicyRoundRobin}, true},
		{"unknown", Options{Policy: "LOTTERY"}, true},
		{"quantum ignored", Options{Policy: model.PolicySRTF, Quantum: -1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !model.IsValidation(err) {
				t.Errorf("Validate() error %v is not a validation error", err)
			}
		})
	}
}
