package model

import "strings"

// Policy identifies one of the supported CPU scheduling disciplines.
// The values match the codes used in text batch files.
type Policy string

const (
	PolicyFCFS       Policy = "FCFS"
	PolicySJF        Policy = "SJF"
	PolicySRTF       Policy = "SRTF"
	PolicyPriority   Policy = "P"
	PolicyRoundRobin Policy = "RR"
)

// Policies lists every supported policy in display order.
var Policies = []Policy{PolicyFCFS, PolicySJF, PolicySRTF, PolicyPriority, PolicyRoundRobin}

// String returns the string representation of the policy.
func (p Policy) String() string {
	return string(p)
}

// Valid returns true if p is one of the supported policies.
func (p Policy) Valid() bool {
	switch p {
	case PolicyFCFS, PolicySJF, PolicySRTF, PolicyPriority, PolicyRoundRobin:
		return true
	}
	return false
}

// Preemptive returns true if a running fragment can be cut short by a
// better fragment arriving before it finishes.
func (p Policy) Preemptive() bool {
	switch p {
	case PolicySRTF, PolicyPriority:
		return true
	}
	return false
}

// Sliced returns true if the policy time-slices fragments by a quantum.
func (p Policy) Sliced() bool {
	return p == PolicyRoundRobin
}

// Description returns a human-readable name for the policy.
func (p Policy) Description() string {
	switch p {
	case PolicyFCFS:
		return "first-come first-served"
	case PolicySJF:
		return "shortest job first"
	case PolicySRTF:
		return "shortest remaining time first"
	case PolicyPriority:
		return "priority (lower value runs first)"
	case PolicyRoundRobin:
		return "round-robin"
	}
	return "unknown"
}

var policyAliases = map[string]Policy{
	"FCFS":        PolicyFCFS,
	"SJF":         PolicySJF,
	"SRTF":        PolicySRTF,
	"P":           PolicyPriority,
	"PRIORITY":    PolicyPriority,
	"RR":          PolicyRoundRobin,
	"ROUND_ROBIN": PolicyRoundRobin,
	"ROUND-ROBIN": PolicyRoundRobin,
}

// ParsePolicy converts a policy code or alias (case-insensitive) to a Policy.
func ParsePolicy(s string) (Policy, error) {
	if p, ok := policyAliases[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return p, nil
	}
	return "", &UnknownPolicyError{Value: s}
}
