package scheduler

import (
	"slices"

	"github.com/me/cpusim/pkg/model"
)

// Key is the sort key of a fragment under a policy. Smaller keys run sooner.
// Unused trailing positions are zero.
type Key [3]int

// Compare orders keys lexicographically.
func (k Key) Compare(o Key) int {
	return slices.Compare(k[:], o[:])
}

// keyFunc maps a fragment to its ordering key.
type keyFunc func(f *model.Fragment) Key

var keyFuncs = map[model.Policy]keyFunc{
	model.PolicyFCFS: func(f *model.Fragment) Key {
		return Key{f.Arrival, f.ID}
	},
	model.PolicySJF: func(f *model.Fragment) Key {
		return Key{f.EndTime(), f.Duration, f.ID}
	},
	model.PolicySRTF: func(f *model.Fragment) Key {
		return Key{f.Arrival, f.EndTime(), f.ID}
	},
	model.PolicyPriority: func(f *model.Fragment) Key {
		return Key{f.Arrival, f.Priority, f.ID}
	},
	model.PolicyRoundRobin: func(f *model.Fragment) Key {
		return Key{f.Arrival, f.Seq}
	},
}

// KeyOf returns the ordering key of f under policy p.
// It panics if p is not a supported policy.
func KeyOf(p model.Policy, f *model.Fragment) Key {
	fn, ok := keyFuncs[p]
	if !ok {
		panic("scheduler: no ordering for policy " + string(p))
	}
	return fn(f)
}
