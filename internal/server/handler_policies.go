package server

import (
	"net/http"

	"github.com/me/cpusim/pkg/model"
)

type policyInfo struct {
	Code            model.Policy `json:"code"`
	Description     string       `json:"description"`
	Preemptive      bool         `json:"preemptive"`
	RequiresQuantum bool         `json:"requires_quantum"`
}

func policyTable() []policyInfo {
	out := make([]policyInfo, 0, len(model.Policies))
	for _, p := range model.Policies {
		out = append(out, policyInfo{
			Code:            p,
			Description:     p.Description(),
			Preemptive:      p.Preemptive(),
			RequiresQuantum: p.Sliced(),
		})
	}
	return out
}

func (s *Server) handleListPolicies(w http.ResponseWriter, r *http.Request) {
	respondOK(w, RequestIDFromContext(r.Context()), policyTable())
}
