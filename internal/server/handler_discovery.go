package server

import "net/http"

type endpointInfo struct {
	Path        string   `json:"path"`
	Methods     []string `json:"methods"`
	Description string   `json:"description"`
}

type discoveryResponse struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Endpoints   []endpointInfo `json:"endpoints"`
}

func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, discoveryResponse{
		Name:        "cpusim API",
		Version:     "v1",
		Description: "Single-processor CPU scheduling simulator",
		Endpoints: []endpointInfo{
			{"/api/v1/policies", []string{"GET"}, "Supported scheduling policies"},
			{"/api/v1/schedules", []string{"POST"}, "Simulate one set of jobs under one policy"},
			{"/api/v1/batches", []string{"POST"}, "Simulate a text or YAML batch of cases"},
			{"/api/v1/health", []string{"GET"}, "Server health and version"},
		},
	})
}
