package api

import (
	"net/http"
	"time"
)

// handleGetRoles responds with every role in catalog order.
func (s *Server) handleGetRoles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.ListRoles(r.Context()))
}

// handleModelStatus responds with adapter readiness.
func (s *Server) handleModelStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.ModelStatus(r.Context()))
}

type healthResponse struct {
	OK bool   `json:"ok"`
	TS string `json:"ts"`
}

// handleHealth is a liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		OK: true,
		TS: time.Now().UTC().Format(time.RFC3339),
	})
}

// handleStats responds with an operational snapshot.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.GetStats(r.Context()))
}
