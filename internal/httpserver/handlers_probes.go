package httpserver

import (
	"net/http"
)

type probeResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) error {
	if s.ready != nil {
		if err := s.ready(r.Context()); err != nil {
			s.log.Warn("readiness check failed", "error", err)
			s.metrics.setReadiness(false)
			return writeJSON(w, http.StatusServiceUnavailable, probeResponse{Status: "not ready"})
		}
	}
	s.metrics.setReadiness(true)
	return writeJSON(w, http.StatusOK, probeResponse{Status: "ready"})
}

// handleLive answers 200 as long as the process can serve HTTP at all.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, http.StatusOK, probeResponse{Status: "alive"})
}
