package server

import (
	"encoding/json"
	"net/http"
	"time"
)

// Health check response
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Status response
type StatusResponse struct {
	Version  string         `json:"version"`
	Uptime   string         `json:"uptime"`
	Database DatabaseStatus `json:"database"`
}

// DatabaseStatus represents database health
type DatabaseStatus struct {
	Connected bool `json:"connected"`
	Blogs     int  `json:"blogs"`
	Sections  int  `json:"sections"`
}

var serverStartTime = time.Now()

// handleHealth handles the /health endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)

	if err := s.store.Ping(r.Context()); err != nil {
		checks["database"] = "error"
		s.respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status: "unhealthy",
			Checks: checks,
		})
		return
	}

	checks["database"] = "ok"

	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Checks: checks,
	})
}

// handleStatus handles the /api/status endpoint
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(serverStartTime)

	dbStatus := DatabaseStatus{}
	blogs, sections, err := s.store.Counts(r.Context())
	if err != nil {
		s.log.Error("Failed to read store counts", "error", err)
	} else {
		dbStatus.Connected = true
		dbStatus.Blogs = blogs
		dbStatus.Sections = sections
	}

	s.respondJSON(w, http.StatusOK, StatusResponse{
		Version:  "v1.0.0",
		Uptime:   uptime.String(),
		Database: dbStatus,
	})
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("Failed to encode JSON response", "error", err)
	}
}

// respondError writes a JSON error response with a stable, generic message.
// Internal error detail stays in the logs.
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
