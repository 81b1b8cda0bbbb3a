// Package handlers provides HTTP request handlers for the API endpoints.
// It defines the routing logic, response formatting, and error handling mechanisms.
package handlers

import (
	"net/http"
	"runtime"
	"strconv"
	"time"
)

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Service   string            `json:"service"`
	Uptime    string            `json:"uptime,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
}

// HealthHandler reports liveness together with the analysis settings and the
// state of the report cache.
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.writeJSON(w, r, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   "gtm-analyzer-api",
		Uptime:    time.Since(s.started).String(),
		Details: map[string]string{
			"go_version":          runtime.Version(),
			"num_cpu":             strconv.Itoa(runtime.NumCPU()),
			"include_paused_tags": strconv.FormatBool(s.includePausedTags),
			"max_body_bytes":      strconv.FormatInt(s.maxBodyBytes, 10),
			"cache_enabled":       strconv.FormatBool(s.cache != nil),
			"cached_reports":      strconv.Itoa(s.cache.Len()),
		},
	})
}
