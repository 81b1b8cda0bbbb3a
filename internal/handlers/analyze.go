// Package handlers provides HTTP request handlers for the API endpoints.
// It defines the routing logic, response formatting, and error handling mechanisms.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sperciky/variable-monitoring/internal/analyzer"
	"github.com/sperciky/variable-monitoring/internal/models"
	"github.com/sperciky/variable-monitoring/internal/parser"
	"github.com/sperciky/variable-monitoring/internal/reportcache"
)

// DefaultMaxBodyBytes caps the size of a posted container export.
const DefaultMaxBodyBytes int64 = 32 << 20

// Server serves the analysis endpoints.
type Server struct {
	logger            *log.Logger
	cache             *reportcache.Cache
	maxBodyBytes      int64
	includePausedTags bool
	started           time.Time
}

type ServerOptions struct {
	Logger *log.Logger
	// Cache may be nil to disable report caching.
	Cache             *reportcache.Cache
	MaxBodyBytes      int64
	IncludePausedTags bool
}

func NewServer(opts ServerOptions) *Server {
	s := &Server{
		logger:            opts.Logger,
		cache:             opts.Cache,
		maxBodyBytes:      opts.MaxBodyBytes,
		includePausedTags: opts.IncludePausedTags,
		started:           time.Now(),
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "handlers"})
	}
	if s.maxBodyBytes <= 0 {
		s.maxBodyBytes = DefaultMaxBodyBytes
	}
	return s
}

// AnalyzeHandler analyzes the posted container export.
//
// Query parameters: exclude_paused=true ignores references made by paused
// tags, detailed=true adds usage details and evaluation impact, pretty=true
// indents the response.
func (s *Server) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	opts := analyzer.Options{IncludePausedTags: s.includePausedTags}
	switch r.URL.Query().Get("exclude_paused") {
	case "true":
		opts.IncludePausedTags = false
	case "false":
		opts.IncludePausedTags = true
	}
	detailed := r.URL.Query().Get("detailed") == "true"

	key := reportcache.Key(body, opts, detailed)
	if report, hit := s.cache.Get(key); hit {
		s.logger.Debug("serving cached report", "key", key[:12])
		s.writeJSON(w, r, report)
		return
	}

	container, err := parser.ParseContainer(body)
	if err != nil {
		http.Error(w, "Invalid container: "+err.Error(), http.StatusBadRequest)
		return
	}

	var report *models.Report
	if detailed {
		report = analyzer.AnalyzeDetailed(container, opts)
	} else {
		report = analyzer.Analyze(container, opts)
	}
	s.cache.Add(key, report)

	s.logger.Info("analyzed container",
		"variables", report.Summary.TotalVariables,
		"unused", report.Summary.UnusedVariables,
		"duplicateGroups", report.Summary.DuplicateGroups,
		"unusedTemplates", report.Summary.UnusedCustomTemplates,
	)

	s.writeJSON(w, r, report)
}

// GraphHandler returns the dependency graph of the posted container export.
func (s *Server) GraphHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	container, err := parser.ParseContainer(body)
	if err != nil {
		http.Error(w, "Invalid container: "+err.Error(), http.StatusBadRequest)
		return
	}

	s.writeJSON(w, r, parser.BuildGraph(container))
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if r.Body == nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return nil, false
	}
	defer r.Body.Close()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return nil, false
	}
	return body, true
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")

	encoder := json.NewEncoder(w)
	if r.URL.Query().Get("pretty") == "true" {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(v); err != nil {
		s.logger.Error("failed to encode response", "err", err)
	}
}
