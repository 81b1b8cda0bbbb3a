// Package main starts an HTTP server that provides endpoints for health checks
// and GTM container analysis. It uses the internal handlers package to process
// incoming requests and return JSON responses.
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/sperciky/variable-monitoring/cmd/api/middleware"
	"github.com/sperciky/variable-monitoring/internal/config"
	"github.com/sperciky/variable-monitoring/internal/handlers"
	"github.com/sperciky/variable-monitoring/internal/logging"
	"github.com/sperciky/variable-monitoring/internal/reportcache"
)

func newRouter(server *handlers.Server) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", server.HealthHandler)
	mux.HandleFunc("/analyze", server.AnalyzeHandler)
	mux.HandleFunc("/graph", server.GraphHandler)
	return mux
}

func main() {
	cfg, err := config.Load(os.Getenv("GTM_CONFIG_FILE"))
	if err != nil {
		logging.New(os.Stderr, "error", "api").Fatal("failed to load config", "err", err)
	}

	logger := logging.New(os.Stderr, cfg.LogLevel, "api")

	cache, err := reportcache.New(cfg.CacheSize)
	if err != nil {
		logger.Fatal("failed to create report cache", "err", err)
	}

	server := handlers.NewServer(handlers.ServerOptions{
		Logger:            logger.WithPrefix("handlers"),
		Cache:             cache,
		MaxBodyBytes:      cfg.MaxBodyBytes,
		IncludePausedTags: cfg.IncludePausedTags,
	})

	httpServer := &http.Server{
		Addr:              cfg.Port,
		Handler:           middleware.Cors(cfg.CORSAllowedOrigin, newRouter(server)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("🚀 Server starting", "addr", cfg.Port, "cacheSize", cfg.CacheSize)
	logger.Fatal(httpServer.ListenAndServe())
}
