// Package server provides the HTTP server for the vision3 analysis service.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ayusman/vision3/internal/analysis"
	"github.com/ayusman/vision3/internal/server/api"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Service   *analysis.Service
	Logger    *zap.Logger
	WS        WSConfig

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server represents the HTTP server for the analysis service.
type Server struct {
	config  Config
	mux     *http.ServeMux
	handler http.Handler
	logger  *zap.Logger
	start   time.Time
	http    *http.Server
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		logger: logger,
		start:  time.Now(),
	}
	s.setupRoutes()
	s.handler = withCORS(withRequestLog(logger, s.mux))
	s.http = &http.Server{
		Handler:      s,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.Handle("/api/ranges", api.NewRangesHandler())

	// Analysis endpoints need a service to answer with.
	if s.config.Service != nil {
		s.mux.Handle("/api/posture", api.NewPostureHandler(s.config.Service))
		s.mux.Handle("/api/joints", api.NewJointsHandler(s.config.Service))
		s.mux.Handle("/ws/analyze", NewAnalyzeHandler(s.config.Service, s.config.WS, s.logger))
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address. It returns
// http.ErrServerClosed after Shutdown.
func (s *Server) ListenAndServe(addr string) error {
	s.http.Addr = addr
	s.logger.Info("server listening", zap.String("addr", addr))
	return s.http.ListenAndServe()
}

// Shutdown gracefully stops the server. WebSocket
// connections are hijacked and are not waited for.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
