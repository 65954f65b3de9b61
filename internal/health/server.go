// Package health provides the HTTP server for health checks, metrics and the analysis API.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
}

// ReadyResponse represents the JSON response for readiness check endpoints.
type ReadyResponse struct {
	Status   string            `json:"status"`
	Service  string            `json:"service"`
	Checks   map[string]string `json:"checks,omitempty"`
	Duration string            `json:"duration,omitempty"`
}

// RouteRegistrar adds application routes to the server mux.
type RouteRegistrar interface {
	Register(mux *http.ServeMux)
}

// Server serves health endpoints alongside optional metrics and API routes.
type Server struct {
	serviceName     string
	version         string
	commit          string
	addr            string
	readTimeout     time.Duration
	shutdownTimeout time.Duration
	metricsPath     string
	metrics         http.Handler
	routes          RouteRegistrar
	server          *http.Server
	done            chan struct{}
	logger          *logrus.Logger
	mu              sync.RWMutex
	ready           bool
}

// Config holds the configuration for the server.
type Config struct {
	ServiceName     string
	Version         string
	Commit          string
	Addr            string
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration
	MetricsPath     string
	Metrics         http.Handler
	Routes          RouteRegistrar
	Logger          *logrus.Logger
}

// NewServer creates a new server.
func NewServer(cfg Config) *Server {
	addr := cfg.Addr
	if addr == "" {
		addr = ":8080"
	}
	readTimeout := cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 5 * time.Second
	}
	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 5 * time.Second
	}
	metricsPath := cfg.MetricsPath
	if metricsPath == "" {
		metricsPath = "/metrics"
	}

	return &Server{
		serviceName:     cfg.ServiceName,
		version:         cfg.Version,
		commit:          cfg.Commit,
		addr:            addr,
		readTimeout:     readTimeout,
		shutdownTimeout: shutdownTimeout,
		metricsPath:     metricsPath,
		metrics:         cfg.Metrics,
		routes:          cfg.Routes,
		logger:          cfg.Logger,
		done:            make(chan struct{}),
		ready:           false,
	}
}

// SetReady marks the server as ready to accept traffic.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// IsReady returns whether the server is ready.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Handler builds the server's routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.HandleFunc("/live", s.handleLive)
	if s.metrics != nil {
		mux.Handle(s.metricsPath, s.metrics)
	}
	if s.routes != nil {
		s.routes.Register(mux)
	}
	return mux
}

// Start binds the listen address and serves in the background until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.readTimeout,
		WriteTimeout: 2 * s.readTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{
				"addr":    ln.Addr().String(),
				"service": s.serviceName,
			}).Info("HTTP server starting")
		}

		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			if s.logger != nil {
				s.logger.WithError(err).Error("HTTP server error")
			}
		}
	}()

	// Wait for context cancellation
	go func() {
		defer close(s.done)
		<-ctx.Done()
		s.SetReady(false)
		if err := s.Shutdown(); err != nil && s.logger != nil {
			s.logger.WithError(err).Warn("HTTP server shutdown incomplete")
		}
	}()

	return nil
}

// Done is closed once a started server has shut down after its context ended.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}

	if s.logger != nil {
		s.logger.Info("HTTP server shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// handleHealth handles the /health endpoint - basic liveness check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ok",
		Service:   s.serviceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   s.version,
		Commit:    s.commit,
	}

	WriteJSON(w, http.StatusOK, response)
}

// handleLive handles the /live endpoint - kubernetes liveness probe.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:  "ok",
		Service: s.serviceName,
	}

	WriteJSON(w, http.StatusOK, response)
}

// handleReady handles the /ready endpoint.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	checks := make(map[string]string)

	ready := s.IsReady()
	if ready {
		checks["service"] = "ok"
	} else {
		checks["service"] = "not_ready"
	}

	response := ReadyResponse{
		Service:  s.serviceName,
		Checks:   checks,
		Duration: time.Since(start).String(),
	}

	if ready {
		response.Status = "ok"
		WriteJSON(w, http.StatusOK, response)
		return
	}
	response.Status = "not_ready"
	WriteJSON(w, http.StatusServiceUnavailable, response)
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
