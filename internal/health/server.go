// Package health provides a lightweight HTTP server for container health
// checks in daily-schedule mode.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ScheduleStatus reports the scheduler's view of the pipeline.
type ScheduleStatus interface {
	IsRunning() bool
	NextRun() time.Time
}

// StatusResponse is the JSON body for /health and /live.
type StatusResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
}

// ReadyResponse is the JSON body for /ready. LastRun and LastError cover the
// most recent pipeline execution; NextRun is the scheduler's next fire time.
type ReadyResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Checks    map[string]string `json:"checks,omitempty"`
	NextRun   string            `json:"next_run,omitempty"`
	LastRun   string            `json:"last_run,omitempty"`
	LastError string            `json:"last_error,omitempty"`
}

// Server exposes liveness and readiness endpoints while the daily schedule
// is active.
type Server struct {
	serviceName string
	version     string
	port        string
	schedule    ScheduleStatus
	server      *http.Server
	logger      *logrus.Logger

	mu        sync.RWMutex
	lastRun   time.Time
	lastError error
}

// Config holds the configuration for the health server.
type Config struct {
	ServiceName string
	Version     string
	Port        string
	Schedule    ScheduleStatus
	Logger      *logrus.Logger
}

// NewServer creates a health check server.
func NewServer(cfg Config) *Server {
	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	return &Server{
		serviceName: cfg.ServiceName,
		version:     cfg.Version,
		port:        port,
		schedule:    cfg.Schedule,
		logger:      cfg.Logger,
	}
}

// RecordRun stores the outcome of the latest pipeline execution for the
// readiness report.
func (s *Server) RecordRun(at time.Time, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRun = at
	s.lastError = err
}

// Start serves the endpoints in the background until the context is
// cancelled.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/live", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)

	s.server = &http.Server{
		Addr:         ":" + s.port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if s.logger != nil {
			s.logger.WithField("port", s.port).Info("Health check server starting")
		}
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.WithError(err).Error("Health check server error")
			}
		}
	}()

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Status:    "ok",
		Service:   s.serviceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   s.version,
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	healthy := true

	if s.schedule == nil || !s.schedule.IsRunning() {
		healthy = false
		checks["scheduler"] = "not_running"
	} else {
		checks["scheduler"] = "ok"
	}

	resp := ReadyResponse{
		Service: s.serviceName,
		Checks:  checks,
	}
	if s.schedule != nil && s.schedule.IsRunning() {
		resp.NextRun = s.schedule.NextRun().UTC().Format(time.RFC3339)
	}

	s.mu.RLock()
	if !s.lastRun.IsZero() {
		resp.LastRun = s.lastRun.UTC().Format(time.RFC3339)
	}
	if s.lastError != nil {
		resp.LastError = s.lastError.Error()
		checks["last_run"] = "failed"
	} else if !s.lastRun.IsZero() {
		checks["last_run"] = "ok"
	}
	s.mu.RUnlock()

	status := http.StatusOK
	resp.Status = "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		resp.Status = "not_ready"
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
