package worker

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// HealthStatus represents the worker health status
type HealthStatus struct {
	mu        sync.RWMutex
	WorkerID  string           `json:"worker_id"`
	TaskQueue string           `json:"task_queue"`
	Status    string           `json:"status"`
	Uptime    string           `json:"uptime"`
	StartedAt time.Time        `json:"started_at"`
	Temporal  ConnectionStatus `json:"temporal"`
}

// ConnectionStatus represents a connection status
type ConnectionStatus struct {
	Connected bool   `json:"connected"`
	Endpoint  string `json:"endpoint"`
	Error     string `json:"error,omitempty"`
}

// SetTemporal records the Temporal connection state
func (s *HealthStatus) SetTemporal(cs ConnectionStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Temporal = cs
	if cs.Connected {
		s.Status = "running"
	} else {
		s.Status = "degraded"
	}
}

func (s *HealthStatus) ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Temporal.Connected
}

// HealthHandler serves /health, /live and /ready for status
func HealthHandler(status *HealthStatus) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		status.mu.Lock()
		status.Uptime = time.Since(status.StartedAt).Round(time.Second).String()
		body, err := json.Marshal(status)
		status.mu.Unlock()
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	})

	mux.HandleFunc("/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if status.ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("READY"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("NOT READY"))
	})

	return mux
}

// StartHealthServer serves the health endpoints on addr in the background
func StartHealthServer(addr string, status *HealthStatus, logger *slog.Logger) *http.Server {
	srv := &http.Server{Addr: addr, Handler: HealthHandler(status), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			// the worker keeps running without its health endpoint
			logger.Error("Health server failed", "addr", addr, "error", err)
		}
	}()
	return srv
}
