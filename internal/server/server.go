// Package server exposes the delivery metrics over HTTP and a WebSocket dashboard.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/huangsam/doralens/internal/contract"
	"github.com/sirupsen/logrus"
)

// ShutdownTimeout bounds how long in-flight requests may drain on shutdown.
const ShutdownTimeout = 5 * time.Second

// Server serves the metrics endpoints for one repository.
// The configuration and client can be swapped while serving.
type Server struct {
	mu     sync.RWMutex
	cfg    *contract.Config
	client contract.RepoClient

	now func() time.Time
	log *logrus.Entry
}

// New creates a server for the given configuration and client.
func New(cfg *contract.Config, client contract.RepoClient) *Server {
	return &Server{
		cfg:    cfg,
		client: client,
		now:    time.Now,
		log:    contract.Logger("server"),
	}
}

// Swap replaces the configuration and client used by subsequent requests.
// Requests already in flight keep the values they started with.
func (s *Server) Swap(cfg *contract.Config, client contract.RepoClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.client = client
	s.log.WithField("repo", cfg.Repo.String()).Info("Configuration reloaded")
}

// snapshot returns the current configuration copy and client.
func (s *Server) snapshot() (*contract.Config, contract.RepoClient) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Clone(), s.client
}

// Handler returns the routed handler with request ID and access log middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/github-metrics", s.handleGitHubMetrics)
	mux.HandleFunc("/api/contributors", s.handleContributors)
	mux.HandleFunc("/api/trends", s.handleTrends)
	mux.HandleFunc("/metrics", s.handleMetrics)
	mux.HandleFunc("/ws/dashboard", s.handleDashboard)
	return withRequestID(withAccessLog(s.log, mux))
}

// ListenAndServe serves on addr until ctx is cancelled, then drains
// in-flight requests for up to ShutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", ln.Addr().String()).Info("Server is ready to handle requests")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("Server stopped gracefully")
	return nil
}
