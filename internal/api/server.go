package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/younwookim/platfight/internal/infrastructure/config"
)

// Server is the HTTP API server with the snapshot feed.
// Background workers do not start until Start is called.
type Server struct {
	router      *chi.Mux
	wsHub       *WebSocketHub
	rateLimiter *IPRateLimiter
	snapshots   SnapshotSource
	httpServer  *http.Server
}

// NewServer creates an API server from its config
func NewServer(cfg config.APIConfig, snapshots SnapshotSource, tuning TuningStore) *Server {
	rl := DefaultRateLimitConfig
	if cfg.RateLimit > 0 {
		rl.RequestsPerSecond = cfg.RateLimit
	}
	if cfg.RateBurst > 0 {
		rl.Burst = cfg.RateBurst
	}

	s := &Server{
		wsHub:       NewWebSocketHub(cfg.AllowedOrigins, time.Duration(cfg.SnapshotEveryMs)*time.Millisecond),
		rateLimiter: NewIPRateLimiter(rl),
		snapshots:   snapshots,
	}

	var origins []string
	if len(cfg.AllowedOrigins) > 0 {
		origins = append([]string{"http://localhost:*", "http://127.0.0.1:*"}, cfg.AllowedOrigins...)
	}

	s.router = NewRouter(RouterConfig{
		Snapshots:   snapshots,
		Tuning:      tuning,
		RateLimiter: s.rateLimiter,
		CORSOrigins: origins,
	})
	s.router.Get("/ws", s.wsHub.HandleWebSocket)

	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start runs the feed workers and serves HTTP until Stop.
// It returns nil after a clean Stop.
func (s *Server) Start(addr string) error {
	go s.wsHub.Run()
	s.wsHub.StartBroadcastLoop(s.snapshots)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	log.Printf("API server listening on %s", ln.Addr())
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve API: %w", err)
	}
	return nil
}

// Router returns the HTTP handler for use with httptest
func (s *Server) Router() http.Handler {
	return s.router
}

// Stop shuts the server and its workers down
func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Printf("API shutdown error: %v", err)
	}
	s.wsHub.Stop()
	s.rateLimiter.Stop()
}
