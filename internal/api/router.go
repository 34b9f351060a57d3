// Package api serves the match over HTTP: state inspection, live tuning
// edits, a snapshot feed and Prometheus metrics.
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/younwookim/platfight/internal/application/match"
	"github.com/younwookim/platfight/internal/domain/entity"
)

// SnapshotSource returns the latest published match state.
// Safe to call from any goroutine.
type SnapshotSource interface {
	Snapshot() match.Snapshot
}

// TuningStore reads and queues tunable edits.
// Edits are applied by the simulation at the start of its next tick.
type TuningStore interface {
	Names() []string
	Movement(name string) (entity.Tunables, error)
	Attack(name string) (entity.AttackTunables, error)
	SubmitMovement(name string, t entity.Tunables) error
	SubmitAttack(name string, a entity.AttackTunables) error
}

// RouterConfig contains all dependencies needed to construct the HTTP router.
//
// Example usage in tests:
//
//	cfg := api.RouterConfig{
//	    Snapshots: mockSnapshots,
//	    Tuning:    mockTuning,
//	    RateLimitConfig: &api.RateLimitConfig{
//	        RequestsPerSecond: 1000,
//	        Burst:             1000,
//	    },
//	}
//	router := api.NewRouter(cfg)
type RouterConfig struct {
	// Snapshots is the match state source (required)
	Snapshots SnapshotSource

	// Tuning is the live tunable store (required)
	Tuning TuningStore

	// RateLimiter is an optional pre-configured rate limiter.
	// If nil, a new one will be created using RateLimitConfig.
	RateLimiter *IPRateLimiter

	// RateLimitConfig is only used if RateLimiter is nil.
	// If both are nil, uses DefaultRateLimitConfig.
	RateLimitConfig *RateLimitConfig

	// CORSOrigins is an optional list of allowed CORS origins.
	// If nil, only localhost is allowed.
	CORSOrigins []string

	// DisableLogging disables the request logger middleware
	DisableLogging bool
}

type routerHandlers struct {
	snapshots SnapshotSource
	tuning    TuningStore
}

// NewRouter constructs the HTTP router with all middleware and routes.
// It starts no goroutines other than the rate limiter cleanup of a limiter
// it creates itself, and opens no listeners.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware - Order matters!
	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	// Rate limiting before CORS to reject early
	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rateLimitCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rateLimitCfg = *cfg.RateLimitConfig
		}
		rateLimiter = NewIPRateLimiter(rateLimitCfg)
	}
	r.Use(rateLimiter.Middleware)

	corsOrigins := cfg.CORSOrigins
	if corsOrigins == nil {
		corsOrigins = []string{
			"http://localhost:*",
			"http://127.0.0.1:*",
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	h := &routerHandlers{
		snapshots: cfg.Snapshots,
		tuning:    cfg.Tuning,
	}

	r.Get("/health", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", h.handleGetState)

		r.Get("/characters", h.handleListCharacters)
		r.Route("/characters/{name}", func(r chi.Router) {
			r.Get("/tunables", h.handleGetTunables)
			r.Put("/tunables", h.handlePutTunables)
			r.Get("/attack", h.handleGetAttack)
			r.Put("/attack", h.handlePutAttack)
		})
	})

	return r
}
