package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/taskscope-backend/internal/adapter/metrics"
	"github.com/heartmarshall/taskscope-backend/internal/config"
	"github.com/heartmarshall/taskscope-backend/internal/transport/middleware"
	"github.com/heartmarshall/taskscope-backend/internal/transport/rest"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, string, error)
}

// Handlers groups what the router mounts. Metrics may be nil.
type Handlers struct {
	Batch       *rest.BatchHandler
	Permissions *rest.PermissionsHandler
	Health      *rest.HealthHandler
	Metrics     *metrics.Metrics
	Limiter     *middleware.RateLimiter
}

// NewRouter mounts every route and wraps the mux in the global middleware.
func NewRouter(cfg config.Config, logger *slog.Logger, tokens tokenValidator, h Handlers) http.Handler {
	mux := http.NewServeMux()

	handle := func(method, route string, next http.Handler) {
		if h.Metrics != nil {
			next = h.Metrics.Instrument(route, next)
		}
		mux.Handle(method+" "+route, next)
	}

	auth := middleware.Auth(tokens)

	handle(http.MethodGet, "/live", http.HandlerFunc(h.Health.Live))
	handle(http.MethodGet, "/ready", http.HandlerFunc(h.Health.Ready))
	handle(http.MethodGet, "/health", http.HandlerFunc(h.Health.Health))

	handle(http.MethodPost, "/api/batch", middleware.Chain(
		auth,
		h.Limiter.Limit(cfg.Server.BatchRateLimit),
	)(http.HandlerFunc(h.Batch.Process)))
	handle(http.MethodGet, "/api/users/{userId}/permissions", auth(http.HandlerFunc(h.Permissions.Get)))

	if cfg.Metrics.Enabled && h.Metrics != nil {
		mux.Handle("GET "+cfg.Metrics.Path, h.Metrics.Handler())
	}

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(mux)
}
