package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/taskscope-backend/internal/adapter/metrics"
	"github.com/heartmarshall/taskscope-backend/internal/adapter/postgres"
	"github.com/heartmarshall/taskscope-backend/internal/adapter/postgres/checklist"
	historyrepo "github.com/heartmarshall/taskscope-backend/internal/adapter/postgres/history"
	"github.com/heartmarshall/taskscope-backend/internal/adapter/postgres/notification"
	"github.com/heartmarshall/taskscope-backend/internal/adapter/postgres/org"
	"github.com/heartmarshall/taskscope-backend/internal/adapter/postgres/status"
	"github.com/heartmarshall/taskscope-backend/internal/adapter/postgres/task"
	"github.com/heartmarshall/taskscope-backend/internal/adapter/postgres/user"
	redisadapter "github.com/heartmarshall/taskscope-backend/internal/adapter/redis"
	"github.com/heartmarshall/taskscope-backend/internal/auth"
	"github.com/heartmarshall/taskscope-backend/internal/config"
	"github.com/heartmarshall/taskscope-backend/internal/service/batch"
	"github.com/heartmarshall/taskscope-backend/internal/service/history"
	"github.com/heartmarshall/taskscope-backend/internal/service/notify"
	"github.com/heartmarshall/taskscope-backend/internal/service/permission"
	"github.com/heartmarshall/taskscope-backend/internal/service/scope"
	"github.com/heartmarshall/taskscope-backend/internal/transport/middleware"
	"github.com/heartmarshall/taskscope-backend/internal/transport/rest"
)

// Run loads configuration, connects the backends, serves HTTP until ctx
// is cancelled and then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	var pub *redisadapter.Publisher
	if cfg.Redis.Enabled() {
		pub, err = redisadapter.NewPublisher(ctx, cfg.Redis.URL, cfg.Redis.Channel, cfg.Redis.PublishTimeout)
		if err != nil {
			return err
		}
		defer pub.Close() //nolint:errcheck
		logger.Info("notification publishing enabled", slog.String("channel", cfg.Redis.Channel))
	}

	stack := NewStack(*cfg, logger, pool, pub)
	defer stack.Close()

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           stack.Handler,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	return serve(ctx, logger, srv, cfg.Server.ShutdownTimeout)
}

// Stack is the wired application behind one HTTP handler.
type Stack struct {
	Handler http.Handler
	limiter *middleware.RateLimiter
}

// Close stops background work owned by the stack.
func (s *Stack) Close() {
	s.limiter.Stop()
}

// NewStack builds repositories, services and the router on top of pool.
// pub may be nil, in which case notifications are only stored.
func NewStack(cfg config.Config, logger *slog.Logger, pool *pgxpool.Pool, pub *redisadapter.Publisher) *Stack {
	deps := []rest.Dependency{{Name: "database", Pinger: pool}}

	var opts []batch.Option
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		opts = append(opts, batch.WithMetrics(m))
	}
	if pub != nil {
		opts = append(opts, batch.WithPublisher(pub))
		deps = append(deps, rest.Dependency{Name: "redis", Pinger: pub})
	}

	users := user.New(pool)
	orgs := org.New(pool)
	tasks := task.New(pool)

	checker := permission.NewChecker(logger, scope.NewResolver(logger, users, orgs), tasks, orgs)
	processor := batch.NewProcessor(logger,
		postgres.NewTxManager(pool),
		checker,
		batch.Repos{
			Tasks:     tasks,
			Statuses:  status.New(pool),
			Checklist: checklist.New(pool),
			Users:     users,
		},
		history.NewLogger(logger, historyrepo.New(pool)),
		notify.NewDispatcher(logger, notification.New(pool)),
		cfg.Batch,
		opts...,
	)

	limiter := middleware.NewRateLimiter(time.Minute)
	handler := NewRouter(cfg, logger,
		auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL),
		Handlers{
			Batch:       rest.NewBatchHandler(processor, logger),
			Permissions: rest.NewPermissionsHandler(checker, logger),
			Health:      rest.NewHealthHandler(BuildVersion(), deps...),
			Metrics:     m,
			Limiter:     limiter,
		},
	)

	return &Stack{Handler: handler, limiter: limiter}
}

// serve runs srv until ctx is done or the listener fails.
func serve(ctx context.Context, logger *slog.Logger, srv *http.Server, shutdownTimeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
