package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/nobih83-prog/Nashwa01/internal/auth"
	"github.com/nobih83-prog/Nashwa01/internal/catalog"
	"github.com/nobih83-prog/Nashwa01/internal/config"
	"github.com/nobih83-prog/Nashwa01/internal/event"
	handler "github.com/nobih83-prog/Nashwa01/internal/handler/http"
	"github.com/nobih83-prog/Nashwa01/internal/repository"
	kvrepo "github.com/nobih83-prog/Nashwa01/internal/repository/kv"
	pgrepo "github.com/nobih83-prog/Nashwa01/internal/repository/postgres"
	"github.com/nobih83-prog/Nashwa01/internal/service"
	"github.com/nobih83-prog/Nashwa01/internal/storage"
	"github.com/nobih83-prog/Nashwa01/migrations"
	"github.com/nobih83-prog/Nashwa01/pkg/database"
	"github.com/nobih83-prog/Nashwa01/pkg/health"
	pkgkafka "github.com/nobih83-prog/Nashwa01/pkg/kafka"
	"github.com/nobih83-prog/Nashwa01/pkg/middleware"
	"github.com/nobih83-prog/Nashwa01/pkg/tracing"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	rdb            *redis.Client
	pool           *pgxpool.Pool
	producer       *pkgkafka.Producer
	traceShutdown  func(context.Context) error
	httpServer     *http.Server
	stopBackground context.CancelFunc
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (_ *App, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			a.closeResources()
		}
	}()

	// Tracing.
	a.traceShutdown, err = tracing.InitTracer(ctx, cfg.Tracing())
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	healthHandler := health.NewHandler()

	// Key-value state: per-session keys expire, shared keys do not.
	var sessionStore, sharedStore storage.Store
	switch cfg.StoreBackend {
	case config.StoreRedis:
		a.rdb, err = database.NewRedisClient(ctx, cfg.Redis(), logger)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		sessionStore = storage.NewRedisStore(a.rdb, cfg.SessionTTL)
		sharedStore = storage.NewRedisStore(a.rdb, 0)
		logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
		)
	default:
		mem := storage.NewMemoryStore()
		sessionStore, sharedStore = mem, mem
		logger.Warn("using in-memory store; state is lost on restart")
	}
	healthHandler.RegisterPinger("store", sessionStore)

	// Orders and inventory.
	var repo repository.Store
	switch cfg.OrderBackend {
	case config.OrderBackendPostgres:
		pgCfg := cfg.Postgres()
		a.pool, err = database.NewPostgresPool(ctx, &pgCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err = database.RunMigrations(ctx, a.pool, migrations.FS, logger); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		if err = database.RegisterPoolMetrics(prometheus.DefaultRegisterer, a.pool, cfg.ServiceName); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				return nil, fmt.Errorf("register pool metrics: %w", err)
			}
			err = nil
		}
		database.SetSlowQueryLogging(cfg.SlowQueryThreshold, logger)
		repo = pgrepo.NewStore(a.pool)
	default:
		repo = kvrepo.NewStore(sharedStore)
	}
	healthHandler.RegisterPinger("orders", repo)

	// Events. An untyped nil publisher disables publishing.
	var publisher event.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = a.producer
		healthHandler.RegisterPinger("kafka", a.producer)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	} else {
		logger.Info("KAFKA_BROKERS empty; domain events disabled")
	}
	eventProducer := event.NewProducer(publisher, logger)

	// Admin authentication.
	admin, err := auth.NewAdminCredentials(cfg.AdminEmail, cfg.AdminPasswordHash)
	if err != nil {
		return nil, fmt.Errorf("admin credentials: %w", err)
	}
	if !admin.Enabled() {
		logger.Warn("ADMIN_EMAIL not set; admin login disabled")
	}
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)

	// Services.
	cat := catalog.New()
	orders := service.NewOrderService(repo, cat, eventProducer, logger,
		service.WithStrictTransitions(cfg.StrictTransitions))
	if _, err = orders.EnsureSeeded(ctx); err != nil {
		return nil, fmt.Errorf("seed inventory: %w", err)
	}

	svcs := handler.Services{
		Catalog:  service.NewCatalogService(cat),
		Sessions: service.NewSessions(sessionStore),
		Checkout: service.NewCheckoutService(orders, eventProducer, logger, cfg.CheckoutLatency),
		Orders:   orders,
		Auth:     service.NewAuthService(admin, jwtManager, logger),
		Tokens:   jwtManager.TokenValidator(),
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSOrigins
	corsCfg.Environment = cfg.Environment

	bgCtx, stop := context.WithCancel(context.Background())
	a.stopBackground = stop

	router := handler.NewRouter(bgCtx, svcs, healthHandler, logger, handler.RouterConfig{
		ServiceName:    cfg.ServiceName,
		CORS:           corsCfg,
		PprofEnabled:   cfg.PprofEnabled,
		PprofCIDRs:     cfg.PprofCIDRs,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		CatalogMaxAge:  cfg.CatalogMaxAge,
	})

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return a, nil
}

// Handler returns the HTTP handler serving the API.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		a.closeResources()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	a.closeResources()
	a.logger.Info("application shutdown complete")
	return nil
}

func (a *App) closeResources() {
	if a.stopBackground != nil {
		a.stopBackground()
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if a.pool != nil {
		a.pool.Close()
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	if a.traceShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.traceShutdown(ctx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		}
	}
}
