package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/davoodepb/temucore-shop-hub/internal/config"
	"github.com/davoodepb/temucore-shop-hub/internal/event"
	handler "github.com/davoodepb/temucore-shop-hub/internal/handler/http"
	"github.com/davoodepb/temucore-shop-hub/internal/repository"
	"github.com/davoodepb/temucore-shop-hub/internal/repository/localstore"
	pgrepo "github.com/davoodepb/temucore-shop-hub/internal/repository/postgres"
	redisrepo "github.com/davoodepb/temucore-shop-hub/internal/repository/redis"
	"github.com/davoodepb/temucore-shop-hub/internal/service"
	"github.com/davoodepb/temucore-shop-hub/migrations"
	"github.com/davoodepb/temucore-shop-hub/pkg/database"
	"github.com/davoodepb/temucore-shop-hub/pkg/health"
	pkgkafka "github.com/davoodepb/temucore-shop-hub/pkg/kafka"
	"github.com/davoodepb/temucore-shop-hub/pkg/tracing"
)

// repositories groups every repository behind its interface so the two
// storage drivers can be wired interchangeably.
type repositories struct {
	products      repository.ProductRepository
	carts         repository.CartRepository
	orders        repository.OrderRepository
	reviews       repository.ReviewRepository
	announcements repository.AnnouncementRepository
	siteContent   repository.SiteContentRepository
	chat          repository.ChatRepository
	sessions      repository.SessionRepository
}

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	rdb            *redis.Client
	producer       *pkgkafka.Producer
	tracerShutdown func(context.Context) error
	httpServer     *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	app := &App{cfg: cfg, logger: logger}

	// Tracing.
	tracingCfg := tracing.DefaultConfig("storefront")
	tracingCfg.Environment = cfg.Environment
	tracingCfg.OTLPEndpoint = cfg.TracingEndpoint
	tracingCfg.Enabled = cfg.TracingEnabled
	tracerShutdown, err := tracing.InitTracer(ctx, tracingCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	app.tracerShutdown = tracerShutdown

	// Storage driver.
	healthHandler := health.NewHandler()
	repos, err := app.initRepositories(ctx, healthHandler)
	if err != nil {
		return nil, err
	}

	// Kafka producer, optional.
	var eventProducer *event.Producer
	if cfg.KafkaEnabled() {
		kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
		app.producer = pkgkafka.NewProducer(kafkaCfg, logger)
		eventProducer = event.NewProducer(app.producer, logger)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	} else {
		logger.Info("kafka disabled, events will not be published")
	}

	// Services.
	catalogService := service.NewCatalogService(repos.products, eventProducer, logger)
	services := handler.Services{
		Catalog:   catalogService,
		Cart:      service.NewCartService(repos.carts, repos.products, logger),
		Order:     service.NewOrderService(repos.orders, repos.carts, repos.products, eventProducer, logger, cfg.PaymentDelay()),
		Review:    service.NewReviewService(repos.reviews, repos.products, eventProducer, logger),
		Admin:     service.NewAdminService(repos.sessions, []string{cfg.AdminPassword, cfg.AdminPasswordAlt}, cfg.AdminSessionTTLDuration(), logger),
		Content:   service.NewContentService(repos.announcements, repos.siteContent, logger),
		Chat:      service.NewChatService(repos.chat, eventProducer, logger),
		Analytics: service.NewAnalyticsService(repos.orders, repos.products, repos.reviews, logger),
	}

	// Seed the catalog from a JSON file when configured and empty.
	if cfg.SeedFile != "" {
		if err := catalogService.SeedFromFile(ctx, cfg.SeedFile); err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
	}

	router := handler.NewRouter(services, healthHandler, logger)

	app.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return app, nil
}

// initRepositories builds the repository set for the configured storage
// driver and registers the matching health checks.
func (a *App) initRepositories(ctx context.Context, healthHandler *health.Handler) (*repositories, error) {
	if a.cfg.StorageDriver == config.DriverLocal {
		backend, err := localstore.NewFileBackend(a.cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open data dir: %w", err)
		}
		store := localstore.NewStore(backend)
		a.logger.Info("using local snapshot storage", slog.String("data_dir", a.cfg.DataDir))

		return &repositories{
			products:      localstore.NewProductRepository(store),
			carts:         localstore.NewCartRepository(store),
			orders:        localstore.NewOrderRepository(store),
			reviews:       localstore.NewReviewRepository(store),
			announcements: localstore.NewAnnouncementRepository(store),
			siteContent:   localstore.NewSiteContentRepository(store),
			chat:          localstore.NewChatRepository(store),
			sessions:      localstore.NewSessionRepository(store),
		}, nil
	}

	pgCfg := database.DefaultPostgresConfig()
	pgCfg.Host = a.cfg.PostgresHost
	pgCfg.Port = a.cfg.PostgresPort
	pgCfg.User = a.cfg.PostgresUser
	pgCfg.Password = a.cfg.PostgresPassword
	pgCfg.DBName = a.cfg.PostgresDB
	pgCfg.SSLMode = a.cfg.PostgresSSLMode

	pool, err := database.NewPostgresPool(ctx, &pgCfg, a.logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	a.pool = pool

	if err := database.RunMigrations(ctx, pool, migrations.FS, migrations.Dir, a.logger); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	a.logger.Info("database migrations completed")

	rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
		Host:     a.cfg.RedisHost,
		Port:     a.cfg.RedisPort,
		Password: a.cfg.RedisPass,
		DB:       a.cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	a.rdb = rdb

	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})

	return &repositories{
		products:      pgrepo.NewProductRepository(pool),
		carts:         redisrepo.NewCartRepository(rdb, a.cfg.CartTTLDuration()),
		orders:        pgrepo.NewOrderRepository(pool),
		reviews:       pgrepo.NewReviewRepository(pool),
		announcements: pgrepo.NewAnnouncementRepository(pool),
		siteContent:   pgrepo.NewSiteContentRepository(pool),
		chat:          pgrepo.NewChatRepository(pool),
		sessions:      redisrepo.NewSessionRepository(rdb),
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
			slog.String("storage_driver", a.cfg.StorageDriver),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	if a.pool != nil {
		a.pool.Close()
	}

	if a.tracerShutdown != nil {
		if err := a.tracerShutdown(shutdownCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}
