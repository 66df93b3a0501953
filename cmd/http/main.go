package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/hilthontt/personnel/docs"
	"github.com/hilthontt/personnel/internal/application/employee"
	"github.com/hilthontt/personnel/internal/audit"
	"github.com/hilthontt/personnel/internal/infrastructure/alerting"
	"github.com/hilthontt/personnel/internal/infrastructure/configs"
	"github.com/hilthontt/personnel/internal/infrastructure/events"
	"github.com/hilthontt/personnel/internal/infrastructure/logging"
	"github.com/hilthontt/personnel/internal/infrastructure/messaging"
	"github.com/hilthontt/personnel/internal/infrastructure/metrics"
	"github.com/hilthontt/personnel/internal/infrastructure/ratelimiter"
	"github.com/hilthontt/personnel/internal/infrastructure/tracing"
	"github.com/hilthontt/personnel/internal/infrastructure/ws"
	"github.com/hilthontt/personnel/internal/persistence/db"
	"github.com/hilthontt/personnel/internal/persistence/repository"
	"github.com/hilthontt/personnel/internal/presentation/api"
	employeesHandler "github.com/hilthontt/personnel/internal/presentation/handler/employees"
	healthHandler "github.com/hilthontt/personnel/internal/presentation/handler/health"
	historyHandler "github.com/hilthontt/personnel/internal/presentation/handler/history"
	"github.com/hilthontt/personnel/internal/presentation/utils"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// @title           Personnel API
// @version         1.0
// @description     Employee records with an append-only audit trail.
// @BasePath        /api
func main() {
	configPath := configs.DetermineConfigPath()
	cfg, err := configs.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.NewLogger(&cfg.Logger)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal(logging.General, logging.Shutdown, "personnel stopped with error", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
	}
}

func run(ctx context.Context, cfg *configs.Config, logger logging.Logger) error {
	docs.SwaggerInfo.Host = cfg.HTTP.Addr()

	shutdownTracer, err := tracing.InitTracer(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracer(shutdownCtx)
	}()

	mongoClient, err := db.NewMongoClient(ctx, &cfg.Mongo, logger)
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.DisconnectMongo(disconnectCtx, mongoClient, logger)
	}()

	database := db.GetDatabase(mongoClient, &cfg.Mongo)
	employeeRepository := repository.NewEmployeeRepository(database)
	historyRepository := repository.NewEmployeeHistoryRepository(database)

	if err := employeeRepository.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := historyRepository.EnsureIndexes(ctx); err != nil {
		return err
	}
	logger.Info(logging.MongoDB, logging.Migration, "indexes ensured", nil)

	appMetrics := metrics.New()

	alerter, err := alerting.NewSentryAlerter(alerting.Config{
		DSN:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
		Release:     cfg.Sentry.Release,
		SampleRate:  cfg.Sentry.SampleRate,
		Debug:       cfg.Sentry.Debug,
	}, logger)
	if err != nil {
		return err
	}
	defer alerter.Flush(2 * time.Second)

	hub := ws.NewHub(logger)
	// with a broker, subscribers hear about history through it so every
	// instance sees every write; without one the hub is told directly
	notifiers := audit.Notifiers{hub}

	checks := map[string]healthHandler.Check{
		"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
	}

	var (
		rabbit      *messaging.RabbitMQ
		parking     audit.ParkingLot
		reconciler  *events.HistoryReconciler
		historyFeed *events.HistoryEventConsumer
	)
	if cfg.RabbitMQ.Enabled {
		rabbit, err = messaging.NewRabbitMQ(cfg.RabbitMQ.URI, cfg.RabbitMQ.Prefetch, logger)
		if err != nil {
			return err
		}
		defer rabbit.Close()

		publisher := events.NewHistoryPublisher(rabbit)
		notifiers = audit.Notifiers{publisher}
		parking = publisher
		reconciler = events.NewHistoryReconciler(rabbit, historyRepository, logger, appMetrics, cfg.History.WriteTimeout)
		historyFeed = events.NewHistoryEventConsumer(rabbit, hub, logger)
		checks["rabbitmq"] = rabbit.Ping
	} else {
		logger.Warn(logging.RabbitMQ, logging.Startup, "rabbitmq disabled, failed history writes will not be parked", nil)
	}

	limiter, err := newRateLimiter(cfg, checks)
	if err != nil {
		return err
	}

	recorder := audit.NewRecorder(audit.RecorderOptions{
		Repository:   historyRepository,
		Schema:       audit.EmployeeSchema,
		Logger:       logger,
		Notifier:     notifiers,
		ParkingLot:   parking,
		Alerter:      alerter,
		Metrics:      appMetrics,
		WriteTimeout: cfg.History.WriteTimeout,
	})
	comparator := audit.NewComparator(historyRepository, recorder.Schema(), appMetrics)
	reader := audit.NewReader(historyRepository, employeeRepository)

	service, err := employee.NewService(employeeRepository, recorder, employee.WithLogger(logger))
	if err != nil {
		return err
	}

	app := api.NewApplication(
		*cfg,
		employeesHandler.NewHandler(service, employeesHandler.Config{
			DefaultChangedBy: cfg.History.DefaultChangedBy,
			Page:             utils.PageConfig{DefaultSize: employeesHandler.DefaultPageSize, MaxSize: cfg.History.MaxPageSize},
		}, logger),
		historyHandler.NewHandler(reader, comparator, employeeRepository, hub, ws.NewUpgrader(cfg.HTTP.AllowedOrigins),
			utils.PageConfig{DefaultSize: cfg.History.DefaultPageSize, MaxSize: cfg.History.MaxPageSize}, logger),
		healthHandler.NewHandler(checks),
		logger,
		limiter,
		appMetrics,
	)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return hub.Run(gctx)
	})
	if reconciler != nil {
		g.Go(func() error {
			return reconciler.Listen(gctx)
		})
		g.Go(func() error {
			return historyFeed.Listen(gctx)
		})
	}
	g.Go(func() error {
		return app.Run(gctx, app.Mount())
	})

	return g.Wait()
}

// newRateLimiter returns nil when rate limiting is off. A redis store adds its
// own readiness check.
func newRateLimiter(cfg *configs.Config, checks map[string]healthHandler.Check) (ratelimiter.Limiter, error) {
	if !cfg.RateLimiter.Enabled {
		return nil, nil
	}

	var store ratelimiter.Store
	switch cfg.RateLimiter.Store {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		store = ratelimiter.NewRedis(client)
	case "memory":
		store = ratelimiter.NewInMemory()
	default:
		return nil, fmt.Errorf("unsupported rate limiter store %q", cfg.RateLimiter.Store)
	}

	return ratelimiter.New(ratelimiter.Options{
		MaxRatePerSecond: cfg.RateLimiter.MaxRatePerSecond,
		MaxBurst:         cfg.RateLimiter.MaxBurst,
		Store:            store,
		TTL:              cfg.RateLimiter.CacheTTL,
		SourceHeaderKey:  cfg.RateLimiter.SourceHeaderKey,
	}), nil
}
