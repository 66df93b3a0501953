package api

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hilthontt/personnel/internal/infrastructure/configs"
	"github.com/hilthontt/personnel/internal/infrastructure/logging"
	"github.com/hilthontt/personnel/internal/infrastructure/ratelimiter"
	employeesHandler "github.com/hilthontt/personnel/internal/presentation/handler/employees"
	healthHandler "github.com/hilthontt/personnel/internal/presentation/handler/health"
	historyHandler "github.com/hilthontt/personnel/internal/presentation/handler/history"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// RequestMetrics records one served request.
type RequestMetrics interface {
	ObserveRequest(method, route string, status int, start time.Time)
	Handler() http.Handler
}

type Application struct {
	config           configs.Config
	employeesHandler *employeesHandler.Handler
	historyHandler   *historyHandler.Handler
	healthHandler    *healthHandler.Handler
	logger           logging.Logger
	ratelimiter      ratelimiter.Limiter
	metrics          RequestMetrics
}

func NewApplication(
	config configs.Config,
	employeesHandler *employeesHandler.Handler,
	historyHandler *historyHandler.Handler,
	healthHandler *healthHandler.Handler,
	logger logging.Logger,
	ratelimiter ratelimiter.Limiter,
	metrics RequestMetrics,
) *Application {
	return &Application{
		config:           config,
		employeesHandler: employeesHandler,
		historyHandler:   historyHandler,
		healthHandler:    healthHandler,
		logger:           logger,
		ratelimiter:      ratelimiter,
		metrics:          metrics,
	}
}

func (app *Application) Mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(app.requestObserver)
	r.Use(middleware.Recoverer)
	r.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)
	r.Use(app.enableCors)

	if app.metrics != nil {
		r.Method(http.MethodGet, "/metrics", app.metrics.Handler())
	}
	r.Method(http.MethodGet, "/debug/vars", expvar.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", app.healthHandler.GetHealth)
		r.Get("/healthz", app.healthHandler.GetHealth)
		r.Get("/ready", app.healthHandler.GetReady)
		r.Get("/live", app.healthHandler.GetHealth)

		r.Group(func(r chi.Router) {
			if app.ratelimiter != nil {
				r.Use(app.rateLimiterMiddleware)
			}

			// the history stream outlives any request timeout
			r.Get("/employees/{id}/history/stream", app.historyHandler.StreamHistoryHandler)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Timeout(app.requestTimeout()))

				r.Post("/employees", app.employeesHandler.CreateEmployeeHandler)
				r.Get("/employees", app.employeesHandler.ListEmployeesHandler)
				r.Get("/employees/stats/overview", app.employeesHandler.EmployeeStatsHandler)
				r.Get("/employees/{id}", app.employeesHandler.GetEmployeeHandler)
				r.Put("/employees/{id}", app.employeesHandler.UpdateEmployeeHandler)
				r.Delete("/employees/{id}", app.employeesHandler.DeleteEmployeeHandler)

				r.Get("/employees/{id}/history", app.historyHandler.ListEmployeeHistoryHandler)
				r.Get("/employees/{id}/history/compare", app.historyHandler.CompareVersionsHandler)
				r.Get("/history/{historyId}", app.historyHandler.GetHistoryDetailHandler)
			})
		})
	})

	// the route is only known once chi has matched it; requestObserver
	// renames the span then
	return otelhttp.NewHandler(r, "personnel.http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method
		}),
	)
}

func (app *Application) requestTimeout() time.Duration {
	if app.config.HTTP.RequestTimeout > 0 {
		return app.config.HTTP.RequestTimeout
	}
	return 60 * time.Second
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (app *Application) Run(ctx context.Context, mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.HTTP.Addr(),
		Handler:      mux,
		WriteTimeout: app.config.HTTP.WriteTimeout,
		ReadTimeout:  app.config.HTTP.ReadTimeout,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error, 1)

	go func() {
		<-ctx.Done()

		timeout := app.config.HTTP.ShutdownTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		app.healthHandler.SetHealthy(false)
		app.logger.Info(logging.General, logging.Shutdown, "shutting down http server", map[logging.ExtraKey]any{
			"Addr": srv.Addr,
		})

		shutdown <- srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(logging.General, logging.Startup, "server has started", map[logging.ExtraKey]any{
		"Addr": srv.Addr,
	})

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}

	if err := <-shutdown; err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	sentry.Flush(2 * time.Second)
	app.logger.Info(logging.General, logging.Shutdown, "server has stopped", map[logging.ExtraKey]any{
		"Addr": srv.Addr,
	})

	return nil
}
