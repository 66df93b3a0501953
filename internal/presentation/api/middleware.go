package api

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hilthontt/personnel/internal/infrastructure/json"
	"github.com/hilthontt/personnel/internal/infrastructure/logging"
	"github.com/rs/cors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func (app *Application) rateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := app.ratelimiter.GetSourceKey(r)
		decision := app.ratelimiter.Take(r.Context(), key)

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			app.logger.Warn(logging.RequestResponse, logging.RateLimiting, "request rate limited", map[logging.ExtraKey]any{
				logging.ClientIp: key,
				logging.Path:     r.URL.Path,
			})
			json.WriteRateLimitError(w, int(math.Ceil(decision.RetryAfter.Seconds())))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (app *Application) enableCors(next http.Handler) http.Handler {
	allowedHeaders := append([]string{"Content-Type", "Authorization", "X-Changed-By", "X-Change-Reason"}, app.config.HTTP.AllowedHeaders...)
	return cors.New(cors.Options{
		AllowedOrigins:   app.config.HTTP.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   []string{"X-Request-Id", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: false,
		MaxAge:           300,
	}).Handler(next)
}

// requestObserver logs every request and feeds the request metrics, labelled
// by route pattern so ids do not explode the label set.
func (app *Application) requestObserver(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		route := routePattern(r)
		span := trace.SpanFromContext(r.Context())
		span.SetName(r.Method + " " + route)
		span.SetAttributes(attribute.String("http.route", route))

		if app.metrics != nil {
			app.metrics.ObserveRequest(r.Method, route, status, start)
		}

		extra := map[logging.ExtraKey]any{
			logging.Method:     r.Method,
			logging.Path:       r.URL.Path,
			logging.StatusCode: status,
			logging.BodySize:   ww.BytesWritten(),
			logging.ClientIp:   r.RemoteAddr,
			logging.Latency:    time.Since(start).String(),
			logging.RequestID:  middleware.GetReqID(r.Context()),
		}

		switch {
		case status >= http.StatusInternalServerError:
			app.logger.Error(logging.RequestResponse, logging.ExternalService, "request failed", extra)
		case status >= http.StatusBadRequest:
			app.logger.Warn(logging.RequestResponse, logging.ExternalService, "request rejected", extra)
		default:
			app.logger.Info(logging.RequestResponse, logging.ExternalService, "request served", extra)
		}
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
		return rctx.RoutePattern()
	}
	return "unmatched"
}
