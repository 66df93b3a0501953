package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hilthontt/personnel/internal/application/employee"
	"github.com/hilthontt/personnel/internal/audit"
	"github.com/hilthontt/personnel/internal/infrastructure/configs"
	"github.com/hilthontt/personnel/internal/infrastructure/logging"
	"github.com/hilthontt/personnel/internal/infrastructure/metrics"
	"github.com/hilthontt/personnel/internal/infrastructure/ratelimiter"
	"github.com/hilthontt/personnel/internal/infrastructure/ws"
	"github.com/hilthontt/personnel/internal/persistence/memory"
	employeesHandler "github.com/hilthontt/personnel/internal/presentation/handler/employees"
	healthHandler "github.com/hilthontt/personnel/internal/presentation/handler/health"
	historyHandler "github.com/hilthontt/personnel/internal/presentation/handler/history"
	"github.com/hilthontt/personnel/internal/presentation/utils"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestApplication(t *testing.T, limiter ratelimiter.Limiter) (http.Handler, *metrics.Metrics) {
	t.Helper()
	logger := logging.NewNop()
	employees := memory.NewEmployeeStore()
	histories := memory.NewHistoryStore()
	m := metrics.New()

	recorder := audit.NewRecorder(audit.RecorderOptions{Repository: histories, Metrics: m})
	service, err := employee.NewService(employees, recorder)
	require.NoError(t, err)

	cfg := configs.Config{
		HTTP: configs.HTTPConfig{
			AllowedOrigins: []string{"https://hr.example.com"},
			RequestTimeout: 5 * time.Second,
		},
	}

	app := NewApplication(
		cfg,
		employeesHandler.NewHandler(service, employeesHandler.Config{}, logger),
		historyHandler.NewHandler(
			audit.NewReader(histories, employees),
			audit.NewComparator(histories, audit.EmployeeSchema, m),
			employees,
			ws.NewHub(logger),
			ws.NewUpgrader(cfg.HTTP.AllowedOrigins),
			utils.PageConfig{},
			logger,
		),
		healthHandler.NewHandler(nil),
		logger,
		limiter,
		m,
	)
	return app.Mount(), m
}

const employeeJSON = `{
	"fullName": "Jane Doe",
	"email": "jane@example.com",
	"phoneNumber": "555-123-4567",
	"department": "Engineering",
	"designation": "Engineer",
	"salary": 50000,
	"dateOfJoining": "2024-01-15"
}`

func TestRoutes(t *testing.T) {
	handler, m := newTestApplication(t, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/employees", bytes.NewBufferString(employeeJSON)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	id := primitive.NewObjectID().Hex()
	cases := []struct {
		method string
		target string
		status int
	}{
		{http.MethodGet, "/api/health", http.StatusOK},
		{http.MethodGet, "/api/ready", http.StatusOK},
		{http.MethodGet, "/api/employees", http.StatusOK},
		{http.MethodGet, "/api/employees/stats/overview", http.StatusOK},
		{http.MethodGet, "/api/employees/" + id, http.StatusNotFound},
		{http.MethodGet, "/api/employees/" + id + "/history", http.StatusNotFound},
		{http.MethodGet, "/api/employees/" + id + "/history/compare", http.StatusBadRequest},
		{http.MethodGet, "/api/history/" + id, http.StatusNotFound},
		{http.MethodGet, "/api/nowhere", http.StatusNotFound},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/debug/vars", http.StatusOK},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.target, nil))
		assert.Equal(t, tc.status, rec.Code, "%s %s", tc.method, tc.target)
	}

	t.Run("requests are counted by route pattern", func(t *testing.T) {
		assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodPost, "/api/employees", "201")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "/api/employees/{id}", "404")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.HistoryRecords.WithLabelValues("CREATE")))
	})
}

func TestCors(t *testing.T) {
	handler, _ := newTestApplication(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/employees", nil)
	req.Header.Set("Origin", "https://hr.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	req.Header.Set("Access-Control-Request-Headers", "X-Changed-By")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "https://hr.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiting(t *testing.T) {
	limiter := ratelimiter.New(ratelimiter.Options{MaxRatePerSecond: 1, MaxBurst: 2})
	handler, _ := newTestApplication(t, limiter)

	var last *httptest.ResponseRecorder
	statuses := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		last = httptest.NewRecorder()
		handler.ServeHTTP(last, req)
		statuses = append(statuses, last.Code)
		assert.Equal(t, "2", last.Header().Get("X-RateLimit-Limit"))
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)
	assert.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1", last.Header().Get("Retry-After"))

	t.Run("health is never limited", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestSpansAreNamedByRoute(t *testing.T) {
	spans := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = provider.Shutdown(context.Background())
	})

	handler, _ := newTestApplication(t, nil)

	for _, target := range []string{
		"/api/employees/" + primitive.NewObjectID().Hex(),
		"/api/employees/" + primitive.NewObjectID().Hex(),
		"/nowhere",
	} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}

	ended := spans.Ended()
	require.Len(t, ended, 3)

	names := make([]string, 0, len(ended))
	for _, span := range ended {
		names = append(names, span.Name())
	}
	assert.Equal(t, []string{
		"GET /api/employees/{id}",
		"GET /api/employees/{id}",
		"GET unmatched",
	}, names)

	var route string
	for _, kv := range ended[0].Attributes() {
		if kv.Key == "http.route" {
			route = kv.Value.AsString()
		}
	}
	assert.Equal(t, "/api/employees/{id}", route)
}
