package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/hilthontt/personnel/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides observability for the HTTP surface and the audit trail.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests          *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HistoryRecords        *prometheus.CounterVec
	InconsistentWrites    *prometheus.CounterVec
	VersionComparisons    prometheus.Counter
	ComparisonDifferences prometheus.Histogram
	ReconciledRecords     *prometheus.CounterVec
}

// New registers every metric on a fresh registry together with the Go and
// process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "personnel_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "personnel_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by method and route",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route"}),
		HistoryRecords: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "personnel_history_records_total",
			Help: "Total number of history records written, by operation",
		}, []string{"operation"}),
		InconsistentWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "history_inconsistent_writes_total",
			Help: "Employee mutations whose history record could not be written",
		}, []string{"operation"}),
		VersionComparisons: factory.NewCounter(prometheus.CounterOpts{
			Name: "personnel_history_comparisons_total",
			Help: "Total number of version comparisons served",
		}),
		ComparisonDifferences: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "personnel_history_comparison_differences",
			Help:    "Number of differing fields per version comparison",
			Buckets: []float64{0, 1, 2, 3, 5, 8},
		}),
		ReconciledRecords: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "personnel_history_reconciled_total",
			Help: "Parked history records processed by the reconciler, by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveRequest(method, route string, status int, start time.Time) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}

func (m *Metrics) HistoryRecorded(operation domain.Operation) {
	m.HistoryRecords.WithLabelValues(string(operation)).Inc()
}

func (m *Metrics) InconsistentWrite(operation domain.Operation) {
	m.InconsistentWrites.WithLabelValues(string(operation)).Inc()
}

func (m *Metrics) Compared(differences int) {
	m.VersionComparisons.Inc()
	m.ComparisonDifferences.Observe(float64(differences))
}

func (m *Metrics) Reconciled(outcome string) {
	m.ReconciledRecords.WithLabelValues(outcome).Inc()
}
