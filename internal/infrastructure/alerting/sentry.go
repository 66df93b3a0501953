package alerting

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hilthontt/personnel/internal/audit"
	"github.com/hilthontt/personnel/internal/infrastructure/logging"
)

type Config struct {
	DSN         string
	Environment string
	Release     string
	SampleRate  float64
	Debug       bool
}

// SentryAlerter reports inconsistent history writes to Sentry. With an empty
// DSN the client is initialised but drops every event.
type SentryAlerter struct {
	hub    *sentry.Hub
	logger logging.Logger
}

func NewSentryAlerter(cfg Config, logger logging.Logger) (*SentryAlerter, error) {
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		SampleRate:       cfg.SampleRate,
		Debug:            cfg.Debug,
		AttachStacktrace: true,
	}); err != nil {
		return nil, fmt.Errorf("failed to initialise sentry: %w", err)
	}

	if cfg.DSN == "" {
		logger.Warn(logging.General, logging.Startup, "sentry DSN not set, alerts are disabled", nil)
	}

	return &SentryAlerter{
		hub:    sentry.CurrentHub(),
		logger: logger,
	}, nil
}

func (a *SentryAlerter) InconsistentWrite(ctx context.Context, err *audit.InconsistentWriteError) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = a.hub
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentry.LevelFatal)
		scope.SetTag("alert", "history_inconsistent_write")
		scope.SetTag("operation", string(err.Operation))
		scope.SetTag("parked", fmt.Sprintf("%t", err.Parked))
		scope.SetContext("history", sentry.Context{
			"employee_id": err.EmployeeID.Hex(),
			"history_id":  err.HistoryID.Hex(),
		})
		scope.SetFingerprint([]string{"history-inconsistent-write", string(err.Operation)})
		hub.CaptureException(err)
	})

	a.logger.Warn(logging.Audit, logging.HistoryWrite, "operator alert raised for inconsistent history write", map[logging.ExtraKey]any{
		logging.EmployeeID: err.EmployeeID.Hex(),
		logging.HistoryID:  err.HistoryID.Hex(),
	})
}

func (a *SentryAlerter) Flush(timeout time.Duration) bool {
	return a.hub.Flush(timeout)
}
