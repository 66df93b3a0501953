package audit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hilthontt/personnel/internal/domain"
	"github.com/hilthontt/personnel/internal/infrastructure/logging"
	"github.com/hilthontt/personnel/internal/infrastructure/tracing"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

//go:generate mockgen -source=recorder.go -destination=mocks/recorder_mock.go -package=mocks

const DefaultWriteTimeout = 10 * time.Second

// Notifier is told about every record that reached the history store.
type Notifier interface {
	HistoryRecorded(ctx context.Context, history *domain.EmployeeHistory) error
}

// ParkingLot holds records whose write failed so they can be re-appended later.
type ParkingLot interface {
	Park(ctx context.Context, history *domain.EmployeeHistory, cause error) error
}

// Alerter raises an operator-visible alert.
type Alerter interface {
	InconsistentWrite(ctx context.Context, err *InconsistentWriteError)
}

type Metrics interface {
	HistoryRecorded(operation domain.Operation)
	InconsistentWrite(operation domain.Operation)
}

type Provenance struct {
	ChangedBy    string
	ChangeReason string
}

func (p Provenance) Validate() error {
	if strings.TrimSpace(p.ChangedBy) == "" {
		return ErrMissingProvenance
	}
	return nil
}

// Entry describes one mutation to record. Before is ignored unless Operation
// is UPDATE.
type Entry struct {
	EmployeeID    primitive.ObjectID
	EmployeeRefID string
	Operation     domain.Operation
	Before        domain.Snapshot
	After         domain.Snapshot
	Provenance    Provenance
}

type RecorderOptions struct {
	Repository   domain.EmployeeHistoryRepository
	Schema       Schema
	Logger       logging.Logger
	Notifier     Notifier
	ParkingLot   ParkingLot
	Alerter      Alerter
	Metrics      Metrics
	WriteTimeout time.Duration
	Clock        func() time.Time
}

type Recorder struct {
	repo         domain.EmployeeHistoryRepository
	schema       Schema
	logger       logging.Logger
	notifier     Notifier
	parking      ParkingLot
	alerter      Alerter
	metrics      Metrics
	writeTimeout time.Duration
	now          func() time.Time
	tracer       trace.Tracer
}

func NewRecorder(opts RecorderOptions) *Recorder {
	if opts.Repository == nil {
		panic("audit: recorder requires a history repository")
	}
	if len(opts.Schema.fields) == 0 {
		opts.Schema = EmployeeSchema
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = NopMetrics{}
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = DefaultWriteTimeout
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	return &Recorder{
		repo:         opts.Repository,
		schema:       opts.Schema,
		logger:       opts.Logger,
		notifier:     opts.Notifier,
		parking:      opts.ParkingLot,
		alerter:      opts.Alerter,
		metrics:      opts.Metrics,
		writeTimeout: opts.WriteTimeout,
		now:          opts.Clock,
		tracer:       tracing.GetTracer("personnel/audit"),
	}
}

func (r *Recorder) Schema() Schema {
	return r.schema
}

// Build turns an entry into the record that Record would persist, without
// persisting it.
func (r *Recorder) Build(entry Entry) (*domain.EmployeeHistory, error) {
	if !entry.Operation.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOperation, entry.Operation)
	}
	if err := entry.Provenance.Validate(); err != nil {
		return nil, err
	}
	if entry.After == nil {
		return nil, fmt.Errorf("%s history for employee %s: missing snapshot", entry.Operation, entry.EmployeeID.Hex())
	}

	changes := []domain.FieldChange{}
	if entry.Operation == domain.OperationUpdate {
		changes = Diff(r.schema, entry.Before, entry.After)
	}

	return &domain.EmployeeHistory{
		ID:            primitive.NewObjectID(),
		EmployeeID:    entry.EmployeeID,
		EmployeeRefID: entry.EmployeeRefID,
		Operation:     entry.Operation,
		Changes:       changes,
		Snapshot:      entry.After.Clone(),
		SchemaVersion: r.schema.Version(),
		ChangedBy:     strings.TrimSpace(entry.Provenance.ChangedBy),
		ChangeReason:  strings.TrimSpace(entry.Provenance.ChangeReason),
		CreatedAt:     domain.TruncateTime(r.now()),
	}, nil
}

// Record persists exactly one history record for the entry. The write is
// detached from ctx cancellation and bounded by the write timeout. A failed
// write returns *InconsistentWriteError after the record has been offered to
// the parking lot.
func (r *Recorder) Record(ctx context.Context, entry Entry) (*domain.EmployeeHistory, error) {
	history, err := r.Build(entry)
	if err != nil {
		return nil, err
	}

	ctx, span := r.tracer.Start(ctx, "audit.Record", trace.WithAttributes(
		attribute.String("employee.id", history.EmployeeID.Hex()),
		attribute.String("history.id", history.ID.Hex()),
		attribute.String("history.operation", string(history.Operation)),
		attribute.Int("history.changes", len(history.Changes)),
	))
	defer span.End()

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.writeTimeout)
	defer cancel()

	if err := r.repo.Append(writeCtx, history); err != nil {
		inconsistent := r.handleFailedWrite(writeCtx, history, err)
		span.RecordError(inconsistent)
		span.SetStatus(codes.Error, ErrInconsistentWrite.Error())
		return nil, inconsistent
	}

	r.metrics.HistoryRecorded(history.Operation)
	r.notify(writeCtx, history)

	return history, nil
}

func (r *Recorder) handleFailedWrite(ctx context.Context, history *domain.EmployeeHistory, cause error) *InconsistentWriteError {
	inconsistent := &InconsistentWriteError{
		EmployeeID: history.EmployeeID,
		HistoryID:  history.ID,
		Operation:  history.Operation,
		Err:        cause,
	}

	if r.parking != nil {
		// the write may have used up ctx; parking gets a budget of its own
		parkCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.writeTimeout)
		err := r.parking.Park(parkCtx, history, cause)
		cancel()
		if err != nil {
			r.logger.Error(logging.Audit, logging.Reconciliation, "failed to park history record", map[logging.ExtraKey]any{
				logging.EmployeeID:   history.EmployeeID.Hex(),
				logging.HistoryID:    history.ID.Hex(),
				logging.ErrorMessage: err.Error(),
			})
		} else {
			inconsistent.Parked = true
		}
	}

	r.metrics.InconsistentWrite(history.Operation)
	r.logger.Error(logging.Audit, logging.HistoryWrite, "history write failed after employee mutation", map[logging.ExtraKey]any{
		logging.EmployeeID:   history.EmployeeID.Hex(),
		logging.HistoryID:    history.ID.Hex(),
		logging.Operation:    string(history.Operation),
		logging.ErrorMessage: cause.Error(),
	})
	if r.alerter != nil {
		r.alerter.InconsistentWrite(ctx, inconsistent)
	}

	return inconsistent
}

func (r *Recorder) notify(ctx context.Context, history *domain.EmployeeHistory) {
	if r.notifier == nil {
		return
	}
	if err := r.notifier.HistoryRecorded(ctx, history); err != nil {
		r.logger.Warn(logging.Audit, logging.HistoryNotify, "history listener failed", map[logging.ExtraKey]any{
			logging.HistoryID:    history.ID.Hex(),
			logging.ErrorMessage: err.Error(),
		})
	}
}

// Notifiers fans a record out to every listener and joins their errors.
type Notifiers []Notifier

func (n Notifiers) HistoryRecorded(ctx context.Context, history *domain.EmployeeHistory) error {
	var errs []error
	for _, notifier := range n {
		if notifier == nil {
			continue
		}
		if err := notifier.HistoryRecorded(ctx, history); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type NopMetrics struct{}

func (NopMetrics) HistoryRecorded(domain.Operation)   {}
func (NopMetrics) InconsistentWrite(domain.Operation) {}
