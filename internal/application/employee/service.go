package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/hilthontt/personnel/internal/audit"
	"github.com/hilthontt/personnel/internal/domain"
	"github.com/hilthontt/personnel/internal/infrastructure/logging"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HistoryRecorder interface {
	Record(ctx context.Context, entry audit.Entry) (*domain.EmployeeHistory, error)
}

// Result pairs the employee state after a mutation with the history record
// that describes it.
type Result struct {
	Employee *domain.Employee
	History  *domain.EmployeeHistory
}

// Service runs every employee mutation as a store write followed by a
// history record. Reads go straight to the store.
type Service struct {
	employees domain.EmployeeRepository
	recorder  HistoryRecorder
	logger    logging.Logger
	now       func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithLogger(logger logging.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(employees domain.EmployeeRepository, recorder HistoryRecorder, opts ...Option) (*Service, error) {
	if employees == nil {
		return nil, fmt.Errorf("employee repository is required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("history recorder is required")
	}

	s := &Service{
		employees: employees,
		recorder:  recorder,
		logger:    logging.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) Create(ctx context.Context, fields domain.EmployeeFields, provenance audit.Provenance) (*Result, error) {
	if err := provenance.Validate(); err != nil {
		return nil, err
	}

	employee := domain.NewEmployee(fields, s.now())
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, err
	}

	history, err := s.recorder.Record(ctx, audit.Entry{
		EmployeeID:    employee.ID,
		EmployeeRefID: employee.EmployeeID,
		Operation:     domain.OperationCreate,
		After:         employee.Snapshot(),
		Provenance:    provenance,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(logging.Audit, logging.HistoryWrite, "employee created", map[logging.ExtraKey]any{
		logging.EmployeeID: employee.ID.Hex(),
		logging.HistoryID:  history.ID.Hex(),
	})
	return &Result{Employee: employee, History: history}, nil
}

func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*domain.Employee, error) {
	return s.employees.FindActiveByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, int64, error) {
	return s.employees.List(ctx, filter)
}

func (s *Service) Stats(ctx context.Context) (*domain.EmployeeStats, error) {
	return s.employees.Stats(ctx)
}

// Update replaces the editable attributes. An update that changes nothing is
// still recorded, with no changes.
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, fields domain.EmployeeFields, provenance audit.Provenance) (*Result, error) {
	if err := provenance.Validate(); err != nil {
		return nil, err
	}

	employee, err := s.employees.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := employee.Snapshot()
	employee.Apply(fields, s.now())

	if err := s.employees.Save(ctx, employee); err != nil {
		return nil, err
	}

	history, err := s.recorder.Record(ctx, audit.Entry{
		EmployeeID:    employee.ID,
		EmployeeRefID: employee.EmployeeID,
		Operation:     domain.OperationUpdate,
		Before:        before,
		After:         employee.Snapshot(),
		Provenance:    provenance,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(logging.Audit, logging.HistoryWrite, "employee updated", map[logging.ExtraKey]any{
		logging.EmployeeID: employee.ID.Hex(),
		logging.HistoryID:  history.ID.Hex(),
		"Changes":          len(history.Changes),
	})
	return &Result{Employee: employee, History: history}, nil
}

// Delete soft-deletes the employee. Its history stays readable.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID, provenance audit.Provenance) (*Result, error) {
	if err := provenance.Validate(); err != nil {
		return nil, err
	}

	employee, err := s.employees.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	employee.MarkDeleted(s.now())
	if err := s.employees.SoftDelete(ctx, employee); err != nil {
		return nil, err
	}

	history, err := s.recorder.Record(ctx, audit.Entry{
		EmployeeID:    employee.ID,
		EmployeeRefID: employee.EmployeeID,
		Operation:     domain.OperationDelete,
		After:         employee.Snapshot(),
		Provenance:    provenance,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(logging.Audit, logging.HistoryWrite, "employee deleted", map[logging.ExtraKey]any{
		logging.EmployeeID: employee.ID.Hex(),
		logging.HistoryID:  history.ID.Hex(),
	})
	return &Result{Employee: employee, History: history}, nil
}
