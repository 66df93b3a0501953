package audit

import (
	"context"
	"errors"
	"fmt"

	"github.com/hilthontt/personnel/internal/domain"
	"github.com/hilthontt/personnel/internal/infrastructure/tracing"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type HistoryPage struct {
	Employee   domain.EmployeeSummary
	Records    []domain.EmployeeHistory
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

type HistoryDetail struct {
	Record   *domain.EmployeeHistory
	Employee *domain.EmployeeSummary
}

// Reader serves the history read flows. It only touches the employee store to
// check the employee exists and to summarise it.
type Reader struct {
	histories domain.EmployeeHistoryRepository
	employees domain.EmployeeRepository
	tracer    trace.Tracer
}

func NewReader(histories domain.EmployeeHistoryRepository, employees domain.EmployeeRepository) *Reader {
	return &Reader{
		histories: histories,
		employees: employees,
		tracer:    tracing.GetTracer("personnel/audit"),
	}
}

// ListForEmployee pages through the trail of an employee, newest first. A
// soft-deleted employee still has a readable trail.
func (r *Reader) ListForEmployee(ctx context.Context, employeeID primitive.ObjectID, page domain.Page) (*HistoryPage, error) {
	ctx, span := r.tracer.Start(ctx, "audit.ListForEmployee", trace.WithAttributes(
		attribute.String("employee.id", employeeID.Hex()),
		attribute.Int("page.number", page.Number),
		attribute.Int("page.size", page.Size),
	))
	defer span.End()

	employee, err := r.employees.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	records, total, err := r.histories.ListByEmployee(ctx, employeeID, page)
	if err != nil {
		return nil, fmt.Errorf("list history for employee %s: %w", employeeID.Hex(), err)
	}

	return &HistoryPage{
		Employee:   employee.Summary(),
		Records:    records,
		Total:      total,
		Page:       page.Number,
		Limit:      page.Size,
		TotalPages: domain.TotalPages(total, page.Size),
	}, nil
}

// Get returns one record. The employee summary is omitted when the employee
// document no longer exists.
func (r *Reader) Get(ctx context.Context, historyID primitive.ObjectID) (*HistoryDetail, error) {
	ctx, span := r.tracer.Start(ctx, "audit.Get", trace.WithAttributes(
		attribute.String("history.id", historyID.Hex()),
	))
	defer span.End()

	record, err := r.histories.GetByID(ctx, historyID)
	if err != nil {
		return nil, err
	}

	detail := &HistoryDetail{Record: record}

	employee, err := r.employees.FindByID(ctx, record.EmployeeID)
	switch {
	case err == nil:
		summary := employee.Summary()
		detail.Employee = &summary
	case errors.Is(err, domain.ErrEmployeeNotFound):
	default:
		return nil, fmt.Errorf("load employee %s for history %s: %w", record.EmployeeID.Hex(), historyID.Hex(), err)
	}

	return detail, nil
}
