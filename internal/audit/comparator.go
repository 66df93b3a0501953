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

type VersionDifference struct {
	Field         string `json:"field"`
	Version1Value any    `json:"version1Value"`
	Version2Value any    `json:"version2Value"`
}

type Comparison struct {
	Version1    *domain.EmployeeHistory
	Version2    *domain.EmployeeHistory
	Differences []VersionDifference
}

type ComparatorMetrics interface {
	Compared(differences int)
}

// Comparator diffs the full snapshots of two records of one employee.
type Comparator struct {
	repo    domain.EmployeeHistoryRepository
	schema  Schema
	metrics ComparatorMetrics
	tracer  trace.Tracer
}

func NewComparator(repo domain.EmployeeHistoryRepository, schema Schema, metrics ComparatorMetrics) *Comparator {
	if repo == nil {
		panic("audit: comparator requires a history repository")
	}
	return &Comparator{
		repo:    repo,
		schema:  schema,
		metrics: metrics,
		tracer:  tracing.GetTracer("personnel/audit"),
	}
}

// Compare reports the differences between the records in the order given.
// Swapping the ids mirrors the values. Either record missing, or belonging to
// another employee, yields domain.ErrVersionNotFound.
func (c *Comparator) Compare(ctx context.Context, employeeID, firstID, secondID primitive.ObjectID) (*Comparison, error) {
	ctx, span := c.tracer.Start(ctx, "audit.Compare", trace.WithAttributes(
		attribute.String("employee.id", employeeID.Hex()),
		attribute.String("history.version1", firstID.Hex()),
		attribute.String("history.version2", secondID.Hex()),
	))
	defer span.End()

	first, second, err := c.repo.GetPairForEmployee(ctx, employeeID, firstID, secondID)
	if err != nil {
		if errors.Is(err, domain.ErrHistoryNotFound) && !errors.Is(err, domain.ErrVersionNotFound) {
			return nil, fmt.Errorf("%w: %w", domain.ErrVersionNotFound, err)
		}
		return nil, err
	}

	differences := CompareSnapshots(c.schema, first.Snapshot, second.Snapshot)
	span.SetAttributes(attribute.Int("history.differences", len(differences)))
	if c.metrics != nil {
		c.metrics.Compared(len(differences))
	}

	return &Comparison{
		Version1:    first,
		Version2:    second,
		Differences: differences,
	}, nil
}

// CompareSnapshots applies the differ to two full snapshots and reports the
// result as version values.
func CompareSnapshots(schema Schema, first, second domain.Snapshot) []VersionDifference {
	if first == nil {
		first = domain.Snapshot{}
	}
	changes := diffSnapshots(schema, first, second)

	differences := make([]VersionDifference, len(changes))
	for i, change := range changes {
		differences[i] = VersionDifference{
			Field:         change.Field,
			Version1Value: change.OldValue,
			Version2Value: change.NewValue,
		}
	}
	return differences
}
