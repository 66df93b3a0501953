package audit

import (
	"errors"
	"fmt"

	"github.com/hilthontt/personnel/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrInconsistentWrite marks a history write that failed after the
	// employee mutation it describes had already been persisted.
	ErrInconsistentWrite = errors.New("history write failed after employee mutation")

	ErrMissingProvenance = errors.New("history provenance requires changedBy")
	ErrInvalidOperation  = errors.New("invalid history operation")
)

type InconsistentWriteError struct {
	EmployeeID primitive.ObjectID
	HistoryID  primitive.ObjectID
	Operation  domain.Operation
	// Parked reports whether the record was handed to the reconciliation queue.
	Parked bool
	Err    error
}

func (e *InconsistentWriteError) Error() string {
	return fmt.Sprintf("%s: %s employee %s (history %s, parked=%t): %v",
		ErrInconsistentWrite, e.Operation, e.EmployeeID.Hex(), e.HistoryID.Hex(), e.Parked, e.Err)
}

func (e *InconsistentWriteError) Unwrap() error {
	return e.Err
}

func (e *InconsistentWriteError) Is(target error) bool {
	return target == ErrInconsistentWrite
}
