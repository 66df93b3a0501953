package domain

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

//go:generate mockgen -destination=../audit/mocks/repository_mock.go -package=mocks github.com/hilthontt/personnel/internal/domain EmployeeRepository,EmployeeHistoryRepository

type Operation string

const (
	OperationCreate Operation = "CREATE"
	OperationUpdate Operation = "UPDATE"
	OperationDelete Operation = "DELETE"
)

func (o Operation) Valid() bool {
	switch o {
	case OperationCreate, OperationUpdate, OperationDelete:
		return true
	}
	return false
}

var (
	ErrHistoryNotFound = errors.New("history record not found")
	ErrVersionNotFound = errors.New("one or both versions not found")
	ErrHistoryExists   = errors.New("history record already exists")
)

// FieldChange is one tracked attribute's value before and after an update.
type FieldChange struct {
	Field    string `bson:"field" json:"field"`
	OldValue any    `bson:"old_value" json:"oldValue"`
	NewValue any    `bson:"new_value" json:"newValue"`
}

// EmployeeHistory is an immutable audit entry for one mutation of an
// employee. It is written once and never updated or removed.
type EmployeeHistory struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	EmployeeID    primitive.ObjectID `bson:"employee_id" json:"employeeId"`
	EmployeeRefID string             `bson:"employee_ref_id" json:"employeeRefId"`
	Operation     Operation          `bson:"operation" json:"operation"`
	Changes       []FieldChange      `bson:"changes" json:"changes"`
	Snapshot      Snapshot           `bson:"snapshot" json:"snapshot"`
	SchemaVersion int                `bson:"schema_version" json:"schemaVersion"`
	ChangedBy     string             `bson:"changed_by" json:"changedBy"`
	ChangeReason  string             `bson:"change_reason" json:"changeReason"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
}

// EmployeeHistoryRepository is append-only: there is deliberately no update
// or delete. Listings are ordered by CreatedAt descending.
type EmployeeHistoryRepository interface {
	Append(ctx context.Context, history *EmployeeHistory) error
	ListByEmployee(ctx context.Context, employeeID primitive.ObjectID, page Page) ([]EmployeeHistory, int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*EmployeeHistory, error)
	GetPairForEmployee(ctx context.Context, employeeID, firstID, secondID primitive.ObjectID) (*EmployeeHistory, *EmployeeHistory, error)
}
