package audit

import (
	"errors"
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/hilthontt/personnel/internal/domain"
)

// FieldKind selects the equality used for a tracked field.
type FieldKind int

const (
	KindString FieldKind = iota
	KindEmail
	KindNumber
	KindDate
	KindEnum
)

func (k FieldKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindEmail:
		return "email"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindEnum:
		return "enum"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

type TrackedField struct {
	Name string
	Kind FieldKind
}

// Schema is the fixed, versioned list of tracked fields. The recorder and the
// comparator must be built from the same Schema value.
type Schema struct {
	version int
	fields  []TrackedField
}

var errInvalidSchema = errors.New("invalid tracked-field schema")

func NewSchema(version int, fields ...TrackedField) (Schema, error) {
	if version < 1 {
		return Schema{}, fmt.Errorf("%w: version must be positive, got %d", errInvalidSchema, version)
	}
	if len(fields) == 0 {
		return Schema{}, fmt.Errorf("%w: no fields", errInvalidSchema)
	}

	seen := mapset.NewThreadUnsafeSet[string]()
	for _, f := range fields {
		if f.Name == "" {
			return Schema{}, fmt.Errorf("%w: empty field name", errInvalidSchema)
		}
		if !seen.Add(f.Name) {
			return Schema{}, fmt.Errorf("%w: duplicate field %q", errInvalidSchema, f.Name)
		}
	}

	return Schema{version: version, fields: slices.Clone(fields)}, nil
}

func MustSchema(version int, fields ...TrackedField) Schema {
	s, err := NewSchema(version, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Schema) Version() int {
	return s.version
}

// EmployeeSchema is the tracked-field schema of this deployment. Field order
// is the order changes and differences are reported in.
var EmployeeSchema = MustSchema(1,
	TrackedField{Name: domain.FieldFullName, Kind: KindString},
	TrackedField{Name: domain.FieldEmail, Kind: KindEmail},
	TrackedField{Name: domain.FieldPhoneNumber, Kind: KindString},
	TrackedField{Name: domain.FieldDepartment, Kind: KindEnum},
	TrackedField{Name: domain.FieldDesignation, Kind: KindString},
	TrackedField{Name: domain.FieldSalary, Kind: KindNumber},
	TrackedField{Name: domain.FieldEmploymentStatus, Kind: KindEnum},
	TrackedField{Name: domain.FieldDateOfJoining, Kind: KindDate},
)
