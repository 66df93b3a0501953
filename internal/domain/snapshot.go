package domain

import (
	"time"
)

// Snapshot field names. The tracked subset is declared by the audit schema.
const (
	FieldEmployeeID       = "employeeId"
	FieldFullName         = "fullName"
	FieldEmail            = "email"
	FieldPhoneNumber      = "phoneNumber"
	FieldDepartment       = "department"
	FieldDesignation      = "designation"
	FieldSalary           = "salary"
	FieldEmploymentStatus = "employmentStatus"
	FieldDateOfJoining    = "dateOfJoining"
	FieldIsDeleted        = "isDeleted"
	FieldDeletedAt        = "deletedAt"
)

// DateLayout is the canonical date form stored in snapshots.
const DateLayout = "2006-01-02T15:04:05.000Z07:00"

// Snapshot is the full state of an employee at one instant, keyed by field
// name. Values are canonical scalars: strings, float64, bool, nil, and dates
// formatted with DateLayout.
type Snapshot map[string]any

func (s Snapshot) Value(field string) (any, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s[field]
	return v, ok
}

// Clone returns a deep copy so a stored snapshot cannot be changed through
// the map it was built from.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	out := make(Snapshot, len(s))
	for k, v := range s {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, inner := range t {
			m[k] = cloneValue(inner)
		}
		return m
	case Snapshot:
		return t.Clone()
	case []any:
		s := make([]any, len(t))
		for i, inner := range t {
			s[i] = cloneValue(inner)
		}
		return s
	default:
		return v
	}
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// Snapshot extracts the canonical snapshot of the employee.
func (e *Employee) Snapshot() Snapshot {
	var deletedAt any
	if e.DeletedAt != nil {
		deletedAt = FormatDate(*e.DeletedAt)
	}

	return Snapshot{
		FieldEmployeeID:       e.EmployeeID,
		FieldFullName:         e.FullName,
		FieldEmail:            e.Email,
		FieldPhoneNumber:      e.PhoneNumber,
		FieldDepartment:       e.Department,
		FieldDesignation:      e.Designation,
		FieldSalary:           e.Salary,
		FieldEmploymentStatus: string(e.EmploymentStatus),
		FieldDateOfJoining:    FormatDate(e.DateOfJoining),
		FieldIsDeleted:        e.IsDeleted,
		FieldDeletedAt:        deletedAt,
	}
}
