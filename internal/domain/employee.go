package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EmploymentStatus string

const (
	StatusActive   EmploymentStatus = "Active"
	StatusInactive EmploymentStatus = "Inactive"
)

const displayIDPrefix = "EMP-"

// Departments is the closed set of departments an employee can belong to.
var Departments = []string{
	"Engineering",
	"Marketing",
	"Sales",
	"Human Resources",
	"Finance",
	"Operations",
	"IT",
	"Customer Support",
	"Administration",
}

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrDuplicateEmployee = errors.New("employee already exists")
)

// Employee is the current-state document of a subject. History never points
// into it; it only carries snapshots taken from it.
type Employee struct {
	ID               primitive.ObjectID `bson:"_id" json:"id"`
	EmployeeID       string             `bson:"employee_id" json:"employeeId"`
	FullName         string             `bson:"full_name" json:"fullName"`
	Email            string             `bson:"email" json:"email"`
	PhoneNumber      string             `bson:"phone_number" json:"phoneNumber"`
	Department       string             `bson:"department" json:"department"`
	Designation      string             `bson:"designation" json:"designation"`
	Salary           float64            `bson:"salary" json:"salary"`
	EmploymentStatus EmploymentStatus   `bson:"employment_status" json:"employmentStatus"`
	DateOfJoining    time.Time          `bson:"date_of_joining" json:"dateOfJoining"`
	IsDeleted        bool               `bson:"is_deleted" json:"isDeleted"`
	DeletedAt        *time.Time         `bson:"deleted_at" json:"deletedAt"`
	CreatedAt        time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updatedAt"`
}

// EmployeeFields are the caller-editable attributes of an employee.
type EmployeeFields struct {
	FullName         string
	Email            string
	PhoneNumber      string
	Department       string
	Designation      string
	Salary           float64
	EmploymentStatus EmploymentStatus
	DateOfJoining    time.Time
}

// EmployeeSummary is the short form embedded in history responses.
type EmployeeSummary struct {
	ID         primitive.ObjectID `json:"id"`
	EmployeeID string             `json:"employeeId"`
	FullName   string             `json:"fullName"`
	Email      string             `json:"email,omitempty"`
}

type EmployeeFilter struct {
	Search           string
	Department       string
	EmploymentStatus EmploymentStatus
	SortBy           string
	SortDescending   bool
	Page             Page
}

type DepartmentStat struct {
	Department string  `bson:"_id" json:"department"`
	Count      int64   `bson:"count" json:"count"`
	AvgSalary  float64 `bson:"avg_salary" json:"avgSalary"`
}

type EmployeeStats struct {
	TotalActive     int64            `json:"totalActive"`
	TotalInactive   int64            `json:"totalInactive"`
	TotalDeleted    int64            `json:"totalDeleted"`
	TotalEmployees  int64            `json:"totalEmployees"`
	DepartmentStats []DepartmentStat `json:"departmentStats"`
}

// SortableFields maps API sort keys to stored field names.
var SortableFields = map[string]string{
	"createdAt":        "created_at",
	"updatedAt":        "updated_at",
	"employeeId":       "employee_id",
	"fullName":         "full_name",
	"email":            "email",
	"department":       "department",
	"designation":      "designation",
	"salary":           "salary",
	"employmentStatus": "employment_status",
	"dateOfJoining":    "date_of_joining",
}

// EmployeeRepository is the subject store. Soft-deleted employees stay
// reachable through FindByID so their history can still be served.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *Employee) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Employee, error)
	FindActiveByID(ctx context.Context, id primitive.ObjectID) (*Employee, error)
	Save(ctx context.Context, employee *Employee) error
	SoftDelete(ctx context.Context, employee *Employee) error
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	Stats(ctx context.Context) (*EmployeeStats, error)
}

func NewEmployee(fields EmployeeFields, now time.Time) *Employee {
	now = TruncateTime(now)

	e := &Employee{
		ID:               primitive.NewObjectID(),
		EmployeeID:       fmt.Sprintf("%s%d", displayIDPrefix, now.UnixMilli()),
		EmploymentStatus: StatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	e.assign(fields)

	return e
}

// Apply overwrites the editable attributes. An empty status keeps the
// current one.
func (e *Employee) Apply(fields EmployeeFields, now time.Time) {
	e.assign(fields)
	e.UpdatedAt = TruncateTime(now)
}

func (e *Employee) MarkDeleted(now time.Time) {
	now = TruncateTime(now)

	e.IsDeleted = true
	e.DeletedAt = &now
	e.EmploymentStatus = StatusInactive
	e.UpdatedAt = now
}

func (e *Employee) Summary() EmployeeSummary {
	return EmployeeSummary{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		FullName:   e.FullName,
		Email:      e.Email,
	}
}

func (e *Employee) assign(fields EmployeeFields) {
	e.FullName = strings.TrimSpace(fields.FullName)
	e.Email = NormalizeEmail(fields.Email)
	e.PhoneNumber = strings.TrimSpace(fields.PhoneNumber)
	e.Department = strings.TrimSpace(fields.Department)
	e.Designation = strings.TrimSpace(fields.Designation)
	e.Salary = fields.Salary
	e.DateOfJoining = TruncateTime(fields.DateOfJoining)
	if fields.EmploymentStatus != "" {
		e.EmploymentStatus = fields.EmploymentStatus
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// TruncateTime brings a timestamp to the millisecond UTC precision the
// document store keeps, so in-memory values match what is read back.
func TruncateTime(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC().Truncate(time.Millisecond)
}
