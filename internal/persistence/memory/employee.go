package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/hilthontt/personnel/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EmployeeStore keeps employees in process memory. Uniqueness of the display
// id, email and phone number is enforced across soft-deleted employees too.
type EmployeeStore struct {
	mu        sync.RWMutex
	employees map[primitive.ObjectID]domain.Employee
}

func NewEmployeeStore() *EmployeeStore {
	return &EmployeeStore{
		employees: make(map[primitive.ObjectID]domain.Employee),
	}
}

func (s *EmployeeStore) Create(_ context.Context, employee *domain.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.employees[employee.ID]; exists {
		return domain.ErrDuplicateEmployee
	}
	if s.conflicts(employee) {
		return domain.ErrDuplicateEmployee
	}

	s.employees[employee.ID] = copyEmployee(employee)
	return nil
}

func (s *EmployeeStore) conflicts(employee *domain.Employee) bool {
	for id, other := range s.employees {
		if id == employee.ID {
			continue
		}
		if other.EmployeeID == employee.EmployeeID ||
			other.Email == employee.Email ||
			other.PhoneNumber == employee.PhoneNumber {
			return true
		}
	}
	return false
}

func (s *EmployeeStore) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	employee, ok := s.employees[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	out := copyEmployee(&employee)
	return &out, nil
}

func (s *EmployeeStore) FindActiveByID(ctx context.Context, id primitive.ObjectID) (*domain.Employee, error) {
	employee, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee.IsDeleted {
		return nil, domain.ErrEmployeeNotFound
	}
	return employee, nil
}

func (s *EmployeeStore) Save(_ context.Context, employee *domain.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.employees[employee.ID]
	if !ok || current.IsDeleted {
		return domain.ErrEmployeeNotFound
	}
	if s.conflicts(employee) {
		return domain.ErrDuplicateEmployee
	}

	s.employees[employee.ID] = copyEmployee(employee)
	return nil
}

func (s *EmployeeStore) SoftDelete(_ context.Context, employee *domain.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.employees[employee.ID]
	if !ok || current.IsDeleted {
		return domain.ErrEmployeeNotFound
	}

	current.IsDeleted = true
	current.DeletedAt = employee.DeletedAt
	current.EmploymentStatus = employee.EmploymentStatus
	current.UpdatedAt = employee.UpdatedAt
	s.employees[employee.ID] = copyEmployee(&current)
	return nil
}

func (s *EmployeeStore) List(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	s.mu.RLock()
	matched := make([]domain.Employee, 0, len(s.employees))
	for _, employee := range s.employees {
		if matches(employee, filter) {
			matched = append(matched, copyEmployee(&employee))
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(matched, func(a, b domain.Employee) int {
		c := compareBy(filter.SortBy, a, b)
		if c == 0 {
			c = compareObjectIDs(a.ID, b.ID)
		}
		if filter.SortDescending {
			return -c
		}
		return c
	})

	total := int64(len(matched))
	return pageOf(matched, filter.Page), total, nil
}

func matches(employee domain.Employee, filter domain.EmployeeFilter) bool {
	if employee.IsDeleted {
		return false
	}
	if filter.Department != "" && employee.Department != filter.Department {
		return false
	}
	if filter.EmploymentStatus != "" && employee.EmploymentStatus != filter.EmploymentStatus {
		return false
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	if search == "" {
		return true
	}
	for _, field := range []string{employee.FullName, employee.Email, employee.EmployeeID, employee.Designation} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func compareBy(sortBy string, a, b domain.Employee) int {
	switch sortBy {
	case "updatedAt":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	case "employeeId":
		return cmp.Compare(a.EmployeeID, b.EmployeeID)
	case "fullName":
		return cmp.Compare(a.FullName, b.FullName)
	case "email":
		return cmp.Compare(a.Email, b.Email)
	case "department":
		return cmp.Compare(a.Department, b.Department)
	case "designation":
		return cmp.Compare(a.Designation, b.Designation)
	case "salary":
		return cmp.Compare(a.Salary, b.Salary)
	case "employmentStatus":
		return cmp.Compare(a.EmploymentStatus, b.EmploymentStatus)
	case "dateOfJoining":
		return a.DateOfJoining.Compare(b.DateOfJoining)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func (s *EmployeeStore) Stats(ctx context.Context) (*domain.EmployeeStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &domain.EmployeeStats{DepartmentStats: make([]domain.DepartmentStat, 0)}
	salaries := make(map[string]float64)
	byDepartment := make(map[string]*domain.DepartmentStat)

	for _, employee := range s.employees {
		if employee.IsDeleted {
			stats.TotalDeleted++
			continue
		}
		switch employee.EmploymentStatus {
		case domain.StatusActive:
			stats.TotalActive++
		case domain.StatusInactive:
			stats.TotalInactive++
		}

		stat, ok := byDepartment[employee.Department]
		if !ok {
			stat = &domain.DepartmentStat{Department: employee.Department}
			byDepartment[employee.Department] = stat
		}
		stat.Count++
		salaries[employee.Department] += employee.Salary
	}
	stats.TotalEmployees = stats.TotalActive + stats.TotalInactive

	for department, stat := range byDepartment {
		stat.AvgSalary = salaries[department] / float64(stat.Count)
		stats.DepartmentStats = append(stats.DepartmentStats, *stat)
	}
	slices.SortFunc(stats.DepartmentStats, func(a, b domain.DepartmentStat) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Department, b.Department)
	})

	return stats, nil
}

func copyEmployee(employee *domain.Employee) domain.Employee {
	out := *employee
	if employee.DeletedAt != nil {
		deletedAt := *employee.DeletedAt
		out.DeletedAt = &deletedAt
	}
	return out
}
