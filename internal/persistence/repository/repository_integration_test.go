//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/hilthontt/personnel/internal/application/employee"
	"github.com/hilthontt/personnel/internal/audit"
	"github.com/hilthontt/personnel/internal/domain"
	"github.com/hilthontt/personnel/internal/persistence/repository"
	"github.com/hilthontt/personnel/internal/testutil/containers"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RepositorySuite struct {
	suite.Suite
	ctx       context.Context
	cancel    context.CancelFunc
	mongo     *containers.MongoContainer
	employees *repository.EmployeeRepository
	histories *repository.EmployeeHistoryRepository
	service   *employee.Service
}

func TestRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupSuite() {
	s.ctx, s.cancel = context.WithTimeout(context.Background(), 5*time.Minute)
	s.mongo = containers.NewMongoContainer(s.ctx, s.T())
}

func (s *RepositorySuite) TearDownSuite() {
	s.cancel()
}

func (s *RepositorySuite) SetupTest() {
	database := s.mongo.Database("personnel_test_" + primitive.NewObjectID().Hex())

	s.employees = repository.NewEmployeeRepository(database)
	s.histories = repository.NewEmployeeHistoryRepository(database)
	s.Require().NoError(s.employees.EnsureIndexes(s.ctx))
	s.Require().NoError(s.histories.EnsureIndexes(s.ctx))

	recorder := audit.NewRecorder(audit.RecorderOptions{Repository: s.histories})
	service, err := employee.NewService(s.employees, recorder)
	s.Require().NoError(err)
	s.service = service
}

func fields(email, phone string, salary float64) domain.EmployeeFields {
	return domain.EmployeeFields{
		FullName:      "Jane Doe",
		Email:         email,
		PhoneNumber:   phone,
		Department:    "Engineering",
		Designation:   "Engineer",
		Salary:        salary,
		DateOfJoining: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

var provenance = audit.Provenance{ChangedBy: "hr-admin", ChangeReason: "integration"}

func (s *RepositorySuite) TestAuditTrailRoundTrip() {
	created, err := s.service.Create(s.ctx, fields("jane@example.com", "555-123-4567", 50000), provenance)
	s.Require().NoError(err)
	updated, err := s.service.Update(s.ctx, created.Employee.ID, fields("jane@example.com", "555-123-4567", 60000), provenance)
	s.Require().NoError(err)
	deleted, err := s.service.Delete(s.ctx, created.Employee.ID, provenance)
	s.Require().NoError(err)

	records, total, err := s.histories.ListByEmployee(s.ctx, created.Employee.ID, domain.Page{Number: 1, Size: 20})
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Require().Len(records, 3)
	s.Equal(deleted.History.ID, records[0].ID)
	s.Equal(updated.History.ID, records[1].ID)
	s.Equal(created.History.ID, records[2].ID)

	s.Run("stored values read back as written", func() {
		s.Empty(records[2].Changes)
		s.Equal(50000.0, records[2].Snapshot[domain.FieldSalary])
		s.Equal([]domain.FieldChange{
			{Field: domain.FieldSalary, OldValue: 50000.0, NewValue: 60000.0},
		}, records[1].Changes)
		s.Equal(string(domain.StatusInactive), records[0].Snapshot[domain.FieldEmploymentStatus])
		s.True(created.History.CreatedAt.Equal(records[2].CreatedAt))
	})

	s.Run("page past the end", func() {
		page, total, err := s.histories.ListByEmployee(s.ctx, created.Employee.ID, domain.Page{Number: 4, Size: 1})
		s.Require().NoError(err)
		s.Equal(int64(3), total)
		s.NotNil(page)
		s.Empty(page)
	})

	s.Run("comparison over stored snapshots", func() {
		comparator := audit.NewComparator(s.histories, audit.EmployeeSchema, nil)
		comparison, err := comparator.Compare(s.ctx, created.Employee.ID, created.History.ID, updated.History.ID)
		s.Require().NoError(err)
		s.Equal([]audit.VersionDifference{
			{Field: domain.FieldSalary, Version1Value: 50000.0, Version2Value: 60000.0},
		}, comparison.Differences)

		_, err = comparator.Compare(s.ctx, primitive.NewObjectID(), created.History.ID, updated.History.ID)
		s.ErrorIs(err, domain.ErrVersionNotFound)
	})

	s.Run("deleted employee is hidden from active reads only", func() {
		_, err := s.employees.FindActiveByID(s.ctx, created.Employee.ID)
		s.ErrorIs(err, domain.ErrEmployeeNotFound)

		found, err := s.employees.FindByID(s.ctx, created.Employee.ID)
		s.Require().NoError(err)
		s.True(found.IsDeleted)
	})
}

func (s *RepositorySuite) TestHistoryAppendIsWriteOnce() {
	record := &domain.EmployeeHistory{
		ID:         primitive.NewObjectID(),
		EmployeeID: primitive.NewObjectID(),
		Operation:  domain.OperationCreate,
		Changes:    []domain.FieldChange{},
		Snapshot:   domain.Snapshot{domain.FieldFullName: "Jane Doe"},
		ChangedBy:  "system",
		CreatedAt:  domain.TruncateTime(time.Now()),
	}

	s.Require().NoError(s.histories.Append(s.ctx, record))
	s.ErrorIs(s.histories.Append(s.ctx, record), domain.ErrHistoryExists)
}

func (s *RepositorySuite) TestEmployeeUniqueness() {
	_, err := s.service.Create(s.ctx, fields("jane@example.com", "555-123-4567", 1), provenance)
	s.Require().NoError(err)

	time.Sleep(2 * time.Millisecond)
	_, err = s.service.Create(s.ctx, fields("jane@example.com", "555-000-0000", 1), provenance)
	s.ErrorIs(err, domain.ErrDuplicateEmployee)
}

func (s *RepositorySuite) TestListAndStats() {
	for i, dept := range []string{"Engineering", "Finance", "Engineering"} {
		f := fields(
			"person"+string(rune('a'+i))+"@example.com",
			"555-200-000"+string(rune('1'+i)),
			float64(1000*(i+1)),
		)
		f.Department = dept
		_, err := s.service.Create(s.ctx, f, provenance)
		s.Require().NoError(err)
		time.Sleep(2 * time.Millisecond)
	}

	listed, total, err := s.employees.List(s.ctx, domain.EmployeeFilter{
		Department: "Engineering",
		SortBy:     "salary",
		Page:       domain.Page{Number: 1, Size: 10},
	})
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Require().Len(listed, 2)
	s.Equal(1000.0, listed[0].Salary)
	s.Equal(3000.0, listed[1].Salary)

	stats, err := s.employees.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), stats.TotalActive)
	s.Require().Len(stats.DepartmentStats, 2)
	s.Equal("Engineering", stats.DepartmentStats[0].Department)
	s.Equal(2000.0, stats.DepartmentStats[0].AvgSalary)
}
