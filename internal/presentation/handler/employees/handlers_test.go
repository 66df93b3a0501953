package employees_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hilthontt/personnel/internal/application/employee"
	"github.com/hilthontt/personnel/internal/audit"
	"github.com/hilthontt/personnel/internal/domain"
	"github.com/hilthontt/personnel/internal/infrastructure/logging"
	"github.com/hilthontt/personnel/internal/persistence/memory"
	"github.com/hilthontt/personnel/internal/presentation/handler/employees"
	"github.com/hilthontt/personnel/internal/presentation/utils"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Pagination *struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"totalPages"`
	} `json:"pagination"`
}

type errorBody struct {
	Code   string `json:"code"`
	Fields []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"fields"`
}

type mutation struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employeeId"`
	Salary     float64 `json:"salary"`
	HistoryID  string  `json:"historyId"`
}

type HandlerSuite struct {
	suite.Suite
	employees *memory.EmployeeStore
	histories *memory.HistoryStore
	router    http.Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.employees = memory.NewEmployeeStore()
	s.histories = memory.NewHistoryStore()

	recorder := audit.NewRecorder(audit.RecorderOptions{Repository: s.histories})
	service, err := employee.NewService(s.employees, recorder)
	s.Require().NoError(err)

	h := employees.NewHandler(service, employees.Config{
		Page: utils.PageConfig{DefaultSize: 10, MaxSize: 100},
	}, logging.NewNop())

	r := chi.NewRouter()
	r.Post("/employees", h.CreateEmployeeHandler)
	r.Get("/employees", h.ListEmployeesHandler)
	r.Get("/employees/stats/overview", h.EmployeeStatsHandler)
	r.Get("/employees/{id}", h.GetEmployeeHandler)
	r.Put("/employees/{id}", h.UpdateEmployeeHandler)
	r.Delete("/employees/{id}", h.DeleteEmployeeHandler)
	s.router = r
}

func payload(overrides map[string]any) map[string]any {
	body := map[string]any{
		"fullName":      "Jane Doe",
		"email":         "jane@example.com",
		"phoneNumber":   "555-123-4567",
		"department":    "Engineering",
		"designation":   "Engineer",
		"salary":        50000,
		"dateOfJoining": "2024-01-15",
	}
	for k, v := range overrides {
		body[k] = v
	}
	return body
}

func (s *HandlerSuite) do(method, target string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) decode(rec *httptest.ResponseRecorder, data any) envelope {
	var env envelope
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env))
	if data != nil {
		s.Require().NoError(json.Unmarshal(env.Data, data))
	}
	return env
}

func (s *HandlerSuite) create(overrides map[string]any) mutation {
	rec := s.do(http.MethodPost, "/employees", payload(overrides), nil)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var created mutation
	s.decode(rec, &created)
	return created
}

func (s *HandlerSuite) history(id string) *domain.EmployeeHistory {
	oid, err := primitive.ObjectIDFromHex(id)
	s.Require().NoError(err)
	record, err := s.histories.GetByID(context.Background(), oid)
	s.Require().NoError(err)
	return record
}

func (s *HandlerSuite) TestCreate() {
	s.Run("records who and why", func() {
		rec := s.do(http.MethodPost, "/employees", payload(nil), map[string]string{
			utils.ChangedByHeader:    "hr-admin",
			utils.ChangeReasonHeader: "New hire",
		})
		s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

		var created mutation
		env := s.decode(rec, &created)
		s.True(env.Success)
		s.Equal("Employee created successfully", env.Message)
		s.Equal(50000.0, created.Salary)
		s.NotEmpty(created.HistoryID)

		record := s.history(created.HistoryID)
		s.Equal(domain.OperationCreate, record.Operation)
		s.Equal("hr-admin", record.ChangedBy)
		s.Equal("New hire", record.ChangeReason)
	})

	s.Run("duplicate email conflicts", func() {
		rec := s.do(http.MethodPost, "/employees", payload(map[string]any{"phoneNumber": "555-999-0000"}), nil)
		s.Equal(http.StatusConflict, rec.Code)
		s.Equal(1, s.histories.Len())
	})
}

func (s *HandlerSuite) TestCreateDefaultsProvenance() {
	created := s.create(nil)

	record := s.history(created.HistoryID)
	s.Equal("system", record.ChangedBy)
	s.Equal("Employee record created", record.ChangeReason)
}

func (s *HandlerSuite) TestCreateValidation() {
	cases := []struct {
		name      string
		overrides map[string]any
		field     string
	}{
		{name: "bad email", overrides: map[string]any{"email": "not-an-email"}, field: "email"},
		{name: "bad phone", overrides: map[string]any{"phoneNumber": "12"}, field: "phoneNumber"},
		{name: "unknown department", overrides: map[string]any{"department": "Space"}, field: "department"},
		{name: "negative salary", overrides: map[string]any{"salary": -1}, field: "salary"},
		{name: "missing salary", overrides: map[string]any{"salary": nil}, field: "salary"},
		{name: "bad date", overrides: map[string]any{"dateOfJoining": "15/01/2024"}, field: "dateOfJoining"},
		{name: "bad status", overrides: map[string]any{"employmentStatus": "Retired"}, field: "employmentStatus"},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			rec := s.do(http.MethodPost, "/employees", payload(tc.overrides), nil)
			s.Require().Equal(http.StatusBadRequest, rec.Code, rec.Body.String())

			var body errorBody
			s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
			s.Equal("VALIDATION_ERROR", body.Code)
			s.Require().NotEmpty(body.Fields)
			s.Equal(tc.field, body.Fields[0].Field)
		})
	}

	s.Run("malformed body", func() {
		req := httptest.NewRequest(http.MethodPost, "/employees", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Equal(0, s.histories.Len())
}

func (s *HandlerSuite) TestUpdateRecordsChanges() {
	created := s.create(nil)

	rec := s.do(http.MethodPut, "/employees/"+created.ID, payload(map[string]any{
		"salary":       60000,
		"changeReason": "Annual raise",
	}), map[string]string{utils.ChangedByHeader: "manager"})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var updated mutation
	env := s.decode(rec, &updated)
	s.Equal("Employee updated successfully", env.Message)
	s.Equal(60000.0, updated.Salary)

	record := s.history(updated.HistoryID)
	s.Equal(domain.OperationUpdate, record.Operation)
	s.Equal("manager", record.ChangedBy)
	s.Equal("Annual raise", record.ChangeReason)
	s.Equal([]domain.FieldChange{
		{Field: domain.FieldSalary, OldValue: 50000.0, NewValue: 60000.0},
	}, record.Changes)
}

func (s *HandlerSuite) TestUpdateErrors() {
	s.Run("malformed id", func() {
		rec := s.do(http.MethodPut, "/employees/not-an-id", payload(nil), nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("unknown employee", func() {
		rec := s.do(http.MethodPut, "/employees/"+primitive.NewObjectID().Hex(), payload(nil), nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *HandlerSuite) TestDelete() {
	created := s.create(nil)

	rec := s.do(http.MethodDelete, "/employees/"+created.ID, map[string]string{"changeReason": "Resigned"}, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var deleted struct {
		ID        string `json:"id"`
		HistoryID string `json:"historyId"`
	}
	env := s.decode(rec, &deleted)
	s.Equal("Employee deleted successfully", env.Message)
	s.Equal(created.ID, deleted.ID)

	record := s.history(deleted.HistoryID)
	s.Equal(domain.OperationDelete, record.Operation)
	s.Equal("Resigned", record.ChangeReason)
	s.Equal(string(domain.StatusInactive), record.Snapshot[domain.FieldEmploymentStatus])

	s.Run("deleted employee is gone from reads", func() {
		s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/employees/"+created.ID, nil, nil).Code)
		s.Equal(http.StatusNotFound, s.do(http.MethodDelete, "/employees/"+created.ID, nil, nil).Code)
	})

	s.Run("without a body the default reason is used", func() {
		time.Sleep(2 * time.Millisecond)
		other := s.create(map[string]any{"email": "john@example.com", "phoneNumber": "555-222-3333"})
		req := httptest.NewRequest(http.MethodDelete, "/employees/"+other.ID, nil)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		s.Require().Equal(http.StatusOK, rec.Code)

		var body struct {
			HistoryID string `json:"historyId"`
		}
		s.decode(rec, &body)
		s.Equal("Employee record deleted", s.history(body.HistoryID).ChangeReason)
	})
}

func (s *HandlerSuite) TestList() {
	for i, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		s.create(map[string]any{
			"email":       email,
			"phoneNumber": "555-100-000" + string(rune('1'+i)),
			"salary":      1000 * (i + 1),
		})
		// display ids are derived from the creation time
		time.Sleep(2 * time.Millisecond)
	}

	s.Run("paged with totals", func() {
		rec := s.do(http.MethodGet, "/employees?page=2&limit=2&sortBy=salary&sortOrder=asc", nil, nil)
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

		var listed []mutation
		env := s.decode(rec, &listed)
		s.Require().NotNil(env.Pagination)
		s.Equal(int64(3), env.Pagination.Total)
		s.Equal(2, env.Pagination.TotalPages)
		s.Require().Len(listed, 1)
		s.Equal(3000.0, listed[0].Salary)
	})

	s.Run("sort order is case-insensitive", func() {
		rec := s.do(http.MethodGet, "/employees?sortBy=salary&sortOrder=ASC&employmentStatus=Active", nil, nil)
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

		var listed []mutation
		s.decode(rec, &listed)
		s.Require().Len(listed, 3)
		s.Equal(1000.0, listed[0].Salary)
	})

	s.Run("invalid sortBy names the allowed keys", func() {
		rec := s.do(http.MethodGet, "/employees?sortBy=password", nil, nil)
		s.Require().Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), "sortBy: must be one of: ")
		s.Contains(rec.Body.String(), "salary")
	})

	s.Run("invalid query", func() {
		for _, target := range []string{
			"/employees?limit=101",
			"/employees?page=0",
			"/employees?sortBy=password",
			"/employees?sortOrder=sideways",
			"/employees?employmentStatus=Retired",
			"/employees?search=" + strings.Repeat("a", 101),
		} {
			s.Equal(http.StatusBadRequest, s.do(http.MethodGet, target, nil, nil).Code, target)
		}
	})

	s.Run("stats", func() {
		rec := s.do(http.MethodGet, "/employees/stats/overview", nil, nil)
		s.Require().Equal(http.StatusOK, rec.Code)

		var stats domain.EmployeeStats
		s.decode(rec, &stats)
		s.Equal(int64(3), stats.TotalActive)
		s.Require().Len(stats.DepartmentStats, 1)
		s.Equal(2000.0, stats.DepartmentStats[0].AvgSalary)
	})
}
