package employees

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"github.com/hilthontt/personnel/internal/application/employee"
	"github.com/hilthontt/personnel/internal/audit"
	"github.com/hilthontt/personnel/internal/domain"
	"github.com/hilthontt/personnel/internal/infrastructure/json"
	"github.com/hilthontt/personnel/internal/infrastructure/logging"
	"github.com/hilthontt/personnel/internal/infrastructure/validate"
	"github.com/hilthontt/personnel/internal/presentation/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultPageSize = 10
	defaultSortBy   = "createdAt"

	reasonCreated = "Employee record created"
	reasonUpdated = "Employee record updated"
	reasonDeleted = "Employee record deleted"

	maxSearchLength = 100
)

var (
	validSearch    = validate.Field("search", validate.MaxLength(maxSearchLength))
	validSortBy    = validate.Field("sortBy", validate.OneOf(sortKeys()...))
	validSortOrder = validate.Field("sortOrder", validate.OneOf("asc", "desc"))
	validStatus    = validate.Field("employmentStatus", validate.OneOf(string(domain.StatusActive), string(domain.StatusInactive)))
)

func sortKeys() []string {
	keys := make([]string, 0, len(domain.SortableFields))
	for key := range domain.SortableFields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

type Service interface {
	Create(ctx context.Context, fields domain.EmployeeFields, provenance audit.Provenance) (*employee.Result, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Employee, error)
	List(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, int64, error)
	Stats(ctx context.Context) (*domain.EmployeeStats, error)
	Update(ctx context.Context, id primitive.ObjectID, fields domain.EmployeeFields, provenance audit.Provenance) (*employee.Result, error)
	Delete(ctx context.Context, id primitive.ObjectID, provenance audit.Provenance) (*employee.Result, error)
}

type Config struct {
	DefaultChangedBy string
	Page             utils.PageConfig
}

type Handler struct {
	service Service
	config  Config
	logger  logging.Logger
}

func NewHandler(service Service, config Config, logger logging.Logger) *Handler {
	if config.DefaultChangedBy == "" {
		config.DefaultChangedBy = "system"
	}
	if config.Page.DefaultSize <= 0 {
		config.Page.DefaultSize = DefaultPageSize
	}
	if config.Page.MaxSize < config.Page.DefaultSize {
		config.Page.MaxSize = 100
	}
	return &Handler{
		service: service,
		config:  config,
		logger:  logger,
	}
}

// CreateEmployeeHandler godoc
// @Summary      Create an employee
// @Description  Creates an employee and records a CREATE entry in its history
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        X-Changed-By header string false "Who made the change" default(system)
// @Param        X-Change-Reason header string false "Why the change was made"
// @Param        request body employeeRequest true "Employee attributes"
// @Success      201 {object} json.Envelope{data=mutationResponse} "Employee created successfully"
// @Failure      400 {object} json.ErrorResponse "Validation error"
// @Failure      409 {object} json.ErrorResponse "Email, phone number or employee id already in use"
// @Failure      500 {object} json.ErrorResponse "Internal error or history could not be recorded"
// @Router       /employees [post]
func (h *Handler) CreateEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	fields, ok := h.readEmployee(w, r, &req)
	if !ok {
		return
	}

	provenance := utils.Provenance(r, req.ChangeReason, h.config.DefaultChangedBy, reasonCreated)

	result, err := h.service.Create(r.Context(), fields, provenance)
	if err != nil {
		utils.WriteFailure(w, r, h.logger, "failed to create employee", err)
		return
	}

	json.WriteSuccess(w, http.StatusCreated, newMutationResponse(result.Employee, result.History), "Employee created successfully")
}

// ListEmployeesHandler godoc
// @Summary      List employees
// @Description  Pages through active employees with optional search, filters and sorting
// @Tags         employees
// @Produce      json
// @Param        page query int false "Page number" default(1) minimum(1)
// @Param        limit query int false "Page size" default(10) minimum(1) maximum(100)
// @Param        search query string false "Matches name, email, employee id or designation"
// @Param        department query string false "Department filter"
// @Param        employmentStatus query string false "Status filter" Enums(Active, Inactive)
// @Param        sortBy query string false "Sort field" default(createdAt)
// @Param        sortOrder query string false "Sort direction" Enums(asc, desc) default(desc)
// @Success      200 {object} json.Envelope{data=[]domain.Employee,pagination=json.Pagination} "Employees"
// @Failure      400 {object} json.ErrorResponse "Invalid query parameters"
// @Failure      500 {object} json.ErrorResponse "Internal server error"
// @Router       /employees [get]
func (h *Handler) ListEmployeesHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	employees, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		utils.WriteFailure(w, r, h.logger, "failed to list employees", err)
		return
	}

	json.WritePage(w, employees, json.Pagination{
		Page:       filter.Page.Number,
		Limit:      filter.Page.Size,
		Total:      total,
		TotalPages: domain.TotalPages(total, filter.Page.Size),
	})
}

// EmployeeStatsHandler godoc
// @Summary      Employee statistics
// @Description  Counts employees by status and summarises active employees per department
// @Tags         employees
// @Produce      json
// @Success      200 {object} json.Envelope{data=domain.EmployeeStats} "Statistics"
// @Failure      500 {object} json.ErrorResponse "Internal server error"
// @Router       /employees/stats/overview [get]
func (h *Handler) EmployeeStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		utils.WriteFailure(w, r, h.logger, "failed to compute employee stats", err)
		return
	}

	json.WriteSuccess(w, http.StatusOK, stats, "")
}

// GetEmployeeHandler godoc
// @Summary      Get an employee
// @Description  Returns an active employee
// @Tags         employees
// @Produce      json
// @Param        id path string true "Employee id"
// @Success      200 {object} json.Envelope{data=domain.Employee} "Employee"
// @Failure      400 {object} json.ErrorResponse "Malformed id"
// @Failure      404 {object} json.ErrorResponse "Employee not found"
// @Router       /employees/{id} [get]
func (h *Handler) GetEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ObjectIDParam(r, "id")
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	emp, err := h.service.Get(r.Context(), id)
	if err != nil {
		utils.WriteFailure(w, r, h.logger, "failed to load employee", err)
		return
	}

	json.WriteSuccess(w, http.StatusOK, emp, "")
}

// UpdateEmployeeHandler godoc
// @Summary      Update an employee
// @Description  Replaces the attributes of an active employee and records an UPDATE entry with the changed fields
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id path string true "Employee id"
// @Param        X-Changed-By header string false "Who made the change" default(system)
// @Param        X-Change-Reason header string false "Why the change was made"
// @Param        request body employeeRequest true "Employee attributes"
// @Success      200 {object} json.Envelope{data=mutationResponse} "Employee updated successfully"
// @Failure      400 {object} json.ErrorResponse "Validation error"
// @Failure      404 {object} json.ErrorResponse "Employee not found"
// @Failure      409 {object} json.ErrorResponse "Email or phone number already in use"
// @Failure      500 {object} json.ErrorResponse "Internal error or history could not be recorded"
// @Router       /employees/{id} [put]
func (h *Handler) UpdateEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ObjectIDParam(r, "id")
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	var req employeeRequest
	fields, ok := h.readEmployee(w, r, &req)
	if !ok {
		return
	}

	provenance := utils.Provenance(r, req.ChangeReason, h.config.DefaultChangedBy, reasonUpdated)

	result, err := h.service.Update(r.Context(), id, fields, provenance)
	if err != nil {
		utils.WriteFailure(w, r, h.logger, "failed to update employee", err)
		return
	}

	json.WriteSuccess(w, http.StatusOK, newMutationResponse(result.Employee, result.History), "Employee updated successfully")
}

// DeleteEmployeeHandler godoc
// @Summary      Delete an employee
// @Description  Soft-deletes an active employee and records a DELETE entry. The history stays readable.
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id path string true "Employee id"
// @Param        X-Changed-By header string false "Who made the change" default(system)
// @Param        X-Change-Reason header string false "Why the change was made"
// @Param        request body deleteRequest false "Optional reason"
// @Success      200 {object} json.Envelope "Employee deleted successfully"
// @Failure      400 {object} json.ErrorResponse "Malformed id"
// @Failure      404 {object} json.ErrorResponse "Employee not found"
// @Failure      500 {object} json.ErrorResponse "Internal error or history could not be recorded"
// @Router       /employees/{id} [delete]
func (h *Handler) DeleteEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ObjectIDParam(r, "id")
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	var req deleteRequest
	if r.ContentLength > 0 {
		if err := json.Read(r, &req); err != nil {
			json.WriteValidationError(w, err)
			return
		}
		if err := validate.Struct(req); err != nil {
			utils.WriteInvalid(w, err)
			return
		}
	}

	provenance := utils.Provenance(r, req.ChangeReason, h.config.DefaultChangedBy, reasonDeleted)

	result, err := h.service.Delete(r.Context(), id, provenance)
	if err != nil {
		utils.WriteFailure(w, r, h.logger, "failed to delete employee", err)
		return
	}

	json.WriteSuccess(w, http.StatusOK, map[string]string{
		"id":        result.Employee.ID.Hex(),
		"historyId": result.History.ID.Hex(),
	}, "Employee deleted successfully")
}

func (h *Handler) readEmployee(w http.ResponseWriter, r *http.Request, req *employeeRequest) (domain.EmployeeFields, bool) {
	if err := json.Read(r, req); err != nil {
		json.WriteValidationError(w, err)
		return domain.EmployeeFields{}, false
	}

	if err := validate.Struct(req); err != nil {
		utils.WriteInvalid(w, err)
		return domain.EmployeeFields{}, false
	}

	fields, err := req.fields()
	if err != nil {
		utils.WriteInvalid(w, validate.ValidationErrors{{Field: "dateOfJoining", Message: err.Error()}})
		return domain.EmployeeFields{}, false
	}
	return fields, true
}

func (h *Handler) parseFilter(r *http.Request) (domain.EmployeeFilter, error) {
	page, err := utils.ParsePage(r, h.config.Page)
	if err != nil {
		return domain.EmployeeFilter{}, err
	}

	query := r.URL.Query()
	filter := domain.EmployeeFilter{
		Search:           strings.TrimSpace(query.Get("search")),
		Department:       strings.TrimSpace(query.Get("department")),
		EmploymentStatus: domain.EmploymentStatus(query.Get("employmentStatus")),
		SortBy:           defaultSortBy,
		SortDescending:   true,
		Page:             page,
	}

	if err := validSearch(filter.Search); err != nil {
		return domain.EmployeeFilter{}, err
	}

	if sortBy := query.Get("sortBy"); sortBy != "" {
		if err := validSortBy(sortBy); err != nil {
			return domain.EmployeeFilter{}, err
		}
		filter.SortBy = sortBy
	}

	if sortOrder := strings.ToLower(query.Get("sortOrder")); sortOrder != "" {
		if err := validSortOrder(sortOrder); err != nil {
			return domain.EmployeeFilter{}, err
		}
		filter.SortDescending = sortOrder == "desc"
	}

	if filter.EmploymentStatus != "" {
		if err := validStatus(string(filter.EmploymentStatus)); err != nil {
			return domain.EmployeeFilter{}, err
		}
	}

	return filter, nil
}
