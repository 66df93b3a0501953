package employees

import (
	"github.com/hilthontt/personnel/internal/domain"
	"github.com/hilthontt/personnel/internal/infrastructure/validate"
)

// employeeRequest is the full payload for creating or replacing an employee
type employeeRequest struct {
	FullName         string   `json:"fullName" validate:"required,min=2,max=100" example:"Jane Doe"`                               // Full name, 2 to 100 characters
	Email            string   `json:"email" validate:"required,email" example:"jane.doe@example.com"`                              // Unique email address
	PhoneNumber      string   `json:"phoneNumber" validate:"required,phone" example:"555-123-4567"`                                // Unique phone number
	Department       string   `json:"department" validate:"required,department" example:"Engineering"`                             // One of the known departments
	Designation      string   `json:"designation" validate:"required,max=100" example:"Software Engineer"`                         // Job title
	Salary           *float64 `json:"salary" validate:"required,gte=0" example:"85000"`                                            // Annual salary, never negative
	EmploymentStatus string   `json:"employmentStatus,omitempty" validate:"omitempty,oneof=Active Inactive" example:"Active"`      // Defaults to Active on create
	DateOfJoining    string   `json:"dateOfJoining" validate:"required,iso8601" example:"2024-01-15"`                              // ISO-8601 date
	ChangeReason     string   `json:"changeReason,omitempty" validate:"omitempty,max=500" example:"Promotion after annual review"` // Stored on the history record
}

func (req employeeRequest) fields() (domain.EmployeeFields, error) {
	joined, err := validate.ParseDate(req.DateOfJoining)
	if err != nil {
		return domain.EmployeeFields{}, err
	}

	var salary float64
	if req.Salary != nil {
		salary = *req.Salary
	}

	return domain.EmployeeFields{
		FullName:         req.FullName,
		Email:            req.Email,
		PhoneNumber:      req.PhoneNumber,
		Department:       req.Department,
		Designation:      req.Designation,
		Salary:           salary,
		EmploymentStatus: domain.EmploymentStatus(req.EmploymentStatus),
		DateOfJoining:    joined,
	}, nil
}

// deleteRequest optionally carries the reason for a deletion
type deleteRequest struct {
	ChangeReason string `json:"changeReason,omitempty" validate:"omitempty,max=500" example:"Left the company"` // Stored on the history record
}

// mutationResponse is the employee after a change along with the id of the
// history record describing it
type mutationResponse struct {
	*domain.Employee
	HistoryID string `json:"historyId" example:"65a1f0c2e4b0a1b2c3d4e5f6"` // Id of the history record written for this change
}

func newMutationResponse(employee *domain.Employee, history *domain.EmployeeHistory) mutationResponse {
	resp := mutationResponse{Employee: employee}
	if history != nil {
		resp.HistoryID = history.ID.Hex()
	}
	return resp
}
