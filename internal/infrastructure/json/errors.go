package json

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/hilthontt/personnel/internal/audit"
	"github.com/hilthontt/personnel/internal/domain"
)

const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeDuplicate         = "DUPLICATE"
	CodeInconsistentWrite = "INCONSISTENT_WRITE"
	CodeUnavailable       = "UNAVAILABLE"
	CodeInternal          = "INTERNAL"
	CodeRateLimited       = "RATE_LIMITED"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error      string       `json:"error"`
	Message    string       `json:"message,omitempty"`
	Code       string       `json:"code,omitempty"`
	Fields     []FieldError `json:"fields,omitempty"`
	EmployeeID string       `json:"employeeId,omitempty"`
}

func writeErrorResponse(w http.ResponseWriter, status int, resp ErrorResponse) {
	resp.Error = http.StatusText(status)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func WriteError(w http.ResponseWriter, status int, err error, msg string) {
	writeErrorResponse(w, status, ErrorResponse{Message: msg, Code: codeFor(status)})
}

func WriteValidationError(w http.ResponseWriter, err error) {
	writeErrorResponse(w, http.StatusBadRequest, ErrorResponse{Message: err.Error(), Code: CodeValidation})
}

func WriteFieldErrors(w http.ResponseWriter, fields []FieldError) {
	writeErrorResponse(w, http.StatusBadRequest, ErrorResponse{
		Message: "Validation failed",
		Code:    CodeValidation,
		Fields:  fields,
	})
}

func WriteBadRequestError(w http.ResponseWriter, msg string) {
	writeErrorResponse(w, http.StatusBadRequest, ErrorResponse{Message: msg, Code: CodeValidation})
}

func WriteInternalError(w http.ResponseWriter, err error) {
	writeErrorResponse(w, http.StatusInternalServerError, ErrorResponse{
		Message: "An unexpected error occurred",
		Code:    CodeInternal,
	})
}

func WriteRateLimitError(w http.ResponseWriter, retryAfter int) {
	if retryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	}
	writeErrorResponse(w, http.StatusTooManyRequests, ErrorResponse{
		Message: "Too many requests. Please try again later.",
		Code:    CodeRateLimited,
	})
}

// WriteDomainError maps errors from the service and audit layers to a
// response. It reports whether err was one of the known kinds; unknown
// errors are written as internal errors.
func WriteDomainError(w http.ResponseWriter, err error) bool {
	var inconsistent *audit.InconsistentWriteError

	switch {
	case errors.As(err, &inconsistent):
		writeErrorResponse(w, http.StatusInternalServerError, ErrorResponse{
			Message:    "The employee was changed but its history could not be recorded",
			Code:       CodeInconsistentWrite,
			EmployeeID: inconsistent.EmployeeID.Hex(),
		})
	case errors.Is(err, domain.ErrVersionNotFound):
		WriteError(w, http.StatusNotFound, err, "One or both versions not found")
	case errors.Is(err, domain.ErrEmployeeNotFound):
		WriteError(w, http.StatusNotFound, err, "Employee not found")
	case errors.Is(err, domain.ErrHistoryNotFound):
		WriteError(w, http.StatusNotFound, err, "History record not found")
	case errors.Is(err, domain.ErrDuplicateEmployee):
		WriteError(w, http.StatusConflict, err, "An employee with this email, phone number or employee id already exists")
	case errors.Is(err, audit.ErrMissingProvenance):
		WriteValidationError(w, err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		WriteError(w, http.StatusServiceUnavailable, err, "The request could not be completed in time")
	default:
		WriteInternalError(w, err)
		return false
	}
	return true
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeValidation
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeDuplicate
	case http.StatusServiceUnavailable:
		return CodeUnavailable
	case http.StatusTooManyRequests:
		return CodeRateLimited
	case http.StatusInternalServerError:
		return CodeInternal
	}
	return ""
}
