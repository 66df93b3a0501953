package utils

import (
	"errors"
	"net/http"

	"github.com/hilthontt/personnel/internal/infrastructure/json"
	"github.com/hilthontt/personnel/internal/infrastructure/logging"
	"github.com/hilthontt/personnel/internal/infrastructure/validate"
)

// WriteInvalid writes field errors from struct validation as a field list and
// anything else as a plain validation error.
func WriteInvalid(w http.ResponseWriter, err error) {
	var fieldErrs validate.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		json.WriteValidationError(w, err)
		return
	}

	fields := make([]json.FieldError, len(fieldErrs))
	for i, fe := range fieldErrs {
		fields[i] = json.FieldError{Field: fe.Field, Message: fe.Message}
	}
	json.WriteFieldErrors(w, fields)
}

// WriteFailure maps err to a response and logs whatever the mapping did not
// recognise.
func WriteFailure(w http.ResponseWriter, r *http.Request, logger logging.Logger, msg string, err error) {
	if json.WriteDomainError(w, err) {
		return
	}
	logger.Error(logging.RequestResponse, logging.ExternalService, msg, map[logging.ExtraKey]any{
		logging.Method:       r.Method,
		logging.Path:         r.URL.Path,
		logging.ErrorMessage: err.Error(),
	})
}
