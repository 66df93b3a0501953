package json

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hilthontt/personnel/internal/audit"
	"github.com/hilthontt/personnel/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestWriteDomainError(t *testing.T) {
	employeeID := primitive.NewObjectID()

	cases := []struct {
		name   string
		err    error
		status int
		code   string
		known  bool
	}{
		{name: "employee not found", err: fmt.Errorf("load: %w", domain.ErrEmployeeNotFound), status: http.StatusNotFound, code: CodeNotFound, known: true},
		{name: "history not found", err: domain.ErrHistoryNotFound, status: http.StatusNotFound, code: CodeNotFound, known: true},
		{name: "version not found", err: domain.ErrVersionNotFound, status: http.StatusNotFound, code: CodeNotFound, known: true},
		{name: "duplicate", err: domain.ErrDuplicateEmployee, status: http.StatusConflict, code: CodeDuplicate, known: true},
		{name: "missing provenance", err: audit.ErrMissingProvenance, status: http.StatusBadRequest, code: CodeValidation, known: true},
		{name: "timeout", err: context.DeadlineExceeded, status: http.StatusServiceUnavailable, code: CodeUnavailable, known: true},
		{name: "inconsistent write", err: &audit.InconsistentWriteError{
			EmployeeID: employeeID,
			Operation:  domain.OperationUpdate,
			Err:        errors.New("write failed"),
		}, status: http.StatusInternalServerError, code: CodeInconsistentWrite, known: true},
		{name: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError, code: CodeInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			known := WriteDomainError(rec, tc.err)

			assert.Equal(t, tc.known, known)
			assert.Equal(t, tc.status, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.code, resp.Code)
			assert.Equal(t, http.StatusText(tc.status), resp.Error)
			assert.NotContains(t, resp.Message, "boom")
		})
	}

	t.Run("inconsistent write names the employee", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteDomainError(rec, &audit.InconsistentWriteError{EmployeeID: employeeID, Err: errors.New("x")})
		assert.Contains(t, rec.Body.String(), employeeID.Hex())
	})
}

func TestWriteRateLimitError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteRateLimitError(rec, 2)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
}

func TestRead(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	cases := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid", body: `{"name":"Jane"}`},
		{name: "empty", body: ``, wantErr: "request body is empty"},
		{name: "wrong type", body: `{"name":5}`, wantErr: `field "name" must be of type string`},
		{name: "two objects", body: `{"name":"a"}{"name":"b"}`, wantErr: "request body must contain a single JSON object"},
		{name: "syntax", body: `{"name":}`, wantErr: "malformed JSON at position"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var dst payload
			err := Read(r, &dst)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Jane", dst.Name)
		})
	}
}

func TestWritePage(t *testing.T) {
	rec := httptest.NewRecorder()
	WritePage(rec, []string{}, Pagination{Page: 3, Limit: 10, Total: 12, TotalPages: 2})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":[],"pagination":{"page":3,"limit":10,"total":12,"totalPages":2}}`, rec.Body.String())
}
