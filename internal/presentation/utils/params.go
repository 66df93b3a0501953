package utils

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/hilthontt/personnel/internal/audit"
	"github.com/hilthontt/personnel/internal/domain"
	"github.com/hilthontt/personnel/internal/infrastructure/validate"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ChangedByHeader    = "X-Changed-By"
	ChangeReasonHeader = "X-Change-Reason"
)

type PageConfig struct {
	DefaultSize int
	MaxSize     int
}

var (
	validPageParam = validate.PositiveInt()
	validObjectID  = validate.ObjectID()
)

// ParsePage reads page and limit from the query string. Missing values take
// the defaults; a limit above the maximum is rejected.
func ParsePage(r *http.Request, cfg PageConfig) (domain.Page, error) {
	query := r.URL.Query()
	page := domain.Page{Number: 1, Size: cfg.DefaultSize}

	if raw := query.Get("page"); raw != "" {
		if err := validate.Field("page", validPageParam)(raw); err != nil {
			return domain.Page{}, err
		}
		page.Number, _ = strconv.Atoi(raw)
	}

	if raw := query.Get("limit"); raw != "" {
		if err := validate.Field("limit", validPageParam)(raw); err != nil {
			return domain.Page{}, err
		}
		page.Size, _ = strconv.Atoi(raw)
		if page.Size > cfg.MaxSize {
			return domain.Page{}, fmt.Errorf("limit: must be no more than %d", cfg.MaxSize)
		}
	}

	return page, nil
}

// ObjectIDParam reads a 24 character hex id from the route.
func ObjectIDParam(r *http.Request, name string) (primitive.ObjectID, error) {
	return ParseObjectID(name, chi.URLParam(r, name))
}

func ParseObjectID(name, value string) (primitive.ObjectID, error) {
	if err := validate.Field(name, validate.Required(), validObjectID)(value); err != nil {
		return primitive.NilObjectID, err
	}
	return primitive.ObjectIDFromHex(value)
}

// Provenance takes who and why from the request, falling back to the given
// defaults when the caller sent nothing.
func Provenance(r *http.Request, bodyReason, defaultChangedBy, defaultReason string) audit.Provenance {
	changedBy := strings.TrimSpace(r.Header.Get(ChangedByHeader))
	if changedBy == "" {
		changedBy = defaultChangedBy
	}

	reason := strings.TrimSpace(bodyReason)
	if reason == "" {
		reason = strings.TrimSpace(r.Header.Get(ChangeReasonHeader))
	}
	if reason == "" {
		reason = defaultReason
	}

	return audit.Provenance{ChangedBy: changedBy, ChangeReason: reason}
}
