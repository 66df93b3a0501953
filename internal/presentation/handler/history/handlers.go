package history

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/hilthontt/personnel/internal/audit"
	"github.com/hilthontt/personnel/internal/domain"
	"github.com/hilthontt/personnel/internal/infrastructure/json"
	"github.com/hilthontt/personnel/internal/infrastructure/logging"
	"github.com/hilthontt/personnel/internal/infrastructure/ws"
	"github.com/hilthontt/personnel/internal/presentation/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultPageSize = 20

type Reader interface {
	ListForEmployee(ctx context.Context, employeeID primitive.ObjectID, page domain.Page) (*audit.HistoryPage, error)
	Get(ctx context.Context, historyID primitive.ObjectID) (*audit.HistoryDetail, error)
}

type Comparator interface {
	Compare(ctx context.Context, employeeID, firstID, secondID primitive.ObjectID) (*audit.Comparison, error)
}

type EmployeeFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Employee, error)
}

type Handler struct {
	reader     Reader
	comparator Comparator
	employees  EmployeeFinder
	hub        *ws.Hub
	upgrader   *websocket.Upgrader
	page       utils.PageConfig
	logger     logging.Logger
}

func NewHandler(
	reader Reader,
	comparator Comparator,
	employees EmployeeFinder,
	hub *ws.Hub,
	upgrader *websocket.Upgrader,
	page utils.PageConfig,
	logger logging.Logger,
) *Handler {
	if page.DefaultSize <= 0 {
		page.DefaultSize = DefaultPageSize
	}
	if page.MaxSize < page.DefaultSize {
		page.MaxSize = 100
	}
	return &Handler{
		reader:     reader,
		comparator: comparator,
		employees:  employees,
		hub:        hub,
		upgrader:   upgrader,
		page:       page,
		logger:     logger,
	}
}

// ListEmployeeHistoryHandler godoc
// @Summary      List the history of an employee
// @Description  Pages through the audit trail of an employee, newest first. Deleted employees keep their trail.
// @Tags         history
// @Produce      json
// @Param        id path string true "Employee id"
// @Param        page query int false "Page number" default(1) minimum(1)
// @Param        limit query int false "Page size" default(20) minimum(1) maximum(100)
// @Success      200 {object} json.Envelope{data=historyListResponse,pagination=json.Pagination} "History page"
// @Failure      400 {object} json.ErrorResponse "Malformed id or pagination"
// @Failure      404 {object} json.ErrorResponse "Employee not found"
// @Failure      500 {object} json.ErrorResponse "Internal server error"
// @Router       /employees/{id}/history [get]
func (h *Handler) ListEmployeeHistoryHandler(w http.ResponseWriter, r *http.Request) {
	employeeID, err := utils.ObjectIDParam(r, "id")
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	page, err := utils.ParsePage(r, h.page)
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	result, err := h.reader.ListForEmployee(r.Context(), employeeID, page)
	if err != nil {
		utils.WriteFailure(w, r, h.logger, "failed to list employee history", err)
		return
	}

	json.WritePage(w, newHistoryListResponse(result), json.Pagination{
		Page:       result.Page,
		Limit:      result.Limit,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	})
}

// CompareVersionsHandler godoc
// @Summary      Compare two versions
// @Description  Diffs the snapshots of two history records of the same employee. Values are reported in the order the ids are given.
// @Tags         history
// @Produce      json
// @Param        id path string true "Employee id"
// @Param        versionId1 query string true "First history record id"
// @Param        versionId2 query string true "Second history record id"
// @Success      200 {object} json.Envelope{data=compareResponse} "Comparison"
// @Failure      400 {object} json.ErrorResponse "Missing or malformed ids"
// @Failure      404 {object} json.ErrorResponse "One or both versions not found for this employee"
// @Failure      500 {object} json.ErrorResponse "Internal server error"
// @Router       /employees/{id}/history/compare [get]
func (h *Handler) CompareVersionsHandler(w http.ResponseWriter, r *http.Request) {
	employeeID, err := utils.ObjectIDParam(r, "id")
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	query := r.URL.Query()
	rawFirst, rawSecond := query.Get("versionId1"), query.Get("versionId2")
	if rawFirst == "" || rawSecond == "" {
		json.WriteBadRequestError(w, "Both version IDs are required for comparison")
		return
	}

	firstID, err := utils.ParseObjectID("versionId1", rawFirst)
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}
	secondID, err := utils.ParseObjectID("versionId2", rawSecond)
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	comparison, err := h.comparator.Compare(r.Context(), employeeID, firstID, secondID)
	if err != nil {
		utils.WriteFailure(w, r, h.logger, "failed to compare versions", err)
		return
	}

	json.WriteSuccess(w, http.StatusOK, newCompareResponse(comparison), "")
}

// GetHistoryDetailHandler godoc
// @Summary      Get a history record
// @Description  Returns one history record with its full snapshot and a summary of the employee when it still exists
// @Tags         history
// @Produce      json
// @Param        historyId path string true "History record id"
// @Success      200 {object} json.Envelope{data=historyDetailResponse} "History record"
// @Failure      400 {object} json.ErrorResponse "Malformed id"
// @Failure      404 {object} json.ErrorResponse "History record not found"
// @Failure      500 {object} json.ErrorResponse "Internal server error"
// @Router       /history/{historyId} [get]
func (h *Handler) GetHistoryDetailHandler(w http.ResponseWriter, r *http.Request) {
	historyID, err := utils.ObjectIDParam(r, "historyId")
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	detail, err := h.reader.Get(r.Context(), historyID)
	if err != nil {
		utils.WriteFailure(w, r, h.logger, "failed to load history record", err)
		return
	}

	json.WriteSuccess(w, http.StatusOK, newHistoryDetailResponse(detail), "")
}

// StreamHistoryHandler godoc
// @Summary      Stream new history records
// @Description  Upgrades to a WebSocket that receives every history record written for the employee from now on
// @Tags         history
// @Param        id path string true "Employee id"
// @Success      101 {object} ws.WSMessage "Switching Protocols"
// @Failure      400 {object} json.ErrorResponse "Malformed id"
// @Failure      404 {object} json.ErrorResponse "Employee not found"
// @Router       /employees/{id}/history/stream [get]
func (h *Handler) StreamHistoryHandler(w http.ResponseWriter, r *http.Request) {
	employeeID, err := utils.ObjectIDParam(r, "id")
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if _, err := h.employees.FindByID(r.Context(), employeeID); err != nil {
		utils.WriteFailure(w, r, h.logger, "failed to load employee for history stream", err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied
		h.logger.Warn(logging.WebSocket, logging.HistoryNotify, "history stream upgrade failed", map[logging.ExtraKey]any{
			logging.EmployeeID:   employeeID.Hex(),
			logging.ErrorMessage: err.Error(),
		})
		return
	}

	client := ws.NewClient(conn, uuid.NewString(), employeeID.Hex())
	if !h.hub.Register(client) {
		_ = conn.WriteJSON(ws.NewError(client.EmployeeID, "History stream is shutting down"))
		_ = conn.Close()
		return
	}

	go client.WriteMessage(h.logger)
	go client.ReadMessage(h.hub, h.logger)
}
