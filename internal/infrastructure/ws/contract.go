package ws

import (
	"github.com/hilthontt/personnel/internal/domain"
)

type WSMessage struct {
	Type       string `json:"type"`
	EmployeeID string `json:"employeeId"`
	Data       any    `json:"data"`
}

type HistoryPayload struct {
	ID           string               `json:"id"`
	Operation    domain.Operation     `json:"operation"`
	Changes      []domain.FieldChange `json:"changes"`
	ChangedBy    string               `json:"changedBy"`
	ChangeReason string               `json:"changeReason"`
	Timestamp    string               `json:"timestamp"`
}

type ErrorPayload struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func NewHistoryRecorded(history *domain.EmployeeHistory) *WSMessage {
	return &WSMessage{
		Type:       HistoryRecorded,
		EmployeeID: history.EmployeeID.Hex(),
		Data: HistoryPayload{
			ID:           history.ID.Hex(),
			Operation:    history.Operation,
			Changes:      history.Changes,
			ChangedBy:    history.ChangedBy,
			ChangeReason: history.ChangeReason,
			Timestamp:    domain.FormatDate(history.CreatedAt),
		},
	}
}

func NewStreamReady(employeeID string) *WSMessage {
	return &WSMessage{
		Type:       StreamReady,
		EmployeeID: employeeID,
	}
}

func NewError(employeeID, message string) *WSMessage {
	return &WSMessage{
		Type:       ErrorEvent,
		EmployeeID: employeeID,
		Data: ErrorPayload{
			Message: message,
		},
	}
}
