package messaging

import (
	"time"

	"github.com/hilthontt/personnel/internal/domain"
)

const (
	HistoryReconcileQueue = "history_reconcile"
	DeadLetterQueue       = "dead_letter_queue"
)

type HistoryEventData struct {
	History domain.EmployeeHistory `json:"history"`
}

// ParkedHistoryData is a history record whose write failed, kept with the
// failure so it can be re-appended.
type ParkedHistoryData struct {
	History  domain.EmployeeHistory `json:"history"`
	Cause    string                 `json:"cause"`
	ParkedAt time.Time              `json:"parkedAt"`
}
