package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hilthontt/personnel/internal/domain"
	"github.com/hilthontt/personnel/internal/infrastructure/contracts"
	"github.com/hilthontt/personnel/internal/infrastructure/messaging"
)

type Publisher interface {
	PublishMessage(ctx context.Context, routingKey string, message contracts.AmqpMessage) error
}

// HistoryPublisher announces recorded history and parks records whose write
// failed on the reconcile queue.
type HistoryPublisher struct {
	publisher Publisher
	now       func() time.Time
}

func NewHistoryPublisher(publisher Publisher) *HistoryPublisher {
	return &HistoryPublisher{
		publisher: publisher,
		now:       time.Now,
	}
}

func (p *HistoryPublisher) HistoryRecorded(ctx context.Context, history *domain.EmployeeHistory) error {
	payload := messaging.HistoryEventData{
		History: *history,
	}

	historyEventJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.publisher.PublishMessage(ctx, contracts.EventHistoryRecorded, contracts.AmqpMessage{
		EmployeeID: history.EmployeeID.Hex(),
		Data:       historyEventJSON,
	})
}

func (p *HistoryPublisher) Park(ctx context.Context, history *domain.EmployeeHistory, cause error) error {
	payload := messaging.ParkedHistoryData{
		History:  *history,
		ParkedAt: p.now().UTC(),
	}
	if cause != nil {
		payload.Cause = cause.Error()
	}

	parkedJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.publisher.PublishMessage(ctx, contracts.CommandHistoryPark, contracts.AmqpMessage{
		EmployeeID: history.EmployeeID.Hex(),
		Data:       parkedJSON,
	})
}
