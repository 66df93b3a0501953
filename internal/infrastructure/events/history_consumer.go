package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hilthontt/personnel/internal/domain"
	"github.com/hilthontt/personnel/internal/infrastructure/contracts"
	"github.com/hilthontt/personnel/internal/infrastructure/logging"
	"github.com/hilthontt/personnel/internal/infrastructure/messaging"
	amqp "github.com/rabbitmq/amqp091-go"
)

type BroadcastConsumer interface {
	ConsumeBroadcast(ctx context.Context, routingKey string, handler messaging.MessageHandler) error
}

type HistoryListener interface {
	HistoryRecorded(ctx context.Context, history *domain.EmployeeHistory) error
}

// HistoryEventConsumer hands every history.recorded event, whichever instance
// wrote it, to a local listener.
type HistoryEventConsumer struct {
	consumer BroadcastConsumer
	listener HistoryListener
	logger   logging.Logger
}

func NewHistoryEventConsumer(consumer BroadcastConsumer, listener HistoryListener, logger logging.Logger) *HistoryEventConsumer {
	return &HistoryEventConsumer{
		consumer: consumer,
		listener: listener,
		logger:   logger,
	}
}

func (c *HistoryEventConsumer) Listen(ctx context.Context) error {
	c.logger.Info(logging.RabbitMQ, logging.HistoryNotify, "history event consumer listening", map[logging.ExtraKey]any{
		"RoutingKey": contracts.EventHistoryRecorded,
	})
	return c.consumer.ConsumeBroadcast(ctx, contracts.EventHistoryRecorded, c.Handle)
}

func (c *HistoryEventConsumer) Handle(ctx context.Context, msg amqp.Delivery) error {
	var message contracts.AmqpMessage
	if err := json.Unmarshal(msg.Body, &message); err != nil {
		return fmt.Errorf("unmarshal amqp message: %w", err)
	}

	var payload messaging.HistoryEventData
	if err := json.Unmarshal(message.Data, &payload); err != nil {
		return fmt.Errorf("unmarshal history event: %w", err)
	}
	if payload.History.ID.IsZero() {
		return fmt.Errorf("history event for employee %s has no id", message.EmployeeID)
	}

	return c.listener.HistoryRecorded(ctx, &payload.History)
}
