package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hilthontt/personnel/internal/domain"
	"github.com/hilthontt/personnel/internal/infrastructure/contracts"
	"github.com/hilthontt/personnel/internal/infrastructure/logging"
	"github.com/hilthontt/personnel/internal/infrastructure/messaging"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ReconcileApplied   = "applied"
	ReconcileDuplicate = "duplicate"
	ReconcileFailed    = "failed"
)

type Consumer interface {
	ConsumeMessages(ctx context.Context, queueName string, handler messaging.MessageHandler) error
}

type ReconcileMetrics interface {
	Reconciled(outcome string)
}

// HistoryReconciler re-appends parked history records with the ids they were
// given originally. A record that is already stored counts as applied.
type HistoryReconciler struct {
	consumer     Consumer
	histories    domain.EmployeeHistoryRepository
	logger       logging.Logger
	metrics      ReconcileMetrics
	writeTimeout time.Duration
}

func NewHistoryReconciler(
	consumer Consumer,
	histories domain.EmployeeHistoryRepository,
	logger logging.Logger,
	metrics ReconcileMetrics,
	writeTimeout time.Duration,
) *HistoryReconciler {
	return &HistoryReconciler{
		consumer:     consumer,
		histories:    histories,
		logger:       logger,
		metrics:      metrics,
		writeTimeout: writeTimeout,
	}
}

func (c *HistoryReconciler) Listen(ctx context.Context) error {
	c.logger.Info(logging.RabbitMQ, logging.Reconciliation, "history reconciler listening", map[logging.ExtraKey]any{
		"Queue": messaging.HistoryReconcileQueue,
	})
	return c.consumer.ConsumeMessages(ctx, messaging.HistoryReconcileQueue, c.Handle)
}

func (c *HistoryReconciler) Handle(ctx context.Context, msg amqp.Delivery) error {
	var message contracts.AmqpMessage
	if err := json.Unmarshal(msg.Body, &message); err != nil {
		c.observe(ReconcileFailed)
		return fmt.Errorf("unmarshal amqp message: %w", err)
	}

	var payload messaging.ParkedHistoryData
	if err := json.Unmarshal(message.Data, &payload); err != nil {
		c.observe(ReconcileFailed)
		return fmt.Errorf("unmarshal parked history: %w", err)
	}

	history := payload.History
	if history.ID.IsZero() || !history.Operation.Valid() {
		c.observe(ReconcileFailed)
		return fmt.Errorf("parked history for employee %s is malformed", message.EmployeeID)
	}
	if history.Changes == nil {
		history.Changes = []domain.FieldChange{}
	}

	writeCtx := ctx
	if c.writeTimeout > 0 {
		var cancel context.CancelFunc
		writeCtx, cancel = context.WithTimeout(ctx, c.writeTimeout)
		defer cancel()
	}

	extra := map[logging.ExtraKey]any{
		logging.EmployeeID: history.EmployeeID.Hex(),
		logging.HistoryID:  history.ID.Hex(),
		logging.Operation:  string(history.Operation),
	}

	if err := c.histories.Append(writeCtx, &history); err != nil {
		if errors.Is(err, domain.ErrHistoryExists) {
			c.observe(ReconcileDuplicate)
			c.logger.Info(logging.Audit, logging.Reconciliation, "parked history already stored", extra)
			return nil
		}
		// the record was valid, so the store is what failed; try it again later
		c.observe(ReconcileFailed)
		return messaging.Retryable(fmt.Errorf("re-append history %s: %w", history.ID.Hex(), err))
	}

	c.observe(ReconcileApplied)
	c.logger.Info(logging.Audit, logging.Reconciliation, "parked history re-appended", extra)
	return nil
}

func (c *HistoryReconciler) observe(outcome string) {
	if c.metrics != nil {
		c.metrics.Reconciled(outcome)
	}
}
