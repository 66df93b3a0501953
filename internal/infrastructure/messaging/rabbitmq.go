package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hilthontt/personnel/internal/infrastructure/contracts"
	"github.com/hilthontt/personnel/internal/infrastructure/logging"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
)

const (
	PersonnelExchange  = "personnel"
	DeadLetterExchange = "dlx"
)

const defaultRetryDelay = 5 * time.Second

var ErrConsumerClosed = errors.New("rabbitmq delivery channel closed")

type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// Retryable marks a handler error as transient. The delivery is requeued
// after a delay instead of going to the dead letter exchange.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryableError{err: err}
}

func IsRetryable(err error) bool {
	var retryable *retryableError
	return errors.As(err, &retryable)
}

type MessageHandler func(ctx context.Context, msg amqp.Delivery) error

type RabbitMQ struct {
	conn    *amqp.Connection
	Channel *amqp.Channel
	logger  logging.Logger

	publishMu  sync.Mutex
	prefetch   int
	retryDelay time.Duration
}

func NewRabbitMQ(uri string, prefetch int, logger logging.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	rmq := &RabbitMQ{
		conn:       conn,
		Channel:    ch,
		logger:     logger,
		prefetch:   prefetch,
		retryDelay: defaultRetryDelay,
	}

	if err := rmq.setupExchangesAndQueues(); err != nil {
		rmq.Close()
		return nil, err
	}

	return rmq, nil
}

func (r *RabbitMQ) Close() {
	if r.Channel != nil {
		r.Channel.Close()
	}
	if r.conn != nil {
		r.conn.Close()
	}
}

// Ping reports whether the broker connection is still open.
func (r *RabbitMQ) Ping(context.Context) error {
	if r.conn == nil || r.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	return nil
}

func (r *RabbitMQ) setupExchangesAndQueues() error {
	if err := r.Channel.ExchangeDeclare(
		PersonnelExchange, // name
		"topic",           // type
		true,              // durable
		false,             // auto-deleted
		false,             // internal
		false,             // no-wait
		nil,               // arguments
	); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", PersonnelExchange, err)
	}

	if err := r.setupDeadLetterExchange(); err != nil {
		return err
	}

	return r.declareAndBindQueue(HistoryReconcileQueue, []string{contracts.CommandHistoryPark}, PersonnelExchange)
}

func (r *RabbitMQ) setupDeadLetterExchange() error {
	if err := r.Channel.ExchangeDeclare(DeadLetterExchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare dead letter exchange: %w", err)
	}

	q, err := r.Channel.QueueDeclare(DeadLetterQueue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare dead letter queue: %w", err)
	}

	if err := r.Channel.QueueBind(q.Name, "#", DeadLetterExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind dead letter queue: %w", err)
	}

	return nil
}

func (r *RabbitMQ) declareAndBindQueue(queueName string, messageTypes []string, exchange string) error {
	args := amqp.Table{
		"x-dead-letter-exchange": DeadLetterExchange,
	}

	q, err := r.Channel.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		args,      // arguments with DLX config
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}

	for _, msg := range messageTypes {
		if err := r.Channel.QueueBind(
			q.Name,   // queue name
			msg,      // routing key
			exchange, // exchange
			false,
			nil,
		); err != nil {
			return fmt.Errorf("failed to bind queue to %s: %w", queueName, err)
		}
	}

	return nil
}

// PublishMessage sends a persistent JSON message to the personnel exchange,
// carrying the trace context in its headers.
func (r *RabbitMQ) PublishMessage(ctx context.Context, routingKey string, message contracts.AmqpMessage) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	headers := amqp.Table{}
	otel.GetTextMapPropagator().Inject(ctx, headerCarrier(headers))

	r.publishMu.Lock()
	defer r.publishMu.Unlock()

	if err := r.Channel.PublishWithContext(ctx,
		PersonnelExchange, // exchange
		routingKey,        // routing key
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    time.Now().UTC(),
			Headers:      headers,
			Body:         body,
		},
	); err != nil {
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}

	return nil
}

// ConsumeMessages blocks delivering messages from the shared queueName to
// handler until ctx ends. Each message reaches one consumer.
func (r *RabbitMQ) ConsumeMessages(ctx context.Context, queueName string, handler MessageHandler) error {
	ch, err := r.consumerChannel()
	if err != nil {
		return err
	}
	defer ch.Close()

	return r.consume(ctx, ch, queueName, handler)
}

// ConsumeBroadcast gives this process its own copy of every message with
// routingKey. The queue is server-named and goes away with the connection.
func (r *RabbitMQ) ConsumeBroadcast(ctx context.Context, routingKey string, handler MessageHandler) error {
	ch, err := r.consumerChannel()
	if err != nil {
		return err
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare broadcast queue for %s: %w", routingKey, err)
	}
	if err := ch.QueueBind(q.Name, routingKey, PersonnelExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind broadcast queue for %s: %w", routingKey, err)
	}

	return r.consume(ctx, ch, q.Name, handler)
}

func (r *RabbitMQ) consumerChannel() (*amqp.Channel, error) {
	ch, err := r.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open consumer channel: %w", err)
	}

	if r.prefetch > 0 {
		if err := ch.Qos(r.prefetch, 0, false); err != nil {
			ch.Close()
			return nil, fmt.Errorf("failed to set QoS: %w", err)
		}
	}
	return ch, nil
}

func (r *RabbitMQ) consume(ctx context.Context, ch *amqp.Channel, queueName string, handler MessageHandler) error {
	msgs, err := ch.ConsumeWithContext(ctx,
		queueName, // queue
		"",        // consumer
		false,     // auto-ack
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		return fmt.Errorf("failed to consume %s: %w", queueName, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return ErrConsumerClosed
			}

			msgCtx := otel.GetTextMapPropagator().Extract(ctx, headerCarrier(msg.Headers))
			if err := r.settle(ctx, queueName, msg, handler(msgCtx, msg)); err != nil {
				return err
			}
		}
	}
}

// settle acks a handled message. A retryable failure is requeued after the
// retry delay, which also slows the consumer down while a dependency is out;
// any other failure is dead-lettered.
func (r *RabbitMQ) settle(ctx context.Context, queueName string, msg amqp.Delivery, handleErr error) error {
	if handleErr == nil {
		if err := msg.Ack(false); err != nil {
			return fmt.Errorf("failed to ack message: %w", err)
		}
		return nil
	}

	retry := IsRetryable(handleErr)
	r.logger.Error(logging.RabbitMQ, logging.ExternalService, "message handling failed", map[logging.ExtraKey]any{
		"Queue":              queueName,
		"MessageId":          msg.MessageId,
		"Requeue":            retry,
		logging.ErrorMessage: handleErr.Error(),
	})

	if retry {
		timer := time.NewTimer(r.retryDelay)
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
		timer.Stop()
	}

	if err := msg.Nack(false, retry); err != nil {
		return fmt.Errorf("failed to nack message: %w", err)
	}
	return nil
}

type headerCarrier amqp.Table

func (c headerCarrier) Get(key string) string {
	v, _ := c[key].(string)
	return v
}

func (c headerCarrier) Set(key, value string) {
	c[key] = value
}

func (c headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}
