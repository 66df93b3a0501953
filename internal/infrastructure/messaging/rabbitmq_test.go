package messaging

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hilthontt/personnel/internal/infrastructure/logging"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ackCall struct {
	ack     bool
	requeue bool
}

type fakeAcknowledger struct {
	calls []ackCall
}

func (a *fakeAcknowledger) Ack(uint64, bool) error {
	a.calls = append(a.calls, ackCall{ack: true})
	return nil
}

func (a *fakeAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	a.calls = append(a.calls, ackCall{requeue: requeue})
	return nil
}

func (a *fakeAcknowledger) Reject(_ uint64, requeue bool) error {
	a.calls = append(a.calls, ackCall{requeue: requeue})
	return nil
}

func TestRetryable(t *testing.T) {
	assert.NoError(t, Retryable(nil))

	cause := errors.New("no reachable servers")
	err := fmt.Errorf("re-append: %w", Retryable(cause))
	assert.True(t, IsRetryable(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "re-append: no reachable servers", err.Error())

	assert.False(t, IsRetryable(cause))
}

func TestSettle(t *testing.T) {
	r := &RabbitMQ{logger: logging.NewNop(), retryDelay: 10 * time.Millisecond}

	tests := []struct {
		name string
		err  error
		want ackCall
	}{
		{name: "handled is acked", err: nil, want: ackCall{ack: true}},
		{name: "permanent failure is dead-lettered", err: errors.New("malformed"), want: ackCall{}},
		{name: "transient failure is requeued", err: Retryable(errors.New("timeout")), want: ackCall{requeue: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acker := &fakeAcknowledger{}
			msg := amqp.Delivery{Acknowledger: acker, DeliveryTag: 1}

			require.NoError(t, r.settle(context.Background(), "q", msg, tt.err))
			assert.Equal(t, []ackCall{tt.want}, acker.calls)
		})
	}

	t.Run("requeue waits out the delay", func(t *testing.T) {
		acker := &fakeAcknowledger{}
		start := time.Now()
		require.NoError(t, r.settle(context.Background(), "q", amqp.Delivery{Acknowledger: acker}, Retryable(errors.New("timeout"))))
		assert.GreaterOrEqual(t, time.Since(start), r.retryDelay)
	})

	t.Run("shutdown cuts the delay short", func(t *testing.T) {
		slow := &RabbitMQ{logger: logging.NewNop(), retryDelay: time.Hour}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		acker := &fakeAcknowledger{}
		require.NoError(t, slow.settle(ctx, "q", amqp.Delivery{Acknowledger: acker}, Retryable(errors.New("timeout"))))
		assert.Equal(t, []ackCall{{requeue: true}}, acker.calls)
	})
}
