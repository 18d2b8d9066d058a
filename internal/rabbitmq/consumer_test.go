package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/logger"
)

// ackRecorder запоминает подтверждения доставки и момент, когда они пришли.
type ackRecorder struct {
	mu      sync.Mutex
	acked   bool
	nacked  bool
	requeue bool
	at      time.Time
}

func (a *ackRecorder) Ack(uint64, bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acked, a.at = true, time.Now()
	return nil
}

func (a *ackRecorder) Nack(_ uint64, _ bool, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nacked, a.requeue, a.at = true, requeue, time.Now()
	return nil
}

func (a *ackRecorder) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func TestHandle_Outcomes(t *testing.T) {
	const delay = 150 * time.Millisecond

	tests := []struct {
		name        string
		handlerErr  error
		wantAck     bool
		wantRequeue bool
		wantDelay   bool
	}{
		{name: "success is acked at once", wantAck: true},
		{name: "discard is dropped at once", handlerErr: fmt.Errorf("bad: %w", ErrDiscard)},
		{name: "transient error is requeued after a pause", handlerErr: errors.New("redis down"), wantRequeue: true, wantDelay: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &ackRecorder{}
			d := amqp.Delivery{Acknowledger: rec, DeliveryTag: 1}

			start := time.Now()
			handle(context.Background(), logger.Discard(), d, func(context.Context, []byte) error {
				return tt.handlerErr
			}, delay)

			assert.Equal(t, tt.wantAck, rec.acked)
			assert.Equal(t, !tt.wantAck, rec.nacked)
			assert.Equal(t, tt.wantRequeue, rec.requeue)
			if tt.wantDelay {
				assert.GreaterOrEqual(t, rec.at.Sub(start), delay)
			} else {
				assert.Less(t, rec.at.Sub(start), delay)
			}
		})
	}
}

func TestHandle_CancelCutsRequeuePauseShort(t *testing.T) {
	rec := &ackRecorder{}
	d := amqp.Delivery{Acknowledger: rec, DeliveryTag: 1}

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	start := time.Now()
	handle(ctx, logger.Discard(), d, func(context.Context, []byte) error {
		return errors.New("temporary")
	}, time.Minute)

	require.True(t, rec.nacked)
	assert.True(t, rec.requeue, "message goes back to the queue on shutdown")
	assert.Less(t, time.Since(start), 5*time.Second)
}
