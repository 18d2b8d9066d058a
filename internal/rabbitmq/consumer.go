package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/sl"
)

// ErrDiscard возвращается обработчиком, если сообщение не имеет смысла
// обрабатывать повторно. Такое сообщение отклоняется без возврата в очередь.
var ErrDiscard = errors.New("discard message")

const maxInFlight = 10

// RequeueDelay пауза перед возвратом сообщения в очередь после временной
// ошибки, чтобы недоступная зависимость не получала то же сообщение без перерыва.
const RequeueDelay = 2 * time.Second

// ConsumerMessage создает потребителя сообщений из очереди RabbitMQ.
// Возвращенный канал закрывается, когда все запущенные обработчики завершились.
func ConsumerMessage(
	ctx context.Context,
	log *slog.Logger,
	ch *amqp.Channel,
	queueName string,
	handler func(context.Context, []byte) error,
) (<-chan struct{}, error) {
	const op = "rabbitmq.ConsumerMessage"
	delivery, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log = log.With(slog.String("op", op), slog.String("queue", queueName))
	done := make(chan struct{})
	sem := make(chan struct{}, maxInFlight)
	var wg sync.WaitGroup

	go func() {
		defer close(done)
		defer wg.Wait()
		for {
			select {
			case d, ok := <-delivery:
				if !ok {
					return
				}
				sem <- struct{}{}
				wg.Add(1)
				go func(d amqp.Delivery) {
					defer wg.Done()
					defer func() { <-sem }()
					handle(ctx, log, d, handler, RequeueDelay)
				}(d)
			case <-ctx.Done():
				return
			}
		}
	}()
	return done, nil
}

// handle обрабатывает одно сообщение. При временной ошибке сообщение
// возвращается в очередь через delay; отмена ctx прерывает ожидание.
func handle(ctx context.Context, log *slog.Logger, d amqp.Delivery, handler func(context.Context, []byte) error, delay time.Duration) {
	err := handler(ctx, d.Body)
	if err == nil {
		if ackErr := d.Ack(false); ackErr != nil {
			log.Error("failed to ack message", sl.Err(ackErr))
		}
		return
	}

	requeue := !errors.Is(err, ErrDiscard)
	log.Warn("message handling failed", sl.Err(err), slog.Bool("requeue", requeue))
	if requeue && delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
		}
	}
	if nackErr := d.Nack(false, requeue); nackErr != nil {
		log.Error("failed to nack message", sl.Err(nackErr))
	}
}
