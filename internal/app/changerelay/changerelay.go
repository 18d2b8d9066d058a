// Package changerelay собирает потребителя уведомлений об изменениях строк.
package changerelay

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/meetoutdoors/meetoutdoors-api/internal/cache"
	"github.com/meetoutdoors/meetoutdoors-api/internal/config"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/sl"
	"github.com/meetoutdoors/meetoutdoors-api/internal/rabbitmq"
	entsvc "github.com/meetoutdoors/meetoutdoors-api/internal/services/entitlement"
	"github.com/meetoutdoors/meetoutdoors-api/internal/services/relay"
	toursvc "github.com/meetoutdoors/meetoutdoors-api/internal/services/tour"
	"github.com/meetoutdoors/meetoutdoors-api/internal/storage/repository"
)

// App ретранслятор изменений.
type App struct {
	relay  *relay.Service
	queue  string
	db     *repository.Storage
	cache  *cache.Cache
	conn   *amqp.Connection
	ch     *amqp.Channel
	logger *slog.Logger
}

// New создает приложение.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "changerelay.New"

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := repository.WaitReady(ctx, db, 10, 3*time.Second); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	conn, err := rabbitmq.Connect(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.MaxRetries, cfg.RetryDelay)
	if err != nil {
		_ = cacheRedis.Close()
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange, rabbitmq.RelayQueues(cfg.Queue))
	if err != nil {
		_ = conn.Close()
		_ = cacheRedis.Close()
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pub := rabbitmq.NewPublisher(ch, cfg.Exchange)
	eval := entsvc.NewService(db, pub, logger)
	tours := toursvc.NewService(db, cacheRedis, pub, cfg.Location(), logger)

	return &App{
		relay:  relay.NewService(tours, eval, logger),
		queue:  cfg.Queue,
		db:     db,
		cache:  cacheRedis,
		conn:   conn,
		ch:     ch,
		logger: logger,
	}, nil
}

// Run потребляет очередь до отмены ctx и дожидается обработчиков в работе.
func (a *App) Run(ctx context.Context) error {
	done, err := rabbitmq.ConsumerMessage(ctx, a.logger, a.ch, a.queue, a.relay.Handle)
	if err != nil {
		a.close()
		return err
	}
	a.logger.Info("change relay started", slog.String("queue", a.queue))

	<-done
	a.logger.Info("change relay stopped")
	a.close()
	return nil
}

func (a *App) close() {
	if err := a.ch.Close(); err != nil {
		a.logger.Warn("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Warn("failed to close rabbitmq connection", sl.Err(err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Warn("failed to close redis", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", sl.Err(err))
	}
}
