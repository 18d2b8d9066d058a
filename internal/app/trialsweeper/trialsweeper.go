// Package trialsweeper собирает фоновый процесс проверки пробных периодов.
package trialsweeper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/meetoutdoors/meetoutdoors-api/internal/config"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/sl"
	"github.com/meetoutdoors/meetoutdoors-api/internal/rabbitmq"
	entsvc "github.com/meetoutdoors/meetoutdoors-api/internal/services/entitlement"
	"github.com/meetoutdoors/meetoutdoors-api/internal/services/sweeper"
	"github.com/meetoutdoors/meetoutdoors-api/internal/storage/repository"
)

// App процесс проверки пробных периодов.
type App struct {
	sweeper *sweeper.Service
	db      *repository.Storage
	conn    *amqp.Connection
	ch      *amqp.Channel
	logger  *slog.Logger
}

// New создает приложение.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "trialsweeper.New"

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := repository.WaitReady(ctx, db, 10, 3*time.Second); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	conn, err := rabbitmq.Connect(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.MaxRetries, cfg.RetryDelay)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange, nil)
	if err != nil {
		_ = conn.Close()
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	eval := entsvc.NewService(db, rabbitmq.NewPublisher(ch, cfg.Exchange), logger)

	return &App{
		sweeper: sweeper.NewService(db, eval, cfg.SweepInterval, cfg.SweepBatch, logger),
		db:      db,
		conn:    conn,
		ch:      ch,
		logger:  logger,
	}, nil
}

// Run выполняет проходы до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	a.sweeper.Run(ctx)

	if err := a.ch.Close(); err != nil {
		a.logger.Warn("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Warn("failed to close rabbitmq connection", sl.Err(err))
	}
	return a.db.Close()
}
