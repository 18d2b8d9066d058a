// Package meetoutdoors собирает HTTP API: хранилище, кеш снапшотов туров,
// публикацию изменений в шину и маршруты.
package meetoutdoors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/meetoutdoors/meetoutdoors-api/internal/cache"
	"github.com/meetoutdoors/meetoutdoors-api/internal/config"
	"github.com/meetoutdoors/meetoutdoors-api/internal/http/handlers/health"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/jwt"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/sl"
	"github.com/meetoutdoors/meetoutdoors-api/internal/migrations"
	"github.com/meetoutdoors/meetoutdoors-api/internal/rabbitmq"
	chatsvc "github.com/meetoutdoors/meetoutdoors-api/internal/services/chat"
	entsvc "github.com/meetoutdoors/meetoutdoors-api/internal/services/entitlement"
	ratingsvc "github.com/meetoutdoors/meetoutdoors-api/internal/services/rating"
	toursvc "github.com/meetoutdoors/meetoutdoors-api/internal/services/tour"
	"github.com/meetoutdoors/meetoutdoors-api/internal/storage/repository"
)

// App HTTP API сервиса.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New инициализирует зависимости и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "meetoutdoors.New"

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
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
	ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange, nil)
	if err != nil {
		_ = conn.Close()
		_ = cacheRedis.Close()
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	pub := rabbitmq.NewPublisher(ch, cfg.Exchange)

	services := Services{
		Entitlement: entsvc.NewService(db, pub, logger),
		Tours:       toursvc.NewService(db, cacheRedis, pub, cfg.Location(), logger),
		Chat:        chatsvc.NewService(db, pub, logger),
		Ratings:     ratingsvc.NewService(db, logger),
		Publisher:   pub,
		Tokens:      jwt.NewVerifier(cfg.JWTSecret),
		Health: map[string]health.Checker{
			"postgres": db.DB.PingContext,
			"redis":    func(ctx context.Context) error { return cacheRedis.Db.Ping(ctx).Err() },
			"rabbitmq": func(context.Context) error {
				if conn.IsClosed() {
					return amqp.ErrClosed
				}
				return nil
			},
		},
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, services)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err = a.server.Shutdown(timeoutCtx)
	}
	a.close()
	return err
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
