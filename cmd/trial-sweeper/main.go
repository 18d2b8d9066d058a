package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/meetoutdoors/meetoutdoors-api/internal/app/trialsweeper"
	"github.com/meetoutdoors/meetoutdoors-api/internal/config"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/logger"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	log.Info("starting trial-sweeper", slog.String("env", cfg.Env))
	log.Debug("config loaded", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := trialsweeper.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	log.Info("trial-sweeper stopped gracefully")
}
