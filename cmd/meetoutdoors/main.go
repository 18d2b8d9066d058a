// Package main MeetOutdoors API
//
// @title           MeetOutdoors API
// @version         1.0
// @description     API для совместных походов: туры, участники, чат, оценки и премиум-доступ

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/meetoutdoors/meetoutdoors-api/docs"
	"github.com/meetoutdoors/meetoutdoors-api/internal/app/meetoutdoors"
	"github.com/meetoutdoors/meetoutdoors-api/internal/config"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/logger"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	log.Info("starting meetoutdoors", slog.String("env", cfg.Env))
	log.Debug("config loaded", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := meetoutdoors.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	log.Info("meetoutdoors stopped gracefully")
}
