// @title           Admin Backend API
// @version         1.0
// @description     Multi-tenant admin backend: super admins, admins, clients and users.
// @BasePath        /api
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/brahmakosh/admin-backend/internal/app"
	"github.com/brahmakosh/admin-backend/internal/infrastructure/config"
	"github.com/brahmakosh/admin-backend/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log := logger.Init(logger.Options{Level: "info"})
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "admin-backend",
	})

	boot := logger.For("bootstrap")

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		boot.Fatal().Err(err).Msg("failed to start")
	}

	if err := application.Run(ctx); err != nil {
		boot.Fatal().Err(err).Msg("server exited with error")
	}
}
