// Package app wires configuration, storage and services into a runnable
// HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/brahmakosh/admin-backend/internal/api"
	"github.com/brahmakosh/admin-backend/internal/api/handler"
	"github.com/brahmakosh/admin-backend/internal/core/ports"
	"github.com/brahmakosh/admin-backend/internal/core/service"
	"github.com/brahmakosh/admin-backend/internal/infrastructure/config"
	"github.com/brahmakosh/admin-backend/internal/infrastructure/crypto"
	"github.com/brahmakosh/admin-backend/internal/infrastructure/db/memstore"
	"github.com/brahmakosh/admin-backend/internal/infrastructure/db/mongo"
	"github.com/brahmakosh/admin-backend/internal/infrastructure/db/redis"
)

// Application owns the server and its connections.
type Application struct {
	cfg    *config.Config
	log    zerolog.Logger
	echo   *echo.Echo
	mongo  *mongodriver.Client
	redis  *goredis.Client
	probes map[string]handler.Pinger
}

// New connects the configured store and cache, bootstraps the super admin
// and builds the router.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Application, error) {
	app := &Application{cfg: cfg, log: log, probes: map[string]handler.Pinger{}}

	stores, err := app.initStores(ctx)
	if err != nil {
		return nil, err
	}

	var cache ports.OverviewCache
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			app.close()
			return nil, err
		}
		app.redis = rdb
		oc := redis.NewOverviewCache(rdb)
		app.probes["redis"] = oc
		cache = oc
		log.Info().Str("addr", cfg.Redis.Addr).Msg("dashboard cache enabled")
	}

	svc, auth := Wire(cfg, stores, cache, log)
	if err := auth.EnsureSuperAdmin(ctx, cfg.SuperAdmin.Email, cfg.SuperAdmin.Password); err != nil {
		app.close()
		return nil, err
	}

	app.echo = api.NewRouter(svc, api.Options{
		Log:         log,
		Diagnostics: cfg.Development(),
		Probes:      app.probes,
	})
	return app, nil
}

func (app *Application) initStores(ctx context.Context) (ports.Stores, error) {
	switch app.cfg.StoreDriver {
	case config.StoreMemory:
		app.log.Warn().Msg("using in-memory store, data is lost on restart")
		app.probes["store"] = handler.PingFunc(memstore.Ping)
		return memstore.New(), nil
	default:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: app.cfg.Mongo.URI, Database: app.cfg.Mongo.Database})
		if err != nil {
			return ports.Stores{}, err
		}
		app.mongo = client
		app.probes["mongodb"] = mongo.NewPinger(client)

		stores, err := mongo.NewStores(ctx, db)
		if err != nil {
			app.close()
			return ports.Stores{}, err
		}
		app.log.Info().Str("database", app.cfg.Mongo.Database).Msg("connected to mongodb")
		return stores, nil
	}
}

// Wire builds the core services over stores. cache may be nil.
func Wire(cfg *config.Config, stores ports.Stores, cache ports.OverviewCache, log zerolog.Logger) (api.Services, *service.AuthService) {
	hasher := crypto.NewBcryptHasher(cfg.BcryptCost)
	tokens := service.NewTokenService(cfg.JWTSecret)
	scoper := service.NewScoper(stores.Clients)
	ttl := cfg.Redis.CacheTTL

	auth := service.NewAuthService(stores, hasher, tokens, log.With().Str("component", "auth").Logger())
	return api.Services{
		Authenticator: service.NewAuthenticator(tokens, stores, log.With().Str("component", "authn").Logger()),
		Auth:          auth,
		Admins:        service.NewAdminService(stores, hasher, cache, ttl, log.With().Str("component", "admins").Logger()),
		Approvals:     service.NewApprovalService(stores, log.With().Str("component", "approvals").Logger()),
		Clients:       service.NewClientService(stores, hasher, scoper, cache, ttl, log.With().Str("component", "clients").Logger()),
		Users:         service.NewUserService(stores, hasher, scoper, cache, ttl, log.With().Str("component", "users").Logger()),
	}, auth
}

// Handler exposes the router, mainly for tests.
func (app *Application) Handler() http.Handler {
	return app.echo
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (app *Application) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort("", app.cfg.Port),
		Handler:           app.echo,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		app.log.Info().Str("port", app.cfg.Port).Str("env", app.cfg.Env).Msg("server starting")
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		app.close()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		app.log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGrace)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	if err != nil {
		app.log.Error().Err(err).Msg("graceful shutdown failed")
		_ = srv.Close()
	}
	app.close()
	app.log.Info().Msg("server stopped")
	return err
}

func (app *Application) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.log.Error().Err(err).Msg("closing redis")
		}
		app.redis = nil
	}
	if app.mongo != nil {
		if err := app.mongo.Disconnect(ctx); err != nil {
			app.log.Error().Err(err).Msg("closing mongodb")
		}
		app.mongo = nil
	}
}
