// Command stubapi serves the marketplace REST API for local development and
// integration testing.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/barbercommunity/marketplace/internal/api"
	"github.com/barbercommunity/marketplace/internal/api/handler"
	"github.com/barbercommunity/marketplace/internal/core/ports"
	"github.com/barbercommunity/marketplace/internal/core/service"
	"github.com/barbercommunity/marketplace/internal/infrastructure/config"
	mongostore "github.com/barbercommunity/marketplace/internal/infrastructure/db/mongo"
	"github.com/barbercommunity/marketplace/internal/infrastructure/memory"
	"github.com/barbercommunity/marketplace/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadAPI(ctx)
	if err != nil {
		l := logger.Init(logger.Options{Level: "error"})
		l.Fatal().Err(err).Msg("loading configuration")
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	var (
		users     ports.AuthRepository
		readiness = map[string]handler.Pinger{}
	)
	if cfg.Mongo.URI != "" {
		conn, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Fatal().Err(err).Msg("connecting to mongodb")
		}
		defer func() {
			if err := conn.Close(context.Background()); err != nil {
				log.Warn().Err(err).Msg("disconnecting mongodb")
			}
		}()

		repo := mongostore.NewAuthRepository(conn.DB)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("creating user indexes")
		}
		users = repo
		readiness["mongodb"] = conn
		log.Info().Str("database", cfg.Mongo.Database).Msg("users stored in mongodb")
	} else {
		users = memory.NewUserRepository()
		log.Info().Msg("users stored in memory")
	}

	e := api.NewRouter(api.Dependencies{
		AuthService: service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL),
		Catalog:     memory.SeedCatalog(),
		JWTSecret:   cfg.JWTSecret,
		Log:         log,
		Readiness:   readiness,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("stub api listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
