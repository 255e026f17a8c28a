package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/gomarket/market-system/internal/api"
	"github.com/gomarket/market-system/internal/infrastructure/config"
	"github.com/gomarket/market-system/internal/infrastructure/db/postgres"
	redisdb "github.com/gomarket/market-system/internal/infrastructure/db/redis"
	"github.com/gomarket/market-system/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Setup("info", true, nil)
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Setup(cfg.LogLevel, cfg.Env == "development", nil)

	if cfg.SessionSecret == "" {
		log.Fatal().Msg("SESSION_SECRET must be set")
	}

	db, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer db.Close()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	// Seed the bootstrap admin so a privileged account always exists.
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash admin password")
	}
	if err := postgres.NewUserRepository(db).EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminName, string(hash)); err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin account")
	}

	e, err := api.NewRouter(db, rdb, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
