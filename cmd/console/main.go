// Package main provides the web console entry point for the league panel.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/league-panel/internal/adapter"
	"github.com/league-panel/internal/config"
	"github.com/league-panel/internal/console"
	"github.com/league-panel/internal/credentials"
	"github.com/league-panel/internal/logging"
	"github.com/league-panel/internal/session"
	"github.com/league-panel/internal/storage"
)

func main() {
	fmt.Println("League Panel Console")
	log.Println("Console starting...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize structured logging
	logging.InitGlobalLogger(logging.ParseLogLevel(cfg.Logging.Level), logging.ParseLogFormat(cfg.Logging.Format))
	logger := logging.GetGlobalLogger()
	logger.WithFields(map[string]interface{}{
		"level":  cfg.Logging.Level,
		"format": cfg.Logging.Format,
	}).Info("Structured logging initialized")

	gateway := adapter.NewGateway(cfg.API.BaseURL, cfg.API.Timeout)
	client := adapter.NewClient(gateway)
	sessions := session.NewManager(client.Auth, cfg.Credentials.TokenTTL, cfg.Credentials.UsernameTTL)

	logger.WithFields(map[string]interface{}{
		"api":     gateway.BaseURL(),
		"timeout": cfg.API.Timeout.String(),
	}).Info("Backend gateway configured")

	// Credential persistence: browser cookies, or server-side entries in Redis
	var factory credentials.Factory = credentials.CookieFactory{Secure: cfg.Credentials.CookieSecure}
	if cfg.Credentials.Backend == config.BackendRedis {
		redis, err := storage.NewRedisCache(&cfg.Database.Redis)
		if err != nil {
			logger.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer redis.Close()

		factory = credentials.RedisFactory{
			Cache:      redis,
			Secure:     cfg.Credentials.CookieSecure,
			SessionTTL: cfg.Credentials.UsernameTTL,
		}
		logger.Info("Redis credential store enabled")
	}

	// Audit entries are always logged; Postgres persistence is opt-in
	var audit console.AuditRecorder
	if cfg.Audit.Enabled {
		if err := storage.RunMigrations(cfg.Database.Postgres.URL(), ""); err != nil {
			logger.WithError(err).Fatal("Failed to migrate audit schema")
		}

		postgres, err := storage.NewPostgresDB(context.Background(), &cfg.Database.Postgres)
		if err != nil {
			logger.WithError(err).Fatal("Failed to connect to Postgres")
		}
		defer postgres.Close()

		audit = storage.NewAuditRepository(postgres)
		logger.Info("Audit log persistence enabled")
	}

	serverConfig := &console.ServerConfig{
		Host:               cfg.Server.Host,
		Port:               cfg.Server.Port,
		PageSize:           cfg.Server.PageSize,
		CookieSecure:       cfg.Credentials.CookieSecure,
		ReadTimeout:        15 * time.Second,
		WriteTimeout:       cfg.API.Timeout + 15*time.Second,
		IdleTimeout:        60 * time.Second,
		ShutdownTimeout:    10 * time.Second,
		LoginRatePerMinute: cfg.Login.RatePerMinute,
		LoginBurst:         cfg.Login.Burst,
	}

	server := console.NewServer(serverConfig, client, sessions, factory, audit)

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Console failed to start")
		}
	}()

	logger.WithFields(map[string]interface{}{
		"host": cfg.Server.Host,
		"port": cfg.Server.Port,
	}).Info("Console started successfully")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down console...")

	ctx, cancel := context.WithTimeout(context.Background(), serverConfig.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Console forced to shutdown")
	}

	logger.Info("Console exited")
}
