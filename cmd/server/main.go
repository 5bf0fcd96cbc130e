package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mcoot/forceteam/internal/api"
	"github.com/mcoot/forceteam/internal/config"
	"github.com/mcoot/forceteam/internal/factory"
	"github.com/mcoot/forceteam/internal/services/auth"
	redisstorage "github.com/mcoot/forceteam/internal/storage/redis"
	"github.com/mcoot/forceteam/internal/transport/redisbus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	level, _ := cfg.SlogLevel()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	factoryCfg := factory.Config{
		Logger:          logger,
		TickInterval:    cfg.TickInterval,
		StorageType:     cfg.StorageType,
		JournalCapacity: cfg.JournalCapacity,
		SQLitePath:      cfg.SQLitePath,
		AuthConfig: auth.Config{
			TokenHash:   cfg.AdminTokenHash,
			VerifiedTTL: auth.DefaultConfig().VerifiedTTL,
		},
	}
	if cfg.RedisURL != "" {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}
	if cfg.RedisBusEnabled {
		factoryCfg.Bus = &redisbus.Config{
			CommandChannel: cfg.RedisCommandChannel,
			ReportChannel:  cfg.RedisReportChannel,
			ReplyChannel:   cfg.RedisReplyChannel,
		}
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if !app.AuthService.Enabled() {
		logger.Warn("ADMIN_TOKEN_HASH not set, admin API is unauthenticated")
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		AuthService: app.AuthService,
		Commands:    app.Commands,
		Journal:     app.Journal,
		Hub:         app.Hub,
		Sim:         app.Sim,
		HostMode:    cfg.HostMode,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.HTTPHost
	serverConfig.Port = cfg.HTTPPort
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Loop.Run(gctx)
	})
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received")
		// Ends open event streams so Shutdown doesn't wait on them
		app.Hub.Close()
		return server.Shutdown(context.Background())
	})
	g.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				app.AuthService.CleanExpired()
			}
		}
	})
	if app.Subscriber != nil {
		g.Go(func() error {
			return app.Subscriber.Run(gctx)
		})
	}

	err = g.Wait()
	app.Close()
	if err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
