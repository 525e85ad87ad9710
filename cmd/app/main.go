package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/grubworks/grubbot/internal/config"
	"github.com/grubworks/grubbot/internal/database"
	"github.com/grubworks/grubbot/internal/database/postgres"
	"github.com/grubworks/grubbot/internal/handler"
	"github.com/grubworks/grubbot/internal/menu"
	"github.com/grubworks/grubbot/internal/order"
	"github.com/grubworks/grubbot/internal/router"
	"github.com/grubworks/grubbot/internal/server"
	"github.com/grubworks/grubbot/internal/slack"
)

const (
	dbMaxConns      = 10
	dbMaxIdleTime   = 5 * time.Minute
	dbMaxLifetime   = 30 * time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	initLogger(cfg)

	pool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConns, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	handler.InitValidator()

	sheetRepo := postgres.NewOrderSheetRepository(pool)
	menuRepo := postgres.NewMenuRepository(pool)

	orderService := order.NewService(sheetRepo, menuRepo)
	menuService := menu.NewService(menuRepo)
	messenger := slack.NewClient(cfg.SlackBotToken)
	mentionRouter := router.New(orderService, menuService, messenger, cfg.SlackBotUserID, nil)

	srv := server.NewServer(server.Config{
		Port:                   cfg.Port,
		APIKey:                 cfg.APIKey,
		SlackVerificationToken: cfg.SlackVerificationToken,
		SlackBotUserID:         cfg.SlackBotUserID,
	}, pool, orderService, menuService, menuRepo, mentionRouter)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		slog.Error("Forced shutdown", "error", err)
	}
	slog.Info("Server stopped")
}
