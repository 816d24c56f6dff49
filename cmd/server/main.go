package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/CopperKoi/Koi-Blog/internal/app"
	"github.com/CopperKoi/Koi-Blog/internal/config"
	"github.com/CopperKoi/Koi-Blog/internal/logger"
)

func main() {
	_ = godotenv.Load()

	logger.Init()
	cfg := config.Load()

	// Fail-closed: a misconfigured production deployment refuses to start.
	if err := cfg.ValidateProduction(); err != nil {
		logger.Fatal("security misconfiguration", map[string]any{
			"error": err.Error(),
		})
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize app", map[string]any{
			"error": err.Error(),
		})
	}

	go func() {
		if err := application.Run(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", map[string]any{
				"error": err.Error(),
			})
		}
	}()

	logger.Info("koi-blog started", map[string]any{
		"port": cfg.AppPort,
		"env":  cfg.DeploymentEnv,
	})

	<-ctx.Done() // wait for Ctrl+C

	logger.Info("shutdown signal received", nil)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		10*time.Second,
	)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("graceful shutdown failed", map[string]any{
			"error": err.Error(),
		})
	}

	logger.Info("koi-blog stopped cleanly", nil)
}
