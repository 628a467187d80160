package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kurihiro0119/github-portfolio/internal/api"
	"github.com/kurihiro0119/github-portfolio/internal/app"
)

func main() {
	// Load configuration and components
	a, err := app.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	cfg := a.Config
	logger := a.Logger

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Background refresh, disabled when the interval is zero
	go a.Store.RunRefresh(ctx, cfg.RefreshInterval)

	// Initialize handler
	handler := api.NewHandler(a.Store, a.Renderer, a.Projector, a.Content, logger)

	// Setup routes
	router := api.SetupRoutes(handler, logger)

	addr := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("Server shutdown did not complete")
		}
	}()

	logger.WithFields(logrus.Fields{
		"addr":   addr,
		"user":   cfg.GitHubUser,
		"locale": cfg.Locale,
	}).Info("Starting portfolio server")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Error("Failed to start server")
		os.Exit(1)
	}
}
