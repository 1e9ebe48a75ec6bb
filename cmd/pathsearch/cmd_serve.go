package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/buildinfo"
	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/httpapi"
	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.HTTP.Addr = addr
			}
			return a.runServe()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

func (a *app) runServe() error {
	logger := a.logger
	if a.cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := metrics.Setup(a.cfg.Metrics.Enabled, ""); err != nil {
		return fmt.Errorf("metrics setup: %w", err)
	}

	svc, err := a.service()
	if err != nil {
		return err
	}
	router := httpapi.NewRouter(logger, httpapi.RouterOptions{
		Service:            svc,
		AllowedOrigins:     a.cfg.HTTP.AllowedOrigins,
		RateLimitPerMinute: a.cfg.HTTP.RateLimitPerMinute,
		RateLimitBurst:     a.cfg.HTTP.RateLimitBurst,
		UIDir:              a.cfg.HTTP.UIDir,
		Version:            buildinfo.Version,
	})
	srv := httpapi.New(logger, a.cfg.HTTP, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("server stopped unexpectedly", "error", err)
			runErr = err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	return runErr
}
