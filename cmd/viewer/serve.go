package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/p-blackswan/arkide-viewer/internal/guidelines"
	"github.com/p-blackswan/arkide-viewer/internal/health"
	"github.com/p-blackswan/arkide-viewer/internal/metrics"
	"github.com/p-blackswan/arkide-viewer/internal/server"
	"github.com/p-blackswan/arkide-viewer/internal/viewer"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	logger.Info().
		Str("environment", cfg.Environment).
		Str("addr", cfg.HTTPAddr).
		Str("api_base_url", cfg.APIBaseURL).
		Int("fetch_attempts", cfg.FetchAttempts).
		Msg("starting project viewer")

	bundle, err := guidelines.Embedded()
	if err != nil {
		return err
	}

	m := metrics.New()
	client := newAPIClient()
	client.SetObserver(func(status string, elapsed time.Duration) {
		m.ObserveUpstream(status, elapsed.Seconds())
	})

	checker := health.NewChecker(logger)
	checker.Register("arkide_api", func(ctx context.Context) health.Status {
		// The page still renders its error state when the API is down.
		if err := client.Ping(ctx); err != nil {
			return health.StatusDegraded
		}
		return health.StatusOK
	})

	loader := viewer.NewLoader(client, viewer.Options{
		CacheControl: cfg.PageCacheControl,
		Recorder:     m,
	}, logger)

	srv := server.New(server.Config{
		ListenAddr:  cfg.HTTPAddr,
		CORSOrigins: cfg.CORSOrigins,
		RateLimit: server.RateLimitConfig{
			RPS:   cfg.RateLimitRPS,
			Burst: cfg.RateLimitBurst,
		},
	}, loader, bundle, checker, m, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return err
		}
		return errors.New("HTTP server stopped unexpectedly")
	}

	if err := srv.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
		return err
	}
	logger.Info().Msg("project viewer stopped")
	return nil
}
