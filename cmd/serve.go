package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/footdata/transfermarkt-api/internal/api"
	"github.com/footdata/transfermarkt-api/internal/config"
	"github.com/footdata/transfermarkt-api/internal/logging"
	"github.com/footdata/transfermarkt-api/internal/monitor"
	"github.com/footdata/transfermarkt-api/internal/scraper"
	"github.com/footdata/transfermarkt-api/internal/tm"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	mon := monitor.New()
	sessions := scraper.NewSessionManager(&cfg, mon, logging.Named(logger, "sessions"))
	retrier := scraper.NewRetrier(cfg.HTTP.MaxRetries, cfg.DelayMin(), cfg.DelayMax(), mon, logging.Named(logger, "retry"))

	var renderer *scraper.Renderer
	if cfg.Browser.Enabled {
		renderer = scraper.NewRenderer(&cfg, mon, logging.Named(logger, "browser"))
	}

	fetcher := scraper.NewFetcher(&cfg, sessions, retrier, renderer, mon, logging.Named(logger, "fetcher"))
	service := tm.NewScraper(fetcher, &cfg, logging.Named(logger, "tm"))
	server := api.NewServer(&cfg, service, fetcher, mon, logging.Named(logger, "api"))

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.Int("port", cfg.Server.Port),
			zap.Bool("browser_fallback", cfg.Browser.Enabled),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
