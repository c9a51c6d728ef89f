package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/MikeSquared-Agency/MacMatch/internal/api"
	"github.com/MikeSquared-Agency/MacMatch/internal/catalog"
	"github.com/MikeSquared-Agency/MacMatch/internal/collector"
	"github.com/MikeSquared-Agency/MacMatch/internal/hermes"
	"github.com/MikeSquared-Agency/MacMatch/internal/recommend"
	"github.com/MikeSquared-Agency/MacMatch/internal/scoring"
	"github.com/MikeSquared-Agency/MacMatch/internal/store"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the API and metrics servers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

// newComposer wires the scoring engine from configuration.
func (a *app) newComposer() (*recommend.Composer, error) {
	templates := recommend.NewTemplates()
	if _, err := templates.Table(); err != nil {
		return nil, fmt.Errorf("persona templates: %w", err)
	}
	scorer := scoring.NewScorer(a.cfg.Scoring.Efficiency, a.logger)
	ranker := scoring.NewRanker(scorer, a.logger)
	return recommend.NewComposer(ranker, templates, a.cfg.Carbon, a.logger), nil
}

func (a *app) serve(ctx context.Context) error {
	cfg, logger := a.cfg, a.logger

	db, err := store.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("open profile store: %w", err)
	}
	defer db.Close()
	logger.Info("profile store ready", "driver", cfg.Database.Driver)

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	// Collector (optional)
	var collectorClient collector.Client
	if cfg.Collector.URL != "" {
		collectorClient = collector.NewHTTPClient(cfg.Collector.URL, cfg.Collector.Token)
		logger.Info("collector fallback enabled", "url", cfg.Collector.URL)
	}

	composer, err := a.newComposer()
	if err != nil {
		return err
	}
	source := catalog.NewFileSource(cfg.Catalog.MacsPath, cfg.Catalog.AssumptionsPath, logger)

	if cfg.Server.AdminToken == "" {
		logger.Warn("admin token not set, admin endpoints are unauthenticated")
	}

	apiServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           api.NewRouter(db, hermesClient, collectorClient, source, composer, cfg.Server, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler:           api.NewMetricsRouter(db),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("API server starting", "port", cfg.Server.Port)
		return listen(apiServer)
	})
	g.Go(func() error {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		return listen(metricsServer)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.Join(apiServer.Shutdown(shutdownCtx), metricsServer.Shutdown(shutdownCtx))
	})

	err = g.Wait()
	logger.Info("shutdown complete")
	return err
}

func listen(srv *http.Server) error {
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	}
	return nil
}
