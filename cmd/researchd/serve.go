package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/rickgao/niche-research/internal/feed"
	"github.com/rickgao/niche-research/internal/poller"
	"github.com/rickgao/niche-research/internal/server"
	"github.com/rickgao/niche-research/internal/version"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server, poller and market feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger := newLogger(os.Stdout, cfg.Log)
	logger.Info("starting researchd",
		"version", version.Version,
		"commit", version.Commit,
		"config", configPath,
		"source", cfg.Provider.Source,
	)

	ctx, cancel := signalContext(logger)
	defer cancel()

	p, res, err := buildProvider(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build provider", "error", err)
		return err
	}
	defer res.Close()

	hub := feed.NewHub(feed.HubConfig{
		QueueSize:    cfg.Feed.QueueSize,
		WriteTimeout: cfg.Feed.WriteTimeout,
		PingInterval: cfg.Feed.PingInterval,
	}, logger)
	defer hub.Close()

	var snapshotPoller *poller.Poller
	if cfg.Poller.Enabled {
		snapshotPoller = poller.New(poller.Config{
			Interval: cfg.Poller.Interval,
			Timeout:  cfg.Poller.Timeout,
		}, p, hub, logger)
		if err := snapshotPoller.Start(ctx); err != nil {
			return err
		}
	}

	srv := server.New(cfg.Server, server.Deps{
		Provider: p,
		Source:   cfg.Provider.Source,
		Feed:     hub,
		Checks:   res.checks(),
	}, logger)
	if err := srv.Start(ctx); err != nil {
		logger.Error("failed to start server", "error", err)
		return err
	}

	logger.Info("researchd running", "addr", srv.Addr())

	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if snapshotPoller != nil {
		if err := snapshotPoller.Stop(shutdownCtx); err != nil {
			logger.Warn("poller did not stop cleanly", "error", err)
		}
	}
	hub.Close()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Warn("server did not stop cleanly", "error", err)
	}

	logger.Info("researchd stopped")
	return nil
}
