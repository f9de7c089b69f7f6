package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/rickgao/niche-research/internal/api"
	"github.com/rickgao/niche-research/internal/cache"
	"github.com/rickgao/niche-research/internal/config"
	"github.com/rickgao/niche-research/internal/database"
	"github.com/rickgao/niche-research/internal/provider"
	"github.com/rickgao/niche-research/internal/server"
	"github.com/rickgao/niche-research/internal/store"
)

// loadConfig reads the --config file, or returns defaults when none is given.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.Default()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("validate config: %w", err)
		}
		return cfg, nil
	}
	return config.LoadAndValidate(path)
}

// newLogger builds the process logger from cfg.
func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received shutdown signal", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// resources are the connections a provider holds open.
type resources struct {
	pool  *pgxpool.Pool
	redis *redis.Client
}

func (r *resources) Close() {
	if r.redis != nil {
		r.redis.Close()
	}
	if r.pool != nil {
		r.pool.Close()
	}
}

// checks returns health probes for the open connections.
func (r *resources) checks() []server.Check {
	var checks []server.Check
	if r.pool != nil {
		checks = append(checks, server.Check{Name: "postgres", Probe: r.pool.Ping})
	}
	if r.redis != nil {
		kv := cache.NewRedisKV(r.redis)
		checks = append(checks, server.Check{Name: "redis", Probe: kv.Ping})
	}
	return checks
}

// buildProvider constructs the configured provider, wrapped in the cache
// when enabled.
func buildProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (provider.Provider, *resources, error) {
	res := &resources{}

	var p provider.Provider
	switch cfg.Provider.Source {
	case config.SourceMock:
		mock, err := provider.NewMock(
			provider.WithLatency(cfg.Provider.Latency),
			provider.WithLogger(logger),
		)
		if err != nil {
			return nil, nil, err
		}
		p = mock

	case config.SourcePostgres:
		logger.Info("connecting to database",
			"host", cfg.Database.Postgres.Host,
			"port", cfg.Database.Postgres.Port,
			"database", cfg.Database.Postgres.Name,
		)
		pool, err := database.Connect(ctx, cfg.Database.Postgres)
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		res.pool = pool

		st, err := store.New(ctx, pool, logger)
		if err != nil {
			res.Close()
			return nil, nil, err
		}
		p = st

	case config.SourceRemote:
		p = api.NewClient(
			cfg.Provider.RemoteURL,
			cfg.Provider.APIKey,
			api.WithLogger(logger),
			api.WithTimeout(cfg.Provider.Timeout),
			api.WithRetries(cfg.Provider.MaxRetries, api.DefaultBackoff),
		)

	default:
		return nil, nil, fmt.Errorf("unknown provider source %q", cfg.Provider.Source)
	}

	if cfg.Cache.Enabled {
		client, err := cache.Connect(ctx, cfg.Cache)
		if err != nil {
			res.Close()
			return nil, nil, fmt.Errorf("connect cache: %w", err)
		}
		res.redis = client
		p = cache.New(p, cache.NewRedisKV(client),
			cache.WithTTL(cfg.Cache.TTL),
			cache.WithPrefix(cfg.Cache.Prefix),
			cache.WithLogger(logger),
		)
		logger.Info("cache enabled", "host", cfg.Cache.Host, "ttl", cfg.Cache.TTL)
	}

	return p, res, nil
}
