package poller

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rickgao/niche-research/internal/model"
	"github.com/rickgao/niche-research/internal/provider"
)

// SnapshotHandler receives fetched snapshots.
type SnapshotHandler interface {
	HandleSnapshot(snapshot model.MarketSnapshot) error
}

// SnapshotHandlerFunc is a function adapter for SnapshotHandler.
type SnapshotHandlerFunc func(model.MarketSnapshot) error

func (f SnapshotHandlerFunc) HandleSnapshot(s model.MarketSnapshot) error {
	return f(s)
}

// Config holds poller configuration.
type Config struct {
	Interval time.Duration // Poll interval (default: 1m)
	Timeout  time.Duration // Per-poll timeout (default: 10s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval: time.Minute,
		Timeout:  10 * time.Second,
	}
}

// Stats counts poll outcomes.
type Stats struct {
	Polls  int64
	Errors int64
}

// Poller periodically fetches market snapshots from a provider.
type Poller struct {
	cfg      Config
	provider provider.Provider
	handler  SnapshotHandler
	logger   *slog.Logger

	latest atomic.Pointer[model.MarketSnapshot]
	polls  atomic.Int64
	errors atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Poller.
func New(cfg Config, p provider.Provider, handler SnapshotHandler, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		cfg:      cfg,
		provider: p,
		handler:  handler,
		logger:   logger,
	}
}

// Start begins the polling loop.
func (p *Poller) Start(ctx context.Context) error {
	p.ctx, p.cancel = context.WithCancel(ctx)

	p.wg.Add(1)
	go p.run()

	p.logger.Info("snapshot poller started",
		"interval", p.cfg.Interval,
		"timeout", p.cfg.Timeout,
	)

	return nil
}

// Stop gracefully shuts down the poller.
func (p *Poller) Stop(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("snapshot poller stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Latest returns the most recent snapshot, if any poll has succeeded.
func (p *Poller) Latest() (model.MarketSnapshot, bool) {
	s := p.latest.Load()
	if s == nil {
		return model.MarketSnapshot{}, false
	}
	return *s, true
}

// Stats returns poll counters.
func (p *Poller) Stats() Stats {
	return Stats{Polls: p.polls.Load(), Errors: p.errors.Load()}
}

// run is the main polling loop.
func (p *Poller) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	// Poll immediately on start.
	p.poll()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.poll()
		}
	}
}

// poll fetches one snapshot and hands it to the handler.
func (p *Poller) poll() {
	start := time.Now()
	p.polls.Add(1)

	ctx, cancel := context.WithTimeout(p.ctx, p.cfg.Timeout)
	defer cancel()

	snap, err := provider.FetchSnapshot(ctx, p.provider)
	if err != nil {
		p.errors.Add(1)
		p.logger.Warn("failed to poll market snapshot", "err", err)
		return
	}
	snap.FetchedAt = time.Now().UnixMicro()
	p.latest.Store(&snap)

	if p.handler != nil {
		if err := p.handler.HandleSnapshot(snap); err != nil {
			p.errors.Add(1)
			p.logger.Warn("snapshot handler failed", "err", err)
			return
		}
	}

	p.logger.Debug("poll cycle complete",
		"trends", len(snap.Trends),
		"alerts", len(snap.Alerts),
		"duration", time.Since(start),
	)
}
