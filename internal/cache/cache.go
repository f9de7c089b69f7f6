package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/rickgao/niche-research/internal/model"
	"github.com/rickgao/niche-research/internal/provider"
)

// DefaultTTL is used when New is given a non-positive TTL.
const DefaultTTL = 5 * time.Minute

// Cached is a provider.Provider that serves repeat reads from a KV.
type Cached struct {
	next   provider.Provider
	kv     KV
	ttl    time.Duration
	prefix string
	logger *slog.Logger
}

// Option configures a Cached provider.
type Option func(*Cached)

// WithTTL sets the expiry of cached values.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cached) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithPrefix sets the key namespace.
func WithPrefix(prefix string) Option {
	return func(c *Cached) {
		c.prefix = prefix
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cached) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New wraps next with a cache backed by kv.
func New(next provider.Provider, kv KV, opts ...Option) *Cached {
	c := &Cached{
		next:   next,
		kv:     kv,
		ttl:    DefaultTTL,
		prefix: "research",
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cached) FetchProducts(ctx context.Context, searchTerm string) ([]model.Product, error) {
	return readThrough(ctx, c, "products:"+searchTerm, func() ([]model.Product, error) {
		return c.next.FetchProducts(ctx, searchTerm)
	})
}

func (c *Cached) FetchCompany(ctx context.Context, companyID string) (model.Company, error) {
	return readThrough(ctx, c, "company:"+companyID, func() (model.Company, error) {
		return c.next.FetchCompany(ctx, companyID)
	})
}

func (c *Cached) FetchCompanyProducts(ctx context.Context, companyID string) ([]model.Product, error) {
	return readThrough(ctx, c, "company-products:"+companyID, func() ([]model.Product, error) {
		return c.next.FetchCompanyProducts(ctx, companyID)
	})
}

func (c *Cached) FetchMarketTrends(ctx context.Context) ([]model.MarketTrend, error) {
	return readThrough(ctx, c, "trends", func() ([]model.MarketTrend, error) {
		return c.next.FetchMarketTrends(ctx)
	})
}

func (c *Cached) FetchInvestmentAlerts(ctx context.Context) ([]model.InvestmentAlert, error) {
	return readThrough(ctx, c, "alerts", func() ([]model.InvestmentAlert, error) {
		return c.next.FetchInvestmentAlerts(ctx)
	})
}

func (c *Cached) key(suffix string) string {
	return c.prefix + ":" + suffix
}

// readThrough returns the cached value for suffix, or calls fetch and stores
// its result. Errors from fetch are returned unchanged and never cached.
func readThrough[T any](ctx context.Context, c *Cached, suffix string, fetch func() (T, error)) (T, error) {
	key := c.key(suffix)

	b, err := c.kv.Get(ctx, key)
	switch {
	case err == nil:
		var v T
		decodeErr := json.Unmarshal(b, &v)
		if decodeErr == nil {
			return v, nil
		}
		c.logger.Warn("discarding undecodable cache entry", "key", key, "error", decodeErr)
	case !errors.Is(err, ErrMiss):
		c.logger.Warn("cache read failed", "key", key, "error", err)
	}

	v, err := fetch()
	if err != nil {
		return v, err
	}

	b, err = json.Marshal(v)
	if err != nil {
		c.logger.Warn("cache encode failed", "key", key, "error", err)
		return v, nil
	}
	if err := c.kv.Set(ctx, key, b, c.ttl); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
	return v, nil
}

var _ provider.Provider = (*Cached)(nil)
