package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/rickgao/niche-research/internal/model"
	"github.com/rickgao/niche-research/internal/provider"
)

type memKV struct {
	mu      sync.Mutex
	data    map[string][]byte
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
	setCall int
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	b, ok := m.data[key]
	if !ok {
		return nil, ErrMiss
	}
	return b, nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCall++
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

// countingProvider records calls per method.
type countingProvider struct {
	provider.Provider
	mu    sync.Mutex
	calls map[string]int
}

func newCountingProvider(t *testing.T) *countingProvider {
	t.Helper()
	mock, err := provider.NewMock(provider.WithLatency(0))
	if err != nil {
		t.Fatalf("NewMock() error = %v", err)
	}
	return &countingProvider{Provider: mock, calls: make(map[string]int)}
}

func (p *countingProvider) inc(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls[name]++
}

func (p *countingProvider) count(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[name]
}

func (p *countingProvider) FetchProducts(ctx context.Context, term string) ([]model.Product, error) {
	p.inc("products")
	return p.Provider.FetchProducts(ctx, term)
}

func (p *countingProvider) FetchCompany(ctx context.Context, id string) (model.Company, error) {
	p.inc("company")
	return p.Provider.FetchCompany(ctx, id)
}

func (p *countingProvider) FetchMarketTrends(ctx context.Context) ([]model.MarketTrend, error) {
	p.inc("trends")
	return p.Provider.FetchMarketTrends(ctx)
}

var (
	quiet        = slog.New(slog.NewTextHandler(io.Discard, nil))
	decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })
)

func TestCached_ReadThrough(t *testing.T) {
	ctx := context.Background()
	next := newCountingProvider(t)
	kv := newMemKV()
	c := New(next, kv, WithTTL(time.Minute), WithPrefix("test"), WithLogger(quiet))

	first, err := c.FetchProducts(ctx, "Headphones")
	if err != nil {
		t.Fatalf("FetchProducts() error = %v", err)
	}
	second, err := c.FetchProducts(ctx, "Headphones")
	if err != nil {
		t.Fatalf("FetchProducts() error = %v", err)
	}

	if n := next.count("products"); n != 1 {
		t.Errorf("provider called %d times, want 1", n)
	}
	if diff := cmp.Diff(first, second, decimalEqual); diff != "" {
		t.Errorf("cached result mismatch (-first +second):\n%s", diff)
	}
	if ttl := kv.ttls["test:products:Headphones"]; ttl != time.Minute {
		t.Errorf("ttl = %v, want 1m", ttl)
	}

	// Different term is a different key.
	if _, err := c.FetchProducts(ctx, "Keyboards"); err != nil {
		t.Fatalf("FetchProducts() error = %v", err)
	}
	if n := next.count("products"); n != 2 {
		t.Errorf("provider called %d times, want 2", n)
	}
}

func TestCached_NotFoundNotCached(t *testing.T) {
	ctx := context.Background()
	next := newCountingProvider(t)
	kv := newMemKV()
	c := New(next, kv, WithLogger(quiet))

	for range 2 {
		_, err := c.FetchCompany(ctx, "999")
		if !errors.Is(err, provider.ErrNotFound) {
			t.Fatalf("FetchCompany() error = %v, want ErrNotFound", err)
		}
	}
	if n := next.count("company"); n != 2 {
		t.Errorf("provider called %d times, want 2", n)
	}
	if kv.setCall != 0 {
		t.Errorf("Set called %d times, want 0", kv.setCall)
	}
}

func TestCached_BackendFailuresFallThrough(t *testing.T) {
	ctx := context.Background()
	next := newCountingProvider(t)
	kv := newMemKV()
	kv.getErr = errors.New("connection refused")
	kv.setErr = errors.New("connection refused")
	c := New(next, kv, WithLogger(quiet))

	trends, err := c.FetchMarketTrends(ctx)
	if err != nil {
		t.Fatalf("FetchMarketTrends() error = %v", err)
	}
	if len(trends) == 0 {
		t.Error("FetchMarketTrends() returned no trends")
	}
	if n := next.count("trends"); n != 1 {
		t.Errorf("provider called %d times, want 1", n)
	}
}

func TestCached_UndecodableEntryRefetched(t *testing.T) {
	ctx := context.Background()
	next := newCountingProvider(t)
	kv := newMemKV()
	kv.data["research:company:1"] = []byte("{not json")
	c := New(next, kv, WithLogger(quiet))

	got, err := c.FetchCompany(ctx, "1")
	if err != nil {
		t.Fatalf("FetchCompany() error = %v", err)
	}
	if got.Name != "TechCorp" {
		t.Errorf("Name = %q, want TechCorp", got.Name)
	}
	if n := next.count("company"); n != 1 {
		t.Errorf("provider called %d times, want 1", n)
	}
}
