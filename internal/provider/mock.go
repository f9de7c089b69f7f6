package provider

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/rickgao/niche-research/internal/model"
)

// DefaultLatency is the artificial delay of every Mock call.
const DefaultLatency = time.Second

// Mock serves the reference catalog after an artificial delay.
type Mock struct {
	latency time.Duration
	logger  *slog.Logger

	// catalog builds the batch for a search term.
	catalog func(searchTerm string) model.Catalog
}

// MockOption configures a Mock.
type MockOption func(*Mock)

// WithLatency sets the artificial delay. Zero disables it.
func WithLatency(d time.Duration) MockOption {
	return func(m *Mock) {
		m.latency = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) MockOption {
	return func(m *Mock) {
		m.logger = logger
	}
}

// WithCatalog replaces the reference data. The search term is ignored.
func WithCatalog(c model.Catalog) MockOption {
	return func(m *Mock) {
		m.catalog = func(string) model.Catalog { return c }
	}
}

// NewMock creates a Mock. The catalog is checked for dangling company
// references before use.
func NewMock(opts ...MockOption) (*Mock, error) {
	m := &Mock{
		latency: DefaultLatency,
		logger:  slog.Default(),
		catalog: ReferenceCatalog,
	}

	for _, opt := range opts {
		opt(m)
	}

	c := m.catalog("")
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate mock catalog: %w", err)
	}

	return m, nil
}

// FetchProducts returns the catalog's products named after searchTerm.
func (m *Mock) FetchProducts(ctx context.Context, searchTerm string) ([]model.Product, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	c := m.catalog(searchTerm)
	return slices.Clone(c.Products), nil
}

// FetchCompany returns a company by ID.
func (m *Mock) FetchCompany(ctx context.Context, companyID string) (model.Company, error) {
	if err := m.wait(ctx); err != nil {
		return model.Company{}, err
	}
	c := m.catalog("")
	company, ok := c.Company(companyID)
	if !ok {
		m.logger.Debug("company lookup missed", "company_id", companyID)
		return model.Company{}, fmt.Errorf("company %q: %w", companyID, ErrNotFound)
	}
	return company, nil
}

// FetchCompanyProducts returns the products made by companyID.
func (m *Mock) FetchCompanyProducts(ctx context.Context, companyID string) ([]model.Product, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	c := m.catalog("")
	return c.ProductsByCompany(companyID), nil
}

// FetchMarketTrends returns the reference trend series.
func (m *Mock) FetchMarketTrends(ctx context.Context) ([]model.MarketTrend, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	c := m.catalog("")
	return slices.Clone(c.Trends), nil
}

// FetchInvestmentAlerts returns the reference alerts.
func (m *Mock) FetchInvestmentAlerts(ctx context.Context) ([]model.InvestmentAlert, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	c := m.catalog("")
	return slices.Clone(c.Alerts), nil
}

// wait blocks for the configured latency or until ctx is done.
func (m *Mock) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(m.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var _ Provider = (*Mock)(nil)
