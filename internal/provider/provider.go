package provider

import (
	"context"

	"github.com/rickgao/niche-research/internal/model"
)

// ErrNotFound is returned when a requested company does not exist.
var ErrNotFound = model.ErrNotFound

// Provider supplies research records.
type Provider interface {
	// FetchProducts returns the products matching searchTerm. It never
	// returns an empty list for the mock; other sources may.
	FetchProducts(ctx context.Context, searchTerm string) ([]model.Product, error)

	// FetchCompany returns a company by ID, or an error matching ErrNotFound.
	FetchCompany(ctx context.Context, companyID string) (model.Company, error)

	// FetchCompanyProducts returns the products made by companyID (possibly none).
	FetchCompanyProducts(ctx context.Context, companyID string) ([]model.Product, error)

	// FetchMarketTrends returns the market growth series.
	FetchMarketTrends(ctx context.Context) ([]model.MarketTrend, error)

	// FetchInvestmentAlerts returns the current investment alerts.
	FetchInvestmentAlerts(ctx context.Context) ([]model.InvestmentAlert, error)
}
