package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/rickgao/niche-research/internal/model"
	"github.com/rickgao/niche-research/internal/pipeline"
	"github.com/rickgao/niche-research/internal/provider"
)

// User-facing failure messages.
const (
	MsgProductFetchFailed = "Failed to fetch product data. Please try again later."
	MsgProductNotFound    = "Selected product not found"
	MsgCompanyFetchFailed = "Failed to fetch company data. Please try again later."
	MsgCompanyNotFound    = "Company not found"
	MsgMarketFetchFailed  = "Failed to fetch market data. Please try again later."
)

// HighlightedTrends is how many trends the opportunities view highlights.
const HighlightedTrends = 3

// Dashboard is the investment dashboard view model.
type Dashboard struct {
	SearchTerm string          `json:"searchTerm"`
	SortKey    string          `json:"sortKey"`
	Order      string          `json:"order"`
	MaxPrice   *string         `json:"maxPrice,omitempty"`
	Products   []model.Product `json:"products"`
	Chart      Chart           `json:"chart"`
}

// Comparison is the product comparison view model.
type Comparison struct {
	FocusID        string          `json:"focusId,omitempty"`
	Products       []model.Product `json:"products"`
	Recommendation *model.Product  `json:"recommendation,omitempty"`
}

// CompanyOverview is the company view model.
type CompanyOverview struct {
	Company  model.Company   `json:"company"`
	Products []model.Product `json:"products"`
}

// Opportunities is the market opportunities view model.
type Opportunities struct {
	Trends      []model.MarketTrend     `json:"trends"`
	Highlighted []model.MarketTrend     `json:"highlighted"`
	Alerts      []model.InvestmentAlert `json:"alerts"`
	Chart       Chart                   `json:"chart"`
}

// Controller builds views from a provider.
type Controller struct {
	provider provider.Provider
	logger   *slog.Logger
}

// NewController creates a Controller.
func NewController(p provider.Provider, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{provider: p, logger: logger}
}

// Dashboard loads products for term and applies params.
func (c *Controller) Dashboard(ctx context.Context, s *Session, term string, params pipeline.Params) (State[Dashboard], error) {
	return load(ctx, s, func(ctx context.Context) (Dashboard, error) {
		products, err := c.provider.FetchProducts(ctx, term)
		if err != nil {
			return Dashboard{}, fmt.Errorf("fetch products for %q: %w", term, err)
		}

		shown := pipeline.Transform(products, params)
		d := Dashboard{
			SearchTerm: term,
			SortKey:    string(params.Key),
			Order:      string(params.Direction),
			Products:   shown,
			Chart:      productChart(shown),
		}
		if params.MaxPrice != nil {
			ceiling := params.MaxPrice.StringFixed(2)
			d.MaxPrice = &ceiling
		}
		return d, nil
	}, c.failure("dashboard", func(error) string { return MsgProductFetchFailed }))
}

// Comparison loads the comparison set around focusID. An empty focusID
// compares the first products in catalog order.
func (c *Controller) Comparison(ctx context.Context, s *Session, focusID string) (State[Comparison], error) {
	return load(ctx, s, func(ctx context.Context) (Comparison, error) {
		products, err := c.provider.FetchProducts(ctx, ComparisonSearchTerm)
		if err != nil {
			return Comparison{}, fmt.Errorf("fetch products: %w", err)
		}

		selected, err := pipeline.SelectComparison(products, focusID)
		if err != nil {
			return Comparison{}, err
		}

		out := Comparison{FocusID: focusID, Products: selected}
		if best, ok := pipeline.Recommend(selected); ok {
			out.Recommendation = &best
		}
		return out, nil
	}, c.failure("comparison", func(err error) string {
		if errors.Is(err, pipeline.ErrProductNotFound) {
			return MsgProductNotFound
		}
		return MsgProductFetchFailed
	}))
}

// Company loads a company and its products together. Either failure fails
// the view.
func (c *Controller) Company(ctx context.Context, s *Session, companyID string) (State[CompanyOverview], error) {
	return load(ctx, s, func(ctx context.Context) (CompanyOverview, error) {
		var overview CompanyOverview

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			company, err := c.provider.FetchCompany(gctx, companyID)
			if err != nil {
				return fmt.Errorf("fetch company: %w", err)
			}
			overview.Company = company
			return nil
		})
		g.Go(func() error {
			products, err := c.provider.FetchCompanyProducts(gctx, companyID)
			if err != nil {
				return fmt.Errorf("fetch company products: %w", err)
			}
			overview.Products = products
			return nil
		})
		if err := g.Wait(); err != nil {
			return CompanyOverview{}, err
		}
		return overview, nil
	}, c.failure("company", func(err error) string {
		if errors.Is(err, provider.ErrNotFound) {
			return MsgCompanyNotFound
		}
		return MsgCompanyFetchFailed
	}))
}

// Opportunities loads market trends and alerts together.
func (c *Controller) Opportunities(ctx context.Context, s *Session) (State[Opportunities], error) {
	return load(ctx, s, func(ctx context.Context) (Opportunities, error) {
		snap, err := provider.FetchSnapshot(ctx, c.provider)
		if err != nil {
			return Opportunities{}, err
		}
		return Opportunities{
			Trends:      snap.Trends,
			Highlighted: pipeline.TopTrends(snap.Trends, HighlightedTrends),
			Alerts:      snap.Alerts,
			Chart:       trendChart(snap.Trends),
		}, nil
	}, c.failure("opportunities", func(error) string { return MsgMarketFetchFailed }))
}

// failure logs err for developers and maps it to its user-facing message.
func (c *Controller) failure(view string, message func(error) string) func(error) string {
	return func(err error) string {
		msg := message(err)
		c.logger.Error("view load failed", "view", view, "message", msg, "error", err)
		return msg
	}
}
