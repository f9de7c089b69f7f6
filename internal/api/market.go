package api

import (
	"context"
	"fmt"

	"github.com/rickgao/niche-research/internal/model"
	"github.com/rickgao/niche-research/internal/provider"
)

// FetchMarketTrends fetches the market growth series.
func (c *Client) FetchMarketTrends(ctx context.Context) ([]model.MarketTrend, error) {
	var resp TrendsResponse
	if err := c.get(ctx, "/api/v1/trends", nil, &resp); err != nil {
		return nil, fmt.Errorf("get trends: %w", err)
	}
	return nonNil(resp.Trends), nil
}

// FetchInvestmentAlerts fetches the current investment alerts.
func (c *Client) FetchInvestmentAlerts(ctx context.Context) ([]model.InvestmentAlert, error) {
	var resp AlertsResponse
	if err := c.get(ctx, "/api/v1/alerts", nil, &resp); err != nil {
		return nil, fmt.Errorf("get alerts: %w", err)
	}
	return nonNil(resp.Alerts), nil
}

var _ provider.Provider = (*Client)(nil)
