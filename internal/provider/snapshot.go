package provider

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rickgao/niche-research/internal/model"
)

// FetchSnapshot fetches trends and alerts concurrently. The first failure
// cancels the other fetch and no partial snapshot is returned. FetchedAt is
// left for the caller to stamp.
func FetchSnapshot(ctx context.Context, p Provider) (model.MarketSnapshot, error) {
	var snap model.MarketSnapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		trends, err := p.FetchMarketTrends(gctx)
		if err != nil {
			return fmt.Errorf("fetch market trends: %w", err)
		}
		snap.Trends = trends
		return nil
	})
	g.Go(func() error {
		alerts, err := p.FetchInvestmentAlerts(gctx)
		if err != nil {
			return fmt.Errorf("fetch investment alerts: %w", err)
		}
		snap.Alerts = alerts
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.MarketSnapshot{}, err
	}
	return snap, nil
}
