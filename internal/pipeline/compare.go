package pipeline

import (
	"fmt"
	"math"

	"github.com/rickgao/niche-research/internal/model"
)

// ComparisonSize is the number of products shown side by side.
const ComparisonSize = 3

// ErrProductNotFound is returned when the focus product is not in the list.
// It matches model.ErrNotFound.
var ErrProductNotFound = fmt.Errorf("selected product %w", model.ErrNotFound)

// SelectComparison picks the products to compare.
//
// With a focus ID, the focus product comes first, followed by the two other
// products with the highest market share. Without one, the first three
// products are returned in their given order.
func SelectComparison(products []model.Product, focusID string) ([]model.Product, error) {
	if focusID == "" {
		n := min(ComparisonSize, len(products))
		return append(make([]model.Product, 0, n), products[:n]...), nil
	}

	focusIdx := -1
	for i, p := range products {
		if p.ID == focusID {
			focusIdx = i
			break
		}
	}
	if focusIdx < 0 {
		return nil, fmt.Errorf("product %q: %w", focusID, ErrProductNotFound)
	}

	others := make([]model.Product, 0, len(products))
	for i, p := range products {
		if i != focusIdx {
			others = append(others, p)
		}
	}
	others = Transform(others, Params{Key: KeyMarketShare, Direction: Descending})

	result := make([]model.Product, 0, ComparisonSize)
	result = append(result, products[focusIdx])
	result = append(result, others[:min(ComparisonSize-1, len(others))]...)
	return result, nil
}

// Recommend returns the product with the highest growth trend. The first one
// wins a tie. It returns false when no product reports a growth trend.
func Recommend(products []model.Product) (model.Product, bool) {
	var best model.Product
	found := false
	for _, p := range products {
		if math.IsNaN(p.GrowthTrend) {
			continue
		}
		if !found || p.GrowthTrend > best.GrowthTrend {
			best = p
			found = true
		}
	}
	return best, found
}

// TopTrends returns a copy of the first n trends.
func TopTrends(trends []model.MarketTrend, n int) []model.MarketTrend {
	n = max(0, min(n, len(trends)))
	return append(make([]model.MarketTrend, 0, n), trends[:n]...)
}
