package pipeline

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/rickgao/niche-research/internal/model"
)

// Transform returns the products priced at or below p.MaxPrice (all of them
// when MaxPrice is nil), stably ordered by p.Key in p.Direction.
//
// Records with no value for the key (NaN, empty string, or an unknown key)
// are placed last regardless of direction.
func Transform(products []model.Product, p Params) []model.Product {
	result := make([]model.Product, 0, len(products))
	for _, prod := range products {
		if p.MaxPrice != nil && prod.Price.GreaterThan(*p.MaxPrice) {
			continue
		}
		result = append(result, prod)
	}

	slices.SortStableFunc(result, p.compare)
	return result
}

// compare orders a and b under p, missing values last.
func (p Params) compare(a, b model.Product) int {
	c, aMissing, bMissing := compareField(p.Key, a, b)
	switch {
	case aMissing && bMissing:
		return 0
	case aMissing:
		return 1
	case bMissing:
		return -1
	}
	if p.Direction == Descending {
		return -c
	}
	return c
}

// compareField compares one field of a and b in its natural order.
func compareField(key SortKey, a, b model.Product) (c int, aMissing, bMissing bool) {
	switch key {
	case KeyPrice:
		return a.Price.Cmp(b.Price), false, false
	case KeyRating:
		return compareFloat(a.Rating, b.Rating)
	case KeyMarketShare:
		return compareFloat(a.MarketShare, b.MarketShare)
	case KeyGrowthTrend:
		return compareFloat(a.GrowthTrend, b.GrowthTrend)
	case KeyName:
		return compareString(a.Name, b.Name)
	case KeyID:
		return compareString(a.ID, b.ID)
	case KeyCompanyID:
		return compareString(a.CompanyID, b.CompanyID)
	}
	return 0, true, true
}

func compareFloat(a, b float64) (int, bool, bool) {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	if aNaN || bNaN {
		return 0, aNaN, bNaN
	}
	return cmp.Compare(a, b), false, false
}

func compareString(a, b string) (int, bool, bool) {
	if a == "" || b == "" {
		return 0, a == "", b == ""
	}
	return strings.Compare(a, b), false, false
}
