package provider

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rickgao/niche-research/internal/model"
)

// productTemplate is a reference product without its search-dependent name.
type productTemplate struct {
	id          string
	price       string
	rating      float64
	marketShare float64
	growthTrend float64
	companyID   string
}

var referenceProducts = []productTemplate{
	{"1", "29.99", 4.5, 15, 5.2, "1"},
	{"2", "39.99", 4.2, 12, 3.8, "2"},
	{"3", "19.99", 4.8, 18, 7.5, "3"},
	{"4", "24.99", 4.0, 10, 2.5, "1"},
	{"5", "34.99", 4.6, 14, 6.0, "2"},
}

// ProductName renders a product name for a search term. An empty term yields
// the bare suffix.
func ProductName(searchTerm, suffix string) string {
	return strings.TrimSpace(searchTerm + " " + suffix)
}

// ReferenceCatalog returns the reference data set with product names derived
// from searchTerm. The same term always yields the same catalog.
func ReferenceCatalog(searchTerm string) model.Catalog {
	products := make([]model.Product, len(referenceProducts))
	for i, t := range referenceProducts {
		products[i] = model.Product{
			ID:          t.id,
			Name:        ProductName(searchTerm, fmt.Sprintf("Product %d", i+1)),
			Price:       decimal.RequireFromString(t.price),
			Rating:      t.rating,
			MarketShare: t.marketShare,
			GrowthTrend: t.growthTrend,
			CompanyID:   t.companyID,
		}
	}

	return model.Catalog{
		Products: products,
		Companies: []model.Company{
			{
				ID:          "1",
				Name:        "TechCorp",
				Description: "Leading technology company specializing in innovative products.",
				FoundedYear: 2005,
				Revenue:     decimal.NewFromInt(500000000),
				Employees:   5000,
			},
			{
				ID:          "2",
				Name:        "GadgetWorld",
				Description: "Global manufacturer of cutting-edge gadgets and electronics.",
				FoundedYear: 1998,
				Revenue:     decimal.NewFromInt(750000000),
				Employees:   8000,
			},
			{
				ID:          "3",
				Name:        "FutureTech",
				Description: "Pioneering company focused on next-generation technology solutions.",
				FoundedYear: 2010,
				Revenue:     decimal.NewFromInt(300000000),
				Employees:   3000,
			},
		},
		Trends: []model.MarketTrend{
			{Date: "2023-01", GrowthRate: 2.5, Sector: "Technology"},
			{Date: "2023-02", GrowthRate: 2.7, Sector: "Technology"},
			{Date: "2023-03", GrowthRate: 3.1, Sector: "Technology"},
			{Date: "2023-04", GrowthRate: 3.4, Sector: "Technology"},
			{Date: "2023-05", GrowthRate: 3.8, Sector: "Technology"},
			{Date: "2023-06", GrowthRate: 4.2, Sector: "Technology"},
		},
		Alerts: []model.InvestmentAlert{
			{
				Title:           "Emerging Market Opportunity",
				Description:     "Rapid growth observed in the AI sector, consider increasing investments.",
				PotentialImpact: "High",
			},
			{
				Title:           "Regulatory Changes",
				Description:     "New regulations in the fintech industry may affect current investments.",
				PotentialImpact: "Medium",
			},
			{
				Title:           "Market Volatility",
				Description:     "Increased volatility in the stock market, diversification recommended.",
				PotentialImpact: "Medium",
			},
		},
	}
}
