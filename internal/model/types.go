package model

import "github.com/shopspring/decimal"

// -----------------------------------------------------------------------------
// Catalog Types
// -----------------------------------------------------------------------------

// Rating bounds for Product.Rating.
const (
	MinRating = 0.0
	MaxRating = 5.0
)

// Product is a single product offering within a niche.
type Product struct {
	ID          string          `json:"id"`          // Primary key
	Name        string          `json:"name"`        // Display name
	Price       decimal.Decimal `json:"price"`       // Unit price (non-negative)
	Rating      float64         `json:"rating"`      // Customer rating, 0-5
	MarketShare float64         `json:"marketShare"` // Share of the niche (%)
	GrowthTrend float64         `json:"growthTrend"` // Signed growth (%)
	CompanyID   string          `json:"companyId"`   // Foreign key to Company
}

// Company is the maker of one or more products.
type Company struct {
	ID          string          `json:"id"`          // Primary key
	Name        string          `json:"name"`        // Display name
	Description string          `json:"description"` // Short profile
	FoundedYear int             `json:"foundedYear"` // Year founded
	Revenue     decimal.Decimal `json:"revenue"`     // Annual revenue (non-negative)
	Employees   int             `json:"employees"`   // Headcount
}

// -----------------------------------------------------------------------------
// Market Types
// -----------------------------------------------------------------------------

// MarketTrend is one point of a sector growth series.
type MarketTrend struct {
	Date       string  `json:"date"`       // Period label (e.g. "2023-01"), not parsed
	GrowthRate float64 `json:"growthRate"` // Signed growth (%)
	Sector     string  `json:"sector"`     // Sector label
}

// InvestmentAlert is a free-text market signal.
type InvestmentAlert struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	PotentialImpact string `json:"potentialImpact"` // Severity label, e.g. "High", "Medium"
}

// MarketSnapshot groups the market series fetched together.
type MarketSnapshot struct {
	Trends    []MarketTrend     `json:"trends"`
	Alerts    []InvestmentAlert `json:"alerts"`
	FetchedAt int64             `json:"fetchedAt"` // µs since epoch
}
