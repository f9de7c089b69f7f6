package model

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"
)

// productJSON is the wire form of Product. Unreported metrics (NaN) travel
// as null.
type productJSON struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Rating      *float64        `json:"rating"`
	MarketShare *float64        `json:"marketShare"`
	GrowthTrend *float64        `json:"growthTrend"`
	CompanyID   string          `json:"companyId"`
}

// MarshalJSON encodes NaN metrics as null.
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(productJSON{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Rating:      MetricPtr(p.Rating),
		MarketShare: MetricPtr(p.MarketShare),
		GrowthTrend: MetricPtr(p.GrowthTrend),
		CompanyID:   p.CompanyID,
	})
}

// UnmarshalJSON decodes null or absent metrics as NaN.
func (p *Product) UnmarshalJSON(b []byte) error {
	var w productJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*p = Product{
		ID:          w.ID,
		Name:        w.Name,
		Price:       w.Price,
		Rating:      MetricValue(w.Rating),
		MarketShare: MetricValue(w.MarketShare),
		GrowthTrend: MetricValue(w.GrowthTrend),
		CompanyID:   w.CompanyID,
	}
	return nil
}

// MetricPtr returns nil for an unreported (NaN) metric.
func MetricPtr(f float64) *float64 {
	if math.IsNaN(f) {
		return nil
	}
	return &f
}

// MetricValue returns NaN for a nil metric.
func MetricValue(f *float64) float64 {
	if f == nil {
		return math.NaN()
	}
	return *f
}
