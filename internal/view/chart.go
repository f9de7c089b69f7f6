package view

import (
	"encoding/json"

	"github.com/rickgao/niche-research/internal/model"
)

// Chart is plottable series data. Rendering is left to the client.
type Chart struct {
	Title    string    `json:"title"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one named series aligned with Chart.Labels. Unreported points
// are NaN in memory and null on the wire.
type Dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

type datasetJSON struct {
	Label string     `json:"label"`
	Data  []*float64 `json:"data"`
}

// MarshalJSON encodes NaN points as null.
func (d Dataset) MarshalJSON() ([]byte, error) {
	w := datasetJSON{Label: d.Label, Data: make([]*float64, len(d.Data))}
	for i, v := range d.Data {
		w.Data[i] = model.MetricPtr(v)
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes null points as NaN.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	var w datasetJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	d.Label = w.Label
	d.Data = make([]float64, len(w.Data))
	for i, v := range w.Data {
		d.Data[i] = model.MetricValue(v)
	}
	return nil
}

// productChart plots market share and growth trend per product.
func productChart(products []model.Product) Chart {
	labels := make([]string, len(products))
	share := make([]float64, len(products))
	growth := make([]float64, len(products))
	for i, p := range products {
		labels[i] = p.Name
		share[i] = p.MarketShare
		growth[i] = p.GrowthTrend
	}

	return Chart{
		Title:  "Product Comparison",
		Labels: labels,
		Datasets: []Dataset{
			{Label: "Market Share (%)", Data: share},
			{Label: "Growth Trend (%)", Data: growth},
		},
	}
}

// trendChart plots growth rate per period.
func trendChart(trends []model.MarketTrend) Chart {
	labels := make([]string, len(trends))
	rates := make([]float64, len(trends))
	for i, t := range trends {
		labels[i] = t.Date
		rates[i] = t.GrowthRate
	}

	return Chart{
		Title:    "Market Growth Trends",
		Labels:   labels,
		Datasets: []Dataset{{Label: "Market Growth", Data: rates}},
	}
}
