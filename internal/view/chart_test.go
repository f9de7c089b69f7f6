package view

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/rickgao/niche-research/internal/model"
)

func TestDatasetJSON_UnreportedPoints(t *testing.T) {
	chart := productChart([]model.Product{
		{ID: "1", Name: "A", MarketShare: math.NaN(), GrowthTrend: 2.5},
		{ID: "2", Name: "B", MarketShare: 12, GrowthTrend: math.NaN()},
	})

	data, err := json.Marshal(chart)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"title":"Product Comparison","labels":["A","B"],"datasets":[` +
		`{"label":"Market Share (%)","data":[null,12]},` +
		`{"label":"Growth Trend (%)","data":[2.5,null]}]}`
	if string(data) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", data, want)
	}

	var back Chart
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !math.IsNaN(back.Datasets[0].Data[0]) || back.Datasets[0].Data[1] != 12 {
		t.Errorf("share series = %v, want [NaN 12]", back.Datasets[0].Data)
	}
}
