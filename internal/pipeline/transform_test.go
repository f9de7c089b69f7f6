package pipeline

import (
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/rickgao/niche-research/internal/model"
)

// fiveProducts mirrors the reference mock data set.
func fiveProducts() []model.Product {
	return []model.Product{
		{ID: "1", Name: "Test Product 1", Price: decimal.RequireFromString("29.99"), Rating: 4.5, MarketShare: 15, GrowthTrend: 5.2, CompanyID: "1"},
		{ID: "2", Name: "Test Product 2", Price: decimal.RequireFromString("39.99"), Rating: 4.2, MarketShare: 12, GrowthTrend: 3.8, CompanyID: "2"},
		{ID: "3", Name: "Test Product 3", Price: decimal.RequireFromString("19.99"), Rating: 4.8, MarketShare: 18, GrowthTrend: 7.5, CompanyID: "3"},
		{ID: "4", Name: "Test Product 4", Price: decimal.RequireFromString("24.99"), Rating: 4.0, MarketShare: 10, GrowthTrend: 2.5, CompanyID: "1"},
		{ID: "5", Name: "Test Product 5", Price: decimal.RequireFromString("34.99"), Rating: 4.6, MarketShare: 14, GrowthTrend: 6.0, CompanyID: "2"},
	}
}

func ids(products []model.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestTransform_MarketShareDescending(t *testing.T) {
	got := Transform(fiveProducts(), Params{Key: KeyMarketShare, Direction: Descending})

	shares := make([]float64, len(got))
	for i, p := range got {
		shares[i] = p.MarketShare
	}
	want := []float64{18, 15, 14, 12, 10}
	if diff := cmp.Diff(want, shares); diff != "" {
		t.Errorf("market shares mismatch (-want +got):\n%s", diff)
	}
}

func TestTransform_MaxPrice(t *testing.T) {
	got := Transform(fiveProducts(), Params{Key: KeyMarketShare, Direction: Descending, MaxPrice: price("25.00")})

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	// 19.99 has the larger share, so it sorts first.
	if diff := cmp.Diff([]string{"3", "4"}, ids(got)); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestTransform_MaxPriceInclusive(t *testing.T) {
	got := Transform(fiveProducts(), Params{Key: KeyPrice, Direction: Ascending, MaxPrice: price("24.99")})
	if diff := cmp.Diff([]string{"3", "4"}, ids(got)); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestTransform_FilterBounds(t *testing.T) {
	input := fiveProducts()
	for _, m := range []string{"0", "19.99", "25", "34.99", "100"} {
		max := decimal.RequireFromString(m)
		got := Transform(input, Params{Key: KeyPrice, Direction: Ascending, MaxPrice: &max})

		if len(got) > len(input) {
			t.Errorf("max %s: len(output) %d > len(input) %d", m, len(got), len(input))
		}
		kept := make(map[string]bool)
		for _, p := range got {
			kept[p.ID] = true
			if p.Price.GreaterThan(max) {
				t.Errorf("max %s: product %s price %s exceeds max", m, p.ID, p.Price)
			}
		}
		for _, p := range input {
			if !kept[p.ID] && !p.Price.GreaterThan(max) {
				t.Errorf("max %s: product %s price %s wrongly excluded", m, p.ID, p.Price)
			}
		}
	}
}

func TestTransform_FilterEverything(t *testing.T) {
	got := Transform(fiveProducts(), Params{Key: KeyPrice, Direction: Ascending, MaxPrice: price("1.00")})
	if got == nil {
		t.Fatal("Transform returned nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestTransform_EmptyInput(t *testing.T) {
	got := Transform(nil, DefaultParams())
	if got == nil || len(got) != 0 {
		t.Errorf("Transform(nil) = %#v, want empty non-nil slice", got)
	}
}

func TestTransform_ReverseWithoutTies(t *testing.T) {
	for _, key := range []SortKey{KeyPrice, KeyRating, KeyMarketShare, KeyGrowthTrend, KeyName, KeyID} {
		t.Run(string(key), func(t *testing.T) {
			asc := Transform(fiveProducts(), Params{Key: key, Direction: Ascending})
			desc := Transform(fiveProducts(), Params{Key: key, Direction: Descending})

			reversed := slices.Clone(asc)
			slices.Reverse(reversed)
			if diff := cmp.Diff(ids(desc), ids(reversed)); diff != "" {
				t.Errorf("reverse(asc) != desc (-desc +reversed):\n%s", diff)
			}
		})
	}
}

func TestTransform_Idempotent(t *testing.T) {
	p := Params{Key: KeyCompanyID, Direction: Descending, MaxPrice: price("35")}
	once := Transform(fiveProducts(), p)
	twice := Transform(once, p)
	if diff := cmp.Diff(ids(once), ids(twice)); diff != "" {
		t.Errorf("not idempotent (-once +twice):\n%s", diff)
	}
}

func TestTransform_StableTies(t *testing.T) {
	// companyId has ties: 1 -> {1,4}, 2 -> {2,5}, 3 -> {3}.
	asc := Transform(fiveProducts(), Params{Key: KeyCompanyID, Direction: Ascending})
	if diff := cmp.Diff([]string{"1", "4", "2", "5", "3"}, ids(asc)); diff != "" {
		t.Errorf("asc mismatch (-want +got):\n%s", diff)
	}

	desc := Transform(fiveProducts(), Params{Key: KeyCompanyID, Direction: Descending})
	if diff := cmp.Diff([]string{"3", "2", "5", "1", "4"}, ids(desc)); diff != "" {
		t.Errorf("desc mismatch (-want +got):\n%s", diff)
	}
}

func TestTransform_DoesNotMutateInput(t *testing.T) {
	input := fiveProducts()
	before := ids(input)

	got := Transform(input, Params{Key: KeyPrice, Direction: Ascending})
	got[0].Name = "changed"

	if diff := cmp.Diff(before, ids(input)); diff != "" {
		t.Errorf("input reordered (-before +after):\n%s", diff)
	}
	for _, p := range input {
		if p.Name == "changed" {
			t.Error("input record shares storage with output")
		}
	}
}

func TestTransform_MissingValuesLast(t *testing.T) {
	input := fiveProducts()
	input[1].Rating = math.NaN()
	input[3].Rating = math.NaN()

	for _, dir := range []Direction{Ascending, Descending} {
		t.Run(string(dir), func(t *testing.T) {
			got := ids(Transform(input, Params{Key: KeyRating, Direction: dir}))
			tail := got[len(got)-2:]
			if diff := cmp.Diff([]string{"2", "4"}, tail); diff != "" {
				t.Errorf("missing values not last (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTransform_UnknownKeyKeepsOrder(t *testing.T) {
	got := Transform(fiveProducts(), Params{Key: "volume", Direction: Descending})
	if diff := cmp.Diff([]string{"1", "2", "3", "4", "5"}, ids(got)); diff != "" {
		t.Errorf("order changed (-want +got):\n%s", diff)
	}
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		input   string
		want    SortKey
		wantErr bool
	}{
		{"price", KeyPrice, false},
		{"marketShare", KeyMarketShare, false},
		{"marketshare", KeyMarketShare, false},
		{"GROWTHTREND", KeyGrowthTrend, false},
		{"companyId", KeyCompanyID, false},
		{"volume", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSortKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSortKey(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input   string
		want    Direction
		wantErr bool
	}{
		{"asc", Ascending, false},
		{"ASCENDING", Ascending, false},
		{"desc", Descending, false},
		{"descending", Descending, false},
		{"up", "", true},
	}

	for _, tt := range tests {
		got, err := ParseDirection(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDirection(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseDirection(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParams_Toggle(t *testing.T) {
	p := DefaultParams()
	if p.Key != KeyMarketShare || p.Direction != Descending {
		t.Fatalf("DefaultParams() = %+v, want marketShare desc", p)
	}

	p = p.Toggle(KeyMarketShare)
	if p.Direction != Ascending {
		t.Errorf("Direction = %q, want asc", p.Direction)
	}

	// Switching key still flips the direction.
	p = p.Toggle(KeyGrowthTrend)
	if p.Key != KeyGrowthTrend || p.Direction != Descending {
		t.Errorf("Toggle(growthTrend) = %+v, want growthTrend desc", p)
	}
}

func TestParams_WithMaxPrice(t *testing.T) {
	base := DefaultParams()
	p := base.WithMaxPrice(decimal.RequireFromString("25"))
	if base.MaxPrice != nil {
		t.Error("WithMaxPrice modified the receiver")
	}
	if p.MaxPrice == nil || !p.MaxPrice.Equal(decimal.NewFromInt(25)) {
		t.Errorf("MaxPrice = %v, want 25", p.MaxPrice)
	}
}
