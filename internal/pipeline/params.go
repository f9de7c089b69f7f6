package pipeline

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// SortKey names the product field a list is ordered by.
type SortKey string

// Supported sort keys.
const (
	KeyPrice       SortKey = "price"
	KeyRating      SortKey = "rating"
	KeyMarketShare SortKey = "marketShare"
	KeyGrowthTrend SortKey = "growthTrend"
	KeyName        SortKey = "name"
	KeyID          SortKey = "id"
	KeyCompanyID   SortKey = "companyId"
)

var sortKeys = []SortKey{KeyPrice, KeyRating, KeyMarketShare, KeyGrowthTrend, KeyName, KeyID, KeyCompanyID}

// ParseSortKey resolves a sort key name, ignoring case.
func ParseSortKey(s string) (SortKey, error) {
	for _, k := range sortKeys {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// Direction is the sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection resolves "asc"/"ascending" or "desc"/"descending".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return "", fmt.Errorf("unknown sort direction %q", s)
}

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// Params controls Transform.
type Params struct {
	Key       SortKey
	Direction Direction

	// MaxPrice is an inclusive price ceiling. Nil disables filtering.
	MaxPrice *decimal.Decimal
}

// DefaultParams returns the dashboard's initial ordering: market share, descending.
func DefaultParams() Params {
	return Params{
		Key:       KeyMarketShare,
		Direction: Descending,
	}
}

// Toggle returns params ordered by key with the direction flipped.
// The direction flips on every call, including when the key changes.
func (p Params) Toggle(key SortKey) Params {
	p.Key = key
	p.Direction = p.Direction.Toggle()
	return p
}

// WithMaxPrice returns params filtered to prices at or below max.
func (p Params) WithMaxPrice(max decimal.Decimal) Params {
	p.MaxPrice = &max
	return p
}
