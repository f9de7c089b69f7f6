package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rickgao/niche-research/internal/pipeline"
)

// DefaultSearchTerm is used when the dashboard is opened without a search.
const DefaultSearchTerm = "Default"

// ComparisonSearchTerm is the term the comparison view fetches products for.
const ComparisonSearchTerm = "All"

var errNegative = errors.New("must not be negative")

// DashboardQuery is the raw dashboard request.
type DashboardQuery struct {
	Search   string
	Sort     string
	Order    string
	MaxPrice string
}

// QueryError reports an unusable query parameter.
type QueryError struct {
	Param string
	Value string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Param, e.Value, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Resolve returns the search term and pipeline parameters for q. Empty fields
// take the dashboard defaults.
func (q DashboardQuery) Resolve() (string, pipeline.Params, error) {
	term := strings.TrimSpace(q.Search)
	if term == "" {
		term = DefaultSearchTerm
	}

	params := pipeline.DefaultParams()

	if q.Sort != "" {
		key, err := pipeline.ParseSortKey(q.Sort)
		if err != nil {
			return "", params, &QueryError{Param: "sort", Value: q.Sort, Err: err}
		}
		params.Key = key
	}

	if q.Order != "" {
		dir, err := pipeline.ParseDirection(q.Order)
		if err != nil {
			return "", params, &QueryError{Param: "order", Value: q.Order, Err: err}
		}
		params.Direction = dir
	}

	if q.MaxPrice != "" {
		ceiling, err := decimal.NewFromString(strings.TrimSpace(q.MaxPrice))
		if err != nil {
			return "", params, &QueryError{Param: "maxPrice", Value: q.MaxPrice, Err: err}
		}
		if ceiling.IsNegative() {
			return "", params, &QueryError{Param: "maxPrice", Value: q.MaxPrice, Err: errNegative}
		}
		params = params.WithMaxPrice(ceiling)
	}

	return term, params, nil
}
