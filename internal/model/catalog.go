package model

import (
	"errors"
	"fmt"
)

// Catalog is one consistent batch of reference data.
type Catalog struct {
	Products  []Product
	Companies []Company
	Trends    []MarketTrend
	Alerts    []InvestmentAlert
}

// Validate checks that every product references a company in the batch and
// that field values are in range. A NaN rating is unreported and passes. It
// returns the first problem found.
func (c *Catalog) Validate() error {
	companies := make(map[string]struct{}, len(c.Companies))
	for _, co := range c.Companies {
		if co.ID == "" {
			return errors.New("company id is required")
		}
		if _, dup := companies[co.ID]; dup {
			return fmt.Errorf("duplicate company id %q", co.ID)
		}
		if co.Revenue.IsNegative() {
			return fmt.Errorf("company %s: negative revenue", co.ID)
		}
		if co.FoundedYear <= 0 {
			return fmt.Errorf("company %s: founded year %d is not positive", co.ID, co.FoundedYear)
		}
		if co.Employees < 0 {
			return fmt.Errorf("company %s: negative employees", co.ID)
		}
		companies[co.ID] = struct{}{}
	}

	products := make(map[string]struct{}, len(c.Products))
	for _, p := range c.Products {
		if p.ID == "" {
			return errors.New("product id is required")
		}
		if _, dup := products[p.ID]; dup {
			return fmt.Errorf("duplicate product id %q", p.ID)
		}
		if p.Price.IsNegative() {
			return fmt.Errorf("product %s: negative price", p.ID)
		}
		if p.Rating < MinRating || p.Rating > MaxRating {
			return fmt.Errorf("product %s: rating %g outside [%g, %g]", p.ID, p.Rating, MinRating, MaxRating)
		}
		if _, ok := companies[p.CompanyID]; !ok {
			return &DanglingReferenceError{ProductID: p.ID, CompanyID: p.CompanyID}
		}
		products[p.ID] = struct{}{}
	}

	return nil
}

// Company returns the company with the given ID.
func (c *Catalog) Company(id string) (Company, bool) {
	for _, co := range c.Companies {
		if co.ID == id {
			return co, true
		}
	}
	return Company{}, false
}

// ProductsByCompany returns a new slice of the products made by companyID,
// in catalog order.
func (c *Catalog) ProductsByCompany(companyID string) []Product {
	result := make([]Product, 0)
	for _, p := range c.Products {
		if p.CompanyID == companyID {
			result = append(result, p)
		}
	}
	return result
}
