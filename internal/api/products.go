package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rickgao/niche-research/internal/model"
)

// FetchProducts fetches the products for a search term.
func (c *Client) FetchProducts(ctx context.Context, searchTerm string) ([]model.Product, error) {
	query := url.Values{}
	if searchTerm != "" {
		query.Set("search", searchTerm)
	}

	var resp ProductsResponse
	if err := c.get(ctx, "/api/v1/products", query, &resp); err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	return nonNil(resp.Products), nil
}

// FetchCompany fetches a single company by ID.
func (c *Client) FetchCompany(ctx context.Context, companyID string) (model.Company, error) {
	var resp CompanyResponse
	if err := c.get(ctx, "/api/v1/companies/"+url.PathEscape(companyID), nil, &resp); err != nil {
		return model.Company{}, fmt.Errorf("get company %s: %w", companyID, err)
	}
	return resp.Company, nil
}

// FetchCompanyProducts fetches the products made by a company.
func (c *Client) FetchCompanyProducts(ctx context.Context, companyID string) ([]model.Product, error) {
	var resp ProductsResponse
	if err := c.get(ctx, "/api/v1/companies/"+url.PathEscape(companyID)+"/products", nil, &resp); err != nil {
		return nil, fmt.Errorf("get company products %s: %w", companyID, err)
	}
	return nonNil(resp.Products), nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
