package api

import "github.com/rickgao/niche-research/internal/model"

// ProductsResponse from GET /products and GET /companies/{id}/products
type ProductsResponse struct {
	Products []model.Product `json:"products"`
}

// CompanyResponse from GET /companies/{id}
type CompanyResponse struct {
	Company model.Company `json:"company"`
}

// TrendsResponse from GET /trends
type TrendsResponse struct {
	Trends []model.MarketTrend `json:"trends"`
}

// AlertsResponse from GET /alerts
type AlertsResponse struct {
	Alerts []model.InvestmentAlert `json:"alerts"`
}

// ErrorResponse is the body of every 4xx/5xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
