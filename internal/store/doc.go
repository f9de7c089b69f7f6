// Package store implements the Data Provider over a PostgreSQL catalog.
//
// Tables:
//   - companies: one row per company
//   - products: name suffix plus metrics; company_id references companies
//   - market_trends, investment_alerts: ordered reference series
//
// Product names are stored without the search term and rendered per request,
// so every search term sees the same catalog under its own name.
package store
