// Package api provides an HTTP client for a remote research service.
//
// Client implements provider.Provider against these endpoints:
//   - GET /api/v1/products?search={term}
//   - GET /api/v1/companies/{id}
//   - GET /api/v1/companies/{id}/products
//   - GET /api/v1/trends
//   - GET /api/v1/alerts
//
// The response envelopes in types.go are shared with the server package.
package api
