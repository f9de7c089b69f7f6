// Package provider defines the Data Provider boundary and its in-memory mock.
//
// Implementations:
//   - Mock: deterministic reference data with artificial latency (this package)
//   - api.Client: a remote instance of this service over HTTP
//   - store.Store: a PostgreSQL catalog
//   - cache.Provider: a Redis read-through decorator over any of the above
package provider
