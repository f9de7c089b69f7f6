// Package view turns provider data into the research application's views.
//
// Each view load moves a State through idle → loading → success | error via
// Reduce. A Session tags every load with a fresh token and cancels the load it
// replaces; results carrying an old token are dropped with ErrStaleResult.
//
// Controllers:
//   - Dashboard: products for a search term, sorted and price-filtered
//   - Comparison: a focus product against the two largest by market share
//   - Company: a company with its products, fetched together
//   - Opportunities: market trends and investment alerts, fetched together
package view
