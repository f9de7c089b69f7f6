// Package model defines the record types shared across the research service.
//
// Conventions:
//   - Money (product price, company revenue): decimal.Decimal, encoded as JSON strings
//   - Percentages (market share, growth): float64 percentage points (15 = 15%)
//   - IDs: opaque strings
//   - NaN in a float field means "value not reported"
package model
