// Package poller implements the market snapshot poller.
//
// The poller:
//   - Fetches market trends and investment alerts together on a fixed interval
//   - Bounds each fetch with a per-poll timeout
//   - Stamps each snapshot with its fetch time and hands it to a handler
//   - Keeps the latest snapshot for late subscribers
package poller
