// Package server exposes the research provider, the views and the market
// feed over HTTP using gin.
//
// Routes:
//   - /health: liveness plus dependency checks
//   - /api/v1/...: raw provider records, the wire format api.Client reads
//   - /views/...: view states with status, data and user-facing message
//   - /ws/feed: WebSocket market snapshot feed
//
// Clients that send X-Session-ID get one view session per ID: a new view
// request cancels that client's previous in-flight request, which then
// answers 409.
package server
