// Package feed pushes market snapshots to WebSocket subscribers.
//
// The Hub:
//   - Upgrades HTTP requests and registers each connection as a subscriber
//   - Sends the latest snapshot on connect, then every published snapshot
//   - Gives each subscriber its own growable queue so a slow reader never
//     blocks the publisher
//   - Pings idle connections and drops subscribers whose writes fail
//
// The Client dials a hub and decodes its messages; the watch command uses it.
package feed
