package feed

import (
	"errors"
	"time"

	"github.com/rickgao/niche-research/internal/model"
)

// Errors
var (
	ErrAlreadyClosed   = errors.New("already closed")
	ErrHubClosed       = errors.New("hub closed")
	ErrStaleConnection = errors.New("connection stale (no ping)")
)

// MessageTypeSnapshot marks a market snapshot message.
const MessageTypeSnapshot = "snapshot"

// Message is one feed frame.
type Message struct {
	Type     string               `json:"type"`
	Seq      int64                `json:"seq"` // Increases by one per published snapshot
	Snapshot model.MarketSnapshot `json:"snapshot"`
}

// HubConfig holds hub settings.
type HubConfig struct {
	QueueSize    int           // Initial per-subscriber queue capacity
	WriteTimeout time.Duration // Deadline for each frame write
	PingInterval time.Duration // Keepalive ping period
}

// DefaultHubConfig returns sensible defaults.
func DefaultHubConfig() HubConfig {
	return HubConfig{
		QueueSize:    16,
		WriteTimeout: 10 * time.Second,
		PingInterval: 30 * time.Second,
	}
}

// ClientConfig holds watch client settings.
type ClientConfig struct {
	URL          string
	BufferSize   int           // Decoded message channel size
	WriteTimeout time.Duration // Deadline for control frames
	PingTimeout  time.Duration // Connection is stale after this long without a ping
}

// DefaultClientConfig returns sensible defaults for url.
func DefaultClientConfig(url string) ClientConfig {
	return ClientConfig{
		URL:          url,
		BufferSize:   16,
		WriteTimeout: 10 * time.Second,
		PingTimeout:  90 * time.Second,
	}
}
