package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultServerPort      = 8080
	DefaultServerMode      = "release"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultSource          = SourceMock
	DefaultMockLatency     = 1 * time.Second
	DefaultRemoteTimeout   = 30 * time.Second
	DefaultDBPort          = 5432
	DefaultDBSSLMode       = "prefer"
	DefaultMaxConns        = 10
	DefaultMinConns        = 2
	DefaultRedisPort       = 6379
	DefaultRedisPoolSize   = 10
	DefaultCacheTTL        = 5 * time.Minute
	DefaultCachePrefix     = "research"
	DefaultPollInterval    = 1 * time.Minute
	DefaultPollTimeout     = 10 * time.Second
	DefaultFeedQueueSize   = 16
	DefaultFeedWriteWait   = 10 * time.Second
	DefaultFeedPing        = 30 * time.Second
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
)

// ApplyDefaults fills zero-valued optional fields.
func (c *Config) ApplyDefaults() {
	// Server defaults
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerPort
	}
	if c.Server.Mode == "" {
		c.Server.Mode = DefaultServerMode
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	// Provider defaults
	if c.Provider.Source == "" {
		c.Provider.Source = DefaultSource
	}
	if c.Provider.Latency == 0 {
		c.Provider.Latency = DefaultMockLatency
	}
	if c.Provider.Timeout == 0 {
		c.Provider.Timeout = DefaultRemoteTimeout
	}

	// Database defaults
	applyDBDefaults(&c.Database.Postgres)

	// Cache defaults
	if c.Cache.Port == 0 {
		c.Cache.Port = DefaultRedisPort
	}
	if c.Cache.PoolSize == 0 {
		c.Cache.PoolSize = DefaultRedisPoolSize
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Cache.Prefix == "" {
		c.Cache.Prefix = DefaultCachePrefix
	}

	// Poller defaults
	if c.Poller.Interval == 0 {
		c.Poller.Interval = DefaultPollInterval
	}
	if c.Poller.Timeout == 0 {
		c.Poller.Timeout = DefaultPollTimeout
	}

	// Feed defaults
	if c.Feed.QueueSize == 0 {
		c.Feed.QueueSize = DefaultFeedQueueSize
	}
	if c.Feed.WriteTimeout == 0 {
		c.Feed.WriteTimeout = DefaultFeedWriteWait
	}
	if c.Feed.PingInterval == 0 {
		c.Feed.PingInterval = DefaultFeedPing
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
