package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode must be debug, release or test, got %q", c.Server.Mode)
	}

	switch c.Provider.Source {
	case SourceMock:
	case SourcePostgres:
		if err := c.Database.Postgres.Validate("database.postgres"); err != nil {
			return err
		}
	case SourceRemote:
		if c.Provider.RemoteURL == "" {
			return errors.New("provider.remote_url is required")
		}
		if c.Provider.MaxRetries < 0 {
			return errors.New("provider.max_retries must be >= 0")
		}
	default:
		return fmt.Errorf("provider.source must be mock, postgres or remote, got %q", c.Provider.Source)
	}

	if c.Cache.Enabled {
		if c.Cache.Host == "" {
			return errors.New("cache.host is required")
		}
		if c.Cache.TTL < 0 {
			return errors.New("cache.ttl must be >= 0")
		}
	}

	if c.Poller.Enabled && c.Poller.Interval <= 0 {
		return errors.New("poller.interval must be > 0")
	}

	if c.Feed.QueueSize < 1 {
		return errors.New("feed.queue_size must be >= 1")
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	return nil
}

// Validate checks a connection block; prefix names it in error messages.
func (db *DBConfig) Validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
