package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	yaml := `
server:
  port: 9000
  mode: debug
provider:
  source: remote
  remote_url: https://research.example.com
  max_retries: 2
cache:
  enabled: true
  host: localhost
  ttl: 30s
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9000)
	}
	if cfg.Provider.Source != SourceRemote {
		t.Errorf("Provider.Source = %q, want %q", cfg.Provider.Source, SourceRemote)
	}
	if cfg.Provider.RemoteURL != "https://research.example.com" {
		t.Errorf("Provider.RemoteURL = %q", cfg.Provider.RemoteURL)
	}
	if cfg.Cache.TTL != 30*time.Second {
		t.Errorf("Cache.TTL = %v, want %v", cfg.Cache.TTL, 30*time.Second)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "secret123")

	yaml := `
provider:
  source: postgres
database:
  postgres:
    host: localhost
    name: research
    user: research
    password: ${TEST_DB_PASSWORD}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Postgres.Password != "secret123" {
		t.Errorf("Database.Postgres.Password = %q, want %q", cfg.Database.Postgres.Password, "secret123")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	path := writeTempFile(t, "server:\n  host: 127.0.0.1\n")

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	// Check defaults were applied
	if cfg.Server.Port != DefaultServerPort {
		t.Errorf("Server.Port = %d, want default %d", cfg.Server.Port, DefaultServerPort)
	}
	if cfg.Provider.Source != SourceMock {
		t.Errorf("Provider.Source = %q, want default %q", cfg.Provider.Source, SourceMock)
	}
	if cfg.Provider.Latency != DefaultMockLatency {
		t.Errorf("Provider.Latency = %v, want default %v", cfg.Provider.Latency, DefaultMockLatency)
	}
	if cfg.Database.Postgres.Port != DefaultDBPort {
		t.Errorf("Database.Postgres.Port = %d, want default %d", cfg.Database.Postgres.Port, DefaultDBPort)
	}
	if cfg.Cache.TTL != DefaultCacheTTL {
		t.Errorf("Cache.TTL = %v, want default %v", cfg.Cache.TTL, DefaultCacheTTL)
	}
	if cfg.Feed.QueueSize != DefaultFeedQueueSize {
		t.Errorf("Feed.QueueSize = %d, want default %d", cfg.Feed.QueueSize, DefaultFeedQueueSize)
	}
	if cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log.Format = %q, want default %q", cfg.Log.Format, DefaultLogFormat)
	}
}

func TestLoadAndValidate(t *testing.T) {
	t.Run("valid mock config", func(t *testing.T) {
		path := writeTempFile(t, "provider:\n  source: mock\n")
		if _, err := LoadAndValidate(path); err != nil {
			t.Errorf("LoadAndValidate failed: %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadAndValidate(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeTempFile(t, "server: [unclosed\n")
		if _, err := LoadAndValidate(path); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() unexpected error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	validDB := DBConfig{Host: "localhost", Name: "db", User: "user", Password: "pass", MaxConns: 10, MinConns: 2}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid defaults",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port must be between 1 and 65535, got 70000",
		},
		{
			name:    "bad mode",
			mutate:  func(c *Config) { c.Server.Mode = "prod" },
			wantErr: `server.mode must be debug, release or test, got "prod"`,
		},
		{
			name:    "unknown source",
			mutate:  func(c *Config) { c.Provider.Source = "sqlite" },
			wantErr: `provider.source must be mock, postgres or remote, got "sqlite"`,
		},
		{
			name:    "remote without url",
			mutate:  func(c *Config) { c.Provider.Source = SourceRemote },
			wantErr: "provider.remote_url is required",
		},
		{
			name: "postgres missing host",
			mutate: func(c *Config) {
				c.Provider.Source = SourcePostgres
			},
			wantErr: "database.postgres.host is required",
		},
		{
			name: "postgres missing password",
			mutate: func(c *Config) {
				c.Provider.Source = SourcePostgres
				c.Database.Postgres = DBConfig{Host: "localhost", Name: "db", User: "user", MaxConns: 5}
			},
			wantErr: "database.postgres.password is required",
		},
		{
			name: "min_conns exceeds max_conns",
			mutate: func(c *Config) {
				c.Provider.Source = SourcePostgres
				c.Database.Postgres = validDB
				c.Database.Postgres.MinConns = 20
			},
			wantErr: "database.postgres.min_conns (20) cannot exceed max_conns (10)",
		},
		{
			name: "valid postgres",
			mutate: func(c *Config) {
				c.Provider.Source = SourcePostgres
				c.Database.Postgres = validDB
			},
			wantErr: "",
		},
		{
			name:    "cache without host",
			mutate:  func(c *Config) { c.Cache.Enabled = true },
			wantErr: "cache.host is required",
		},
		{
			name: "poller zero interval",
			mutate: func(c *Config) {
				c.Poller.Enabled = true
				c.Poller.Interval = -time.Second
			},
			wantErr: "poller.interval must be > 0",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: `log.format must be text or json, got "xml"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error containing %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
