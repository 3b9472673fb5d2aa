package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "sample", cfg.Catalog.Source)
	assert.Equal(t, 3, cfg.Retrieval.TopN)
	assert.Equal(t, 0.05, cfg.Retrieval.NoiseFloor)
	assert.Equal(t, 0.1, cfg.Retrieval.WeakMatchThreshold)
	assert.Equal(t, 2000, cfg.Retrieval.VocabularySize)
	assert.Equal(t, 3, cfg.Retrieval.MaxNGram)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
server:
  port: 9090
catalog:
  source: github
  github:
    user: someone
    repo: catalogs
    branch: data
cache:
  driver: redis
  redis:
    addr: redis.internal:6379
retrieval:
  top_n: 5
observability:
  log_level: warn
  log_format: console
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "github", cfg.Catalog.Source)
	assert.Equal(t, "someone", cfg.Catalog.GitHub.User)
	assert.Equal(t, "data", cfg.Catalog.GitHub.Branch)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, "redis.internal:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, 5, cfg.Retrieval.TopN)
	assert.Equal(t, "warn", cfg.Observability.LogLevel)

	// Unset fields keep defaults.
	assert.Equal(t, time.Hour, cfg.Catalog.GitHub.TTL)
	assert.Equal(t, 0.05, cfg.Retrieval.NoiseFloor)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_NoPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Server.Port, cfg.Server.Port)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "7001")
	t.Setenv("CATALOG_GITHUB", "someone/catalogs@data")
	t.Setenv("REDIS_URL", "redis://cache.internal:6380")
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7001, cfg.Server.Port)
	assert.Equal(t, "github", cfg.Catalog.Source)
	assert.Equal(t, "someone", cfg.Catalog.GitHub.User)
	assert.Equal(t, "catalogs", cfg.Catalog.GitHub.Repo)
	assert.Equal(t, "data", cfg.Catalog.GitHub.Branch)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, "cache.internal:6380", cfg.Cache.Redis.Addr)
	assert.Equal(t, "error", cfg.Observability.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "invalid server port"},
		{"bad source", func(c *Config) { c.Catalog.Source = "ftp" }, "invalid catalog source"},
		{"csv without dir", func(c *Config) { c.Catalog.Source = "csv"; c.Catalog.CSV.Dir = "" }, "requires catalog.csv.dir"},
		{"github without repo", func(c *Config) { c.Catalog.Source = "github" }, "requires catalog.github.user"},
		{"bad cache driver", func(c *Config) { c.Cache.Driver = "memcached" }, "invalid cache driver"},
		{"top_n too large", func(c *Config) { c.Retrieval.TopN = 100 }, "top_n"},
		{"negative noise floor", func(c *Config) { c.Retrieval.NoiseFloor = -0.1 }, "noise_floor"},
		{"bad ngram", func(c *Config) { c.Retrieval.MaxNGram = 9 }, "max_ngram"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tc.wantErr)
		})
	}
}
