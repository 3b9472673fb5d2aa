// Package config provides unified configuration loading for the
// recommendation engine. Supports YAML files, environment variables, and
// programmatic overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the recommendation engine.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Catalog       CatalogConfig       `yaml:"catalog"`
	Cache         CacheConfig         `yaml:"cache"`
	Retrieval     RetrievalConfig     `yaml:"retrieval"`
	Session       SessionConfig       `yaml:"session"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	IdleTimeout      time.Duration `yaml:"idle_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
}

// CatalogConfig selects where the domain catalogs come from.
type CatalogConfig struct {
	Source string       `yaml:"source"` // sample, csv, github or sqlite
	CSV    CSVConfig    `yaml:"csv"`
	GitHub GitHubConfig `yaml:"github"`
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// CSVConfig holds local CSV directory settings.
type CSVConfig struct {
	Dir string `yaml:"dir"`
}

// GitHubConfig holds remote raw-file catalog settings.
type GitHubConfig struct {
	User   string        `yaml:"user"`
	Repo   string        `yaml:"repo"`
	Branch string        `yaml:"branch"`
	TTL    time.Duration `yaml:"ttl"`
}

// SQLiteConfig holds catalog snapshot settings.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// CacheConfig holds cache settings.
type CacheConfig struct {
	Driver     string        `yaml:"driver"` // memory or redis
	TTL        time.Duration `yaml:"ttl"`
	MaxEntries int           `yaml:"max_entries"`
	Redis      RedisConfig   `yaml:"redis"`
}

// RedisConfig holds Redis-specific settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
	Prefix   string `yaml:"prefix"`
}

// RetrievalConfig holds the ranking pipeline tunables.
type RetrievalConfig struct {
	TopN               int     `yaml:"top_n"`
	NoiseFloor         float64 `yaml:"noise_floor"`
	WeakMatchThreshold float64 `yaml:"weak_match_threshold"`
	ArtistCandidates   int     `yaml:"artist_candidates"`
	WidenedLimit       int     `yaml:"widened_limit"`
	VocabularySize     int     `yaml:"vocabulary_size"`
	MaxNGram           int     `yaml:"max_ngram"`
}

// SessionConfig holds session lifecycle settings.
type SessionConfig struct {
	MaxIdle       time.Duration `yaml:"max_idle"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // json or console
}

// Load reads configuration from a YAML file and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a configuration with sensible defaults for development.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8086,
			ReadTimeout:      15 * time.Second,
			WriteTimeout:     15 * time.Second,
			IdleTimeout:      120 * time.Second,
			GracefulShutdown: 10 * time.Second,
		},
		Catalog: CatalogConfig{
			Source: "sample",
			CSV: CSVConfig{
				Dir: "./data",
			},
			GitHub: GitHubConfig{
				Branch: "main",
				TTL:    time.Hour,
			},
			SQLite: SQLiteConfig{
				Path: "/tmp/recommend-engine.db",
			},
		},
		Cache: CacheConfig{
			Driver:     "memory",
			TTL:        time.Hour,
			MaxEntries: 10000,
			Redis: RedisConfig{
				Addr:     "localhost:6379",
				DB:       0,
				PoolSize: 10,
				Prefix:   "rec:",
			},
		},
		Retrieval: RetrievalConfig{
			TopN:               3,
			NoiseFloor:         0.05,
			WeakMatchThreshold: 0.1,
			ArtistCandidates:   10,
			WidenedLimit:       5,
			VocabularySize:     2000,
			MaxNGram:           3,
		},
		Session: SessionConfig{
			MaxIdle:       time.Hour,
			SweepInterval: 10 * time.Minute,
		},
		Observability: ObservabilityConfig{
			LogLevel:  "debug",
			LogFormat: "json",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Catalog.Source {
	case "sample", "csv", "github", "sqlite":
	default:
		return fmt.Errorf("invalid catalog source: %s", c.Catalog.Source)
	}

	if c.Catalog.Source == "csv" && c.Catalog.CSV.Dir == "" {
		return fmt.Errorf("catalog source csv requires catalog.csv.dir")
	}

	if c.Catalog.Source == "github" && (c.Catalog.GitHub.User == "" || c.Catalog.GitHub.Repo == "") {
		return fmt.Errorf("catalog source github requires catalog.github.user and repo")
	}

	if c.Catalog.Source == "sqlite" && c.Catalog.SQLite.Path == "" {
		return fmt.Errorf("catalog source sqlite requires catalog.sqlite.path")
	}

	if c.Cache.Driver != "memory" && c.Cache.Driver != "redis" {
		return fmt.Errorf("invalid cache driver: %s", c.Cache.Driver)
	}

	if c.Retrieval.TopN < 1 || c.Retrieval.TopN > 20 {
		return fmt.Errorf("top_n must be between 1 and 20")
	}

	if c.Retrieval.NoiseFloor < 0 || c.Retrieval.NoiseFloor > 1 {
		return fmt.Errorf("noise_floor must be between 0 and 1")
	}

	if c.Retrieval.WeakMatchThreshold < 0 || c.Retrieval.WeakMatchThreshold > 1 {
		return fmt.Errorf("weak_match_threshold must be between 0 and 1")
	}

	if c.Retrieval.MaxNGram < 1 || c.Retrieval.MaxNGram > 5 {
		return fmt.Errorf("max_ngram must be between 1 and 5")
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil {
			cfg.Server.Port = port
		}
	}

	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}

	if v := os.Getenv("CATALOG_SOURCE"); v != "" {
		cfg.Catalog.Source = v
	}

	if v := os.Getenv("CATALOG_DIR"); v != "" {
		cfg.Catalog.Source = "csv"
		cfg.Catalog.CSV.Dir = v
	}

	if v := os.Getenv("CATALOG_GITHUB"); v != "" {
		// user/repo or user/repo@branch
		cfg.Catalog.Source = "github"
		spec := v
		if at := strings.LastIndex(spec, "@"); at > 0 {
			cfg.Catalog.GitHub.Branch = spec[at+1:]
			spec = spec[:at]
		}
		if slash := strings.Index(spec, "/"); slash > 0 {
			cfg.Catalog.GitHub.User = spec[:slash]
			cfg.Catalog.GitHub.Repo = spec[slash+1:]
		}
	}

	if v := os.Getenv("CATALOG_SQLITE_PATH"); v != "" {
		cfg.Catalog.SQLite.Path = v
	}

	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Cache.Driver = "redis"
		cfg.Cache.Redis.Addr = strings.TrimPrefix(v, "redis://")
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
}
