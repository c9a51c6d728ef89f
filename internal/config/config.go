package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/MacMatch/internal/carbon"
	"github.com/MikeSquared-Agency/MacMatch/internal/scoring"
	"github.com/MikeSquared-Agency/MacMatch/internal/store"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Hermes    HermesConfig    `yaml:"hermes"`
	Collector CollectorConfig `yaml:"collector"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Carbon    carbon.Factors  `yaml:"carbon"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Port               int    `yaml:"port"`
	MetricsPort        int    `yaml:"metrics_port"`
	AdminToken         string `yaml:"admin_token"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	URL    string `yaml:"url"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

type CollectorConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

type CatalogConfig struct {
	MacsPath        string `yaml:"macs_path"`
	AssumptionsPath string `yaml:"assumptions_path"`
}

type ScoringConfig struct {
	Efficiency scoring.Efficiency `yaml:"efficiency"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:               8700,
			MetricsPort:        8701,
			RateLimitPerMinute: 120,
		},
		Database: DatabaseConfig{
			Driver: store.DriverMemory,
		},
		Catalog: CatalogConfig{
			MacsPath:        "data/macbooks.csv",
			AssumptionsPath: "data/tco_assumptions.yaml",
		},
		Scoring: ScoringConfig{
			Efficiency: scoring.DefaultEfficiency(),
		},
		Carbon: carbon.DefaultFactors(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if err := c.Scoring.Efficiency.Validate(); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	if err := scoring.ValidateWeightTable(); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	if err := c.Carbon.Validate(); err != nil {
		return fmt.Errorf("carbon: %w", err)
	}
	switch c.Database.Driver {
	case store.DriverMemory, store.DriverPostgres, store.DriverSQLite:
	default:
		return fmt.Errorf("database: unknown driver %q", c.Database.Driver)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging: unknown format %q", c.Logging.Format)
	}
	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("server: rate_limit_per_minute must not be negative")
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MACMATCH_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("MACMATCH_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("MACMATCH_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("MACMATCH_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RateLimitPerMinute = n
		}
	}
	if v := os.Getenv("MACMATCH_DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("MACMATCH_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("MACMATCH_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("MACMATCH_COLLECTOR_URL"); v != "" {
		cfg.Collector.URL = v
	}
	if v := os.Getenv("MACMATCH_COLLECTOR_TOKEN"); v != "" {
		cfg.Collector.Token = v
	}
	if v := os.Getenv("MACMATCH_CATALOG_PATH"); v != "" {
		cfg.Catalog.MacsPath = v
	}
	if v := os.Getenv("MACMATCH_ASSUMPTIONS_PATH"); v != "" {
		cfg.Catalog.AssumptionsPath = v
	}
	if v := os.Getenv("MACMATCH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("MACMATCH_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
