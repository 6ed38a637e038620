package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FileName is the config file written by `tally init`.
const FileName = "tally.yaml"

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Business  BusinessConfig  `yaml:"business"`
	Currency  CurrencyConfig  `yaml:"currency"`
	Reconcile ReconcileConfig `yaml:"reconcile"`
	Report    ReportConfig    `yaml:"report"`
	Log       LogConfig       `yaml:"log"`
	Server    ServerConfig    `yaml:"server"`
	Git       GitConfig       `yaml:"git"`
}

// BusinessConfig identifies the business entity.
type BusinessConfig struct {
	Name string `yaml:"name"`
}

// CurrencyConfig controls how amounts are displayed.
type CurrencyConfig struct {
	Code string `yaml:"code"` // ISO 4217, e.g. "INR"
}

// ReconcileConfig controls trading-account balance checks.
type ReconcileConfig struct {
	Tolerance float64 `yaml:"tolerance"` // currency units
}

// ToleranceDecimal returns the tolerance as a decimal, rounded to 1e-6.
func (r ReconcileConfig) ToleranceDecimal() decimal.Decimal {
	return decimal.NewFromFloat(r.Tolerance).Round(6)
}

// ReportConfig controls report output.
type ReportConfig struct {
	PercentDecimals int    `yaml:"percent_decimals"`
	Dir             string `yaml:"dir"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// ServerConfig controls `tally serve`.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a tally.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads path if it exists and falls back to defaults
// otherwise. Environment overrides are applied in both cases.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = Default("")
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(businessName string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name: businessName,
		},
		Currency: CurrencyConfig{
			Code: "INR",
		},
		Reconcile: ReconcileConfig{
			Tolerance: 0.01,
		},
		Report: ReportConfig{
			PercentDecimals: 1,
			Dir:             "reports",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "Tally",
			AuthorEmail: "tally@cleared.dev",
		},
	}
}

// ApplyEnv loads a .env file from the working directory, if present, and
// then overrides fields from TALLY_* environment variables.
func (c *Config) ApplyEnv() error {
	_ = godotenv.Load()

	if v := os.Getenv("TALLY_BUSINESS_NAME"); v != "" {
		c.Business.Name = v
	}
	if v := os.Getenv("TALLY_CURRENCY"); v != "" {
		c.Currency.Code = strings.ToUpper(v)
	}
	if v := os.Getenv("TALLY_RECONCILE_TOLERANCE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing TALLY_RECONCILE_TOLERANCE %q: %w", v, err)
		}
		c.Reconcile.Tolerance = f
	}
	if v := os.Getenv("TALLY_PERCENT_DECIMALS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing TALLY_PERCENT_DECIMALS %q: %w", v, err)
		}
		c.Report.PercentDecimals = n
	}
	if v := os.Getenv("TALLY_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("TALLY_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("TALLY_SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	return nil
}
