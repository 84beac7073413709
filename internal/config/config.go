package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // import.timezone must resolve on hosts without zoneinfo

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/watspent/watspent/internal/analytics"
)

// FileName is the default config file name.
const FileName = "watspent.yaml"

// Config represents the top-level watspent.yaml configuration.
type Config struct {
	Analytics AnalyticsConfig   `yaml:"analytics"`
	Venues    map[string]string `yaml:"venues,omitempty"` // terminal prefix -> name
	Import    ImportConfig      `yaml:"import"`
	Server    ServerConfig      `yaml:"server"`
	Logging   LoggingConfig     `yaml:"logging"`
	Export    ExportConfig      `yaml:"export"`
	History   HistoryConfig     `yaml:"history"`
}

// AnalyticsConfig controls spending classification.
type AnalyticsConfig struct {
	SpendSign         string   `yaml:"spend_sign"` // "negative" or "positive"
	ExcludedTypeCodes []string `yaml:"excluded_type_codes"`
	OutlierLimit      string   `yaml:"outlier_limit,omitempty"` // decimal; empty disables
}

// ImportConfig controls parsing.
type ImportConfig struct {
	Timezone string `yaml:"timezone"` // IANA name for portal date-times
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// ExportConfig controls where CSV exports are written.
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// HistoryConfig controls the import history log.
type HistoryConfig struct {
	File string `yaml:"file,omitempty"` // empty disables
}

// Load reads a watspent.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, but a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
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

// Default returns a Config with sensible defaults.
func Default() *Config {
	opts := analytics.DefaultOptions()
	return &Config{
		Analytics: AnalyticsConfig{
			SpendSign:         string(opts.Sign),
			ExcludedTypeCodes: opts.ExcludedTypeCodes,
		},
		Import: ImportConfig{
			Timezone: "UTC",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Export: ExportConfig{
			Dir: ".",
		},
	}
}

// Options converts the analytics section into analytics.Options.
func (c AnalyticsConfig) Options() (analytics.Options, error) {
	sign, err := analytics.ParseSpendSign(c.SpendSign)
	if err != nil {
		return analytics.Options{}, err
	}
	opts := analytics.Options{
		Sign:              sign,
		ExcludedTypeCodes: c.ExcludedTypeCodes,
	}
	if limit := strings.TrimSpace(c.OutlierLimit); limit != "" {
		opts.OutlierLimit, err = decimal.NewFromString(limit)
		if err != nil {
			return analytics.Options{}, fmt.Errorf("parsing outlier_limit %q: %w", c.OutlierLimit, err)
		}
	}
	return opts, nil
}

// Location resolves the import timezone.
func (c ImportConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
