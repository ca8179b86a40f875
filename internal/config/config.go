// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/hiring-radar/internal/analysis"
	"github.com/robfig/cron/v3"
)

// DefaultSchedule is the refresh interval used when no schedule is configured.
const DefaultSchedule = "@every 6h"

// DefaultKafkaTopic is the topic insight events are published to.
const DefaultKafkaTopic = "hiring-radar.insights"

// DefaultCacheTTL is how long a cached report stays valid.
const DefaultCacheTTL = 6 * time.Hour

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Listings  string `json:"listings,omitempty"`  // Path to a listings batch (JSON object keyed by company)
	Companies string `json:"companies,omitempty"` // Path to company metadata (JSON or YAML)

	// Services
	DatabaseURL  string   `json:"database_url,omitempty"`  // PostgreSQL connection URL
	RedisURL     string   `json:"redis_url,omitempty"`     // Redis URL for the report cache
	KafkaBrokers []string `json:"kafka_brokers,omitempty"` // Kafka bootstrap brokers
	KafkaTopic   string   `json:"kafka_topic,omitempty"`   // Topic for insight events
	Schedule     string   `json:"schedule,omitempty"`      // Cron spec for the refresh job
	CacheTTL     Duration `json:"cache_ttl,omitempty"`     // Report cache lifetime, e.g. "6h"

	// Behavior
	APIKey     string              `json:"api_key,omitempty"`     // Gemini API key for briefings
	UseBrowser bool                `json:"use_browser,omitempty"` // Use headless browser for JS career pages
	Verbose    bool                `json:"verbose,omitempty"`     // Print detailed debug information
	Thresholds analysis.Thresholds `json:"thresholds"`            // Analyzer cut-offs; keys left out use defaults
}

// Duration is a time.Duration that decodes from a Go duration string.
type Duration time.Duration

// UnmarshalJSON accepts either a duration string ("90m") or a number of seconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var secs float64
	if err := json.Unmarshal(data, &secs); err != nil {
		return fmt.Errorf("duration must be a string or a number of seconds")
	}
	*d = Duration(time.Duration(secs * float64(time.Second)))
	return nil
}

// MarshalJSON writes the duration in its string form.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from the process environment. Empty variables are left unset.
func FromEnv() Config {
	cfg := Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		KafkaTopic:  os.Getenv("KAFKA_TOPIC"),
		Schedule:    os.Getenv("RADAR_SCHEDULE"),
		APIKey:      os.Getenv("GEMINI_API_KEY"),
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.CacheTTL < 0 {
		return fmt.Errorf("config error: 'cache_ttl' must be non-negative")
	}

	if c.Schedule != "" {
		if _, err := cron.ParseStandard(c.Schedule); err != nil {
			return fmt.Errorf("config error: invalid 'schedule' %q: %w", c.Schedule, err)
		}
	}

	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		return fmt.Errorf("config error: 'kafka_topic' is required when 'kafka_brokers' is set")
	}

	if !c.Thresholds.IsZero() {
		if err := c.Thresholds.Validate(); err != nil {
			return fmt.Errorf("config error: thresholds: %w", err)
		}
	}

	// Validate file paths exist (if specified)
	if c.Listings != "" {
		if _, err := os.Stat(c.Listings); os.IsNotExist(err) {
			return fmt.Errorf("config error: listings file not found: %s", c.Listings)
		}
	}

	if c.Companies != "" {
		if _, err := os.Stat(c.Companies); os.IsNotExist(err) {
			return fmt.Errorf("config error: companies file not found: %s", c.Companies)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file and environment values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Listings == "" {
		result.Listings = defaults.Listings
	}
	if result.Companies == "" {
		result.Companies = defaults.Companies
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if len(result.KafkaBrokers) == 0 {
		result.KafkaBrokers = defaults.KafkaBrokers
	}

	if result.KafkaTopic == "" {
		if defaults.KafkaTopic != "" {
			result.KafkaTopic = defaults.KafkaTopic
		} else {
			result.KafkaTopic = DefaultKafkaTopic
		}
	}
	if result.Schedule == "" {
		if defaults.Schedule != "" {
			result.Schedule = defaults.Schedule
		} else {
			result.Schedule = DefaultSchedule
		}
	}
	if result.CacheTTL == 0 {
		if defaults.CacheTTL > 0 {
			result.CacheTTL = defaults.CacheTTL
		} else {
			result.CacheTTL = Duration(DefaultCacheTTL)
		}
	}

	// Thresholds come whole: a decoded "thresholds" block is already layered
	// over the analyzer defaults, so only an absent block is filled here.
	if result.Thresholds.IsZero() {
		result.Thresholds = defaults.Thresholds
	}
	if result.Thresholds.IsZero() {
		result.Thresholds = analysis.DefaultThresholds()
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
