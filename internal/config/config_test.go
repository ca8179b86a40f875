package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/hiring-radar/internal/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"listings": "listings.json",
		"redis_url": "redis://localhost:6379/0",
		"kafka_brokers": ["localhost:9092"],
		"kafka_topic": "radar",
		"schedule": "@every 1h",
		"cache_ttl": "30m",
		"verbose": true,
		"thresholds": {"surge_percent": 50, "min_industry_size": 3, "decline_percent": 0}
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "listings.json", cfg.Listings)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "radar", cfg.KafkaTopic)
	assert.Equal(t, "@every 1h", cfg.Schedule)
	assert.Equal(t, Duration(30*time.Minute), cfg.CacheTTL)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 50.0, cfg.Thresholds.SurgePercent)
	assert.Equal(t, 3, cfg.Thresholds.MinIndustrySize)
	assert.Zero(t, cfg.Thresholds.DeclinePercent)
	assert.Equal(t, analysis.DefaultThresholds().LeaderFactor, cfg.Thresholds.LeaderFactor)

	// An explicit zero survives merging with defaults
	merged := cfg.MergeWithDefaults(Config{})
	assert.Zero(t, merged.Thresholds.DeclinePercent)
	assert.Equal(t, 50.0, merged.Thresholds.SurgePercent)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Duration
		wantErr bool
	}{
		{name: "string", input: `"90m"`, want: Duration(90 * time.Minute)},
		{name: "seconds", input: `120`, want: Duration(2 * time.Minute)},
		{name: "bad string", input: `"soon"`, wantErr: true},
		{name: "wrong type", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/radar")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,,")
	t.Setenv("KAFKA_TOPIC", "events")
	t.Setenv("RADAR_SCHEDULE", "@hourly")
	t.Setenv("GEMINI_API_KEY", "key")

	cfg := FromEnv()
	assert.Equal(t, "postgres://localhost/radar", cfg.DatabaseURL)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "events", cfg.KafkaTopic)
	assert.Equal(t, "@hourly", cfg.Schedule)
	assert.Equal(t, "key", cfg.APIKey)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty config", cfg: Config{}},
		{name: "valid schedule", cfg: Config{Schedule: "@every 6h"}},
		{name: "cron expression", cfg: Config{Schedule: "0 */6 * * *"}},
		{name: "invalid schedule", cfg: Config{Schedule: "every six hours"}, wantErr: "schedule"},
		{name: "negative ttl", cfg: Config{CacheTTL: Duration(-time.Second)}, wantErr: "cache_ttl"},
		{name: "brokers without topic", cfg: Config{KafkaBrokers: []string{"localhost:9092"}}, wantErr: "kafka_topic"},
		{name: "bad thresholds", cfg: Config{Thresholds: analysis.Thresholds{DeclinePercent: 10}}, wantErr: "thresholds"},
		{name: "missing listings", cfg: Config{Listings: "/nonexistent/listings.json"}, wantErr: "listings file not found"},
		{name: "missing companies", cfg: Config{Companies: "/nonexistent/companies.yaml"}, wantErr: "companies file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		Companies:   "companies.yaml",
		DatabaseURL: "postgres://default",
		KafkaTopic:  "default-topic",
		CacheTTL:    Duration(time.Hour),
	}

	thresholds := analysis.DefaultThresholds()
	thresholds.SurgePercent = 45
	partial := Config{
		Listings:    "custom.json",
		DatabaseURL: "postgres://custom",
		Thresholds:  thresholds,
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "custom.json", merged.Listings)
	assert.Equal(t, "postgres://custom", merged.DatabaseURL)
	assert.Equal(t, 45.0, merged.Thresholds.SurgePercent)

	// Default values should fill in empty fields
	assert.Equal(t, "companies.yaml", merged.Companies)
	assert.Equal(t, "default-topic", merged.KafkaTopic)
	assert.Equal(t, Duration(time.Hour), merged.CacheTTL)
	assert.Equal(t, DefaultSchedule, merged.Schedule)
	assert.Equal(t, analysis.DefaultThresholds().LeaderFactor, merged.Thresholds.LeaderFactor)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{Listings: "listings.json"}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "listings.json", merged.Listings)
	assert.Equal(t, DefaultKafkaTopic, merged.KafkaTopic)
	assert.Equal(t, DefaultSchedule, merged.Schedule)
	assert.Equal(t, Duration(DefaultCacheTTL), merged.CacheTTL)
	assert.Equal(t, analysis.DefaultThresholds(), merged.Thresholds)
}
