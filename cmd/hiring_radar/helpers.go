package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/hiring-radar/internal/cache"
	"github.com/jonathan/hiring-radar/internal/companies"
	"github.com/jonathan/hiring-radar/internal/config"
	"github.com/jonathan/hiring-radar/internal/db"
	"github.com/jonathan/hiring-radar/internal/events"
	"github.com/jonathan/hiring-radar/internal/llm"
	"github.com/jonathan/hiring-radar/internal/pipeline"
	"github.com/jonathan/hiring-radar/internal/processing"
	"github.com/jonathan/hiring-radar/internal/schemas"
	"github.com/jonathan/hiring-radar/internal/types"
)

// loadConfig reads the optional config file, validates it and fills the gaps
// from the environment and the built-in defaults.
func loadConfig(path string) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}
	return cfg.MergeWithDefaults(config.FromEnv()), nil
}

// readBatch loads a listings batch, checking it against the listings schema first.
func readBatch(path string) (types.Batch, error) {
	if err := schemas.ValidateFile(schemas.Listings, path); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return nil, fmt.Errorf("invalid listings file %s: %w", path, err)
		}
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read listings file %s: %w", path, err)
	}
	var batch types.Batch
	if err := json.Unmarshal(content, &batch); err != nil {
		return nil, fmt.Errorf("failed to unmarshal listings JSON: %w", err)
	}
	if err := batch.Validate(); err != nil {
		return nil, fmt.Errorf("invalid listings file %s: %w", path, err)
	}
	return batch, nil
}

// readCompanies loads company metadata when path is set.
func readCompanies(path string) ([]types.CompanyMeta, error) {
	if path == "" {
		return nil, nil
	}
	return companies.Load(path)
}

// readJSON decodes the JSON file at path into dst.
func readJSON(path string, dst any) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(content, dst); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}
	return nil
}

// writeJSON writes v as indented JSON to path, or to stdout when path is empty or "-".
func writeJSON(path string, v any) error {
	jsonOutput, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if path == "" || path == "-" {
		_, err := fmt.Fprintln(os.Stdout, string(jsonOutput))
		return err
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}
	if err := os.WriteFile(path, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}

// connectDB opens the database named by url and applies the schema.
func connectDB(ctx context.Context, url string) (*db.DB, error) {
	if url == "" {
		return nil, fmt.Errorf("database URL is required (--db-url or DATABASE_URL)")
	}
	database, err := db.Connect(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return database, nil
}

// services holds the optional backends a pipeline run reports to.
type services struct {
	db       *db.DB
	cache    *cache.ReportCache
	producer *events.Producer
}

// openServices connects every backend cfg configures. The database is optional
// unless requireDB is set; cache and Kafka failures only disable that sink.
func openServices(ctx context.Context, cfg config.Config, requireDB bool) (*services, error) {
	s := &services{}
	if cfg.DatabaseURL != "" || requireDB {
		database, err := connectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		s.db = database
	}
	if cfg.RedisURL != "" {
		c, err := cache.New(ctx, cfg.RedisURL, time.Duration(cfg.CacheTTL))
		if err != nil {
			log.Printf("[cache] Warning: report cache disabled: %v", err)
		} else {
			s.cache = c
		}
	}
	if len(cfg.KafkaBrokers) > 0 {
		s.producer = events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	}
	return s, nil
}

// sinks returns the pipeline sinks for the open backends.
func (s *services) sinks() pipeline.Sinks {
	var sinks pipeline.Sinks
	if s.db != nil {
		sinks.Log = s.db
	}
	if s.producer != nil {
		sinks.Publisher = s.producer
	}
	if s.cache != nil {
		sinks.Cache = s.cache
	}
	return sinks
}

// Close releases every open backend.
func (s *services) Close() {
	if s.producer != nil {
		if err := s.producer.Close(); err != nil {
			log.Printf("[events] Warning: failed to close producer: %v", err)
		}
	}
	if s.cache != nil {
		_ = s.cache.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
}

// watchlistBatch loads the listings of every watched company from the last
// processing.WindowDays days, along with their metadata.
func watchlistBatch(ctx context.Context, database *db.DB, now time.Time) (types.Batch, []types.CompanyMeta, error) {
	watched, err := database.ListWatchedCompanies(ctx)
	if err != nil {
		return nil, nil, err
	}
	names := make([]string, len(watched))
	metas := make([]types.CompanyMeta, len(watched))
	for i, w := range watched {
		names[i] = w.Name
		metas[i] = db.CompanyMeta(w)
	}
	batch, err := database.LoadBatch(ctx, names, now.AddDate(0, 0, -processing.WindowDays))
	if err != nil {
		return nil, nil, err
	}
	return batch, metas, nil
}

// newLLMClient builds the Gemini client, or returns nil when no key is configured.
func newLLMClient(ctx context.Context, apiKey string) (llm.Client, error) {
	if apiKey == "" {
		return nil, nil
	}
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}
