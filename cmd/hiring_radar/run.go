package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/jonathan/hiring-radar/internal/analysis"
	"github.com/jonathan/hiring-radar/internal/config"
	"github.com/jonathan/hiring-radar/internal/observability"
	"github.com/jonathan/hiring-radar/internal/pipeline"
	"github.com/jonathan/hiring-radar/internal/types"
	"github.com/spf13/cobra"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full insight pipeline end-to-end",
	Long: `Orchestrates the whole analysis: process -> aggregate -> hiring trends -> skill patterns -> market shifts -> industry trends -> recommendations.

Listings come from --listings, or from the watchlist database when no file is given. When a database, Redis or
Kafka is configured the report is logged, cached and published.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath   string
	runListings     string
	runCompanies    string
	runOutput       string
	runDatabaseURL  string
	runRedisURL     string
	runKafkaBrokers []string
	runVerbose      bool
)

func init() {
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runListings, "listings", "l", "", "Path to listings batch JSON file (defaults to the watchlist database)")
	runCommand.Flags().StringVarP(&runCompanies, "companies", "c", "", "Path to company metadata (JSON or YAML)")
	runCommand.Flags().StringVarP(&runOutput, "out", "o", "", "Path to output report JSON file (default stdout)")
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	runCommand.Flags().StringVar(&runRedisURL, "redis-url", "", "Redis URL for the report cache (optional, defaults to REDIS_URL env var)")
	runCommand.Flags().StringSliceVar(&runKafkaBrokers, "kafka-brokers", nil, "Kafka brokers for insight events (optional, defaults to KAFKA_BROKERS env var)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := loadConfig(runConfigPath)
	if err != nil {
		return err
	}

	// Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("listings") {
		cfg.Listings = runListings
	}
	if cmd.Flags().Changed("companies") {
		cfg.Companies = runCompanies
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("redis-url") {
		cfg.RedisURL = runRedisURL
	}
	if cmd.Flags().Changed("kafka-brokers") {
		cfg.KafkaBrokers = runKafkaBrokers
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	if cfg.Listings == "" && cfg.DatabaseURL == "" {
		return fmt.Errorf("either --listings or a database (--db-url or DATABASE_URL) must be provided")
	}

	svc, err := openServices(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer svc.Close()

	now := time.Now()
	var in pipeline.Input
	if cfg.Listings != "" {
		if in.Listings, err = readBatch(cfg.Listings); err != nil {
			return err
		}
		if in.Companies, err = readCompanies(cfg.Companies); err != nil {
			return err
		}
	} else {
		if in.Listings, in.Companies, err = watchlistBatch(ctx, svc.db, now); err != nil {
			return fmt.Errorf("failed to load watchlist listings: %w", err)
		}
		if cfg.Companies != "" {
			if in.Companies, err = readCompanies(cfg.Companies); err != nil {
				return err
			}
		}
	}

	report, err := runPipeline(ctx, in, cfg, svc.sinks(), now)
	if err != nil {
		return err
	}
	return writeJSON(runOutput, report)
}

// runPipeline runs the pipeline with the thresholds and verbosity of cfg.
func runPipeline(ctx context.Context, in pipeline.Input, cfg config.Config, sinks pipeline.Sinks, now time.Time) (*pipeline.Report, error) {
	opts := pipeline.Options{
		Analyzer: analysis.New(cfg.Thresholds),
		Now:      func() time.Time { return now },
		Verbose:  cfg.Verbose,
		Sinks:    sinks,
	}
	if cfg.Verbose {
		opts.Printer = observability.NewPrinter(os.Stderr)
	}

	report, err := pipeline.Run(ctx, in, opts)
	if err != nil {
		return nil, fmt.Errorf("pipeline failed: %w", err)
	}
	if report.Status() == types.RunStatusDegraded {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: run %s degraded: %v\n", report.RunID, report.Degraded)
	}
	return report, nil
}
