package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/hiring-radar/internal/pipeline"
	"github.com/jonathan/hiring-radar/internal/sample"
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the pipeline over generated sample listings",
	Long: `Generates a deterministic batch of sample listings for five well-known companies, including a recent hiring
surge, and runs the full pipeline over it. Nothing is persisted or published.`,
	RunE: runDemo,
}

var (
	demoSeed       uint64
	demoOutput     string
	demoListings   string
	demoConfigPath string
	demoVerbose    bool
)

func init() {
	demoCmd.Flags().Uint64Var(&demoSeed, "seed", sample.DemoSeed, "Random seed for the sample batch")
	demoCmd.Flags().StringVarP(&demoOutput, "out", "o", "", "Path to output report JSON file (default stdout)")
	demoCmd.Flags().StringVar(&demoListings, "write-listings", "", "Also write the generated listings batch to this path")
	demoCmd.Flags().StringVar(&demoConfigPath, "config", "", "Path to config.json with analyzer thresholds")
	demoCmd.Flags().BoolVarP(&demoVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(demoConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = demoVerbose
	}

	now := time.Now()
	req := sample.Demo(demoSeed, now)
	if demoListings != "" {
		if err := writeJSON(demoListings, req.Listings); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stderr, "Wrote sample listings to %s\n", demoListings)
	}

	report, err := runPipeline(context.Background(), pipeline.Input{Listings: req.Listings, Companies: req.Companies}, cfg, pipeline.Sinks{}, now)
	if err != nil {
		return err
	}
	return writeJSON(demoOutput, report)
}
