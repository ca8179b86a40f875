package main

import (
	"fmt"
	"os"

	"github.com/jonathan/hiring-radar/internal/aggregation"
	"github.com/jonathan/hiring-radar/internal/types"
	"github.com/spf13/cobra"
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Build cross-company distributions and hiring velocity from ProcessedData",
	Long:  "Reads the output of the process command and writes the AggregatedData JSON consumed by the analyze command.",
	RunE:  runAggregate,
}

var (
	aggregateProcessed string
	aggregateOutput    string
)

func init() {
	aggregateCmd.Flags().StringVarP(&aggregateProcessed, "processed", "p", "", "Path to ProcessedData JSON file (required)")
	aggregateCmd.Flags().StringVarP(&aggregateOutput, "out", "o", "", "Path to output AggregatedData JSON file (default stdout)")

	if err := aggregateCmd.MarkFlagRequired("processed"); err != nil {
		panic(fmt.Sprintf("failed to mark processed flag as required: %v", err))
	}

	rootCmd.AddCommand(aggregateCmd)
}

func runAggregate(_ *cobra.Command, _ []string) error {
	var processed types.ProcessedData
	if err := readJSON(aggregateProcessed, &processed); err != nil {
		return err
	}

	aggregated, err := aggregation.Aggregate(&processed)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: aggregation degraded: %v\n", err)
	}

	return writeJSON(aggregateOutput, aggregated)
}
