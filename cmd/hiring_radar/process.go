package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jonathan/hiring-radar/internal/observability"
	"github.com/jonathan/hiring-radar/internal/processing"
	"github.com/spf13/cobra"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Tally roles, locations, skills, daily postings and salaries per company",
	Long:  "Reads a listings batch (JSON object keyed by company) and writes the ProcessedData JSON consumed by the aggregate command.",
	RunE:  runProcess,
}

var (
	processListings string
	processOutput   string
	processVerbose  bool
)

func init() {
	processCmd.Flags().StringVarP(&processListings, "listings", "l", "", "Path to listings batch JSON file (required)")
	processCmd.Flags().StringVarP(&processOutput, "out", "o", "", "Path to output ProcessedData JSON file (default stdout)")
	processCmd.Flags().BoolVarP(&processVerbose, "verbose", "v", false, "Print a summary of the processed data")

	if err := processCmd.MarkFlagRequired("listings"); err != nil {
		panic(fmt.Sprintf("failed to mark listings flag as required: %v", err))
	}

	rootCmd.AddCommand(processCmd)
}

func runProcess(_ *cobra.Command, _ []string) error {
	batch, err := readBatch(processListings)
	if err != nil {
		return err
	}

	processed, err := processing.ProcessJobDataAt(batch, time.Now())
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: processing degraded: %v\n", err)
	}
	if processVerbose {
		observability.NewPrinter(os.Stderr).PrintProcessed(processed)
	}

	return writeJSON(processOutput, processed)
}
