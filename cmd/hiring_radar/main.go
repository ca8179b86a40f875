// Package main provides the hiring_radar CLI: competitive hiring intelligence
// from competitor job listings.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hiring_radar",
	Short: "Competitive hiring intelligence from competitor job listings",
	Long: `hiring_radar turns competitors' job listings into hiring insights and strategic recommendations.

Listings can be supplied as a JSON batch, scraped from career pages or loaded from the watchlist database.
Every pipeline stage is available as its own command, and "run" executes them end to end.`,
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
