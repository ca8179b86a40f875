package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/hiring-radar/internal/analysis"
	"github.com/jonathan/hiring-radar/internal/db"
	"github.com/jonathan/hiring-radar/internal/observability"
	"github.com/jonathan/hiring-radar/internal/types"
	"github.com/spf13/cobra"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "List insights from the insight log",
	Long:  `Lists logged insights, newest first. Filter by type (e.g. hiring_surge) and by a named range: "Last 7 days", "Last 30 days", "Last 90 days" or "This year".`,
	RunE:  runInsights,
}

var (
	insightsType        string
	insightsRange       string
	insightsLimit       int
	insightsJSON        bool
	insightsDatabaseURL string
)

func init() {
	insightsCmd.Flags().StringVarP(&insightsType, "type", "t", "", "Only insights of this type")
	insightsCmd.Flags().StringVarP(&insightsRange, "range", "r", "", `Only insights in this range, e.g. "Last 7 days"`)
	insightsCmd.Flags().IntVarP(&insightsLimit, "limit", "n", db.DefaultInsightLimit, "Maximum number of insights")
	insightsCmd.Flags().BoolVar(&insightsJSON, "json", false, "Print the stored records as JSON")
	insightsCmd.Flags().StringVar(&insightsDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(insightsCmd)
}

func runInsights(_ *cobra.Command, _ []string) error {
	if insightsLimit < 1 {
		return fmt.Errorf("--limit must be at least 1")
	}
	dbURL := insightsDatabaseURL
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}

	ctx := context.Background()
	database, err := connectDB(ctx, dbURL)
	if err != nil {
		return err
	}
	defer database.Close()

	filters := db.InsightFilters{Type: insightsType, Limit: insightsLimit}
	if insightsRange != "" {
		since, _ := analysis.ParseDateRange(insightsRange, time.Now())
		filters.Since = &since
	}

	stored, err := database.ListInsights(ctx, filters)
	if err != nil {
		return err
	}
	if insightsJSON {
		return writeJSON("", stored)
	}

	insights := make([]types.Insight, 0, len(stored))
	for _, s := range stored {
		in, err := s.Insight()
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			continue
		}
		insights = append(insights, in)
	}
	observability.NewPrinter(os.Stdout).PrintInsights(fmt.Sprintf("Insights (%d)", len(insights)), insights)
	return nil
}
