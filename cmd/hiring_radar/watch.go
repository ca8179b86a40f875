package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jonathan/hiring-radar/internal/types"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Manage the watchlist of competitor companies",
	Long:  "Add, list and remove the companies the scheduler refreshes. Requires a database (--db-url or DATABASE_URL).",
}

var watchDatabaseURL string

var watchAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a company to the watchlist, or update it",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatchAdd,
}

var watchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List watched companies",
	Args:  cobra.NoArgs,
	RunE:  runWatchList,
}

var watchRemoveCmd = &cobra.Command{
	Use:   "remove NAME",
	Short: "Remove a company from the watchlist (its stored listings are kept)",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatchRemove,
}

var (
	watchIndustry string
	watchPriority string
	watchURL      string
	watchSelector string
	watchJSON     bool
)

func init() {
	watchCmd.PersistentFlags().StringVar(&watchDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	watchAddCmd.Flags().StringVar(&watchIndustry, "industry", "", "Industry used for industry analysis")
	watchAddCmd.Flags().StringVar(&watchPriority, "priority", "", "Priority: Critical, High, Medium or Low")
	watchAddCmd.Flags().StringVar(&watchURL, "url", "", "Careers page URL")
	watchAddCmd.Flags().StringVar(&watchSelector, "selector", "", "CSS selector matching one listing on the careers page")
	watchListCmd.Flags().BoolVar(&watchJSON, "json", false, "Print JSON instead of a table")

	watchCmd.AddCommand(watchAddCmd, watchListCmd, watchRemoveCmd)
	rootCmd.AddCommand(watchCmd)
}

func watchDBURL() string {
	if watchDatabaseURL != "" {
		return watchDatabaseURL
	}
	return os.Getenv("DATABASE_URL")
}

func runWatchAdd(_ *cobra.Command, args []string) error {
	req := types.WatchCompanyRequest{
		Name:     args[0],
		Industry: watchIndustry,
		Priority: watchPriority,
		URL:      watchURL,
		Selector: watchSelector,
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid company: %w", err)
	}

	ctx := context.Background()
	database, err := connectDB(ctx, watchDBURL())
	if err != nil {
		return err
	}
	defer database.Close()

	watched, err := database.WatchCompany(ctx, req.Meta())
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stdout, "Watching %s (%s)\n", watched.Name, watched.ID)
	return nil
}

func runWatchList(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	database, err := connectDB(ctx, watchDBURL())
	if err != nil {
		return err
	}
	defer database.Close()

	watched, err := database.ListWatchedCompanies(ctx)
	if err != nil {
		return err
	}
	if watchJSON {
		return writeJSON("", watched)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tINDUSTRY\tPRIORITY\tURL")
	for _, w := range watched {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", w.Name, w.Industry, w.Priority, w.URL)
	}
	return tw.Flush()
}

func runWatchRemove(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	database, err := connectDB(ctx, watchDBURL())
	if err != nil {
		return err
	}
	defer database.Close()

	removed, err := database.UnwatchCompany(ctx, args[0])
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("company not found: %s", args[0])
	}
	_, _ = fmt.Fprintf(os.Stdout, "Removed %s\n", args[0])
	return nil
}
