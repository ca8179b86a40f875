package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/hiring-radar/internal/briefing"
	"github.com/jonathan/hiring-radar/internal/types"
	"github.com/spf13/cobra"
)

var briefCmd = &cobra.Command{
	Use:   "brief",
	Short: "Write the hiring intelligence digest",
	Long: `Builds a Markdown digest from the insight log: the key insights of the period, the top recommendations grouped
by priority and, with --summarize, an LLM-written executive summary.

--frequency stores how often digests are due (daily, weekly or significant_changes_only); with --only-if-due the
command does nothing unless a digest is due.`,
	RunE: runBrief,
}

var (
	briefDays        int
	briefSummarize   bool
	briefOnlyIfDue   bool
	briefFrequency   string
	briefOutput      string
	briefJSON        bool
	briefDatabaseURL string
	briefAPIKey      string
)

func init() {
	briefCmd.Flags().IntVarP(&briefDays, "days", "d", 7, "Days of insights to cover")
	briefCmd.Flags().BoolVar(&briefSummarize, "summarize", false, "Add an LLM executive summary (needs GEMINI_API_KEY)")
	briefCmd.Flags().BoolVar(&briefOnlyIfDue, "only-if-due", false, "Skip unless the stored frequency says a digest is due")
	briefCmd.Flags().StringVar(&briefFrequency, "frequency", "", "Store the digest frequency: daily, weekly or significant_changes_only")
	briefCmd.Flags().StringVarP(&briefOutput, "out", "o", "", "Path to output Markdown file (default stdout)")
	briefCmd.Flags().BoolVar(&briefJSON, "json", false, "Write the digest as JSON instead of Markdown")
	briefCmd.Flags().StringVar(&briefDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	briefCmd.Flags().StringVar(&briefAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(briefCmd)
}

func runBrief(_ *cobra.Command, _ []string) error {
	req := types.BriefRequest{Days: briefDays, Summarize: briefSummarize, OnlyIfDue: briefOnlyIfDue}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid --days: %w", err)
	}
	if briefFrequency != "" {
		if _, err := briefing.ParseFrequency(briefFrequency); err != nil {
			return err
		}
	}

	dbURL := briefDatabaseURL
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}

	ctx := context.Background()
	database, err := connectDB(ctx, dbURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if briefFrequency != "" {
		if err := database.SetSetting(ctx, briefing.SettingFrequency, briefFrequency); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stderr, "Digest frequency set to %s\n", briefFrequency)
	}

	now := time.Now()
	if req.OnlyIfDue {
		due, err := briefing.Due(ctx, database, now)
		if err != nil {
			return err
		}
		if !due {
			_, _ = fmt.Fprintln(os.Stderr, "No digest due")
			return nil
		}
	}

	var summarizer briefing.Summarizer
	if req.Summarize {
		apiKey := briefAPIKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			return fmt.Errorf("--summarize needs GEMINI_API_KEY environment variable or --api-key flag")
		}
		client, err := newLLMClient(ctx, apiKey)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		summarizer = briefing.NewLLMSummarizer(client)
	}

	digest, err := briefing.FromLog(ctx, database, req.Days, now, summarizer)
	if err != nil {
		return err
	}

	if briefJSON {
		err = writeJSON(briefOutput, digest)
	} else {
		err = writeText(briefOutput, digest.Markdown())
	}
	if err != nil {
		return err
	}

	return briefing.MarkSent(ctx, database, now)
}

// writeText writes s to path, or to stdout when path is empty or "-".
func writeText(path, s string) error {
	if path == "" || path == "-" {
		_, err := fmt.Fprint(os.Stdout, s)
		return err
	}
	if err := os.WriteFile(path, []byte(s), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
