package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/jonathan/hiring-radar/internal/db"
	"github.com/jonathan/hiring-radar/internal/fetch"
	"github.com/jonathan/hiring-radar/internal/types"
	"github.com/spf13/cobra"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape job listings from company career pages",
	Long: `Fetches each company's careers URL and extracts listings with its CSS selector, or with the selectors of the
detected applicant-tracking platform (Greenhouse, Lever, Workday). Pages that need JavaScript can be rendered with a
headless browser (--use-browser, requires Chrome); with --llm-fallback, pages no selector matches are read by the LLM.

Companies come from --companies or, with --watchlist, from the database. --save stores the listings.`,
	RunE: runScrape,
}

var (
	scrapeCompanies   string
	scrapeWatchlist   bool
	scrapeSave        bool
	scrapeOutput      string
	scrapeUseBrowser  bool
	scrapeLLM         bool
	scrapeConcurrency int
	scrapeDatabaseURL string
	scrapeAPIKey      string
	scrapeVerbose     bool
)

func init() {
	scrapeCmd.Flags().StringVarP(&scrapeCompanies, "companies", "c", "", "Path to company metadata (JSON or YAML)")
	scrapeCmd.Flags().BoolVar(&scrapeWatchlist, "watchlist", false, "Scrape every company on the watchlist")
	scrapeCmd.Flags().BoolVar(&scrapeSave, "save", false, "Store scraped listings in the database")
	scrapeCmd.Flags().StringVarP(&scrapeOutput, "out", "o", "", "Path to output listings batch JSON file (default stdout)")
	scrapeCmd.Flags().BoolVar(&scrapeUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	scrapeCmd.Flags().BoolVar(&scrapeLLM, "llm-fallback", false, "Ask the LLM to read pages no selector matches")
	scrapeCmd.Flags().IntVar(&scrapeConcurrency, "concurrency", fetch.DefaultConcurrency, "Companies scraped in parallel")
	scrapeCmd.Flags().StringVar(&scrapeDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	scrapeCmd.Flags().StringVar(&scrapeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	scrapeCmd.Flags().BoolVarP(&scrapeVerbose, "verbose", "v", false, "Print detailed debug information")

	scrapeCmd.MarkFlagsMutuallyExclusive("companies", "watchlist")
	scrapeCmd.MarkFlagsOneRequired("companies", "watchlist")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dbURL := scrapeDatabaseURL
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}

	var database *db.DB
	if scrapeWatchlist || scrapeSave {
		var err error
		if database, err = connectDB(ctx, dbURL); err != nil {
			return err
		}
		defer database.Close()
	}

	var metas []types.CompanyMeta
	if scrapeWatchlist {
		watched, err := database.ListWatchedCompanies(ctx)
		if err != nil {
			return err
		}
		for _, w := range watched {
			metas = append(metas, db.CompanyMeta(w))
		}
	} else {
		var err error
		if metas, err = readCompanies(scrapeCompanies); err != nil {
			return err
		}
	}
	if len(metas) == 0 {
		return fmt.Errorf("no companies to scrape")
	}

	opts := fetch.ScraperOptions{
		UseBrowser:  scrapeUseBrowser,
		Concurrency: scrapeConcurrency,
		Verbose:     scrapeVerbose,
	}
	if scrapeLLM {
		apiKey := scrapeAPIKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			return fmt.Errorf("--llm-fallback needs GEMINI_API_KEY environment variable or --api-key flag")
		}
		client, err := newLLMClient(ctx, apiKey)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		opts.LLM = client
	}

	batch, scrapeErr := fetch.NewScraper(opts).ScrapeAll(ctx, metas)
	if scrapeErr != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: some companies failed:\n%v\n", scrapeErr)
	}
	if len(batch) == 0 && scrapeErr != nil {
		return fmt.Errorf("scraping failed for every company")
	}

	if scrapeSave {
		for _, c := range batch {
			n, err := database.SaveListings(ctx, c.Company, c.Listings)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(os.Stderr, "Saved %d listings for %s\n", n, c.Company)
		}
	}

	return writeJSON(scrapeOutput, batch)
}
