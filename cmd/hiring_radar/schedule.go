package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jonathan/hiring-radar/internal/analysis"
	"github.com/jonathan/hiring-radar/internal/briefing"
	"github.com/jonathan/hiring-radar/internal/config"
	"github.com/jonathan/hiring-radar/internal/fetch"
	"github.com/jonathan/hiring-radar/internal/pipeline"
	"github.com/jonathan/hiring-radar/internal/scheduler"
	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Periodically refresh the watchlist and re-run the pipeline",
	Long: `Runs until interrupted. On every tick (and once at start-up) the watched companies are optionally scraped,
their listings from the last 30 days are analyzed, and the report is logged, cached and published.

With --brief-dir a Markdown digest is written there whenever the stored digest frequency says one is due.`,
	RunE: runSchedule,
}

var (
	scheduleConfigPath string
	scheduleSpec       string
	scheduleScrape     bool
	scheduleUseBrowser bool
	scheduleBriefDir   string
)

func init() {
	scheduleCmd.Flags().StringVar(&scheduleConfigPath, "config", "", "Path to config.json file")
	scheduleCmd.Flags().StringVar(&scheduleSpec, "spec", "", "Cron spec (default from config, RADAR_SCHEDULE or @every 6h)")
	scheduleCmd.Flags().BoolVar(&scheduleScrape, "scrape", false, "Scrape career pages on every tick")
	scheduleCmd.Flags().BoolVar(&scheduleUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	scheduleCmd.Flags().StringVar(&scheduleBriefDir, "brief-dir", "", "Directory to write due digests to")

	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(scheduleConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("spec") {
		cfg.Schedule = scheduleSpec
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = scheduleUseBrowser
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := openServices(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer svc.Close()

	sched := newScheduler(cfg, svc, scheduleScrape)
	if err := sched.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	sched.Stop()
	return nil
}

// newScheduler builds the refresh scheduler over the open services.
func newScheduler(cfg config.Config, svc *services, scrape bool) *scheduler.Scheduler {
	sc := scheduler.Config{
		Spec:  cfg.Schedule,
		Store: svc.db,
		Pipeline: pipeline.Options{
			Analyzer: analysis.New(cfg.Thresholds),
			Verbose:  cfg.Verbose,
			Sinks:    svc.sinks(),
		},
	}
	if scrape {
		sc.Scraper = fetch.NewScraper(fetch.ScraperOptions{UseBrowser: cfg.UseBrowser, Verbose: cfg.Verbose})
	}
	if svc.cache != nil {
		sc.Locker = svc.cache
	}
	if scheduleBriefDir != "" {
		sc.OnReport = func(*pipeline.Report) {
			if err := writeDueBrief(context.Background(), svc, scheduleBriefDir, time.Now()); err != nil {
				log.Printf("[briefing] Failed to write digest: %v", err)
			}
		}
	}
	return scheduler.New(sc)
}

// writeDueBrief writes a digest into dir when one is due and records it as sent.
func writeDueBrief(ctx context.Context, svc *services, dir string, now time.Time) error {
	due, err := briefing.Due(ctx, svc.db, now)
	if err != nil || !due {
		return err
	}

	freq := string(briefing.FrequencyDaily)
	if _, err := svc.db.GetSetting(ctx, briefing.SettingFrequency, &freq); err != nil {
		return err
	}
	days := 1
	if briefing.Frequency(freq) == briefing.FrequencyWeekly {
		days = 7
	}

	digest, err := briefing.FromLog(ctx, svc.db, days, now, nil)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create brief directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("brief-%s.md", now.Format("2006-01-02-1504")))
	if err := writeText(path, digest.Markdown()); err != nil {
		return err
	}
	log.Printf("[briefing] Wrote %s digest to %s", digest.Period, path)
	return briefing.MarkSent(ctx, svc.db, now)
}
