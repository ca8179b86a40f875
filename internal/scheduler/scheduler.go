// Package scheduler wires up the cron job that periodically refreshes the
// watched companies and re-runs the insight pipeline.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jonathan/hiring-radar/internal/db"
	"github.com/jonathan/hiring-radar/internal/pipeline"
	"github.com/jonathan/hiring-radar/internal/processing"
	"github.com/jonathan/hiring-radar/internal/types"
	"github.com/robfig/cron/v3"
)

// DefaultSpec refreshes every six hours.
const DefaultSpec = "@every 6h"

// lockName is the distributed lock that keeps replicas from refreshing at once.
const lockName = "scheduler-refresh"

// Store is the persistence the refresh cycle needs. SaveListings must skip
// postings it already holds for the company (see types.JobListing.Key), since
// every tick re-scrapes the same pages.
type Store interface {
	ListWatchedCompanies(ctx context.Context) ([]types.WatchedCompany, error)
	SaveListings(ctx context.Context, company string, listings []types.JobListing) (int, error)
	LoadBatch(ctx context.Context, companies []string, since time.Time) (types.Batch, error)
}

// Scraper fetches fresh listings for the watched companies.
type Scraper interface {
	ScrapeAll(ctx context.Context, companies []types.CompanyMeta) (types.Batch, error)
}

// Locker is a lock shared between scheduler replicas.
type Locker interface {
	TryLock(ctx context.Context, name string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, name string) error
}

// Config configures a Scheduler. Store is required; Scraper and Locker are optional.
type Config struct {
	Spec     string
	Store    Store
	Scraper  Scraper
	Locker   Locker
	LockTTL  time.Duration
	Pipeline pipeline.Options
	OnReport func(*pipeline.Report)
}

// Scheduler wraps robfig/cron and manages the refresh loop.
type Scheduler struct {
	cron    *cron.Cron
	cfg     Config
	running sync.Mutex
}

// New creates a Scheduler. An empty spec uses DefaultSpec.
func New(cfg Config) *Scheduler {
	if cfg.Spec == "" {
		cfg.Spec = DefaultSpec
	}
	if cfg.LockTTL == 0 {
		cfg.LockTTL = 30 * time.Minute
	}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cron.DefaultLogger),
			cron.WithChain(cron.Recover(cron.DefaultLogger)),
		),
		cfg: cfg,
	}
}

// Start registers the job and starts the scheduler. Also runs one refresh
// immediately so insights are available without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.cfg.Spec, func() {
		s.tick(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started, spec: %s", s.cfg.Spec)

	// Run immediately on startup (non-blocking)
	go s.tick(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler and waits for a running refresh.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("[scheduler] Cron stopped")
}

func (s *Scheduler) tick(ctx context.Context) {
	report, err := s.RunOnce(ctx)
	if err != nil {
		log.Printf("[scheduler] Refresh error: %v", err)
		return
	}
	if report != nil && s.cfg.OnReport != nil {
		s.cfg.OnReport(report)
	}
}

// RunOnce performs one refresh: scrape the watched companies (when a scraper is
// configured), store what was found, load the recent listings and run the pipeline.
// It returns nil, nil when there is nothing to do or another refresh holds the lock.
func (s *Scheduler) RunOnce(ctx context.Context) (*pipeline.Report, error) {
	if !s.running.TryLock() {
		log.Println("[scheduler] Previous refresh still running, skipping")
		return nil, nil
	}
	defer s.running.Unlock()

	if s.cfg.Locker != nil {
		ok, err := s.cfg.Locker.TryLock(ctx, lockName, s.cfg.LockTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			log.Println("[scheduler] Refresh locked by another instance, skipping")
			return nil, nil
		}
		defer func() {
			if err := s.cfg.Locker.Unlock(context.WithoutCancel(ctx), lockName); err != nil {
				log.Printf("[scheduler] Failed to release lock: %v", err)
			}
		}()
	}

	log.Println("[scheduler] Refresh cycle started")

	watched, err := s.cfg.Store.ListWatchedCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list watched companies: %w", err)
	}
	if len(watched) == 0 {
		log.Println("[scheduler] No watched companies, nothing to refresh")
		return nil, nil
	}

	metas := make([]types.CompanyMeta, len(watched))
	names := make([]string, len(watched))
	for i, w := range watched {
		metas[i] = db.CompanyMeta(w)
		names[i] = w.Name
	}

	if s.cfg.Scraper != nil {
		s.scrape(ctx, metas)
	}

	since := s.now().AddDate(0, 0, -processing.WindowDays)
	batch, err := s.cfg.Store.LoadBatch(ctx, names, since)
	if err != nil {
		return nil, fmt.Errorf("load listings: %w", err)
	}

	log.Printf("[scheduler] Analyzing %d listing(s) across %d company(ies)", batch.TotalListings(), len(batch))
	report, err := pipeline.Run(ctx, pipeline.Input{Listings: batch, Companies: metas}, s.cfg.Pipeline)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	log.Printf("[scheduler] Refresh cycle complete: %d insight(s), status %s", len(report.AllInsights()), report.Status())
	return report, nil
}

// scrape fetches and stores fresh listings. Failures are logged; the refresh
// continues with whatever is already stored.
func (s *Scheduler) scrape(ctx context.Context, metas []types.CompanyMeta) {
	batch, err := s.cfg.Scraper.ScrapeAll(ctx, metas)
	if err != nil {
		log.Printf("[scheduler] Scrape error: %v", err)
	}
	for _, cl := range batch {
		n, err := s.cfg.Store.SaveListings(ctx, cl.Company, cl.Listings)
		if err != nil {
			log.Printf("[scheduler] Failed to save listings for %s: %v", cl.Company, err)
			continue
		}
		log.Printf("[scheduler] Saved %d listing(s) for %s", n, cl.Company)
	}
}

func (s *Scheduler) now() time.Time {
	if s.cfg.Pipeline.Now != nil {
		return s.cfg.Pipeline.Now()
	}
	return time.Now()
}
