package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/hiring-radar/internal/types"
	"golang.org/x/sync/errgroup"
)

// -----------------------------------------------------------------------------
// Job Listing Methods
// -----------------------------------------------------------------------------

// loadConcurrency bounds the per-company queries issued by LoadBatch.
const loadConcurrency = 4

// SaveListings stores listings for a company, adding the company to the watchlist
// when it is not watched yet. A posting already stored for the company (same
// types.JobListing.Key) is skipped and keeps its first-seen date, so repeated
// scrapes of one careers page do not multiply its listings. Returns the number
// of rows written.
func (db *DB) SaveListings(ctx context.Context, company string, listings []types.JobListing) (int, error) {
	if company == "" {
		return 0, fmt.Errorf("company name cannot be empty")
	}
	if len(listings) == 0 {
		return 0, nil
	}

	inserted := 0
	err := pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
		var companyID uuid.UUID
		err := tx.QueryRow(ctx,
			`INSERT INTO watched_companies (name) VALUES ($1)
			 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			 RETURNING id`,
			company,
		).Scan(&companyID)
		if err != nil {
			return fmt.Errorf("failed to resolve company %s: %w", company, err)
		}

		batch := &pgx.Batch{}
		for _, l := range listings {
			reqs, err := json.Marshal(nonNil(l.Requirements))
			if err != nil {
				return fmt.Errorf("failed to marshal requirements: %w", err)
			}
			batch.Queue(
				`INSERT INTO job_listings
				 (company_id, title, location, department, description, requirements, salary_range, url, posted_date, listing_key)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
				 ON CONFLICT DO NOTHING`,
				companyID, l.Title, l.Location, l.Department, l.Description, reqs, l.SalaryRange, l.URL, postedDate(l.Date), l.Key(),
			)
		}

		results := tx.SendBatch(ctx, batch)
		for range listings {
			tag, err := results.Exec()
			if err != nil {
				results.Close()
				return fmt.Errorf("failed to insert listings: %w", err)
			}
			inserted += int(tag.RowsAffected())
		}
		return results.Close()
	})
	if err != nil {
		return 0, fmt.Errorf("failed to save listings for %s: %w", company, err)
	}
	return inserted, nil
}

// LoadListings returns a company's listings posted on or after since, newest first.
func (db *DB) LoadListings(ctx context.Context, company string, since time.Time) ([]types.JobListing, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT jl.title, jl.location, jl.department, jl.description, jl.requirements,
		        jl.salary_range, jl.url, jl.posted_date
		 FROM job_listings jl
		 JOIN watched_companies wc ON jl.company_id = wc.id
		 WHERE wc.name = $1 AND jl.posted_date >= $2
		 ORDER BY jl.posted_date DESC, jl.scraped_at DESC`,
		company, since.Format(types.DateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load listings for %s: %w", company, err)
	}
	defer rows.Close()

	out := []types.JobListing{}
	for rows.Next() {
		var (
			l      types.JobListing
			reqs   []byte
			posted *time.Time
		)
		if err := rows.Scan(&l.Title, &l.Location, &l.Department, &l.Description, &reqs,
			&l.SalaryRange, &l.URL, &posted); err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		if len(reqs) > 0 {
			if err := json.Unmarshal(reqs, &l.Requirements); err != nil {
				l.Requirements = nil
			}
		}
		if posted != nil {
			l.Date = posted.Format(types.DateLayout)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// LoadBatch loads recent listings for each company concurrently. The batch keeps
// the order of companies; a company with no listings gets an empty entry.
func (db *DB) LoadBatch(ctx context.Context, companies []string, since time.Time) (types.Batch, error) {
	batch := make(types.Batch, len(companies))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)
	for i, name := range companies {
		g.Go(func() error {
			listings, err := db.LoadListings(gctx, name, since)
			if err != nil {
				return err
			}
			batch[i] = types.CompanyListings{Company: name, Listings: listings}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return batch, nil
}

// postedDate parses a listing date for storage. Unparseable dates are stored as NULL.
func postedDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(types.DateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
