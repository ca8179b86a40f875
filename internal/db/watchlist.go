package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/hiring-radar/internal/types"
)

// -----------------------------------------------------------------------------
// Watchlist Methods
// -----------------------------------------------------------------------------

const watchedColumns = `id, name, industry, priority, url, selector, created_at`

func scanWatched(row pgx.Row) (*types.WatchedCompany, error) {
	var w types.WatchedCompany
	if err := row.Scan(&w.ID, &w.Name, &w.Industry, &w.Priority, &w.URL, &w.Selector, &w.CreatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

// WatchCompany adds a company to the watchlist, or updates its metadata when it is
// already watched.
func (db *DB) WatchCompany(ctx context.Context, meta types.CompanyMeta) (*types.WatchedCompany, error) {
	name := strings.TrimSpace(meta.Name)
	if name == "" {
		return nil, fmt.Errorf("company name cannot be empty")
	}

	w, err := scanWatched(db.pool.QueryRow(ctx,
		`INSERT INTO watched_companies (name, industry, priority, url, selector)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (name) DO UPDATE SET
		   industry = EXCLUDED.industry, priority = EXCLUDED.priority,
		   url = EXCLUDED.url, selector = EXCLUDED.selector
		 RETURNING `+watchedColumns,
		name, meta.Industry, meta.Priority, meta.URL, meta.Selector,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to watch company %s: %w", name, err)
	}
	return w, nil
}

// GetWatchedCompany retrieves a watched company by name. Returns nil, nil when absent.
func (db *DB) GetWatchedCompany(ctx context.Context, name string) (*types.WatchedCompany, error) {
	w, err := scanWatched(db.pool.QueryRow(ctx,
		`SELECT `+watchedColumns+` FROM watched_companies WHERE name = $1`, name,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get watched company: %w", err)
	}
	return w, nil
}

// ListWatchedCompanies returns the watchlist ordered by creation time.
func (db *DB) ListWatchedCompanies(ctx context.Context) ([]types.WatchedCompany, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+watchedColumns+` FROM watched_companies ORDER BY created_at, name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list watched companies: %w", err)
	}
	defer rows.Close()

	var out []types.WatchedCompany
	for rows.Next() {
		w, err := scanWatched(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watched company: %w", err)
		}
		out = append(out, *w)
	}
	return out, rows.Err()
}

// UnwatchCompany removes a company and its stored listings. It reports whether a
// company was removed.
func (db *DB) UnwatchCompany(ctx context.Context, name string) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM watched_companies WHERE name = $1`, name)
	if err != nil {
		return false, fmt.Errorf("failed to unwatch company: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// CompanyMeta converts a watchlist row into company metadata.
func CompanyMeta(w types.WatchedCompany) types.CompanyMeta {
	return types.CompanyMeta{
		Name:     w.Name,
		Industry: w.Industry,
		Priority: w.Priority,
		URL:      w.URL,
		Selector: w.Selector,
	}
}
