package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/hiring-radar/internal/types"
)

// -----------------------------------------------------------------------------
// Insight Log Methods
// -----------------------------------------------------------------------------

// SaveRun records a pipeline run and its insights in one transaction.
func (db *DB) SaveRun(ctx context.Context, run types.RunSummary, insights []types.Insight) error {
	err := pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO pipeline_runs (id, companies, listings, status, degraded, generated_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			run.ID, run.Companies, run.Listings, run.Status, nonNil(run.Degraded), run.GeneratedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert run: %w", err)
		}

		if len(insights) == 0 {
			return nil
		}
		batch := &pgx.Batch{}
		for _, in := range insights {
			data, err := json.Marshal(in)
			if err != nil {
				return fmt.Errorf("failed to marshal insight: %w", err)
			}
			batch.Queue(
				`INSERT INTO insights (run_id, type, data, insight_text, generated_at)
				 VALUES ($1, $2, $3, $4, $5)`,
				run.ID, string(in.Type), data, in.Insight, run.GeneratedAt,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert insights: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}
	return nil
}

// ListInsights returns logged insights, newest first.
func (db *DB) ListInsights(ctx context.Context, filters InsightFilters) ([]StoredInsight, error) {
	query, args := buildInsightQuery(filters)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list insights: %w", err)
	}
	defer rows.Close()

	out := []StoredInsight{}
	for rows.Next() {
		var s StoredInsight
		if err := rows.Scan(&s.ID, &s.RunID, &s.Type, &s.Text, &s.Data, &s.GeneratedAt); err != nil {
			return nil, fmt.Errorf("failed to scan insight: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// buildInsightQuery builds the ListInsights query and its arguments.
func buildInsightQuery(filters InsightFilters) (string, []any) {
	var (
		where []string
		args  []any
	)
	if filters.Type != "" {
		args = append(args, filters.Type)
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	if filters.Since != nil {
		args = append(args, *filters.Since)
		where = append(where, fmt.Sprintf("generated_at >= $%d", len(args)))
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = DefaultInsightLimit
	}
	args = append(args, limit)

	var sb strings.Builder
	sb.WriteString(`SELECT id, run_id, type, insight_text, data, generated_at FROM insights`)
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	sb.WriteString(fmt.Sprintf(" ORDER BY generated_at DESC LIMIT $%d", len(args)))
	return sb.String(), args
}

// Insight decodes the stored record back into an insight.
func (s StoredInsight) Insight() (types.Insight, error) {
	var in types.Insight
	if err := json.Unmarshal(s.Data, &in); err != nil {
		return types.Insight{}, fmt.Errorf("failed to decode insight %s: %w", s.ID, err)
	}
	return in, nil
}
