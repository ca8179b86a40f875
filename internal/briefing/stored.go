package briefing

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/hiring-radar/internal/db"
	"github.com/jonathan/hiring-radar/internal/recommend"
	"github.com/jonathan/hiring-radar/internal/types"
)

// maxStoredInsights bounds how much of the insight log one digest reads.
const maxStoredInsights = 1000

// InsightLog lists stored insights, newest first. *db.DB satisfies it.
type InsightLog interface {
	ListInsights(ctx context.Context, filters db.InsightFilters) ([]db.StoredInsight, error)
}

// PeriodLabel names the span of a digest covering days days.
func PeriodLabel(days int) string {
	switch days {
	case 1:
		return string(FrequencyDaily)
	case 7:
		return string(FrequencyWeekly)
	default:
		return fmt.Sprintf("%d-day", days)
	}
}

// FromLog builds a digest over the insights logged in the days before now.
// Recommendations are regenerated from those insights. Records that fail to
// decode are logged and skipped.
func FromLog(ctx context.Context, src InsightLog, days int, now time.Time, summarizer Summarizer) (*Digest, error) {
	if days <= 0 {
		days = 7
	}
	since := now.AddDate(0, 0, -days)
	stored, err := src.ListInsights(ctx, db.InsightFilters{Since: &since, Limit: maxStoredInsights})
	if err != nil {
		return nil, fmt.Errorf("failed to load insights: %w", err)
	}

	insights := make([]types.Insight, 0, len(stored))
	for _, s := range stored {
		in, err := s.Insight()
		if err != nil {
			log.Printf("[briefing] Skipping insight: %v", err)
			continue
		}
		insights = append(insights, in)
	}

	recs := recommend.GenerateStrategicRecommendations(insights)
	return Build(ctx, insights, recs, Options{
		Date:       now,
		Period:     PeriodLabel(days),
		Summarizer: summarizer,
	}), nil
}
