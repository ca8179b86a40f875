package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"sort"
	"time"

	"github.com/jonathan/hiring-radar/internal/analysis"
	"github.com/jonathan/hiring-radar/internal/types"
)

// InsightLog persists a run and its insights.
type InsightLog interface {
	SaveRun(ctx context.Context, run types.RunSummary, insights []types.Insight) error
}

// Publisher announces a finished report to downstream consumers.
type Publisher interface {
	PublishReport(ctx context.Context, report *Report) error
}

// ReportCache stores reports by input key. Get returns nil, nil on a miss.
type ReportCache interface {
	Get(ctx context.Context, key string) (*Report, error)
	Set(ctx context.Context, key string, report *Report) error
}

// Sinks are optional destinations for a finished report. Their failures are logged
// and never fail the run.
type Sinks struct {
	Log       InsightLog
	Publisher Publisher
	Cache     ReportCache
}

func (s Sinks) deliver(ctx context.Context, key string, report *Report) {
	if s.Log != nil {
		if err := s.Log.SaveRun(ctx, report.Summary(), report.AllInsights()); err != nil {
			log.Printf("[pipeline] Warning: failed to save insight log: %v", err)
		}
	}
	if s.Publisher != nil {
		if err := s.Publisher.PublishReport(ctx, report); err != nil {
			log.Printf("[pipeline] Warning: failed to publish report: %v", err)
		}
	}
	if s.Cache != nil && key != "" && len(report.Degraded) == 0 {
		if err := s.Cache.Set(ctx, key, report); err != nil {
			log.Printf("[pipeline] Warning: failed to cache report: %v", err)
		}
	}
}

// CacheKey returns a stable key for a run: the SHA-256 of the input, the report
// day and the thresholds. The day anchors the time-series window, so a report
// never outlives the date it was built for. Listing order within the batch is
// significant.
func CacheKey(in Input, now time.Time, thresholds analysis.Thresholds) (string, error) {
	data, err := json.Marshal(struct {
		Day        string              `json:"day"`
		Thresholds analysis.Thresholds `json:"thresholds"`
		Input      Input               `json:"input"`
	}{now.Format(types.DateLayout), thresholds, in})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
