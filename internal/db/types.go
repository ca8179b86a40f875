package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DefaultInsightLimit caps insight queries that do not set a limit.
const DefaultInsightLimit = 100

// DefaultListingDays is the look-back window for listing queries.
const DefaultListingDays = 30

// Run is a persisted pipeline run.
type Run struct {
	ID          uuid.UUID `json:"id"`
	Companies   int       `json:"companies"`
	Listings    int       `json:"listings"`
	Status      string    `json:"status"`
	Degraded    []string  `json:"degraded,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// StoredInsight is one row of the insight log. Data holds the full insight record.
type StoredInsight struct {
	ID          uuid.UUID       `json:"id"`
	RunID       *uuid.UUID      `json:"run_id,omitempty"`
	Type        string          `json:"type"`
	Text        string          `json:"insight"`
	Data        json.RawMessage `json:"data"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// InsightFilters narrows ListInsights. Zero values mean "any".
type InsightFilters struct {
	Type  string
	Since *time.Time
	Limit int
}
