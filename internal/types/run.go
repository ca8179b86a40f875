package types

import (
	"time"

	"github.com/google/uuid"
)

// Run statuses.
const (
	RunStatusCompleted = "completed"
	RunStatusDegraded  = "degraded"
)

// RunSummary describes one pipeline run for persistence.
type RunSummary struct {
	ID          uuid.UUID `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Companies   int       `json:"companies"`
	Listings    int       `json:"listings"`
	Status      string    `json:"status"`
	Degraded    []string  `json:"degraded,omitempty"`
}
