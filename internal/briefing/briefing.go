// Package briefing builds the Markdown intelligence digest: the key insights of a
// period, the top recommendations grouped by priority, and an optional LLM-written
// executive summary.
package briefing

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/hiring-radar/internal/types"
)

// Digest limits.
const (
	DefaultMaxInsights        = 5
	DefaultMaxRecommendations = 3
)

// keyInsightTypes are the insight types that make it into a digest.
var keyInsightTypes = map[types.InsightType]bool{
	types.InsightHiringSurge:       true,
	types.InsightLeadershipChanges: true,
	types.InsightTechnologyFocus:   true,
	types.InsightGeographicShift:   true,
}

var priorityOrder = []string{types.PriorityHigh, types.PriorityMedium, types.PriorityLow}

// Summarizer writes a short executive summary for a digest.
type Summarizer interface {
	Summarize(ctx context.Context, d *Digest) (string, error)
}

// Options controls digest construction. Zero values use the defaults.
type Options struct {
	Date               time.Time
	Period             string
	MaxInsights        int
	MaxRecommendations int
	Summarizer         Summarizer
}

// Digest is a rendered-ready briefing.
type Digest struct {
	Date            time.Time              `json:"date"`
	Period          string                 `json:"period"`
	Summary         string                 `json:"summary,omitempty"`
	Insights        []types.Insight        `json:"insights"`
	Recommendations []types.Recommendation `json:"recommendations"`
}

// Build selects the key insights and top recommendations and, when a summarizer
// is configured, asks it for a summary. A summarizer failure is logged and the
// digest is returned without a summary.
func Build(ctx context.Context, insights []types.Insight, recs []types.Recommendation, opts Options) *Digest {
	if opts.Date.IsZero() {
		opts.Date = time.Now()
	}
	if opts.Period == "" {
		opts.Period = string(FrequencyDaily)
	}
	if opts.MaxInsights <= 0 {
		opts.MaxInsights = DefaultMaxInsights
	}
	if opts.MaxRecommendations <= 0 {
		opts.MaxRecommendations = DefaultMaxRecommendations
	}

	d := &Digest{
		Date:            opts.Date,
		Period:          opts.Period,
		Insights:        KeyInsights(insights, opts.MaxInsights),
		Recommendations: topRecommendations(recs, opts.MaxRecommendations),
	}

	if opts.Summarizer != nil && (len(d.Insights) > 0 || len(d.Recommendations) > 0) {
		summary, err := opts.Summarizer.Summarize(ctx, d)
		if err != nil {
			log.Printf("[briefing] Summary unavailable: %v", err)
		} else {
			d.Summary = strings.TrimSpace(summary)
		}
	}
	return d
}

// KeyInsights returns up to limit insights of the digest-worthy types, in order.
func KeyInsights(insights []types.Insight, limit int) []types.Insight {
	out := []types.Insight{}
	for _, in := range insights {
		if len(out) == limit {
			break
		}
		if keyInsightTypes[in.Type] {
			out = append(out, in)
		}
	}
	return out
}

// topRecommendations orders by priority (stable) and keeps the first limit.
func topRecommendations(recs []types.Recommendation, limit int) []types.Recommendation {
	sorted := append([]types.Recommendation(nil), recs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return priorityRank(sorted[i].Priority) < priorityRank(sorted[j].Priority)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	if sorted == nil {
		sorted = []types.Recommendation{}
	}
	return sorted
}

func priorityRank(p string) int {
	for i, q := range priorityOrder {
		if p == q {
			return i
		}
	}
	return len(priorityOrder)
}

// Markdown renders the digest.
func (d *Digest) Markdown() string {
	var sb strings.Builder

	sb.WriteString("# Competitive Hiring Intelligence Digest\n\n")
	sb.WriteString(fmt.Sprintf("Your %s hiring intelligence report for **%s**\n\n", d.Period, d.Date.Format("January 02, 2006")))

	if d.Summary != "" {
		sb.WriteString("## Executive Summary\n\n")
		sb.WriteString(d.Summary)
		sb.WriteString("\n\n")
	}

	sb.WriteString("## Key Insights\n\n")
	if len(d.Insights) == 0 {
		sb.WriteString("No key insights available for this period.\n\n")
	} else {
		for _, in := range d.Insights {
			sb.WriteString(fmt.Sprintf("- **%s**: %s\n", typeLabel(in.Type), in.Insight))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Strategic Recommendations\n\n")
	if len(d.Recommendations) == 0 {
		sb.WriteString("No strategic recommendations available for this period.\n")
		return sb.String()
	}
	groups := make([][]types.Recommendation, len(priorityOrder)+1)
	for _, r := range d.Recommendations {
		k := priorityRank(r.Priority)
		groups[k] = append(groups[k], r)
	}
	for k, group := range groups {
		if len(group) == 0 {
			continue
		}
		heading := "Other"
		if k < len(priorityOrder) {
			p := priorityOrder[k]
			heading = strings.ToUpper(p[:1]) + p[1:] + " priority"
		}
		sb.WriteString(fmt.Sprintf("### %s\n\n", heading))
		for _, r := range group {
			sb.WriteString(fmt.Sprintf("- %s\n", r.Recommendation))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// typeLabel turns "hiring_surge" into "Hiring Surge".
func typeLabel(t types.InsightType) string {
	words := strings.Split(string(t), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
