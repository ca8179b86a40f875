// Package pipeline orchestrates the insight pipeline: processing, aggregation,
// analysis and recommendation generation.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/hiring-radar/internal/aggregation"
	"github.com/jonathan/hiring-radar/internal/analysis"
	"github.com/jonathan/hiring-radar/internal/observability"
	"github.com/jonathan/hiring-radar/internal/processing"
	"github.com/jonathan/hiring-radar/internal/recommend"
	"github.com/jonathan/hiring-radar/internal/types"
)

// Progress steps
const (
	StepProcess                 = "process"
	StepAggregate               = "aggregate"
	StepHiringTrends            = "hiring_trends"
	StepSkillPatterns           = "skill_patterns"
	StepMarketShifts            = "market_shifts"
	StepIndustryTrends          = "industry_trends"
	StepRecommendations         = "recommendations"
	StepIndustryRecommendations = "industry_recommendations"
)

// Progress categories
const (
	CategoryData           = "data"
	CategoryAnalysis       = "analysis"
	CategoryRecommendation = "recommendation"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Input is the raw material of a run.
type Input struct {
	Listings  types.Batch         `json:"listings"`
	Companies []types.CompanyMeta `json:"companies,omitempty"`
}

// Options holds configuration for running the pipeline
type Options struct {
	Analyzer   *analysis.Analyzer
	Now        func() time.Time
	Verbose    bool
	Printer    *observability.Printer
	OnProgress ProgressCallback
	Sinks      Sinks
}

// Report is the full output of a run.
type Report struct {
	RunID                   uuid.UUID                     `json:"run_id"`
	GeneratedAt             time.Time                     `json:"generated_at"`
	Processed               *types.ProcessedData          `json:"processed"`
	Aggregated              *types.AggregatedData         `json:"aggregated"`
	Insights                []types.Insight               `json:"insights"`
	IndustryInsights        types.IndustryInsights        `json:"industry_insights"`
	Recommendations         []types.Recommendation        `json:"recommendations"`
	IndustryRecommendations types.IndustryRecommendations `json:"industry_recommendations"`
	Degraded                []string                      `json:"degraded,omitempty"`
	Cached                  bool                          `json:"cached,omitempty"`
}

// Status is "degraded" when any stage failed internally, "completed" otherwise.
func (r *Report) Status() string {
	if len(r.Degraded) > 0 {
		return types.RunStatusDegraded
	}
	return types.RunStatusCompleted
}

// Summary returns the persistence summary of the run.
func (r *Report) Summary() types.RunSummary {
	listings := 0
	if r.Processed != nil {
		for _, n := range r.Processed.JobCounts {
			listings += n
		}
	}
	companies := 0
	if r.Processed != nil {
		companies = len(r.Processed.Companies)
	}
	return types.RunSummary{
		ID:          r.RunID,
		GeneratedAt: r.GeneratedAt,
		Companies:   companies,
		Listings:    listings,
		Status:      r.Status(),
		Degraded:    r.Degraded,
	}
}

// AllInsights returns the cross-company insights followed by every industry insight.
func (r *Report) AllInsights() []types.Insight {
	all := append([]types.Insight(nil), r.Insights...)
	for _, industry := range sortedKeys(r.IndustryInsights) {
		all = append(all, r.IndustryInsights[industry]...)
	}
	return all
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *Options, runID uuid.UUID, step, category, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			RunID:    runID.String(),
			Content:  content,
		})
	}
}

// Run executes every stage synchronously and returns the report. Stage failures are
// recorded in Report.Degraded rather than returned; the only error is context
// cancellation between stages. Run never mutates in.
func Run(ctx context.Context, in Input, opts Options) (*Report, error) {
	if opts.Analyzer == nil {
		opts.Analyzer = analysis.Default()
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	printer := opts.Printer
	if printer == nil && opts.Verbose {
		printer = observability.NewPrinter(os.Stdout)
	}

	// A hit means this exact run already went through the sinks, so it is served
	// without logging or publishing its insights a second time.
	var key string
	if opts.Sinks.Cache != nil {
		var err error
		key, err = CacheKey(in, now(), opts.Analyzer.Thresholds())
		if err != nil {
			log.Printf("[pipeline] Warning: failed to compute cache key: %v", err)
		} else if cached, err := opts.Sinks.Cache.Get(ctx, key); err != nil {
			log.Printf("[pipeline] Warning: cache lookup failed: %v", err)
		} else if cached != nil {
			cached.Cached = true
			log.Printf("[pipeline] Serving cached report %s", cached.RunID)
			return cached, nil
		}
	}

	report := &Report{
		RunID:       uuid.New(),
		GeneratedAt: now(),
	}
	log.Printf("[pipeline] Starting run %s for %d companies (%d listings)",
		report.RunID, len(in.Listings), in.Listings.TotalListings())

	degrade := func(err error) {
		var degraded *types.DegradedError
		if errors.As(err, &degraded) {
			report.Degraded = append(report.Degraded, degraded.Stage)
		} else if err != nil {
			report.Degraded = append(report.Degraded, err.Error())
		}
	}

	// Step 1: per-company tallies
	processed, err := processing.ProcessJobDataAt(in.Listings, report.GeneratedAt)
	degrade(err)
	report.Processed = processed
	if printer != nil {
		printer.PrintProcessed(processed)
	}
	emitProgress(&opts, report.RunID, StepProcess, CategoryData,
		fmt.Sprintf("Processed %d listings across %d companies", in.Listings.TotalListings(), len(processed.Companies)), nil)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 2: cross-company tables
	aggregated, err := aggregation.Aggregate(processed)
	degrade(err)
	report.Aggregated = aggregated
	emitProgress(&opts, report.RunID, StepAggregate, CategoryData,
		fmt.Sprintf("Aggregated %d locations and %d roles", len(aggregated.LocationDistribution), len(aggregated.RoleDistribution)), nil)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 3: cross-company analyzers, concatenated in a fixed order
	analyzers := []struct {
		step  string
		title string
		run   func(*types.AggregatedData) ([]types.Insight, error)
	}{
		{StepHiringTrends, "HIRING TRENDS", opts.Analyzer.HiringTrends},
		{StepSkillPatterns, "SKILL PATTERNS", opts.Analyzer.SkillPatterns},
		{StepMarketShifts, "MARKET SHIFTS", opts.Analyzer.MarketShifts},
	}
	report.Insights = []types.Insight{}
	for _, a := range analyzers {
		insights, err := a.run(aggregated)
		degrade(err)
		report.Insights = append(report.Insights, insights...)
		if printer != nil {
			printer.PrintInsights(a.title, insights)
		}
		emitProgress(&opts, report.RunID, a.step, CategoryAnalysis,
			fmt.Sprintf("Generated %d insights", len(insights)), insights)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	// Step 4: industry analysis
	industryInsights, err := opts.Analyzer.IndustryTrends(aggregated, in.Companies)
	degrade(err)
	report.IndustryInsights = industryInsights
	if printer != nil {
		printer.PrintIndustryInsights(industryInsights)
	}
	emitProgress(&opts, report.RunID, StepIndustryTrends, CategoryAnalysis,
		fmt.Sprintf("Analyzed %d industries", len(industryInsights)), nil)

	// Step 5: recommendations
	recs, err := recommend.Strategic(report.Insights)
	degrade(err)
	report.Recommendations = recs
	if printer != nil {
		printer.PrintRecommendations("STRATEGIC RECOMMENDATIONS", recs)
	}
	emitProgress(&opts, report.RunID, StepRecommendations, CategoryRecommendation,
		fmt.Sprintf("Generated %d strategic recommendations", len(recs)), recs)

	industryRecs, err := recommend.Industry(industryInsights)
	degrade(err)
	report.IndustryRecommendations = industryRecs
	if printer != nil {
		printer.PrintIndustryRecommendations(industryRecs)
		printer.PrintDegraded(report.Degraded)
	}
	emitProgress(&opts, report.RunID, StepIndustryRecommendations, CategoryRecommendation,
		fmt.Sprintf("Generated recommendations for %d industries", len(industryRecs)), nil)

	log.Printf("[pipeline] Run %s %s: %d insights, %d recommendations",
		report.RunID, report.Status(), len(report.Insights), len(report.Recommendations))

	opts.Sinks.deliver(ctx, key, report)
	return report, nil
}
