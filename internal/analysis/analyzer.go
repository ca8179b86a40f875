// Package analysis applies threshold rules to aggregated hiring data and emits insights.
//
// Every Analyzer method recovers from internal failures at a single seam: the method
// then returns its empty result together with a *types.DegradedError. The package-level
// functions use the default thresholds and discard that error, so callers that only
// look at the insights see "nothing found" in both cases.
package analysis

import (
	"log"

	"github.com/jonathan/hiring-radar/internal/types"
)

// Analyzer runs the insight rules with a fixed set of thresholds.
type Analyzer struct {
	t Thresholds
}

// New creates an Analyzer with t as given. A zero Thresholds means DefaultThresholds;
// any other value is used field for field, zeros included.
func New(t Thresholds) *Analyzer {
	if t.IsZero() {
		t = DefaultThresholds()
	}
	return &Analyzer{t: t}
}

// Default returns an Analyzer using DefaultThresholds.
func Default() *Analyzer {
	return New(DefaultThresholds())
}

// Thresholds returns the analyzer's effective thresholds.
func (a *Analyzer) Thresholds() Thresholds {
	return a.t
}

// HiringTrends detects surges, declines, leadership hiring, technology focus,
// remote-work focus and geographic expansion.
func (a *Analyzer) HiringTrends(data *types.AggregatedData) ([]types.Insight, error) {
	log.Printf("[analysis] Analyzing hiring trends")
	insights, err := guard("hiring trends", emptyInsights, func() []types.Insight {
		return a.hiringTrends(data)
	})
	if err == nil {
		log.Printf("[analysis] Generated %d hiring trend insights", len(insights))
	}
	return insights, err
}

// SkillPatterns detects emerging, competitive and company-unique skills.
func (a *Analyzer) SkillPatterns(data *types.AggregatedData) ([]types.Insight, error) {
	log.Printf("[analysis] Identifying skill patterns")
	insights, err := guard("skill patterns", emptyInsights, func() []types.Insight {
		return a.skillPatterns(data)
	})
	if err == nil {
		log.Printf("[analysis] Generated %d skill pattern insights", len(insights))
	}
	return insights, err
}

// MarketShifts detects category focus, divergent strategies and geographic shifts.
func (a *Analyzer) MarketShifts(data *types.AggregatedData) ([]types.Insight, error) {
	log.Printf("[analysis] Detecting market shifts")
	insights, err := guard("market shifts", emptyInsights, func() []types.Insight {
		return a.marketShifts(data)
	})
	if err == nil {
		log.Printf("[analysis] Generated %d market shift insights", len(insights))
	}
	return insights, err
}

// IndustryTrends runs the industry-scoped rules over companies grouped by industry.
func (a *Analyzer) IndustryTrends(data *types.AggregatedData, companies []types.CompanyMeta) (types.IndustryInsights, error) {
	log.Printf("[analysis] Analyzing industry-specific trends")
	insights, err := guard("industry trends", emptyIndustryInsights, func() types.IndustryInsights {
		return a.industryTrends(data, companies)
	})
	if err == nil {
		log.Printf("[analysis] Generated industry-specific insights for %d industries", len(insights))
	}
	return insights, err
}

// AnalyzeHiringTrends runs HiringTrends with the default thresholds.
func AnalyzeHiringTrends(data *types.AggregatedData) []types.Insight {
	insights, _ := Default().HiringTrends(data)
	return insights
}

// IdentifySkillPatterns runs SkillPatterns with the default thresholds.
func IdentifySkillPatterns(data *types.AggregatedData) []types.Insight {
	insights, _ := Default().SkillPatterns(data)
	return insights
}

// DetectMarketShifts runs MarketShifts with the default thresholds.
func DetectMarketShifts(data *types.AggregatedData) []types.Insight {
	insights, _ := Default().MarketShifts(data)
	return insights
}

// AnalyzeIndustryTrends runs IndustryTrends with the default thresholds.
func AnalyzeIndustryTrends(data *types.AggregatedData, companies []types.CompanyMeta) types.IndustryInsights {
	insights, _ := Default().IndustryTrends(data, companies)
	return insights
}

// guard runs fn and converts a panic into the empty value plus a DegradedError.
// A nil result from fn is replaced with the empty value.
func guard[T any](stage string, empty func() T, fn func() T) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			cause := types.RecoveredPanic(r)
			log.Printf("[analysis] Error in %s: %v", stage, cause)
			result = empty()
			err = &types.DegradedError{Stage: stage, Cause: cause}
		}
	}()

	if result = fn(); isNil(result) {
		result = empty()
	}
	return result, nil
}

func isNil(v any) bool {
	switch x := v.(type) {
	case []types.Insight:
		return x == nil
	case types.IndustryInsights:
		return x == nil
	}
	return false
}

func emptyInsights() []types.Insight { return []types.Insight{} }

func emptyIndustryInsights() types.IndustryInsights { return types.IndustryInsights{} }
