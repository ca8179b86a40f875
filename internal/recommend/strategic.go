// Package recommend maps groups of insights to prioritized recommendations.
package recommend

import (
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/hiring-radar/internal/types"
)

// Recommendation types.
const (
	TypeSkillInvestment      = "skill_investment"
	TypeGeographicExpansion  = "geographic_expansion"
	TypeCompetitiveMonitor   = "competitive_monitoring"
	TypeTechnologyInvestment = "technology_investment"
	TypeCompetitiveAdvantage = "competitive_advantage"
	TypeStrategicShift       = "strategic_shift"
	TypeStrategicPositioning = "strategic_positioning"

	TypeIndustrySkillInvestment    = "industry_skill_investment"
	TypeIndustryLocationStrategy   = "industry_location_strategy"
	TypeIndustryCompetitorAnalysis = "industry_competitor_analysis"
	TypeIndustrySpecialization     = "industry_specialization"
)

const (
	maxSkills              = 3
	maxSurgingCompanies    = 3
	maxLeadershipCompanies = 2
	maxDivergent           = 2
	minCompetitorsForTrend = 2
)

// GenerateStrategicRecommendations derives recommendations from a combined insight list.
// Rules are applied in a fixed order and each contributes at most one recommendation,
// except divergent strategies which contribute up to two.
func GenerateStrategicRecommendations(insights []types.Insight) []types.Recommendation {
	recs, _ := Strategic(insights)
	return recs
}

// Strategic is GenerateStrategicRecommendations with degradation reported as a *types.DegradedError.
func Strategic(insights []types.Insight) (recs []types.Recommendation, err error) {
	log.Printf("[recommend] Generating strategic recommendations")
	defer func() {
		if r := recover(); r != nil {
			cause := types.RecoveredPanic(r)
			log.Printf("[recommend] Error generating strategic recommendations: %v", cause)
			recs = []types.Recommendation{}
			err = &types.DegradedError{Stage: "strategic recommendations", Cause: cause}
		}
	}()

	recs = strategic(types.GroupInsightsByType(insights))
	log.Printf("[recommend] Generated %d strategic recommendations", len(recs))
	return recs, nil
}

func strategic(byType map[types.InsightType][]types.Insight) []types.Recommendation {
	recs := []types.Recommendation{}

	if group := byType[types.InsightEmergingSkill]; len(group) > 0 {
		emerging := firstN(field(group, func(in types.Insight) string { return in.Skill }), maxSkills)
		recs = append(recs, types.Recommendation{
			Type:     TypeSkillInvestment,
			Skills:   emerging,
			Priority: types.PriorityHigh,
			Recommendation: fmt.Sprintf("Invest in training for emerging skills: %s. These skills are growing in demand but not yet widespread, providing a competitive advantage window.",
				strings.Join(emerging, ", ")),
		})
	}

	if group := byType[types.InsightGeographicShift]; len(group) > 0 {
		region, count := mostCommon(field(group, func(in types.Insight) string { return in.Region }))
		if count >= minCompetitorsForTrend {
			recs = append(recs, types.Recommendation{
				Type:     TypeGeographicExpansion,
				Region:   region,
				Priority: types.PriorityMedium,
				Recommendation: fmt.Sprintf("Consider %s market presence. Multiple competitors are expanding hiring in this region, indicating potential market opportunities.",
					region),
			})
		}
	}

	if group := byType[types.InsightHiringSurge]; len(group) > 0 {
		surging := firstN(field(group, func(in types.Insight) string { return in.Company }), maxSurgingCompanies)
		recs = append(recs, types.Recommendation{
			Type:      TypeCompetitiveMonitor,
			Companies: surging,
			Priority:  types.PriorityHigh,
			Recommendation: fmt.Sprintf("Monitor product launches from %s. These companies show significant hiring surges, often preceding major product initiatives.",
				strings.Join(surging, ", ")),
		})
	}

	if group := byType[types.InsightTechnologyFocus]; len(group) > 0 {
		tech, count := mostCommon(field(group, func(in types.Insight) string { return in.Category }))
		if count >= minCompetitorsForTrend {
			recs = append(recs, types.Recommendation{
				Type:       TypeTechnologyInvestment,
				Technology: tech,
				Priority:   types.PriorityHigh,
				Recommendation: fmt.Sprintf("Strategically evaluate %s investments. Multiple competitors are heavily investing in this technology area, signaling industry direction.",
					tech),
			})
		}
	}

	if group := byType[types.InsightUniqueSkill]; len(group) > 0 {
		first := group[0]
		recs = append(recs, types.Recommendation{
			Type:     TypeCompetitiveAdvantage,
			Company:  first.Company,
			Skill:    first.Skill,
			Priority: types.PriorityMedium,
			Recommendation: fmt.Sprintf("Research %s's use of %s. They're uniquely hiring for this skill, potentially indicating proprietary technology or market differentiation.",
				first.Company, first.Skill),
		})
	}

	if group := byType[types.InsightLeadershipChanges]; len(group) > 0 {
		leaders := firstN(field(group, func(in types.Insight) string { return in.Company }), maxLeadershipCompanies)
		recs = append(recs, types.Recommendation{
			Type:      TypeStrategicShift,
			Companies: leaders,
			Priority:  types.PriorityMedium,
			Recommendation: fmt.Sprintf("Prepare for potential strategic shifts from %s. Leadership hiring often precedes major strategic changes or funding events.",
				strings.Join(leaders, ", ")),
		})
	}

	divergent := byType[types.InsightDivergentStrategy]
	if len(divergent) > maxDivergent {
		divergent = divergent[:maxDivergent]
	}
	for _, in := range divergent {
		recs = append(recs, types.Recommendation{
			Type:      TypeStrategicPositioning,
			Category:  in.Category,
			Companies: []string{in.TopCompany, in.BottomCompany},
			Priority:  types.PriorityLow,
			Recommendation: fmt.Sprintf("Evaluate your positioning in %s relative to competitors. %s is heavily investing while %s is not, indicating different market bets.",
				in.Category, in.TopCompany, in.BottomCompany),
		})
	}

	return recs
}

func field(insights []types.Insight, get func(types.Insight) string) []string {
	out := make([]string, 0, len(insights))
	for _, in := range insights {
		out = append(out, get(in))
	}
	return out
}

func firstN(values []string, n int) []string {
	if len(values) > n {
		values = values[:n]
	}
	return append([]string(nil), values...)
}

// mostCommon returns the most frequent value; ties go to the value seen first.
func mostCommon(values []string) (string, int) {
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	best, bestCount := "", 0
	for _, v := range order {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best, bestCount
}
