package recommend

import (
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/hiring-radar/internal/types"
)

// GenerateIndustryRecommendations derives recommendations for each industry from its insights.
// Every industry in the input is present in the output, possibly with an empty list.
func GenerateIndustryRecommendations(insights types.IndustryInsights) types.IndustryRecommendations {
	recs, _ := Industry(insights)
	return recs
}

// Industry is GenerateIndustryRecommendations with degradation reported as a *types.DegradedError.
func Industry(insights types.IndustryInsights) (recs types.IndustryRecommendations, err error) {
	log.Printf("[recommend] Generating industry-specific recommendations")
	defer func() {
		if r := recover(); r != nil {
			cause := types.RecoveredPanic(r)
			log.Printf("[recommend] Error generating industry recommendations: %v", cause)
			recs = types.IndustryRecommendations{}
			err = &types.DegradedError{Stage: "industry recommendations", Cause: cause}
		}
	}()

	recs = make(types.IndustryRecommendations, len(insights))
	for industry, list := range insights {
		recs[industry] = forIndustry(industry, types.GroupInsightsByType(list))
	}
	log.Printf("[recommend] Generated recommendations for %d industries", len(recs))
	return recs, nil
}

func forIndustry(industry string, byType map[types.InsightType][]types.Insight) []types.Recommendation {
	recs := []types.Recommendation{}

	if group := byType[types.InsightIndustrySkills]; len(group) > 0 {
		if top := firstN(group[0].TopSkills, maxSkills); len(top) > 0 {
			recs = append(recs, types.Recommendation{
				Type:     TypeIndustrySkillInvestment,
				Industry: industry,
				Skills:   top,
				Priority: types.PriorityHigh,
				Recommendation: fmt.Sprintf("Focus training on %s-critical skills: %s. These skills are in highest demand across the industry.",
					industry, strings.Join(top, ", ")),
			})
		}
	}

	if group := byType[types.InsightIndustryHubs]; len(group) > 0 && len(group[0].TopLocations) > 0 {
		location := group[0].TopLocations[0]
		recs = append(recs, types.Recommendation{
			Type:     TypeIndustryLocationStrategy,
			Industry: industry,
			Location: location,
			Priority: types.PriorityMedium,
			Recommendation: fmt.Sprintf("Consider talent presence in %s, the primary hiring hub for the %s industry.",
				location, industry),
		})
	}

	if group := byType[types.InsightIndustryLeader]; len(group) > 0 && group[0].Company != "" {
		company := group[0].Company
		recs = append(recs, types.Recommendation{
			Type:     TypeIndustryCompetitorAnalysis,
			Industry: industry,
			Company:  company,
			Priority: types.PriorityHigh,
			Recommendation: fmt.Sprintf("Monitor %s's strategic moves closely. They are the hiring leader in the %s industry, which may indicate upcoming market initiatives.",
				company, industry),
		})
	}

	if group := byType[types.InsightIndustrySpecificSkill]; len(group) > 0 && group[0].Skill != "" {
		skill := group[0].Skill
		recs = append(recs, types.Recommendation{
			Type:     TypeIndustrySpecialization,
			Industry: industry,
			Skill:    skill,
			Priority: types.PriorityMedium,
			Recommendation: fmt.Sprintf("Develop expertise in %s, a specialized skill particularly valuable in the %s industry.",
				skill, industry),
		})
	}

	return recs
}
