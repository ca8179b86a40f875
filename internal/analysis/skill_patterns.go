package analysis

import (
	"fmt"
	"sort"

	"github.com/jonathan/hiring-radar/internal/types"
)

type skillStat struct {
	skill      string
	prevalence float64
	demand     int
}

func (a *Analyzer) skillPatterns(data *types.AggregatedData) []types.Insight {
	insights := []types.Insight{}
	if len(data.Companies) == 0 || len(data.SkillsByCompany) == 0 {
		return insights
	}

	stats := skillStats(data)

	var emerging, competitive []skillStat
	for _, s := range stats {
		if s.prevalence >= a.t.EmergingMinPrevalence && s.prevalence <= a.t.EmergingMaxPrevalence &&
			s.demand >= a.t.EmergingMinDemand {
			emerging = append(emerging, s)
		}
		if s.prevalence >= a.t.CompetitiveMinPrevalence && s.demand >= a.t.CompetitiveMinDemand {
			competitive = append(competitive, s)
		}
	}

	for _, s := range topByDemand(emerging, a.t.EmergingTopN) {
		insights = append(insights, types.Insight{
			Type:       types.InsightEmergingSkill,
			Skill:      s.skill,
			Prevalence: types.Float(s.prevalence),
			Demand:     types.Int(s.demand),
			Insight: fmt.Sprintf("Emerging skill: %s is appearing in %.1f%% of companies with %d total job postings.",
				s.skill, s.prevalence*100, s.demand),
		})
	}

	for _, s := range topByDemand(competitive, a.t.CompetitiveTopN) {
		insights = append(insights, types.Insight{
			Type:       types.InsightCompetitiveSkill,
			Skill:      s.skill,
			Prevalence: types.Float(s.prevalence),
			Demand:     types.Int(s.demand),
			Insight: fmt.Sprintf("Competitive skill: %s is in high demand across %.1f%% of companies with %d total job postings.",
				s.skill, s.prevalence*100, s.demand),
		})
	}

	for _, company := range data.Companies {
		companySkills, ok := data.SkillsByCompany[company]
		if !ok {
			continue
		}

		var unique []countedName
		for skill, count := range companySkills {
			if count >= a.t.UniqueMinCount && !listedElsewhere(data.SkillsByCompany, company, skill) {
				unique = append(unique, countedName{name: skill, count: count})
			}
		}

		for _, u := range topCounts(unique, a.t.UniqueTopN) {
			insights = append(insights, types.Insight{
				Type:    types.InsightUniqueSkill,
				Company: company,
				Skill:   u.name,
				Count:   types.Int(u.count),
				Insight: fmt.Sprintf("Unique focus: %s is the only company hiring for %s (%d positions), indicating a potential competitive advantage.",
					company, u.name, u.count),
			})
		}
	}
	return insights
}

// skillStats computes prevalence and total demand for every skill, sorted by name.
func skillStats(data *types.AggregatedData) []skillStat {
	companiesWith := make(map[string]int)
	demand := make(map[string]int)
	for _, companySkills := range data.SkillsByCompany {
		for skill, count := range companySkills {
			companiesWith[skill]++
			demand[skill] += count
		}
	}

	stats := make([]skillStat, 0, len(companiesWith))
	for skill, n := range companiesWith {
		stats = append(stats, skillStat{
			skill:      skill,
			prevalence: float64(n) / float64(len(data.Companies)),
			demand:     demand[skill],
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].skill < stats[j].skill })
	return stats
}

func listedElsewhere(byCompany map[string]map[string]int, company, skill string) bool {
	for other, otherSkills := range byCompany {
		if other == company {
			continue
		}
		if _, ok := otherSkills[skill]; ok {
			return true
		}
	}
	return false
}

// topByDemand orders by demand descending; equal demand keeps name order.
func topByDemand(stats []skillStat, n int) []skillStat {
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].demand > stats[j].demand })
	if len(stats) > n {
		stats = stats[:n]
	}
	return stats
}
