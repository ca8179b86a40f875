package analysis

import (
	"fmt"
	"math"

	"github.com/jonathan/hiring-radar/internal/skills"
	"github.com/jonathan/hiring-radar/internal/types"
)

func (a *Analyzer) hiringTrends(data *types.AggregatedData) []types.Insight {
	insights := []types.Insight{}
	insights = append(insights, a.velocityChanges(data)...)

	for _, company := range data.Companies {
		roles, ok := data.RolesByCompany[company]
		if !ok {
			continue
		}
		insights = append(insights, a.roleSignals(company, roles)...)
	}

	for _, company := range data.Companies {
		locations, ok := data.LocationsByCompany[company]
		if !ok {
			continue
		}
		insights = append(insights, a.locationSignals(company, locations)...)
	}
	return insights
}

// velocityChanges compares the earlier and recent halves of the velocity series.
// With an odd number of rows the recent half gets the extra row.
func (a *Analyzer) velocityChanges(data *types.AggregatedData) []types.Insight {
	var insights []types.Insight
	half := len(data.HiringVelocity) / 2
	earlier, recent := data.HiringVelocity[:half], data.HiringVelocity[half:]

	for _, company := range data.Companies {
		earlierCount := sumVelocity(earlier, company)
		recentCount := sumVelocity(recent, company)
		if earlierCount == 0 {
			continue
		}

		change := float64(recentCount-earlierCount) / float64(earlierCount) * 100
		switch {
		case change > a.t.SurgePercent:
			insights = append(insights, types.Insight{
				Type:          types.InsightHiringSurge,
				Company:       company,
				PercentChange: types.Float(change),
				Insight: fmt.Sprintf("Hiring surge detected: %s has increased hiring by %.1f%% compared to the previous period.",
					company, change),
			})
		case change < a.t.DeclinePercent:
			insights = append(insights, types.Insight{
				Type:          types.InsightHiringDecline,
				Company:       company,
				PercentChange: types.Float(change),
				Insight: fmt.Sprintf("Hiring decline detected: %s has decreased hiring by %.1f%% compared to the previous period.",
					company, math.Abs(change)),
			})
		}
	}
	return insights
}

func sumVelocity(rows []types.VelocityRow, company string) int {
	total := 0
	for _, row := range rows {
		if n, ok := row.Counts.Get(company); ok {
			total += n
		}
	}
	return total
}

func (a *Analyzer) roleSignals(company string, roles map[string]int) []types.Insight {
	var insights []types.Insight

	leadership := 0
	for role, count := range roles {
		if skills.IsLeadershipRole(role) {
			leadership += count
		}
	}
	if leadership >= a.t.LeadershipMin {
		insights = append(insights, types.Insight{
			Type:    types.InsightLeadershipChanges,
			Company: company,
			Count:   types.Int(leadership),
			Insight: fmt.Sprintf("Leadership changes: %s is hiring for %d leadership positions, indicating potential organizational changes.",
				company, leadership),
		})
	}

	// A role counts toward every technology category it matches.
	categoryCounts := make(map[string]int)
	for role, count := range roles {
		for _, category := range skills.TechCategories.Matches(role) {
			categoryCounts[category] += count
		}
	}
	for _, category := range skills.TechCategories.Names() {
		count := categoryCounts[category]
		if count >= a.t.TechFocusMin {
			insights = append(insights, types.Insight{
				Type:     types.InsightTechnologyFocus,
				Company:  company,
				Category: category,
				Count:    types.Int(count),
				Insight: fmt.Sprintf("Technology focus: %s is hiring %d roles in %s, indicating strategic investment in this area.",
					company, count, category),
			})
		}
	}
	return insights
}

func (a *Analyzer) locationSignals(company string, locations map[string]int) []types.Insight {
	var insights []types.Insight

	remote, total := 0, 0
	for location, count := range locations {
		total += count
		if skills.IsRemote(location) {
			remote += count
		}
	}
	if total > 0 {
		pct := float64(remote) / float64(total) * 100
		if pct > a.t.RemotePercent {
			insights = append(insights, types.Insight{
				Type:       types.InsightRemoteWork,
				Company:    company,
				Percentage: types.Float(pct),
				Insight: fmt.Sprintf("Remote work focus: %s has %.1f%% remote positions, indicating a strong remote work culture.",
					company, pct),
			})
		}
	}

	// A location counts toward every region it matches.
	regionCounts := make(map[string]int)
	for location, count := range locations {
		for _, region := range skills.GeoRegions.Matches(location) {
			regionCounts[region] += count
		}
	}
	for _, region := range skills.GeoRegions.Names() {
		count := regionCounts[region]
		if count >= a.t.GeoRegionMin {
			insights = append(insights, types.Insight{
				Type:    types.InsightGeographicExpansion,
				Company: company,
				Region:  region,
				Count:   types.Int(count),
				Insight: fmt.Sprintf("Geographic focus: %s has %d positions in %s, indicating strategic focus or expansion in this region.",
					company, count, region),
			})
		}
	}
	return insights
}
