package analysis

import (
	"fmt"
	"sort"

	"github.com/jonathan/hiring-radar/internal/skills"
	"github.com/jonathan/hiring-radar/internal/types"
)

// homeRegion is excluded from geographic-shift detection.
const homeRegion = "North America"

type companyShare struct {
	company string
	shares  map[string]float64
}

func (a *Analyzer) marketShifts(data *types.AggregatedData) []types.Insight {
	insights := []types.Insight{}

	categoryCounts := newCompanyTally(data.Companies, skills.RoleCategories)
	for _, row := range data.RoleDistribution {
		category, ok := skills.RoleCategories.Classify(row.Role)
		if !ok {
			continue
		}
		categoryCounts.add(data.Companies, category, row.Counts)
	}

	percentages := categoryCounts.percentages(data.Companies, skills.RoleCategories)
	for _, cs := range percentages {
		for _, category := range skills.RoleCategories.Names() {
			pct := cs.shares[category]
			if pct >= a.t.CategoryFocusPercent {
				insights = append(insights, types.Insight{
					Type:       types.InsightCategoryFocus,
					Company:    cs.company,
					Category:   category,
					Percentage: types.Float(pct),
					Insight: fmt.Sprintf("Strategic focus: %s is heavily investing in %s (%.1f%% of hiring), indicating a strategic priority.",
						cs.company, category, pct),
				})
			}
		}
	}

	if len(percentages) >= 2 {
		for _, category := range skills.RoleCategories.Names() {
			insights = append(insights, a.divergence(category, percentages)...)
		}
	}

	regionCounts := newCompanyTally(data.Companies, skills.MarketRegions)
	for _, row := range data.LocationDistribution {
		region, ok := skills.MarketRegions.Classify(row.Location)
		if !ok {
			continue
		}
		regionCounts.add(data.Companies, region, row.Counts)
	}

	for _, cs := range regionCounts.percentages(data.Companies, skills.MarketRegions) {
		for _, region := range skills.MarketRegions.Names() {
			pct := cs.shares[region]
			if region != homeRegion && pct >= a.t.GeographicShiftPercent {
				insights = append(insights, types.Insight{
					Type:       types.InsightGeographicShift,
					Company:    cs.company,
					Region:     region,
					Percentage: types.Float(pct),
					Insight: fmt.Sprintf("Geographic shift: %s has %.1f%% of roles in %s, indicating international expansion or market focus.",
						cs.company, pct, region),
				})
			}
		}
	}
	return insights
}

func (a *Analyzer) divergence(category string, percentages []companyShare) []types.Insight {
	ranked := make([]companyShare, len(percentages))
	copy(ranked, percentages)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].shares[category] > ranked[j].shares[category]
	})

	top, bottom := ranked[0], ranked[len(ranked)-1]
	topPct, bottomPct := top.shares[category], bottom.shares[category]
	diff := topPct - bottomPct
	if diff < a.t.DivergenceSpread || topPct < a.t.DivergenceTopPercent {
		return nil
	}

	return []types.Insight{{
		Type:             types.InsightDivergentStrategy,
		Category:         category,
		TopCompany:       top.company,
		TopPercentage:    types.Float(topPct),
		BottomCompany:    bottom.company,
		BottomPercentage: types.Float(bottomPct),
		Difference:       types.Float(diff),
		Insight: fmt.Sprintf("Divergent strategies: %s is investing heavily in %s (%.1f%%), while %s is not (%.1f%%), suggesting different market approaches.",
			top.company, category, topPct, bottom.company, bottomPct),
	}}
}

// companyTally counts per company and bucket, with every bucket present.
type companyTally map[string]map[string]int

func newCompanyTally(companies []string, taxonomy skills.Taxonomy) companyTally {
	tally := make(companyTally, len(companies))
	for _, company := range companies {
		buckets := make(map[string]int, len(taxonomy))
		for _, name := range taxonomy.Names() {
			buckets[name] = 0
		}
		tally[company] = buckets
	}
	return tally
}

func (t companyTally) add(companies []string, bucket string, counts types.CompanyCounts) {
	for _, company := range companies {
		if n, ok := counts.Get(company); ok {
			t[company][bucket] += n
		}
	}
}

// percentages converts counts to shares of each company's total, in company order.
// Companies with no classified rows are omitted.
func (t companyTally) percentages(companies []string, taxonomy skills.Taxonomy) []companyShare {
	var out []companyShare
	seen := make(map[string]bool, len(companies))
	for _, company := range companies {
		if seen[company] {
			continue
		}
		seen[company] = true

		buckets := t[company]
		total := 0
		for _, n := range buckets {
			total += n
		}
		if total == 0 {
			continue
		}
		shares := make(map[string]float64, len(taxonomy))
		for _, name := range taxonomy.Names() {
			shares[name] = float64(buckets[name]) / float64(total) * 100
		}
		out = append(out, companyShare{company: company, shares: shares})
	}
	return out
}
