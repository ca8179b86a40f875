package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/hiring-radar/internal/types"
)

// industryGroup is an industry and its member companies, in metadata order.
type industryGroup struct {
	industry string
	members  []string
}

// GroupByIndustry groups company names by industry in order of first appearance.
// Companies without an industry are left out.
func GroupByIndustry(companies []types.CompanyMeta) map[string][]string {
	groups := make(map[string][]string)
	for _, g := range groupByIndustry(companies) {
		groups[g.industry] = g.members
	}
	return groups
}

func groupByIndustry(companies []types.CompanyMeta) []industryGroup {
	var groups []industryGroup
	index := make(map[string]int)
	for _, c := range companies {
		if c.Industry == "" {
			continue
		}
		i, ok := index[c.Industry]
		if !ok {
			i = len(groups)
			index[c.Industry] = i
			groups = append(groups, industryGroup{industry: c.Industry})
		}
		groups[i].members = append(groups[i].members, c.Name)
	}
	return groups
}

// industryTrends keys every industry present in companies; industries below the
// minimum size map to an empty list.
func (a *Analyzer) industryTrends(data *types.AggregatedData, companies []types.CompanyMeta) types.IndustryInsights {
	groups := groupByIndustry(companies)
	result := make(types.IndustryInsights, len(groups))

	known := make(map[string]bool, len(data.Companies))
	for _, c := range data.Companies {
		known[c] = true
	}

	for _, g := range groups {
		result[g.industry] = []types.Insight{}
		if len(g.members) < a.t.MinIndustrySize {
			continue
		}

		var insights []types.Insight
		if leader, ok := a.industryLeader(g, data, known); ok {
			insights = append(insights, leader)
		}
		insights = append(insights, a.industrySkills(g, groups, data)...)
		if hubs, ok := a.industryHubs(g, data); ok {
			insights = append(insights, hubs)
		}
		if insights != nil {
			result[g.industry] = insights
		}
	}
	return result
}

func (a *Analyzer) industryLeader(g industryGroup, data *types.AggregatedData, known map[string]bool) (types.Insight, bool) {
	rows := data.HiringVelocity
	if len(rows) == 0 {
		return types.Insight{}, false
	}

	type companyVelocity struct {
		company  string
		velocity float64
	}
	var velocities []companyVelocity
	seen := make(map[string]bool)
	for _, member := range g.members {
		if !known[member] || seen[member] {
			continue
		}
		seen[member] = true
		velocities = append(velocities, companyVelocity{
			company:  member,
			velocity: float64(sumVelocity(rows, member)) / float64(len(rows)),
		})
	}
	if len(velocities) == 0 {
		return types.Insight{}, false
	}

	sum := 0.0
	for _, v := range velocities {
		sum += v.velocity
	}
	avg := sum / float64(len(velocities))

	var above []companyVelocity
	for _, v := range velocities {
		if v.velocity >= avg*a.t.LeaderFactor {
			above = append(above, v)
		}
	}
	if len(above) == 0 {
		return types.Insight{}, false
	}
	sort.SliceStable(above, func(i, j int) bool { return above[i].velocity > above[j].velocity })
	top := above[0]

	pctAbove := 100.0
	if avg > 0 {
		pctAbove = (top.velocity/avg - 1) * 100
	}

	return types.Insight{
		Type:        types.InsightIndustryLeader,
		Company:     top.company,
		Industry:    g.industry,
		Velocity:    types.Float(top.velocity),
		IndustryAvg: types.Float(avg),
		Insight: fmt.Sprintf("Industry leader: %s is hiring at %.1f jobs per period, %.1f%% above the %s industry average.",
			top.company, top.velocity, pctAbove, g.industry),
	}, true
}

func (a *Analyzer) industrySkills(g industryGroup, groups []industryGroup, data *types.AggregatedData) []types.Insight {
	totals := make(map[string]int)
	for _, member := range g.members {
		if companySkills, ok := data.SkillsByCompany[member]; ok {
			sumInto(totals, companySkills)
		}
	}
	if len(totals) == 0 {
		return nil
	}

	topSkills := rankMap(totals, a.t.IndustryTopSkills)
	insights := []types.Insight{{
		Type:      types.InsightIndustrySkills,
		Industry:  g.industry,
		TopSkills: topSkills,
		Insight: fmt.Sprintf("Critical %s skills: The most in-demand skills in the %s industry are %s.",
			g.industry, g.industry, strings.Join(topSkills, ", ")),
	}}

	var others []string
	for _, other := range groups {
		if other.industry != g.industry {
			others = append(others, other.members...)
		}
	}

	type specificSkill struct {
		skill string
		ratio float64
	}
	var specific []specificSkill
	for skill := range totals {
		industryPrevalence := prevalenceAmong(data.SkillsByCompany, g.members, skill)
		otherPrevalence := prevalenceAmong(data.SkillsByCompany, others, skill)

		// A skill no other industry lists is exclusive to this one.
		ratio := math.Inf(1)
		if otherPrevalence > 0 {
			ratio = industryPrevalence / math.Max(a.t.OtherPrevalenceFloor, otherPrevalence)
		}
		if industryPrevalence >= a.t.SpecificMinPrevalence && ratio >= a.t.SpecificMinRatio {
			specific = append(specific, specificSkill{skill: skill, ratio: ratio})
		}
	}
	if len(specific) == 0 {
		return insights
	}

	sort.Slice(specific, func(i, j int) bool {
		if specific[i].ratio != specific[j].ratio {
			return specific[i].ratio > specific[j].ratio
		}
		return specific[i].skill < specific[j].skill
	})
	skill := specific[0].skill

	return append(insights, types.Insight{
		Type:     types.InsightIndustrySpecificSkill,
		Industry: g.industry,
		Skill:    skill,
		Insight: fmt.Sprintf("Industry specialization: %s is a specialized skill particularly important in the %s industry.",
			skill, g.industry),
	})
}

func (a *Analyzer) industryHubs(g industryGroup, data *types.AggregatedData) (types.Insight, bool) {
	totals := make(map[string]int)
	for _, member := range g.members {
		if locations, ok := data.LocationsByCompany[member]; ok {
			sumInto(totals, locations)
		}
	}
	if len(totals) == 0 {
		return types.Insight{}, false
	}

	topLocations := rankMap(totals, a.t.IndustryTopHubs)
	return types.Insight{
		Type:         types.InsightIndustryHubs,
		Industry:     g.industry,
		TopLocations: topLocations,
		Insight: fmt.Sprintf("Industry hubs: The main hiring locations in the %s industry are %s.",
			g.industry, strings.Join(topLocations, ", ")),
	}, true
}

// prevalenceAmong is the fraction of companies whose skills include skill; 0 for no companies.
func prevalenceAmong(byCompany map[string]map[string]int, companies []string, skill string) float64 {
	if len(companies) == 0 {
		return 0
	}
	n := 0
	for _, company := range companies {
		if _, ok := byCompany[company][skill]; ok {
			n++
		}
	}
	return float64(n) / float64(len(companies))
}
