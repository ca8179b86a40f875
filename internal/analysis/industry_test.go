package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hiring-radar/internal/types"
)

func industryFixture() (*types.AggregatedData, []types.CompanyMeta) {
	data := aggregatedWith("A", "B", "C", "D", "E")
	data.HiringVelocity = []types.VelocityRow{
		{Date: "2024-03-01", Counts: counts("A", 4, "B", 1, "C", 2, "D", 0, "E", 0)},
		{Date: "2024-03-02", Counts: counts("A", 4, "B", 1, "C", 2, "D", 0, "E", 0)},
	}
	data.SkillsByCompany = map[string]map[string]int{
		"A": {"Python": 5, "Go": 2},
		"B": {"Python": 3, "Kotlin": 1},
		"C": {"Python": 4, "Excel": 3},
	}
	data.LocationsByCompany = map[string]map[string]int{
		"A": {"Remote": 5, "NYC": 3},
		"B": {"NYC": 3, "Austin": 1},
	}
	meta := []types.CompanyMeta{
		{Name: "A", Industry: "Technology"},
		{Name: "B", Industry: "Technology"},
		{Name: "C", Industry: "Finance"},
		{Name: "D"},
		{Name: "E", Industry: "Retail"},
	}
	return data, meta
}

func TestIndustryTrends(t *testing.T) {
	data, meta := industryFixture()

	result, err := Default().IndustryTrends(data, meta)
	require.NoError(t, err)

	assert.Len(t, result, 3)
	assert.Empty(t, result["Finance"], "single-company industries yield no insights")
	assert.Empty(t, result["Retail"])
	_, hasBlank := result[""]
	assert.False(t, hasBlank)

	tech := result["Technology"]
	require.Equal(t, []types.InsightType{
		types.InsightIndustryLeader,
		types.InsightIndustrySkills,
		types.InsightIndustrySpecificSkill,
		types.InsightIndustryHubs,
	}, insightTypes(tech))

	leader := tech[0]
	assert.Equal(t, "A", leader.Company)
	assert.InDelta(t, 4.0, *leader.Velocity, 0.0001)
	assert.InDelta(t, 2.5, *leader.IndustryAvg, 0.0001)
	assert.Equal(t,
		"Industry leader: A is hiring at 4.0 jobs per period, 60.0% above the Technology industry average.",
		leader.Insight)

	assert.Equal(t, []string{"Python", "Go", "Kotlin"}, tech[1].TopSkills)
	assert.Equal(t,
		"Critical Technology skills: The most in-demand skills in the Technology industry are Python, Go, Kotlin.",
		tech[1].Insight)

	// Go and Kotlin are exclusive to the industry (infinite ratio); the name breaks the tie.
	assert.Equal(t, "Go", tech[2].Skill)

	assert.Equal(t, []string{"NYC", "Remote", "Austin"}, tech[3].TopLocations)
}

func TestIndustryTrends_NoLeaderWhenVelocityIsEven(t *testing.T) {
	data, meta := industryFixture()
	data.HiringVelocity = []types.VelocityRow{
		{Date: "2024-03-01", Counts: counts("A", 2, "B", 2)},
	}

	result := AnalyzeIndustryTrends(data, meta)
	for _, in := range result["Technology"] {
		assert.NotEqual(t, types.InsightIndustryLeader, in.Type)
	}
}

func TestIndustryTrends_ZeroAverageReportsHundredPercent(t *testing.T) {
	data, meta := industryFixture()
	data.HiringVelocity = []types.VelocityRow{
		{Date: "2024-03-01", Counts: counts("A", 0, "B", 0)},
	}

	tech := AnalyzeIndustryTrends(data, meta)["Technology"]
	require.NotEmpty(t, tech)
	assert.Equal(t, types.InsightIndustryLeader, tech[0].Type)
	assert.Equal(t, "A", tech[0].Company)
	assert.Contains(t, tech[0].Insight, "100.0% above")
}

func TestIndustryTrends_SharedSkillNeedsRatio(t *testing.T) {
	data := aggregatedWith("A", "B", "C", "D")
	data.SkillsByCompany = map[string]map[string]int{
		"A": {"SQL": 1},
		"B": {"SQL": 1},
		"C": {"SQL": 1},
		"D": {"SQL": 1},
	}
	meta := []types.CompanyMeta{
		{Name: "A", Industry: "Tech"},
		{Name: "B", Industry: "Tech"},
		{Name: "C", Industry: "Finance"},
		{Name: "D", Industry: "Finance"},
	}

	result := AnalyzeIndustryTrends(data, meta)
	for _, industry := range []string{"Tech", "Finance"} {
		for _, in := range result[industry] {
			assert.NotEqual(t, types.InsightIndustrySpecificSkill, in.Type, industry)
		}
	}
}

func TestPrevalenceAmong(t *testing.T) {
	byCompany := map[string]map[string]int{"A": {"Go": 1}, "B": {}}
	assert.InDelta(t, 0.5, prevalenceAmong(byCompany, []string{"A", "B"}, "Go"), 0.0001)
	assert.Zero(t, prevalenceAmong(byCompany, nil, "Go"))
	assert.False(t, math.IsNaN(prevalenceAmong(byCompany, []string{}, "Go")))
}

func TestGroupByIndustry(t *testing.T) {
	_, meta := industryFixture()
	groups := GroupByIndustry(meta)
	assert.Equal(t, map[string][]string{
		"Technology": {"A", "B"},
		"Finance":    {"C"},
		"Retail":     {"E"},
	}, groups)
}

func TestIndustryTrends_DegradesOnNilData(t *testing.T) {
	_, meta := industryFixture()
	result, err := Default().IndustryTrends(nil, meta)
	require.Error(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}
