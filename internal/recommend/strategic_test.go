package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hiring-radar/internal/types"
)

func recTypes(recs []types.Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Type)
	}
	return out
}

func allInsights() []types.Insight {
	// Deliberately out of rule order.
	return []types.Insight{
		{Type: types.InsightDivergentStrategy, Category: "Sales", TopCompany: "B", BottomCompany: "A"},
		{Type: types.InsightLeadershipChanges, Company: "L1"},
		{Type: types.InsightLeadershipChanges, Company: "L2"},
		{Type: types.InsightLeadershipChanges, Company: "L3"},
		{Type: types.InsightUniqueSkill, Company: "U1", Skill: "COBOL"},
		{Type: types.InsightUniqueSkill, Company: "U2", Skill: "Zig"},
		{Type: types.InsightTechnologyFocus, Company: "A", Category: "Cloud"},
		{Type: types.InsightTechnologyFocus, Company: "B", Category: "AI/ML"},
		{Type: types.InsightTechnologyFocus, Company: "C", Category: "AI/ML"},
		{Type: types.InsightHiringSurge, Company: "S1"},
		{Type: types.InsightHiringSurge, Company: "S2"},
		{Type: types.InsightHiringSurge, Company: "S3"},
		{Type: types.InsightHiringSurge, Company: "S4"},
		{Type: types.InsightGeographicShift, Company: "A", Region: "Europe"},
		{Type: types.InsightGeographicShift, Company: "B", Region: "Europe"},
		{Type: types.InsightEmergingSkill, Skill: "Go"},
		{Type: types.InsightEmergingSkill, Skill: "Rust"},
		{Type: types.InsightEmergingSkill, Skill: "Kotlin"},
		{Type: types.InsightEmergingSkill, Skill: "Scala"},
		{Type: types.InsightDivergentStrategy, Category: "Engineering", TopCompany: "A", BottomCompany: "B"},
		{Type: types.InsightDivergentStrategy, Category: "Data", TopCompany: "C", BottomCompany: "B"},
		{Type: types.InsightRemoteWork, Company: "ignored"},
	}
}

func TestStrategic_FixedRuleOrder(t *testing.T) {
	recs, err := Strategic(allInsights())
	require.NoError(t, err)

	assert.Equal(t, []string{
		TypeSkillInvestment,
		TypeGeographicExpansion,
		TypeCompetitiveMonitor,
		TypeTechnologyInvestment,
		TypeCompetitiveAdvantage,
		TypeStrategicShift,
		TypeStrategicPositioning,
		TypeStrategicPositioning,
	}, recTypes(recs))
}

func TestStrategic_Fields(t *testing.T) {
	recs := GenerateStrategicRecommendations(allInsights())
	require.Len(t, recs, 8)

	assert.Equal(t, []string{"Go", "Rust", "Kotlin"}, recs[0].Skills)
	assert.Equal(t, types.PriorityHigh, recs[0].Priority)
	assert.Equal(t,
		"Invest in training for emerging skills: Go, Rust, Kotlin. These skills are growing in demand but not yet widespread, providing a competitive advantage window.",
		recs[0].Recommendation)

	assert.Equal(t, "Europe", recs[1].Region)
	assert.Equal(t, types.PriorityMedium, recs[1].Priority)

	assert.Equal(t, []string{"S1", "S2", "S3"}, recs[2].Companies)
	assert.Equal(t, "AI/ML", recs[3].Technology)

	assert.Equal(t, "U1", recs[4].Company)
	assert.Equal(t, "COBOL", recs[4].Skill)
	assert.Equal(t,
		"Research U1's use of COBOL. They're uniquely hiring for this skill, potentially indicating proprietary technology or market differentiation.",
		recs[4].Recommendation)

	assert.Equal(t, []string{"L1", "L2"}, recs[5].Companies)

	assert.Equal(t, "Sales", recs[6].Category)
	assert.Equal(t, []string{"B", "A"}, recs[6].Companies)
	assert.Equal(t, types.PriorityLow, recs[6].Priority)
	assert.Equal(t, "Engineering", recs[7].Category)
}

func TestStrategic_SingleCompetitorTrendsAreIgnored(t *testing.T) {
	recs := GenerateStrategicRecommendations([]types.Insight{
		{Type: types.InsightGeographicShift, Company: "A", Region: "Europe"},
		{Type: types.InsightGeographicShift, Company: "A", Region: "Asia"},
		{Type: types.InsightTechnologyFocus, Company: "A", Category: "Cloud"},
	})
	assert.Empty(t, recs)
}

func TestStrategic_EmptyInput(t *testing.T) {
	recs, err := Strategic(nil)
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestMostCommon_FirstSeenWinsTies(t *testing.T) {
	value, count := mostCommon([]string{"Asia", "Europe", "Europe", "Asia"})
	assert.Equal(t, "Asia", value)
	assert.Equal(t, 2, count)

	value, count = mostCommon(nil)
	assert.Equal(t, "", value)
	assert.Zero(t, count)
}
