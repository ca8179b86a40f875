package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hiring-radar/internal/types"
)

func TestHiringTrends_VelocityThresholds(t *testing.T) {
	tests := []struct {
		name     string
		perDay   []int
		wantType types.InsightType
		wantText string
	}{
		{name: "surge above threshold", perDay: []int{10, 14}, wantType: types.InsightHiringSurge, wantText: "increased hiring by 40.0%"},
		{name: "exactly thirty percent is not a surge", perDay: []int{10, 13}},
		{name: "decline", perDay: []int{10, 6}, wantType: types.InsightHiringDecline, wantText: "decreased hiring by 40.0%"},
		{name: "exactly minus thirty is not a decline", perDay: []int{10, 7}},
		{name: "zero earlier half is skipped", perDay: []int{0, 9}},
		{name: "odd length gives recent half the extra row", perDay: []int{4, 6, 0}, wantType: types.InsightHiringSurge, wantText: "50.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := aggregatedWith("Acme")
			data.HiringVelocity = velocityRows("Acme", tt.perDay...)

			insights, err := Default().HiringTrends(data)
			require.NoError(t, err)

			if tt.wantType == "" {
				assert.Empty(t, insights)
				return
			}
			require.Len(t, insights, 1)
			assert.Equal(t, tt.wantType, insights[0].Type)
			assert.Equal(t, "Acme", insights[0].Company)
			assert.Contains(t, insights[0].Insight, tt.wantText)
			require.NotNil(t, insights[0].PercentChange)
		})
	}
}

func TestHiringTrends_LeadershipIsCaseSensitive(t *testing.T) {
	data := aggregatedWith("Acme")
	data.RolesByCompany["Acme"] = map[string]int{
		"VP of Sales":           1,
		"Director, Engineering": 1,
		"vp marketing":          5,
	}

	insights := AnalyzeHiringTrends(data)
	require.Len(t, insights, 1)
	assert.Equal(t, types.InsightLeadershipChanges, insights[0].Type)
	assert.Equal(t, 2, *insights[0].Count)
	assert.Equal(t,
		"Leadership changes: Acme is hiring for 2 leadership positions, indicating potential organizational changes.",
		insights[0].Insight)
}

func TestHiringTrends_TechnologyFocus(t *testing.T) {
	data := aggregatedWith("A", "B")
	data.RolesByCompany["A"] = map[string]int{"AI Engineer": 2, "Machine Learning Engineer": 1}
	data.RolesByCompany["B"] = map[string]int{"Sales Rep": 5}

	insights := AnalyzeHiringTrends(data)
	require.Len(t, insights, 1)
	assert.Equal(t, types.InsightTechnologyFocus, insights[0].Type)
	assert.Equal(t, "A", insights[0].Company)
	assert.Equal(t, "AI/ML", insights[0].Category)
	assert.Equal(t, 3, *insights[0].Count)
}

func TestHiringTrends_RoleCountsTowardEveryMatchingCategory(t *testing.T) {
	data := aggregatedWith("A")
	data.RolesByCompany["A"] = map[string]int{"Python Machine Learning Engineer": 3}

	insights := AnalyzeHiringTrends(data)
	categories := []string{}
	for _, in := range insights {
		categories = append(categories, in.Category)
	}
	assert.Equal(t, []string{"AI/ML", "Backend"}, categories)
}

func TestHiringTrends_Locations(t *testing.T) {
	data := aggregatedWith("Remoteco", "Halfco", "Euroco")
	data.LocationsByCompany["Remoteco"] = map[string]int{"Remote": 3, "New York, NY": 2}
	data.LocationsByCompany["Halfco"] = map[string]int{"Remote": 1, "New York, NY": 1}
	data.LocationsByCompany["Euroco"] = map[string]int{"London, UK": 2, "Berlin, Germany": 1}

	insights := AnalyzeHiringTrends(data)
	require.Len(t, insights, 2)

	assert.Equal(t, types.InsightRemoteWork, insights[0].Type)
	assert.Equal(t, "Remoteco", insights[0].Company)
	assert.InDelta(t, 60.0, *insights[0].Percentage, 0.001)

	assert.Equal(t, types.InsightGeographicExpansion, insights[1].Type)
	assert.Equal(t, "Euroco", insights[1].Company)
	assert.Equal(t, "Europe", insights[1].Region)
	assert.Equal(t, 3, *insights[1].Count)
}

func TestHiringTrends_OrderVelocityThenRolesThenLocations(t *testing.T) {
	data := aggregatedWith("A")
	data.HiringVelocity = velocityRows("A", 1, 5)
	data.RolesByCompany["A"] = map[string]int{"CTO": 1, "VP Product": 1}
	data.LocationsByCompany["A"] = map[string]int{"Remote": 2}

	insights := AnalyzeHiringTrends(data)
	assert.Equal(t, []types.InsightType{
		types.InsightHiringSurge,
		types.InsightLeadershipChanges,
		types.InsightRemoteWork,
	}, insightTypes(insights))
}

func TestHiringTrends_CustomThresholds(t *testing.T) {
	data := aggregatedWith("Acme")
	data.HiringVelocity = velocityRows("Acme", 10, 14)

	th := DefaultThresholds()
	th.SurgePercent = 50
	analyzer := New(th)
	insights, err := analyzer.HiringTrends(data)
	require.NoError(t, err)
	assert.Empty(t, insights)
	assert.Equal(t, 2, analyzer.Thresholds().LeadershipMin)
}

func TestHiringTrends_DegradesOnNilData(t *testing.T) {
	insights, err := Default().HiringTrends(nil)
	require.Error(t, err)

	var degraded *types.DegradedError
	require.ErrorAs(t, err, &degraded)
	assert.Equal(t, "hiring trends", degraded.Stage)
	assert.NotNil(t, insights)
	assert.Empty(t, insights)

	assert.Empty(t, AnalyzeHiringTrends(nil))
}
