package types

// InsightType labels the rule that produced an Insight.
type InsightType string

// Insight types emitted by the analyzers.
const (
	InsightHiringSurge           InsightType = "hiring_surge"
	InsightHiringDecline         InsightType = "hiring_decline"
	InsightLeadershipChanges     InsightType = "leadership_changes"
	InsightTechnologyFocus       InsightType = "technology_focus"
	InsightRemoteWork            InsightType = "remote_work"
	InsightGeographicExpansion   InsightType = "geographic_expansion"
	InsightEmergingSkill         InsightType = "emerging_skill"
	InsightCompetitiveSkill      InsightType = "competitive_skill"
	InsightUniqueSkill           InsightType = "unique_skill"
	InsightCategoryFocus         InsightType = "category_focus"
	InsightDivergentStrategy     InsightType = "divergent_strategy"
	InsightGeographicShift       InsightType = "geographic_shift"
	InsightIndustryLeader        InsightType = "industry_leader"
	InsightIndustrySkills        InsightType = "industry_skills"
	InsightIndustrySpecificSkill InsightType = "industry_specific_skill"
	InsightIndustryHubs          InsightType = "industry_hubs"
)

// Insight is a single labeled observation. Which subject and numeric fields are set
// depends on Type; numeric fields are pointers so a real zero is still serialized.
type Insight struct {
	Type InsightType `json:"type"`

	Company       string   `json:"company,omitempty"`
	Industry      string   `json:"industry,omitempty"`
	Skill         string   `json:"skill,omitempty"`
	Region        string   `json:"region,omitempty"`
	Category      string   `json:"category,omitempty"`
	TopCompany    string   `json:"top_company,omitempty"`
	BottomCompany string   `json:"bottom_company,omitempty"`
	TopSkills     []string `json:"top_skills,omitempty"`
	TopLocations  []string `json:"top_locations,omitempty"`

	PercentChange    *float64 `json:"percent_change,omitempty"`
	Count            *int     `json:"count,omitempty"`
	Prevalence       *float64 `json:"prevalence,omitempty"`
	Demand           *int     `json:"demand,omitempty"`
	Percentage       *float64 `json:"percentage,omitempty"`
	TopPercentage    *float64 `json:"top_percentage,omitempty"`
	BottomPercentage *float64 `json:"bottom_percentage,omitempty"`
	Difference       *float64 `json:"difference,omitempty"`
	Velocity         *float64 `json:"velocity,omitempty"`
	IndustryAvg      *float64 `json:"industry_avg,omitempty"`

	Insight string `json:"insight"`
}

// IndustryInsights maps an industry label to its insights.
type IndustryInsights map[string][]Insight

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// GroupInsightsByType groups insights by type, keeping input order within each group.
func GroupInsightsByType(insights []Insight) map[InsightType][]Insight {
	groups := make(map[InsightType][]Insight)
	for _, in := range insights {
		groups[in.Type] = append(groups[in.Type], in)
	}
	return groups
}
