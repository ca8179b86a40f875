package types

// Priority levels carried by recommendations.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Recommendation is a prioritized action derived from a group of insights.
type Recommendation struct {
	Type           string   `json:"type"`
	Priority       string   `json:"priority"`
	Recommendation string   `json:"recommendation"`
	Skills         []string `json:"skills,omitempty"`
	Companies      []string `json:"companies,omitempty"`
	Region         string   `json:"region,omitempty"`
	Technology     string   `json:"technology,omitempty"`
	Company        string   `json:"company,omitempty"`
	Skill          string   `json:"skill,omitempty"`
	Category       string   `json:"category,omitempty"`
	Industry       string   `json:"industry,omitempty"`
	Location       string   `json:"location,omitempty"`
}

// IndustryRecommendations maps an industry label to its recommendations.
type IndustryRecommendations map[string][]Recommendation
