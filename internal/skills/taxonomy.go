package skills

import "strings"

// Category is one labeled bucket of a taxonomy and the keywords that select it.
type Category struct {
	Name     string
	Keywords []string
}

// Taxonomy is an ordered table of categories. Order matters: Classify returns the
// first category whose keywords match.
type Taxonomy []Category

// Names returns the category names in table order.
func (t Taxonomy) Names() []string {
	names := make([]string, 0, len(t))
	for _, c := range t {
		names = append(names, c.Name)
	}
	return names
}

// Classify returns the first category with a keyword contained in text, compared
// case-insensitively. ok is false when nothing matches.
func (t Taxonomy) Classify(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, c := range t {
		if c.matches(lower) {
			return c.Name, true
		}
	}
	return "", false
}

// Matches returns every category with a keyword contained in text, in table order.
func (t Taxonomy) Matches(text string) []string {
	lower := strings.ToLower(text)
	var names []string
	for _, c := range t {
		if c.matches(lower) {
			names = append(names, c.Name)
		}
	}
	return names
}

func (c Category) matches(lower string) bool {
	for _, kw := range c.Keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// TechCategories buckets role titles by technology area.
var TechCategories = Taxonomy{
	{Name: "AI/ML", Keywords: []string{"AI", "Machine Learning", "Data Scientist", "NLP", "Computer Vision", "Deep Learning"}},
	{Name: "Cloud", Keywords: []string{"AWS", "Azure", "GCP", "Cloud", "DevOps", "SRE", "Kubernetes"}},
	{Name: "Mobile", Keywords: []string{"iOS", "Android", "Mobile", "React Native", "Flutter"}},
	{Name: "Frontend", Keywords: []string{"Frontend", "UI", "UX", "React", "Angular", "Vue"}},
	{Name: "Backend", Keywords: []string{"Backend", "API", "Microservices", "Node.js", "Java", "Python", "Go", "Ruby"}},
}

// GeoRegions buckets locations by world region.
var GeoRegions = Taxonomy{
	{Name: "North America", Keywords: []string{"US", "USA", "United States", "Canada", "Mexico"}},
	{Name: "Europe", Keywords: []string{"UK", "United Kingdom", "Germany", "France", "Spain", "Italy", "Netherlands", "Sweden"}},
	{Name: "Asia", Keywords: []string{"China", "Japan", "India", "Singapore", "Hong Kong"}},
	{Name: "Latin America", Keywords: []string{"Brazil", "Argentina", "Colombia", "Chile", "Peru"}},
	{Name: "Africa", Keywords: []string{"South Africa", "Nigeria", "Kenya", "Egypt"}},
	{Name: "Australia/Oceania", Keywords: []string{"Australia", "New Zealand"}},
}

// MarketRegions buckets locations for market-shift detection, with remote work as its own region.
var MarketRegions = Taxonomy{
	GeoRegions[0],
	GeoRegions[1],
	GeoRegions[2],
	GeoRegions[3],
	{Name: "Remote", Keywords: []string{"Remote", "Virtual", "Work from home", "WFH"}},
}

// RoleCategories buckets role titles by business function.
var RoleCategories = Taxonomy{
	{Name: "Engineering", Keywords: []string{"Engineer", "Developer", "Programmer", "Architect"}},
	{Name: "Data", Keywords: []string{"Data", "Analytics", "Scientist", "Analyst"}},
	{Name: "Product", Keywords: []string{"Product", "Manager", "Owner"}},
	{Name: "Design", Keywords: []string{"Design", "UX", "UI", "User Experience"}},
	{Name: "Marketing", Keywords: []string{"Marketing", "Growth", "SEO", "Content"}},
	{Name: "Sales", Keywords: []string{"Sales", "Account", "Business Development"}},
	{Name: "Operations", Keywords: []string{"Operations", "Support", "Customer Success"}},
}

// LeadershipTitles are matched case-sensitively as substrings of role titles.
var LeadershipTitles = []string{"CEO", "CFO", "CTO", "COO", "CHRO", "CMO", "President", "Director", "VP", "Head"}

// IsLeadershipRole reports whether role contains a leadership title, case-sensitively.
func IsLeadershipRole(role string) bool {
	for _, title := range LeadershipTitles {
		if strings.Contains(role, title) {
			return true
		}
	}
	return false
}

// IsRemote reports whether a location string mentions remote work.
func IsRemote(location string) bool {
	return strings.Contains(strings.ToLower(location), "remote")
}
