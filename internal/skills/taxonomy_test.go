package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaxonomy_Classify(t *testing.T) {
	tests := []struct {
		name     string
		taxonomy Taxonomy
		text     string
		want     string
		wantOK   bool
	}{
		{name: "tech ai", taxonomy: TechCategories, text: "Senior Data Scientist", want: "AI/ML", wantOK: true},
		{name: "tech cloud", taxonomy: TechCategories, text: "Site Reliability (SRE)", want: "Cloud", wantOK: true},
		{name: "tech backend", taxonomy: TechCategories, text: "Backend Developer", want: "Backend", wantOK: true},
		{name: "substring match is loose", taxonomy: TechCategories, text: "Maintenance Planner", want: "AI/ML", wantOK: true},
		{name: "tech none", taxonomy: TechCategories, text: "Sales Rep", wantOK: false},
		{name: "role first category wins", taxonomy: RoleCategories, text: "Product Designer", want: "Product", wantOK: true},
		{name: "role operations", taxonomy: RoleCategories, text: "Customer Success Lead", want: "Operations", wantOK: true},
		{name: "geo europe", taxonomy: GeoRegions, text: "Berlin, Germany", want: "Europe", wantOK: true},
		{name: "geo case insensitive", taxonomy: GeoRegions, text: "tokyo, japan", want: "Asia", wantOK: true},
		{name: "market remote", taxonomy: MarketRegions, text: "Remote", want: "Remote", wantOK: true},
		{name: "market first region wins over remote", taxonomy: MarketRegions, text: "Remote - Canada", want: "North America", wantOK: true},
		{name: "market has no africa", taxonomy: MarketRegions, text: "Lagos, Nigeria", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.taxonomy.Classify(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTaxonomy_Matches(t *testing.T) {
	assert.Equal(t, []string{"Product", "Design"}, RoleCategories.Matches("Product Designer"))
	assert.Equal(t, []string{"AI/ML", "Backend"}, TechCategories.Matches("Python Machine Learning Engineer"))
	assert.Nil(t, GeoRegions.Matches("Atlantis"))
}

func TestTaxonomy_Names(t *testing.T) {
	assert.Equal(t, []string{"AI/ML", "Cloud", "Mobile", "Frontend", "Backend"}, TechCategories.Names())
	assert.Len(t, GeoRegions, 6)
	assert.Equal(t, []string{"North America", "Europe", "Asia", "Latin America", "Remote"}, MarketRegions.Names())
	assert.Len(t, RoleCategories, 7)
}

func TestIsLeadershipRole(t *testing.T) {
	assert.True(t, IsLeadershipRole("VP of Sales"))
	assert.True(t, IsLeadershipRole("Director, Engineering"))
	assert.False(t, IsLeadershipRole("vp of sales"), "leadership match is case-sensitive")
	assert.False(t, IsLeadershipRole("Software Engineer"))
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("Remote"))
	assert.True(t, IsRemote("US (REMOTE)"))
	assert.False(t, IsRemote("New York, NY"))
}
