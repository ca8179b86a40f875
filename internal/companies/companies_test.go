package companies

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/hiring-radar/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlFixture = `companies:
  - name: Acme
    industry: Technology
    priority: Critical
    url: https://acme.example.com/careers
    selector: h3.job-title
  - name: Globex
    industry: Technology
    priority: High
  - name: Initech
    industry: Finance
    priority: High
`

const jsonFixture = `{"companies": [
  {"name": "Acme", "industry": "Technology", "priority": "Critical"},
  {"name": "Umbrella", "industry": "Healthcare", "priority": "Low"}
]}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		content   string
		wantNames []string
	}{
		{name: "yaml", file: "companies.yaml", content: yamlFixture, wantNames: []string{"Acme", "Globex", "Initech"}},
		{name: "yml", file: "companies.yml", content: yamlFixture, wantNames: []string{"Acme", "Globex", "Initech"}},
		{name: "json", file: "companies.json", content: jsonFixture, wantNames: []string{"Acme", "Umbrella"}},
		{name: "empty list", file: "companies.json", content: `{"companies": []}`, wantNames: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := Load(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.wantNames, Names(list))
		})
	}
}

func TestLoad_PreservesFields(t *testing.T) {
	list, err := Load(writeFile(t, "companies.yaml", yamlFixture))
	require.NoError(t, err)

	acme, ok := Find(list, "Acme")
	require.True(t, ok)
	assert.Equal(t, types.CompanyMeta{
		Name:     "Acme",
		Industry: "Technology",
		Priority: "Critical",
		URL:      "https://acme.example.com/careers",
		Selector: "h3.job-title",
	}, acme)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantMsg string
	}{
		{name: "bad json", file: "c.json", content: `{`, wantMsg: "failed to decode"},
		{name: "bad yaml", file: "c.yaml", content: "companies: [", wantMsg: "failed to decode"},
		{name: "missing name", file: "c.json", content: `{"companies": [{"industry": "Tech"}]}`, wantMsg: "invalid company record"},
		{name: "bad priority", file: "c.json", content: `{"companies": [{"name": "A", "priority": "Urgent"}]}`, wantMsg: "invalid company record"},
		{name: "duplicate", file: "c.json", content: `{"companies": [{"name": "A"}, {"name": "A"}]}`, wantMsg: "duplicate company"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := Load(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Nil(t, list)
			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/companies.yaml")
	require.Error(t, err)
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFilters(t *testing.T) {
	list, err := Load(writeFile(t, "companies.yaml", yamlFixture))
	require.NoError(t, err)

	assert.Equal(t, []string{"Acme", "Globex"}, Names(ByIndustry(list, "Technology")))
	assert.Equal(t, []string{"Initech"}, Names(ByIndustry(list, "Finance")))
	assert.Empty(t, ByIndustry(list, "Retail"))
	assert.Len(t, ByIndustry(list, ""), 3)

	assert.Equal(t, []string{"Globex", "Initech"}, Names(ByPriority(list, "High")))
	assert.Equal(t, []string{"Acme"}, Names(ByPriority(list, "Critical")))
	assert.Len(t, ByPriority(list, ""), 3)

	_, ok := Find(list, "Hooli")
	assert.False(t, ok)
}
