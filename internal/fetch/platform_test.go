package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want Platform
	}{
		{name: "greenhouse job board", url: "https://job-boards.greenhouse.io/acme/jobs/7063751", want: PlatformGreenhouse},
		{name: "greenhouse boards", url: "https://boards.greenhouse.io/globex", want: PlatformGreenhouse},
		{name: "lever", url: "https://jobs.lever.co/initech", want: PlatformLever},
		{name: "workday tenant", url: "https://umbrella.wd5.myworkdayjobs.com/en-US/External", want: PlatformWorkday},
		{name: "own careers page", url: "https://acme.example/careers", want: PlatformUnknown},
		{name: "aggregator", url: "https://linkedin.com/jobs/search?keywords=acme", want: PlatformUnknown},
		{name: "unparseable", url: "://nope", want: PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectPlatform(tt.url))
		})
	}
}

func TestSelectorsFor(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		selector string
		want     string
	}{
		{name: "configured selector wins", url: "https://boards.greenhouse.io/acme", selector: "li.job", want: "li.job"},
		{name: "greenhouse", url: "https://boards.greenhouse.io/acme", want: "div.opening, tr.job-post"},
		{name: "lever", url: "https://jobs.lever.co/acme", want: "div.posting"},
		{name: "unknown", url: "https://acme.example/careers", want: DefaultListingSelector},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectorsFor(tt.url, tt.selector).Listing)
		})
	}
}

func TestPlatformSelectors_UnknownUsesOwnText(t *testing.T) {
	sel := PlatformSelectors(PlatformUnknown)
	assert.Empty(t, sel.Title)
	assert.Empty(t, sel.Link)
}

func TestPlatformNoiseSelectors_Greenhouse(t *testing.T) {
	selectors := PlatformNoiseSelectors(PlatformGreenhouse)
	assert.Contains(t, selectors, "form")
	assert.Contains(t, selectors, ".application--wrapper")
	assert.Contains(t, selectors, ".voluntary-self-id")
}

func TestPlatformNoiseSelectors_Unknown(t *testing.T) {
	selectors := PlatformNoiseSelectors(PlatformUnknown)
	assert.Contains(t, selectors, "form")
	assert.Contains(t, selectors, ".cookie-consent")
	assert.NotContains(t, selectors, ".posting-apply")
}
