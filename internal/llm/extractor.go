package llm

import (
	"fmt"
	"strings"

	"github.com/jonathan/hiring-radar/internal/prompts"
)

// ListingField is one key the model must emit per extracted listing.
type ListingField struct {
	Name     string
	Type     string
	Hint     string
	Required bool
}

// ListingFields mirrors types.JobListing minus the date, which the scraper stamps.
var ListingFields = []ListingField{
	{Name: "title", Type: `"string"`, Hint: "job title exactly as written", Required: true},
	{Name: "location", Type: `"string"`, Hint: "office location or 'Remote'"},
	{Name: "department", Type: `"string"`, Hint: "team or department, if shown"},
	{Name: "requirements", Type: `["string"]`, Hint: "listed qualifications, one per entry"},
	{Name: "salary_range", Type: `"string"`, Hint: "pay range as written, e.g. '$120K - $160K'"},
	{Name: "url", Type: `"string"`, Hint: "link to the posting, if present"},
}

// ListingExtractionPrompt asks the model to turn careers-page text into listings.
// Page text longer than maxChars is cut; maxChars <= 0 keeps it whole.
func ListingExtractionPrompt(pageText string, maxChars int) (string, error) {
	lines := make([]string, 0, len(ListingFields))
	for _, f := range ListingFields {
		line := fmt.Sprintf("  %q: %s", f.Name, f.Type)
		if f.Required {
			line += " (required)"
		}
		lines = append(lines, line+" // "+f.Hint)
	}

	head, err := prompts.Render("careers.json", "listing-extraction", map[string]string{
		"Fields": strings.Join(lines, "\n"),
	})
	if err != nil {
		return "", err
	}

	if maxChars > 0 && len(pageText) > maxChars {
		pageText = pageText[:maxChars]
	}
	// Page text is appended after rendering so stray braces in it are never
	// read as placeholders.
	return head + "\n\"\"\"\n" + pageText + "\n\"\"\"\n", nil
}
