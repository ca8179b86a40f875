package sample

import (
	"time"

	"github.com/jonathan/hiring-radar/internal/types"
)

// DemoSeed is the seed used by the demo command and endpoint.
const DemoSeed = 42

// DemoCompanies returns the company metadata used for demos.
func DemoCompanies() []types.CompanyMeta {
	return []types.CompanyMeta{
		{Name: "Google", Industry: "Technology", Priority: "Critical", URL: "https://careers.google.com/jobs/results/", Selector: "h3.job-title"},
		{Name: "Microsoft", Industry: "Technology", Priority: "High", URL: "https://careers.microsoft.com/us/en/search-results", Selector: "h3.job-title"},
		{Name: "Amazon", Industry: "E-commerce", Priority: "Critical", URL: "https://www.amazon.jobs/en/search", Selector: "h3.job-title"},
		{Name: "Shopify", Industry: "E-commerce", Priority: "High", URL: "https://www.shopify.com/careers/search", Selector: "h3.job-title"},
		{Name: "Apple", Industry: "Technology", Priority: "Medium", URL: "https://jobs.apple.com/en-us/search", Selector: "h3.job-title"},
	}
}

// Demo builds a demo request: listings for every demo company plus a recent
// hiring surge at Shopify, so the trend analyzers have something to report.
func Demo(seed uint64, now time.Time) types.AnalyzeRequest {
	g := New(seed, now)
	meta := DemoCompanies()

	names := make([]string, len(meta))
	for i, c := range meta {
		names[i] = c.Name
	}
	batch := g.Batch(names)
	for i := range batch {
		if batch[i].Company == "Shopify" {
			batch[i].Listings = append(batch[i].Listings, g.Surge("Shopify", 12, 10)...)
		}
	}

	return types.AnalyzeRequest{Listings: batch, Companies: meta}
}
