package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/hiring-radar/internal/llm"
	"github.com/jonathan/hiring-radar/internal/types"
)

// DefaultConcurrency is how many career pages are scraped at once.
const DefaultConcurrency = 4

// UnknownLocation is recorded for listings whose page shows no location.
const UnknownLocation = "Unknown"

// maxLLMInput caps the page text sent to the model.
const maxLLMInput = 30000

// ScraperOptions configures a Scraper.
type ScraperOptions struct {
	Fetch          *Options
	UseBrowser     bool
	BrowserTimeout time.Duration
	// LLM, when set, reads listings out of page text that no selector matched.
	LLM         llm.Client
	Concurrency int
	Now         func() time.Time
	Verbose     bool
}

// Scraper turns company career pages into job listings.
type Scraper struct {
	opts   ScraperOptions
	render func(ctx context.Context, url string) (string, error)
}

// NewScraper creates a Scraper.
func NewScraper(opts ScraperOptions) *Scraper {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Scraper{opts: opts}
	s.render = func(ctx context.Context, url string) (string, error) {
		return WithBrowser(ctx, url, s.opts.BrowserTimeout, s.opts.Verbose)
	}
	return s
}

// ScrapeAll scrapes every company concurrently. Companies that fail are left out
// of the batch and their errors are joined into the returned error; the batch
// keeps the input order.
func (s *Scraper) ScrapeAll(ctx context.Context, companies []types.CompanyMeta) (types.Batch, error) {
	results := make([][]types.JobListing, len(companies))
	errs := make([]error, len(companies))

	var g errgroup.Group
	g.SetLimit(s.opts.Concurrency)
	for i, company := range companies {
		g.Go(func() error {
			results[i], errs[i] = s.ScrapeCompany(ctx, company)
			return nil
		})
	}
	_ = g.Wait()

	batch := types.Batch{}
	for i, company := range companies {
		if errs[i] != nil {
			log.Printf("[scraper] %s: %v", company.Name, errs[i])
			continue
		}
		batch = append(batch, types.CompanyListings{Company: company.Name, Listings: results[i]})
	}
	return batch, errors.Join(errs...)
}

// ScrapeCompany fetches one career page and extracts its listings, dated today.
// Pages where no selector matches are retried in a headless browser (when
// enabled) and finally handed to the LLM (when configured).
func (s *Scraper) ScrapeCompany(ctx context.Context, company types.CompanyMeta) ([]types.JobListing, error) {
	if company.URL == "" {
		return nil, &Error{URL: company.Name, Message: "no careers URL configured"}
	}
	date := s.opts.Now().Format(types.DateLayout)
	sel := SelectorsFor(company.URL, company.Selector)

	var html string
	res, fetchErr := URL(ctx, company.URL, s.opts.Fetch)
	if fetchErr == nil {
		html = res.HTML
	} else if !s.opts.UseBrowser {
		return nil, fetchErr
	}

	listings, err := ParseListings(html, company.URL, sel, date)
	if err != nil {
		return nil, &Error{URL: company.URL, Message: "failed to parse careers page", Cause: err}
	}

	if len(listings) == 0 && s.opts.UseBrowser {
		rendered, err := s.render(ctx, company.URL)
		switch {
		case err != nil && fetchErr != nil:
			return nil, fetchErr
		case err != nil:
			log.Printf("[scraper] %s: %v", company.Name, err)
		default:
			html = rendered
			if listings, err = ParseListings(html, company.URL, sel, date); err != nil {
				return nil, &Error{URL: company.URL, Message: "failed to parse rendered page", Cause: err}
			}
		}
	}

	if len(listings) == 0 && s.opts.LLM != nil && html != "" {
		listings, err = s.extractWithLLM(ctx, html, company.URL, date)
		if err != nil {
			return nil, err
		}
	}

	if s.opts.Verbose {
		log.Printf("[scraper] %s: %d listing(s)", company.Name, len(listings))
	}
	return listings, nil
}

// ParseListings extracts one listing per element matching sel.Listing.
// Elements without a title are skipped and exact repeats are dropped.
func ParseListings(html, pageURL string, sel Selectors, date string) ([]types.JobListing, error) {
	listings := []types.JobListing{}
	if strings.TrimSpace(html) == "" {
		return listings, nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	base, _ := url.Parse(pageURL)

	seen := make(map[string]bool)
	doc.Find(sel.Listing).Each(func(_ int, el *goquery.Selection) {
		title := selectText(el, sel.Title)
		if title == "" {
			return
		}
		listing := types.JobListing{
			Title:      title,
			Location:   optionalText(el, sel.Location),
			Department: optionalText(el, sel.Department),
			Date:       date,
			URL:        resolveLink(base, selectHref(el, sel.Link)),
		}
		if listing.Location == "" {
			listing.Location = UnknownLocation
		}
		key := listing.Title + "\x00" + listing.Location + "\x00" + listing.URL
		if seen[key] {
			return
		}
		seen[key] = true
		listings = append(listings, listing)
	})
	return listings, nil
}

func selectText(el *goquery.Selection, selector string) string {
	if selector == "" {
		return collapseSpaces(el.Text())
	}
	return collapseSpaces(el.Find(selector).First().Text())
}

func optionalText(el *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return selectText(el, selector)
}

func selectHref(el *goquery.Selection, selector string) string {
	if selector != "" {
		href, _ := el.Find(selector).First().Attr("href")
		return href
	}
	if href, ok := el.Attr("href"); ok {
		return href
	}
	if href, ok := el.Find("a[href]").First().Attr("href"); ok {
		return href
	}
	href, _ := el.Closest("a[href]").Attr("href")
	return href
}

// resolveLink makes href absolute against the page URL. Non-HTTP links are dropped.
func resolveLink(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	if ref.Scheme != "http" && ref.Scheme != "https" {
		return ""
	}
	return ref.String()
}

// llmListing is the shape llm.ListingFields asks the model for.
type llmListing struct {
	Title        string   `json:"title"`
	Location     string   `json:"location"`
	Department   string   `json:"department"`
	Requirements []string `json:"requirements"`
	SalaryRange  string   `json:"salary_range"`
	URL          string   `json:"url"`
}

func (s *Scraper) extractWithLLM(ctx context.Context, html, pageURL, date string) ([]types.JobListing, error) {
	text, err := ExtractMainText(html, PlatformNoiseSelectors(DetectPlatform(pageURL))...)
	if err != nil {
		return nil, &Error{URL: pageURL, Message: "failed to read page text", Cause: err}
	}

	prompt, err := llm.ListingExtractionPrompt(text, maxLLMInput)
	if err != nil {
		return nil, &Error{URL: pageURL, Message: "failed to build extraction prompt", Cause: err}
	}
	resp, err := s.opts.LLM.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, &Error{URL: pageURL, Message: "LLM extraction failed", Cause: err}
	}
	raw := llm.ExtractJSONArray(resp)
	if raw == "" {
		return nil, &Error{URL: pageURL, Message: "LLM response contained no JSON array"}
	}

	var parsed []llmListing
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, &Error{URL: pageURL, Message: "failed to decode LLM listings", Cause: err}
	}

	base, _ := url.Parse(pageURL)
	listings := make([]types.JobListing, 0, len(parsed))
	for _, p := range parsed {
		title := collapseSpaces(p.Title)
		if title == "" {
			continue
		}
		location := collapseSpaces(p.Location)
		if location == "" {
			location = UnknownLocation
		}
		listings = append(listings, types.JobListing{
			Title:        title,
			Location:     location,
			Department:   collapseSpaces(p.Department),
			Date:         date,
			Requirements: p.Requirements,
			SalaryRange:  strings.TrimSpace(p.SalaryRange),
			URL:          resolveLink(base, p.URL),
		})
	}
	if s.opts.Verbose {
		log.Printf("[scraper] LLM extracted %d listing(s) from %s", len(listings), pageURL)
	}
	return listings, nil
}
