package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known applicant tracking system.
type Platform string

const (
	// PlatformGreenhouse is the Greenhouse ATS platform
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS platform
	PlatformWorkday Platform = "workday"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// DefaultListingSelector matches one element per job on a generic careers page.
const DefaultListingSelector = "h3.job-title"

// Selectors locates job listings on a careers page. Listing matches one element
// per job; the other selectors are evaluated inside it. An empty Title uses the
// listing element's own text, and an empty Link uses the element's own href or
// the first anchor inside it.
type Selectors struct {
	Listing    string
	Title      string
	Location   string
	Department string
	Link       string
}

// DetectPlatform identifies the ATS from a careers URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)

	switch {
	case strings.Contains(host, "greenhouse.io"):
		return PlatformGreenhouse
	case strings.Contains(host, "lever.co"):
		return PlatformLever
	case strings.Contains(host, "workday.com"), strings.Contains(host, "myworkdayjobs.com"):
		return PlatformWorkday
	default:
		return PlatformUnknown
	}
}

// PlatformSelectors returns the job-board selectors for a platform.
func PlatformSelectors(platform Platform) Selectors {
	switch platform {
	case PlatformGreenhouse:
		return Selectors{
			Listing:    "div.opening, tr.job-post",
			Title:      "a, p.body--medium",
			Location:   ".location, p.body__secondary",
			Department: ".department",
			Link:       "a",
		}
	case PlatformLever:
		return Selectors{
			Listing:    "div.posting",
			Title:      "[data-qa='posting-name'], h5",
			Location:   ".sort-by-location, .location",
			Department: ".sort-by-team, .department",
			Link:       "a.posting-title",
		}
	case PlatformWorkday:
		return Selectors{
			Listing:  "section[data-automation-id='jobResults'] li",
			Title:    "a[data-automation-id='jobTitle']",
			Location: "[data-automation-id='locations'] dd",
			Link:     "a[data-automation-id='jobTitle']",
		}
	default:
		return Selectors{Listing: DefaultListingSelector}
	}
}

// SelectorsFor picks selectors for a careers page. A configured CSS selector wins
// over platform detection.
func SelectorsFor(careersURL, selector string) Selectors {
	if selector != "" {
		return Selectors{Listing: selector}
	}
	return PlatformSelectors(DetectPlatform(careersURL))
}

// PlatformNoiseSelectors returns elements to drop before reading page text.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{
		// Application forms
		"form",
		".application-form",
		".apply-button-container",

		// EEO and legal
		".eeo-statement",
		".legal-disclosure",

		// Social and share buttons
		".social-share",
		".share-buttons",

		// Cookie and GDPR
		".cookie-consent",
		".gdpr-notice",
	}

	switch platform {
	case PlatformGreenhouse:
		return append(common, ".application--wrapper", ".voluntary-self-id")
	case PlatformLever:
		return append(common, ".apply-section", ".posting-apply")
	case PlatformWorkday:
		return append(common, "[data-automation-id='applyButton']", ".WDAF")
	default:
		return common
	}
}
