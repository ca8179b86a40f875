// Package types provides type definitions for structured data used throughout the hiring-radar system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the calendar-date format used for listing dates and time-series keys.
const DateLayout = "2006-01-02"

// JobListing is a single job posting as delivered by a scraper or an API caller.
// Optional fields are empty strings when absent.
type JobListing struct {
	Title        string   `json:"title" validate:"required"`
	Location     string   `json:"location"`
	Department   string   `json:"department,omitempty"`
	Date         string   `json:"date,omitempty"`
	Description  string   `json:"description,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
	SalaryRange  string   `json:"salary_range,omitempty"`
	URL          string   `json:"url,omitempty" validate:"omitempty,url"`
}

// Validate validates the JobListing using the validator.
func (l *JobListing) Validate() error {
	validate := validator.New()
	return validate.Struct(l)
}

// Key identifies a posting across scrapes: title, location, department and URL,
// case- and space-insensitive. The date is left out because scrapers stamp the
// day they saw a posting, not the day it was posted.
func (l JobListing) Key() string {
	h := sha256.New()
	for _, part := range []string{l.Title, l.Location, l.Department, l.URL} {
		h.Write([]byte(strings.ToLower(strings.Join(strings.Fields(part), " "))))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// reservedCompanyNames label the flat distribution rows ({"location": ..., "<company>": n}),
// so a company cannot use them.
var reservedCompanyNames = map[string]bool{"location": true, "role": true, "date": true}

// ValidateCompanyName rejects empty names and the row-label keys.
func ValidateCompanyName(name string) error {
	if name == "" {
		return fmt.Errorf("company name cannot be empty")
	}
	if reservedCompanyNames[name] {
		return fmt.Errorf("company name %q is reserved", name)
	}
	return nil
}

// CompanyListings pairs a company with its listings.
type CompanyListings struct {
	Company  string       `json:"company"`
	Listings []JobListing `json:"listings"`
}

// Batch is an ordered collection of per-company listings. On the wire it is a JSON object
// mapping company name to listings; decoding keeps the object's key order.
type Batch []CompanyListings

// Companies returns the company names in batch order.
func (b Batch) Companies() []string {
	names := make([]string, 0, len(b))
	for _, cl := range b {
		names = append(names, cl.Company)
	}
	return names
}

// TotalListings returns the number of listings across all companies.
func (b Batch) TotalListings() int {
	total := 0
	for _, cl := range b {
		total += len(cl.Listings)
	}
	return total
}

// Validate checks every listing in the batch and returns the first failure.
func (b Batch) Validate() error {
	validate := validator.New()
	for _, cl := range b {
		if cl.Company == "" {
			return fmt.Errorf("batch contains a company with an empty name")
		}
		if err := ValidateCompanyName(cl.Company); err != nil {
			return err
		}
		for i := range cl.Listings {
			if err := validate.Struct(&cl.Listings[i]); err != nil {
				return fmt.Errorf("company %s listing %d: %w", cl.Company, i, err)
			}
		}
	}
	return nil
}

// MarshalJSON writes the batch as an object in batch order.
func (b Batch) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cl := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cl.Company)
		if err != nil {
			return nil, err
		}
		listings := cl.Listings
		if listings == nil {
			listings = []JobListing{}
		}
		value, err := json.Marshal(listings)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a {company: [listing...]} object, preserving key order.
// A repeated company key appends to the earlier entry.
func (b *Batch) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read batch: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("batch must be a JSON object keyed by company name")
	}

	result := Batch{}
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read company key: %w", err)
		}
		company, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v in batch", tok)
		}

		var listings []JobListing
		if err := dec.Decode(&listings); err != nil {
			return fmt.Errorf("failed to decode listings for %s: %w", company, err)
		}

		if idx, exists := index[company]; exists {
			result[idx].Listings = append(result[idx].Listings, listings...)
			continue
		}
		index[company] = len(result)
		result = append(result, CompanyListings{Company: company, Listings: listings})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to close batch object: %w", err)
	}

	*b = result
	return nil
}

// CompanyMeta is the metadata record for a tracked company.
// An empty Industry excludes the company from industry grouping.
type CompanyMeta struct {
	Name     string `json:"name" yaml:"name" validate:"required"`
	Industry string `json:"industry,omitempty" yaml:"industry,omitempty"`
	Priority string `json:"priority,omitempty" yaml:"priority,omitempty" validate:"omitempty,oneof=Critical High Medium Low"`
	URL      string `json:"url,omitempty" yaml:"url,omitempty" validate:"omitempty,url"`
	Selector string `json:"selector,omitempty" yaml:"selector,omitempty"`
}

// Validate validates the CompanyMeta using the validator.
func (c *CompanyMeta) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	return ValidateCompanyName(c.Name)
}
