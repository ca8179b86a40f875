package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// AnalyzeRequest is the body of an analysis request: a listings batch plus optional
// company metadata used for industry grouping.
type AnalyzeRequest struct {
	Listings  Batch         `json:"listings" validate:"required"`
	Companies []CompanyMeta `json:"companies,omitempty" validate:"omitempty,dive"`
}

// WatchCompanyRequest adds a company to the watchlist.
type WatchCompanyRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Industry string `json:"industry,omitempty"`
	Priority string `json:"priority,omitempty" validate:"omitempty,oneof=Critical High Medium Low"`
	URL      string `json:"url,omitempty" validate:"omitempty,url"`
	Selector string `json:"selector,omitempty"`
}

// BriefRequest asks for a digest over the stored insight log. OnlyIfDue skips the
// digest when the configured frequency says one was sent recently.
type BriefRequest struct {
	Days      int  `json:"days,omitempty" validate:"omitempty,min=1,max=365"`
	Summarize bool `json:"summarize,omitempty"`
	OnlyIfDue bool `json:"only_if_due,omitempty"`
}

// WatchedCompany represents a watchlist entry for API responses (avoids import cycle with db package).
type WatchedCompany struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Industry  string    `json:"industry,omitempty"`
	Priority  string    `json:"priority,omitempty"`
	URL       string    `json:"url,omitempty"`
	Selector  string    `json:"selector,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Meta converts the request into company metadata.
func (r *WatchCompanyRequest) Meta() CompanyMeta {
	return CompanyMeta{
		Name:     r.Name,
		Industry: r.Industry,
		Priority: r.Priority,
		URL:      r.URL,
		Selector: r.Selector,
	}
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	return r.Listings.Validate()
}

// Validate validates the WatchCompanyRequest using the validator.
func (r *WatchCompanyRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	return ValidateCompanyName(r.Name)
}

// Validate validates the BriefRequest using the validator.
func (r *BriefRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
