package analysis

import (
	"encoding/json"
	"fmt"
)

// Thresholds holds every cut-off used by the analyzers. Percentages are in points
// (0-100); prevalences are fractions (0-1).
type Thresholds struct {
	SurgePercent   float64 `json:"surge_percent"`
	DeclinePercent float64 `json:"decline_percent"`
	LeadershipMin  int     `json:"leadership_min"`
	TechFocusMin   int     `json:"tech_focus_min"`
	RemotePercent  float64 `json:"remote_percent"`
	GeoRegionMin   int     `json:"geo_region_min"`

	EmergingMinPrevalence    float64 `json:"emerging_min_prevalence"`
	EmergingMaxPrevalence    float64 `json:"emerging_max_prevalence"`
	EmergingMinDemand        int     `json:"emerging_min_demand"`
	EmergingTopN             int     `json:"emerging_top_n"`
	CompetitiveMinPrevalence float64 `json:"competitive_min_prevalence"`
	CompetitiveMinDemand     int     `json:"competitive_min_demand"`
	CompetitiveTopN          int     `json:"competitive_top_n"`
	UniqueMinCount           int     `json:"unique_min_count"`
	UniqueTopN               int     `json:"unique_top_n"`

	CategoryFocusPercent   float64 `json:"category_focus_percent"`
	DivergenceSpread       float64 `json:"divergence_spread"`
	DivergenceTopPercent   float64 `json:"divergence_top_percent"`
	GeographicShiftPercent float64 `json:"geographic_shift_percent"`

	LeaderFactor          float64 `json:"leader_factor"`
	MinIndustrySize       int     `json:"min_industry_size"`
	SpecificMinPrevalence float64 `json:"specific_min_prevalence"`
	SpecificMinRatio      float64 `json:"specific_min_ratio"`
	OtherPrevalenceFloor  float64 `json:"other_prevalence_floor"`
	IndustryTopSkills     int     `json:"industry_top_skills"`
	IndustryTopHubs       int     `json:"industry_top_hubs"`
}

// DefaultThresholds returns the standard analyzer cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SurgePercent:   30,
		DeclinePercent: -30,
		LeadershipMin:  2,
		TechFocusMin:   3,
		RemotePercent:  50,
		GeoRegionMin:   3,

		EmergingMinPrevalence:    0.10,
		EmergingMaxPrevalence:    0.40,
		EmergingMinDemand:        5,
		EmergingTopN:             5,
		CompetitiveMinPrevalence: 0.70,
		CompetitiveMinDemand:     10,
		CompetitiveTopN:          5,
		UniqueMinCount:           2,
		UniqueTopN:               3,

		CategoryFocusPercent:   40,
		DivergenceSpread:       30,
		DivergenceTopPercent:   25,
		GeographicShiftPercent: 20,

		LeaderFactor:          1.25,
		MinIndustrySize:       2,
		SpecificMinPrevalence: 0.40,
		SpecificMinRatio:      2,
		OtherPrevalenceFloor:  0.01,
		IndustryTopSkills:     5,
		IndustryTopHubs:       3,
	}
}

// UnmarshalJSON decodes over DefaultThresholds: keys left out keep their
// default and an explicit 0 is kept as 0.
func (t *Thresholds) UnmarshalJSON(data []byte) error {
	type plain Thresholds
	decoded := plain(DefaultThresholds())
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*t = Thresholds(decoded)
	return nil
}

// IsZero reports whether t is the zero value, i.e. no thresholds were configured.
func (t Thresholds) IsZero() bool {
	return t == Thresholds{}
}

// Validate checks that the thresholds are internally consistent.
func (t Thresholds) Validate() error {
	if t.DeclinePercent > 0 {
		return fmt.Errorf("decline_percent must be negative or zero, got %v", t.DeclinePercent)
	}
	if t.EmergingMinPrevalence > t.EmergingMaxPrevalence {
		return fmt.Errorf("emerging_min_prevalence (%v) exceeds emerging_max_prevalence (%v)",
			t.EmergingMinPrevalence, t.EmergingMaxPrevalence)
	}
	for name, v := range map[string]float64{
		"emerging_min_prevalence":    t.EmergingMinPrevalence,
		"emerging_max_prevalence":    t.EmergingMaxPrevalence,
		"competitive_min_prevalence": t.CompetitiveMinPrevalence,
		"specific_min_prevalence":    t.SpecificMinPrevalence,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %v", name, v)
		}
	}
	if t.OtherPrevalenceFloor <= 0 {
		return fmt.Errorf("other_prevalence_floor must be positive, got %v", t.OtherPrevalenceFloor)
	}
	if t.MinIndustrySize < 1 {
		return fmt.Errorf("min_industry_size must be at least 1, got %d", t.MinIndustrySize)
	}
	return nil
}
