package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// HeatmapCell is one (skill, company, count) triple of the skills heatmap.
type HeatmapCell struct {
	Skill   string `json:"skill"`
	Company string `json:"company"`
	Count   int    `json:"count"`
}

// CompanyCount is a single company column of a distribution row.
type CompanyCount struct {
	Company string
	Count   int
}

// CompanyCounts is an ordered set of company columns. Rows built by the aggregator
// carry one column per company, in company order.
type CompanyCounts []CompanyCount

// Get returns the count for company and whether the column exists.
func (c CompanyCounts) Get(company string) (int, bool) {
	for _, cc := range c {
		if cc.Company == company {
			return cc.Count, true
		}
	}
	return 0, false
}

// Total sums every column.
func (c CompanyCounts) Total() int {
	total := 0
	for _, cc := range c {
		total += cc.Count
	}
	return total
}

// LocationRow is one row of the location distribution table.
type LocationRow struct {
	Location string
	Counts   CompanyCounts
}

// RoleRow is one row of the role distribution table.
type RoleRow struct {
	Role   string
	Counts CompanyCounts
}

// VelocityRow is one day of the hiring velocity series.
type VelocityRow struct {
	Date   string
	Counts CompanyCounts
}

// MarshalJSON writes {"location": ..., "<company>": n, ...}.
func (r LocationRow) MarshalJSON() ([]byte, error) {
	return marshalRow("location", r.Location, r.Counts)
}

// UnmarshalJSON reads a flat location row.
func (r *LocationRow) UnmarshalJSON(data []byte) error {
	label, counts, err := unmarshalRow("location", data)
	if err != nil {
		return err
	}
	r.Location, r.Counts = label, counts
	return nil
}

// MarshalJSON writes {"role": ..., "<company>": n, ...}.
func (r RoleRow) MarshalJSON() ([]byte, error) {
	return marshalRow("role", r.Role, r.Counts)
}

// UnmarshalJSON reads a flat role row.
func (r *RoleRow) UnmarshalJSON(data []byte) error {
	label, counts, err := unmarshalRow("role", data)
	if err != nil {
		return err
	}
	r.Role, r.Counts = label, counts
	return nil
}

// MarshalJSON writes {"date": ..., "<company>": n, ...}.
func (r VelocityRow) MarshalJSON() ([]byte, error) {
	return marshalRow("date", r.Date, r.Counts)
}

// UnmarshalJSON reads a flat velocity row.
func (r *VelocityRow) UnmarshalJSON(data []byte) error {
	label, counts, err := unmarshalRow("date", data)
	if err != nil {
		return err
	}
	r.Date, r.Counts = label, counts
	return nil
}

func marshalRow(labelKey, label string, counts CompanyCounts) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	writeField := func(key string, value any) error {
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}
	if err := writeField(labelKey, label); err != nil {
		return nil, err
	}
	for _, cc := range counts {
		if cc.Company == labelKey {
			return nil, fmt.Errorf("company %q collides with the %s row label", cc.Company, labelKey)
		}
		buf.WriteByte(',')
		if err := writeField(cc.Company, cc.Count); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func unmarshalRow(labelKey string, data []byte) (string, CompanyCounts, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return "", nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return "", nil, fmt.Errorf("%s row must be a JSON object", labelKey)
	}

	var label string
	counts := CompanyCounts{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return "", nil, err
		}
		key, _ := tok.(string)
		if key == labelKey {
			if err := dec.Decode(&label); err != nil {
				return "", nil, fmt.Errorf("invalid %s label: %w", labelKey, err)
			}
			continue
		}
		var n int
		if err := dec.Decode(&n); err != nil {
			return "", nil, fmt.Errorf("invalid count for %s: %w", key, err)
		}
		counts = append(counts, CompanyCount{Company: key, Count: n})
	}
	if _, err := dec.Token(); err != nil {
		return "", nil, err
	}
	return label, counts, nil
}

// AggregatedData is the cross-company view of ProcessedData. The by-company maps are
// the processed maps passed through; the distribution tables are rectangular.
type AggregatedData struct {
	Companies            []string                  `json:"companies"`
	TotalJobsByCompany   map[string]int            `json:"total_jobs_by_company"`
	SkillsByCompany      map[string]map[string]int `json:"skills_by_company"`
	LocationsByCompany   map[string]map[string]int `json:"locations_by_company"`
	RolesByCompany       map[string]map[string]int `json:"roles_by_company"`
	SkillsHeatmap        []HeatmapCell             `json:"skills_heatmap_data"`
	LocationDistribution []LocationRow             `json:"location_distribution"`
	RoleDistribution     []RoleRow                 `json:"role_distribution"`
	HiringVelocity       []VelocityRow             `json:"hiring_velocity"`
}

// NewAggregatedData returns an empty but well-shaped AggregatedData.
func NewAggregatedData() *AggregatedData {
	return &AggregatedData{
		Companies:            []string{},
		TotalJobsByCompany:   make(map[string]int),
		SkillsByCompany:      make(map[string]map[string]int),
		LocationsByCompany:   make(map[string]map[string]int),
		RolesByCompany:       make(map[string]map[string]int),
		SkillsHeatmap:        []HeatmapCell{},
		LocationDistribution: []LocationRow{},
		RoleDistribution:     []RoleRow{},
		HiringVelocity:       []VelocityRow{},
	}
}
