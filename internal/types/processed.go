package types

// SalaryRecord is a parsed salary range for one listing, in thousands.
type SalaryRecord struct {
	Role      string  `json:"role"`
	MinSalary float64 `json:"min_salary"`
	MaxSalary float64 `json:"max_salary"`
	AvgSalary float64 `json:"avg_salary"`
}

// ProcessedData holds per-company tallies derived from a listings batch.
// Every per-company map is keyed by a name present in Companies.
type ProcessedData struct {
	Companies    []string                  `json:"companies"`
	JobCounts    []int                     `json:"job_counts"`
	Roles        map[string]map[string]int `json:"roles"`
	Locations    map[string]map[string]int `json:"locations"`
	Skills       map[string]map[string]int `json:"skills"`
	TimeSeries   map[string]map[string]int `json:"time_series"`
	SalaryRanges map[string][]SalaryRecord `json:"salary_ranges"`
	AllRoles     []string                  `json:"all_roles"`
	AllLocations []string                  `json:"all_locations"`
	AllSkills    []string                  `json:"all_skills"`
}

// NewProcessedData returns a ProcessedData with every map and slice initialized.
func NewProcessedData() *ProcessedData {
	return &ProcessedData{
		Companies:    []string{},
		JobCounts:    []int{},
		Roles:        make(map[string]map[string]int),
		Locations:    make(map[string]map[string]int),
		Skills:       make(map[string]map[string]int),
		TimeSeries:   make(map[string]map[string]int),
		SalaryRanges: make(map[string][]SalaryRecord),
		AllRoles:     []string{},
		AllLocations: []string{},
		AllSkills:    []string{},
	}
}

// JobCount returns the listing count recorded for company, or 0 when unknown.
func (p *ProcessedData) JobCount(company string) int {
	for i, c := range p.Companies {
		if c == company && i < len(p.JobCounts) {
			return p.JobCounts[i]
		}
	}
	return 0
}
