// Package aggregation reshapes processed per-company data into rectangular
// cross-company tables.
package aggregation

import (
	"errors"
	"log"
	"sort"

	"github.com/jonathan/hiring-radar/internal/types"
)

// ErrNoTimeSeries is the degradation cause when the first company carries no time series.
var ErrNoTimeSeries = errors.New("no time series for the first company")

// AggregateJobData builds the cross-company view of processed. On an internal failure
// it returns an empty but well-shaped AggregatedData.
func AggregateJobData(processed *types.ProcessedData) *types.AggregatedData {
	aggregated, _ := Aggregate(processed)
	return aggregated
}

// Aggregate is AggregateJobData with the degradation reported as a *types.DegradedError.
func Aggregate(processed *types.ProcessedData) (aggregated *types.AggregatedData, err error) {
	log.Printf("[aggregation] Aggregating job data")

	defer func() {
		if r := recover(); r != nil {
			err = degrade(types.RecoveredPanic(r))
			aggregated = types.NewAggregatedData()
		}
	}()

	if processed == nil {
		return types.NewAggregatedData(), degrade(errors.New("nil processed data"))
	}

	aggregated = types.NewAggregatedData()
	companies := processed.Companies
	aggregated.Companies = append(aggregated.Companies, companies...)

	for i, company := range companies {
		aggregated.TotalJobsByCompany[company] = processed.JobCounts[i]
	}
	for company, skills := range processed.Skills {
		aggregated.SkillsByCompany[company] = skills
	}
	for company, locations := range processed.Locations {
		aggregated.LocationsByCompany[company] = locations
	}
	for company, roles := range processed.Roles {
		aggregated.RolesByCompany[company] = roles
	}

	for _, skill := range processed.AllSkills {
		for _, company := range companies {
			if count, ok := processed.Skills[company][skill]; ok {
				aggregated.SkillsHeatmap = append(aggregated.SkillsHeatmap, types.HeatmapCell{
					Skill:   skill,
					Company: company,
					Count:   count,
				})
			}
		}
	}

	for _, location := range processed.AllLocations {
		aggregated.LocationDistribution = append(aggregated.LocationDistribution, types.LocationRow{
			Location: location,
			Counts:   zeroFilled(companies, processed.Locations, location),
		})
	}

	for _, role := range processed.AllRoles {
		aggregated.RoleDistribution = append(aggregated.RoleDistribution, types.RoleRow{
			Role:   role,
			Counts: zeroFilled(companies, processed.Roles, role),
		})
	}

	// The date axis comes from the first company's series only. Companies whose series
	// cover other dates contribute zeros on this axis.
	if len(companies) > 0 {
		first, ok := processed.TimeSeries[companies[0]]
		if !ok {
			return types.NewAggregatedData(), degrade(ErrNoTimeSeries)
		}
		dates := make([]string, 0, len(first))
		for date := range first {
			dates = append(dates, date)
		}
		sort.Strings(dates)
		for _, date := range dates {
			aggregated.HiringVelocity = append(aggregated.HiringVelocity, types.VelocityRow{
				Date:   date,
				Counts: zeroFilled(companies, processed.TimeSeries, date),
			})
		}
	}

	log.Printf("[aggregation] Successfully aggregated job data")
	return aggregated, nil
}

// zeroFilled returns one column per company holding byCompany[company][key], or 0.
func zeroFilled(companies []string, byCompany map[string]map[string]int, key string) types.CompanyCounts {
	counts := make(types.CompanyCounts, 0, len(companies))
	for _, company := range companies {
		counts = append(counts, types.CompanyCount{Company: company, Count: byCompany[company][key]})
	}
	return counts
}

func degrade(cause error) error {
	log.Printf("[aggregation] Error aggregating job data: %v", cause)
	return &types.DegradedError{Stage: "aggregation", Cause: cause}
}
