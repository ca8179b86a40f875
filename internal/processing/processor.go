// Package processing turns raw per-company job listings into per-company tallies.
package processing

import (
	"log"
	"sort"
	"time"

	"github.com/jonathan/hiring-radar/internal/skills"
	"github.com/jonathan/hiring-radar/internal/types"
)

// WindowDays is the length of the per-company hiring time series.
const WindowDays = 30

// ProcessJobData processes batch against the current date. On an internal failure it
// returns the skeleton result (companies and job counts only).
func ProcessJobData(batch types.Batch) *types.ProcessedData {
	processed, _ := ProcessJobDataAt(batch, time.Now())
	return processed
}

// ProcessJobDataAt processes batch with the time series anchored at now. A non-nil
// error is a *types.DegradedError and the returned data is the skeleton result.
func ProcessJobDataAt(batch types.Batch, now time.Time) (processed *types.ProcessedData, err error) {
	log.Printf("[processing] Processing job data for %d companies", len(batch))

	defer func() {
		if r := recover(); r != nil {
			cause := types.RecoveredPanic(r)
			log.Printf("[processing] Error processing job data: %v", cause)
			processed = skeleton(batch)
			err = &types.DegradedError{Stage: "processing", Cause: cause}
		}
	}()

	processed = process(batch, now)
	log.Printf("[processing] Successfully processed job data")
	return processed, nil
}

func process(batch types.Batch, now time.Time) *types.ProcessedData {
	out := types.NewProcessedData()
	window := dateWindow(now)

	allRoles := make(map[string]struct{})
	allLocations := make(map[string]struct{})
	allSkills := make(map[string]struct{})

	for _, cl := range batch {
		company := cl.Company
		out.Companies = append(out.Companies, company)
		out.JobCounts = append(out.JobCounts, len(cl.Listings))

		roles := make(map[string]int)
		locations := make(map[string]int)
		companySkills := make(map[string]int)
		series := make(map[string]int, len(window))
		for _, day := range window {
			series[day] = 0
		}
		salaries := []types.SalaryRecord{}

		for _, job := range cl.Listings {
			// Role and location strings are tallied verbatim.
			roles[job.Title]++
			allRoles[job.Title] = struct{}{}
			locations[job.Location]++
			allLocations[job.Location] = struct{}{}

			for _, requirement := range job.Requirements {
				for _, skill := range skills.ExtractSkills(requirement) {
					companySkills[skill]++
					allSkills[skill] = struct{}{}
				}
			}

			if day, ok := normalizeDate(job.Date); ok {
				if _, inWindow := series[day]; inWindow {
					series[day]++
				}
			}

			if job.SalaryRange != "" {
				minSalary, maxSalary, ok := ParseSalaryRange(job.SalaryRange)
				if ok && minSalary != 0 && maxSalary != 0 {
					salaries = append(salaries, types.SalaryRecord{
						Role:      job.Title,
						MinSalary: minSalary,
						MaxSalary: maxSalary,
						AvgSalary: (minSalary + maxSalary) / 2,
					})
				}
			}
		}

		out.Roles[company] = roles
		out.Locations[company] = locations
		out.Skills[company] = companySkills
		out.TimeSeries[company] = series
		out.SalaryRanges[company] = salaries
	}

	out.AllRoles = sortedKeys(allRoles)
	out.AllLocations = sortedKeys(allLocations)
	out.AllSkills = sortedKeys(allSkills)
	return out
}

// skeleton is the degraded result: company list and raw counts, every derived map empty.
func skeleton(batch types.Batch) *types.ProcessedData {
	out := types.NewProcessedData()
	for _, cl := range batch {
		out.Companies = append(out.Companies, cl.Company)
		out.JobCounts = append(out.JobCounts, len(cl.Listings))
	}
	return out
}

// dateWindow returns the WindowDays calendar dates ending at now, newest first.
func dateWindow(now time.Time) []string {
	days := make([]string, 0, WindowDays)
	for i := 0; i < WindowDays; i++ {
		days = append(days, now.AddDate(0, 0, -i).Format(types.DateLayout))
	}
	return days
}

// normalizeDate parses a listing date; unparsable or empty dates are rejected.
func normalizeDate(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	t, err := time.Parse(types.DateLayout, raw)
	if err != nil {
		return "", false
	}
	return t.Format(types.DateLayout), true
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
