package analysis

import (
	"github.com/jonathan/hiring-radar/internal/types"
)

// counts builds ordered company columns from alternating name/count pairs.
func counts(pairs ...any) types.CompanyCounts {
	var out types.CompanyCounts
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, types.CompanyCount{Company: pairs[i].(string), Count: pairs[i+1].(int)})
	}
	return out
}

func velocityRows(company string, perDay ...int) []types.VelocityRow {
	rows := make([]types.VelocityRow, 0, len(perDay))
	for i, n := range perDay {
		rows = append(rows, types.VelocityRow{
			Date:   dateFor(i),
			Counts: counts(company, n),
		})
	}
	return rows
}

func dateFor(i int) string {
	return []string{
		"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04",
		"2024-03-05", "2024-03-06", "2024-03-07", "2024-03-08",
	}[i]
}

func aggregatedWith(companies ...string) *types.AggregatedData {
	data := types.NewAggregatedData()
	data.Companies = companies
	return data
}

func insightTypes(insights []types.Insight) []types.InsightType {
	out := make([]types.InsightType, 0, len(insights))
	for _, in := range insights {
		out = append(out, in.Type)
	}
	return out
}
