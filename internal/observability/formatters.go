// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/hiring-radar/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// printEmpty prints a one-line box used when there is nothing to report.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printEmpty(message string) {
	fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, message)
	fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
}

// PrintProcessed outputs a per-company summary of processed listings.
func (p *Printer) PrintProcessed(processed *types.ProcessedData) {
	if processed == nil || len(processed.Companies) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Companies: %d   Roles: %d   Locations: %d   Skills: %d\n\n",
		len(processed.Companies), len(processed.AllRoles), len(processed.AllLocations), len(processed.AllSkills)))

	count := min(len(processed.Companies), maxItemsToShow)
	for i := 0; i < count; i++ {
		company := processed.Companies[i]
		sb.WriteString(fmt.Sprintf("%s: %d jobs\n", company, processed.JobCount(company)))
		if top := topKeys(processed.Skills[company], 3); len(top) > 0 {
			sb.WriteString(fmt.Sprintf("  Skills: %s\n", strings.Join(top, ", ")))
		}
		if n := len(processed.SalaryRanges[company]); n > 0 {
			sb.WriteString(fmt.Sprintf("  Salary ranges parsed: %d\n", n))
		}
	}
	if len(processed.Companies) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more companies\n", len(processed.Companies)-maxItemsToShow))
	}

	p.printBox("PROCESSED LISTINGS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintInsights outputs insights grouped under title.
func (p *Printer) PrintInsights(title string, insights []types.Insight) {
	if len(insights) == 0 {
		p.printEmpty(fmt.Sprintf("%s: no insights", title))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generated %d insights:\n\n", len(insights)))

	count := min(len(insights), maxItemsToShow)
	for i := 0; i < count; i++ {
		in := insights[i]
		sb.WriteString(fmt.Sprintf("• %s\n", in.Type))
		sb.WriteString(fmt.Sprintf("  %s\n", in.Insight))
	}
	if len(insights) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more insights", len(insights)-maxItemsToShow))
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintIndustryInsights outputs one box per industry, in name order.
func (p *Printer) PrintIndustryInsights(insights types.IndustryInsights) {
	for _, industry := range sortedIndustries(insights) {
		p.PrintInsights(strings.ToUpper(industry)+" INSIGHTS", insights[industry])
	}
}

// PrintRecommendations outputs recommendations with their priority markers.
func (p *Printer) PrintRecommendations(title string, recs []types.Recommendation) {
	if len(recs) == 0 {
		p.printEmpty(fmt.Sprintf("%s: no recommendations", title))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d recommendations:\n\n", len(recs)))
	for i, r := range recs {
		sb.WriteString(fmt.Sprintf("%s [%s] %s\n", priorityMarker(r.Priority), r.Priority, r.Type))
		sb.WriteString(fmt.Sprintf("  %s\n", r.Recommendation))
		if i < len(recs)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintIndustryRecommendations outputs one box per industry, in name order.
func (p *Printer) PrintIndustryRecommendations(recs types.IndustryRecommendations) {
	industries := make([]string, 0, len(recs))
	for industry := range recs {
		industries = append(industries, industry)
	}
	sort.Strings(industries)
	for _, industry := range industries {
		p.PrintRecommendations(strings.ToUpper(industry)+" RECOMMENDATIONS", recs[industry])
	}
}

// PrintDegraded lists stages that returned an empty result after an internal failure.
func (p *Printer) PrintDegraded(stages []string) {
	if len(stages) == 0 {
		return
	}
	var sb strings.Builder
	for _, stage := range stages {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", stage))
	}
	p.printBox("DEGRADED STAGES", strings.TrimSuffix(sb.String(), "\n"))
}

func priorityMarker(priority string) string {
	switch priority {
	case types.PriorityHigh:
		return "🔴"
	case types.PriorityMedium:
		return "🟡"
	default:
		return "🟢"
	}
}

func sortedIndustries(insights types.IndustryInsights) []string {
	industries := make([]string, 0, len(insights))
	for industry := range insights {
		industries = append(industries, industry)
	}
	sort.Strings(industries)
	return industries
}

// topKeys returns up to n keys by descending count, ties by name.
func topKeys(m map[string]int, n int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
