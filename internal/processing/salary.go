package processing

import (
	"regexp"
	"strconv"
	"strings"
)

// salaryPattern matches ranges like "$80K - $120K" or "€80,000 - €120,000".
var salaryPattern = regexp.MustCompile(`[\$£€](\d{1,3}(?:,\d{3})*|\d+)K?\s*-\s*[\$£€](\d{1,3}(?:,\d{3})*|\d+)K?`)

// ParseSalaryRange extracts the minimum and maximum of a salary range, in thousands.
// When the text has no "K" and the minimum exceeds 1000, both values are divided by 1000.
// ok is false when the text does not contain a recognizable range.
func ParseSalaryRange(text string) (minSalary, maxSalary float64, ok bool) {
	match := salaryPattern.FindStringSubmatch(text)
	if match == nil {
		return 0, 0, false
	}

	minSalary, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", ""), 64)
	if err != nil {
		return 0, 0, false
	}
	maxSalary, err = strconv.ParseFloat(strings.ReplaceAll(match[2], ",", ""), 64)
	if err != nil {
		return 0, 0, false
	}

	if !strings.Contains(text, "K") && minSalary > 1000 {
		minSalary /= 1000
		maxSalary /= 1000
	}
	return minSalary, maxSalary, true
}
