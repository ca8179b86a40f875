// Package skills maps free text onto the fixed skill, region and role-category taxonomies
// used by the analyzers.
package skills

import (
	"regexp"
	"unicode"
)

// CommonSkills is the ordered keyword list that requirement text is matched against.
var CommonSkills = []string{
	"Python", "Java", "JavaScript", "C++", "C#", "SQL", "React", "Angular",
	"Vue", "Node.js", "AWS", "GCP", "Azure", "Docker", "Kubernetes",
	"Machine Learning", "AI", "Data Science", "Cloud", "DevOps",
	"CI/CD", "Agile", "Scrum", "Product Management", "UX", "UI",
	"Design", "Marketing", "Sales", "Finance", "HR", "Operations",
	"Communication", "Leadership", "Project Management", "Teamwork",
	"Problem Solving", "Critical Thinking", "Analytics", "Statistics",
	"Research", "Development", "Testing", "QA", "Security", "Networking",
	"Database", "Frontend", "Backend", "Full Stack", "Mobile", "iOS",
	"Android", "REST", "API", "Microservices", "Big Data", "Hadoop",
	"Spark", "Tableau", "Power BI", "Excel", "Word", "PowerPoint",
	"Office", "Git", "GitHub", "Jira", "Confluence", "Slack", "Teams",
}

type skillPattern struct {
	name string
	re   *regexp.Regexp
}

var skillPatterns = compileSkillPatterns(CommonSkills)

// wordClass is a Unicode word character: any letter, any number or underscore.
const wordClass = `[\p{L}\p{N}_]`

func compileSkillPatterns(names []string) []skillPattern {
	patterns := make([]skillPattern, 0, len(names))
	for _, name := range names {
		patterns = append(patterns, skillPattern{
			name: name,
			re:   regexp.MustCompile(`(?i)` + boundaryPattern(name)),
		})
	}
	return patterns
}

// boundaryPattern wraps a keyword in word boundaries that treat non-ASCII letters
// as word characters ("Pythonä" is not "Python"). RE2's \b is ASCII-only and has
// no lookaround, so each side consumes its neighbour instead. As with \b, a side
// of the keyword that is itself a non-word character (the end of C++ or C#) needs
// a word character next to it.
func boundaryPattern(name string) string {
	r := []rune(name)
	before, after := `(?:^|[^\p{L}\p{N}_])`, `(?:$|[^\p{L}\p{N}_])`
	if !isWordRune(r[0]) {
		before = wordClass
	}
	if !isWordRune(r[len(r)-1]) {
		after = wordClass
	}
	return before + regexp.QuoteMeta(name) + after
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// ExtractSkills returns the known skills mentioned in text, in CommonSkills order.
// Unmatched text yields an empty slice.
func ExtractSkills(text string) []string {
	found := []string{}
	if text == "" {
		return found
	}
	for _, p := range skillPatterns {
		if p.re.MatchString(text) {
			found = append(found, p.name)
		}
	}
	return found
}
