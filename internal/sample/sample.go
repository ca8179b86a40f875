// Package sample generates deterministic synthetic job listings for demos and tests.
package sample

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/jonathan/hiring-radar/internal/types"
)

var roles = []string{
	"Software Engineer", "Product Manager", "Data Scientist",
	"UX Designer", "DevOps Engineer", "Machine Learning Engineer",
	"Frontend Developer", "Backend Developer", "Full Stack Engineer",
	"AI Research Scientist", "Cloud Engineer", "Security Engineer",
}

var locations = []string{
	"San Francisco, CA", "New York, NY", "Seattle, WA",
	"Austin, TX", "Remote", "Boston, MA", "Chicago, IL",
	"Toronto, Canada", "London, UK", "Berlin, Germany",
	"Singapore", "Tokyo, Japan", "São Paulo, Brazil",
}

var departments = []string{
	"Engineering", "Product", "Design", "Research",
	"Data", "Infrastructure", "Security", "AI",
	"Marketing", "Customer Success", "Operations",
}

var requirements = []string{
	"Bachelor's degree in Computer Science or related field",
	"3+ years of experience in software development",
	"Strong problem-solving skills",
	"Experience with Python, Java, or C++",
	"Knowledge of cloud platforms (AWS, GCP, Azure)",
	"Experience with machine learning frameworks",
	"Strong communication skills",
	"Experience with distributed systems",
	"Experience with React, Angular, or Vue",
	"Knowledge of database systems (SQL, NoSQL)",
	"Experience with CI/CD pipelines",
	"Understanding of agile methodologies",
}

// Listing count bounds per company.
const (
	MinListings = 5
	MaxListings = 15
)

// Generator produces synthetic listings. The same seed and clock always yield the same output.
// A Generator is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
	now time.Time
}

// New returns a generator seeded with seed whose listings are dated relative to now.
func New(seed uint64, now time.Time) *Generator {
	return &Generator{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now: now,
	}
}

// Listings returns between MinListings and MaxListings listings for company, each
// posted within the last 30 days.
func (g *Generator) Listings(company string) []types.JobListing {
	n := MinListings + g.rng.IntN(MaxListings-MinListings+1)
	out := make([]types.JobListing, 0, n)
	for range n {
		out = append(out, g.listing(company, g.rng.IntN(31)))
	}
	return out
}

// Surge returns n listings for company posted within the last `days` days.
func (g *Generator) Surge(company string, n, days int) []types.JobListing {
	if days < 1 {
		days = 1
	}
	out := make([]types.JobListing, 0, n)
	for range n {
		out = append(out, g.listing(company, g.rng.IntN(days)))
	}
	return out
}

// Batch generates listings for each company in order.
func (g *Generator) Batch(companies []string) types.Batch {
	batch := make(types.Batch, 0, len(companies))
	for _, c := range companies {
		batch = append(batch, types.CompanyListings{Company: c, Listings: g.Listings(c)})
	}
	return batch
}

func (g *Generator) listing(company string, daysAgo int) types.JobListing {
	role := pick(g.rng, roles)
	department := pick(g.rng, departments)
	posted := g.now.AddDate(0, 0, -daysAgo)

	return types.JobListing{
		Title:        role,
		Location:     pick(g.rng, locations),
		Department:   department,
		Date:         posted.Format(types.DateLayout),
		URL:          fmt.Sprintf("https://careers.%s.com/jobs/%d", slug(company), 1000+g.rng.IntN(9000)),
		Description:  fmt.Sprintf("We are looking for a talented %s to join our %s team. You will be responsible for designing, developing, and maintaining our systems and applications.", role, department),
		Requirements: g.requirements(),
		SalaryRange:  fmt.Sprintf("$%dK - $%dK", 80+g.rng.IntN(101), 110+g.rng.IntN(141)),
	}
}

// requirements samples 3-6 distinct requirement lines.
func (g *Generator) requirements() []string {
	k := 3 + g.rng.IntN(4)
	idx := g.rng.Perm(len(requirements))[:k]
	out := make([]string, k)
	for i, j := range idx {
		out[i] = requirements[j]
	}
	return out
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.IntN(len(pool))]
}

func slug(company string) string {
	return strings.ReplaceAll(strings.ToLower(company), " ", "")
}
