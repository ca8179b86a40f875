package briefing

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/hiring-radar/internal/llm"
	"github.com/jonathan/hiring-radar/internal/prompts"
)

// summaryWords bounds the executive summary length.
const summaryWords = 120

// LLMSummarizer writes executive summaries with a language model.
type LLMSummarizer struct {
	client llm.Client
}

// NewLLMSummarizer wraps an LLM client.
func NewLLMSummarizer(client llm.Client) *LLMSummarizer {
	return &LLMSummarizer{client: client}
}

// Summarize renders the executive-summary prompt for d and returns the model's text.
func (s *LLMSummarizer) Summarize(ctx context.Context, d *Digest) (string, error) {
	prompt, err := summaryPrompt(d)
	if err != nil {
		return "", err
	}
	text, err := s.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}
	return text, nil
}

func summaryPrompt(d *Digest) (string, error) {
	var insights, recs strings.Builder
	for _, in := range d.Insights {
		insights.WriteString("- " + in.Insight + "\n")
	}
	for _, r := range d.Recommendations {
		recs.WriteString("- [" + r.Priority + "] " + r.Recommendation + "\n")
	}
	return prompts.Render("briefing.json", "executive-summary", map[string]string{
		"MaxWords":        strconv.Itoa(summaryWords),
		"Period":          d.Period + " ending " + d.Date.Format("2006-01-02"),
		"Insights":        strings.TrimRight(insights.String(), "\n"),
		"Recommendations": strings.TrimRight(recs.String(), "\n"),
	})
}
