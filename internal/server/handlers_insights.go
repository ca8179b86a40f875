package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/jonathan/hiring-radar/internal/analysis"
	"github.com/jonathan/hiring-radar/internal/briefing"
	"github.com/jonathan/hiring-radar/internal/db"
	"github.com/jonathan/hiring-radar/internal/types"
)

// maxInsightLimit caps the limit query parameter of /insights.
const maxInsightLimit = 1000

// BriefResponse is the body returned by /brief.
type BriefResponse struct {
	Sent     bool             `json:"sent"`
	Digest   *briefing.Digest `json:"digest,omitempty"`
	Markdown string           `json:"markdown,omitempty"`
}

// handleListInsights returns logged insights, newest first. Query parameters:
// type filters by insight type, range restricts to a named date range such as
// "Last 30 days", limit caps the result count.
func (s *Server) handleListInsights(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, &ErrUnavailable{Component: "database"})
		return
	}

	q := r.URL.Query()
	filters := db.InsightFilters{Type: q.Get("type")}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxInsightLimit {
			s.fail(w, &ErrValidation{Field: "limit", Message: "must be between 1 and 1000"})
			return
		}
		filters.Limit = limit
	}
	if label := q.Get("range"); label != "" {
		since, _ := analysis.ParseDateRange(label, s.now())
		filters.Since = &since
	}

	insights, err := s.store.ListInsights(r.Context(), filters)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"insights": insights,
		"count":    len(insights),
	})
}

// handleBrief builds a digest from the insight log. With only_if_due set it does
// nothing unless the configured digest frequency says one is due. A sent digest
// is recorded so the schedule advances.
func (s *Server) handleBrief(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, &ErrUnavailable{Component: "database"})
		return
	}

	var req types.BriefRequest
	if err := s.decodeJSON(w, r, &req, true); err != nil {
		s.fail(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, &ErrValidation{Message: err.Error()})
		return
	}

	now := s.now()
	if req.OnlyIfDue {
		due, err := briefing.Due(r.Context(), s.store, now)
		if err != nil {
			s.fail(w, err)
			return
		}
		if !due {
			s.jsonResponse(w, http.StatusOK, BriefResponse{Sent: false})
			return
		}
	}

	var summarizer briefing.Summarizer
	if req.Summarize {
		if s.summarizer == nil {
			s.fail(w, &ErrUnavailable{Component: "summarizer"})
			return
		}
		summarizer = s.summarizer
	}

	digest, err := briefing.FromLog(r.Context(), s.store, req.Days, now, summarizer)
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := briefing.MarkSent(r.Context(), s.store, now); err != nil {
		log.Printf("[briefing] Warning: failed to record digest: %v", err)
	}

	s.jsonResponse(w, http.StatusOK, BriefResponse{
		Sent:     true,
		Digest:   digest,
		Markdown: digest.Markdown(),
	})
}
