package server

import (
	"net/http"

	"github.com/jonathan/hiring-radar/internal/types"
)

// handleListWatchlist returns every watched company.
func (s *Server) handleListWatchlist(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, &ErrUnavailable{Component: "database"})
		return
	}

	companies, err := s.store.ListWatchedCompanies(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"companies": companies,
		"count":     len(companies),
	})
}

// handleWatch adds a company to the watchlist, or updates it when already watched.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, &ErrUnavailable{Component: "database"})
		return
	}

	var req types.WatchCompanyRequest
	if err := s.decodeJSON(w, r, &req, false); err != nil {
		s.fail(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, &ErrValidation{Message: err.Error()})
		return
	}

	watched, err := s.store.WatchCompany(r.Context(), req.Meta())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, watched)
}

// handleUnwatch removes a company from the watchlist. Its stored listings are kept.
func (s *Server) handleUnwatch(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, &ErrUnavailable{Component: "database"})
		return
	}

	name := r.PathValue("name")
	removed, err := s.store.UnwatchCompany(r.Context(), name)
	if err != nil {
		s.fail(w, err)
		return
	}
	if !removed {
		s.fail(w, &ErrNotFound{Resource: "company", Name: name})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
