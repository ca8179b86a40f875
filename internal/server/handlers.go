package server

import (
	"net/http"
	"strconv"

	"github.com/jonathan/hiring-radar/internal/pipeline"
	"github.com/jonathan/hiring-radar/internal/sample"
	"github.com/jonathan/hiring-radar/internal/types"
)

// runOptions returns the configured pipeline options for one request.
func (s *Server) runOptions() pipeline.Options {
	opts := s.pipeline
	if opts.Now == nil {
		opts.Now = s.now
	}
	return opts
}

// decodeAnalyzeRequest reads and validates an analysis request body.
func (s *Server) decodeAnalyzeRequest(w http.ResponseWriter, r *http.Request) (*types.AnalyzeRequest, error) {
	var req types.AnalyzeRequest
	if err := s.decodeJSON(w, r, &req, false); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, &ErrValidation{Message: err.Error()}
	}
	return &req, nil
}

// handleAnalyze runs the full pipeline over the posted batch and returns the report.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeAnalyzeRequest(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}

	report, err := pipeline.Run(r.Context(), pipeline.Input{Listings: req.Listings, Companies: req.Companies}, s.runOptions())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

// handleAnalyzeStream runs the pipeline and streams its progress as Server-Sent
// Events: one "progress" event per stage, then "report" and "complete".
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeAnalyzeRequest(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts := s.runOptions()
	opts.OnProgress = func(event pipeline.ProgressEvent) {
		sse.WriteProgress(event)
	}

	report, err := pipeline.Run(r.Context(), pipeline.Input{Listings: req.Listings, Companies: req.Companies}, opts)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}
	sse.WriteReport(report)
	sse.WriteComplete(report.RunID.String(), report.Status())
}

// handleDemo analyzes a generated sample batch. The optional seed query parameter
// selects the batch; results are never persisted or published.
func (s *Server) handleDemo(w http.ResponseWriter, r *http.Request) {
	seed := uint64(sample.DemoSeed)
	if raw := r.URL.Query().Get("seed"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			s.fail(w, &ErrValidation{Field: "seed", Message: "must be a non-negative integer"})
			return
		}
		seed = parsed
	}

	req := sample.Demo(seed, s.now())
	opts := s.runOptions()
	opts.Sinks = pipeline.Sinks{}

	report, err := pipeline.Run(r.Context(), pipeline.Input{Listings: req.Listings, Companies: req.Companies}, opts)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}
