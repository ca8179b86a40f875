package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/jonathan/hiring-radar/internal/pipeline"
)

// Event names on the /analyze/stream channel, in the order a client sees them.
const (
	eventProgress = "progress"
	eventReport   = "report"
	eventError    = "error"
	eventComplete = "complete"
)

// SSEWriter streams pipeline progress to a client as Server-Sent Events.
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter sets the event-stream headers. It fails when w cannot flush.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support streaming")
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent writes one event frame with a JSON payload and flushes it.
func (s *SSEWriter) WriteEvent(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event, err)
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// send drops write errors after logging them; the client has gone away.
func (s *SSEWriter) send(event string, data any) {
	if err := s.WriteEvent(event, data); err != nil {
		log.Printf("[server] stream %s event: %v", event, err)
	}
}

func (s *SSEWriter) WriteProgress(event pipeline.ProgressEvent) {
	s.send(eventProgress, event)
}

func (s *SSEWriter) WriteReport(report *pipeline.Report) {
	s.send(eventReport, report)
}

func (s *SSEWriter) WriteError(message string) {
	s.send(eventError, map[string]string{"error": message})
}

// WriteComplete ends the stream; status is the run status, completed or degraded.
func (s *SSEWriter) WriteComplete(runID, status string) {
	s.send(eventComplete, map[string]string{"run_id": runID, "status": status})
}
