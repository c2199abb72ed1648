package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/CodeWithDevelopers/yt-summarizer-II/internal/summarize"
)

// SummarizeHandler streams pipeline progress as newline-delimited JSON.
type SummarizeHandler struct {
	pipeline *summarize.Pipeline
}

func NewSummarizeHandler(pipeline *summarize.Pipeline) *SummarizeHandler {
	return &SummarizeHandler{pipeline: pipeline}
}

// Summarize handles POST /api/summarize. The response body is one JSON
// ProgressEvent per line, flushed as written, ending with exactly one
// terminal event. The stream contract holds even for pre-work failures:
// a malformed body still yields a single-error-event stream.
func (h *SummarizeHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req summarize.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req = summarize.Request{} // pipeline reports the invalid request on the stream
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	flusher, canFlush := w.(http.Flusher)

	// Client disconnect cancels the run; a failed write does the same so no
	// further provider work is scheduled for a dead consumer.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	enc := json.NewEncoder(w)
	events := h.pipeline.Run(ctx, req)
	for ev := range events {
		if err := enc.Encode(ev); err != nil {
			log.Printf("[summarize] client gone, aborting stream: %v", err)
			cancel()
			for range events {
			}
			return
		}
		if canFlush {
			flusher.Flush()
		}
	}
}
