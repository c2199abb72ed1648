package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/CodeWithDevelopers/yt-summarizer-II/internal/db"
)

// HistoryHandler serves read-only access to persisted summaries.
type HistoryHandler struct {
	database *db.Database
}

func NewHistoryHandler(database *db.Database) *HistoryHandler {
	return &HistoryHandler{database: database}
}

// ListSummaries handles GET /api/summaries?limit=N, newest first.
func (h *HistoryHandler) ListSummaries(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	summaries, err := h.database.ListSummaries(limit)
	if err != nil {
		jsonError(w, "failed to list summaries", http.StatusInternalServerError)
		return
	}

	type listEntry struct {
		ID           string `json:"id"`
		VideoID      string `json:"video_id"`
		DisplayTitle string `json:"display_title"`
		Language     string `json:"language"`
		Mode         string `json:"mode"`
		Source       string `json:"source"`
		CreatedAt    string `json:"created_at"`
		UpdatedAt    string `json:"updated_at"`
	}

	entries := make([]listEntry, 0, len(summaries))
	for _, s := range summaries {
		entries = append(entries, listEntry{
			ID:           s.ID,
			VideoID:      s.VideoID,
			DisplayTitle: displayTitle(s.Content, s.Title),
			Language:     s.Language,
			Mode:         s.Mode,
			Source:       s.Source,
			CreatedAt:    s.CreatedAt.Format("2006-01-02 15:04:05"),
			UpdatedAt:    s.UpdatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	jsonResponse(w, entries, http.StatusOK)
}

// GetSummary handles GET /api/summaries/{id}.
func (h *HistoryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s, err := h.database.GetSummary(id)
	if err != nil {
		jsonError(w, "failed to load summary", http.StatusInternalServerError)
		return
	}
	if s == nil {
		jsonError(w, "summary not found", http.StatusNotFound)
		return
	}

	jsonResponse(w, map[string]interface{}{
		"summary":       s,
		"display_title": displayTitle(s.Content, s.Title),
	}, http.StatusOK)
}

const untitledSummary = "Untitled summary"

// titleMarkers are the recognized header prefixes: two marker glyphs times
// two locales (English, Vietnamese).
var titleMarkers = []string{
	"🎯 TITLE:",
	"📌 TITLE:",
	"🎯 TIÊU ĐỀ:",
	"📌 TIÊU ĐỀ:",
}

var markerGlyphs = []string{"🎯", "📌"}

// displayTitle derives a list/detail title from the summary content: the
// first recognized "marker: value" header line, else the first non-blank
// line with leading glyphs stripped, else the stored title, else a fixed
// placeholder.
func displayTitle(content, storedTitle string) string {
	lines := strings.Split(content, "\n")

	for _, line := range lines {
		line = strings.TrimSpace(line)
		for _, marker := range titleMarkers {
			if strings.HasPrefix(line, marker) {
				if v := strings.TrimSpace(strings.TrimPrefix(line, marker)); v != "" {
					return v
				}
			}
		}
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, glyph := range markerGlyphs {
			line = strings.TrimSpace(strings.TrimPrefix(line, glyph))
		}
		if line != "" {
			return line
		}
	}

	if storedTitle != "" {
		return storedTitle
	}
	return untitledSummary
}
