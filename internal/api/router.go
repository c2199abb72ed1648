package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/CodeWithDevelopers/yt-summarizer-II/internal/api/handlers"
	"github.com/CodeWithDevelopers/yt-summarizer-II/internal/api/middleware"
	"github.com/CodeWithDevelopers/yt-summarizer-II/internal/config"
	"github.com/CodeWithDevelopers/yt-summarizer-II/internal/db"
	"github.com/CodeWithDevelopers/yt-summarizer-II/internal/provider"
	"github.com/CodeWithDevelopers/yt-summarizer-II/internal/summarize"
)

func NewRouter(database *db.Database, registry *provider.Registry, pipeline *summarize.Pipeline, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(middleware.CORSHandler(cfg.CORSOrigins)))

	// Handlers
	summarizeHandler := handlers.NewSummarizeHandler(pipeline)
	providersHandler := handlers.NewProvidersHandler(registry)
	historyHandler := handlers.NewHistoryHandler(database)
	settingsHandler := handlers.NewSettingsHandler(database)

	// Summarization is the expensive route: each run fans out provider
	// calls per chunk, so it gets its own rate limit and body cap.
	summarizeLimiter := middleware.NewRateLimiter(10, time.Minute)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})

		r.Group(func(r chi.Router) {
			r.Use(summarizeLimiter.Handler)
			r.Use(middleware.MaxBodySize(64 * 1024))
			r.Post("/summarize", summarizeHandler.Summarize)
		})

		r.Get("/providers", providersHandler.GetProviders)

		r.Get("/summaries", historyHandler.ListSummaries)
		r.Get("/summaries/{id}", historyHandler.GetSummary)

		r.Get("/settings", settingsHandler.GetSettings)
		r.Put("/settings", settingsHandler.UpdateSettings)
	})

	return r
}
