package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CodeWithDevelopers/yt-summarizer-II/internal/api"
	"github.com/CodeWithDevelopers/yt-summarizer-II/internal/config"
	"github.com/CodeWithDevelopers/yt-summarizer-II/internal/db"
	"github.com/CodeWithDevelopers/yt-summarizer-II/internal/provider"
	"github.com/CodeWithDevelopers/yt-summarizer-II/internal/summarize"
	"github.com/CodeWithDevelopers/yt-summarizer-II/internal/transcript"
	"github.com/CodeWithDevelopers/yt-summarizer-II/pkg/executor"
)

func main() {
	cfg := config.Load()

	// Ensure data directory exists
	os.MkdirAll(cfg.DataPath, 0755)

	// Initialize database
	database, err := db.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Register summarization providers. A provider with no credential stays
	// registered so the API can report it as unavailable with a hint.
	registry := provider.NewRegistry(cfg.DefaultProvider)
	geminiModel := func() string { return database.GetSetting("gemini_model", "") }
	registry.Register(provider.NewGemini(cfg.GeminiAPIKey, geminiModel), "GEMINI_API_KEY")
	registry.Register(provider.NewOpenAI(cfg.OpenAIAPIKey), "OPENAI_API_KEY")
	registry.Register(provider.NewClaude(cfg.AnthropicAPIKey), "ANTHROPIC_API_KEY")
	for name, available := range registry.Availability() {
		log.Printf("[providers] %s available=%v", name, available)
	}

	// Transcript acquisition: captions first, audio transcription fallback
	captions := transcript.NewCaptionClient([]string{"en", "vi"})
	var stt transcript.SpeechToText
	if cfg.OpenAIAPIKey != "" {
		stt = transcript.NewWhisperClient(cfg.OpenAIAPIKey)
	}
	var metadata transcript.MetadataFetcher
	if cfg.YouTubeAPIKey != "" {
		metadata = transcript.NewYouTubeAPI(cfg.YouTubeAPIKey)
	}
	audio := transcript.NewAudioPipeline(executor.New(), stt, metadata, cfg.YTDLPPath, cfg.FFmpegPath)
	acquirer := transcript.NewAcquirer(captions, audio)

	pipeline := summarize.NewPipeline(database, acquirer, registry, cfg.ChunkSize, cfg.ChunkOverlap)

	router := api.NewRouter(database, registry, pipeline, cfg)

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{Addr: addr, Handler: router}

	go func() {
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown: let in-flight summarization streams finish
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
