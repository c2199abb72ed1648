// Package summarize implements the incremental summarization pipeline:
// cache check, transcript acquisition, chunked generation, a combining
// pass, persistence, and a streamed progress protocol.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/CodeWithDevelopers/yt-summarizer-II/internal/db/models"
	"github.com/CodeWithDevelopers/yt-summarizer-II/internal/provider"
	"github.com/CodeWithDevelopers/yt-summarizer-II/internal/transcript"
)

// InvalidRequestError reports malformed input, surfaced before any work.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string { return "invalid request: " + e.Reason }

// Request is one summarization job.
type Request struct {
	URL      string `json:"url"`
	Language string `json:"language"`
	Mode     string `json:"mode"`
	Provider string `json:"provider"`
}

// Acquirer resolves a video ID to transcript text.
type Acquirer interface {
	Acquire(ctx context.Context, videoID string) (*transcript.Transcript, error)
}

// Store is the persistence surface the pipeline needs.
type Store interface {
	FindSummary(videoID, language string) (*models.Summary, error)
	UpsertSummary(videoID, language, title, content, mode, source string) (*models.Summary, error)
}

// Pipeline orchestrates one summarization run per request. Chunk generation
// is intentionally sequential: progress events stay ordered and provider
// load per request is bounded.
type Pipeline struct {
	store     Store
	acquirer  Acquirer
	providers *provider.Registry
	chunkSize int
	overlap   int
}

func NewPipeline(store Store, acquirer Acquirer, providers *provider.Registry, chunkSize, overlap int) *Pipeline {
	if chunkSize <= 0 {
		chunkSize = 7000
	}
	if overlap <= 0 {
		overlap = 1000
	}
	return &Pipeline{
		store:     store,
		acquirer:  acquirer,
		providers: providers,
		chunkSize: chunkSize,
		overlap:   overlap,
	}
}

// Run starts a pipeline run and returns its event stream. The channel is
// closed after exactly one terminal event, on every exit path. If the
// consumer stops reading (client disconnect), the context cancellation
// stops remaining work.
func (p *Pipeline) Run(ctx context.Context, req Request) <-chan Event {
	events := make(chan Event)

	go func() {
		defer close(events)

		emit := func(ev Event) bool {
			select {
			case events <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		}

		defer func() {
			if r := recover(); r != nil {
				log.Printf("[pipeline] panic: %v", r)
				emit(errorEvent("internal error", fmt.Sprint(r)))
			}
		}()

		p.run(ctx, req, emit)
	}()

	return events
}

func (p *Pipeline) run(ctx context.Context, req Request, emit func(Event) bool) {
	language := req.Language
	if language == "" {
		language = "en"
	}
	mode := req.Mode
	if mode == "" {
		mode = DefaultMode
	}

	// Request validation happens before any work.
	videoID, err := transcript.ExtractVideoID(req.URL)
	if err != nil {
		emit(p.failure(&InvalidRequestError{Reason: err.Error()}))
		return
	}

	prov, err := p.providers.Resolve(req.Provider)
	if err != nil {
		emit(p.failure(&InvalidRequestError{Reason: err.Error()}))
		return
	}
	if !prov.Available() {
		emit(p.failure(p.providers.NotConfigured(prov)))
		return
	}

	// Full-bypass cache: a hit is served as-is, never revalidated.
	if cached, err := p.store.FindSummary(videoID, language); err != nil {
		log.Printf("[pipeline] cache lookup failed, treating as miss: %v", err)
	} else if cached != nil {
		log.Printf("[pipeline] cache hit for %s/%s", videoID, language)
		emit(completeEvent(cached.Content, cached.Source, ""))
		return
	}

	if !emit(progressEvent(StageAnalyzing, 0, 0, "Fetching transcript")) {
		return
	}

	tr, err := p.acquirer.Acquire(ctx, videoID)
	if err != nil {
		emit(p.failure(err))
		return
	}
	log.Printf("[pipeline] acquired %s transcript for %s (%d chars)", tr.Source, videoID, len(tr.Text))

	chunks := SplitChunks(tr.Text, p.chunkSize, p.overlap)
	total := len(chunks)
	log.Printf("[pipeline] split into %d chunks (size=%d overlap=%d)", total, p.chunkSize, p.overlap)

	// The progress tick for chunk i is emitted before its provider call, so
	// the caller always sees the tick before the unit of work.
	partials := make([]string, 0, total)
	for i, chunk := range chunks {
		if ctx.Err() != nil {
			return
		}
		if !emit(progressEvent(StageProcessing, i+1, total,
			fmt.Sprintf("Summarizing section %d of %d", i+1, total))) {
			return
		}
		part, err := prov.Generate(ctx, ChunkPrompt(language, chunk.Text))
		if err != nil {
			emit(p.failure(fmt.Errorf("chunk %d/%d: %w", i+1, total, err)))
			return
		}
		partials = append(partials, part)
	}

	if !emit(progressEvent(StageFinalizing, total, total, "Combining sections")) {
		return
	}

	combined := strings.Join(partials, SectionSeparator)
	final, err := prov.Generate(ctx, CombinePrompt(language, mode, combined))
	if err != nil {
		emit(p.failure(fmt.Errorf("final pass: %w", err)))
		return
	}
	if strings.TrimSpace(final) == "" {
		emit(p.failure(&provider.ProviderError{
			Provider: prov.Name(),
			Err:      errors.New("no content generated"),
		}))
		return
	}

	if !emit(progressEvent(StageSaving, total, total, "Saving summary")) {
		return
	}

	// Persistence failure does not discard the generated content: the run
	// still completes, downgraded with a warning.
	warning := ""
	if _, err := p.store.UpsertSummary(videoID, language, tr.Title, final, mode, string(tr.Source)); err != nil {
		log.Printf("[pipeline] save failed for %s/%s: %v", videoID, language, err)
		warning = "summary generated but could not be saved; it will not appear in history"
	}

	emit(completeEvent(final, string(tr.Source), warning))
}

// failure converts a pipeline error into the terminal error event, mapping
// the error taxonomy onto a human-readable message plus diagnostic detail.
func (p *Pipeline) failure(err error) Event {
	var (
		invalidErr *InvalidRequestError
		configErr  *provider.ConfigurationError
		acqErr     *transcript.AcquisitionError
		provErr    *provider.ProviderError
	)
	switch {
	case errors.As(err, &invalidErr):
		return errorEvent(invalidErr.Reason, err.Error())
	case errors.As(err, &configErr):
		return errorEvent(configErr.Error(), "missing credential")
	case errors.As(err, &acqErr):
		return errorEvent("could not obtain a transcript for this video", err.Error())
	case errors.As(err, &provErr):
		return errorEvent("summary generation failed", err.Error())
	default:
		return errorEvent("summarization failed", err.Error())
	}
}
