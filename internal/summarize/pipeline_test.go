package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/CodeWithDevelopers/yt-summarizer-II/internal/db/models"
	"github.com/CodeWithDevelopers/yt-summarizer-II/internal/provider"
	"github.com/CodeWithDevelopers/yt-summarizer-II/internal/transcript"
)

const testVideoID = "dQw4w9WgXcQ"

type fakeStore struct {
	cached     *models.Summary
	findErr    error
	upsertErr  error
	upserts    int
	lastUpsert models.Summary
}

func (s *fakeStore) FindSummary(videoID, language string) (*models.Summary, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.cached, nil
}

func (s *fakeStore) UpsertSummary(videoID, language, title, content, mode, source string) (*models.Summary, error) {
	s.upserts++
	s.lastUpsert = models.Summary{
		VideoID: videoID, Language: language, Title: title,
		Content: content, Mode: mode, Source: source,
	}
	if s.upsertErr != nil {
		return nil, s.upsertErr
	}
	return &s.lastUpsert, nil
}

type fakeAcquirer struct {
	transcript *transcript.Transcript
	err        error
	calls      int
}

func (a *fakeAcquirer) Acquire(ctx context.Context, videoID string) (*transcript.Transcript, error) {
	a.calls++
	if a.err != nil {
		return nil, a.err
	}
	return a.transcript, nil
}

type fakeProvider struct {
	name      string
	available bool
	calls     int
	failAt    int // 1-based call number that fails; 0 means never
	output    func(call int, prompt string) string
}

func (p *fakeProvider) Name() string    { return p.name }
func (p *fakeProvider) Available() bool { return p.available }

func (p *fakeProvider) Generate(ctx context.Context, prompt string) (string, error) {
	p.calls++
	if p.failAt != 0 && p.calls == p.failAt {
		return "", &provider.ProviderError{Provider: p.name, Err: errors.New("upstream 500")}
	}
	if p.output != nil {
		return p.output(p.calls, prompt), nil
	}
	return fmt.Sprintf("part %d", p.calls), nil
}

func newTestRegistry(providers ...*fakeProvider) *provider.Registry {
	reg := provider.NewRegistry(providers[0].name)
	for _, p := range providers {
		reg.Register(p, strings.ToUpper(p.name)+"_API_KEY")
	}
	return reg
}

func collect(t *testing.T, events <-chan Event) []Event {
	t.Helper()
	var out []Event
	for ev := range events {
		out = append(out, ev)
	}
	if len(out) == 0 {
		t.Fatal("stream closed without any event")
	}
	last := out[len(out)-1]
	if !last.Terminal() {
		t.Fatalf("stream ended on non-terminal event %+v", last)
	}
	for _, ev := range out[:len(out)-1] {
		if ev.Terminal() {
			t.Fatalf("terminal event before end of stream: %+v", ev)
		}
	}
	return out
}

func TestPipelineCacheHit(t *testing.T) {
	store := &fakeStore{cached: &models.Summary{
		VideoID: testVideoID, Content: "cached summary", Source: "captioned",
	}}
	acq := &fakeAcquirer{}
	prov := &fakeProvider{name: "gemini", available: true}
	p := NewPipeline(store, acq, newTestRegistry(prov), 7000, 1000)

	events := collect(t, p.Run(context.Background(), Request{URL: testVideoID}))

	if len(events) != 1 {
		t.Fatalf("cache hit emitted %d events, want 1: %+v", len(events), events)
	}
	ev := events[0]
	if ev.Type != EventComplete || ev.Summary != "cached summary" || ev.Source != "captioned" {
		t.Errorf("unexpected complete event: %+v", ev)
	}
	if prov.calls != 0 {
		t.Errorf("provider called %d times on cache hit", prov.calls)
	}
	if acq.calls != 0 {
		t.Errorf("acquirer called %d times on cache hit", acq.calls)
	}
}

func TestPipelineProgressSequence(t *testing.T) {
	store := &fakeStore{}
	// chunkSize 9 / overlap 10 splits this into exactly 3 chunks.
	acq := &fakeAcquirer{transcript: &transcript.Transcript{
		Text: "aa bb cc dd ee ff gg", Title: "Test Video", Source: transcript.SourceCaptioned,
	}}
	prov := &fakeProvider{name: "gemini", available: true}
	p := NewPipeline(store, acq, newTestRegistry(prov), 9, 10)

	events := collect(t, p.Run(context.Background(), Request{URL: testVideoID}))

	var gotChunks []int
	var gotStages []Stage
	for _, ev := range events {
		if ev.Type == EventProgress {
			gotChunks = append(gotChunks, ev.CurrentChunk)
			gotStages = append(gotStages, ev.Stage)
		}
	}
	wantChunks := []int{0, 1, 2, 3, 3, 3}
	if fmt.Sprint(gotChunks) != fmt.Sprint(wantChunks) {
		t.Errorf("currentChunk sequence = %v, want %v", gotChunks, wantChunks)
	}
	wantStages := []Stage{StageAnalyzing, StageProcessing, StageProcessing, StageProcessing, StageFinalizing, StageSaving}
	if fmt.Sprint(gotStages) != fmt.Sprint(wantStages) {
		t.Errorf("stage sequence = %v, want %v", gotStages, wantStages)
	}

	last := events[len(events)-1]
	if last.Type != EventComplete {
		t.Fatalf("final event = %+v, want complete", last)
	}
	if last.Warning != "" {
		t.Errorf("unexpected warning: %q", last.Warning)
	}
	if last.Source != string(transcript.SourceCaptioned) {
		t.Errorf("source = %q", last.Source)
	}
	// 3 chunk calls plus the combining pass.
	if prov.calls != 4 {
		t.Errorf("provider called %d times, want 4", prov.calls)
	}
	if store.upserts != 1 {
		t.Errorf("upsert called %d times, want 1", store.upserts)
	}
	if store.lastUpsert.Title != "Test Video" {
		t.Errorf("persisted title = %q", store.lastUpsert.Title)
	}
}

func TestPipelineSaveFailureCompletesWithWarning(t *testing.T) {
	store := &fakeStore{upsertErr: errors.New("disk full")}
	acq := &fakeAcquirer{transcript: &transcript.Transcript{
		Text: "some transcript text", Title: "T", Source: transcript.SourceTranscribed,
	}}
	prov := &fakeProvider{name: "gemini", available: true}
	p := NewPipeline(store, acq, newTestRegistry(prov), 7000, 1000)

	events := collect(t, p.Run(context.Background(), Request{URL: testVideoID}))

	last := events[len(events)-1]
	if last.Type != EventComplete {
		t.Fatalf("final event = %+v, want complete despite save failure", last)
	}
	if last.Warning == "" {
		t.Error("expected a warning on the complete event")
	}
	if last.Summary == "" {
		t.Error("generated content was discarded")
	}
}

func TestPipelineChunkFailureAborts(t *testing.T) {
	store := &fakeStore{}
	acq := &fakeAcquirer{transcript: &transcript.Transcript{
		Text: "aa bb cc dd ee ff gg", Title: "T", Source: transcript.SourceCaptioned,
	}}
	// Call 1 is chunk 1; call 2 (chunk 2) fails.
	prov := &fakeProvider{name: "gemini", available: true, failAt: 2}
	p := NewPipeline(store, acq, newTestRegistry(prov), 9, 10)

	events := collect(t, p.Run(context.Background(), Request{URL: testVideoID}))

	last := events[len(events)-1]
	if last.Type != EventError {
		t.Fatalf("final event = %+v, want error", last)
	}
	if prov.calls != 2 {
		t.Errorf("provider called %d times after chunk failure, want 2", prov.calls)
	}
	if store.upserts != 0 {
		t.Errorf("failed run was persisted (%d upserts)", store.upserts)
	}
}

func TestPipelineEmptyFinalGeneration(t *testing.T) {
	store := &fakeStore{}
	acq := &fakeAcquirer{transcript: &transcript.Transcript{
		Text: "some transcript text", Title: "T", Source: transcript.SourceCaptioned,
	}}
	prov := &fakeProvider{name: "gemini", available: true, output: func(call int, prompt string) string {
		if call == 1 {
			return "part 1"
		}
		return "   " // combining pass yields nothing
	}}
	p := NewPipeline(store, acq, newTestRegistry(prov), 7000, 1000)

	events := collect(t, p.Run(context.Background(), Request{URL: testVideoID}))

	last := events[len(events)-1]
	if last.Type != EventError {
		t.Fatalf("final event = %+v, want error", last)
	}
	if !strings.Contains(last.Detail, "no content generated") {
		t.Errorf("error detail = %q", last.Detail)
	}
	if store.upserts != 0 {
		t.Errorf("empty result was persisted")
	}
}

func TestPipelineUnconfiguredProvider(t *testing.T) {
	store := &fakeStore{cached: &models.Summary{Content: "should not be served"}}
	acq := &fakeAcquirer{}
	gemini := &fakeProvider{name: "gemini", available: false}
	claude := &fakeProvider{name: "claude", available: true}
	p := NewPipeline(store, acq, newTestRegistry(gemini, claude), 7000, 1000)

	events := collect(t, p.Run(context.Background(), Request{URL: testVideoID}))

	if len(events) != 1 {
		t.Fatalf("got %d events, want immediate error: %+v", len(events), events)
	}
	ev := events[0]
	if ev.Type != EventError {
		t.Fatalf("event = %+v, want error", ev)
	}
	if !strings.Contains(ev.Message, "gemini") {
		t.Errorf("error does not name the provider: %q", ev.Message)
	}
	if !strings.Contains(ev.Message, "claude") {
		t.Errorf("error does not suggest the configured alternative: %q", ev.Message)
	}
	if acq.calls != 0 {
		t.Error("acquisition ran for an unconfigured provider")
	}
}

func TestPipelineUnknownProvider(t *testing.T) {
	store := &fakeStore{}
	prov := &fakeProvider{name: "gemini", available: true}
	p := NewPipeline(store, &fakeAcquirer{}, newTestRegistry(prov), 7000, 1000)

	events := collect(t, p.Run(context.Background(), Request{URL: testVideoID, Provider: "grok"}))

	ev := events[len(events)-1]
	if ev.Type != EventError {
		t.Fatalf("event = %+v, want error", ev)
	}
	if !strings.Contains(ev.Message, "grok") {
		t.Errorf("error does not name the unknown provider: %q", ev.Message)
	}
}

func TestPipelineInvalidURL(t *testing.T) {
	prov := &fakeProvider{name: "gemini", available: true}
	p := NewPipeline(&fakeStore{}, &fakeAcquirer{}, newTestRegistry(prov), 7000, 1000)

	events := collect(t, p.Run(context.Background(), Request{URL: "https://example.com/not-youtube"}))

	if events[len(events)-1].Type != EventError {
		t.Fatalf("expected error event, got %+v", events)
	}
}

func TestPipelineAcquisitionFailure(t *testing.T) {
	acq := &fakeAcquirer{err: &transcript.AcquisitionError{
		Stage: "audio transcription", Err: errors.New("yt-dlp exited 1"),
	}}
	prov := &fakeProvider{name: "gemini", available: true}
	p := NewPipeline(&fakeStore{}, acq, newTestRegistry(prov), 7000, 1000)

	events := collect(t, p.Run(context.Background(), Request{URL: testVideoID}))

	last := events[len(events)-1]
	if last.Type != EventError {
		t.Fatalf("final event = %+v, want error", last)
	}
	if !strings.Contains(last.Message, "transcript") {
		t.Errorf("error message = %q", last.Message)
	}
	if prov.calls != 0 {
		t.Errorf("provider called %d times after acquisition failure", prov.calls)
	}
}

func TestPipelineCacheLookupFailureIsMiss(t *testing.T) {
	store := &fakeStore{findErr: errors.New("database is locked")}
	acq := &fakeAcquirer{transcript: &transcript.Transcript{
		Text: "some transcript text", Title: "T", Source: transcript.SourceCaptioned,
	}}
	prov := &fakeProvider{name: "gemini", available: true}
	p := NewPipeline(store, acq, newTestRegistry(prov), 7000, 1000)

	events := collect(t, p.Run(context.Background(), Request{URL: testVideoID}))

	if events[len(events)-1].Type != EventComplete {
		t.Fatalf("expected a full run despite lookup failure, got %+v", events)
	}
	if acq.calls != 1 {
		t.Errorf("acquirer called %d times, want 1", acq.calls)
	}
}
