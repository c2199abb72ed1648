// Package transcript resolves a video identifier to transcript text via an
// ordered fallback chain: existing caption track first, then audio
// download + speech-to-text.
package transcript

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// Source records transcript provenance, persisted alongside the summary.
type Source string

const (
	SourceCaptioned   Source = "captioned"
	SourceTranscribed Source = "transcribed"
)

// Transcript is the result of acquisition.
type Transcript struct {
	Text   string
	Title  string
	Source Source
}

// AcquisitionError means no transcript could be obtained through any stage.
type AcquisitionError struct {
	Stage string
	Err   error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("transcript acquisition failed at %s: %v", e.Stage, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// CaptionFetcher retrieves an existing caption track.
type CaptionFetcher interface {
	Fetch(ctx context.Context, videoID string) ([]CaptionEntry, error)
}

// AudioTranscriber derives a transcript from the audio track.
type AudioTranscriber interface {
	Transcribe(ctx context.Context, videoID string) (text, title string, err error)
}

// Acquirer runs the fallback chain. It is invoked at most once per pipeline
// run and never retries; transient failures surface to the caller.
type Acquirer struct {
	captions CaptionFetcher
	audio    AudioTranscriber
}

func NewAcquirer(captions CaptionFetcher, audio AudioTranscriber) *Acquirer {
	return &Acquirer{captions: captions, audio: audio}
}

// Acquire resolves a video ID to transcript text, first success wins.
func (a *Acquirer) Acquire(ctx context.Context, videoID string) (*Transcript, error) {
	entries, capErr := a.captions.Fetch(ctx, videoID)
	if capErr == nil && len(entries) > 0 {
		texts := make([]string, 0, len(entries))
		for _, e := range entries {
			texts = append(texts, e.Text)
		}
		log.Printf("[acquire] captions found for %s (%d entries)", videoID, len(entries))
		return &Transcript{
			Text:   strings.Join(texts, " "),
			Title:  DeriveTitle(entries),
			Source: SourceCaptioned,
		}, nil
	}
	if capErr == nil {
		capErr = fmt.Errorf("caption track was empty")
	}
	log.Printf("[acquire] captions unavailable for %s, falling back to audio: %v", videoID, capErr)

	text, title, audioErr := a.audio.Transcribe(ctx, videoID)
	if audioErr != nil {
		return nil, &AcquisitionError{
			Stage: "audio transcription",
			Err:   fmt.Errorf("captions: %v; audio: %w", capErr, audioErr),
		}
	}

	if strings.TrimSpace(title) == "" {
		title = PlaceholderTitle
	}
	log.Printf("[acquire] audio transcription succeeded for %s (%d chars)", videoID, len(text))
	return &Transcript{
		Text:   text,
		Title:  title,
		Source: SourceTranscribed,
	}, nil
}
