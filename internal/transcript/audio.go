package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/CodeWithDevelopers/yt-summarizer-II/pkg/executor"
)

// SpeechToText converts an audio file to transcript text.
type SpeechToText interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// WhisperClient is the OpenAI Whisper speech-to-text backend.
type WhisperClient struct {
	apiKey string
}

func NewWhisperClient(apiKey string) *WhisperClient {
	return &WhisperClient{apiKey: apiKey}
}

func (w *WhisperClient) Transcribe(ctx context.Context, audioPath string) (string, error) {
	client := openai.NewClient(w.apiKey)
	resp, err := client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: audioPath,
	})
	if err != nil {
		return "", fmt.Errorf("whisper transcription: %w", err)
	}
	return resp.Text, nil
}

// ytFormat is one entry of the yt-dlp format list.
type ytFormat struct {
	FormatID string  `json:"format_id"`
	ACodec   string  `json:"acodec"`
	VCodec   string  `json:"vcodec"`
	ABR      float64 `json:"abr"`
}

type ytProbe struct {
	Title    string     `json:"title"`
	Duration float64    `json:"duration"`
	Formats  []ytFormat `json:"formats"`
}

// AudioPipeline derives a transcript from the video's audio track:
// probe → download best audio → transcode to mono 16 kHz FLAC → Whisper.
// All intermediate artifacts live in one temp dir removed on every exit path.
type AudioPipeline struct {
	exec       executor.Executor
	stt        SpeechToText
	metadata   MetadataFetcher // optional, overrides the probe title
	ytdlpPath  string
	ffmpegPath string
}

func NewAudioPipeline(exec executor.Executor, stt SpeechToText, metadata MetadataFetcher, ytdlpPath, ffmpegPath string) *AudioPipeline {
	if ytdlpPath == "" {
		ytdlpPath = "yt-dlp"
	}
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &AudioPipeline{
		exec:       exec,
		stt:        stt,
		metadata:   metadata,
		ytdlpPath:  ytdlpPath,
		ffmpegPath: ffmpegPath,
	}
}

// Transcribe runs the full audio fallback for a video ID.
func (a *AudioPipeline) Transcribe(ctx context.Context, videoID string) (text, title string, err error) {
	if a.stt == nil {
		return "", "", errors.New("speech-to-text is not configured (set OPENAI_API_KEY)")
	}

	videoURL := fmt.Sprintf(watchURLFormat, videoID)

	out, err := a.exec.Execute(ctx, a.ytdlpPath, "-J", "--no-warnings", videoURL)
	if err != nil {
		return "", "", fmt.Errorf("probe video: %w", err)
	}

	var probe ytProbe
	if err := json.Unmarshal([]byte(out), &probe); err != nil {
		return "", "", fmt.Errorf("parse probe output: %w", err)
	}
	title = probe.Title

	if a.metadata != nil {
		if md, mdErr := a.metadata.FetchMetadata(ctx, videoID); mdErr == nil {
			title = md.Title
			log.Printf("[audio] metadata via Data API: title=%q duration=%.0fs", md.Title, md.Duration)
		} else {
			log.Printf("[audio] Data API metadata failed, using probe title: %v", mdErr)
		}
	}

	format, err := selectAudioFormat(probe.Formats)
	if err != nil {
		return "", "", err
	}
	log.Printf("[audio] selected format %s (codec=%s abr=%.0f) duration=%.0fs",
		format.FormatID, format.ACodec, format.ABR, probe.Duration)

	tmpDir, err := os.MkdirTemp("", "ytsum-audio-*")
	if err != nil {
		return "", "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	rawPath := filepath.Join(tmpDir, "audio.src")
	if _, err := a.exec.Execute(ctx, a.ytdlpPath,
		"-f", format.FormatID,
		"-o", rawPath,
		"--no-warnings",
		videoURL,
	); err != nil {
		return "", "", fmt.Errorf("download audio: %w", err)
	}

	flacPath := filepath.Join(tmpDir, "audio.flac")
	if _, err := a.exec.Execute(ctx, a.ffmpegPath,
		"-hide_banner", "-loglevel", "error",
		"-i", rawPath,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "flac",
		"-y",
		flacPath,
	); err != nil {
		return "", "", fmt.Errorf("transcode audio: %w", err)
	}

	text, err = a.stt.Transcribe(ctx, flacPath)
	if err != nil {
		return "", "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", "", errors.New("speech-to-text returned no text")
	}
	return text, title, nil
}

// selectAudioFormat picks an audio-only format, preferring the opus codec
// family, else the highest bitrate.
func selectAudioFormat(formats []ytFormat) (ytFormat, error) {
	var audioOnly []ytFormat
	for _, f := range formats {
		if f.ACodec != "" && f.ACodec != "none" && (f.VCodec == "" || f.VCodec == "none") {
			audioOnly = append(audioOnly, f)
		}
	}
	if len(audioOnly) == 0 {
		return ytFormat{}, errors.New("no audio-only format available")
	}

	sort.SliceStable(audioOnly, func(i, j int) bool {
		return audioOnly[i].ABR > audioOnly[j].ABR
	})
	for _, f := range audioOnly {
		if strings.HasPrefix(f.ACodec, "opus") {
			return f, nil
		}
	}
	return audioOnly[0], nil
}
