package transcript

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Metadata is the descriptive information the audio fallback needs.
type Metadata struct {
	Title    string
	Duration float64 // seconds
}

// MetadataFetcher resolves a video ID to its descriptive metadata.
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, videoID string) (*Metadata, error)
}

// YouTubeAPI fetches metadata through the YouTube Data API v3. Used when an
// API key is configured; otherwise the audio pipeline falls back to the
// yt-dlp probe output.
type YouTubeAPI struct {
	apiKey string
}

func NewYouTubeAPI(apiKey string) *YouTubeAPI {
	return &YouTubeAPI{apiKey: apiKey}
}

func (y *YouTubeAPI) FetchMetadata(ctx context.Context, videoID string) (*Metadata, error) {
	svc, err := youtube.NewService(ctx, option.WithAPIKey(y.apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	resp, err := svc.Videos.
		List([]string{"snippet", "contentDetails"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("videos.list: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("video %s not found", videoID)
	}

	item := resp.Items[0]
	return &Metadata{
		Title:    item.Snippet.Title,
		Duration: parseISODuration(item.ContentDetails.Duration),
	}, nil
}

var isoDurationRE = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// parseISODuration converts the API's ISO-8601 duration (PT1H2M3S) to
// seconds. Malformed input yields 0.
func parseISODuration(s string) float64 {
	m := isoDurationRE.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	h, _ := strconv.Atoi(zeroIfEmpty(m[1]))
	min, _ := strconv.Atoi(zeroIfEmpty(m[2]))
	sec, _ := strconv.Atoi(zeroIfEmpty(m[3]))
	return float64(h*3600 + min*60 + sec)
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
