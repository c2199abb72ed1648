package transcript

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// Caption track retrieval via the public watch page: the page embeds
// ytInitialPlayerResponse JSON which lists timedtext caption URLs.
// Works without an API key from most IPs.

const (
	watchURLFormat = "https://www.youtube.com/watch?v=%s"
	playerRespMark = "ytInitialPlayerResponse = "
	desktopUA      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

	maxWatchPageBytes = 6 * 1024 * 1024
	maxTimedTextBytes = 2 * 1024 * 1024
)

// CaptionEntry is one timed caption line.
type CaptionEntry struct {
	Start float64
	Text  string
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" for auto-generated
}

type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type timedText struct {
	Lines []struct {
		Start float64 `xml:"start,attr"`
		Text  string  `xml:",chardata"`
	} `xml:"text"`
}

// CaptionClient fetches existing caption tracks for a video.
type CaptionClient struct {
	httpClient *http.Client
	languages  []string
}

func NewCaptionClient(languages []string) *CaptionClient {
	if len(languages) == 0 {
		languages = []string{"en"}
	}
	return &CaptionClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		languages:  languages,
	}
}

// Fetch retrieves the best available caption track as ordered entries.
func (c *CaptionClient) Fetch(ctx context.Context, videoID string) ([]CaptionEntry, error) {
	resp, err := c.get(ctx, fmt.Sprintf(watchURLFormat, videoID), maxWatchPageBytes)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}

	idx := strings.Index(resp, playerRespMark)
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSONObject(resp[idx+len(playerRespMark):])
	if jsonData == "" {
		return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var player playerResponse
	if err := json.Unmarshal([]byte(jsonData), &player); err != nil {
		return nil, fmt.Errorf("decode player response: %w", err)
	}
	if player.Captions == nil {
		if player.PlayabilityStatus != nil && player.PlayabilityStatus.Reason != "" {
			return nil, fmt.Errorf("captions unavailable: %s", player.PlayabilityStatus.Reason)
		}
		return nil, errors.New("no captions in player response")
	}

	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, errors.New("no caption tracks")
	}

	track := pickBestTrack(tracks, c.languages)
	return c.fetchTimedText(ctx, track.BaseURL)
}

// pickBestTrack prefers a manual track in a requested language, then an
// auto-generated one, then any English track, then the first.
func pickBestTrack(tracks []captionTrack, langs []string) captionTrack {
	for _, lang := range langs {
		for _, t := range tracks {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t
			}
		}
	}
	for _, lang := range langs {
		for _, t := range tracks {
			if t.LanguageCode == lang {
				return t
			}
		}
	}
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t
		}
	}
	return tracks[0]
}

func (c *CaptionClient) fetchTimedText(ctx context.Context, baseURL string) ([]CaptionEntry, error) {
	body, err := c.get(ctx, baseURL, maxTimedTextBytes)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}

	var tt timedText
	if err := xml.Unmarshal([]byte(body), &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	entries := make([]CaptionEntry, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := cleanCaptionText(line.Text)
		if text != "" {
			entries = append(entries, CaptionEntry{Start: line.Start, Text: text})
		}
	}
	if len(entries) == 0 {
		return nil, errors.New("empty caption track")
	}
	return entries, nil
}

func (c *CaptionClient) get(ctx context.Context, url string, limit int64) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", desktopUA)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// extractJSONObject returns the balanced JSON object at the start of s,
// skipping braces inside string literals.
func extractJSONObject(s string) string {
	if len(s) == 0 || s[0] != '{' {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[:i+1]
				}
			}
		}
	}
	return ""
}

var tagRE = regexp.MustCompile(`<[^>]+>`)

// cleanCaptionText unescapes entities and strips inline markup. Timedtext
// entities are double-escaped (&amp;#39;), so unescape runs twice.
func cleanCaptionText(text string) string {
	text = html.UnescapeString(html.UnescapeString(text))
	text = tagRE.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}
