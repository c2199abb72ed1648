package transcript

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var videoIDRE = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ExtractVideoID derives the opaque video identifier from a YouTube URL.
// Accepts watch, shorts, embed and youtu.be forms, plus a bare 11-char ID.
func ExtractVideoID(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if videoIDRE.MatchString(rawURL) {
		return rawURL, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	switch host {
	case "youtu.be":
		id := strings.Trim(u.Path, "/")
		if videoIDRE.MatchString(id) {
			return id, nil
		}
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		if id := u.Query().Get("v"); videoIDRE.MatchString(id) {
			return id, nil
		}
		for _, prefix := range []string{"/shorts/", "/embed/", "/live/", "/v/"} {
			if strings.HasPrefix(u.Path, prefix) {
				id := strings.Trim(strings.TrimPrefix(u.Path, prefix), "/")
				if i := strings.Index(id, "/"); i >= 0 {
					id = id[:i]
				}
				if videoIDRE.MatchString(id) {
					return id, nil
				}
			}
		}
	}

	return "", fmt.Errorf("no video ID found in %q", rawURL)
}
