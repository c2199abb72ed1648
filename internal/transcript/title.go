package transcript

import (
	"strings"
	"unicode/utf8"
)

// PlaceholderTitle is used when no usable title can be derived.
const PlaceholderTitle = "YouTube Video"

const (
	titleSourceEntries = 5
	titleMaxChars      = 100
	titleMinChars      = 10
)

// DeriveTitle builds a fallback title from the opening caption entries:
// join the first five, cut at the first sentence terminator, truncate to
// 100 characters. Too-short derivations fall back to the placeholder.
func DeriveTitle(entries []CaptionEntry) string {
	n := titleSourceEntries
	if n > len(entries) {
		n = len(entries)
	}
	parts := make([]string, 0, n)
	for _, e := range entries[:n] {
		parts = append(parts, e.Text)
	}
	title := strings.Join(parts, " ")

	if i := strings.IndexAny(title, ".!?"); i >= 0 {
		title = title[:i]
	}
	title = strings.TrimSpace(title)

	if utf8.RuneCountInString(title) > titleMaxChars {
		runes := []rune(title)
		title = string(runes[:titleMaxChars])
	}

	if utf8.RuneCountInString(title) < titleMinChars {
		return PlaceholderTitle
	}
	return title
}
