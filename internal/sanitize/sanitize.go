// Package sanitize strips conversational preambles and meta-commentary
// that LLM backends prepend to generated summaries ("Here's a summary:",
// "Dưới đây là bản tóm tắt:", leading "Label:" lines). Best effort: the
// rules run once, in order, anchored at the start of the text, so residual
// preamble deeper in the output is left alone.
package sanitize

import (
	"regexp"
	"strings"
)

// structuredPrefixes mark lines that carry markup or section markers and
// must never be treated as a strippable label.
var structuredPrefixes = []string{"#", "-", "*", "🎯", "📌"}

type rule struct {
	re *regexp.Regexp
	// skipStructured disables the rule when the text starts with a
	// heading, bullet or reserved emoji section marker.
	skipStructured bool
}

// rules is the ordered stripping chain. Each pattern is a single
// leading-anchor substitution; extend per locale by appending here.
var rules = []rule{
	// English lead-in before a domain keyword and colon:
	// "Here's a summary of the video: ..."
	{re: regexp.MustCompile(`(?i)^(?:here(?:'s| is)|this is|below is)[^:\n]{0,100}?(?:summary|translation|analysis)[^:\n]{0,40}:\s*`)},
	// Vietnamese equivalents: "Dưới đây là bản tóm tắt: ..."
	{re: regexp.MustCompile(`^(?:Dưới đây là|Đây là|Sau đây là)[^:\n]{0,100}?(?:tóm tắt|bản dịch|phân tích)[^:\n]{0,40}:\s*`)},
	// Conversational opener ending at the first comma: "Sure, ..." / "Vâng, ..."
	{re: regexp.MustCompile(`(?i)^(?:sure|certainly|of course|okay|vâng|được rồi)[^,\n]{0,60},\s*`)},
	// Meta announcements: "Based on the transcript, ..." / "I understand ..."
	{re: regexp.MustCompile(`(?i)^(?:based on[^,\n]{0,80},|i understand[^.\n]{0,80}\.|now,|first,)\s*`)},
	// Leading "Label:" on an unstructured first line ("Summary: ...", "Tóm tắt: ...")
	{re: regexp.MustCompile(`^[\p{L}][\p{L} ]{0,30}:\s*`), skipStructured: true},
	// Leading numeric list marker on an unstructured first line
	{re: regexp.MustCompile(`^\d{1,2}[.)]\s+`), skipStructured: true},
}

// Clean applies the stripping rules to generated text and trims the result.
func Clean(text string) string {
	text = strings.TrimSpace(text)
	for _, r := range rules {
		if r.skipStructured && isStructured(text) {
			continue
		}
		text = r.re.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}

func isStructured(text string) bool {
	for _, p := range structuredPrefixes {
		if strings.HasPrefix(text, p) {
			return true
		}
	}
	return false
}
