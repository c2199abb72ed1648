package summarize

import (
	"fmt"
	"strings"
)

// SectionSeparator joins per-chunk summaries before the combining pass.
const SectionSeparator = "\n\n---\n\n"

// DefaultMode is used when the request carries an unknown or empty mode.
const DefaultMode = "detailed"

// modeInstructions select the style of the final combining pass. The mode
// string is opaque to the pipeline; unknown modes fall back to DefaultMode.
var modeInstructions = map[string]string{
	"detailed": "Write a thorough summary that covers every major topic in order of appearance. " +
		"Use markdown headings for sections and bold for key terms. " +
		"Explain important points rather than just naming them.",
	"concise": "Write a compact summary of no more than three short paragraphs. " +
		"Focus only on the central argument and conclusions.",
	"bullets": "Write the summary entirely as markdown bullet points, one point per idea, " +
		"grouped under short headings.",
}

// ChunkPrompt builds the per-section prompt. Each chunk is summarized
// independently; the results are merged by the combining pass.
func ChunkPrompt(language, text string) string {
	return fmt.Sprintf(
		"Summarize the following section of a video transcript in %s. "+
			"Capture every distinct topic, instruction and warning in the section. "+
			"This is one section of a longer transcript, so do not add an introduction or conclusion.\n\n"+
			"Transcript section:\n---\n%s\n---",
		langName(language), text,
	)
}

// CombinePrompt builds the final prompt over the joined per-chunk summaries.
func CombinePrompt(language, mode, joined string) string {
	instruction, ok := modeInstructions[mode]
	if !ok {
		instruction = modeInstructions[DefaultMode]
	}
	return fmt.Sprintf(
		"The text below contains section summaries of a single video, separated by \"---\". "+
			"Merge them into one coherent summary in %s, removing duplicated points from "+
			"overlapping sections.\n\n%s\n\n"+
			"Start the output with a line of the form \"🎯 TITLE: <short title>\" and mark "+
			"each major section with a line starting with \"📌\".\n\n"+
			"Section summaries:\n%s",
		langName(language), instruction, joined,
	)
}

func langName(code string) string {
	names := map[string]string{
		"en": "English",
		"vi": "Vietnamese",
		"ko": "Korean",
		"ja": "Japanese",
		"zh": "Chinese",
		"es": "Spanish",
		"fr": "French",
		"de": "German",
		"pt": "Portuguese",
		"hi": "Hindi",
		"id": "Indonesian",
		"ru": "Russian",
	}
	if name, ok := names[strings.ToLower(code)]; ok {
		return name
	}
	if code == "" {
		return "English"
	}
	return code
}
