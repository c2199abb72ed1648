package summarize

import "strings"

// Chunk is a bounded span of transcript text that may share trailing words
// with its successor so neighboring chunks keep context across the cut.
type Chunk struct {
	Index int
	Text  string
}

// SplitChunks splits text into chunks of at most chunkSize characters,
// breaking on word boundaries. Each new chunk is seeded with the trailing
// overlap/10 words of the previous one, a coarse word-count approximation
// of "overlap characters". A single word longer than chunkSize becomes a
// chunk of its own. Empty input yields no chunks.
func SplitChunks(text string, chunkSize, overlap int) []Chunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	overlapWords := overlap / 10

	var chunks []Chunk
	var cur []string
	curLen := 0

	for _, w := range words {
		if len(cur) > 0 && curLen+1+len(w) > chunkSize {
			chunks = append(chunks, Chunk{Index: len(chunks), Text: strings.Join(cur, " ")})

			seed := overlapWords
			if seed > len(cur) {
				seed = len(cur)
			}
			cur = append([]string(nil), cur[len(cur)-seed:]...)
			curLen = 0
			for i, s := range cur {
				if i > 0 {
					curLen++
				}
				curLen += len(s)
			}
		}
		if len(cur) > 0 {
			curLen++
		}
		cur = append(cur, w)
		curLen += len(w)
	}

	if len(cur) > 0 {
		chunks = append(chunks, Chunk{Index: len(chunks), Text: strings.Join(cur, " ")})
	}

	return chunks
}
