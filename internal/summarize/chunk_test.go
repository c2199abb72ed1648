package summarize

import (
	"strings"
	"testing"
)

func TestSplitChunksEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t  \n"} {
		if got := SplitChunks(input, 7000, 1000); got != nil {
			t.Errorf("SplitChunks(%q) = %v, want nil", input, got)
		}
	}
}

func TestSplitChunksSingleChunk(t *testing.T) {
	chunks := SplitChunks("a short transcript", 7000, 1000)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Text != "a short transcript" {
		t.Errorf("chunk text = %q", chunks[0].Text)
	}
	if chunks[0].Index != 0 {
		t.Errorf("chunk index = %d, want 0", chunks[0].Index)
	}
}

func TestSplitChunksBoundsAndIndexes(t *testing.T) {
	words := make([]string, 400)
	for i := range words {
		words[i] = "word"
	}
	text := strings.Join(words, " ")

	chunkSize, overlap := 100, 50
	chunks := SplitChunks(text, chunkSize, overlap)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.Index != i {
			t.Errorf("chunk %d has index %d", i, c.Index)
		}
		if len(c.Text) > chunkSize {
			t.Errorf("chunk %d is %d chars, exceeds %d", i, len(c.Text), chunkSize)
		}
	}
}

func TestSplitChunksCoverage(t *testing.T) {
	// Every input word must land in some chunk.
	words := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel"}
	chunks := SplitChunks(strings.Join(words, " "), 20, 10)

	joined := make([]string, 0, len(chunks))
	for _, c := range chunks {
		joined = append(joined, c.Text)
	}
	all := strings.Join(joined, " ")
	for _, w := range words {
		if !strings.Contains(all, w) {
			t.Errorf("word %q missing from chunks %v", w, joined)
		}
	}
}

func TestSplitChunksOverlapSeed(t *testing.T) {
	// overlap 10 seeds each successive chunk with the last 1 word of its
	// predecessor.
	chunks := SplitChunks("aa bb cc dd ee ff gg", 9, 10)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3: %v", len(chunks), chunks)
	}
	want := []string{"aa bb cc", "cc dd ee", "ee ff gg"}
	for i, w := range want {
		if chunks[i].Text != w {
			t.Errorf("chunk %d = %q, want %q", i, chunks[i].Text, w)
		}
	}
}

func TestSplitChunksDeterministic(t *testing.T) {
	text := strings.Repeat("the quick brown fox jumps over the lazy dog ", 50)
	a := SplitChunks(text, 120, 40)
	b := SplitChunks(text, 120, 40)
	if len(a) != len(b) {
		t.Fatalf("chunk counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestSplitChunksOversizedWord(t *testing.T) {
	long := strings.Repeat("x", 50)
	chunks := SplitChunks("aa "+long+" bb", 10, 0)
	found := false
	for _, c := range chunks {
		if strings.Contains(c.Text, long) {
			found = true
		}
	}
	if !found {
		t.Errorf("oversized word dropped: %v", chunks)
	}
}
