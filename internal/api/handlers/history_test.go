package handlers

import "testing"

func TestDisplayTitle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		stored  string
		want    string
	}{
		{
			"target marker header",
			"🎯 TITLE: How Compilers Work\n\nBody text",
			"stored",
			"How Compilers Work",
		},
		{
			"pin marker header",
			"📌 TITLE: Weekly Recap\nBody",
			"",
			"Weekly Recap",
		},
		{
			"vietnamese marker",
			"🎯 TIÊU ĐỀ: Tóm tắt video\nNội dung",
			"",
			"Tóm tắt video",
		},
		{
			"marker not on first line",
			"Some preamble\n🎯 TITLE: Buried Header\nMore",
			"",
			"Buried Header",
		},
		{
			"no marker falls back to first line",
			"\n\nOpening sentence of the summary\nSecond line",
			"",
			"Opening sentence of the summary",
		},
		{
			"glyphs stripped from fallback line",
			"📌 Key takeaways\nBody",
			"",
			"Key takeaways",
		},
		{
			"empty content uses stored title",
			"   \n\n",
			"Stored Title",
			"Stored Title",
		},
		{
			"nothing at all",
			"",
			"",
			"Untitled summary",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := displayTitle(tt.content, tt.stored); got != tt.want {
				t.Errorf("displayTitle = %q, want %q", got, tt.want)
			}
		})
	}
}
