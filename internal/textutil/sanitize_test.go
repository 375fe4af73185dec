package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"movie.srt", "movie.srt"},
		{"  spaced.srt  ", "spaced.srt"},
		{"a:b*c.srt", "a-b-c.srt"},
		{`quote"d?.srt`, "quoted.srt"},
		{"line\r\nbreak.srt", "linebreak.srt"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeFileName(tt.input); got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTranslatedFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"episode01.srt", "translated_episode01.srt"},
		{"/tmp/uploads/show.srt", "translated_show.srt"},
		{`C:\subs\film.srt`, "translated_film.srt"},
		{"", "translated_subtitles.srt"},
		{"/", "translated_subtitles.srt"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := TranslatedFileName(tt.input); got != tt.want {
				t.Errorf("TranslatedFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
