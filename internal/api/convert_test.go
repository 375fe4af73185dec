package api_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"subtrans/internal/api"
	"subtrans/internal/services"
	"subtrans/internal/workflow"
)

func TestFromSummary(t *testing.T) {
	got := api.FromSummary(workflow.Summary{
		Total:          4,
		Translated:     2,
		Skipped:        1,
		Failed:         1,
		Discarded:      3,
		Enhanced:       true,
		SourceLanguage: "French",
		Duration:       1500 * time.Millisecond,
	})
	if got.Total != 4 || got.Translated != 2 || got.Skipped != 1 || got.Failed != 1 || got.Discarded != 3 {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if !got.Enhanced || got.SourceLanguage != "French" || got.DurationMillis != 1500 {
		t.Fatalf("unexpected summary: %+v", got)
	}
}

func TestTranslateTextResponseJSON(t *testing.T) {
	data, err := json.Marshal(api.FromTranslation(services.Translation{SourceLanguage: "English", Text: "hola"}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"sourceLanguage":"English","text":"hola"}` {
		t.Fatalf("unexpected payload %s", data)
	}
}

func TestLanguages(t *testing.T) {
	resp := api.Languages()
	if len(resp.Languages) == 0 || resp.Languages[0].Code != "auto" {
		t.Fatalf("expected auto first, got %+v", resp.Languages[:1])
	}
}

func TestDownloadName(t *testing.T) {
	tests := map[string]string{
		"movie.srt":         "translated_movie.srt",
		`C:\subs\ep:1.srt`:  "translated_ep-1.srt",
		"../../etc/passwd":  "translated_passwd",
		"":                  "translated_subtitles.srt",
		"line\nbreak\".srt": "translated_linebreak.srt",
	}
	for in, want := range tests {
		if got := api.DownloadName(in); got != want {
			t.Fatalf("DownloadName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	if api.FormatTime(time.Time{}) != "" {
		t.Fatal("zero time should format empty")
	}
	ts := time.Date(2026, 3, 4, 5, 6, 7, 8_000_000, time.FixedZone("x", 3600))
	if got := api.FormatTime(ts); !strings.HasPrefix(got, "2026-03-04T04:06:07.008Z") {
		t.Fatalf("unexpected timestamp %q", got)
	}
}
