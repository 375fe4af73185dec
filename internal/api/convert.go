package api

import (
	"time"

	"subtrans/internal/language"
	"subtrans/internal/services"
	"subtrans/internal/textutil"
	"subtrans/internal/workflow"
)

// FromSummary converts a workflow summary for transport.
func FromSummary(summary workflow.Summary) RunSummary {
	return RunSummary{
		Total:          summary.Total,
		Translated:     summary.Translated,
		Skipped:        summary.Skipped,
		Failed:         summary.Failed,
		Discarded:      summary.Discarded,
		Enhanced:       summary.Enhanced,
		SourceLanguage: summary.SourceLanguage,
		DurationMillis: summary.Duration.Milliseconds(),
	}
}

// FromTranslation converts a single translation result.
func FromTranslation(t services.Translation) TranslateTextResponse {
	return TranslateTextResponse{SourceLanguage: t.SourceLanguage, Text: t.Text}
}

// Languages returns the supported language table payload.
func Languages() LanguagesResponse {
	return LanguagesResponse{Languages: language.All()}
}

// DownloadName is the attachment name for a translated upload.
func DownloadName(original string) string {
	return textutil.TranslatedFileName(original)
}

// FormatTime renders t in the API timestamp format; the zero time is empty.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateTimeFormat)
}
