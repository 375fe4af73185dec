package api

import "subtrans/internal/language"

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Form fields and headers of the subtitle upload endpoint.
const (
	FormFile       = "file"
	FormSourceLang = "sourceLang"
	FormTargetLang = "targetLang"

	HeaderBlocks    = "X-Subtrans-Blocks"
	HeaderFailed    = "X-Subtrans-Failed"
	HeaderRequestID = "X-Request-Id"
)

// TranslateTextRequest is the body of POST /api/translate.
type TranslateTextRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"sourceLang"`
	TargetLang string `json:"targetLang"`
}

// TranslateTextResponse is a single translated text.
type TranslateTextResponse struct {
	SourceLanguage string `json:"sourceLanguage"`
	Text           string `json:"text"`
}

// LanguagesResponse lists the supported language table.
type LanguagesResponse struct {
	Languages []language.Language `json:"languages"`
}

// RunSummary reports the outcome of translating one subtitle file.
type RunSummary struct {
	File           string `json:"file,omitempty"`
	Output         string `json:"output,omitempty"`
	Total          int    `json:"total"`
	Translated     int    `json:"translated"`
	Skipped        int    `json:"skipped"`
	Failed         int    `json:"failed"`
	Discarded      int    `json:"discarded"`
	Enhanced       bool   `json:"enhanced"`
	SourceLanguage string `json:"sourceLanguage,omitempty"`
	TargetLanguage string `json:"targetLanguage,omitempty"`
	DurationMillis int64  `json:"durationMs"`
}

// DaemonStatus summarizes the running server.
type DaemonStatus struct {
	Running         bool   `json:"running"`
	PID             int    `json:"pid"`
	Bind            string `json:"bind"`
	Provider        string `json:"provider"`
	Enhancement     bool   `json:"enhancement"`
	ClassifierReady bool   `json:"classifierReady"`
	LockFilePath    string `json:"lockFilePath"`
	StartedAt       string `json:"startedAt,omitempty"`
	Requests        int64  `json:"requests"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}
