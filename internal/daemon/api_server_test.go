package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"subtrans/internal/api"
	"subtrans/internal/config"
	"subtrans/internal/services"
	"subtrans/internal/testsupport"
)

type upperTranslator struct{}

func (upperTranslator) Translate(_ context.Context, text, source, target string) (services.Translation, error) {
	switch text {
	case "FAIL":
		return services.Translation{}, errors.New("remote refused")
	case "DOWN":
		return services.Translation{}, fmt.Errorf("%w: gateway unavailable", services.ErrUpstream)
	}
	return services.Translation{SourceLanguage: source, Text: strings.ToUpper(text) + " (" + target + ")"}, nil
}

var uploadSample = testsupport.BuildSRT("hello", "FAIL")

func testConfig(t *testing.T, opts ...testsupport.ConfigOption) *config.Config {
	t.Helper()
	return testsupport.NewConfig(t, append([]testsupport.ConfigOption{testsupport.WithEnhancement(false)}, opts...)...)
}

func newTestDaemon(t *testing.T, cfg *config.Config) *Daemon {
	t.Helper()
	d, err := New(cfg, upperTranslator{}, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func multipartBody(t *testing.T, fields map[string]string, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if fileName != "" {
		part, err := mw.CreateFormFile(api.FormFile, fileName)
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func doUpload(t *testing.T, d *Daemon, fields map[string]string, fileName, content string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, fields, fileName, content)
	req := httptest.NewRequest(http.MethodPost, "/api/translate-srt", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	d.Handler().ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp api.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response %q: %v", w.Body.String(), err)
	}
	return resp.Error
}

func TestTranslateSRT(t *testing.T) {
	d := newTestDaemon(t, testConfig(t))
	w := doUpload(t, d, map[string]string{"sourceLang": "en", "targetLang": "fr"}, "movie.srt", uploadSample)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); got != "text/plain; charset=utf-8" {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="translated_movie.srt"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if w.Header().Get(api.HeaderBlocks) != "2" || w.Header().Get(api.HeaderFailed) != "1" {
		t.Fatalf("unexpected summary headers: %v", w.Header())
	}
	if w.Header().Get(api.HeaderRequestID) == "" {
		t.Fatal("expected request id header")
	}
	want := "1\n00:00:01,000 --> 00:00:01,500\nHELLO (fr)\n\n" +
		"2\n00:00:02,000 --> 00:00:02,500\n[Processing Error: remote refused]"
	if w.Body.String() != want {
		t.Fatalf("unexpected body:\n%s", w.Body.String())
	}
}

func TestTranslateSRTDefaultsLanguages(t *testing.T) {
	d := newTestDaemon(t, testConfig(t))
	w := doUpload(t, d, nil, "a.srt", testsupport.BuildSRT("hi"))
	if w.Code != http.StatusOK || !strings.HasSuffix(w.Body.String(), "HI (es)") {
		t.Fatalf("unexpected response %d %q", w.Code, w.Body.String())
	}
}

func TestTranslateSRTValidation(t *testing.T) {
	d := newTestDaemon(t, testConfig(t))

	req := httptest.NewRequest(http.MethodGet, "/api/translate-srt", nil)
	w := httptest.NewRecorder()
	d.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed || decodeError(t, w) != "Method not allowed" {
		t.Fatalf("expected 405, got %d %s", w.Code, w.Body.String())
	}

	tests := []struct {
		name     string
		fields   map[string]string
		fileName string
		status   int
		message  string
	}{
		{"unknown source", map[string]string{"sourceLang": "xx"}, "a.srt", http.StatusBadRequest, "Invalid language code provided."},
		{"auto target", map[string]string{"targetLang": "auto"}, "a.srt", http.StatusBadRequest, "Invalid language code provided."},
		{"missing file", map[string]string{"sourceLang": "en"}, "", http.StatusBadRequest, "No file uploaded."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doUpload(t, d, tt.fields, tt.fileName, uploadSample)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, w.Code)
			}
			if got := decodeError(t, w); got != tt.message {
				t.Fatalf("expected %q, got %q", tt.message, got)
			}
		})
	}
}

func TestTranslateSRTTooLarge(t *testing.T) {
	d := newTestDaemon(t, testConfig(t))
	d.api.maxUpload = 256
	w := doUpload(t, d, nil, "big.srt", strings.Repeat(uploadSample, 50))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d: %s", w.Code, w.Body.String())
	}
}

func TestTranslateText(t *testing.T) {
	d := newTestDaemon(t, testConfig(t))
	tests := []struct {
		name   string
		body   string
		status int
		check  func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name:   "success",
			body:   `{"text":"  hola ","sourceLang":"ES","targetLang":"en"}`,
			status: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp api.TranslateTextResponse
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if resp.Text != "HOLA (en)" || resp.SourceLanguage != "es" {
					t.Fatalf("unexpected response %+v", resp)
				}
			},
		},
		{name: "empty text", body: `{"text":"  "}`, status: http.StatusBadRequest},
		{name: "bad json", body: `{"text":`, status: http.StatusBadRequest},
		{name: "bad language", body: `{"text":"hi","targetLang":"klingon"}`, status: http.StatusBadRequest},
		{
			name:   "upstream failure",
			body:   `{"text":"DOWN"}`,
			status: http.StatusBadGateway,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				if got := decodeError(t, w); got != "upstream service error: gateway unavailable" {
					t.Fatalf("unexpected error %q", got)
				}
			},
		},
		{name: "plain failure", body: `{"text":"FAIL"}`, status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/translate", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			d.Handler().ServeHTTP(w, req)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
			if tt.check != nil {
				tt.check(t, w)
			}
		})
	}
}

func TestLanguagesAndStatus(t *testing.T) {
	d := newTestDaemon(t, testConfig(t))

	req := httptest.NewRequest(http.MethodGet, "/api/languages", nil)
	w := httptest.NewRecorder()
	d.Handler().ServeHTTP(w, req)
	var langs api.LanguagesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &langs); err != nil {
		t.Fatalf("decode languages: %v", err)
	}
	if len(langs.Languages) < 100 {
		t.Fatalf("expected full language table, got %d entries", len(langs.Languages))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w = httptest.NewRecorder()
	d.Handler().ServeHTTP(w, req)
	var status api.DaemonStatus
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.Running || status.Provider != config.ProviderGoogle || status.PID == 0 {
		t.Fatalf("unexpected status %+v", status)
	}
	if !strings.HasSuffix(status.LockFilePath, "subtrans.lock") {
		t.Fatalf("unexpected lock path %q", status.LockFilePath)
	}
	if status.Requests != 2 {
		t.Fatalf("expected request counter 2, got %d", status.Requests)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/status", nil)
	w = httptest.NewRecorder()
	d.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	d := newTestDaemon(t, testConfig(t, testsupport.WithAPIToken("secret")))

	tests := []struct {
		header string
		status int
	}{
		{"", http.StatusUnauthorized},
		{"Bearer wrong", http.StatusUnauthorized},
		{"Basic secret", http.StatusUnauthorized},
		{"Bearer secret", http.StatusOK},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/languages", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		w := httptest.NewRecorder()
		d.Handler().ServeHTTP(w, req)
		if w.Code != tt.status {
			t.Fatalf("Authorization %q: expected %d, got %d", tt.header, tt.status, w.Code)
		}
		if tt.status == http.StatusUnauthorized && decodeError(t, w) != "unauthorized" {
			t.Fatalf("unexpected unauthorized body %q", w.Body.String())
		}
	}
}
