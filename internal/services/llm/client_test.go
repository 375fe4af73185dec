package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"subtrans/internal/services"
)

func completionServer(t *testing.T, content string, check func(*http.Request, chatRequest)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if check != nil {
			check(r, req)
		}
		payload := map[string]any{
			"choices": []any{
				map[string]any{"message": map[string]any{"content": content}},
			},
		}
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
}

func TestClientHealthCheck(t *testing.T) {
	server := completionServer(t, `{"ok":true}`, nil)
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo-model"})
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck returned error: %v", err)
	}
}

func TestClientTranslate(t *testing.T) {
	server := completionServer(t, "```json\n{\"source_language\":\"en\",\"text\":\"Hola mundo\"}\n```", func(r *http.Request, req chatRequest) {
		if got := r.Header.Get("Authorization"); got != "Bearer test" {
			t.Fatalf("unexpected auth header %q", got)
		}
		if got := r.Header.Get("X-Title"); got != "subtrans" {
			t.Fatalf("unexpected title header %q", got)
		}
		if req.ResponseFormat.Type != "json_object" {
			t.Fatalf("expected json_object response format, got %q", req.ResponseFormat.Type)
		}
		if req.Model != "demo-model" || len(req.Messages) != 2 {
			t.Fatalf("unexpected request %+v", req)
		}
		if req.Messages[0].Content != TranslationPrompt {
			t.Fatalf("unexpected system prompt")
		}
		user := req.Messages[1].Content
		for _, want := range []string{"Source language: English (en)", "Target language: Spanish (es)", "Hello world"} {
			if !strings.Contains(user, want) {
				t.Fatalf("user prompt missing %q: %q", want, user)
			}
		}
	})
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo-model", Title: "subtrans"})
	got, err := client.Translate(context.Background(), "Hello world", "en", "es")
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if got.Text != "Hola mundo" || got.SourceLanguage != "English" {
		t.Fatalf("unexpected translation %+v", got)
	}
}

func TestClientTranslateAutoSource(t *testing.T) {
	server := completionServer(t, `{"source_language":"Klingon","text":"Hello"}`, func(_ *http.Request, req chatRequest) {
		if !strings.Contains(req.Messages[1].Content, "Source language: detect") {
			t.Fatalf("expected detect instruction, got %q", req.Messages[1].Content)
		}
	})
	defer server.Close()

	got, err := NewClient(Config{APIKey: "test", BaseURL: server.URL}).Translate(context.Background(), "nuqneH", "auto", "en")
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if got.SourceLanguage != "Klingon" {
		t.Fatalf("expected model label to pass through, got %q", got.SourceLanguage)
	}
}

func TestClientTranslateToolCallArguments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"","tool_calls":[{"type":"function","function":{"name":"answer","arguments":"{\"source_language\":\"German\",\"text\":\"Hallo\"}"}}]}}]}`))
	}))
	defer server.Close()

	got, err := NewClient(Config{APIKey: "test", BaseURL: server.URL}).Translate(context.Background(), "Hello", "en", "de")
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if got.Text != "Hallo" {
		t.Fatalf("unexpected text %q", got.Text)
	}
}

func TestClientNoRetryOnServerError(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"overloaded"}`))
	}))
	defer server.Close()

	_, err := NewClient(Config{APIKey: "test", BaseURL: server.URL}).Translate(context.Background(), "Hello", "en", "de")
	if err == nil {
		t.Fatal("expected error")
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if !errors.Is(err, services.ErrUpstream) {
		t.Fatalf("expected upstream marker, got %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("expected single attempt, got %d", hits.Load())
	}
}

func TestClientEmptyContentHasSnippet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"","refusal":"no"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	_, err := NewClient(Config{APIKey: "test", BaseURL: server.URL}).Translate(context.Background(), "Hello", "en", "de")
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"empty content", `finish_reason="stop"`, `refusal="no"`} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}

func TestClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{}).Translate(context.Background(), "Hello", "en", "de")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestDecodeLLMJSON(t *testing.T) {
	var out translationPayload
	if err := DecodeLLMJSON("Sure! {\"text\":\"x\"} hope that helps", &out); err != nil {
		t.Fatalf("DecodeLLMJSON: %v", err)
	}
	if out.Text != "x" {
		t.Fatalf("unexpected decode %+v", out)
	}
	if err := DecodeLLMJSON("   ", &out); err == nil {
		t.Fatal("expected error for empty payload")
	}
}
