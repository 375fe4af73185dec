package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// FailMarker makes the fake translate server answer 503 for any query
// containing it.
const FailMarker = "FAIL"

// TranslateServer emulates the public translate endpoint by upper-casing the
// query text.
type TranslateServer struct {
	*httptest.Server
	hits atomic.Int64
}

// NewTranslateServer starts a fake translate endpoint closed at test cleanup.
func NewTranslateServer(t testing.TB) *TranslateServer {
	t.Helper()
	ts := &TranslateServer{}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.hits.Add(1)
		q := r.URL.Query().Get("q")
		if strings.Contains(q, FailMarker) {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		src := r.URL.Query().Get("sl")
		if src == "auto" {
			src = "en"
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"src":       src,
			"sentences": []map[string]string{{"trans": strings.ToUpper(q)}},
		})
	}))
	t.Cleanup(ts.Close)
	return ts
}

// Hits returns how many requests the server has answered.
func (ts *TranslateServer) Hits() int64 {
	return ts.hits.Load()
}
