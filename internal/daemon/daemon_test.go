package daemon_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"subtrans/internal/api"
	"subtrans/internal/daemon"
	"subtrans/internal/enhance"
	"subtrans/internal/services"
	"subtrans/internal/testsupport"
)

type echoTranslator struct{}

func (echoTranslator) Translate(_ context.Context, text, source, _ string) (services.Translation, error) {
	return services.Translation{SourceLanguage: source, Text: text}, nil
}

func TestDaemonRunLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	d, err := daemon.New(cfg, echoTranslator{}, enhance.New(enhance.Options{}), nil)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	select {
	case <-d.Ready():
	case err := <-done:
		t.Fatalf("Run exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for server")
	}

	resp, err := http.Get("http://" + d.Addr() + "/api/status")
	if err != nil {
		t.Fatalf("GET status: %v", err)
	}
	var status api.DaemonStatus
	err = json.NewDecoder(resp.Body).Decode(&status)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if !status.Running || status.StartedAt == "" || !status.Enhancement {
		t.Fatalf("unexpected status %+v", status)
	}

	// Second instance on the same state directory must refuse to start.
	other, err := daemon.New(cfg, echoTranslator{}, nil, nil)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	if err := other.Run(ctx); err == nil {
		t.Fatal("expected second instance to fail")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for shutdown")
	}
	if d.Status().Running {
		t.Fatal("expected daemon to be stopped")
	}
}

func TestNewRequiresTranslator(t *testing.T) {
	if _, err := daemon.New(testsupport.NewConfig(t), nil, nil, nil); err == nil {
		t.Fatal("expected error without translator")
	}
}
