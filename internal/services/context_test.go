package services_test

import (
	"context"
	"testing"

	"subtrans/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithBlock(ctx, 7)
	ctx = services.WithStage(ctx, "translate")
	ctx = services.WithRequestID(ctx, "req-123")

	if pos, ok := services.BlockFromContext(ctx); !ok || pos != 7 {
		t.Fatalf("unexpected block position: %v %v", pos, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "translate" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "")
	ctx = services.WithBlock(ctx, 0)
	ctx = services.WithRequestID(ctx, "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
	if _, ok := services.BlockFromContext(ctx); ok {
		t.Fatal("expected no block value")
	}
	if _, ok := services.RequestIDFromContext(ctx); ok {
		t.Fatal("expected no request id")
	}
}
