package services

import "context"

type ctxKey int

const (
	requestIDKey ctxKey = iota
	stageKey
	blockKey
)

// WithRequestID tags ctx with a correlation id. Empty ids are ignored.
func WithRequestID(ctx context.Context, id string) context.Context {
	return withNonZero(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the correlation id set by WithRequestID.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return lookup[string](ctx, requestIDKey)
}

// WithStage tags ctx with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	return withNonZero(ctx, stageKey, stage)
}

func StageFromContext(ctx context.Context) (string, bool) {
	return lookup[string](ctx, stageKey)
}

// WithBlock tags ctx with the 1-based position of the subtitle block being
// processed. Non-positive positions are ignored.
func WithBlock(ctx context.Context, position int) context.Context {
	if position < 0 {
		position = 0
	}
	return withNonZero(ctx, blockKey, position)
}

func BlockFromContext(ctx context.Context) (int, bool) {
	return lookup[int](ctx, blockKey)
}

func withNonZero[T comparable](ctx context.Context, key ctxKey, value T) context.Context {
	var zero T
	if value == zero {
		return ctx
	}
	return context.WithValue(ctx, key, value)
}

func lookup[T comparable](ctx context.Context, key ctxKey) (T, bool) {
	var zero T
	if ctx == nil {
		return zero, false
	}
	value, ok := ctx.Value(key).(T)
	if !ok || value == zero {
		return zero, false
	}
	return value, true
}
