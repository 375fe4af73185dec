package logging

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// prettyHandler renders one line per record:
//
//	2026-01-02T15:04:05Z INFO daemon: request complete [abcd1234] key=value
type prettyHandler struct {
	mu        *sync.Mutex
	out       io.Writer
	level     *slog.LevelVar
	addSource bool
	preset    []slog.Attr
	groups    []string
}

func newPrettyHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	return &prettyHandler{mu: new(sync.Mutex), out: w, level: lvl, addSource: addSource}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

type field struct {
	key   string
	value slog.Value
}

// line is a record split into its header parts and trailing fields.
type line struct {
	component   string
	correlation string
	fields      []field
}

func (h *prettyHandler) Handle(_ context.Context, record slog.Record) error {
	if !h.Enabled(context.Background(), record.Level) {
		return nil
	}

	var fields []field
	for _, attr := range h.preset {
		fields = appendField(fields, h.groups, attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		fields = appendField(fields, h.groups, attr)
		return true
	})
	parts := splitHeader(fields)

	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var b strings.Builder
	b.WriteString(ts.UTC().Format(time.RFC3339))
	b.WriteString(" " + levelLabel(record.Level) + " ")
	if parts.component != "" {
		b.WriteString(parts.component + ": ")
	}
	msg := strings.TrimSpace(record.Message)
	if msg == "" {
		msg = "(no message)"
	}
	b.WriteString(msg)
	if parts.correlation != "" {
		b.WriteString(" [" + shortID(parts.correlation) + "]")
	}
	if src := record.Source(); h.addSource && src != nil {
		b.WriteString(" (" + filepath.Base(src.File) + ":" + strconv.Itoa(src.Line) + ")")
	}
	for _, f := range parts.fields {
		b.WriteString(" " + f.key + "=" + formatValue(f.value))
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

// splitHeader lifts the first component and correlation id out of fields.
func splitHeader(fields []field) line {
	var l line
	l.fields = make([]field, 0, len(fields))
	for _, f := range fields {
		switch {
		case f.key == "":
		case f.key == FieldComponent && l.component == "":
			l.component = attrString(f.value)
		case f.key == FieldCorrelationID && l.correlation == "":
			l.correlation = attrString(f.value)
		case f.key == FieldComponent, f.key == FieldCorrelationID:
		default:
			l.fields = append(l.fields, f)
		}
	}
	return l
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.derive()
	next.preset = append(next.preset, attrs...)
	return next
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	next := h.derive()
	next.groups = append(next.groups, name)
	return next
}

func (h *prettyHandler) derive() *prettyHandler {
	return &prettyHandler{
		mu:        h.mu,
		out:       h.out,
		level:     h.level,
		addSource: h.addSource,
		preset:    slices.Clone(h.preset),
		groups:    slices.Clone(h.groups),
	}
}

// appendField flattens groups into dotted keys.
func appendField(dst []field, prefix []string, attr slog.Attr) []field {
	if attr.Equal(slog.Attr{}) {
		return dst
	}
	value := attr.Value.Resolve()
	path := prefix
	if attr.Key != "" {
		path = append(slices.Clone(prefix), attr.Key)
	}
	if value.Kind() == slog.KindGroup {
		for _, child := range value.Group() {
			dst = appendField(dst, path, child)
		}
		return dst
	}
	return append(dst, field{key: strings.Join(path, "."), value: value})
}

// shortID trims UUID-style correlation ids to their first group.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
