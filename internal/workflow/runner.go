package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"subtrans/internal/logging"
	"subtrans/internal/services"
	"subtrans/internal/subtitles"
)

// Translator translates one piece of text between two language codes.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (services.Translation, error)
}

// Enhancer rewrites block text before translation. Implementations must
// return a slice of the same length and order.
type Enhancer interface {
	Enhance(ctx context.Context, blocks []subtitles.Block) []subtitles.Block
}

// Stage names used in logs and error context.
const (
	StageEnhance   = "enhance"
	StageTranslate = "translate"
)

// Job is one document to translate.
type Job struct {
	Name     string
	Document subtitles.Document
	Source   string
	Target   string
}

// Summary describes the outcome of a run.
type Summary struct {
	Total          int           `json:"total"`
	Translated     int           `json:"translated"`
	Skipped        int           `json:"skipped"`
	Failed         int           `json:"failed"`
	Discarded      int           `json:"discarded"`
	Enhanced       bool          `json:"enhanced"`
	SourceLanguage string        `json:"sourceLanguage,omitempty"`
	Duration       time.Duration `json:"duration"`
}

// Result holds the translated blocks in input order.
type Result struct {
	Blocks  []subtitles.Block `json:"blocks"`
	Summary Summary           `json:"summary"`
}

// Runner coordinates the enhancement and translation stages.
type Runner struct {
	translator Translator
	enhancer   Enhancer
	logger     *slog.Logger
}

// NewRunner constructs a Runner. A nil enhancer skips enhancement.
func NewRunner(translator Translator, enhancer Enhancer, logger *slog.Logger) *Runner {
	return &Runner{
		translator: translator,
		enhancer:   enhancer,
		logger:     logging.NewComponentLogger(logger, "workflow"),
	}
}

// Run processes job. It never fails as a whole: a block whose translation
// fails carries an error marker instead of translated text.
func (r *Runner) Run(ctx context.Context, job Job) Result {
	start := time.Now()
	logger := logging.WithContext(ctx, r.logger)
	blocks := job.Document.Blocks
	summary := Summary{Total: len(blocks), Discarded: job.Document.Discarded}

	logger.Info("translation started",
		logging.String(logging.FieldEventType, "stage_start"),
		logging.String("file", job.Name),
		logging.Int("blocks", len(blocks)),
		logging.String("source", job.Source),
		logging.String("target", job.Target),
	)

	enhanced, ok := r.enhance(ctx, blocks)
	if ok {
		summary.Enhanced = changed(blocks, enhanced)
	}

	out := make([]subtitles.Block, len(blocks))
	for i, block := range blocks {
		out[i] = block
		text := strings.TrimSpace(enhanced[i].Text)
		if text == "" {
			summary.Skipped++
			continue
		}

		blockCtx := services.WithBlock(services.WithStage(ctx, StageTranslate), i+1)
		translation, err := r.translator.Translate(blockCtx, text, job.Source, job.Target)
		if err != nil {
			logging.WarnWithContext(logging.WithContext(blockCtx, r.logger), "block translation failed", "block_failed",
				logging.Error(err),
				logging.String("index", block.Index),
				logging.String(logging.FieldErrorHint, "check the translation provider and network access"),
				logging.String(logging.FieldImpact, "block keeps an error marker instead of translated text"),
			)
			out[i].Text = ErrorMarker(err)
			summary.Failed++
			continue
		}

		out[i].Text = subtitles.Reflow(translation.Text, layoutAt(job.Document, i))
		summary.Translated++
		if summary.SourceLanguage == "" {
			summary.SourceLanguage = translation.SourceLanguage
		}
	}

	summary.Duration = time.Since(start)
	logger.Info("translation completed",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.String("file", job.Name),
		logging.Int("translated", summary.Translated),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Bool("enhanced", summary.Enhanced),
		logging.String("source_language", summary.SourceLanguage),
		logging.Duration("duration", summary.Duration),
	)
	return Result{Blocks: out, Summary: summary}
}

// RunContent parses content as a subtitle file, runs it, and returns the
// serialized result.
func (r *Runner) RunContent(ctx context.Context, name, content, source, target string) (string, Result) {
	result := r.Run(ctx, Job{
		Name:     name,
		Document: subtitles.ParseDocument(content),
		Source:   source,
		Target:   target,
	})
	return subtitles.Format(result.Blocks), result
}

// enhance runs the enhancer and reports whether its output was used.
func (r *Runner) enhance(ctx context.Context, blocks []subtitles.Block) (out []subtitles.Block, ok bool) {
	if r.enhancer == nil || len(blocks) == 0 {
		return blocks, false
	}
	ctx = services.WithStage(ctx, StageEnhance)
	logger := logging.WithContext(ctx, r.logger)
	defer func() {
		if rec := recover(); rec != nil {
			logging.WarnWithContext(logger, "enhancement panicked; using original text", "enhance_fallback",
				logging.String("panic", fmt.Sprint(rec)),
				logging.String(logging.FieldImpact, "subtitles are translated without enhancement"),
			)
			out, ok = blocks, false
		}
	}()

	enhanced := r.enhancer.Enhance(ctx, blocks)
	if len(enhanced) != len(blocks) {
		logging.WarnWithContext(logger, "enhancement changed block count; using original text", "enhance_fallback",
			logging.Int("expected", len(blocks)),
			logging.Int("actual", len(enhanced)),
			logging.String(logging.FieldImpact, "subtitles are translated without enhancement"),
		)
		return blocks, false
	}
	return enhanced, true
}

// ErrorMarker is the text a block carries when its translation fails.
func ErrorMarker(err error) string {
	return fmt.Sprintf("[Processing Error: %s]", err.Error())
}

func layoutAt(doc subtitles.Document, i int) subtitles.Metrics {
	if i < len(doc.Layouts) {
		return doc.Layouts[i]
	}
	return subtitles.Measure(doc.Blocks[i].Text)
}

func changed(before, after []subtitles.Block) bool {
	for i := range before {
		if before[i].Text != after[i].Text {
			return true
		}
	}
	return false
}
