package enhance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"subtrans/internal/logging"
	"subtrans/internal/subtitles"
)

// DefaultMinConfidence is the classifier score a block's context must exceed
// before hints are added.
const DefaultMinConfidence = 0.5

// Options configures a Pass.
type Options struct {
	MinConfidence float64
	Classifier    *Classifier
	Rules         []Rule
	Logger        *slog.Logger
}

// Pass is the full enhancement pass.
type Pass struct {
	minConfidence float64
	classifier    *Classifier
	rules         []Rule
	logger        *slog.Logger
}

// New builds a Pass. Zero options select the shared classifier, the built-in
// rule table, and DefaultMinConfidence.
func New(opts Options) *Pass {
	p := &Pass{
		minConfidence: opts.MinConfidence,
		classifier:    opts.Classifier,
		rules:         opts.Rules,
		logger:        logging.NewComponentLogger(opts.Logger, "enhance"),
	}
	if p.minConfidence <= 0 {
		p.minConfidence = DefaultMinConfidence
	}
	if p.classifier == nil {
		p.classifier = SharedClassifier()
	}
	if p.rules == nil {
		p.rules = DisambiguationRules
	}
	return p
}

// Enhance returns a new slice of the same length and order where only Text
// may differ. Any internal failure, including a panic or a cancelled
// context, yields blocks unchanged.
func (p *Pass) Enhance(ctx context.Context, blocks []subtitles.Block) (out []subtitles.Block) {
	if len(blocks) == 0 {
		return blocks
	}
	logger := logging.WithContext(ctx, p.logger)
	defer func() {
		if r := recover(); r != nil {
			logging.WarnWithContext(logger, "enhancement failed; using original text", "enhance_fallback",
				logging.String("panic", fmt.Sprint(r)),
				logging.String(logging.FieldImpact, "subtitles are translated without enhancement"),
			)
			out = blocks
		}
	}()

	normalized := make([]subtitles.Block, len(blocks))
	for i, block := range blocks {
		normalized[i] = block
		if strings.TrimSpace(block.Text) != "" {
			normalized[i].Text = Normalize(block.Text)
		}
	}

	out = make([]subtitles.Block, len(normalized))
	annotated := 0
	for i, block := range normalized {
		if err := ctx.Err(); err != nil {
			logging.WarnWithContext(logger, "enhancement interrupted; using original text", "enhance_cancelled",
				logging.Error(err),
				logging.String(logging.FieldImpact, "subtitles are translated without enhancement"),
			)
			return blocks
		}
		out[i] = block
		if strings.TrimSpace(block.Text) == "" {
			continue
		}
		text := markExpressions(p.analyze(normalized, i))
		if text != block.Text {
			annotated++
		}
		out[i].Text = text
	}

	logger.Debug("enhancement complete",
		logging.Int("blocks", len(out)),
		logging.Int("annotated", annotated),
	)
	return out
}

// analyze classifies block i together with its neighbours and applies the
// disambiguation rules when the classification is confident enough.
func (p *Pass) analyze(blocks []subtitles.Block, i int) string {
	text := blocks[i].Text
	c := p.classifier.Classify(neighbourhood(blocks, i))
	if c.Score <= p.minConfidence {
		return text
	}
	text = applyRules(text, c, p.rules)
	if suffix, ok := expressionSuffix(c.Intent); ok && !hasExpression(blocks[i].Text) {
		text += "[" + suffix + "]"
	}
	return text
}

func neighbourhood(blocks []subtitles.Block, i int) string {
	parts := make([]string, 0, 3)
	if i > 0 && blocks[i-1].Text != "" {
		parts = append(parts, blocks[i-1].Text)
	}
	parts = append(parts, blocks[i].Text)
	if i+1 < len(blocks) && blocks[i+1].Text != "" {
		parts = append(parts, blocks[i+1].Text)
	}
	return strings.Join(parts, " ")
}

// Nop leaves blocks untouched.
type Nop struct{}

// Enhance returns blocks as given.
func (Nop) Enhance(_ context.Context, blocks []subtitles.Block) []subtitles.Block {
	return blocks
}
