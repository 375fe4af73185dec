package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"subtrans/internal/language"
	"subtrans/internal/services"
)

// TranslationPrompt is the system prompt used for subtitle translation.
const TranslationPrompt = `You translate subtitle text for a film or tv show.
Translate the user's text into the requested target language.
Words may carry bracketed hints such as cool[cold] or what's up[greeting]; use a hint to pick the intended sense and never copy the brackets or hint text into the translation.
Keep names, numbers, and line breaks. Do not add commentary.
Respond with JSON only: {"source_language": "<English name of the input language>", "text": "<translation>"}`

type translationPayload struct {
	SourceLanguage string `json:"source_language"`
	Text           string `json:"text"`
}

// Translate asks the model to translate text from source to target. A source
// of "auto" lets the model detect the input language.
func (c *Client) Translate(ctx context.Context, text, source, target string) (services.Translation, error) {
	var empty services.Translation
	if strings.TrimSpace(text) == "" {
		return empty, errors.New("llm translate: text required")
	}
	content, err := c.CompleteJSON(ctx, TranslationPrompt, buildTranslationPrompt(text, source, target))
	if err != nil {
		return empty, err
	}
	var parsed translationPayload
	if err := DecodeLLMJSON(content, &parsed); err != nil {
		return empty, fmt.Errorf("llm translate: parse payload: %w", err)
	}
	if strings.TrimSpace(parsed.Text) == "" {
		return empty, fmt.Errorf("llm translate: empty translation (payload snippet: %s)", summarizePayloadSnippet(content))
	}

	label := strings.TrimSpace(parsed.SourceLanguage)
	if code, ok := language.Resolve(label); ok {
		label = language.Label(code)
	}
	if label == "" && source != language.Auto {
		label = language.Label(source)
	}
	return services.Translation{SourceLanguage: label, Text: strings.TrimSpace(parsed.Text)}, nil
}

func buildTranslationPrompt(text, source, target string) string {
	var b strings.Builder
	if source == "" || source == language.Auto {
		b.WriteString("Source language: detect\n")
	} else {
		fmt.Fprintf(&b, "Source language: %s (%s)\n", language.Label(source), source)
	}
	fmt.Fprintf(&b, "Target language: %s (%s)\n", language.Label(target), target)
	b.WriteString("Text:\n")
	b.WriteString(text)
	return b.String()
}
