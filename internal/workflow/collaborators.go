package workflow

import (
	"fmt"
	"log/slog"

	"subtrans/internal/config"
	"subtrans/internal/enhance"
	"subtrans/internal/services"
	"subtrans/internal/services/googletranslate"
	"subtrans/internal/services/llm"
)

// NewTranslator builds the translation collaborator selected by
// translation.provider.
func NewTranslator(cfg *config.Config) (Translator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is required", services.ErrConfiguration)
	}
	switch cfg.Translation.Provider {
	case config.ProviderGoogle, "":
		return googletranslate.NewClient(googletranslate.Config{
			BaseURL:           cfg.Translation.BaseURL,
			TimeoutSeconds:    cfg.Translation.TimeoutSeconds,
			RequestsPerMinute: cfg.Translation.RequestsPerMinute,
		}), nil
	case config.ProviderLLM:
		return llm.NewClient(llm.Config{
			APIKey:         cfg.LLM.APIKey,
			BaseURL:        cfg.LLM.BaseURL,
			Model:          cfg.LLM.Model,
			Referer:        cfg.LLM.Referer,
			Title:          cfg.LLM.Title,
			TimeoutSeconds: cfg.LLM.TimeoutSeconds,
		}), nil
	default:
		return nil, fmt.Errorf("%w: unknown translation provider %q", services.ErrConfiguration, cfg.Translation.Provider)
	}
}

// NewEnhancer returns the enhancement pass, or nil when enhancement is
// disabled in cfg.
func NewEnhancer(cfg *config.Config, logger *slog.Logger) Enhancer {
	if cfg == nil || !cfg.Enhance.Enabled {
		return nil
	}
	return enhance.New(enhance.Options{
		MinConfidence: cfg.Enhance.MinConfidence,
		Logger:        logger,
	})
}

// NewRunnerFromConfig wires a Runner with the configured collaborators.
func NewRunnerFromConfig(cfg *config.Config, logger *slog.Logger) (*Runner, error) {
	translator, err := NewTranslator(cfg)
	if err != nil {
		return nil, err
	}
	return NewRunner(translator, NewEnhancer(cfg, logger), logger), nil
}
