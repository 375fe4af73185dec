package config

import (
	"errors"
	"fmt"
	"strings"

	"subtrans/internal/language"
)

// Validate reports the first section that is not usable.
func (c *Config) Validate() error {
	for _, check := range []func() error{
		c.validateServer,
		c.validateTranslation,
		c.validateLLM,
		c.validateEnhance,
		c.validateLogging,
	} {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if strings.TrimSpace(c.Server.Bind) == "" {
		return errors.New("server.bind must be set")
	}
	return ensurePositive(
		positive{"server.max_upload_mb", c.Server.MaxUploadMB},
		positive{"server.read_timeout_seconds", c.Server.ReadTimeoutSeconds},
		positive{"server.write_timeout_seconds", c.Server.WriteTimeoutSeconds},
		positive{"server.shutdown_timeout_seconds", c.Server.ShutdownTimeoutSeconds},
	)
}

func (c *Config) validateTranslation() error {
	switch c.Translation.Provider {
	case ProviderGoogle, ProviderLLM:
	default:
		return fmt.Errorf("translation.provider must be %q or %q, got %q", ProviderGoogle, ProviderLLM, c.Translation.Provider)
	}
	if c.Translation.TimeoutSeconds <= 0 {
		return errors.New("translation.timeout_seconds must be positive")
	}
	if c.Translation.RequestsPerMinute < 0 {
		return errors.New("translation.requests_per_minute must be >= 0")
	}
	if _, _, err := language.ResolvePair(c.Translation.DefaultSource, c.Translation.DefaultTarget); err != nil {
		return fmt.Errorf("translation defaults: %w", err)
	}
	return nil
}

func (c *Config) validateLLM() error {
	if c.Translation.Provider != ProviderLLM {
		return nil
	}
	if c.LLM.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("llm.api_key is required when translation.provider is %q. Set LLM_API_KEY or edit %s (create with 'subtrans config init')", ProviderLLM, defaultPath)
	}
	if !strings.HasPrefix(c.LLM.BaseURL, "http://") && !strings.HasPrefix(c.LLM.BaseURL, "https://") {
		return fmt.Errorf("llm.base_url must be an http(s) URL, got %q", c.LLM.BaseURL)
	}
	return nil
}

func (c *Config) validateEnhance() error {
	if c.Enhance.MinConfidence < 0 || c.Enhance.MinConfidence > 1 {
		return errors.New("enhance.min_confidence must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}

type positive struct {
	key   string
	value int
}

func ensurePositive(fields ...positive) error {
	for _, f := range fields {
		if f.value <= 0 {
			return fmt.Errorf("%s must be positive", f.key)
		}
	}
	return nil
}
