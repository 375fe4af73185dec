package config

const (
	defaultConfigPath             = "~/.config/subtrans/config.toml"
	projectConfigFile             = "subtrans.toml"
	dotEnvFile                    = ".env"
	lockFileName                  = "subtrans.lock"
	defaultStateDir               = "~/.local/share/subtrans"
	defaultBind                   = "127.0.0.1:7488"
	defaultMaxUploadMB            = 10
	defaultReadTimeoutSeconds     = 30
	defaultWriteTimeoutSeconds    = 900
	defaultShutdownTimeoutSeconds = 10
	defaultGoogleBaseURL          = "https://translate.googleapis.com"
	defaultTranslationTimeout     = 30
	defaultSourceLanguage         = "en"
	defaultTargetLanguage         = "es"
	defaultLLMBaseURL             = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel               = "google/gemini-3-flash-preview"
	defaultLLMTitle               = "subtrans"
	defaultLLMTimeoutSeconds      = 60
	defaultMinConfidence          = 0.5
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
)

// Translation providers.
const (
	ProviderGoogle = "google"
	ProviderLLM    = "llm"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Server: Server{
			Bind:                   defaultBind,
			MaxUploadMB:            defaultMaxUploadMB,
			ReadTimeoutSeconds:     defaultReadTimeoutSeconds,
			WriteTimeoutSeconds:    defaultWriteTimeoutSeconds,
			ShutdownTimeoutSeconds: defaultShutdownTimeoutSeconds,
		},
		Translation: Translation{
			Provider:       ProviderGoogle,
			BaseURL:        defaultGoogleBaseURL,
			TimeoutSeconds: defaultTranslationTimeout,
			DefaultSource:  defaultSourceLanguage,
			DefaultTarget:  defaultTargetLanguage,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Enhance: Enhance{
			Enabled:       true,
			MinConfidence: defaultMinConfidence,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
