package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"subtrans/internal/config"
)

// ConfigOption adjusts a generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig returns defaults rooted in a per-test temp directory, bound to
// an ephemeral port, with logging limited to errors.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(t.TempDir(), "state")
	cfg.Server.Bind = "127.0.0.1:0"
	cfg.Server.ShutdownTimeoutSeconds = 2
	cfg.Logging.Level = "error"
	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithTranslationURL points the google provider at url.
func WithTranslationURL(url string) ConfigOption {
	return func(cfg *config.Config) { cfg.Translation.BaseURL = url }
}

// WithEnhancement toggles the enhancement pass.
func WithEnhancement(enabled bool) ConfigOption {
	return func(cfg *config.Config) { cfg.Enhance.Enabled = enabled }
}

// WithAPIToken requires bearer authentication on the API.
func WithAPIToken(token string) ConfigOption {
	return func(cfg *config.Config) { cfg.Server.APIToken = token }
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}

// WriteConfig encodes cfg as TOML at path.
func WriteConfig(t testing.TB, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config %s: %v", path, err)
	}
}
