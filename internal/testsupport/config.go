// Package testsupport provides shared fixtures for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"inquest/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories and
// placeholder credentials per test. It defaults common fields and applies
// any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.ReportsDir = filepath.Join(base, "reports")
	cfg.History.Path = filepath.Join(base, "data", "history.db")
	cfg.YouTube.APIKey = "test-youtube-key"
	cfg.OpenAI.APIKey = "test-openai-key"
	cfg.Gemini.APIKey = "test-gemini-key"

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithoutCredentials clears every API key on the test config.
func WithoutCredentials() ConfigOption {
	return func(cfg *config.Config) {
		cfg.YouTube.APIKey = ""
		cfg.OpenAI.APIKey = ""
		cfg.Gemini.APIKey = ""
	}
}

// WithHistoryDisabled turns off run archiving on the test config.
func WithHistoryDisabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.History.Enabled = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
