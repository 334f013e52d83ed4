package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"inquest/internal/analysis"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration for pipeline outputs.
type Paths struct {
	DataDir    string `toml:"data_dir"`
	LogDir     string `toml:"log_dir"`
	ReportsDir string `toml:"reports_dir"`
}

// YouTube contains configuration for the YouTube Data API.
type YouTube struct {
	APIKey            string  `toml:"api_key"`
	BaseURL           string  `toml:"base_url"`
	MaxComments       int     `toml:"max_comments"`
	MaxCommentWords   int     `toml:"max_comment_words"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
}

// Transcript contains configuration for caption retrieval.
type Transcript struct {
	BaseURL        string   `toml:"base_url"`
	Languages      []string `toml:"languages"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
}

// OpenAI contains connection settings for the summarization model.
type OpenAI struct {
	APIKey         string  `toml:"api_key"`
	BaseURL        string  `toml:"base_url"`
	Model          string  `toml:"model"`
	Temperature    float64 `toml:"temperature"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
}

// Gemini contains connection settings for synthesis and evaluation.
type Gemini struct {
	APIKey          string  `toml:"api_key"`
	Model           string  `toml:"model"`
	Temperature     float64 `toml:"temperature"`
	MaxOutputTokens int     `toml:"max_output_tokens"`
	TimeoutSeconds  int     `toml:"timeout_seconds"`
}

// Pipeline contains stage toggles and run limits.
type Pipeline struct {
	EnableTranscript           bool `toml:"enable_transcript"`
	EnableComments             bool `toml:"enable_comments"`
	EnableTranscriptProcessing bool `toml:"enable_transcript_processing"`
	EnableCommentsProcessing   bool `toml:"enable_comments_processing"`
	EnableSynthesis            bool `toml:"enable_synthesis"`
	EnableEvaluation           bool `toml:"enable_evaluation"`
	EnableAudioDownload        bool `toml:"enable_audio_download"`
	MaxPriorityQuestions       int  `toml:"max_priority_questions"`
}

// History contains configuration for the local run archive.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for inquest.
//
// Configuration sections by subsystem:
//   - Paths: data, log, and report directories
//   - YouTube: Data API access and comment collection limits
//   - Transcript: caption language preferences and fetch timeouts
//   - OpenAI: transcript and comment summarization model
//   - Gemini: synthesis and critical thinking evaluation model
//   - Pipeline: stage toggles and question selection limits
//   - History: local archive of completed analyses
//   - Logging: log format, level, and retention
type Config struct {
	Paths      Paths      `toml:"paths"`
	YouTube    YouTube    `toml:"youtube"`
	Transcript Transcript `toml:"transcript"`
	OpenAI     OpenAI     `toml:"openai"`
	Gemini     Gemini     `toml:"gemini"`
	Pipeline   Pipeline   `toml:"pipeline"`
	History    History    `toml:"history"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/inquest/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = os.Getenv("INQUEST_CONFIG")
	}
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("inquest.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for report and history output.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir, c.Paths.ReportsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if c.History.Enabled && strings.TrimSpace(c.History.Path) != "" {
		if err := os.MkdirAll(filepath.Dir(c.History.Path), 0o755); err != nil {
			return fmt.Errorf("create history directory %q: %w", filepath.Dir(c.History.Path), err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultHistoryPath() string {
	if base, ok := os.LookupEnv("XDG_DATA_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "inquest", "history.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.local/share/inquest/history.db"
	}
	return filepath.Join(home, ".local", "share", "inquest", "history.db")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	sample := sampleConfig

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// PipelineConfig maps the file-level settings onto the run options consumed by
// the orchestrator. Command-line flags may override individual fields per run.
func (c *Config) PipelineConfig() analysis.PipelineConfig {
	return analysis.PipelineConfig{
		MaxComments:                c.YouTube.MaxComments,
		MaxCommentWords:            c.YouTube.MaxCommentWords,
		OpenAIModel:                c.OpenAI.Model,
		OpenAITemperature:          c.OpenAI.Temperature,
		GeminiModel:                c.Gemini.Model,
		GeminiTemperature:          c.Gemini.Temperature,
		MaxPriorityQuestions:       c.Pipeline.MaxPriorityQuestions,
		EnableTranscript:           c.Pipeline.EnableTranscript,
		EnableComments:             c.Pipeline.EnableComments,
		EnableTranscriptProcessing: c.Pipeline.EnableTranscriptProcessing,
		EnableCommentsProcessing:   c.Pipeline.EnableCommentsProcessing,
		EnableSynthesis:            c.Pipeline.EnableSynthesis,
		EnableEvaluation:           c.Pipeline.EnableEvaluation,
		EnableAudioDownload:        c.Pipeline.EnableAudioDownload,
	}
}
