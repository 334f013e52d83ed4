package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeYouTube(); err != nil {
		return err
	}
	if err := c.normalizeTranscript(); err != nil {
		return err
	}
	if err := c.normalizeOpenAI(); err != nil {
		return err
	}
	if err := c.normalizeGemini(); err != nil {
		return err
	}
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ReportsDir) == "" {
		c.Paths.ReportsDir = defaultReportsDir
	}
	if c.Paths.ReportsDir, err = expandPath(c.Paths.ReportsDir); err != nil {
		return fmt.Errorf("paths.reports_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeYouTube() error {
	c.YouTube.APIKey = strings.TrimSpace(c.YouTube.APIKey)
	if value, ok := os.LookupEnv("YOUTUBE_API_KEY"); ok && strings.TrimSpace(value) != "" {
		c.YouTube.APIKey = strings.TrimSpace(value)
	}
	c.YouTube.BaseURL = strings.TrimSpace(c.YouTube.BaseURL)
	if c.YouTube.BaseURL == "" {
		c.YouTube.BaseURL = defaultYouTubeBaseURL
	}
	return nil
}

func (c *Config) normalizeTranscript() error {
	c.Transcript.BaseURL = strings.TrimSpace(c.Transcript.BaseURL)
	if c.Transcript.BaseURL == "" {
		c.Transcript.BaseURL = defaultTranscriptBaseURL
	}
	if len(c.Transcript.Languages) == 0 {
		c.Transcript.Languages = []string{"en", "en-US", "en-GB"}
	} else {
		langs := make([]string, 0, len(c.Transcript.Languages))
		seen := make(map[string]struct{}, len(c.Transcript.Languages))
		for _, lang := range c.Transcript.Languages {
			trimmed := strings.TrimSpace(lang)
			if trimmed == "" {
				continue
			}
			key := strings.ToLower(trimmed)
			if _, exists := seen[key]; exists {
				continue
			}
			seen[key] = struct{}{}
			langs = append(langs, trimmed)
		}
		if len(langs) == 0 {
			langs = []string{"en", "en-US", "en-GB"}
		}
		c.Transcript.Languages = langs
	}
	return nil
}

func (c *Config) normalizeOpenAI() error {
	c.OpenAI.APIKey = strings.TrimSpace(c.OpenAI.APIKey)
	if value, ok := os.LookupEnv("OPENAI_API_KEY"); ok && strings.TrimSpace(value) != "" {
		c.OpenAI.APIKey = strings.TrimSpace(value)
	}
	c.OpenAI.BaseURL = strings.TrimSpace(c.OpenAI.BaseURL)
	if c.OpenAI.BaseURL == "" {
		c.OpenAI.BaseURL = defaultOpenAIBaseURL
	}
	c.OpenAI.Model = strings.TrimSpace(c.OpenAI.Model)
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = defaultOpenAIModel
	}
	return nil
}

func (c *Config) normalizeGemini() error {
	c.Gemini.APIKey = strings.TrimSpace(c.Gemini.APIKey)
	if value, ok := os.LookupEnv("GEMINI_API_KEY"); ok && strings.TrimSpace(value) != "" {
		c.Gemini.APIKey = strings.TrimSpace(value)
	} else if value, ok := os.LookupEnv("GOOGLE_API_KEY"); ok && strings.TrimSpace(value) != "" && c.Gemini.APIKey == "" {
		c.Gemini.APIKey = strings.TrimSpace(value)
	}
	c.Gemini.Model = strings.TrimSpace(c.Gemini.Model)
	if c.Gemini.Model == "" {
		c.Gemini.Model = defaultGeminiModel
	}
	return nil
}

func (c *Config) normalizeHistory() error {
	var err error
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath()
	}
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
