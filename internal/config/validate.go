package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. API keys for the language
// models are checked at client construction instead so that runs with those
// stages disabled do not require them; the YouTube key is always needed
// because every analysis starts with a metadata lookup.
func (c *Config) Validate() error {
	if err := c.validateYouTube(); err != nil {
		return err
	}
	if err := c.validateTranscript(); err != nil {
		return err
	}
	if err := c.validateOpenAI(); err != nil {
		return err
	}
	if err := c.validateGemini(); err != nil {
		return err
	}
	if err := c.validatePipeline(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateYouTube() error {
	if c.YouTube.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/inquest/config.toml"
		}
		return fmt.Errorf("youtube.api_key is required. Set YOUTUBE_API_KEY env var or edit %s (create with 'inquest config init')", defaultPath)
	}
	if err := ensurePositiveMap(map[string]int{
		"youtube.max_comments":      c.YouTube.MaxComments,
		"youtube.max_comment_words": c.YouTube.MaxCommentWords,
		"youtube.timeout_seconds":   c.YouTube.TimeoutSeconds,
	}); err != nil {
		return err
	}
	if c.YouTube.RequestsPerSecond <= 0 {
		return errors.New("youtube.requests_per_second must be positive")
	}
	return nil
}

func (c *Config) validateTranscript() error {
	if len(c.Transcript.Languages) == 0 {
		return errors.New("transcript.languages must include at least one language")
	}
	if c.Transcript.TimeoutSeconds <= 0 {
		return errors.New("transcript.timeout_seconds must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateOpenAI() error {
	if c.OpenAI.Temperature < 0 || c.OpenAI.Temperature > 2 {
		return errors.New("openai.temperature must be between 0 and 2")
	}
	if c.OpenAI.TimeoutSeconds <= 0 {
		return errors.New("openai.timeout_seconds must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateGemini() error {
	if c.Gemini.Temperature < 0 || c.Gemini.Temperature > 2 {
		return errors.New("gemini.temperature must be between 0 and 2")
	}
	if c.Gemini.MaxOutputTokens <= 0 {
		return errors.New("gemini.max_output_tokens must be positive")
	}
	if c.Gemini.TimeoutSeconds <= 0 {
		return errors.New("gemini.timeout_seconds must be positive (seconds)")
	}
	return nil
}

func (c *Config) validatePipeline() error {
	if c.Pipeline.MaxPriorityQuestions < 0 {
		return errors.New("pipeline.max_priority_questions must be >= 0")
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		return errors.New("history.path must be set when history.enabled is true")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
