package preflight

import (
	"inquest/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable readiness checks for the given config.
// Credential checks are only run for stages the config enables.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// The YouTube key backs metadata and comment collection, so every run
	// needs it regardless of which later stages are enabled.
	results = append(results, CheckCredential("YouTube API key", cfg.YouTube.APIKey,
		"missing (set YOUTUBE_API_KEY or youtube.api_key)"))

	if cfg.Pipeline.EnableTranscriptProcessing || cfg.Pipeline.EnableCommentsProcessing {
		results = append(results, CheckCredential("OpenAI API key", cfg.OpenAI.APIKey,
			"missing (transcript and comment summaries will fail)"))
	}
	if cfg.Pipeline.EnableSynthesis || cfg.Pipeline.EnableEvaluation {
		results = append(results, CheckCredential("Gemini API key", cfg.Gemini.APIKey,
			"missing (synthesis and evaluation will fail)"))
	}

	results = append(results, CheckDirectoryAccess("Data directory", cfg.Paths.DataDir))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	results = append(results, CheckDirectoryAccess("Reports directory", cfg.Paths.ReportsDir))

	return results
}
