package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"inquest/internal/analysis"
	"inquest/internal/config"
	"inquest/internal/pipeline"
	"inquest/internal/services/gemini"
	"inquest/internal/services/openai"
	"inquest/internal/services/transcript"
	"inquest/internal/services/youtube"
)

// buildOrchestrator wires pipeline collaborators from configuration. Clients
// for disabled stages are not constructed, so runs that skip summarization or
// evaluation do not require the corresponding API keys.
func buildOrchestrator(ctx context.Context, cfg *config.Config, pcfg analysis.PipelineConfig, logger *slog.Logger) (*pipeline.Orchestrator, error) {
	extractor, err := youtube.New(cfg.YouTube.APIKey, cfg.YouTube.BaseURL,
		youtube.WithLogger(logger),
		youtube.WithRequestsPerSecond(cfg.YouTube.RequestsPerSecond),
		youtube.WithHTTPClient(httpClientFor(cfg.YouTube.TimeoutSeconds)),
	)
	if err != nil {
		return nil, err
	}
	deps := pipeline.Deps{Extractor: extractor}

	if pcfg.EnableTranscript {
		fetcher, err := transcript.New(cfg.Transcript.BaseURL, cfg.Transcript.Languages,
			transcript.WithLogger(logger),
			transcript.WithHTTPClient(httpClientFor(cfg.Transcript.TimeoutSeconds)),
		)
		if err != nil {
			return nil, err
		}
		deps.Transcripts = fetcher
	}

	if pcfg.EnableTranscriptProcessing || pcfg.EnableCommentsProcessing {
		summarizer, err := openai.New(openai.Config{
			APIKey:         cfg.OpenAI.APIKey,
			BaseURL:        cfg.OpenAI.BaseURL,
			TimeoutSeconds: cfg.OpenAI.TimeoutSeconds,
		}, openai.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		deps.Summarizer = summarizer
	}

	if pcfg.EnableSynthesis || pcfg.EnableEvaluation {
		synthesizer, err := gemini.New(ctx, gemini.Config{
			APIKey:          cfg.Gemini.APIKey,
			MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
			TimeoutSeconds:  cfg.Gemini.TimeoutSeconds,
		}, gemini.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		deps.Synthesizer = synthesizer
		deps.Evaluator = synthesizer
	}

	return pipeline.New(deps, pipeline.WithLogger(logger))
}

func httpClientFor(timeoutSeconds int) *http.Client {
	timeout := 30 * time.Second
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}
	return &http.Client{Timeout: timeout}
}
