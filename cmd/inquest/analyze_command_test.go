package main

import (
	"testing"

	"inquest/internal/analysis"
)

func pipelineConfigForToggleTest() analysis.PipelineConfig {
	return analysis.PipelineConfig{
		EnableTranscript:           true,
		EnableComments:             true,
		EnableTranscriptProcessing: true,
		EnableCommentsProcessing:   true,
		EnableSynthesis:            true,
		EnableEvaluation:           true,
	}
}

func TestAnalyzeRejectsUnknownFormat(t *testing.T) {
	configPath := writeTestConfig(t)

	_, _, err := runCLI(t, "--config", configPath, "analyze",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "--format", "xml")
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	requireContains(t, err.Error(), `unsupported format "xml"`)
}

func TestAnalyzeRejectsConflictingShortcuts(t *testing.T) {
	configPath := writeTestConfig(t)

	_, _, err := runCLI(t, "--config", configPath, "analyze",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"--transcript-only", "--comments-only")
	if err == nil {
		t.Fatal("expected error for conflicting shortcuts")
	}
	requireContains(t, err.Error(), "mutually exclusive")
}

func TestAnalyzeRequiresURL(t *testing.T) {
	configPath := writeTestConfig(t)

	_, _, err := runCLI(t, "--config", configPath, "analyze")
	if err == nil {
		t.Fatal("expected error when no url is given")
	}
}

func TestStageTogglesTranscriptOnly(t *testing.T) {
	cfg := pipelineConfigForToggleTest()
	applyStageToggles(&cfg, stageToggles{transcriptOnly: true})

	if cfg.EnableComments || cfg.EnableCommentsProcessing {
		t.Fatal("expected comment stages to be disabled")
	}
	if !cfg.EnableTranscript || !cfg.EnableTranscriptProcessing {
		t.Fatal("expected transcript stages to stay enabled")
	}
}

func TestStageTogglesCommentsOnly(t *testing.T) {
	cfg := pipelineConfigForToggleTest()
	applyStageToggles(&cfg, stageToggles{commentsOnly: true})

	if cfg.EnableTranscript || cfg.EnableTranscriptProcessing {
		t.Fatal("expected transcript stages to be disabled")
	}
	if !cfg.EnableComments || !cfg.EnableCommentsProcessing {
		t.Fatal("expected comment stages to stay enabled")
	}
}

func TestStageTogglesIndividualFlags(t *testing.T) {
	cfg := pipelineConfigForToggleTest()
	applyStageToggles(&cfg, stageToggles{noSynthesis: true, noEvaluation: true})

	if cfg.EnableSynthesis || cfg.EnableEvaluation {
		t.Fatal("expected synthesis and evaluation to be disabled")
	}
	if !cfg.EnableTranscript || !cfg.EnableComments {
		t.Fatal("expected collection stages to stay enabled")
	}
}
