package gemini

import (
	"strings"
	"testing"
)

func TestCompressionPromptRendersBothSummaries(t *testing.T) {
	prompt := CompressionPrompt("Speaker explains memory arenas.", "Commenters compare allocators.")
	if !strings.HasPrefix(prompt, "\nExtract maximum value") {
		t.Fatalf("unexpected prompt opening: %q", prompt[:40])
	}
	if !strings.Contains(prompt, "Summary of the topic or assumptions made by the speaker:\n\nSpeaker explains memory arenas.") {
		t.Fatal("prompt missing transcript section")
	}
	if !strings.Contains(prompt, "Summary of community people comments on the topic:\n\nCommenters compare allocators.") {
		t.Fatal("prompt missing comments section")
	}
	if strings.Contains(prompt, NoTranscriptSummaryNotice) {
		t.Fatal("notice should not appear when a transcript summary is present")
	}
}

func TestCompressionPromptSubstitutesMissingTranscript(t *testing.T) {
	prompt := CompressionPrompt("", "Commenters compare allocators.")
	if !strings.Contains(prompt, NoTranscriptSummaryNotice) {
		t.Fatal("expected missing-transcript notice")
	}
	if !strings.Contains(prompt, "Commenters compare allocators.") {
		t.Fatal("comments summary should pass through unchanged")
	}
}

func TestCompressionPromptKeepsEmptyCommentsSection(t *testing.T) {
	prompt := CompressionPrompt("Speaker explains memory arenas.", "")
	if !strings.HasSuffix(prompt, "Summary of community people comments on the topic:\n\n\n") {
		t.Fatalf("expected empty comments section at prompt end, got %q", prompt[len(prompt)-60:])
	}
}

func TestEvaluationPromptListsAllStandards(t *testing.T) {
	prompt := EvaluationPrompt("summary", "comments")
	headings := []string{
		"## Standards in depth : Clarity",
		"## Standards in depth : Accuracy",
		"## Standards in depth : Precision",
		"## Standards in depth : Depth",
		"## Standards in depth : Breadth",
		"## Standards in depth : Logicalness, Logical Consistency",
		"## Standards in depth : Significance",
		"## Standards in depth : Fairness, Fair Thinking",
	}
	for _, heading := range headings {
		if !strings.Contains(prompt, heading) {
			t.Fatalf("prompt missing heading %q", heading)
		}
	}
	if !strings.Contains(prompt, `an advertisement claiming "100% pure water"`) {
		t.Fatal("percent literal in accuracy example rendered incorrectly")
	}
}

func TestEvaluationPromptUsesSpacedSectionLabels(t *testing.T) {
	prompt := EvaluationPrompt("Speaker assumes remote work stays.", "Commenters dispute the premise.")
	if !strings.Contains(prompt, "Summary of the topic or assumptions made by the speaker : \n\nSpeaker assumes remote work stays.") {
		t.Fatal("prompt missing spaced transcript label")
	}
	if !strings.Contains(prompt, "Summary of community people comments on the topic : \n\nCommenters dispute the premise.") {
		t.Fatal("prompt missing spaced comments label")
	}
}

func TestEvaluationPromptSubstitutesMissingTranscript(t *testing.T) {
	prompt := EvaluationPrompt("", "comments only")
	if !strings.Contains(prompt, NoTranscriptSummaryNotice) {
		t.Fatal("expected missing-transcript notice")
	}
}
