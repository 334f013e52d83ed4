package report

import (
	"strings"
	"testing"
	"time"

	"inquest/internal/analysis"
)

func sampleResult() *analysis.Result {
	return &analysis.Result{
		RunID: "52bb94a6-9f0e-4f3a-9c1d-6c2f1a9e0d11",
		Metadata: analysis.VideoMetadata{
			VideoID:      "dQw4w9WgXcQ",
			Title:        "How Compilers Work",
			Author:       "Systems Weekly",
			ChannelTitle: "Systems Weekly",
			PublishedAt:  time.Date(2025, time.March, 7, 12, 0, 0, 0, time.UTC),
			URL:          "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		Transcript: analysis.TranscriptData{
			Text:      "one two three four five",
			WordCount: 5,
			Language:  "en",
			Source:    "auto",
			Available: true,
		},
		Comments: analysis.NewCommentsData([]analysis.Comment{
			{Author: "viewer one", Text: "first comment here"},
			{Author: "viewer two", Text: "second comment text body"},
		}),
		Steps: []analysis.StepRecord{
			{
				Name:     analysis.StepExtractTranscript,
				Input:    "dQw4w9WgXcQ",
				Output:   "Transcript available: true, Words: 5",
				Duration: 1.234,
				Success:  true,
			},
			{
				Name:     analysis.StepEvaluateCriticalThinking,
				Input:    "Transcript + Comments summaries",
				Duration: 2,
				Success:  false,
				Error:    "quota | exceeded\nretry later",
			},
		},
		TranscriptSummary: "transcript summary",
		CommentsSummary:   "comments summary",
		CompressedSummary: "**Compiler Myths Debunked**\n\n- Parsing is not the hard part\n- Optimization passes dominate",
		Assessment: analysis.Assessment{
			Standards: []analysis.CriticalThinkingStandard{{
				Name:              "Clarity",
				Evaluation:        "Clear throughout.",
				Rating:            8,
				FollowupQuestions: []string{"Could terms be defined earlier?"},
			}},
			SelectedQuestions: []string{"Could terms be defined earlier?"},
			ImpactScores:      map[string]float64{"Clarity": 20},
		},
		TotalTime: 12.34,
	}
}

var testGeneratedAt = time.Date(2025, time.August, 22, 15, 4, 0, 0, time.UTC)

func TestMarkdownVideoInformation(t *testing.T) {
	doc := Markdown(sampleResult(), testGeneratedAt)

	if !strings.HasPrefix(doc, "# YouTube Video Analysis Report\n\n## 📽️ Video Information\n\n") {
		t.Fatalf("unexpected document start: %q", doc[:80])
	}
	for _, want := range []string{
		"**Title:** How Compilers Work  \n",
		"**Channel:** Systems Weekly  \n",
		"**Published:** March 07, 2025  \n",
		"**URL:** https://www.youtube.com/watch?v=dQw4w9WgXcQ  \n",
		"**Analysis Date:** August 22, 2025 at 03:04 PM  \n",
		"**Processing Time:** 12.3 seconds  \n",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("expected document to contain %q", want)
		}
	}
}

func TestMarkdownExtractionSummary(t *testing.T) {
	doc := Markdown(sampleResult(), testGeneratedAt)

	if !strings.Contains(doc, "**Transcript:** ✅ Successfully extracted (5 words)  \n") {
		t.Fatal("expected transcript extraction line")
	}
	if !strings.Contains(doc, "**Comments:** ✅ Processed 2 comments (7 words)  \n") {
		t.Fatal("expected comments extraction line")
	}
}

func TestMarkdownGroupsThousands(t *testing.T) {
	result := sampleResult()
	result.Transcript.WordCount = 1234

	doc := Markdown(result, testGeneratedAt)
	if !strings.Contains(doc, "**Transcript:** ✅ Successfully extracted (1,234 words)  \n") {
		t.Fatal("expected thousands separator in word count")
	}
}

func TestMarkdownSummarySections(t *testing.T) {
	doc := Markdown(sampleResult(), testGeneratedAt)

	for _, want := range []string{
		"## 📝 Transcript Summary\n\ntranscript summary\n\n---\n\n",
		"## 💬 Comments Summary\n\ncomments summary\n\n---\n\n",
		"## 🔍 Key Insights\n\n**Compiler Myths Debunked**",
		"## 🤔 Priority Questions for Further Investigation\n\n1. Could terms be defined earlier?\n\n",
		"### Clarity (Rating: 8/10)\n\nClear throughout.\n\n**Follow-up Questions:**\n- Could terms be defined earlier?\n",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("expected document to contain %q", want)
		}
	}
}

func TestMarkdownStepsTable(t *testing.T) {
	doc := Markdown(sampleResult(), testGeneratedAt)

	if !strings.Contains(doc, "| Step | Status | Time | Notes |\n|------|---------|---------|-------|\n") {
		t.Fatal("expected steps table header")
	}
	if !strings.Contains(doc, "| extract_transcript | ✅ Success | 1.23s | Transcript available: true, Words: 5 |") {
		t.Fatal("expected successful step row")
	}
	if !strings.Contains(doc, "| evaluate_critical_thinking | ❌ Failed | 2.00s | quota \\| exceeded retry later |") {
		t.Fatal("expected failed step row with escaped notes")
	}
}

func TestMarkdownTruncatesLongNotes(t *testing.T) {
	result := sampleResult()
	result.Steps = []analysis.StepRecord{{
		Name:     analysis.StepProcessTranscript,
		Output:   strings.Repeat("a", 60),
		Duration: 0.5,
		Success:  true,
	}}

	doc := Markdown(result, testGeneratedAt)
	if !strings.Contains(doc, "| "+strings.Repeat("a", 50)+" |") {
		t.Fatal("expected notes truncated to 50 characters")
	}
	if strings.Contains(doc, strings.Repeat("a", 51)) {
		t.Fatal("expected no more than 50 note characters")
	}
}

func TestMarkdownAnalysisSummary(t *testing.T) {
	doc := Markdown(sampleResult(), testGeneratedAt)

	for _, want := range []string{
		"## 📈 Analysis Summary\n\n- **Total Processing Time:** 12.3 seconds\n- **Steps Completed:** 1/2\n- **Data Sources:** 2 of 2\n",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("expected document to contain %q", want)
		}
	}
	if !strings.HasSuffix(doc, "*Report generated by YouTube Analysis Pipeline - Chain-of-Thought Content Analysis*\n") {
		t.Fatalf("unexpected document tail: %q", doc[len(doc)-90:])
	}
}

func TestMarkdownOmitsEmptySections(t *testing.T) {
	result := sampleResult()
	result.Transcript = analysis.TranscriptData{}
	result.Comments = analysis.CommentsData{}
	result.TranscriptSummary = ""
	result.CommentsSummary = ""
	result.CompressedSummary = ""
	result.Assessment = analysis.Assessment{}

	doc := Markdown(result, testGeneratedAt)
	for _, banned := range []string{"## 📝", "## 💬", "## 🔍", "## 🤔", "## 📋"} {
		if strings.Contains(doc, banned) {
			t.Fatalf("expected section %q to be omitted", banned)
		}
	}
	if !strings.Contains(doc, "**Transcript:** ❌ Not available or not processed  \n") {
		t.Fatal("expected unavailable transcript line")
	}
	if !strings.Contains(doc, "**Comments:** ❌ Not processed  \n") {
		t.Fatal("expected unprocessed comments line")
	}
	if !strings.Contains(doc, "- **Data Sources:** 0 of 2\n") {
		t.Fatal("expected zero data sources")
	}
}
