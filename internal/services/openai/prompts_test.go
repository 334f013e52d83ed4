package openai

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"inquest/internal/analysis"
)

func commentAt(text string, published time.Time, replies ...string) analysis.Comment {
	return analysis.Comment{Text: text, Published: published, Replies: replies}
}

func TestSelectCommentsOrdersByDateThenReplies(t *testing.T) {
	base := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	comments := []analysis.Comment{
		commentAt("oldest", base.Add(-48*time.Hour)),
		commentAt("same day busy thread", base, "r1", "r2"),
		commentAt("same day quiet thread", base),
		commentAt("newest", base.Add(24*time.Hour)),
	}

	selected := SelectComments(comments, 10, 1000)
	if len(selected) != 4 {
		t.Fatalf("expected all comments selected, got %d", len(selected))
	}
	order := []string{selected[0].Text, selected[1].Text, selected[2].Text, selected[3].Text}
	want := []string{"newest", "same day quiet thread", "same day busy thread", "oldest"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}
}

func TestSelectCommentsSkipsOversizedWithoutStopping(t *testing.T) {
	base := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	comments := []analysis.Comment{
		commentAt("this comment has far too many words to ever fit the tiny budget used here", base.Add(2*time.Hour)),
		commentAt("short enough", base.Add(time.Hour)),
		commentAt("also fits fine", base),
	}

	selected := SelectComments(comments, 10, 5)
	if len(selected) != 2 {
		t.Fatalf("expected 2 comments selected, got %d", len(selected))
	}
	if selected[0].Text != "short enough" || selected[1].Text != "also fits fine" {
		t.Fatalf("expected the short comments after skipping the oversized one, got %+v", selected)
	}
}

func TestSelectCommentsHonorsMaxComments(t *testing.T) {
	base := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	var comments []analysis.Comment
	for i := 0; i < 5; i++ {
		comments = append(comments, commentAt("one word", base.Add(time.Duration(-i)*time.Hour)))
	}

	selected := SelectComments(comments, 3, 1000)
	if len(selected) != 3 {
		t.Fatalf("expected 3 comments selected, got %d", len(selected))
	}
}

func TestCommentsPromptRendersTable(t *testing.T) {
	comments := []analysis.Comment{
		{
			Text:      "line one\nline two",
			LikeCount: 7,
			Published: time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC),
			Replies:   []string{"good point", "thanks\nfor this"},
		},
	}

	prompt := CommentsPrompt(comments)
	if !strings.Contains(prompt, "Structure output as prioritised bullet points.") {
		t.Fatalf("expected prompt lead-in, got %q", prompt)
	}
	if !strings.Contains(prompt, "Comments, Replies and Like Count:") {
		t.Fatalf("expected table heading, got %q", prompt)
	}
	if !strings.Contains(prompt, "comment | replies | like_count") {
		t.Fatalf("expected table header row, got %q", prompt)
	}
	if !strings.Contains(prompt, "line one line two | [good point; thanks for this] | 7") {
		t.Fatalf("expected sanitized table row, got %q", prompt)
	}
}

func TestCommentsPromptTruncatesAtCap(t *testing.T) {
	long := strings.Repeat("wörd ", 300000)
	comments := []analysis.Comment{{Text: long, Published: time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)}}

	prompt := CommentsPrompt(comments)
	if len(prompt) > maxPromptChars {
		t.Fatalf("expected prompt capped at %d bytes, got %d", maxPromptChars, len(prompt))
	}
	if !utf8.ValidString(prompt) {
		t.Fatal("expected truncation to preserve rune boundaries")
	}
}

func TestTranscriptPrompt(t *testing.T) {
	prompt := TranscriptPrompt("hello world", "keep it short")
	want := "Given the following transcript of a video. Follow below instruction: keep it short\n\nTranscript:\n\nhello world\n\n"
	if prompt != want {
		t.Fatalf("expected %q, got %q", want, prompt)
	}
}

func TestQnAPrompt(t *testing.T) {
	prompt := QnAPrompt("what tools were recommended?")
	if !strings.Contains(prompt, "Question: what tools were recommended?") {
		t.Fatalf("expected question in prompt, got %q", prompt)
	}
	if !strings.Contains(prompt, "capture relevant quote") {
		t.Fatalf("expected quoting instruction, got %q", prompt)
	}
}
