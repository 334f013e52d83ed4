package report

import (
	"reflect"
	"strings"
	"testing"
)

func TestHeadlinePrefersBoldLine(t *testing.T) {
	content := "A perfectly short opener\n**Actual Headline**\nBody text follows."
	if got := Headline(content); got != "Actual Headline" {
		t.Fatalf("expected bold headline, got %q", got)
	}
}

func TestHeadlineFromHeading(t *testing.T) {
	if got := Headline("## Compiler Myths\nSome body."); got != "Compiler Myths" {
		t.Fatalf("expected heading text, got %q", got)
	}
}

func TestHeadlineFallsBackToShortFirstLine(t *testing.T) {
	if got := Headline("A short opener\n" + strings.Repeat("body ", 30)); got != "A short opener" {
		t.Fatalf("expected first line, got %q", got)
	}
}

func TestHeadlineMissing(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("stretch ", 10))
	if got := Headline(long); got != "" {
		t.Fatalf("expected no headline for long prose, got %q", got)
	}
	if got := Headline(""); got != "" {
		t.Fatalf("expected no headline for empty content, got %q", got)
	}
}

func TestKeyPointsCollectsBulletsAndNumbers(t *testing.T) {
	content := strings.Join([]string{
		"Intro prose.",
		"- dash point",
		"* star point",
		"• unicode point",
		"1. first numbered",
		"9. ninth numbered",
		"10. double digits skipped",
		"closing prose",
	}, "\n")

	got := KeyPoints(content)
	want := []string{"dash point", "star point", "unicode point", "first numbered", "ninth numbered"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestKeyPointsKeepsNumberedRemainder(t *testing.T) {
	got := KeyPoints("2. Two. More detail")
	if len(got) != 1 || got[0] != "Two. More detail" {
		t.Fatalf("expected remainder after first separator, got %v", got)
	}
}

func TestKeyPointsEmptyContent(t *testing.T) {
	if got := KeyPoints("plain prose only"); got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice, got %v", got)
	}
}

func TestAnalyzeContentWithStructure(t *testing.T) {
	structure := AnalyzeContent("héllo wörld")
	if structure.Headline != "héllo wörld" {
		t.Fatalf("expected short line as headline, got %q", structure.Headline)
	}
	if structure.WordCount != 2 {
		t.Fatalf("expected 2 words, got %d", structure.WordCount)
	}
	if structure.CharCount != 11 {
		t.Fatalf("expected 11 characters, got %d", structure.CharCount)
	}
	if !structure.HasStructure {
		t.Fatal("expected structure to be detected")
	}
}

func TestAnalyzeContentWithoutStructure(t *testing.T) {
	structure := AnalyzeContent(strings.TrimSpace(strings.Repeat("plain prose ", 6)))
	if structure.Headline != "" || len(structure.KeyPoints) != 0 {
		t.Fatalf("expected no structure, got headline %q points %v", structure.Headline, structure.KeyPoints)
	}
	if structure.HasStructure {
		t.Fatal("expected no structure flag")
	}
}
