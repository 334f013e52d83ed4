package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"inquest/internal/analysis"
)

const (
	ansiReset = "\x1b[0m"
	ansiBlue  = "\x1b[34m"
)

const consoleIndent = "  "

const infoLabelWidth = 16

// ShouldDecorate reports whether w is an interactive terminal that can
// take ANSI decoration.
func ShouldDecorate(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// RenderConsole writes the interactive rendering of a completed run to w.
// decorate adds ANSI coloring; pass ShouldDecorate(w) for terminals.
func RenderConsole(w io.Writer, result *analysis.Result, decorate bool) {
	writeSection(w, "Video Information", decorate)
	writeInfo(w, "Title", result.Metadata.Title)
	writeInfo(w, "Channel", result.Metadata.Author)
	writeInfo(w, "Published", result.Metadata.PublishedAt.Format("2006-01-02"))
	writeInfo(w, "Processing time", fmt.Sprintf("%.2fs", result.TotalTime))
	fmt.Fprintln(w)

	writeSection(w, "Data Extraction", decorate)
	fmt.Fprintln(w, consoleIndent+transcriptLine(result))
	fmt.Fprintln(w, consoleIndent+commentsLine(result))
	fmt.Fprintln(w)

	if result.CompressedSummary != "" {
		writeSection(w, "Key Insights", decorate)
		for _, line := range strings.Split(result.CompressedSummary, "\n") {
			fmt.Fprintln(w, consoleIndent+line)
		}
		fmt.Fprintln(w)
	}

	if len(result.Assessment.SelectedQuestions) > 0 {
		writeSection(w, "Priority Questions for Further Investigation", decorate)
		for i, question := range result.Assessment.SelectedQuestions {
			fmt.Fprintf(w, "%s%d. %s\n", consoleIndent, i+1, question)
		}
		fmt.Fprintln(w)
	}

	if len(result.Steps) > 0 {
		writeSection(w, "Processing Steps", decorate)
		fmt.Fprintln(w, RenderTable(
			[]string{"Step", "Status", "Time"},
			stepRows(result.Steps),
			[]ColumnAlignment{AlignLeft, AlignLeft, AlignRight},
		))
	}
}

func stepRows(steps []analysis.StepRecord) [][]string {
	caser := cases.Title(language.Und)
	rows := make([][]string, 0, len(steps))
	for _, step := range steps {
		status := "✓ Success"
		if !step.Success {
			status = "✗ Failed"
		}
		rows = append(rows, []string{
			caser.String(strings.ReplaceAll(step.Name, "_", " ")),
			status,
			fmt.Sprintf("%.2fs", step.Duration),
		})
	}
	return rows
}

func transcriptLine(result *analysis.Result) string {
	if !hasStep(result.Steps, analysis.StepExtractTranscript) {
		return "Transcript: Not processed"
	}
	mark := "✗"
	if result.Transcript.Available {
		mark = "✓"
	}
	return fmt.Sprintf("Transcript: %s (%d words)", mark, result.Transcript.WordCount)
}

func commentsLine(result *analysis.Result) string {
	if result.Comments.TotalCount == 0 {
		return "Comments: Not processed"
	}
	return fmt.Sprintf("Comments: %d items (%d words)", result.Comments.TotalCount, result.Comments.TotalWordCount)
}

func hasStep(steps []analysis.StepRecord, name string) bool {
	for _, step := range steps {
		if step.Name == name {
			return true
		}
	}
	return false
}

func writeSection(w io.Writer, title string, decorate bool) {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if decorate {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, rule)
}

func writeInfo(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%s%-*s %s\n", consoleIndent, infoLabelWidth, label+":", value)
}
