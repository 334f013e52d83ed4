package report

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"inquest/internal/analysis"
)

const (
	publishedDateLayout = "January 02, 2006"
	analysisDateLayout  = "January 02, 2006 at 03:04 PM"
	tableNotesMaxRunes  = 50
)

const reportFooter = "*Report generated by YouTube Analysis Pipeline - Chain-of-Thought Content Analysis*"

// Markdown renders the full report for a completed run. generatedAt stamps
// the Analysis Date line.
func Markdown(result *analysis.Result, generatedAt time.Time) string {
	var b strings.Builder
	p := message.NewPrinter(language.English)

	b.WriteString("# YouTube Video Analysis Report\n\n## 📽️ Video Information\n\n")
	fmt.Fprintf(&b, "**Title:** %s  \n", result.Metadata.Title)
	fmt.Fprintf(&b, "**Channel:** %s  \n", result.Metadata.Author)
	fmt.Fprintf(&b, "**Published:** %s  \n", result.Metadata.PublishedAt.Format(publishedDateLayout))
	fmt.Fprintf(&b, "**URL:** %s  \n", result.Metadata.URL)
	fmt.Fprintf(&b, "**Analysis Date:** %s  \n", generatedAt.Format(analysisDateLayout))
	fmt.Fprintf(&b, "**Processing Time:** %.1f seconds  \n", result.TotalTime)
	b.WriteString("\n---\n\n## 📊 Data Extraction Summary\n\n")

	if result.Transcript.Available {
		fmt.Fprintf(&b, "**Transcript:** ✅ Successfully extracted (%s words)  \n", p.Sprintf("%d", result.Transcript.WordCount))
	} else {
		b.WriteString("**Transcript:** ❌ Not available or not processed  \n")
	}
	if result.Comments.TotalCount > 0 {
		fmt.Fprintf(&b, "**Comments:** ✅ Processed %s comments (%s words)  \n",
			p.Sprintf("%d", result.Comments.TotalCount), p.Sprintf("%d", result.Comments.TotalWordCount))
	} else {
		b.WriteString("**Comments:** ❌ Not processed  \n")
	}
	b.WriteString("\n---\n\n")

	if result.TranscriptSummary != "" {
		fmt.Fprintf(&b, "## 📝 Transcript Summary\n\n%s\n\n---\n\n", result.TranscriptSummary)
	}
	if result.CommentsSummary != "" {
		fmt.Fprintf(&b, "## 💬 Comments Summary\n\n%s\n\n---\n\n", result.CommentsSummary)
	}
	if result.CompressedSummary != "" {
		fmt.Fprintf(&b, "## 🔍 Key Insights\n\n%s\n\n---\n\n", result.CompressedSummary)
	}

	if len(result.Assessment.SelectedQuestions) > 0 {
		b.WriteString("## 🤔 Priority Questions for Further Investigation\n\n")
		for i, question := range result.Assessment.SelectedQuestions {
			fmt.Fprintf(&b, "%d. %s\n\n", i+1, question)
		}
		b.WriteString("---\n\n")
	}

	if len(result.Assessment.Standards) > 0 {
		b.WriteString("## 📋 Critical Thinking Assessment\n\n")
		for _, standard := range result.Assessment.Standards {
			fmt.Fprintf(&b, "### %s (Rating: %d/10)\n\n%s\n\n", standard.Name, standard.Rating, standard.Evaluation)
			if len(standard.FollowupQuestions) > 0 {
				b.WriteString("**Follow-up Questions:**\n")
				for _, question := range standard.FollowupQuestions {
					fmt.Fprintf(&b, "- %s\n", question)
				}
				b.WriteString("\n")
			}
		}
		b.WriteString("---\n\n")
	}

	b.WriteString("## ⚙️ Processing Steps\n\n")
	b.WriteString("| Step | Status | Time | Notes |\n")
	b.WriteString("|------|---------|---------|-------|\n")
	for _, step := range result.Steps {
		emoji, status := "✅", "Success"
		if !step.Success {
			emoji, status = "❌", "Failed"
		}
		notes := step.Output
		if step.Error != "" {
			notes = step.Error
		}
		fmt.Fprintf(&b, "| %s | %s %s | %.2fs | %s |\n", step.Name, emoji, status, step.Duration, tableNotes(notes))
	}

	fmt.Fprintf(&b, "\n---\n\n## 📈 Analysis Summary\n\n- **Total Processing Time:** %.1f seconds\n- **Steps Completed:** %d/%d\n- **Data Sources:** %d of 2\n\n---\n\n%s\n",
		result.TotalTime, successfulSteps(result.Steps), len(result.Steps), dataSources(result), reportFooter)
	return b.String()
}

// tableNotes makes a step note safe for a one-line Markdown table cell.
func tableNotes(notes string) string {
	notes = strings.ReplaceAll(notes, "|", "\\|")
	notes = strings.ReplaceAll(notes, "\n", " ")
	runes := []rune(notes)
	if len(runes) > tableNotesMaxRunes {
		return string(runes[:tableNotesMaxRunes])
	}
	return notes
}

func successfulSteps(steps []analysis.StepRecord) int {
	count := 0
	for _, step := range steps {
		if step.Success {
			count++
		}
	}
	return count
}

func dataSources(result *analysis.Result) int {
	sources := 0
	if result.Transcript.Available {
		sources++
	}
	if result.Comments.TotalCount > 0 {
		sources++
	}
	return sources
}
