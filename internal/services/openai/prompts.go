package openai

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"inquest/internal/analysis"
)

// maxPromptChars caps a rendered prompt at roughly one megabyte before it is
// sent to the API.
const maxPromptChars = 1 << 20

// NoTranscriptNotice is emitted in place of a summary when no transcript
// could be fetched for the video.
const NoTranscriptNotice = "No transcript available for analysis."

// SummarizeForReflection is the default transcript instruction applied when
// the caller provides none.
const SummarizeForReflection = "Summarize the video content, extracting the core facts and main message. " +
	"Output the summary in the same language as the original content."

const systemPrompt = "You are a creative philosopher technologist. You understand process, people and tools and techniques. " +
	"Focus on communication style, Identify and Reduce Redundancy, Focus on Novelty and Relevance. " +
	"Structure Communication, Organize content logically."

const commentsPromptLead = "Given the following user comments in their native language, " +
	"Understand the problem and core insights around the subject. " +
	"Summarise information so that includes core insights and guidelines and opportunities that can be useful in context to the problem. " +
	"Structure output as prioritised bullet points. Ranking should be done on basis of topic hotness and like count. " +
	"Capture and mention facts like prices, tools technologies, locations, people, organizations, financial data and links to products or other articles. etc. Include those in the summary for support. " +
	"Comments, Replies and Like Count:\n\n"

// QnAPrompt builds a question-answering instruction that can be passed to
// SummarizeTranscript in place of the default reflection instruction.
func QnAPrompt(question string) string {
	return fmt.Sprintf("Please answer question below given the text provided. "+
		"Focus to provide succint insights based on discussion. "+
		"For each insight capture relevant quote from the original text.\n\nQuestion: %s", question)
}

// TranscriptPrompt renders the transcript summarization prompt for the given
// instruction.
func TranscriptPrompt(text, instruction string) string {
	return fmt.Sprintf("Given the following transcript of a video. Follow below instruction: %s\n\nTranscript:\n\n%s\n\n", instruction, text)
}

// SelectComments orders comments newest first, preferring less-replied
// threads at the same timestamp, then picks comments until either cap is
// reached. An oversized comment is skipped rather than ending selection, so
// shorter comments later in the ordering can still fill the word budget.
// Only top-level text counts against the word budget.
func SelectComments(comments []analysis.Comment, maxComments, maxWords int) []analysis.Comment {
	ordered := make([]analysis.Comment, len(comments))
	copy(ordered, comments)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Published.Equal(ordered[j].Published) {
			return ordered[i].Published.After(ordered[j].Published)
		}
		return len(ordered[i].Replies) < len(ordered[j].Replies)
	})

	selected := make([]analysis.Comment, 0, len(ordered))
	totalWords := 0
	for _, comment := range ordered {
		words := comment.WordCount()
		if len(selected) < maxComments && totalWords+words <= maxWords {
			selected = append(selected, comment)
			totalWords += words
		}
	}
	return selected
}

// CommentsPrompt renders the comment insight prompt: the fixed lead-in
// followed by one table row per comment with its replies and like count.
// The result is truncated at the prompt size cap.
func CommentsPrompt(comments []analysis.Comment) string {
	var b strings.Builder
	b.WriteString(commentsPromptLead)
	b.WriteString("comment | replies | like_count")
	for _, comment := range comments {
		b.WriteString("\n")
		b.WriteString(promptCell(comment.Text))
		b.WriteString(" | ")
		b.WriteString(repliesCell(comment.Replies))
		b.WriteString(" | ")
		b.WriteString(strconv.FormatInt(comment.LikeCount, 10))
	}
	b.WriteString("\n\n")
	return truncatePrompt(b.String())
}

var cellSanitizer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

func promptCell(text string) string {
	return strings.TrimSpace(cellSanitizer.Replace(text))
}

func repliesCell(replies []string) string {
	if len(replies) == 0 {
		return "[]"
	}
	cleaned := make([]string, 0, len(replies))
	for _, reply := range replies {
		cleaned = append(cleaned, promptCell(reply))
	}
	return "[" + strings.Join(cleaned, "; ") + "]"
}

func truncatePrompt(prompt string) string {
	if len(prompt) <= maxPromptChars {
		return prompt
	}
	cut := maxPromptChars
	for cut > 0 && !utf8.RuneStart(prompt[cut]) {
		cut--
	}
	return prompt[:cut]
}
