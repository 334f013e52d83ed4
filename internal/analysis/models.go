package analysis

import (
	"strings"
	"time"
)

// VideoMetadata describes the video under analysis.
type VideoMetadata struct {
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	ChannelTitle string    `json:"channel_title"`
	PublishedAt  time.Time `json:"published_date"`
	URL          string    `json:"url"`
}

// Comment is a single top-level comment with its reply texts.
type Comment struct {
	Text      string    `json:"comment"`
	Author    string    `json:"user_name"`
	Published time.Time `json:"date"`
	LikeCount int64     `json:"like_count"`
	Replies   []string  `json:"replies"`
}

// WordCount returns the number of whitespace-separated words in the comment
// text. Replies are not counted; collection budgets apply to top-level text
// only.
func (c Comment) WordCount() int {
	return WordCount(c.Text)
}

// TranscriptData holds the transcript text when one could be fetched. The
// zero value represents an unavailable transcript: no text, zero words.
type TranscriptData struct {
	Text      string `json:"text,omitempty"`
	WordCount int    `json:"word_count"`
	Language  string `json:"language,omitempty"`
	Source    string `json:"source,omitempty"`
	Available bool   `json:"available"`
	Error     string `json:"error_message,omitempty"`
}

// CommentsData aggregates the comments collected for a video. TotalWordCount
// covers only the retained comments, not everything fetched, since the word
// budget can cut collection short.
type CommentsData struct {
	Comments       []Comment `json:"comments"`
	TotalCount     int       `json:"total_count"`
	ProcessedCount int       `json:"processed_count"`
	TotalWordCount int       `json:"total_word_count"`
}

// NewCommentsData builds the comments aggregate with counts derived from the
// retained comments.
func NewCommentsData(comments []Comment) CommentsData {
	words := 0
	for _, comment := range comments {
		words += comment.WordCount()
	}
	return CommentsData{
		Comments:       comments,
		TotalCount:     len(comments),
		ProcessedCount: len(comments),
		TotalWordCount: words,
	}
}

// CriticalThinkingStandard is one standard's verdict from the evaluation
// stage. Rating runs 0-10 where low ratings signal weak coverage and
// therefore high follow-up impact.
type CriticalThinkingStandard struct {
	Name              string   `json:"name"`
	Evaluation        string   `json:"evaluation"`
	Rating            int      `json:"rating"`
	FollowupQuestions []string `json:"followup_questions"`
}

// ImpactScore converts the rating into a follow-up impact score. Weakly
// covered standards score highest.
func (s CriticalThinkingStandard) ImpactScore() float64 {
	return float64(10-s.Rating) * 10
}

// Assessment is the full critical-thinking verdict: per-standard results,
// the ranked priority questions, and per-standard impact scores.
type Assessment struct {
	Standards         []CriticalThinkingStandard `json:"standards"`
	SelectedQuestions []string                   `json:"selected_questions"`
	ImpactScores      map[string]float64         `json:"impact_scores"`
}

// TotalQuestions returns the number of follow-up questions across all
// standards before ranking.
func (a Assessment) TotalQuestions() int {
	total := 0
	for _, standard := range a.Standards {
		total += len(standard.FollowupQuestions)
	}
	return total
}

// Result is the complete output of one pipeline run. TotalTime is wall-clock
// seconds from run start to result assembly.
type Result struct {
	RunID             string         `json:"run_id,omitempty"`
	Metadata          VideoMetadata  `json:"video_metadata"`
	Transcript        TranscriptData `json:"transcript"`
	Comments          CommentsData   `json:"comments"`
	Steps             []StepRecord   `json:"processing_steps"`
	TranscriptSummary string         `json:"transcript_summary,omitempty"`
	CommentsSummary   string         `json:"comments_summary,omitempty"`
	CompressedSummary string         `json:"compressed_summary,omitempty"`
	Assessment        Assessment     `json:"critical_assessment"`
	TotalTime         float64        `json:"total_processing_time"`
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
