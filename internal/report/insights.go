// Package report renders completed analysis runs as Markdown documents,
// indented JSON, and interactive console output, and derives display
// insights from the compressed summary.
package report

import (
	"strings"
	"unicode/utf8"

	"inquest/internal/analysis"
)

// headlineMaxRunes caps how long a bare first line may be before it stops
// reading as a headline.
const headlineMaxRunes = 50

var bulletPrefixes = []string{"- ", "* ", "• "}

// Headline pulls a display headline out of compressed content: the first
// bold **...** line, the first markdown heading, or a short first line.
// Empty means no headline was found.
func Headline(content string) string {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**") {
			return strings.TrimSpace(strings.Trim(line, "*"))
		}
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "#"))
		}
	}
	first := strings.TrimSpace(lines[0])
	if first != "" && utf8.RuneCountInString(first) <= headlineMaxRunes {
		return first
	}
	return ""
}

// KeyPoints pulls bulleted and numbered list items out of compressed
// content, in document order.
func KeyPoints(content string) []string {
	points := []string{}
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		line = strings.TrimSpace(line)
		if point, ok := trimBullet(line); ok {
			points = append(points, point)
			continue
		}
		if point, ok := trimNumber(line); ok {
			points = append(points, point)
		}
	}
	return points
}

func trimBullet(line string) (string, bool) {
	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix)), true
		}
	}
	return "", false
}

// trimNumber matches single-digit "1. " through "9. " items and keeps the
// remainder of the line as written.
func trimNumber(line string) (string, bool) {
	if len(line) < 3 || line[0] < '1' || line[0] > '9' || line[1] != '.' || line[2] != ' ' {
		return "", false
	}
	parts := strings.SplitN(line, ". ", 2)
	return parts[1], true
}

// ContentStructure describes the displayable shape of a compressed summary.
type ContentStructure struct {
	Headline     string   `json:"headline,omitempty"`
	KeyPoints    []string `json:"key_points"`
	WordCount    int      `json:"word_count"`
	CharCount    int      `json:"char_count"`
	HasStructure bool     `json:"has_structure"`
}

// AnalyzeContent derives insights from compressed content for consumers
// that want a headline and key points rather than the full text.
func AnalyzeContent(content string) ContentStructure {
	headline := Headline(content)
	points := KeyPoints(content)
	return ContentStructure{
		Headline:     headline,
		KeyPoints:    points,
		WordCount:    analysis.WordCount(content),
		CharCount:    utf8.RuneCountInString(content),
		HasStructure: headline != "" || len(points) > 0,
	}
}
