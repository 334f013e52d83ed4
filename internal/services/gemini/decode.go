package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"inquest/internal/analysis"
)

// DecodeJSON decodes a model response into target, tolerating markdown code
// fences and prose wrapped around the JSON payload.
func DecodeJSON(content string, target any) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return errors.New("empty payload")
	}

	directErr := json.Unmarshal([]byte(trimmed), target)
	if directErr == nil {
		return nil
	}

	sanitized := sanitizeJSONPayload(trimmed)
	if sanitized == "" || sanitized == trimmed {
		return fmt.Errorf("%w (payload snippet: %s)", directErr, summarizePayloadSnippet(trimmed))
	}
	if err := json.Unmarshal([]byte(sanitized), target); err != nil {
		return fmt.Errorf("%w (sanitized payload snippet: %s)", err, summarizePayloadSnippet(sanitized))
	}
	return nil
}

// sanitizeJSONPayload strips a surrounding code fence and, failing that,
// extracts the outermost JSON object or array embedded in prose.
func sanitizeJSONPayload(content string) string {
	trimmed := strings.TrimSpace(stripCodeFence(content))
	if trimmed == "" {
		return ""
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return trimmed
	}
	if start := strings.Index(trimmed, "{"); start >= 0 {
		if end := strings.LastIndex(trimmed, "}"); end > start {
			return strings.TrimSpace(trimmed[start : end+1])
		}
	}
	if start := strings.Index(trimmed, "["); start >= 0 {
		if end := strings.LastIndex(trimmed, "]"); end > start {
			return strings.TrimSpace(trimmed[start : end+1])
		}
	}
	return trimmed
}

func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	body := trimmed[3:]
	body = strings.TrimLeft(body, " \t\r\n")
	if len(body) >= 4 && strings.EqualFold(body[:4], "json") {
		body = strings.TrimLeft(body[4:], " \t\r\n")
	}
	if idx := strings.LastIndex(body, "```"); idx >= 0 {
		body = body[:idx]
	}
	return strings.TrimSpace(body)
}

func summarizePayloadSnippet(payload string) string {
	fields := strings.Fields(payload)
	if len(fields) == 0 {
		return "<empty>"
	}
	joined := strings.Join(fields, " ")
	runes := []rune(joined)
	if len(runes) > 160 {
		return string(runes[:160]) + "..."
	}
	return joined
}

type standardsEnvelope struct {
	Standards []standardPayload `json:"standards"`
}

type standardPayload struct {
	Name              string   `json:"name"`
	Evaluation        string   `json:"evaluation"`
	Rating            int      `json:"rating"`
	FollowupQuestions []string `json:"followup_questions"`
}

// toStandards validates the decoded payload and converts it to the pipeline
// model. Ratings outside [0,10] would corrupt downstream impact scoring, so
// they are rejected here.
func (e standardsEnvelope) toStandards() ([]analysis.CriticalThinkingStandard, error) {
	if e.Standards == nil {
		return nil, errors.New("response missing standards list")
	}
	standards := make([]analysis.CriticalThinkingStandard, 0, len(e.Standards))
	for _, std := range e.Standards {
		if std.Rating < 0 || std.Rating > 10 {
			return nil, fmt.Errorf("standard %q: rating %d outside 0-10", std.Name, std.Rating)
		}
		standards = append(standards, analysis.CriticalThinkingStandard{
			Name:              std.Name,
			Evaluation:        std.Evaluation,
			Rating:            std.Rating,
			FollowupQuestions: std.FollowupQuestions,
		})
	}
	return standards, nil
}

// standardsSchema constrains the evaluation response to the standards
// envelope shape.
func standardsSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"standards": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name": {
							Type:        genai.TypeString,
							Description: "Name of the standard",
						},
						"evaluation": {
							Type:        genai.TypeString,
							Description: "Evaluation of the standard",
						},
						"rating": {
							Type:        genai.TypeInteger,
							Description: "Rating of the standard - 0-10",
						},
						"followup_questions": {
							Type:        genai.TypeArray,
							Items:       &genai.Schema{Type: genai.TypeString},
							Description: "Followup questions for the standard",
						},
					},
					Required: []string{"name", "evaluation", "rating", "followup_questions"},
				},
			},
		},
		Required: []string{"standards"},
	}
}
