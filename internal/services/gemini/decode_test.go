package gemini

import (
	"strings"
	"testing"
)

func TestDecodeJSONAcceptsPlainPayload(t *testing.T) {
	var target struct {
		Name string `json:"name"`
	}
	if err := DecodeJSON(`{"name":"Clarity"}`, &target); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if target.Name != "Clarity" {
		t.Fatalf("expected Clarity, got %q", target.Name)
	}
}

func TestDecodeJSONStripsCodeFence(t *testing.T) {
	var target struct {
		Rating int `json:"rating"`
	}
	payload := "```json\n{\"rating\": 6}\n```"
	if err := DecodeJSON(payload, &target); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if target.Rating != 6 {
		t.Fatalf("expected rating 6, got %d", target.Rating)
	}
}

func TestDecodeJSONExtractsEmbeddedObject(t *testing.T) {
	var target struct {
		Done bool `json:"done"`
	}
	payload := `Here is the assessment you asked for: {"done": true} hope it helps.`
	if err := DecodeJSON(payload, &target); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if !target.Done {
		t.Fatal("expected done=true from embedded object")
	}
}

func TestDecodeJSONRejectsEmptyPayload(t *testing.T) {
	var target map[string]any
	if err := DecodeJSON("   \n", &target); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestDecodeJSONReportsSnippetOnFailure(t *testing.T) {
	var target map[string]any
	err := DecodeJSON("<<not even close to json>>", &target)
	if err == nil {
		t.Fatal("expected error for malformed payload")
	}
	if !strings.Contains(err.Error(), "payload snippet") {
		t.Fatalf("expected payload snippet in error, got %v", err)
	}
}

func TestToStandardsRejectsNegativeRating(t *testing.T) {
	envelope := standardsEnvelope{Standards: []standardPayload{
		{Name: "Breadth", Evaluation: "n/a", Rating: -1},
	}}
	if _, err := envelope.toStandards(); err == nil {
		t.Fatal("expected error for negative rating")
	}
}

func TestToStandardsConvertsPayload(t *testing.T) {
	envelope := standardsEnvelope{Standards: []standardPayload{
		{Name: "Precision", Evaluation: "Lacks figures.", Rating: 3, FollowupQuestions: []string{"Could you be more exact?"}},
	}}
	standards, err := envelope.toStandards()
	if err != nil {
		t.Fatalf("toStandards: %v", err)
	}
	if len(standards) != 1 {
		t.Fatalf("expected 1 standard, got %d", len(standards))
	}
	std := standards[0]
	if std.Name != "Precision" || std.Rating != 3 || len(std.FollowupQuestions) != 1 {
		t.Fatalf("unexpected conversion: %+v", std)
	}
	if std.ImpactScore() != 70 {
		t.Fatalf("expected impact score 70, got %v", std.ImpactScore())
	}
}
