package pipeline

import (
	"reflect"
	"testing"

	"inquest/internal/analysis"
)

func TestSelectQuestionsCoversEachStandardFirst(t *testing.T) {
	standards := []analysis.CriticalThinkingStandard{
		{Name: "Accuracy", Rating: 2, FollowupQuestions: []string{
			"How were the figures verified?",
			"What source provided the raw numbers?",
		}},
		{Name: "Clarity", Rating: 8, FollowupQuestions: []string{
			"Could the examples be more concrete?",
		}},
	}

	got := SelectQuestions(standards, 2)
	want := []string{"How were the figures verified?", "Could the examples be more concrete?"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSelectQuestionsFillsRemainingByRank(t *testing.T) {
	standards := []analysis.CriticalThinkingStandard{
		{Name: "Accuracy", Rating: 2, FollowupQuestions: []string{
			"How were the figures verified?",
			"What source provided the raw numbers?",
		}},
		{Name: "Clarity", Rating: 8, FollowupQuestions: []string{
			"Could the examples be more concrete?",
		}},
	}

	got := SelectQuestions(standards, 3)
	want := []string{
		"How were the figures verified?",
		"Could the examples be more concrete?",
		"What source provided the raw numbers?",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSelectQuestionsSkipsDuplicateText(t *testing.T) {
	standards := []analysis.CriticalThinkingStandard{
		{Name: "Relevance", Rating: 5, FollowupQuestions: []string{
			"Does the aside about funding matter?",
			"Does the aside about funding matter?",
			"How does the anecdote support the thesis?",
		}},
	}

	got := SelectQuestions(standards, 3)
	want := []string{
		"Does the aside about funding matter?",
		"How does the anecdote support the thesis?",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected duplicates to collapse, got %v", got)
	}
}

func TestSelectQuestionsTruncatesToLimit(t *testing.T) {
	standards := []analysis.CriticalThinkingStandard{
		{Name: "Depth", Rating: 1, FollowupQuestions: []string{
			"What is the basis for the central claim?",
			"Which counterarguments were considered?",
		}},
		{Name: "Breadth", Rating: 5, FollowupQuestions: []string{
			"Which sources back the statistics?",
			"What perspectives are missing?",
		}},
		{Name: "Precision", Rating: 9, FollowupQuestions: []string{
			"Could the timeline be more exact?",
			"What margin of error applies?",
		}},
	}

	got := SelectQuestions(standards, 2)
	want := []string{"What is the basis for the central claim?", "Which sources back the statistics?"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSelectQuestionsKeepsSuppliedOrderOnTies(t *testing.T) {
	standards := []analysis.CriticalThinkingStandard{
		{Name: "Logic", Rating: 5, FollowupQuestions: []string{"Does the conclusion follow?"}},
		{Name: "Fairness", Rating: 5, FollowupQuestions: []string{"Were opposing views represented?"}},
	}

	got := SelectQuestions(standards, 5)
	want := []string{"Does the conclusion follow?", "Were opposing views represented?"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected tie to keep supplied order, got %v", got)
	}
}

func TestSelectQuestionsEmptyInputs(t *testing.T) {
	if got := SelectQuestions(nil, 6); got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice for no standards, got %v", got)
	}
	standards := []analysis.CriticalThinkingStandard{{Name: "Clarity", Rating: 7}}
	if got := SelectQuestions(standards, 6); got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice for no questions, got %v", got)
	}
	standards[0].FollowupQuestions = []string{"Anything unclear?"}
	if got := SelectQuestions(standards, 0); got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice for zero limit, got %v", got)
	}
}

func TestImpactScores(t *testing.T) {
	standards := []analysis.CriticalThinkingStandard{
		{Name: "Depth", Rating: 3},
		{Name: "Accuracy", Rating: 10},
	}

	scores := ImpactScores(standards)
	if len(scores) != 2 {
		t.Fatalf("expected 2 scores, got %d", len(scores))
	}
	if scores["Depth"] != 70 {
		t.Fatalf("expected impact 70 for Depth, got %v", scores["Depth"])
	}
	if scores["Accuracy"] != 0 {
		t.Fatalf("expected impact 0 for Accuracy, got %v", scores["Accuracy"])
	}
}
