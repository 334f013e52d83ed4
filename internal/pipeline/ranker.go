package pipeline

import (
	"sort"

	"inquest/internal/analysis"
)

// diversityBonus is split evenly across a standard's questions so standards
// contributing fewer questions rank slightly higher per question.
const diversityBonus = 50.0

type rankedQuestion struct {
	standard string
	question string
	score    float64
}

// SelectQuestions picks up to limit follow-up questions across the supplied
// standards. Questions are ranked by the impact score of their standard plus
// the diversity bonus; weaker standards surface first. The first pass takes
// one question per standard in rank order, the second fills any remaining
// slots by rank while skipping question text that was already chosen. Ties
// keep the order the standards were supplied in.
func SelectQuestions(standards []analysis.CriticalThinkingStandard, limit int) []string {
	selected := []string{}
	if limit <= 0 {
		return selected
	}

	perStandard := make(map[string]int, len(standards))
	var ranked []rankedQuestion
	for _, standard := range standards {
		for _, question := range standard.FollowupQuestions {
			ranked = append(ranked, rankedQuestion{
				standard: standard.Name,
				question: question,
				score:    standard.ImpactScore(),
			})
			perStandard[standard.Name]++
		}
	}
	if len(ranked) == 0 {
		return selected
	}

	for i := range ranked {
		ranked[i].score += diversityBonus / float64(perStandard[ranked[i].standard])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	covered := make(map[string]bool, len(perStandard))
	for _, candidate := range ranked {
		if len(selected) >= limit {
			break
		}
		if covered[candidate.standard] {
			continue
		}
		selected = append(selected, candidate.question)
		covered[candidate.standard] = true
	}

	taken := make(map[string]bool, len(selected))
	for _, question := range selected {
		taken[question] = true
	}
	for _, candidate := range ranked {
		if len(selected) >= limit {
			break
		}
		if taken[candidate.question] {
			continue
		}
		selected = append(selected, candidate.question)
		taken[candidate.question] = true
	}
	return selected
}

// ImpactScores maps each standard to its raw impact score, without the
// diversity bonus applied during question selection.
func ImpactScores(standards []analysis.CriticalThinkingStandard) map[string]float64 {
	scores := make(map[string]float64, len(standards))
	for _, standard := range standards {
		scores[standard.Name] = standard.ImpactScore()
	}
	return scores
}
