// Package recommend ranks improvement actions triggered by questionnaire answers.
package recommend

import (
	"sort"

	"github.com/jonathan/sales-diagnostic/internal/projection"
	"github.com/jonathan/sales-diagnostic/internal/types"
)

// DefaultTop is the number of recommendations shown when the caller does not ask.
const DefaultTop = 3

// Recommend returns every triggered recommendation, ordered by priority then impact.
// The result is empty, never nil, when no rule fires.
func Recommend(a types.AnswerRecord) []types.Recommendation {
	p := projection.Project(a)

	recs := []types.Recommendation{}
	for _, r := range catalog {
		if r.trigger(a) {
			recs = append(recs, r.build(a, p))
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Priority != recs[j].Priority {
			return recs[i].Priority < recs[j].Priority
		}
		return recs[i].Impact.Rank() < recs[j].Impact.Rank()
	})
	return recs
}

// SelectQuickWins keeps the first n quick wins of an already ranked list.
func SelectQuickWins(recs []types.Recommendation, n int) []types.Recommendation {
	wins := []types.Recommendation{}
	for _, r := range recs {
		if r.QuickWin {
			wins = append(wins, r)
		}
	}
	return Top(wins, n)
}

// Top truncates an already ranked list to n entries. n <= 0 yields an empty list.
func Top(recs []types.Recommendation, n int) []types.Recommendation {
	if n <= 0 {
		return []types.Recommendation{}
	}
	if n < len(recs) {
		return recs[:n]
	}
	return recs
}
