package domain

import (
	"sort"

	m "winnow.dev/pkg/winnow/internal/model"
)

// SetCover greedily selects a subset of evaluations whose combined kill
// sets cover every candidate killed by at least one test case. Exact set
// cover is NP-hard; the greedy approximation repeatedly takes the test
// case with the largest marginal contribution to the still-uncovered
// universe, breaking ties by input order so the result is reproducible.
// Candidates no test case kills are unreachable and simply never covered.
func SetCover(evals []m.Evaluation) []m.Evaluation {
	uncovered := CoverageUniverse(evals)
	selected := make([]bool, len(evals))

	var concise []m.Evaluation

	for len(uncovered) > 0 {
		best := -1
		bestGain := 0

		for i, eval := range evals {
			if selected[i] {
				continue
			}

			gain := 0

			for id := range eval.Kills {
				if _, ok := uncovered[id]; ok {
					gain++
				}
			}

			if gain > bestGain {
				best = i
				bestGain = gain
			}
		}

		// No remaining test case contributes anything new.
		if best == -1 {
			break
		}

		selected[best] = true

		concise = append(concise, evals[best])

		for id := range evals[best].Kills {
			delete(uncovered, id)
		}
	}

	return concise
}

// CoverageUniverse returns the set of candidate identifiers killed by at
// least one evaluation.
func CoverageUniverse(evals []m.Evaluation) map[string]struct{} {
	universe := make(map[string]struct{})

	for _, eval := range evals {
		for id := range eval.Kills {
			universe[id] = struct{}{}
		}
	}

	return universe
}

// UnreachableCandidates returns, sorted, the candidate identifiers that no
// evaluation kills.
func UnreachableCandidates(evals []m.Evaluation, candidates []m.Candidate) []string {
	universe := CoverageUniverse(evals)

	var unreachable []string

	for _, candidate := range candidates {
		if _, ok := universe[candidate.ID]; !ok {
			unreachable = append(unreachable, candidate.ID)
		}
	}

	sort.Strings(unreachable)

	return unreachable
}

// SortedKills returns an evaluation's kill set as a sorted slice, for
// stable presentation and persistence.
func SortedKills(eval m.Evaluation) []string {
	kills := make([]string, 0, len(eval.Kills))
	for id := range eval.Kills {
		kills = append(kills, id)
	}

	sort.Strings(kills)

	return kills
}
