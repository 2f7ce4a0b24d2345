package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	m "winnow.dev/pkg/winnow/internal/model"
)

func evalWithKills(arg int, kills ...string) m.Evaluation {
	set := make(map[string]struct{}, len(kills))
	for _, id := range kills {
		set[id] = struct{}{}
	}

	return m.Evaluation{
		Case:  m.NewTestCase([]m.Value{m.NewInt(arg)}),
		Kills: set,
	}
}

func TestSetCover_PairwiseOverlap(t *testing.T) {
	// Three candidates, each killed by two of three cases. Any single
	// case covers two candidates, so two cases suffice and are needed.
	evals := []m.Evaluation{
		evalWithKills(1, "a", "b"),
		evalWithKills(2, "b", "c"),
		evalWithKills(3, "a", "c"),
	}

	concise := SetCover(evals)
	require.Len(t, concise, 2)

	covered := CoverageUniverse(concise)
	require.Len(t, covered, 3)
}

func TestSetCover_FirstCaseWinsTies(t *testing.T) {
	evals := []m.Evaluation{
		evalWithKills(1, "a"),
		evalWithKills(2, "a"),
	}

	concise := SetCover(evals)
	require.Len(t, concise, 1)
	require.Equal(t, evals[0].Case.Key(), concise[0].Case.Key())
}

func TestSetCover_GreedyPicksLargestGainFirst(t *testing.T) {
	evals := []m.Evaluation{
		evalWithKills(1, "a"),
		evalWithKills(2, "a", "b", "c"),
		evalWithKills(3, "d"),
	}

	concise := SetCover(evals)
	require.Len(t, concise, 2)
	require.Equal(t, evals[1].Case.Key(), concise[0].Case.Key())
	require.Equal(t, evals[2].Case.Key(), concise[1].Case.Key())
}

func TestSetCover_Deterministic(t *testing.T) {
	evals := []m.Evaluation{
		evalWithKills(1, "a", "b"),
		evalWithKills(2, "b", "c"),
		evalWithKills(3, "c", "d"),
		evalWithKills(4, "d", "a"),
	}

	first := SetCover(evals)
	second := SetCover(evals)
	require.Equal(t, first, second)
}

func TestSetCover_NoKillsAnywhere(t *testing.T) {
	evals := []m.Evaluation{evalWithKills(1), evalWithKills(2)}

	require.Empty(t, SetCover(evals))
	require.Empty(t, SetCover(nil))
}

func TestSetCover_DoesNotMutateInput(t *testing.T) {
	evals := []m.Evaluation{
		evalWithKills(1, "a", "b"),
		evalWithKills(2, "b"),
	}

	SetCover(evals)

	require.Len(t, evals[0].Kills, 2)
	require.Len(t, evals[1].Kills, 1)
}

func TestUnreachableCandidates(t *testing.T) {
	evals := []m.Evaluation{evalWithKills(1, "a")}
	candidates := []m.Candidate{
		{ID: "c"},
		{ID: "a"},
		{ID: "b"},
	}

	require.Equal(t, []string{"b", "c"}, UnreachableCandidates(evals, candidates))
}

func TestUnreachableCandidates_AllCovered(t *testing.T) {
	evals := []m.Evaluation{evalWithKills(1, "a", "b")}
	candidates := []m.Candidate{{ID: "a"}, {ID: "b"}}

	require.Empty(t, UnreachableCandidates(evals, candidates))
}

func TestSortedKills(t *testing.T) {
	eval := evalWithKills(1, "z", "a", "m")

	require.Equal(t, []string{"a", "m", "z"}, SortedKills(eval))
}
