package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func parseAll(t *testing.T, set CandidateSet, raws ...string) []Preference {
	t.Helper()
	prefs := make([]Preference, 0, len(raws))
	for _, raw := range raws {
		pref, err := ParsePreference(raw, set)
		require.NoError(t, err)
		prefs = append(prefs, pref)
	}
	return prefs
}

func TestPairwiseMatrixTwoCandidates(t *testing.T) {
	set := CandidateSet{Candidates: []Candidate{"A", "B"}}
	votes := parseAll(t, set, "A>B", "B>A", "A=B")

	m := NewPairwiseMatrix(set, votes)

	require.Equal(t, 1, m.Count("A", "B"))
	require.Equal(t, 1, m.Count("B", "A"))
}

func TestPairwiseMatrixCountsTiesAsNoPreference(t *testing.T) {
	set := CandidateSet{Candidates: []Candidate{"A", "B", "C"}}
	votes := parseAll(t, set, "A=B>C", "C>A=B")

	m := NewPairwiseMatrix(set, votes)

	require.Equal(t, 0, m.Count("A", "B"))
	require.Equal(t, 0, m.Count("B", "A"))
	require.Equal(t, 1, m.Count("A", "C"))
	require.Equal(t, 1, m.Count("C", "A"))
	require.Equal(t, 1, m.Count("B", "C"))
	require.Equal(t, 1, m.Count("C", "B"))
}

func TestPairwiseMatrixIncludesBar(t *testing.T) {
	set := CandidateSet{Candidates: []Candidate{"A", "B"}, BarEnabled: true}
	votes := parseAll(t, set, "A>_bar_>B", "_bar_>A=B")

	m := NewPairwiseMatrix(set, votes)

	require.Equal(t, 1, m.Count("A", Bar))
	require.Equal(t, 1, m.Count(Bar, "A"))
	require.Equal(t, 2, m.Count(Bar, "B"))
	require.Equal(t, 0, m.Count("B", Bar))
}

func TestPairwiseMatrixIsRecomputable(t *testing.T) {
	set := CandidateSet{Candidates: []Candidate{"A", "B", "C"}}
	votes := parseAll(t, set, "A>B>C", "B>C>A", "C=A>B")

	first := NewPairwiseMatrix(set, votes)
	second := NewPairwiseMatrix(set, votes)

	for _, a := range set.All() {
		for _, b := range set.All() {
			if a == b {
				continue
			}
			require.Equal(t, first.Count(a, b), second.Count(a, b))
		}
	}
}
