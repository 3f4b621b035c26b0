package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundaryStatsFortyFiveVoters(t *testing.T) {
	set, ballots := fortyFiveVoterElection()
	votes := parseAll(t, set, repeat(ballots)...)

	ranking := SchulzeRanking(NewPairwiseMatrix(set, votes))
	require.Equal(t, "E>A>C>B>D", ranking.String())

	stats := BoundaryStats(ranking, votes)
	require.Len(t, stats, 4)
	assert.Equal(t, BoundaryStat{Pro: 23, Contra: 22}, stats[0])
	assert.Equal(t, BoundaryStat{Pro: 26, Contra: 19}, stats[1])
	assert.Equal(t, BoundaryStat{Pro: 29, Contra: 16}, stats[2])
	assert.Equal(t, BoundaryStat{Pro: 33, Contra: 12}, stats[3])
}

func TestBoundaryStatsCountAbstentionsNeither(t *testing.T) {
	set := CandidateSet{Candidates: []Candidate{"A", "B"}}
	votes := parseAll(t, set, "A>B", "A>B", "B>A", "A=B")

	ranking := SchulzeRanking(NewPairwiseMatrix(set, votes))
	require.Equal(t, "A>B", ranking.String())

	stats := BoundaryStats(ranking, votes)
	require.Len(t, stats, 1)
	// The tied vote supports neither side of the boundary.
	assert.Equal(t, BoundaryStat{Pro: 2, Contra: 1}, stats[0])
}

func TestBoundaryStatsSingleLevel(t *testing.T) {
	set := CandidateSet{Candidates: []Candidate{"A", "B"}}
	votes := parseAll(t, set, "A=B")

	ranking := SchulzeRanking(NewPairwiseMatrix(set, votes))
	assert.Empty(t, BoundaryStats(ranking, votes))
}

func TestSelectionCounts(t *testing.T) {
	set := CandidateSet{Candidates: []Candidate{"A", "B", "C", "D"}, BarEnabled: true}

	first, err := ClassicalPreference([]Candidate{"A", "B", "D"}, false, set, 3)
	require.NoError(t, err)
	second, err := ClassicalPreference([]Candidate{"A"}, false, set, 3)
	require.NoError(t, err)
	abstain, err := ClassicalPreference(nil, false, set, 3)
	require.NoError(t, err)
	approveAll, err := ClassicalPreference([]Candidate{"A", "B", "C", "D"}, false, set, 3)
	require.NoError(t, err)
	reject, err := ClassicalPreference(nil, true, set, 3)
	require.NoError(t, err)

	counts := SelectionCounts(set, []Preference{first, second, abstain, approveAll, reject})

	assert.Equal(t, 3, counts["A"])
	assert.Equal(t, 2, counts["B"])
	assert.Equal(t, 1, counts["C"])
	assert.Equal(t, 2, counts["D"])
}

func TestResultEquivalent(t *testing.T) {
	base := &Result{
		Ranking:    "A>B",
		VoteCount:  2,
		RawVotes:   []string{"A>B", "B>A"},
		Boundaries: []BoundaryStat{{Pro: 1, Contra: 1}},
	}

	same := &Result{
		Ranking:    "A>B",
		VoteCount:  2,
		RawVotes:   []string{"B>A", "A>B"},
		Boundaries: []BoundaryStat{{Pro: 1, Contra: 1}},
	}
	assert.True(t, base.Equivalent(same))

	tampered := &Result{
		Ranking:    "B>A",
		VoteCount:  2,
		RawVotes:   []string{"A>B", "B>A"},
		Boundaries: []BoundaryStat{{Pro: 1, Contra: 1}},
	}
	assert.False(t, base.Equivalent(tampered))

	extraVote := &Result{
		Ranking:    "A>B",
		VoteCount:  3,
		RawVotes:   []string{"A>B", "B>A", "A>B"},
		Boundaries: []BoundaryStat{{Pro: 2, Contra: 1}},
	}
	assert.False(t, base.Equivalent(extraVote))
}
