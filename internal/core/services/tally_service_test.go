package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhagen/assembly/internal/adapters/repository/memory"
	"github.com/mhagen/assembly/internal/core/domain"
	"github.com/mhagen/assembly/internal/core/ports"
)

func submitRankings(t *testing.T, store *memory.Store, ballotID uuid.UUID, rankings ...string) {
	t.Helper()
	service := NewVoteService(store.Ballots(), store, testLogger())
	for _, ranking := range rankings {
		_, err := service.Submit(context.Background(), ports.SubmitVoteInput{
			BallotID: ballotID,
			VoterID:  uuid.New(),
			Ranking:  ranking,
		})
		require.NoError(t, err)
	}
}

func TestTallyPublishesResult(t *testing.T) {
	store := memory.NewStore()
	ballot := preferentialBallot(t, store, "A", "B", "C")
	submitRankings(t, store, ballot.ID, "A>B>C", "A>B>C", "B>A>C")
	require.NoError(t, store.Ballots().Close(context.Background(), ballot.ID, time.Now()))

	service := NewTallyService(store.Ballots(), store, store.Results(), testLogger())
	result, err := service.Tally(context.Background(), ballot.ID)
	require.NoError(t, err)

	assert.Equal(t, "A>B>C", result.Ranking)
	assert.Equal(t, 3, result.VoteCount)
	assert.Equal(t, []domain.BoundaryStat{{Pro: 2, Contra: 1}, {Pro: 3, Contra: 0}}, result.Boundaries)
	assert.False(t, result.PublishedAt.IsZero())

	stored, err := service.Result(context.Background(), ballot.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Ranking, stored.Ranking)
}

func TestTallyRequiresClosedBallot(t *testing.T) {
	store := memory.NewStore()
	ballot := preferentialBallot(t, store, "A", "B")

	service := NewTallyService(store.Ballots(), store, store.Results(), testLogger())
	_, err := service.Tally(context.Background(), ballot.ID)
	assert.ErrorIs(t, err, domain.ErrBallotNotClosed)
}

func TestTallyEmptyBallot(t *testing.T) {
	store := memory.NewStore()
	ballot := preferentialBallot(t, store, "A", "B")
	require.NoError(t, store.Ballots().Close(context.Background(), ballot.ID, time.Now()))

	service := NewTallyService(store.Ballots(), store, store.Results(), testLogger())
	result, err := service.Tally(context.Background(), ballot.ID)
	require.NoError(t, err)
	assert.Equal(t, "A=B", result.Ranking)
	assert.Zero(t, result.VoteCount)
}

func TestTallyIsIdempotent(t *testing.T) {
	store := memory.NewStore()
	ballot := preferentialBallot(t, store, "A", "B", "C")
	submitRankings(t, store, ballot.ID, "C>A>B", "C>B>A", "A>C>B")
	require.NoError(t, store.Ballots().Close(context.Background(), ballot.ID, time.Now()))

	service := NewTallyService(store.Ballots(), store, store.Results(), testLogger())
	first, err := service.Tally(context.Background(), ballot.ID)
	require.NoError(t, err)

	// A re-run recomputes, audits against the published record and returns it.
	second, err := service.Tally(context.Background(), ballot.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Ranking, second.Ranking)
	assert.Equal(t, first.PublishedAt.Unix(), second.PublishedAt.Unix())
}

func TestTallyDetectsTamperedResult(t *testing.T) {
	store := memory.NewStore()
	ballot := preferentialBallot(t, store, "A", "B")
	submitRankings(t, store, ballot.ID, "A>B", "A>B")
	require.NoError(t, store.Ballots().Close(context.Background(), ballot.ID, time.Now()))

	// Seed a record that does not match the stored votes.
	_, err := store.Results().Save(context.Background(), &domain.Result{
		BallotID:    ballot.ID,
		Candidates:  ballot.Candidates,
		Mode:        domain.ModePreferential,
		RawVotes:    []string{"B>A", "B>A"},
		Ranking:     "B>A",
		Boundaries:  []domain.BoundaryStat{{Pro: 2, Contra: 0}},
		VoteCount:   2,
		PublishedAt: time.Now(),
	})
	require.NoError(t, err)

	service := NewTallyService(store.Ballots(), store, store.Results(), testLogger())
	_, err = service.Tally(context.Background(), ballot.ID)
	assert.ErrorIs(t, err, domain.ErrResultMismatch)
}

func TestTallyClassicalSelectionCounts(t *testing.T) {
	store := memory.NewStore()
	ballot := &domain.Ballot{
		ID:            uuid.New(),
		AssemblyID:    uuid.New(),
		Title:         "committee election",
		Candidates:    []domain.Candidate{"A", "B", "C"},
		BarEnabled:    true,
		Mode:          domain.ModeClassical,
		MaxSelections: 2,
	}
	seedBallot(t, store, ballot)

	voteService := NewVoteService(store.Ballots(), store, testLogger())
	for _, selected := range [][]string{{"A", "B"}, {"A"}, {"A", "C"}} {
		_, err := voteService.Submit(context.Background(), ports.SubmitVoteInput{
			BallotID: ballot.ID,
			VoterID:  uuid.New(),
			Selected: selected,
		})
		require.NoError(t, err)
	}
	require.NoError(t, store.Ballots().Close(context.Background(), ballot.ID, time.Now()))

	service := NewTallyService(store.Ballots(), store, store.Results(), testLogger())
	result, err := service.Tally(context.Background(), ballot.ID)
	require.NoError(t, err)

	assert.Equal(t, map[domain.Candidate]int{"A": 3, "B": 1, "C": 1}, result.Selections)
	assert.Equal(t, 3, result.VoteCount)
}

func TestTallyAllClosed(t *testing.T) {
	store := memory.NewStore()
	first := preferentialBallot(t, store, "A", "B")
	second := preferentialBallot(t, store, "X", "Y")
	open := preferentialBallot(t, store, "P", "Q")

	submitRankings(t, store, first.ID, "A>B")
	submitRankings(t, store, second.ID, "Y>X", "Y>X")
	submitRankings(t, store, open.ID, "P>Q")

	require.NoError(t, store.Ballots().Close(context.Background(), first.ID, time.Now()))
	require.NoError(t, store.Ballots().Close(context.Background(), second.ID, time.Now()))

	service := NewTallyService(store.Ballots(), store, store.Results(), testLogger())
	require.NoError(t, service.TallyAllClosed(context.Background()))

	result, err := service.Result(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, "A>B", result.Ranking)

	result, err = service.Result(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Y>X", result.Ranking)

	// Open ballots stay untallied.
	_, err = service.Result(context.Background(), open.ID)
	assert.ErrorIs(t, err, domain.ErrResultNotFound)
}
