package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhagen/assembly/internal/adapters/repository/memory"
	"github.com/mhagen/assembly/internal/core/domain"
	"github.com/mhagen/assembly/internal/core/ports"
)

func newBallotService(store *memory.Store) ports.BallotService {
	return NewBallotService(store, store.Ballots(), store, testLogger())
}

func createTestAssembly(t *testing.T, store *memory.Store) *domain.Assembly {
	t.Helper()
	assembly, err := newBallotService(store).CreateAssembly(context.Background(), "annual meeting")
	require.NoError(t, err)
	return assembly
}

func TestCreateAssemblyRequiresTitle(t *testing.T) {
	store := memory.NewStore()
	_, err := newBallotService(store).CreateAssembly(context.Background(), "  ")
	assert.Error(t, err)
}

func TestCreateBallot(t *testing.T) {
	store := memory.NewStore()
	assembly := createTestAssembly(t, store)
	service := newBallotService(store)

	ballot, err := service.Create(context.Background(), ports.CreateBallotInput{
		AssemblyID: assembly.ID,
		Title:      "board election",
		Candidates: []string{"Alice", "Bob", "Carol"},
		BarEnabled: true,
		Mode:       domain.ModePreferential,
	})
	require.NoError(t, err)

	assert.Equal(t, assembly.ID, ballot.AssemblyID)
	assert.Equal(t, domain.BallotOpen, ballot.Status)
	assert.Equal(t, []domain.Candidate{"Alice", "Bob", "Carol"}, ballot.Candidates)
	assert.True(t, ballot.BarEnabled)

	fetched, err := service.Get(context.Background(), ballot.ID.String())
	require.NoError(t, err)
	assert.Equal(t, ballot.Title, fetched.Title)
}

func TestCreateBallotValidation(t *testing.T) {
	store := memory.NewStore()
	assembly := createTestAssembly(t, store)
	service := newBallotService(store)

	cases := map[string]ports.CreateBallotInput{
		"empty title": {
			AssemblyID: assembly.ID, Title: " ", Candidates: []string{"A"}, Mode: domain.ModePreferential,
		},
		"unknown mode": {
			AssemblyID: assembly.ID, Title: "t", Candidates: []string{"A"}, Mode: "approval",
		},
		"negative max selections": {
			AssemblyID: assembly.ID, Title: "t", Candidates: []string{"A"}, Mode: domain.ModeClassical, MaxSelections: -1,
		},
		"no candidates": {
			AssemblyID: assembly.ID, Title: "t", Mode: domain.ModePreferential,
		},
		"duplicate candidate": {
			AssemblyID: assembly.ID, Title: "t", Candidates: []string{"A", "A"}, Mode: domain.ModePreferential,
		},
		"reserved token": {
			AssemblyID: assembly.ID, Title: "t", Candidates: []string{"A", "_bar_"}, Mode: domain.ModePreferential,
		},
		"relation operator in token": {
			AssemblyID: assembly.ID, Title: "t", Candidates: []string{"A>B"}, Mode: domain.ModePreferential,
		},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := service.Create(context.Background(), input)
			assert.Error(t, err)
		})
	}
}

func TestCreateBallotUnknownAssembly(t *testing.T) {
	store := memory.NewStore()
	_, err := newBallotService(store).Create(context.Background(), ports.CreateBallotInput{
		AssemblyID: uuid.New(),
		Title:      "board election",
		Candidates: []string{"A"},
		Mode:       domain.ModePreferential,
	})
	assert.ErrorIs(t, err, domain.ErrAssemblyNotFound)
}

func TestCloseBallot(t *testing.T) {
	store := memory.NewStore()
	assembly := createTestAssembly(t, store)
	service := newBallotService(store)

	ballot, err := service.Create(context.Background(), ports.CreateBallotInput{
		AssemblyID: assembly.ID,
		Title:      "board election",
		Candidates: []string{"A", "B"},
		Mode:       domain.ModePreferential,
	})
	require.NoError(t, err)

	require.NoError(t, service.Close(context.Background(), ballot.ID.String()))

	closed, err := service.Get(context.Background(), ballot.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.BallotClosed, closed.Status)
	require.NotNil(t, closed.ClosedAt)

	// A second close is rejected, not silently absorbed.
	err = service.Close(context.Background(), ballot.ID.String())
	assert.ErrorIs(t, err, domain.ErrBallotNotOpen)
}

func TestBallotIDValidation(t *testing.T) {
	store := memory.NewStore()
	service := newBallotService(store)

	_, err := service.Get(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidBallotID)

	err = service.Close(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidBallotID)

	err = service.ConcludeAssembly(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidAssemblyID)
}

func TestConcludeAssemblyIsIdempotent(t *testing.T) {
	store := memory.NewStore()
	assembly := createTestAssembly(t, store)
	service := newBallotService(store)

	require.NoError(t, service.ConcludeAssembly(context.Background(), assembly.ID.String()))
	require.NoError(t, service.ConcludeAssembly(context.Background(), assembly.ID.String()))

	fetched, err := store.GetByID(context.Background(), assembly.ID)
	require.NoError(t, err)
	assert.True(t, fetched.Concluded)
}
