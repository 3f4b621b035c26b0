package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/mhagen/assembly/internal/core/domain"
)

type VoteRepository interface {
	// Upsert stores the vote keyed by (ballot, voter) and rotates the
	// voter's receipt to secretHash, atomically. A resubmission keeps the
	// existing storage key and reports replaced.
	Upsert(ctx context.Context, vote *domain.Vote, secretHash string) (replaced bool, err error)
	ListByBallot(ctx context.Context, ballotID uuid.UUID) ([]*domain.Vote, error)
}

type SubmitVoteInput struct {
	BallotID uuid.UUID
	VoterID  uuid.UUID

	// Preferential mode payload.
	Ranking string

	// Classical mode payload.
	Selected  []string
	RejectAll bool
}

type VoteService interface {
	// Submit validates and canonicalizes the payload against the ballot and
	// returns the receipt secret on acceptance.
	Submit(ctx context.Context, input SubmitVoteInput) (string, error)
}
