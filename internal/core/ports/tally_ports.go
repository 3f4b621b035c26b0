package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/mhagen/assembly/internal/core/domain"
)

type ResultRepository interface {
	// Save publishes the result unless one already exists for the ballot;
	// stored reports whether this call won the publication.
	Save(ctx context.Context, result *domain.Result) (stored bool, err error)
	GetByBallot(ctx context.Context, ballotID uuid.UUID) (*domain.Result, error)
}

type TallyService interface {
	// Tally computes the aggregate result of a closed ballot, publishing it
	// on first call and verifying recomputations against the published
	// record afterwards.
	Tally(ctx context.Context, ballotID uuid.UUID) (*domain.Result, error)
	TallyAllClosed(ctx context.Context) error
	Result(ctx context.Context, ballotID uuid.UUID) (*domain.Result, error)
}
