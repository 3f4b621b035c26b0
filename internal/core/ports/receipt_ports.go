package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/mhagen/assembly/internal/core/domain"
)

type ReceiptRepository interface {
	GetVoteBySecretHash(ctx context.Context, secretHash string) (*domain.Vote, error)
	PurgeByAssembly(ctx context.Context, assemblyID uuid.UUID) error
}

type ReceiptService interface {
	// Verify returns the stored vote a secret belongs to. Unknown and
	// already-purged secrets are indistinguishable to the caller.
	Verify(ctx context.Context, secret string) (*domain.Vote, error)
}
