package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/mhagen/assembly/internal/core/domain"
	"github.com/mhagen/assembly/internal/core/ports"
)

type receiptRepository struct {
	db *sql.DB
}

func NewReceiptRepository(db *sql.DB) ports.ReceiptRepository {
	return &receiptRepository{
		db: db,
	}
}

func (r *receiptRepository) GetVoteBySecretHash(ctx context.Context, secretHash string) (*domain.Vote, error) {
	query := `
		SELECT v.id, v.ballot_id, v.ranking, v.created_at
		FROM receipts rc
		JOIN votes v ON v.id = rc.vote_id
		WHERE rc.secret_hash = $1
	`

	var vote domain.Vote
	err := r.db.QueryRowContext(ctx, query, secretHash).Scan(
		&vote.ID, &vote.BallotID, &vote.Ranking, &vote.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrReceiptNotFound
		}
		return nil, fmt.Errorf("failed to look up receipt: %w", err)
	}
	return &vote, nil
}

func (r *receiptRepository) PurgeByAssembly(ctx context.Context, assemblyID uuid.UUID) error {
	query := `
		DELETE FROM receipts rc
		USING ballots b
		WHERE rc.ballot_id = b.id AND b.assembly_id = $1
	`
	_, err := r.db.ExecContext(ctx, query, assemblyID)
	if err != nil {
		return fmt.Errorf("failed to purge receipts for assembly %s: %w", assemblyID, err)
	}
	return nil
}
