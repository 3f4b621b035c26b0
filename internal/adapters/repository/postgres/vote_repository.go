package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/mhagen/assembly/internal/core/domain"
	"github.com/mhagen/assembly/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

// Upsert stores the vote keyed by (ballot, voter) and rotates the receipt in
// the same transaction. On conflict the existing row keeps its storage key;
// only ranking and submission time change.
func (r *voteRepository) Upsert(ctx context.Context, vote *domain.Vote, secretHash string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryVote := `
		INSERT INTO votes (id, ballot_id, voter_id, ranking, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (ballot_id, voter_id) DO UPDATE
		SET ranking = EXCLUDED.ranking,
		    created_at = EXCLUDED.created_at
		RETURNING id
	`
	var storedID uuid.UUID
	err = tx.QueryRowContext(ctx, queryVote, vote.ID, vote.BallotID, vote.VoterID, vote.Ranking, vote.CreatedAt).Scan(&storedID)
	if err != nil {
		return false, fmt.Errorf("failed to upsert vote: %w", err)
	}
	replaced := storedID != vote.ID
	vote.ID = storedID

	queryDrop := `DELETE FROM receipts WHERE vote_id = $1`
	if _, err := tx.ExecContext(ctx, queryDrop, storedID); err != nil {
		return false, fmt.Errorf("failed to drop previous receipt: %w", err)
	}

	queryReceipt := `
		INSERT INTO receipts (secret_hash, vote_id, ballot_id)
		VALUES ($1, $2, $3)
	`
	if _, err := tx.ExecContext(ctx, queryReceipt, secretHash, storedID, vote.BallotID); err != nil {
		return false, fmt.Errorf("failed to insert receipt: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return replaced, nil
}

func (r *voteRepository) ListByBallot(ctx context.Context, ballotID uuid.UUID) ([]*domain.Vote, error) {
	query := `
		SELECT id, ballot_id, ranking, created_at
		FROM votes
		WHERE ballot_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, ballotID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	defer rows.Close()

	var votes []*domain.Vote
	for rows.Next() {
		var vote domain.Vote
		if err := rows.Scan(&vote.ID, &vote.BallotID, &vote.Ranking, &vote.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, &vote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating votes: %w", err)
	}
	return votes, nil
}
