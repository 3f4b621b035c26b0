package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mhagen/assembly/internal/core/domain"
	"github.com/mhagen/assembly/internal/core/ports"
)

type resultRepository struct {
	db *sql.DB
}

func NewResultRepository(db *sql.DB) ports.ResultRepository {
	return &resultRepository{
		db: db,
	}
}

// Save publishes the result once per ballot: a concurrent publication loses
// the insert and reports stored=false, leaving the first record untouched.
func (r *resultRepository) Save(ctx context.Context, result *domain.Result) (bool, error) {
	boundaries, err := json.Marshal(result.Boundaries)
	if err != nil {
		return false, fmt.Errorf("failed to encode boundaries: %w", err)
	}
	var selections []byte
	if result.Selections != nil {
		selections, err = json.Marshal(result.Selections)
		if err != nil {
			return false, fmt.Errorf("failed to encode selections: %w", err)
		}
	}

	candidates := make([]string, 0, len(result.Candidates))
	for _, c := range result.Candidates {
		candidates = append(candidates, string(c))
	}

	query := `
		INSERT INTO results (ballot_id, candidates, bar_enabled, mode, raw_votes, ranking, boundaries, selections, vote_count, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (ballot_id) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query,
		result.BallotID, pq.Array(candidates), result.BarEnabled, result.Mode,
		pq.Array(result.RawVotes), result.Ranking, boundaries, selections,
		result.VoteCount, result.PublishedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to store result: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to store result: %w", err)
	}
	return affected > 0, nil
}

func (r *resultRepository) GetByBallot(ctx context.Context, ballotID uuid.UUID) (*domain.Result, error) {
	query := `
		SELECT ballot_id, candidates, bar_enabled, mode, raw_votes, ranking, boundaries, selections, vote_count, published_at
		FROM results
		WHERE ballot_id = $1
	`

	var result domain.Result
	var candidates, rawVotes []string
	var boundaries []byte
	var selections []byte
	err := r.db.QueryRowContext(ctx, query, ballotID).Scan(
		&result.BallotID, pq.Array(&candidates), &result.BarEnabled, &result.Mode,
		pq.Array(&rawVotes), &result.Ranking, &boundaries, &selections,
		&result.VoteCount, &result.PublishedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get result: %w", err)
	}

	for _, c := range candidates {
		result.Candidates = append(result.Candidates, domain.Candidate(c))
	}
	result.RawVotes = rawVotes
	if err := json.Unmarshal(boundaries, &result.Boundaries); err != nil {
		return nil, fmt.Errorf("failed to decode boundaries: %w", err)
	}
	if len(selections) > 0 {
		if err := json.Unmarshal(selections, &result.Selections); err != nil {
			return nil, fmt.Errorf("failed to decode selections: %w", err)
		}
	}
	return &result, nil
}
