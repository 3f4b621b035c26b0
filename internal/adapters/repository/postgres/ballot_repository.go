package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mhagen/assembly/internal/core/domain"
	"github.com/mhagen/assembly/internal/core/ports"
)

type ballotRepository struct {
	db *sql.DB
}

func NewBallotRepository(db *sql.DB) ports.BallotRepository {
	return &ballotRepository{
		db: db,
	}
}

func (r *ballotRepository) Save(ctx context.Context, ballot *domain.Ballot) error {
	query := `
		INSERT INTO ballots (id, assembly_id, title, candidates, bar_enabled, mode, max_selections, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	candidates := make([]string, 0, len(ballot.Candidates))
	for _, c := range ballot.Candidates {
		candidates = append(candidates, string(c))
	}

	_, err := r.db.ExecContext(ctx, query,
		ballot.ID, ballot.AssemblyID, ballot.Title, pq.Array(candidates),
		ballot.BarEnabled, ballot.Mode, ballot.MaxSelections, ballot.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ballot: %w", err)
	}
	return nil
}

func (r *ballotRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ballot, error) {
	query := `
		SELECT id, assembly_id, title, candidates, bar_enabled, mode, max_selections, status, created_at, closed_at
		FROM ballots
		WHERE id = $1
	`

	var ballot domain.Ballot
	var candidates []string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ballot.ID, &ballot.AssemblyID, &ballot.Title, pq.Array(&candidates),
		&ballot.BarEnabled, &ballot.Mode, &ballot.MaxSelections, &ballot.Status,
		&ballot.CreatedAt, &ballot.ClosedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrBallotNotFound
		}
		return nil, fmt.Errorf("failed to get ballot: %w", err)
	}

	for _, c := range candidates {
		ballot.Candidates = append(ballot.Candidates, domain.Candidate(c))
	}
	return &ballot, nil
}

func (r *ballotRepository) Close(ctx context.Context, id uuid.UUID, closedAt time.Time) error {
	query := `
		UPDATE ballots SET status = $1, closed_at = $2
		WHERE id = $3 AND status = $4
	`
	res, err := r.db.ExecContext(ctx, query, domain.BallotClosed, closedAt, id, domain.BallotOpen)
	if err != nil {
		return fmt.Errorf("failed to close ballot: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to close ballot: %w", err)
	}
	if affected == 0 {
		// Either the ballot does not exist or it was closed already.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return domain.ErrBallotNotOpen
	}
	return nil
}

func (r *ballotRepository) ListClosedUntallied(ctx context.Context) ([]*domain.Ballot, error) {
	query := `
		SELECT b.id, b.assembly_id, b.title, b.candidates, b.bar_enabled, b.mode, b.max_selections, b.status, b.created_at, b.closed_at
		FROM ballots b
		LEFT JOIN results r ON b.id = r.ballot_id
		WHERE b.status = $1 AND r.ballot_id IS NULL
		ORDER BY b.closed_at
	`
	rows, err := r.db.QueryContext(ctx, query, domain.BallotClosed)
	if err != nil {
		return nil, fmt.Errorf("failed to list closed ballots: %w", err)
	}
	defer rows.Close()

	var ballots []*domain.Ballot
	for rows.Next() {
		var ballot domain.Ballot
		var candidates []string
		if err := rows.Scan(
			&ballot.ID, &ballot.AssemblyID, &ballot.Title, pq.Array(&candidates),
			&ballot.BarEnabled, &ballot.Mode, &ballot.MaxSelections, &ballot.Status,
			&ballot.CreatedAt, &ballot.ClosedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ballot: %w", err)
		}
		for _, c := range candidates {
			ballot.Candidates = append(ballot.Candidates, domain.Candidate(c))
		}
		ballots = append(ballots, &ballot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ballots: %w", err)
	}
	return ballots, nil
}
