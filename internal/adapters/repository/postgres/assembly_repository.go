package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/mhagen/assembly/internal/core/domain"
	"github.com/mhagen/assembly/internal/core/ports"
)

type assemblyRepository struct {
	db *sql.DB
}

func NewAssemblyRepository(db *sql.DB) ports.AssemblyRepository {
	return &assemblyRepository{
		db: db,
	}
}

func (r *assemblyRepository) Save(ctx context.Context, assembly *domain.Assembly) error {
	query := `
		INSERT INTO assemblies (id, title, concluded)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.ExecContext(ctx, query, assembly.ID, assembly.Title, assembly.Concluded)
	if err != nil {
		return fmt.Errorf("failed to insert assembly: %w", err)
	}
	return nil
}

func (r *assemblyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Assembly, error) {
	query := `
		SELECT id, title, concluded, created_at
		FROM assemblies
		WHERE id = $1
	`

	var assembly domain.Assembly
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&assembly.ID, &assembly.Title, &assembly.Concluded, &assembly.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrAssemblyNotFound
		}
		return nil, fmt.Errorf("failed to get assembly: %w", err)
	}
	return &assembly, nil
}

func (r *assemblyRepository) MarkConcluded(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE assemblies SET concluded = TRUE WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to conclude assembly: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to conclude assembly: %w", err)
	}
	if affected == 0 {
		return domain.ErrAssemblyNotFound
	}
	return nil
}
