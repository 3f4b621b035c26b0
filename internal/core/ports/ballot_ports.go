package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mhagen/assembly/internal/core/domain"
)

type AssemblyRepository interface {
	Save(ctx context.Context, assembly *domain.Assembly) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Assembly, error)
	MarkConcluded(ctx context.Context, id uuid.UUID) error
}

type BallotRepository interface {
	Save(ctx context.Context, ballot *domain.Ballot) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Ballot, error)
	Close(ctx context.Context, id uuid.UUID, closedAt time.Time) error
	ListClosedUntallied(ctx context.Context) ([]*domain.Ballot, error)
}

type CreateBallotInput struct {
	AssemblyID    uuid.UUID
	Title         string
	Candidates    []string
	BarEnabled    bool
	Mode          domain.VoteMode
	MaxSelections int
}

type BallotService interface {
	CreateAssembly(ctx context.Context, title string) (*domain.Assembly, error)
	ConcludeAssembly(ctx context.Context, id string) error
	Create(ctx context.Context, input CreateBallotInput) (*domain.Ballot, error)
	Get(ctx context.Context, id string) (*domain.Ballot, error)
	Close(ctx context.Context, id string) error
}
