package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mhagen/assembly/internal/core/domain"
	"github.com/mhagen/assembly/internal/core/ports"
)

type ballotService struct {
	assemblyRepo ports.AssemblyRepository
	ballotRepo   ports.BallotRepository
	receiptRepo  ports.ReceiptRepository
	logger       *slog.Logger
}

func NewBallotService(assemblyRepo ports.AssemblyRepository, ballotRepo ports.BallotRepository, receiptRepo ports.ReceiptRepository, logger *slog.Logger) ports.BallotService {
	return &ballotService{
		assemblyRepo: assemblyRepo,
		ballotRepo:   ballotRepo,
		receiptRepo:  receiptRepo,
		logger:       logger,
	}
}

func (s *ballotService) CreateAssembly(ctx context.Context, title string) (*domain.Assembly, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errors.New("title is required")
	}

	assembly := &domain.Assembly{
		ID:        uuid.New(),
		Title:     title,
		CreatedAt: time.Now(),
	}
	if err := s.assemblyRepo.Save(ctx, assembly); err != nil {
		return nil, err
	}
	return assembly, nil
}

// ConcludeAssembly marks the assembly concluded and purges every receipt of
// its ballots. The transition is one-way; votes and published results stay.
func (s *ballotService) ConcludeAssembly(ctx context.Context, id string) error {
	assemblyID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrInvalidAssemblyID
	}

	assembly, err := s.assemblyRepo.GetByID(ctx, assemblyID)
	if err != nil {
		return err
	}
	if !assembly.Concluded {
		if err := s.assemblyRepo.MarkConcluded(ctx, assemblyID); err != nil {
			return err
		}
	}

	if err := s.receiptRepo.PurgeByAssembly(ctx, assemblyID); err != nil {
		return fmt.Errorf("failed to purge receipts: %w", err)
	}

	s.logger.Info("assembly concluded", "assembly_id", assemblyID)
	return nil
}

func (s *ballotService) Create(ctx context.Context, input ports.CreateBallotInput) (*domain.Ballot, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.New("title is required")
	}
	if input.Mode != domain.ModePreferential && input.Mode != domain.ModeClassical {
		return nil, fmt.Errorf("unknown vote mode %q", input.Mode)
	}
	if input.MaxSelections < 0 {
		return nil, errors.New("max selections must not be negative")
	}

	if _, err := s.assemblyRepo.GetByID(ctx, input.AssemblyID); err != nil {
		return nil, err
	}

	candidates, err := candidateTokens(input.Candidates)
	if err != nil {
		return nil, err
	}

	ballot := &domain.Ballot{
		ID:            uuid.New(),
		AssemblyID:    input.AssemblyID,
		Title:         input.Title,
		Candidates:    candidates,
		BarEnabled:    input.BarEnabled,
		Mode:          input.Mode,
		MaxSelections: input.MaxSelections,
		Status:        domain.BallotOpen,
		CreatedAt:     time.Now(),
	}
	if err := s.ballotRepo.Save(ctx, ballot); err != nil {
		return nil, err
	}
	return ballot, nil
}

func (s *ballotService) Get(ctx context.Context, id string) (*domain.Ballot, error) {
	ballotID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidBallotID
	}
	return s.ballotRepo.GetByID(ctx, ballotID)
}

func (s *ballotService) Close(ctx context.Context, id string) error {
	ballotID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrInvalidBallotID
	}
	return s.ballotRepo.Close(ctx, ballotID, time.Now())
}

// candidateTokens validates the display list: at least one candidate, no
// duplicates, no reserved bar token, and no relation operators inside a
// token so that every ranking stays parseable.
func candidateTokens(raw []string) ([]domain.Candidate, error) {
	if len(raw) == 0 {
		return nil, errors.New("at least one candidate is required")
	}

	seen := make(map[domain.Candidate]bool, len(raw))
	candidates := make([]domain.Candidate, 0, len(raw))
	for _, token := range raw {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, errors.New("candidate token must not be empty")
		}
		if strings.ContainsAny(token, ">=") {
			return nil, fmt.Errorf("candidate token %q must not contain '>' or '='", token)
		}
		c := domain.Candidate(token)
		if c == domain.Bar {
			return nil, fmt.Errorf("candidate token %q is reserved", token)
		}
		if seen[c] {
			return nil, fmt.Errorf("duplicate candidate token %q", token)
		}
		seen[c] = true
		candidates = append(candidates, c)
	}
	return candidates, nil
}
