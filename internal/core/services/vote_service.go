package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mhagen/assembly/internal/core/domain"
	"github.com/mhagen/assembly/internal/core/ports"
)

type voteService struct {
	ballotRepo ports.BallotRepository
	voteRepo   ports.VoteRepository
	logger     *slog.Logger
}

func NewVoteService(ballotRepo ports.BallotRepository, voteRepo ports.VoteRepository, logger *slog.Logger) ports.VoteService {
	return &voteService{
		ballotRepo: ballotRepo,
		voteRepo:   voteRepo,
		logger:     logger,
	}
}

func (s *voteService) Submit(ctx context.Context, input ports.SubmitVoteInput) (string, error) {
	ballot, err := s.ballotRepo.GetByID(ctx, input.BallotID)
	if err != nil {
		return "", err
	}
	if ballot.Status != domain.BallotOpen {
		return "", domain.ErrBallotNotOpen
	}

	pref, err := canonicalize(ballot, input)
	if err != nil {
		return "", err
	}

	secret, err := domain.NewReceiptSecret()
	if err != nil {
		return "", err
	}

	vote := &domain.Vote{
		ID:        uuid.New(),
		BallotID:  input.BallotID,
		VoterID:   input.VoterID,
		Ranking:   pref.String(),
		CreatedAt: time.Now(),
	}

	replaced, err := s.voteRepo.Upsert(ctx, vote, domain.HashReceiptSecret(secret))
	if err != nil {
		return "", err
	}

	s.logger.Info("vote accepted", "ballot_id", ballot.ID, "replaced", replaced)
	return secret, nil
}

func canonicalize(ballot *domain.Ballot, input ports.SubmitVoteInput) (domain.Preference, error) {
	set := ballot.CandidateSet()
	if ballot.Mode == domain.ModeClassical {
		selected := make([]domain.Candidate, 0, len(input.Selected))
		for _, token := range input.Selected {
			selected = append(selected, domain.Candidate(token))
		}
		return domain.ClassicalPreference(selected, input.RejectAll, set, ballot.MaxSelections)
	}
	return domain.ParsePreference(input.Ranking, set)
}
