package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mhagen/assembly/internal/core/domain"
	"github.com/mhagen/assembly/internal/core/ports"
)

type tallyService struct {
	ballotRepo ports.BallotRepository
	voteRepo   ports.VoteRepository
	resultRepo ports.ResultRepository
	logger     *slog.Logger
}

func NewTallyService(ballotRepo ports.BallotRepository, voteRepo ports.VoteRepository, resultRepo ports.ResultRepository, logger *slog.Logger) ports.TallyService {
	return &tallyService{
		ballotRepo: ballotRepo,
		voteRepo:   voteRepo,
		resultRepo: resultRepo,
		logger:     logger,
	}
}

func (s *tallyService) Tally(ctx context.Context, ballotID uuid.UUID) (*domain.Result, error) {
	ballot, err := s.ballotRepo.GetByID(ctx, ballotID)
	if err != nil {
		return nil, err
	}
	if ballot.Status == domain.BallotOpen {
		return nil, domain.ErrBallotNotClosed
	}

	computed, err := s.compute(ctx, ballot)
	if err != nil {
		return nil, err
	}

	existing, err := s.resultRepo.GetByBallot(ctx, ballotID)
	if err == nil {
		return s.audit(ballot, existing, computed)
	}
	if !errors.Is(err, domain.ErrResultNotFound) {
		return nil, err
	}

	computed.PublishedAt = time.Now()
	stored, err := s.resultRepo.Save(ctx, computed)
	if err != nil {
		return nil, err
	}
	if !stored {
		// Lost a publication race; the winner's record is authoritative.
		existing, err := s.resultRepo.GetByBallot(ctx, ballotID)
		if err != nil {
			return nil, err
		}
		return s.audit(ballot, existing, computed)
	}

	s.logger.Info("result published", "ballot_id", ballot.ID, "ranking", computed.Ranking, "votes", computed.VoteCount)
	return computed, nil
}

// audit compares a recomputation against the published record. A difference
// means the stored votes or result were tampered with and is surfaced as a
// data-integrity fault, never reconciled.
func (s *tallyService) audit(ballot *domain.Ballot, published, computed *domain.Result) (*domain.Result, error) {
	if !published.Equivalent(computed) {
		s.logger.Error("tally recomputation mismatch",
			"ballot_id", ballot.ID,
			"published_ranking", published.Ranking,
			"recomputed_ranking", computed.Ranking,
		)
		return nil, fmt.Errorf("ballot %s: %w", ballot.ID, domain.ErrResultMismatch)
	}
	return published, nil
}

func (s *tallyService) compute(ctx context.Context, ballot *domain.Ballot) (*domain.Result, error) {
	votes, err := s.voteRepo.ListByBallot(ctx, ballot.ID)
	if err != nil {
		return nil, err
	}

	set := ballot.CandidateSet()
	raw := make([]string, 0, len(votes))
	prefs := make([]domain.Preference, 0, len(votes))
	for _, vote := range votes {
		pref, err := domain.ParsePreference(vote.Ranking, set)
		if err != nil {
			return nil, fmt.Errorf("stored vote %s is not canonical: %w", vote.ID, err)
		}
		raw = append(raw, vote.Ranking)
		prefs = append(prefs, pref)
	}

	matrix := domain.NewPairwiseMatrix(set, prefs)
	ranking := domain.SchulzeRanking(matrix)

	result := &domain.Result{
		BallotID:   ballot.ID,
		Candidates: append([]domain.Candidate{}, ballot.Candidates...),
		BarEnabled: ballot.BarEnabled,
		Mode:       ballot.Mode,
		RawVotes:   raw,
		Ranking:    ranking.String(),
		Boundaries: domain.BoundaryStats(ranking, prefs),
		VoteCount:  len(votes),
	}
	if ballot.Mode == domain.ModeClassical {
		result.Selections = domain.SelectionCounts(set, prefs)
	}
	return result, nil
}

func (s *tallyService) TallyAllClosed(ctx context.Context) error {
	ballots, err := s.ballotRepo.ListClosedUntallied(ctx)
	if err != nil {
		return fmt.Errorf("failed to list closed ballots: %w", err)
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(ballots))

	for _, ballot := range ballots {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			if _, err := s.Tally(ctx, id); err != nil {
				errChan <- fmt.Errorf("failed to tally ballot %s: %w", id, err)
			}
		}(ballot.ID)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *tallyService) Result(ctx context.Context, ballotID uuid.UUID) (*domain.Result, error) {
	return s.resultRepo.GetByBallot(ctx, ballotID)
}
