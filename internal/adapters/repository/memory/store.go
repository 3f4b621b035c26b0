package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mhagen/assembly/internal/core/domain"
)

// Store is an in-memory implementation of every repository port, guarded by
// a single mutex. It backs the service unit tests and local runs without a
// database.
type Store struct {
	mu         sync.Mutex
	assemblies map[uuid.UUID]domain.Assembly
	ballots    map[uuid.UUID]domain.Ballot
	votes      map[uuid.UUID]domain.Vote
	voteKeys   map[voteKey]uuid.UUID
	receipts   map[string]domain.Receipt
	results    map[uuid.UUID]domain.Result
}

type voteKey struct {
	ballotID uuid.UUID
	voterID  uuid.UUID
}

func NewStore() *Store {
	return &Store{
		assemblies: make(map[uuid.UUID]domain.Assembly),
		ballots:    make(map[uuid.UUID]domain.Ballot),
		votes:      make(map[uuid.UUID]domain.Vote),
		voteKeys:   make(map[voteKey]uuid.UUID),
		receipts:   make(map[string]domain.Receipt),
		results:    make(map[uuid.UUID]domain.Result),
	}
}

func (s *Store) Save(ctx context.Context, assembly *domain.Assembly) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assemblies[assembly.ID] = *assembly
	return nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*domain.Assembly, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	assembly, ok := s.assemblies[id]
	if !ok {
		return nil, domain.ErrAssemblyNotFound
	}
	return &assembly, nil
}

func (s *Store) MarkConcluded(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	assembly, ok := s.assemblies[id]
	if !ok {
		return domain.ErrAssemblyNotFound
	}
	assembly.Concluded = true
	s.assemblies[id] = assembly
	return nil
}

// BallotStore exposes the ballot repository port; required because the
// assembly and ballot ports both declare Save/GetByID.
type BallotStore struct {
	*Store
}

func (s *Store) Ballots() *BallotStore {
	return &BallotStore{Store: s}
}

func (s *BallotStore) Save(ctx context.Context, ballot *domain.Ballot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ballots[ballot.ID] = *ballot
	return nil
}

func (s *BallotStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ballot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ballot, ok := s.ballots[id]
	if !ok {
		return nil, domain.ErrBallotNotFound
	}
	return &ballot, nil
}

func (s *BallotStore) Close(ctx context.Context, id uuid.UUID, closedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ballot, ok := s.ballots[id]
	if !ok {
		return domain.ErrBallotNotFound
	}
	if ballot.Status != domain.BallotOpen {
		return domain.ErrBallotNotOpen
	}
	ballot.Status = domain.BallotClosed
	ballot.ClosedAt = &closedAt
	s.ballots[id] = ballot
	return nil
}

func (s *BallotStore) ListClosedUntallied(ctx context.Context) ([]*domain.Ballot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ballots []*domain.Ballot
	for id, ballot := range s.ballots {
		if ballot.Status != domain.BallotClosed {
			continue
		}
		if _, tallied := s.results[id]; tallied {
			continue
		}
		b := ballot
		ballots = append(ballots, &b)
	}
	sort.Slice(ballots, func(i, j int) bool {
		return ballots[i].ID.String() < ballots[j].ID.String()
	})
	return ballots, nil
}

func (s *Store) Upsert(ctx context.Context, vote *domain.Vote, secretHash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := voteKey{ballotID: vote.BallotID, voterID: vote.VoterID}
	existingID, replaced := s.voteKeys[key]
	if replaced {
		vote.ID = existingID
		for hash, receipt := range s.receipts {
			if receipt.VoteID == existingID {
				delete(s.receipts, hash)
			}
		}
	}

	s.voteKeys[key] = vote.ID
	s.votes[vote.ID] = *vote
	s.receipts[secretHash] = domain.Receipt{
		SecretHash: secretHash,
		VoteID:     vote.ID,
		BallotID:   vote.BallotID,
		CreatedAt:  vote.CreatedAt,
	}
	return replaced, nil
}

func (s *Store) ListByBallot(ctx context.Context, ballotID uuid.UUID) ([]*domain.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var votes []*domain.Vote
	for _, vote := range s.votes {
		if vote.BallotID != ballotID {
			continue
		}
		v := vote
		v.VoterID = uuid.Nil
		votes = append(votes, &v)
	}
	sort.Slice(votes, func(i, j int) bool {
		return votes[i].ID.String() < votes[j].ID.String()
	})
	return votes, nil
}

func (s *Store) GetVoteBySecretHash(ctx context.Context, secretHash string) (*domain.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	receipt, ok := s.receipts[secretHash]
	if !ok {
		return nil, domain.ErrReceiptNotFound
	}
	vote, ok := s.votes[receipt.VoteID]
	if !ok {
		return nil, domain.ErrReceiptNotFound
	}
	v := vote
	v.VoterID = uuid.Nil
	return &v, nil
}

func (s *Store) PurgeByAssembly(ctx context.Context, assemblyID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for hash, receipt := range s.receipts {
		ballot, ok := s.ballots[receipt.BallotID]
		if ok && ballot.AssemblyID == assemblyID {
			delete(s.receipts, hash)
		}
	}
	return nil
}

// ResultStore exposes the result repository port.
type ResultStore struct {
	*Store
}

func (s *Store) Results() *ResultStore {
	return &ResultStore{Store: s}
}

func (s *ResultStore) Save(ctx context.Context, result *domain.Result) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.results[result.BallotID]; exists {
		return false, nil
	}
	s.results[result.BallotID] = *result
	return true, nil
}

func (s *ResultStore) GetByBallot(ctx context.Context, ballotID uuid.UUID) (*domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result, ok := s.results[ballotID]
	if !ok {
		return nil, domain.ErrResultNotFound
	}
	return &result, nil
}
