package domain

import (
	"time"

	"github.com/google/uuid"
)

type VoteMode string

const (
	ModePreferential VoteMode = "preferential"
	ModeClassical    VoteMode = "classical"
)

type BallotStatus string

const (
	BallotOpen   BallotStatus = "open"
	BallotClosed BallotStatus = "closed"
)

// Assembly groups the ballots of one member assembly. Concluding it is a
// one-way transition that purges every receipt of its ballots.
type Assembly struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Concluded bool      `json:"concluded"`
	CreatedAt time.Time `json:"created_at"`
}

// Ballot is one voting matter. Its candidate set is fixed at creation and
// immutable afterwards.
type Ballot struct {
	ID            uuid.UUID    `json:"id"`
	AssemblyID    uuid.UUID    `json:"assembly_id"`
	Title         string       `json:"title"`
	Candidates    []Candidate  `json:"candidates"`
	BarEnabled    bool         `json:"bar_enabled"`
	Mode          VoteMode     `json:"mode"`
	MaxSelections int          `json:"max_selections,omitempty"`
	Status        BallotStatus `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	ClosedAt      *time.Time   `json:"closed_at,omitempty"`
}

func (b *Ballot) CandidateSet() CandidateSet {
	return CandidateSet{Candidates: b.Candidates, BarEnabled: b.BarEnabled}
}
