package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vote is one voter's accepted submission in canonical form. The ID is the
// stable storage key; it stays put when the voter resubmits before the
// ballot closes. VoterID exists only to serialize replace-or-insert and is
// never published.
type Vote struct {
	ID        uuid.UUID `json:"id"`
	BallotID  uuid.UUID `json:"ballot_id"`
	VoterID   uuid.UUID `json:"-"`
	Ranking   string    `json:"ranking"`
	CreatedAt time.Time `json:"created_at"`
}
