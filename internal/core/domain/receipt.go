package domain

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Receipt binds a submission secret to one stored vote. The secret is handed
// to the voter exactly once; only its digest is persisted, so the registry
// cannot be used to forge lookups and carries no link to voter identity.
type Receipt struct {
	SecretHash string
	VoteID     uuid.UUID
	BallotID   uuid.UUID
	CreatedAt  time.Time
}

// NewReceiptSecret draws a fresh 32-byte secret, hex encoded.
func NewReceiptSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate receipt secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashReceiptSecret returns the hex sha256 digest under which a secret is
// stored and looked up.
func HashReceiptSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
