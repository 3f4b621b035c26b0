package domain

import "errors"

var (
	ErrBallotNotFound    = errors.New("ballot not found")
	ErrInvalidBallotID   = errors.New("invalid ballot id")
	ErrAssemblyNotFound  = errors.New("assembly not found")
	ErrInvalidAssemblyID = errors.New("invalid assembly id")
	ErrBallotNotOpen     = errors.New("ballot is not open for voting")
	ErrBallotNotClosed   = errors.New("ballot has not been closed yet")
	ErrResultNotFound    = errors.New("result not found")
	ErrResultMismatch    = errors.New("recomputed result differs from published result")
	ErrReceiptNotFound   = errors.New("receipt not found")
	ErrInternal          = errors.New("internal server error")

	// Vote codec rejections.
	ErrIncompleteRanking      = errors.New("ranking does not cover every candidate")
	ErrDuplicateCandidate     = errors.New("candidate ranked more than once")
	ErrUnknownCandidate       = errors.New("unknown candidate")
	ErrTooManySelections      = errors.New("too many candidates selected")
	ErrRejectAllConflict      = errors.New("cannot select candidates and reject all at the same time")
	ErrRejectionNotEnabled    = errors.New("ballot has no rejection option")
	ErrAmbiguousClassicalVote = errors.New("classical vote cannot distinguish abstention from full approval")
)
