package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mhagen/assembly/internal/core/domain"
	"github.com/mhagen/assembly/internal/core/ports"
)

type VoteHandler struct {
	votes    ports.VoteService
	receipts ports.ReceiptService
}

func NewVoteHandler(votes ports.VoteService, receipts ports.ReceiptService) *VoteHandler {
	return &VoteHandler{
		votes:    votes,
		receipts: receipts,
	}
}

type submitVoteRequest struct {
	VoterID   uuid.UUID `json:"voter_id"`
	Ranking   string    `json:"ranking,omitempty"`
	Selected  []string  `json:"selected,omitempty"`
	RejectAll bool      `json:"reject_all,omitempty"`
}

type submitVoteResponse struct {
	Receipt string `json:"receipt"`
}

func (h *VoteHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	ballotIDStr := chi.URLParam(r, "id")
	ballotID, err := uuid.Parse(ballotIDStr)
	if err != nil {
		http.Error(w, "invalid ballot id", http.StatusBadRequest)
		return
	}

	var req submitVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.VoterID == uuid.Nil {
		http.Error(w, "missing voter id", http.StatusBadRequest)
		return
	}

	input := ports.SubmitVoteInput{
		BallotID:  ballotID,
		VoterID:   req.VoterID,
		Ranking:   req.Ranking,
		Selected:  req.Selected,
		RejectAll: req.RejectAll,
	}

	secret, err := h.votes.Submit(r.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrBallotNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if errors.Is(err, domain.ErrBallotNotOpen) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if isCodecRejection(err) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(submitVoteResponse{Receipt: secret}); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *VoteHandler) VerifyReceipt(w http.ResponseWriter, r *http.Request) {
	secret := chi.URLParam(r, "secret")

	vote, err := h.receipts.Verify(r.Context(), secret)
	if err != nil {
		if errors.Is(err, domain.ErrReceiptNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(vote); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func isCodecRejection(err error) bool {
	return errors.Is(err, domain.ErrIncompleteRanking) ||
		errors.Is(err, domain.ErrDuplicateCandidate) ||
		errors.Is(err, domain.ErrUnknownCandidate) ||
		errors.Is(err, domain.ErrTooManySelections) ||
		errors.Is(err, domain.ErrRejectAllConflict) ||
		errors.Is(err, domain.ErrRejectionNotEnabled)
}
