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

type BallotHandler struct {
	service ports.BallotService
}

func NewBallotHandler(service ports.BallotService) *BallotHandler {
	return &BallotHandler{
		service: service,
	}
}

type createAssemblyRequest struct {
	Title string `json:"title"`
}

func (h *BallotHandler) CreateAssembly(w http.ResponseWriter, r *http.Request) {
	var req createAssemblyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	assembly, err := h.service.CreateAssembly(r.Context(), req.Title)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(assembly); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *BallotHandler) ConcludeAssembly(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.ConcludeAssembly(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrInvalidAssemblyID) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if errors.Is(err, domain.ErrAssemblyNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createBallotRequest struct {
	AssemblyID    uuid.UUID `json:"assembly_id"`
	Title         string    `json:"title"`
	Candidates    []string  `json:"candidates"`
	BarEnabled    bool      `json:"bar_enabled"`
	Mode          string    `json:"mode"`
	MaxSelections int       `json:"max_selections"`
}

func (h *BallotHandler) CreateBallot(w http.ResponseWriter, r *http.Request) {
	var req createBallotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.CreateBallotInput{
		AssemblyID:    req.AssemblyID,
		Title:         req.Title,
		Candidates:    req.Candidates,
		BarEnabled:    req.BarEnabled,
		Mode:          domain.VoteMode(req.Mode),
		MaxSelections: req.MaxSelections,
	}

	ballot, err := h.service.Create(r.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrAssemblyNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ballot); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *BallotHandler) GetBallot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ballot, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidBallotID) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if errors.Is(err, domain.ErrBallotNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ballot); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *BallotHandler) CloseBallot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Close(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrInvalidBallotID) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if errors.Is(err, domain.ErrBallotNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if errors.Is(err, domain.ErrBallotNotOpen) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
