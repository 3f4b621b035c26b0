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

type ResultHandler struct {
	service ports.TallyService
}

func NewResultHandler(service ports.TallyService) *ResultHandler {
	return &ResultHandler{
		service: service,
	}
}

func (h *ResultHandler) TallyBallot(w http.ResponseWriter, r *http.Request) {
	ballotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid ballot id", http.StatusBadRequest)
		return
	}

	result, err := h.service.Tally(r.Context(), ballotID)
	if err != nil {
		if errors.Is(err, domain.ErrBallotNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if errors.Is(err, domain.ErrBallotNotClosed) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if errors.Is(err, domain.ErrResultMismatch) {
			// Data-integrity fault; surface loudly.
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *ResultHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	ballotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid ballot id", http.StatusBadRequest)
		return
	}

	result, err := h.service.Result(r.Context(), ballotID)
	if err != nil {
		if errors.Is(err, domain.ErrResultNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
