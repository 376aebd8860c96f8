package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/lox/holdem-engine/internal/history"
	"github.com/lox/holdem-engine/internal/store"
)

// SaveResponse is the reply to POST /hands
type SaveResponse struct {
	Message   string         `json:"message"`
	ID        string         `json:"id"`
	Payoffs   map[string]int `json:"payoffs"`
	CreatedAt time.Time      `json:"created_at"`
}

// ErrorResponse carries the reason a request failed
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// handlePostHand validates a hand, replays it to compute the payoffs and
// stores it
func (s *Server) handlePostHand(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		s.writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}

	entry, err := history.DecodeEntry(body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := history.Check(entry)
	if err != nil {
		s.logger.Warn().Err(err).Str("hand_id", entry.ID).Msg("Hand failed replay")
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	saved, err := s.store.Save(r.Context(), store.Record{ID: entry.ID, Payload: entry, Payoffs: res.Payoffs})
	switch {
	case errors.Is(err, store.ErrDuplicate):
		s.writeError(w, http.StatusConflict, err)
		return
	case err != nil:
		s.logger.Error().Err(err).Str("hand_id", entry.ID).Msg("Failed to save hand")
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.logger.Info().Str("hand_id", saved.ID).Interface("payoffs", saved.Payoffs).Msg("Hand saved")
	s.hub.Broadcast(saved)
	s.writeJSON(w, http.StatusCreated, SaveResponse{
		Message:   "Hand saved",
		ID:        saved.ID,
		Payoffs:   saved.Payoffs,
		CreatedAt: saved.CreatedAt,
	})
}

func (s *Server) handleListHands(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetHand(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), r.PathValue("id"))
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.writeError(w, http.StatusNotFound, store.ErrNotFound)
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, err)
	default:
		s.writeJSON(w, http.StatusOK, rec)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "OK")
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug().Err(err).Msg("Failed to write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, ErrorResponse{Detail: err.Error()})
}
