package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"
	contractx "github.com/trattoria-labs/tavolo/agent/contract"
)

type chatRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "richiesta non valida"})
		return
	}

	result, err := s.turns.HandleTurn(r.Context(), req.UserID, req.Message)
	if err != nil {
		if errors.Is(err, contractx.ErrValidation) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		hlog.FromRequest(r).Error().Err(err).Msg("turn failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Errore del server"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, map[string]string{"Name": s.rest.Name}); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("render chat page")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
