package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	reputationerrors "warden/contexts/community-economy/reputation-service/domain/errors"
	reputationhttp "warden/contexts/community-economy/reputation-service/transport/http"
)

func (s *Server) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	resp, err := s.reputation.Handler.GetBalanceHandler(r.Context(), r.PathValue("user_id"))
	if err != nil {
		writeReputationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdjustReputation(w http.ResponseWriter, r *http.Request) {
	if !isAdministrator(r) {
		writeReputationError(w, http.StatusForbidden, "permission_denied", "administrator capability required")
		return
	}

	var req reputationhttp.AdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReputationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.reputation.Handler.AdjustHandler(r.Context(), r.PathValue("user_id"), req)
	if err != nil {
		writeReputationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeReputationError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = parsed
	}

	resp, err := s.reputation.Handler.LeaderboardHandler(r.Context(), limit)
	if err != nil {
		writeReputationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeReputationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reputationerrors.ErrInvalidMode):
		writeReputationError(w, http.StatusBadRequest, "invalid_mode", err.Error())
	case errors.Is(err, reputationerrors.ErrInvalidRequest):
		writeReputationError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeReputationError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeReputationError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, reputationhttp.ErrorResponse{Code: code, Message: message})
}
