package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	pollerrors "warden/contexts/community-engagement/poll-service/domain/errors"
	pollhttp "warden/contexts/community-engagement/poll-service/transport/http"
)

func (s *Server) handleCreatePoll(w http.ResponseWriter, r *http.Request) {
	authorID := resolveUserID(r)
	if authorID == "" {
		writePollError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req pollhttp.CreatePollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePollError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.polls.Handler.CreatePollHandler(r.Context(), authorID, req)
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetPoll(w http.ResponseWriter, r *http.Request) {
	resp, err := s.polls.Handler.GetPollHandler(r.Context(), r.PathValue("anchor_id"))
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	voterID := resolveUserID(r)
	if voterID == "" {
		writePollError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req pollhttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePollError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.polls.Handler.CastVoteHandler(r.Context(), r.PathValue("anchor_id"), voterID, req)
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClosePoll(w http.ResponseWriter, r *http.Request) {
	actorID := resolveUserID(r)
	if actorID == "" {
		writePollError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	resp, err := s.polls.Handler.ClosePollHandler(r.Context(), r.PathValue("anchor_id"), actorID, isAdministrator(r))
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writePollDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pollerrors.ErrPollNotFound):
		writePollError(w, http.StatusNotFound, "poll_not_found", err.Error())
	case errors.Is(err, pollerrors.ErrPermissionDenied):
		writePollError(w, http.StatusForbidden, "permission_denied", err.Error())
	case errors.Is(err, pollerrors.ErrInvalidOption):
		writePollError(w, http.StatusBadRequest, "invalid_option", err.Error())
	case errors.Is(err, pollerrors.ErrInvalidRequest):
		writePollError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writePollError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writePollError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, pollhttp.ErrorResponse{Code: code, Message: message})
}
