package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	submissionerrors "warden/contexts/community-workflow/submission-service/domain/errors"
	submissionhttp "warden/contexts/community-workflow/submission-service/transport/http"
)

func (s *Server) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	userID := resolveUserID(r)
	if userID == "" {
		writeSubmissionError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req submissionhttp.CreateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubmissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.submissions.Handler.CreateSubmissionHandler(r.Context(), userID, req)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleDecideSubmission(w http.ResponseWriter, r *http.Request) {
	reviewerID := resolveUserID(r)
	if reviewerID == "" {
		writeSubmissionError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req submissionhttp.DecideSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubmissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.submissions.Handler.DecideSubmissionHandler(
		r.Context(),
		r.PathValue("category"),
		r.PathValue("submission_id"),
		reviewerID,
		resolveCapabilities(r),
		req,
	)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRejectionTemplates(w http.ResponseWriter, r *http.Request) {
	resp, err := s.submissions.Handler.RejectionTemplatesHandler(r.PathValue("category"))
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUserSubmissions(w http.ResponseWriter, r *http.Request) {
	resp, err := s.submissions.Handler.UserSubmissionsHandler(r.Context(), r.PathValue("user_id"))
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleActivitySummary(w http.ResponseWriter, r *http.Request) {
	resp, err := s.submissions.Handler.ActivitySummaryHandler(r.Context(), r.PathValue("user_id"))
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListPositions(w http.ResponseWriter, r *http.Request) {
	resp, err := s.submissions.Handler.ListPositionsHandler(r.Context())
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetPosition(w http.ResponseWriter, r *http.Request) {
	if !isAdministrator(r) {
		writeSubmissionError(w, http.StatusForbidden, "permission_denied", "administrator capability required")
		return
	}

	var req submissionhttp.SetPositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubmissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.submissions.Handler.SetPositionHandler(r.Context(), r.PathValue("position"), req)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePublishPanel(w http.ResponseWriter, r *http.Request) {
	if !isAdministrator(r) {
		writeSubmissionError(w, http.StatusForbidden, "permission_denied", "administrator capability required")
		return
	}

	var req submissionhttp.PublishPanelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubmissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.submissions.Handler.PublishPanelHandler(r.Context(), req)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeSubmissionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, submissionerrors.ErrSubmissionNotFound):
		writeSubmissionError(w, http.StatusNotFound, "submission_not_found", err.Error())
	case errors.Is(err, submissionerrors.ErrPermissionDenied):
		writeSubmissionError(w, http.StatusForbidden, "permission_denied", err.Error())
	case errors.Is(err, submissionerrors.ErrInvalidTransition):
		writeSubmissionError(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, submissionerrors.ErrRecruitmentClosed):
		writeSubmissionError(w, http.StatusConflict, "recruitment_closed", err.Error())
	case errors.Is(err, submissionerrors.ErrInvalidRequest):
		writeSubmissionError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeSubmissionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeSubmissionError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, submissionhttp.ErrorResponse{Code: code, Message: message})
}
