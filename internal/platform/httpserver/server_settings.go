package httpserver

import (
	"encoding/json"
	"net/http"

	submissionentities "warden/contexts/community-workflow/submission-service/domain/entities"
	submissionports "warden/contexts/community-workflow/submission-service/ports"
)

type setRemindersRequest struct {
	Enabled bool `json:"enabled"`
	Days    int  `json:"days"`
}

type setRouteRequest struct {
	ChannelRef string `json:"channel_ref"`
	RoleRefs   string `json:"role_refs"`
}

type setChannelRequest struct {
	ChannelRef        string   `json:"channel_ref"`
	ManualRewardRoles []string `json:"manual_reward_roles,omitempty"`
}

type settingsResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleSetReminders(w http.ResponseWriter, r *http.Request) {
	if !isAdministrator(r) {
		writeSubmissionError(w, http.StatusForbidden, "permission_denied", "administrator capability required")
		return
	}

	var req setRemindersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubmissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	s.settings.SetReminders(req.Enabled, req.Days)
	writeJSON(w, http.StatusOK, settingsResponse{Status: "success"})
}

func (s *Server) handleSetRoute(w http.ResponseWriter, r *http.Request) {
	if !isAdministrator(r) {
		writeSubmissionError(w, http.StatusForbidden, "permission_denied", "administrator capability required")
		return
	}

	category, ok := submissionentities.ParseCategory(r.PathValue("category"))
	if !ok {
		writeSubmissionError(w, http.StatusBadRequest, "invalid_request", "unknown submission category")
		return
	}

	var req setRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubmissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	s.settings.SetNotificationRoute(category, submissionports.Route{
		ChannelRef: req.ChannelRef,
		RoleRefs:   req.RoleRefs,
	})
	writeJSON(w, http.StatusOK, settingsResponse{Status: "success"})
}

func (s *Server) handleSetLogChannel(w http.ResponseWriter, r *http.Request) {
	if !isAdministrator(r) {
		writeSubmissionError(w, http.StatusForbidden, "permission_denied", "administrator capability required")
		return
	}

	var req setChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubmissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	s.settings.SetLogChannel(req.ChannelRef)
	writeJSON(w, http.StatusOK, settingsResponse{Status: "success"})
}

func (s *Server) handleSetShopChannel(w http.ResponseWriter, r *http.Request) {
	if !isAdministrator(r) {
		writeSubmissionError(w, http.StatusForbidden, "permission_denied", "administrator capability required")
		return
	}

	var req setChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubmissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	s.settings.SetShopChannel(req.ChannelRef)
	if req.ManualRewardRoles != nil {
		s.settings.SetManualRewardRoles(req.ManualRewardRoles)
	}
	writeJSON(w, http.StatusOK, settingsResponse{Status: "success"})
}
