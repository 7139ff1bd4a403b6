package httpserver

import (
	"net/http"

	"warden/internal/shared/events"
)

type recentEventsResponse struct {
	Status string `json:"status"`
	Data   struct {
		Events []events.Envelope `json:"events"`
	} `json:"data"`
}

// handleRecentEvents serves the ops activity feed recorded off the event bus.
func (s *Server) handleRecentEvents(w http.ResponseWriter, r *http.Request) {
	if !isAdministrator(r) {
		writeSubmissionError(w, http.StatusForbidden, "permission_denied", "administrator capability required")
		return
	}

	resp := recentEventsResponse{Status: "success"}
	resp.Data.Events = []events.Envelope{}
	if s.events != nil {
		resp.Data.Events = s.events.Recent()
	}
	writeJSON(w, http.StatusOK, resp)
}
