package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	pollservice "warden/contexts/community-engagement/poll-service"
	reputationservice "warden/contexts/community-economy/reputation-service"
	shopservice "warden/contexts/community-economy/shop-service"
	submissionservice "warden/contexts/community-workflow/submission-service"
	submissionentities "warden/contexts/community-workflow/submission-service/domain/entities"
	"warden/internal/platform/messaging"
	"warden/internal/platform/settings"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "warden/internal/platform/httpserver/docs"
)

type Server struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	addr        string
	submissions submissionservice.Module
	reputation  reputationservice.Module
	shop        shopservice.Module
	polls       pollservice.Module
	settings    *settings.Store
	events      *messaging.Recorder
}

func New(
	submissions submissionservice.Module,
	reputation reputationservice.Module,
	shop shopservice.Module,
	polls pollservice.Module,
	settingsStore *settings.Store,
	eventsRecorder *messaging.Recorder,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:         http.NewServeMux(),
		logger:      logger,
		addr:        addr,
		submissions: submissions,
		reputation:  reputation,
		shop:        shop,
		polls:       polls,
		settings:    settingsStore,
		events:      eventsRecorder,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/v1/submissions", s.handleCreateSubmission)
	s.mux.HandleFunc("POST /api/v1/submissions/{category}/{submission_id}/decision", s.handleDecideSubmission)
	s.mux.HandleFunc("GET /api/v1/submissions/categories/{category}/rejection-templates", s.handleRejectionTemplates)
	s.mux.HandleFunc("GET /api/v1/users/{user_id}/submissions", s.handleUserSubmissions)
	s.mux.HandleFunc("GET /api/v1/users/{user_id}/activity", s.handleActivitySummary)
	s.mux.HandleFunc("GET /api/v1/recruitment/positions", s.handleListPositions)
	s.mux.HandleFunc("PUT /api/v1/recruitment/positions/{position}", s.handleSetPosition)
	s.mux.HandleFunc("POST /api/v1/panels", s.handlePublishPanel)

	s.mux.HandleFunc("GET /api/v1/reputation/leaderboard", s.handleLeaderboard)
	s.mux.HandleFunc("GET /api/v1/reputation/{user_id}", s.handleGetBalance)
	s.mux.HandleFunc("POST /api/v1/reputation/{user_id}/adjust", s.handleAdjustReputation)

	s.mux.HandleFunc("POST /api/v1/shop/items", s.handleCreateShopItem)
	s.mux.HandleFunc("DELETE /api/v1/shop/items/{item_id}", s.handleDeleteShopItem)
	s.mux.HandleFunc("GET /api/v1/shop/items", s.handleListShopItems)
	s.mux.HandleFunc("POST /api/v1/shop/items/{item_id}/purchase", s.handlePurchase)

	s.mux.HandleFunc("POST /api/v1/polls", s.handleCreatePoll)
	s.mux.HandleFunc("GET /api/v1/polls/{anchor_id}", s.handleGetPoll)
	s.mux.HandleFunc("POST /api/v1/polls/{anchor_id}/votes", s.handleCastVote)
	s.mux.HandleFunc("POST /api/v1/polls/{anchor_id}/close", s.handleClosePoll)

	s.mux.HandleFunc("GET /api/v1/events/recent", s.handleRecentEvents)

	s.mux.HandleFunc("PUT /api/v1/settings/reminders", s.handleSetReminders)
	s.mux.HandleFunc("PUT /api/v1/settings/routes/{category}", s.handleSetRoute)
	s.mux.HandleFunc("PUT /api/v1/settings/log-channel", s.handleSetLogChannel)
	s.mux.HandleFunc("PUT /api/v1/settings/shop-channel", s.handleSetShopChannel)
}

// resolveUserID reads the identity asserted by the chat gateway in front.
func resolveUserID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-User-Id"))
}

// resolveCapabilities parses the comma-separated X-User-Capabilities header.
func resolveCapabilities(r *http.Request) []submissionentities.Capability {
	raw := r.Header.Get("X-User-Capabilities")
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var capabilities []submissionentities.Capability
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			capabilities = append(capabilities, submissionentities.Capability(part))
		}
	}
	return capabilities
}

func isAdministrator(r *http.Request) bool {
	for _, c := range resolveCapabilities(r) {
		if c == submissionentities.CapabilityAdministrator {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
