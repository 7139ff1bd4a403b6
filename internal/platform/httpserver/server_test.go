package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	pollservice "warden/contexts/community-engagement/poll-service"
	reputationservice "warden/contexts/community-economy/reputation-service"
	reputationapp "warden/contexts/community-economy/reputation-service/application"
	reputationhttp "warden/contexts/community-economy/reputation-service/transport/http"
	shopservice "warden/contexts/community-economy/shop-service"
	shophttp "warden/contexts/community-economy/shop-service/transport/http"
	submissionservice "warden/contexts/community-workflow/submission-service"
	submissionentities "warden/contexts/community-workflow/submission-service/domain/entities"
	submissionports "warden/contexts/community-workflow/submission-service/ports"
	submissionhttp "warden/contexts/community-workflow/submission-service/transport/http"
	"warden/internal/platform/gateway"
	"warden/internal/platform/messaging"
	"warden/internal/platform/settings"
	"warden/internal/shared/keylock"
)

// testLedger adapts the reputation service to the add-mode ledger ports, the
// same shape the composition root uses.
type testLedger struct {
	service reputationapp.Service
}

func (l testLedger) Adjust(ctx context.Context, userID string, delta int) (int, error) {
	return l.service.Adjust(ctx, userID, delta, reputationapp.ModeAdd)
}

func (l testLedger) Balance(ctx context.Context, userID string) (int, error) {
	return l.service.Balance(ctx, userID)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	settingsStore := settings.New()
	settingsStore.SetLogChannel("chan-log")
	settingsStore.SetShopChannel("chan-shop")
	settingsStore.SetNotificationRoute(submissionentities.CategorySuggestion, submissionports.Route{
		ChannelRef: "chan-suggestions",
	})

	inProcessGateway := gateway.NewInProcess("warden-test", nil, logger)
	locker := keylock.New()

	reputationModule := reputationservice.NewInMemoryModule(logger)
	ledger := testLedger{service: reputationModule.Service}

	submissionModule := submissionservice.NewInMemoryModule(submissionservice.Dependencies{
		Gateway:  inProcessGateway,
		Ledger:   ledger,
		Balances: ledger,
		Settings: settingsStore,
		Locker:   locker,
	}, logger)

	shopModule := shopservice.NewInMemoryModule(shopservice.Dependencies{
		Ledger:   ledger,
		Gateway:  inProcessGateway,
		Settings: settingsStore,
		Locker:   locker,
	}, logger)

	pollModule := pollservice.NewInMemoryModule(pollservice.Dependencies{
		Gateway: inProcessGateway,
		Locker:  locker,
	}, logger)

	return New(submissionModule, reputationModule, shopModule, pollModule, settingsStore, messaging.NewRecorder(16), logger, ":0")
}

func performJSON(t *testing.T, handler http.Handler, method, target string, headers map[string]string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func asUser(userID string) map[string]string {
	return map[string]string{"X-User-Id": userID}
}

func asModerator(userID, capability string) map[string]string {
	return map[string]string{
		"X-User-Id":           userID,
		"X-User-Capabilities": capability,
	}
}

func TestSubmissionLifecycleOverHTTP(t *testing.T) {
	handler := newTestServer(t).Handler()

	createRec := performJSON(t, handler, http.MethodPost, "/api/v1/submissions", asUser("user-1"), submissionhttp.CreateSubmissionRequest{
		Category:    "suggestion",
		Scope:       "jb",
		DisplayName: "Player One",
		Title:       "Add a vote map command",
		Fields:      []submissionhttp.FieldDTO{{Label: "Details", Value: "A command to vote on the next map."}},
	})
	if createRec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", createRec.Code, createRec.Body.String())
	}
	var created submissionhttp.SubmissionResponse
	if err := json.Unmarshal(createRec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.Data.Submission.SubmissionID == "" {
		t.Fatal("expected a submission id")
	}
	if created.Data.Submission.Status != "pending" {
		t.Fatalf("initial status = %q, want pending", created.Data.Submission.Status)
	}
	if created.Data.Submission.ThreadRef == "" {
		t.Fatal("expected a thread ref")
	}

	decideTarget := "/api/v1/submissions/suggestion/" + created.Data.Submission.SubmissionID + "/decision"
	decideRec := performJSON(t, handler, http.MethodPost, decideTarget, asModerator("mod-1", "moderate_jb"), submissionhttp.DecideSubmissionRequest{
		Action: "accept",
	})
	if decideRec.Code != http.StatusOK {
		t.Fatalf("decide status = %d, body %s", decideRec.Code, decideRec.Body.String())
	}
	var decided submissionhttp.DecisionResponse
	if err := json.Unmarshal(decideRec.Body.Bytes(), &decided); err != nil {
		t.Fatalf("decode decide response: %v", err)
	}
	if decided.Data.Submission.Status != "accepted" {
		t.Fatalf("decided status = %q, want accepted", decided.Data.Submission.Status)
	}
	if decided.Data.PointsAwarded != 5 {
		t.Fatalf("points awarded = %d, want 5", decided.Data.PointsAwarded)
	}
	if len(decided.Data.Failures) != 0 {
		t.Fatalf("unexpected cascade failures: %v", decided.Data.Failures)
	}

	balanceRec := performJSON(t, handler, http.MethodGet, "/api/v1/reputation/user-1", nil, nil)
	if balanceRec.Code != http.StatusOK {
		t.Fatalf("balance status = %d", balanceRec.Code)
	}
	var balance reputationhttp.BalanceResponse
	if err := json.Unmarshal(balanceRec.Body.Bytes(), &balance); err != nil {
		t.Fatalf("decode balance response: %v", err)
	}
	if balance.Data.Points != 5 {
		t.Fatalf("submitter balance = %d, want 5", balance.Data.Points)
	}
}

func TestCreateSubmissionRequiresIdentity(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := performJSON(t, handler, http.MethodPost, "/api/v1/submissions", nil, submissionhttp.CreateSubmissionRequest{
		Category:    "suggestion",
		Scope:       "jb",
		DisplayName: "Player One",
		Title:       "Needs identity",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestDecideWithoutCapabilityIsForbidden(t *testing.T) {
	handler := newTestServer(t).Handler()

	createRec := performJSON(t, handler, http.MethodPost, "/api/v1/submissions", asUser("user-2"), submissionhttp.CreateSubmissionRequest{
		Category:    "suggestion",
		Scope:       "jb",
		DisplayName: "Player Two",
		Title:       "A suggestion",
	})
	if createRec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", createRec.Code)
	}
	var created submissionhttp.SubmissionResponse
	if err := json.Unmarshal(createRec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	target := "/api/v1/submissions/suggestion/" + created.Data.Submission.SubmissionID + "/decision"
	rec := performJSON(t, handler, http.MethodPost, target, asUser("user-2"), submissionhttp.DecideSubmissionRequest{
		Action: "accept",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403, body %s", rec.Code, rec.Body.String())
	}
}

func TestDecideUnknownSubmissionReturnsNotFound(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := performJSON(t, handler, http.MethodPost, "/api/v1/submissions/suggestion/missing/decision", asModerator("mod-1", "moderate_jb"), submissionhttp.DecideSubmissionRequest{
		Action: "accept",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestShopPurchaseOverHTTP(t *testing.T) {
	handler := newTestServer(t).Handler()

	adjustRec := performJSON(t, handler, http.MethodPost, "/api/v1/reputation/buyer-1/adjust", asModerator("admin-1", "administrator"), reputationhttp.AdjustRequest{
		Amount: 100,
		Mode:   "add",
	})
	if adjustRec.Code != http.StatusOK {
		t.Fatalf("adjust status = %d, body %s", adjustRec.Code, adjustRec.Body.String())
	}

	createRec := performJSON(t, handler, http.MethodPost, "/api/v1/shop/items", asModerator("admin-1", "administrator"), shophttp.CreateItemRequest{
		Name:     "VIP week",
		Cost:     40,
		Category: "vip",
	})
	if createRec.Code != http.StatusCreated {
		t.Fatalf("create item status = %d, body %s", createRec.Code, createRec.Body.String())
	}
	var item shophttp.ItemResponse
	if err := json.Unmarshal(createRec.Body.Bytes(), &item); err != nil {
		t.Fatalf("decode item response: %v", err)
	}

	purchaseRec := performJSON(t, handler, http.MethodPost, "/api/v1/shop/items/"+item.Data.Item.ItemID+"/purchase", asUser("buyer-1"), nil)
	if purchaseRec.Code != http.StatusOK {
		t.Fatalf("purchase status = %d, body %s", purchaseRec.Code, purchaseRec.Body.String())
	}
	var purchase shophttp.PurchaseResponse
	if err := json.Unmarshal(purchaseRec.Body.Bytes(), &purchase); err != nil {
		t.Fatalf("decode purchase response: %v", err)
	}
	if purchase.Data.NewBalance != 60 {
		t.Fatalf("new balance = %d, want 60", purchase.Data.NewBalance)
	}
	if !purchase.Data.ManualFulfillment {
		t.Fatal("expected manual fulfillment for a vip item")
	}
}

func TestShopPurchaseWithoutFundsIsRejected(t *testing.T) {
	handler := newTestServer(t).Handler()

	createRec := performJSON(t, handler, http.MethodPost, "/api/v1/shop/items", asModerator("admin-1", "administrator"), shophttp.CreateItemRequest{
		Name:     "Premium month",
		Cost:     500,
		Category: "premium",
	})
	if createRec.Code != http.StatusCreated {
		t.Fatalf("create item status = %d", createRec.Code)
	}
	var item shophttp.ItemResponse
	if err := json.Unmarshal(createRec.Body.Bytes(), &item); err != nil {
		t.Fatalf("decode item response: %v", err)
	}

	rec := performJSON(t, handler, http.MethodPost, "/api/v1/shop/items/"+item.Data.Item.ItemID+"/purchase", asUser("pauper-1"), nil)
	if rec.Code != http.StatusPaymentRequired {
		t.Fatalf("status = %d, want 402, body %s", rec.Code, rec.Body.String())
	}
}

func TestShopItemCreationRequiresAdministrator(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := performJSON(t, handler, http.MethodPost, "/api/v1/shop/items", asUser("user-1"), shophttp.CreateItemRequest{
		Name:     "Sneaky item",
		Cost:     1,
		Category: "perks",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestGetUnknownPollReturnsNotFound(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := performJSON(t, handler, http.MethodGet, "/api/v1/polls/missing", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestRecentEventsFeedIsAdminOnly(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := performJSON(t, handler, http.MethodGet, "/api/v1/events/recent", asUser("user-1"), nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}

	rec = performJSON(t, handler, http.MethodGet, "/api/v1/events/recent", asModerator("admin-1", "administrator"), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp recentEventsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode events response: %v", err)
	}
	if resp.Data.Events == nil {
		t.Fatal("events list must be present even when empty")
	}
}

func TestSetRemindersRequiresAdministrator(t *testing.T) {
	server := newTestServer(t)
	handler := server.Handler()

	rec := performJSON(t, handler, http.MethodPut, "/api/v1/settings/reminders", asUser("user-1"), setRemindersRequest{Enabled: true, Days: 7})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}

	rec = performJSON(t, handler, http.MethodPut, "/api/v1/settings/reminders", asModerator("admin-1", "administrator"), setRemindersRequest{Enabled: true, Days: 7})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if !server.settings.RemindersEnabled() || server.settings.ReminderAfterDays() != 7 {
		t.Fatalf("settings not applied: enabled=%v days=%d", server.settings.RemindersEnabled(), server.settings.ReminderAfterDays())
	}
}
