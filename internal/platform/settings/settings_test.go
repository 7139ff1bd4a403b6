package settings

import (
	"testing"

	submissionentities "warden/contexts/community-workflow/submission-service/domain/entities"
	submissionports "warden/contexts/community-workflow/submission-service/ports"
	"warden/internal/platform/config"
)

func TestReminderDaysClamped(t *testing.T) {
	s := New()

	s.SetReminders(true, 0)
	if got := s.ReminderAfterDays(); got != 1 {
		t.Fatalf("below minimum: %d", got)
	}
	s.SetReminders(true, 99)
	if got := s.ReminderAfterDays(); got != 30 {
		t.Fatalf("above maximum: %d", got)
	}
	s.SetReminders(false, 7)
	if s.RemindersEnabled() || s.ReminderAfterDays() != 7 {
		t.Fatalf("in-range update lost: enabled=%v days=%d", s.RemindersEnabled(), s.ReminderAfterDays())
	}
}

func TestNotificationRoutes(t *testing.T) {
	s := New()
	if _, ok := s.NotificationRoute(submissionentities.CategorySuggestion); ok {
		t.Fatal("unset route reported as present")
	}

	s.SetNotificationRoute(submissionentities.CategorySuggestion, submissionports.Route{
		ChannelRef: "chan-1",
		RoleRefs:   "@team",
	})
	route, ok := s.NotificationRoute(submissionentities.CategorySuggestion)
	if !ok || route.ChannelRef != "chan-1" || route.RoleRefs != "@team" {
		t.Fatalf("route %+v ok=%v", route, ok)
	}

	// Blank channel clears the route.
	s.SetNotificationRoute(submissionentities.CategorySuggestion, submissionports.Route{})
	if _, ok := s.NotificationRoute(submissionentities.CategorySuggestion); ok {
		t.Fatal("cleared route still present")
	}
}

func TestFromConfigSeeds(t *testing.T) {
	s := FromConfig(config.Config{
		RemindersEnabled:  true,
		ReminderAfterDays: 5,
		LogChannel:        " chan-log ",
		ShopChannel:       "chan-shop",
		ManualRewardRoles: []string{" @staff ", "", "@owners"},
	})
	if !s.RemindersEnabled() || s.ReminderAfterDays() != 5 {
		t.Fatalf("reminder seed lost")
	}
	if s.LogChannel() != "chan-log" || s.ShopChannel() != "chan-shop" {
		t.Fatalf("channels %q %q", s.LogChannel(), s.ShopChannel())
	}
	roles := s.ManualRewardRoles()
	if len(roles) != 2 || roles[0] != "@staff" || roles[1] != "@owners" {
		t.Fatalf("roles %v", roles)
	}
}
