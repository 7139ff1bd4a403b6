package entities

import (
	"strings"
	"testing"
)

func TestInitialStatus(t *testing.T) {
	if got := InitialStatus(CategoryBugReport); got != StatusReported {
		t.Fatalf("bug report initial status %s", got)
	}
	for _, category := range []Category{CategorySuggestion, CategoryComplaint, CategoryAppeal, CategoryApplication} {
		if got := InitialStatus(category); got != StatusPending {
			t.Fatalf("%s initial status %s", category, got)
		}
	}
}

func TestActionsForDecisionTable(t *testing.T) {
	cases := []struct {
		category Category
		status   Status
		want     []Action
	}{
		{CategorySuggestion, StatusPending, []Action{ActionAccept, ActionReject}},
		{CategoryComplaint, StatusPending, []Action{ActionAccept, ActionReject}},
		{CategoryAppeal, StatusPending, []Action{ActionAccept, ActionReject}},
		{CategoryApplication, StatusPending, []Action{ActionAccept, ActionReject}},
		{CategoryBugReport, StatusReported, []Action{ActionStartFix, ActionReject}},
		{CategoryBugReport, StatusInProgress, []Action{ActionResolve, ActionReject}},
		{CategorySuggestion, StatusAccepted, nil},
		{CategoryBugReport, StatusResolved, nil},
		{CategoryAppeal, StatusRejected, nil},
	}
	for _, tc := range cases {
		got := ActionsFor(tc.category, tc.status)
		if len(got) != len(tc.want) {
			t.Fatalf("%s/%s: got %v want %v", tc.category, tc.status, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("%s/%s: got %v want %v", tc.category, tc.status, got, tc.want)
			}
		}
	}
}

func TestAwardTable(t *testing.T) {
	if got := Award(CategorySuggestion, ActionAccept); got != 5 {
		t.Fatalf("suggestion accept award %d", got)
	}
	if got := Award(CategoryBugReport, ActionResolve); got != 3 {
		t.Fatalf("bug resolve award %d", got)
	}
	for _, category := range Categories() {
		for _, action := range []Action{ActionAccept, ActionReject, ActionStartFix, ActionResolve} {
			if category == CategorySuggestion && action == ActionAccept {
				continue
			}
			if category == CategoryBugReport && action == ActionResolve {
				continue
			}
			if got := Award(category, action); got != 0 {
				t.Fatalf("%s/%s award %d, want 0", category, action, got)
			}
		}
	}
}

func TestHasCapability(t *testing.T) {
	if !HasCapability([]Capability{CapabilityModerateJB}, CapabilityModerateJB) {
		t.Fatal("exact capability should pass")
	}
	if HasCapability([]Capability{CapabilityModerateJB}, CapabilityModerateDiscord) {
		t.Fatal("wrong scope should fail")
	}
	if !HasCapability([]Capability{CapabilityAdministrator}, CapabilityModerateDiscord) {
		t.Fatal("administrator should satisfy any check")
	}
	if HasCapability(nil, CapabilityModerateJB) {
		t.Fatal("empty set should fail")
	}
}

func TestArchiveThreadNameTruncation(t *testing.T) {
	short := ArchiveThreadName(StatusAccepted, "short title")
	if short != "[Accepted] short title" {
		t.Fatalf("short name %q", short)
	}

	long := strings.Repeat("x", 120)
	name := ArchiveThreadName(StatusRejected, long)
	runes := []rune(name)
	if len(runes) != 100 {
		t.Fatalf("truncated name has %d runes", len(runes))
	}
	if !strings.HasSuffix(name, "...") {
		t.Fatalf("truncated name missing ellipsis: %q", name)
	}
	if !strings.HasPrefix(name, "[Rejected] ") {
		t.Fatalf("prefix lost: %q", name)
	}
}

func TestRolesForApplication(t *testing.T) {
	cases := map[ApplicationRole][]string{
		RoleAdminJB:      {"role-junior-admin-jb", "role-admin-team-jb"},
		RoleTrustedJB:    {"role-trusted-jb", "role-admin-team-jb"},
		RoleAdminDiscord: {"role-admin-discord"},
	}
	for role, want := range cases {
		got := RolesForApplication(role)
		if len(got) != len(want) {
			t.Fatalf("%s: got %v want %v", role, got, want)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("%s: got %v want %v", role, got, want)
			}
		}
	}
}

func TestRejectionTemplatesCoverEveryCategory(t *testing.T) {
	for _, category := range Categories() {
		if len(RejectionTemplates(category)) == 0 {
			t.Fatalf("%s has no rejection templates", category)
		}
	}
}
