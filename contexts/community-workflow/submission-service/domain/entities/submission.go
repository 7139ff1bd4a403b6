package entities

import (
	"strings"
	"time"
)

type Category string

const (
	CategorySuggestion  Category = "suggestion"
	CategoryBugReport   Category = "bug_report"
	CategoryComplaint   Category = "complaint"
	CategoryAppeal      Category = "appeal"
	CategoryApplication Category = "application"
)

func ParseCategory(raw string) (Category, bool) {
	switch Category(raw) {
	case CategorySuggestion, CategoryBugReport, CategoryComplaint, CategoryAppeal, CategoryApplication:
		return Category(raw), true
	default:
		return "", false
	}
}

func Categories() []Category {
	return []Category{
		CategorySuggestion,
		CategoryBugReport,
		CategoryComplaint,
		CategoryAppeal,
		CategoryApplication,
	}
}

// Scope selects which moderation team reviews a submission.
type Scope string

const (
	ScopeJB      Scope = "jb"
	ScopeDiscord Scope = "discord"
)

func ParseScope(raw string) (Scope, bool) {
	switch Scope(raw) {
	case ScopeJB, ScopeDiscord:
		return Scope(raw), true
	default:
		return "", false
	}
}

type Capability string

const (
	CapabilityModerateJB      Capability = "moderate_jb"
	CapabilityModerateDiscord Capability = "moderate_discord"
	CapabilityAdministrator   Capability = "administrator"
)

// RequiredCapability maps a scope to the capability its reviewers need.
func RequiredCapability(scope Scope) Capability {
	if scope == ScopeDiscord {
		return CapabilityModerateDiscord
	}
	return CapabilityModerateJB
}

// HasCapability reports whether the set satisfies the requirement.
// administrator satisfies every check.
func HasCapability(held []Capability, required Capability) bool {
	for _, c := range held {
		if c == required || c == CapabilityAdministrator {
			return true
		}
	}
	return false
}

// ApplicationRole is the staff position an application submission applies for.
type ApplicationRole string

const (
	RoleAdminJB      ApplicationRole = "admin_jb"
	RoleTrustedJB    ApplicationRole = "trusted_jb"
	RoleAdminDiscord ApplicationRole = "admin_discord"
)

func ParseApplicationRole(raw string) (ApplicationRole, bool) {
	switch ApplicationRole(raw) {
	case RoleAdminJB, RoleTrustedJB, RoleAdminDiscord:
		return ApplicationRole(raw), true
	default:
		return "", false
	}
}

// RolesForApplication is the fixed set of platform roles granted when an
// application for the position is accepted.
func RolesForApplication(role ApplicationRole) []string {
	switch role {
	case RoleAdminJB:
		return []string{"role-junior-admin-jb", "role-admin-team-jb"}
	case RoleTrustedJB:
		return []string{"role-trusted-jb", "role-admin-team-jb"}
	case RoleAdminDiscord:
		return []string{"role-admin-discord"}
	default:
		return nil
	}
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusReported   Status = "reported"
	StatusInProgress Status = "in_progress"
	StatusAccepted   Status = "accepted"
	StatusResolved   Status = "resolved"
	StatusRejected   Status = "rejected"
)

// InitialStatus is the status a fresh submission starts in.
func InitialStatus(category Category) Status {
	if category == CategoryBugReport {
		return StatusReported
	}
	return StatusPending
}

func (s Status) Terminal() bool {
	switch s {
	case StatusAccepted, StatusResolved, StatusRejected:
		return true
	default:
		return false
	}
}

type Action string

const (
	ActionAccept   Action = "accept"
	ActionReject   Action = "reject"
	ActionStartFix Action = "start_fix"
	ActionResolve  Action = "resolve"
)

func ParseAction(raw string) (Action, bool) {
	switch Action(raw) {
	case ActionAccept, ActionReject, ActionStartFix, ActionResolve:
		return Action(raw), true
	default:
		return "", false
	}
}

// ActionsFor is the full decision table: which actions a reviewer may take on
// a submission in its current status. Terminal statuses allow nothing.
func ActionsFor(category Category, status Status) []Action {
	switch {
	case status.Terminal():
		return nil
	case category == CategoryBugReport && status == StatusReported:
		return []Action{ActionStartFix, ActionReject}
	case category == CategoryBugReport && status == StatusInProgress:
		return []Action{ActionResolve, ActionReject}
	case status == StatusPending:
		return []Action{ActionAccept, ActionReject}
	default:
		return nil
	}
}

// ActionAllowed reports whether action is in ActionsFor(category, status).
func ActionAllowed(category Category, status Status, action Action) bool {
	for _, a := range ActionsFor(category, status) {
		if a == action {
			return true
		}
	}
	return false
}

// StatusAfter is the status an allowed action moves the submission to.
func StatusAfter(action Action) Status {
	switch action {
	case ActionAccept:
		return StatusAccepted
	case ActionStartFix:
		return StatusInProgress
	case ActionResolve:
		return StatusResolved
	default:
		return StatusRejected
	}
}

// Award is the reputation granted to the submitter for a decision. Only a
// suggestion accept and a bug resolve pay out.
func Award(category Category, action Action) int {
	switch {
	case category == CategorySuggestion && action == ActionAccept:
		return 5
	case category == CategoryBugReport && action == ActionResolve:
		return 3
	default:
		return 0
	}
}

type DecisionTone string

const (
	ToneSuccess DecisionTone = "success"
	ToneFailure DecisionTone = "failure"
	ToneNeutral DecisionTone = "neutral"
)

// StatusLabel is the human-facing outcome label used in rendered decisions
// and archived thread names.
func StatusLabel(status Status) string {
	switch status {
	case StatusAccepted:
		return "[Accepted]"
	case StatusResolved:
		return "[Fixed]"
	case StatusRejected:
		return "[Rejected]"
	case StatusInProgress:
		return "[In Progress]"
	default:
		return ""
	}
}

func ToneFor(status Status) DecisionTone {
	switch status {
	case StatusAccepted, StatusResolved:
		return ToneSuccess
	case StatusRejected:
		return ToneFailure
	default:
		return ToneNeutral
	}
}

const maxThreadNameRunes = 100

// ArchiveThreadName builds the terminal thread title. Platform thread names
// cap at 100 runes; longer titles are cut to 97 plus an ellipsis.
func ArchiveThreadName(status Status, title string) string {
	name := StatusLabel(status) + " " + title
	runes := []rune(name)
	if len(runes) <= maxThreadNameRunes {
		return name
	}
	return string(runes[:maxThreadNameRunes-3]) + "..."
}

// Field is one labeled answer from the submission form, kept in form order.
type Field struct {
	Label string
	Value string
}

type Submission struct {
	SubmissionID    string
	Category        Category
	Scope           Scope
	ApplicationRole ApplicationRole
	SubmitterID     string
	DisplayName     string
	Title           string
	Fields          []Field
	ThreadRef       string
	Status          Status
	DecisionReason  string
	DecidedByID     string
	ReminderSent    bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (s Submission) ValidateCreate() bool {
	return strings.TrimSpace(s.SubmitterID) != "" &&
		strings.TrimSpace(s.Title) != ""
}

// DecisionAudit is one row of the decision trail, written on creation and on
// every decision.
type DecisionAudit struct {
	AuditID      string
	SubmissionID string
	Category     Category
	ActorID      string
	Action       string
	Detail       string
	CreatedAt    time.Time
}

// RecruitmentPosition gates application submissions; unknown positions are
// treated as open.
type RecruitmentPosition struct {
	Position ApplicationRole
	Open     bool
}

// RejectionTemplates are the canned per-category rejection reasons offered by
// the transport layer; free text remains allowed.
func RejectionTemplates(category Category) []string {
	switch category {
	case CategorySuggestion:
		return []string{
			"Already suggested before",
			"Out of scope for the server",
			"Not enough detail to act on",
		}
	case CategoryBugReport:
		return []string{
			"Could not reproduce",
			"Not a bug, works as intended",
			"Duplicate report",
		}
	case CategoryComplaint:
		return []string{
			"Insufficient evidence",
			"Handled in another report",
		}
	case CategoryAppeal:
		return []string{
			"Ban upheld after review",
			"Appeal submitted too early",
		}
	case CategoryApplication:
		return []string{
			"Requirements not met",
			"Recruitment for this position is closed",
			"Insufficient activity",
		}
	default:
		return nil
	}
}
