// Package settings holds the runtime-tunable community configuration shared
// by the workflow and economy services.
package settings

import (
	"strings"
	"sync"

	submissionentities "warden/contexts/community-workflow/submission-service/domain/entities"
	submissionports "warden/contexts/community-workflow/submission-service/ports"
	"warden/internal/platform/config"
)

const (
	minReminderDays     = 1
	maxReminderDays     = 30
	defaultReminderDays = 3
)

// Store is a mutex-guarded runtime configuration. It satisfies the Settings
// ports of the submission and shop services.
type Store struct {
	mu                sync.RWMutex
	remindersEnabled  bool
	reminderAfterDays int
	routes            map[submissionentities.Category]submissionports.Route
	logChannel        string
	shopChannel       string
	manualRewardRoles []string
}

func New() *Store {
	return &Store{
		reminderAfterDays: defaultReminderDays,
		routes:            make(map[submissionentities.Category]submissionports.Route),
	}
}

// FromConfig seeds the store from process configuration.
func FromConfig(cfg config.Config) *Store {
	s := New()
	s.SetReminders(cfg.RemindersEnabled, cfg.ReminderAfterDays)
	s.SetLogChannel(cfg.LogChannel)
	s.SetShopChannel(cfg.ShopChannel)
	s.SetManualRewardRoles(cfg.ManualRewardRoles)
	return s
}

func (s *Store) RemindersEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.remindersEnabled
}

func (s *Store) ReminderAfterDays() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reminderAfterDays
}

// SetReminders updates the reminder policy. Days outside 1..30 are clamped.
func (s *Store) SetReminders(enabled bool, days int) {
	if days < minReminderDays {
		days = minReminderDays
	}
	if days > maxReminderDays {
		days = maxReminderDays
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remindersEnabled = enabled
	s.reminderAfterDays = days
}

func (s *Store) NotificationRoute(category submissionentities.Category) (submissionports.Route, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	route, ok := s.routes[category]
	return route, ok
}

func (s *Store) SetNotificationRoute(category submissionentities.Category, route submissionports.Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(route.ChannelRef) == "" {
		delete(s.routes, category)
		return
	}
	s.routes[category] = route
}

func (s *Store) LogChannel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logChannel
}

func (s *Store) SetLogChannel(channelRef string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logChannel = strings.TrimSpace(channelRef)
}

func (s *Store) ShopChannel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shopChannel
}

func (s *Store) SetShopChannel(channelRef string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shopChannel = strings.TrimSpace(channelRef)
}

func (s *Store) ManualRewardRoles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.manualRewardRoles...)
}

func (s *Store) SetManualRewardRoles(roles []string) {
	cleaned := make([]string, 0, len(roles))
	for _, role := range roles {
		role = strings.TrimSpace(role)
		if role != "" {
			cleaned = append(cleaned, role)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manualRewardRoles = cleaned
}
