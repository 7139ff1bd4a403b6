package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"warden/contexts/community-workflow/submission-service/domain/entities"
	domainerrors "warden/contexts/community-workflow/submission-service/domain/errors"
)

type tableKey struct {
	category entities.Category
	id       string
}

// Store keeps submissions, audits and recruitment state in memory. It doubles
// as the Clock and IDGenerator for tests and local development.
type Store struct {
	mu          sync.RWMutex
	submissions map[tableKey]entities.Submission
	audits      []entities.DecisionAudit
	positions   map[entities.ApplicationRole]bool
	seq         atomic.Int64
	now         func() time.Time
}

func NewStore() *Store {
	return &Store{
		submissions: make(map[tableKey]entities.Submission),
		positions:   make(map[entities.ApplicationRole]bool),
		now:         time.Now,
	}
}

// SetNow overrides the clock, for tests.
func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return fmt.Sprintf("sub-%d", s.seq.Add(1)), nil
}

func (s *Store) CreateSubmission(_ context.Context, submission entities.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions[tableKey{submission.Category, submission.SubmissionID}] = cloneSubmission(submission)
	return nil
}

func (s *Store) GetSubmission(_ context.Context, category entities.Category, submissionID string) (entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	submission, ok := s.submissions[tableKey{category, submissionID}]
	if !ok {
		return entities.Submission{}, domainerrors.ErrSubmissionNotFound
	}
	return cloneSubmission(submission), nil
}

func (s *Store) UpdateSubmission(_ context.Context, submission entities.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := tableKey{submission.Category, submission.SubmissionID}
	if _, ok := s.submissions[key]; !ok {
		return domainerrors.ErrSubmissionNotFound
	}
	s.submissions[key] = cloneSubmission(submission)
	return nil
}

func (s *Store) ListBySubmitter(_ context.Context, submitterID string) (map[entities.Category][]entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[entities.Category][]entities.Submission)
	for _, submission := range s.submissions {
		if submission.SubmitterID != submitterID {
			continue
		}
		out[submission.Category] = append(out[submission.Category], cloneSubmission(submission))
	}
	for category := range out {
		list := out[category]
		sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	}
	return out, nil
}

func (s *Store) CountBySubmitter(_ context.Context, submitterID string) (map[entities.Category]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[entities.Category]int)
	for _, submission := range s.submissions {
		if submission.SubmitterID == submitterID {
			counts[submission.Category]++
		}
	}
	return counts, nil
}

func (s *Store) ListStale(_ context.Context, cutoff time.Time) ([]entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var stale []entities.Submission
	for _, submission := range s.submissions {
		if submission.Status.Terminal() || submission.ReminderSent {
			continue
		}
		if !submission.CreatedAt.Before(cutoff) {
			continue
		}
		stale = append(stale, cloneSubmission(submission))
	}
	sort.Slice(stale, func(i, j int) bool { return stale[i].CreatedAt.Before(stale[j].CreatedAt) })
	return stale, nil
}

func (s *Store) MarkReminderSent(_ context.Context, category entities.Category, submissionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := tableKey{category, submissionID}
	submission, ok := s.submissions[key]
	if !ok {
		return domainerrors.ErrSubmissionNotFound
	}
	submission.ReminderSent = true
	s.submissions[key] = submission
	return nil
}

func (s *Store) AppendAudit(_ context.Context, audit entities.DecisionAudit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if audit.AuditID == "" {
		audit.AuditID = fmt.Sprintf("audit-%d", len(s.audits)+1)
	}
	s.audits = append(s.audits, audit)
	return nil
}

// Audits returns a copy of the audit trail, for tests.
func (s *Store) Audits() []entities.DecisionAudit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.DecisionAudit(nil), s.audits...)
}

func (s *Store) SetPositionOpen(_ context.Context, position entities.ApplicationRole, open bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[position] = open
	return nil
}

func (s *Store) IsPositionOpen(_ context.Context, position entities.ApplicationRole) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	open, ok := s.positions[position]
	if !ok {
		return true, nil
	}
	return open, nil
}

func (s *Store) ListPositions(_ context.Context) ([]entities.RecruitmentPosition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.RecruitmentPosition, 0, len(s.positions))
	for position, open := range s.positions {
		out = append(out, entities.RecruitmentPosition{Position: position, Open: open})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func cloneSubmission(submission entities.Submission) entities.Submission {
	cloned := submission
	cloned.Fields = append([]entities.Field(nil), submission.Fields...)
	return cloned
}
