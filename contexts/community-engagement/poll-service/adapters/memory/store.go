package memory

import (
	"context"
	"sort"
	"sync"

	"warden/contexts/community-engagement/poll-service/domain/entities"
	domainerrors "warden/contexts/community-engagement/poll-service/domain/errors"
)

// Store is an in-memory poll repository for tests and local development.
type Store struct {
	mu    sync.RWMutex
	polls map[string]entities.Poll
}

func NewStore() *Store {
	return &Store{polls: make(map[string]entities.Poll)}
}

func (s *Store) Save(_ context.Context, poll entities.Poll) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls[poll.AnchorID] = clonePoll(poll)
	return nil
}

func (s *Store) Get(_ context.Context, anchorID string) (entities.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	poll, ok := s.polls[anchorID]
	if !ok {
		return entities.Poll{}, domainerrors.ErrPollNotFound
	}
	return clonePoll(poll), nil
}

func (s *Store) Delete(_ context.Context, anchorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.polls[anchorID]; !ok {
		return domainerrors.ErrPollNotFound
	}
	delete(s.polls, anchorID)
	return nil
}

func (s *Store) List(_ context.Context) ([]entities.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Poll, 0, len(s.polls))
	for _, poll := range s.polls {
		out = append(out, clonePoll(poll))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AnchorID < out[j].AnchorID })
	return out, nil
}

func clonePoll(poll entities.Poll) entities.Poll {
	cloned := poll
	cloned.Options = append([]string(nil), poll.Options...)
	cloned.Votes = make([][]string, len(poll.Votes))
	for i, voters := range poll.Votes {
		cloned.Votes[i] = append([]string(nil), voters...)
	}
	return cloned
}
