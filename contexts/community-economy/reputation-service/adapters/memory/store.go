package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"warden/contexts/community-economy/reputation-service/ports"
)

type Store struct {
	mu     sync.RWMutex
	points map[string]int
}

func NewStore() *Store {
	return &Store{points: make(map[string]int)}
}

func (s *Store) AddPoints(_ context.Context, userID string, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID = strings.TrimSpace(userID)
	s.points[userID] += delta
	return s.points[userID], nil
}

func (s *Store) SetPoints(_ context.Context, userID string, points int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.points[strings.TrimSpace(userID)] = points
	return points, nil
}

func (s *Store) GetPoints(_ context.Context, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.points[strings.TrimSpace(userID)], nil
}

func (s *Store) Top(_ context.Context, limit int) ([]ports.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]ports.Account, 0, len(s.points))
	for userID, points := range s.points {
		accounts = append(accounts, ports.Account{UserID: userID, Points: points})
	}
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].Points == accounts[j].Points {
			return accounts[i].UserID < accounts[j].UserID
		}
		return accounts[i].Points > accounts[j].Points
	})
	if len(accounts) > limit {
		accounts = accounts[:limit]
	}
	return accounts, nil
}
