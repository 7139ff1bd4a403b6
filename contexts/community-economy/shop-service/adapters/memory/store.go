package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"warden/contexts/community-economy/shop-service/domain/entities"
	domainerrors "warden/contexts/community-economy/shop-service/domain/errors"
)

// Store is an in-memory shop repository plus ID generator for tests and local
// development.
type Store struct {
	mu        sync.RWMutex
	items     map[string]entities.Item
	purchases map[string]map[string]struct{}
	seq       atomic.Int64
}

func NewStore() *Store {
	return &Store{
		items:     make(map[string]entities.Item),
		purchases: make(map[string]map[string]struct{}),
	}
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return fmt.Sprintf("item-%d", s.seq.Add(1)), nil
}

func (s *Store) CreateItem(_ context.Context, item entities.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.Stock != nil {
		stock := *item.Stock
		item.Stock = &stock
	}
	s.items[item.ItemID] = item
	return nil
}

func (s *Store) DeleteItem(_ context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[itemID]; !ok {
		return domainerrors.ErrItemNotFound
	}
	delete(s.items, itemID)
	return nil
}

func (s *Store) GetItem(_ context.Context, itemID string) (entities.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[itemID]
	if !ok {
		return entities.Item{}, domainerrors.ErrItemNotFound
	}
	if item.Stock != nil {
		stock := *item.Stock
		item.Stock = &stock
	}
	return item, nil
}

func (s *Store) ListItems(_ context.Context, category entities.ItemCategory) ([]entities.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Item, 0)
	for _, item := range s.items {
		if item.Category != category {
			continue
		}
		if item.Stock != nil {
			stock := *item.Stock
			item.Stock = &stock
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cost != out[j].Cost {
			return out[i].Cost < out[j].Cost
		}
		return out[i].ItemID < out[j].ItemID
	})
	return out, nil
}

func (s *Store) HasPurchase(_ context.Context, userID, itemID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	owned, ok := s.purchases[userID]
	if !ok {
		return false, nil
	}
	_, has := owned[itemID]
	return has, nil
}

func (s *Store) ApplyPurchase(_ context.Context, userID string, item entities.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.items[item.ItemID]
	if !ok {
		return domainerrors.ErrItemNotFound
	}
	if stored.Stock != nil && *stored.Stock <= 0 {
		return domainerrors.ErrSoldOut
	}
	if item.Category.IsUniqueReward() {
		if owned, ok := s.purchases[userID]; ok {
			if _, has := owned[item.ItemID]; has {
				return domainerrors.ErrAlreadyOwned
			}
		}
	}

	if stored.Stock != nil {
		stock := *stored.Stock - 1
		stored.Stock = &stock
		s.items[item.ItemID] = stored
	}
	if item.Category.IsUniqueReward() {
		if _, ok := s.purchases[userID]; !ok {
			s.purchases[userID] = make(map[string]struct{})
		}
		s.purchases[userID][item.ItemID] = struct{}{}
	}
	return nil
}
