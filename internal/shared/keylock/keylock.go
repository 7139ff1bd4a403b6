// Package keylock serializes mutations per entity key.
// Decision transitions, stock decrements, and ledger debits each lock the
// key they mutate so check-then-act sequences stay atomic under concurrent
// requests.
package keylock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// KeyedMutex hands out one mutex per key. Entries are dropped once the last
// holder releases, so the map does not grow with the key space.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func New() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*entry)}
}

// Lock blocks until the key is held and returns the release func.
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.entries, key)
		}
		k.mu.Unlock()
	}
}
