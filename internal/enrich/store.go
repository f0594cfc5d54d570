// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package enrich

import "sync"

// Store holds enrichment entries. Implementations must make Update atomic
// per key.
type Store interface {
	// Get returns the entry for key, or an absent entry.
	Get(key Key) Entry

	// Update calls fn with the current entry for key and stores the entry
	// fn returns when fn also returns true. It returns the entry now held
	// and whether a write happened.
	Update(key Key, fn func(cur Entry) (Entry, bool)) (Entry, bool)

	// Counts returns the number of entries in each state.
	Counts() map[State]int
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[Key]Entry
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[Key]Entry)}
}

// Get implements Store.
func (s *MemoryStore) Get(key Key) Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[key]
}

// Update implements Store.
func (s *MemoryStore) Update(key Key, fn func(cur Entry) (Entry, bool)) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.entries[key]
	next, write := fn(cur)
	if !write {
		return cur, false
	}
	s.entries[key] = next
	return next, true
}

// Counts implements Store.
func (s *MemoryStore) Counts() map[State]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[State]int, 4)
	for _, e := range s.entries {
		out[e.State]++
	}
	return out
}
