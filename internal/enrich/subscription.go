// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package enrich

// Subscription is one view instance's interest in an item. Updates for the
// item are delivered tagged with the subscription id while it is attached.
type Subscription struct {
	id     uint64
	itemID string
	c      *Coordinator
}

// Attach registers a new view instance for itemID.
func (c *Coordinator) Attach(itemID string) *Subscription {
	s := &Subscription{id: c.nextSub.Add(1), itemID: itemID, c: c}
	c.mu.Lock()
	c.subs[s.id] = s
	c.mu.Unlock()
	return s
}

// ID identifies the subscription in Update values.
func (s *Subscription) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// ItemID is the item the view shows.
func (s *Subscription) ItemID() string {
	if s == nil {
		return ""
	}
	return s.itemID
}

// Detach stops delivery. Results still land in the store. Safe to call
// more than once and on a nil subscription.
func (s *Subscription) Detach() {
	if s == nil {
		return
	}
	s.c.mu.Lock()
	delete(s.c.subs, s.id)
	s.c.mu.Unlock()
}

// Active reports whether the subscription is still attached.
func (s *Subscription) Active() bool {
	if s == nil {
		return false
	}
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	_, ok := s.c.subs[s.id]
	return ok
}
