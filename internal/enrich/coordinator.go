// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package enrich

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nexindemo/Nex-reelmenu/internal/catalog"
	"github.com/nexindemo/Nex-reelmenu/internal/provider"
)

// DefaultTimeout bounds how long an entry may stay pending.
const DefaultTimeout = 45 * time.Second

// Config tunes a Coordinator. Zero values take defaults.
type Config struct {
	// Timeout after which a pending entry becomes failed.
	Timeout time.Duration

	// Now is the clock used for Entry.UpdatedAt.
	Now func() time.Time
}

// Update is delivered to a subscription when an entry for its item settles.
type Update struct {
	Subscription uint64
	Key          Key
	Entry        Entry
}

// Notifier receives updates. It is called from request goroutines and must
// not block.
type Notifier func(Update)

// Stats counts coordinator activity.
type Stats struct {
	Requests  int64 // provider calls issued
	Hits      int64 // requests answered from a ready entry
	Attached  int64 // requests that joined a pending entry
	Ready     int64
	Failed    int64
	Timeouts  int64
	Discarded int64 // results that arrived for a superseded request
}

type fetchFunc func(ctx context.Context) (Entry, error)

// Coordinator owns all enrichment requests.
//
// The Coordinator is safe for concurrent use.
type Coordinator struct {
	store    Store
	provider provider.Provider
	timeout  time.Duration
	now      func() time.Time
	log      *zap.Logger

	mu      sync.Mutex
	waiters map[Key]chan struct{} // closed when the pending entry settles
	subs    map[uint64]*Subscription
	notify  Notifier

	nextSub atomic.Uint64
	stats   struct {
		requests, hits, attached, ready, failed, timeouts, discarded atomic.Int64
	}
}

// New creates a Coordinator over store and p.
func New(store Store, p provider.Provider, cfg Config, log *zap.Logger) *Coordinator {
	if store == nil {
		store = NewMemoryStore()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Coordinator{
		store:    store,
		provider: p,
		timeout:  cfg.Timeout,
		now:      cfg.Now,
		log:      log.Named("enrich"),
		waiters:  make(map[Key]chan struct{}),
		subs:     make(map[uint64]*Subscription),
	}
}

// SetNotifier installs the update sink. Passing nil disables delivery.
func (c *Coordinator) SetNotifier(n Notifier) {
	c.mu.Lock()
	c.notify = n
	c.mu.Unlock()
}

// Provider returns the backend requests are sent to.
func (c *Coordinator) Provider() provider.Provider {
	return c.provider
}

// =============================================================================
// REQUESTS
// =============================================================================

// EnsureImage makes sure an image request exists for item and returns the
// current entry without blocking. Items whose base image is already
// generated are reported ready without touching the store. A failed image
// entry is not retried.
func (c *Coordinator) EnsureImage(item catalog.Item) Entry {
	if !item.NeedsImage() {
		return Entry{State: StateReady, ImageRef: item.Image}
	}
	return c.request(ImageKey(item.ID), false, func(ctx context.Context) (Entry, error) {
		ref, err := c.provider.GenerateImage(ctx, item)
		if err != nil {
			return Entry{}, err
		}
		if ref == "" || ref == item.Image {
			return Entry{}, errors.New("provider returned no new image")
		}
		return Entry{ImageRef: ref}, nil
	})
}

// RequestNutrition issues a nutrition request for item unless one is ready
// or pending, and returns the current entry without blocking. A failed
// entry is requested again, since this is only called on an explicit open.
func (c *Coordinator) RequestNutrition(item catalog.Item) Entry {
	return c.request(NutritionKey(item.ID), true, func(ctx context.Context) (Entry, error) {
		n, err := c.provider.Nutrition(ctx, item)
		if err != nil {
			return Entry{}, err
		}
		if n == nil {
			return Entry{}, errors.New("provider returned no nutrition facts")
		}
		return Entry{Nutrition: n}, nil
	})
}

func (c *Coordinator) request(key Key, retryFailed bool, fetch fetchFunc) Entry {
	token := uuid.NewString()

	c.mu.Lock()
	entry, started := c.store.Update(key, func(cur Entry) (Entry, bool) {
		switch cur.State {
		case StateReady, StatePending:
			return cur, false
		case StateFailed:
			if !retryFailed {
				return cur, false
			}
		}
		return Entry{State: StatePending, Token: token, UpdatedAt: c.now()}, true
	})
	if started {
		c.waiters[key] = make(chan struct{})
	}
	c.mu.Unlock()

	if !started {
		switch entry.State {
		case StateReady:
			c.stats.hits.Add(1)
		case StatePending:
			c.stats.attached.Add(1)
			c.log.Debug("joined pending request", zap.Stringer("key", key))
		}
		return entry
	}

	c.stats.requests.Add(1)
	c.log.Debug("request issued", zap.Stringer("key", key), zap.String("token", token))
	go c.run(key, token, fetch)
	return entry
}

type fetchResult struct {
	entry Entry
	err   error
}

// run performs one request and settles its entry. The timer guarantees the
// entry leaves pending even when the provider ignores ctx.
func (c *Coordinator) run(key Key, token string, fetch fetchFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	done := make(chan fetchResult, 1)
	go func() {
		e, err := fetch(ctx)
		done <- fetchResult{entry: e, err: err}
	}()

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	var res fetchResult
	select {
	case res = <-done:
	case <-timer.C:
		res = fetchResult{err: provider.ErrTimeout}
	}
	c.settle(key, token, res)
}

func (c *Coordinator) settle(key Key, token string, res fetchResult) {
	now := c.now()

	c.mu.Lock()
	entry, applied := c.store.Update(key, func(cur Entry) (Entry, bool) {
		if cur.State != StatePending || cur.Token != token {
			return cur, false
		}
		if res.err != nil {
			return Entry{State: StateFailed, Token: token, Reason: res.err.Error(), UpdatedAt: now}, true
		}
		next := res.entry
		next.State = StateReady
		next.Token = token
		next.UpdatedAt = now
		return next, true
	})

	var targets []uint64
	notify := c.notify
	if applied {
		if done, ok := c.waiters[key]; ok {
			close(done)
			delete(c.waiters, key)
		}
		for id, s := range c.subs {
			if s.itemID == key.ItemID {
				targets = append(targets, id)
			}
		}
	}
	c.mu.Unlock()

	if !applied {
		c.stats.discarded.Add(1)
		c.log.Debug("discarded superseded result", zap.Stringer("key", key), zap.String("token", token))
		return
	}

	if res.err != nil {
		c.stats.failed.Add(1)
		if provider.KindOf(res.err) == provider.KindTimeout {
			c.stats.timeouts.Add(1)
		}
		if provider.IsNotConfigured(res.err) {
			c.log.Info("enrichment unavailable, using fallback", zap.Stringer("key", key))
		} else {
			c.log.Warn("enrichment failed, using fallback", zap.Stringer("key", key), zap.Error(res.err))
		}
	} else {
		c.stats.ready.Add(1)
		c.log.Debug("enrichment ready", zap.Stringer("key", key))
	}

	if notify == nil {
		return
	}
	for _, id := range targets {
		notify(Update{Subscription: id, Key: key, Entry: entry})
	}
}

// Await blocks until the entry for key is no longer pending or ctx is done,
// and returns the entry at that point.
func (c *Coordinator) Await(ctx context.Context, key Key) (Entry, error) {
	c.mu.Lock()
	entry := c.store.Get(key)
	done := c.waiters[key]
	c.mu.Unlock()

	if entry.State != StatePending || done == nil {
		return entry, nil
	}
	select {
	case <-done:
		return c.store.Get(key), nil
	case <-ctx.Done():
		return c.store.Get(key), ctx.Err()
	}
}

// =============================================================================
// LOOKUPS
// =============================================================================

// Entry returns the current entry for key.
func (c *Coordinator) Entry(key Key) Entry {
	return c.store.Get(key)
}

// ImageFor returns the image to display for item and the state of its image
// entry. Until a generated image is ready this is the base image.
func (c *Coordinator) ImageFor(item catalog.Item) (string, State) {
	if !item.NeedsImage() {
		return item.Image, StateReady
	}
	e := c.store.Get(ImageKey(item.ID))
	if e.State == StateReady && e.ImageRef != "" {
		return e.ImageRef, StateReady
	}
	return item.Image, e.State
}

// Stats returns a snapshot of the activity counters.
func (c *Coordinator) Stats() Stats {
	return Stats{
		Requests:  c.stats.requests.Load(),
		Hits:      c.stats.hits.Load(),
		Attached:  c.stats.attached.Load(),
		Ready:     c.stats.ready.Load(),
		Failed:    c.stats.failed.Load(),
		Timeouts:  c.stats.timeouts.Load(),
		Discarded: c.stats.discarded.Load(),
	}
}

// Pending returns the number of requests in flight.
func (c *Coordinator) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.waiters)
}
