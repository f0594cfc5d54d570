// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nexindemo/Nex-reelmenu/internal/cart"
	"github.com/nexindemo/Nex-reelmenu/internal/catalog"
	"github.com/nexindemo/Nex-reelmenu/internal/chat"
	"github.com/nexindemo/Nex-reelmenu/internal/enrich"
	"github.com/nexindemo/Nex-reelmenu/internal/focus"
	"github.com/nexindemo/Nex-reelmenu/internal/search"
	"github.com/nexindemo/Nex-reelmenu/internal/util"
)

// Recorder stores placed orders.
type Recorder interface {
	Save(ctx context.Context, r cart.Receipt) error
}

// Deps are the components a Controller drives. Catalog, Coordinator, Chats
// and Search are required.
type Deps struct {
	Catalog     *catalog.Catalog
	Coordinator *enrich.Coordinator
	Chats       *chat.Sessions
	Search      *search.Filter
	Recorder    Recorder // optional
	Now         func() time.Time
	Logger      *zap.Logger
}

// FilterState describes the active search filter.
type FilterState struct {
	Active    bool
	Query     string
	NoMatches bool // the filter matched nothing and the empty state is shown
	Degraded  bool // the last search fell back to the full menu on error
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller is the browsing session. All methods are safe for concurrent
// use; the UI calls them from Update and the provider results arrive from
// other goroutines.
type Controller struct {
	mu sync.Mutex

	catalog   *catalog.Catalog
	displayed []catalog.Item
	filter    FilterState
	tracker   *focus.Tracker
	ledger    *cart.Ledger

	coord    *enrich.Coordinator
	chats    *chat.Sessions
	search   *search.Filter
	recorder Recorder

	// Subscriptions of the focused card and the nutrition overlay.
	active    *enrich.Subscription
	nutrition *enrich.Subscription

	generation uint64 // bumped by every search start and clear
	searching  bool

	now func() time.Time
	log *zap.Logger
}

// New creates a Controller showing the full catalog with the first card
// focused.
func New(d Deps) *Controller {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	c := &Controller{
		catalog:  d.Catalog,
		coord:    d.Coordinator,
		chats:    d.Chats,
		search:   d.Search,
		recorder: d.Recorder,
		now:      d.Now,
		log:      d.Logger.Named("session"),
	}
	c.ledger = cart.NewLedger(d.Catalog.Lookup)
	c.displayed = d.Catalog.Items()
	c.tracker = focus.NewTracker(len(c.displayed))
	c.activate()
	return c
}

// Catalog returns the full menu.
func (c *Controller) Catalog() *catalog.Catalog { return c.catalog }

// Coordinator returns the enrichment coordinator.
func (c *Controller) Coordinator() *enrich.Coordinator { return c.coord }

// Displayed returns the collection currently shown.
func (c *Controller) Displayed() []catalog.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]catalog.Item, len(c.displayed))
	copy(out, c.displayed)
	return out
}

// Focus returns the focused index and item. ok is false when nothing is
// displayed.
func (c *Controller) Focus() (idx int, item catalog.Item, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focusedLocked()
}

func (c *Controller) focusedLocked() (int, catalog.Item, bool) {
	idx := c.tracker.Index()
	if idx >= len(c.displayed) {
		return idx, catalog.Item{}, false
	}
	return idx, c.displayed[idx], true
}

// activate moves the image subscription to the focused card and makes sure
// its image is requested. Callers hold c.mu or own c exclusively.
func (c *Controller) activate() {
	c.active.Detach()
	c.active = nil
	_, item, ok := c.focusedLocked()
	if !ok {
		return
	}
	c.active = c.coord.Attach(item.ID)
	e := c.coord.EnsureImage(item)
	c.log.Debug("card focused", zap.String("item", item.ID), zap.Stringer("image", e.State))
}

// replace swaps the displayed collection and focuses its first card.
func (c *Controller) replace(items []catalog.Item) {
	c.displayed = items
	c.tracker.Reset(len(items))
	c.activate()
}

// =============================================================================
// FOCUS
// =============================================================================

// Scroll reports the feed's scroll offset and the height of one card.
// It returns the focused index and whether focus moved.
func (c *Controller) Scroll(offset, extent float64) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx, changed := c.tracker.Observe(offset, extent)
	if changed {
		c.activate()
	}
	return idx, changed
}

// Step moves focus by delta cards, clamped to the collection.
func (c *Controller) Step(delta int) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx, changed := c.tracker.Step(delta)
	if changed {
		c.activate()
	}
	return idx, changed
}

// ActiveImage returns the image to show for the focused card.
func (c *Controller) ActiveImage() (ref string, state enrich.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, item, ok := c.focusedLocked()
	if !ok {
		return "", enrich.StateAbsent
	}
	return c.coord.ImageFor(item)
}

// Accept reports whether an enrichment update is for a view that is still
// on screen.
func (c *Controller) Accept(u enrich.Update) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range []*enrich.Subscription{c.active, c.nutrition} {
		if s != nil && s.Active() && s.ID() == u.Subscription {
			return true
		}
	}
	return false
}

// =============================================================================
// CART
// =============================================================================

// CartView is a rendering snapshot of the cart.
type CartView struct {
	Lines     []cart.Line
	Count     int
	Subtotal  util.Cents
	Surcharge util.Cents
	Total     util.Cents
}

// Empty reports whether the cart has no lines.
func (v CartView) Empty() bool { return len(v.Lines) == 0 }

// AddToCart adds one unit of the item with id. Unknown ids are ignored.
func (c *Controller) AddToCart(id string) bool {
	item, ok := c.catalog.Lookup(id)
	if !ok {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ledger.Add(item)
	return true
}

// AdjustCart changes the quantity of id by delta.
func (c *Controller) AdjustCart(id string, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ledger.Adjust(id, delta)
}

// Cart returns a snapshot of the cart.
func (c *Controller) Cart() CartView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CartView{
		Lines:     c.ledger.Lines(),
		Count:     c.ledger.Count(),
		Subtotal:  c.ledger.Subtotal(),
		Surcharge: c.ledger.Surcharge(),
		Total:     c.ledger.Total(),
	}
}

// Checkout places the order and empties the cart. ok is false when the cart
// was already empty.
func (c *Controller) Checkout() (cart.Receipt, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.ledger.Checkout(c.now())
	if ok {
		c.log.Info("order placed",
			zap.String("order", r.OrderID),
			zap.Int("items", r.Count()),
			zap.Stringer("total", r.Total))
	}
	return r, ok
}

// =============================================================================
// NUTRITION
// =============================================================================

// OpenNutrition opens the nutrition overlay for id and requests the facts
// if they are not known yet.
func (c *Controller) OpenNutrition(id string) (enrich.Entry, bool) {
	item, ok := c.catalog.Lookup(id)
	if !ok {
		return enrich.Entry{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nutrition.Detach()
	c.nutrition = c.coord.Attach(item.ID)
	return c.coord.RequestNutrition(item), true
}

// CloseNutrition closes the overlay. A request still in flight keeps
// running and fills the cache, but is not delivered to the closed view.
func (c *Controller) CloseNutrition() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nutrition.Detach()
	c.nutrition = nil
}

// Nutrition returns the overlay's item id and entry. ok is false when the
// overlay is closed.
func (c *Controller) Nutrition() (itemID string, e enrich.Entry, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.nutrition == nil {
		return "", enrich.Entry{}, false
	}
	id := c.nutrition.ItemID()
	return id, c.coord.Entry(enrich.NutritionKey(id)), true
}

// =============================================================================
// CHAT
// =============================================================================

// OpenChat opens the chef chat for id.
func (c *Controller) OpenChat(id string) (*chat.Thread, bool) {
	item, ok := c.catalog.Lookup(id)
	if !ok {
		return nil, false
	}
	return c.chats.Open(item), true
}

// SubmitChat appends the diner's question to the thread for id. The reply
// is fetched by resolving the returned exchange.
func (c *Controller) SubmitChat(id, text string) (*chat.Exchange, bool) {
	item, ok := c.catalog.Lookup(id)
	if !ok {
		return nil, false
	}
	return c.chats.Submit(item, text)
}

// Chats returns the chat sessions.
func (c *Controller) Chats() *chat.Sessions { return c.chats }

// =============================================================================
// SEARCH
// =============================================================================

// SearchTicket identifies a started search.
type SearchTicket struct {
	Generation uint64
	Query      string
}

// BeginSearch starts a search for query. Blank queries are rejected and
// change nothing.
func (c *Controller) BeginSearch(query string) (SearchTicket, bool) {
	q := search.Normalize(query)
	if q == "" {
		return SearchTicket{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.searching = true
	return SearchTicket{Generation: c.generation, Query: q}, true
}

// RunSearch asks the filter for t's matches. It does not touch the
// controller's state.
func (c *Controller) RunSearch(ctx context.Context, t SearchTicket) search.Result {
	return c.search.Search(ctx, t.Query)
}

// ApplySearch shows res unless a newer search or a clear superseded t.
func (c *Controller) ApplySearch(t SearchTicket, res search.Result) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.Generation != c.generation {
		c.log.Debug("stale search result discarded", zap.String("query", t.Query))
		return false
	}
	c.searching = false

	switch res.Outcome {
	case search.OutcomeRejected:
		return false
	case search.OutcomeFiltered:
		c.filter = FilterState{Active: true, Query: res.Query}
	case search.OutcomeNoMatches:
		c.filter = FilterState{Active: true, Query: res.Query, NoMatches: true}
	default:
		c.filter = FilterState{Degraded: res.Degraded}
	}
	c.replace(res.Items)
	c.log.Debug("search applied",
		zap.String("query", res.Query),
		zap.Stringer("outcome", res.Outcome),
		zap.Int("shown", len(res.Items)))
	return true
}

// Search runs a search to completion and applies it.
func (c *Controller) Search(ctx context.Context, query string) (search.Result, bool) {
	t, ok := c.BeginSearch(query)
	if !ok {
		return search.Result{Outcome: search.OutcomeRejected}, false
	}
	res := c.RunSearch(ctx, t)
	return res, c.ApplySearch(t, res)
}

// ClearFilter restores the full catalog with the first card focused.
// A search still in flight is superseded.
func (c *Controller) ClearFilter() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.searching = false
	c.filter = FilterState{}
	c.replace(c.catalog.Items())
}

// Filter returns the filter state.
func (c *Controller) Filter() FilterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Searching reports whether a search is in flight.
func (c *Controller) Searching() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searching
}

// Close detaches every subscription.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active.Detach()
	c.nutrition.Detach()
	c.active, c.nutrition = nil, nil
}
