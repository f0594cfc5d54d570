// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexindemo/Nex-reelmenu/internal/cart"
	"github.com/nexindemo/Nex-reelmenu/internal/catalog"
	"github.com/nexindemo/Nex-reelmenu/internal/chat"
	"github.com/nexindemo/Nex-reelmenu/internal/enrich"
	"github.com/nexindemo/Nex-reelmenu/internal/provider"
	"github.com/nexindemo/Nex-reelmenu/internal/provider/providertest"
	"github.com/nexindemo/Nex-reelmenu/internal/search"
	"github.com/nexindemo/Nex-reelmenu/internal/util"
)

// =============================================================================
// FIXTURES
// =============================================================================

func feedCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	names := []string{"Truffle Risotto", "Dan Dan Noodles", "Wagyu Burger", "Miso Salmon", "Tiramisu"}
	ids := []string{"risotto", "noodles", "burger", "salmon", "tiramisu"}
	items := make([]catalog.Item, len(ids))
	for i := range ids {
		items[i] = catalog.Item{
			ID:    ids[i],
			Name:  names[i],
			Price: util.Cents(1000 * (i + 1)),
			Image: "https://example.com/" + ids[i] + ".jpg",
		}
	}
	items[1].Price = 2500
	cat, err := catalog.New(items)
	require.NoError(t, err)
	return cat
}

type fixture struct {
	ctrl  *Controller
	fake  *providertest.Fake
	coord *enrich.Coordinator
}

func newFixture(t *testing.T, fake *providertest.Fake, cfg search.Config) fixture {
	t.Helper()
	cat := feedCatalog(t)
	coord := enrich.New(nil, fake, enrich.Config{}, nil)
	ctrl := New(Deps{
		Catalog:     cat,
		Coordinator: coord,
		Chats:       chat.NewSessions(fake, chat.Config{}, nil),
		Search:      search.New(cat, fake, cfg, nil),
	})
	t.Cleanup(ctrl.Close)
	return fixture{ctrl: ctrl, fake: fake, coord: coord}
}

func await(t *testing.T, coord *enrich.Coordinator, key enrich.Key) enrich.Entry {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	e, err := coord.Await(ctx, key)
	require.NoError(t, err)
	return e
}

func displayedIDs(c *Controller) []string {
	var out []string
	for _, it := range c.Displayed() {
		out = append(out, it.ID)
	}
	return out
}

type memoryRecorder struct {
	mu       sync.Mutex
	receipts []cart.Receipt
	err      error
}

func (r *memoryRecorder) Save(_ context.Context, rc cart.Receipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.receipts = append(r.receipts, rc)
	return nil
}

// =============================================================================
// FOCUS
// =============================================================================

func TestNew_FocusesFirstCardAndRequestsItsImage(t *testing.T) {
	f := newFixture(t, providertest.New(), search.Config{})

	idx, item, ok := f.ctrl.Focus()
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, "risotto", item.ID)

	e := await(t, f.coord, enrich.ImageKey("risotto"))
	assert.Equal(t, enrich.StateReady, e.State)
	ref, state := f.ctrl.ActiveImage()
	assert.Equal(t, enrich.StateReady, state)
	assert.Equal(t, providertest.ImageRef("risotto"), ref)
	assert.Equal(t, 1, f.fake.Calls(providertest.OpImage))
}

func TestScroll_OnlyFocusChangesRequestImages(t *testing.T) {
	f := newFixture(t, providertest.New(), search.Config{})
	await(t, f.coord, enrich.ImageKey("risotto"))

	_, changed := f.ctrl.Scroll(40, 100)
	assert.False(t, changed, "less than half a card keeps focus")

	idx, changed := f.ctrl.Scroll(160, 100)
	assert.True(t, changed)
	assert.Equal(t, 2, idx)
	await(t, f.coord, enrich.ImageKey("burger"))

	f.ctrl.Scroll(0, 100)
	assert.Equal(t, 2, f.fake.Calls(providertest.OpImage), "returning to a ready card does not re-request")
}

func TestScroll_LateResultReachesOnlyTheVisibleCard(t *testing.T) {
	gate := providertest.NewGate()
	fake := providertest.New()
	fake.ImageFunc = func(ctx context.Context, item catalog.Item) (string, error) {
		if err := gate.Wait(ctx); err != nil {
			return "", err
		}
		return providertest.ImageRef(item.ID), nil
	}
	f := newFixture(t, fake, search.Config{})

	updates := make(chan enrich.Update, 16)
	f.coord.SetNotifier(func(u enrich.Update) { updates <- u })

	f.ctrl.Scroll(300, 100) // salmon
	f.ctrl.Scroll(100, 100) // noodles
	_, item, _ := f.ctrl.Focus()
	require.Equal(t, "noodles", item.ID)

	gate.Release()
	for _, id := range []string{"risotto", "salmon", "noodles"} {
		assert.Equal(t, enrich.StateReady, await(t, f.coord, enrich.ImageKey(id)).State)
	}

	select {
	case u := <-updates:
		assert.Equal(t, "noodles", u.Key.ItemID)
		assert.True(t, f.ctrl.Accept(u))
	case <-time.After(time.Second):
		t.Fatal("visible card never received its image")
	}
	select {
	case u := <-updates:
		t.Fatalf("unexpected delivery for %s", u.Key)
	case <-time.After(30 * time.Millisecond):
	}

	// the cache kept salmon's image for when it is shown again
	f.ctrl.Scroll(300, 100)
	ref, state := f.ctrl.ActiveImage()
	assert.Equal(t, enrich.StateReady, state)
	assert.Equal(t, providertest.ImageRef("salmon"), ref)
	assert.Equal(t, 3, fake.Calls(providertest.OpImage))
}

func TestAccept_RejectsDetachedViews(t *testing.T) {
	f := newFixture(t, providertest.New(), search.Config{})
	first := f.ctrl.active.ID()

	f.ctrl.Step(1)

	assert.False(t, f.ctrl.Accept(enrich.Update{Subscription: first}))
	assert.True(t, f.ctrl.Accept(enrich.Update{Subscription: f.ctrl.active.ID()}))
}

func TestStep_ClampsToCollection(t *testing.T) {
	f := newFixture(t, providertest.New(), search.Config{})

	idx, changed := f.ctrl.Step(-1)
	assert.False(t, changed)
	assert.Equal(t, 0, idx)

	idx, _ = f.ctrl.Step(99)
	assert.Equal(t, 4, idx)
}

// =============================================================================
// CART
// =============================================================================

func TestCart_SurchargeScenario(t *testing.T) {
	f := newFixture(t, providertest.New(), search.Config{})

	require.True(t, f.ctrl.AddToCart("noodles"))
	v := f.ctrl.Cart()
	assert.Equal(t, 1, v.Count)
	assert.Equal(t, util.Cents(2500), v.Subtotal)
	assert.Equal(t, util.Cents(125), v.Surcharge)
	assert.Equal(t, util.Cents(2625), v.Total)

	f.ctrl.AdjustCart("noodles", -1)
	assert.True(t, f.ctrl.Cart().Empty())

	assert.False(t, f.ctrl.AddToCart("ghost"))
}

func TestCheckout_RecordsReceipt(t *testing.T) {
	cat := feedCatalog(t)
	fake := providertest.New()
	rec := &memoryRecorder{}
	at := time.Date(2025, 3, 1, 19, 30, 0, 0, time.UTC)
	ctrl := New(Deps{
		Catalog:     cat,
		Coordinator: enrich.New(nil, fake, enrich.Config{}, nil),
		Chats:       chat.NewSessions(fake, chat.Config{}, nil),
		Search:      search.New(cat, fake, search.Config{}, nil),
		Recorder:    rec,
		Now:         func() time.Time { return at },
	})
	defer ctrl.Close()

	_, ok := ctrl.Checkout()
	assert.False(t, ok, "empty cart")

	ctrl.AddToCart("risotto")
	ctrl.AddToCart("risotto")
	r, ok := ctrl.Checkout()
	require.True(t, ok)
	assert.Equal(t, 2, r.Count())
	assert.Equal(t, at, r.PlacedAt)
	assert.True(t, ctrl.Cart().Empty())

	msg := ctrl.RecordCmd(r)()
	recorded, ok := msg.(OrderRecordedMsg)
	require.True(t, ok)
	assert.NoError(t, recorded.Err)
	require.Len(t, rec.receipts, 1)
	assert.Equal(t, r.OrderID, rec.receipts[0].OrderID)
}

func TestRecordCmd_FailureIsReported(t *testing.T) {
	cat := feedCatalog(t)
	fake := providertest.New()
	ctrl := New(Deps{
		Catalog:     cat,
		Coordinator: enrich.New(nil, fake, enrich.Config{}, nil),
		Chats:       chat.NewSessions(fake, chat.Config{}, nil),
		Search:      search.New(cat, fake, search.Config{}, nil),
		Recorder:    &memoryRecorder{err: errors.New("disk full")},
	})
	defer ctrl.Close()

	ctrl.AddToCart("tiramisu")
	r, _ := ctrl.Checkout()
	msg := ctrl.RecordCmd(r)().(OrderRecordedMsg)
	assert.EqualError(t, msg.Err, "disk full")
}

func TestRecordCmd_NilWithoutRecorder(t *testing.T) {
	f := newFixture(t, providertest.New(), search.Config{})
	assert.Nil(t, f.ctrl.RecordCmd(cart.Receipt{}))
}

// =============================================================================
// NUTRITION
// =============================================================================

func TestNutrition_OpenAndClose(t *testing.T) {
	f := newFixture(t, providertest.New(), search.Config{})

	_, ok := f.ctrl.OpenNutrition("ghost")
	assert.False(t, ok)

	_, ok = f.ctrl.OpenNutrition("salmon")
	require.True(t, ok)
	e := await(t, f.coord, enrich.NutritionKey("salmon"))
	require.Equal(t, enrich.StateReady, e.State)

	id, cur, open := f.ctrl.Nutrition()
	assert.True(t, open)
	assert.Equal(t, "salmon", id)
	assert.Equal(t, 640, cur.Nutrition.Calories)

	f.ctrl.CloseNutrition()
	_, _, open = f.ctrl.Nutrition()
	assert.False(t, open)

	again, _ := f.ctrl.OpenNutrition("salmon")
	assert.Equal(t, enrich.StateReady, again.State)
	assert.Equal(t, 1, f.fake.Calls(providertest.OpNutrition))
}

// =============================================================================
// CHAT
// =============================================================================

func TestChat_GreetingThenQuestionThenReply(t *testing.T) {
	fake := providertest.New()
	f := newFixture(t, fake, search.Config{})

	th, ok := f.ctrl.OpenChat("risotto")
	require.True(t, ok)
	assert.Equal(t, chat.Greeting("Truffle Risotto"), th.Messages()[0].Text)

	_, ok = f.ctrl.SubmitChat("risotto", "   ")
	assert.False(t, ok)

	ex, ok := f.ctrl.SubmitChat("risotto", "Is it spicy?")
	require.True(t, ok)
	assert.True(t, th.Awaiting())

	msg := ChatCmd(context.Background(), ex)().(ChatReplyMsg)
	assert.Equal(t, "risotto", msg.ItemID)
	assert.Equal(t, provider.RoleAssistant, msg.Reply.Role)

	msgs := th.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, provider.RoleAssistant, msgs[0].Role)
	assert.Equal(t, provider.RoleUser, msgs[1].Role)
	assert.Equal(t, provider.RoleAssistant, msgs[2].Role)
	assert.False(t, th.Awaiting())
}

// =============================================================================
// SEARCH
// =============================================================================

func TestSearch_FiltersAndResetsFocus(t *testing.T) {
	fake := providertest.New()
	fake.SearchFunc = func(context.Context, string, []catalog.SearchDoc) ([]string, error) {
		return []string{"tiramisu", "noodles"}, nil
	}
	f := newFixture(t, fake, search.Config{})
	f.ctrl.Step(3)

	_, applied := f.ctrl.Search(context.Background(), "something sweet or spicy")

	require.True(t, applied)
	assert.Equal(t, []string{"noodles", "tiramisu"}, displayedIDs(f.ctrl))
	idx, item, _ := f.ctrl.Focus()
	assert.Equal(t, 0, idx)
	assert.Equal(t, "noodles", item.ID)
	assert.Equal(t, FilterState{Active: true, Query: "something sweet or spicy"}, f.ctrl.Filter())
}

func TestSearch_BlankQueryChangesNothing(t *testing.T) {
	fake := providertest.New()
	f := newFixture(t, fake, search.Config{})
	f.ctrl.Step(2)

	_, ok := f.ctrl.BeginSearch("  \t")

	assert.False(t, ok)
	assert.False(t, f.ctrl.Searching())
	idx, _, _ := f.ctrl.Focus()
	assert.Equal(t, 2, idx)
	assert.Zero(t, fake.Calls(providertest.OpSearch))
}

func TestSearch_EmptyMatches(t *testing.T) {
	tests := []struct {
		name      string
		distinct  bool
		wantShown int
		wantState FilterState
	}{
		{"falls back to full menu", false, 5, FilterState{}},
		{"explicit empty state", true, 0, FilterState{Active: true, Query: "caviar", NoMatches: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := providertest.New()
			fake.SearchFunc = func(context.Context, string, []catalog.SearchDoc) ([]string, error) {
				return []string{}, nil
			}
			f := newFixture(t, fake, search.Config{DistinctEmptyResult: tt.distinct})

			f.ctrl.Search(context.Background(), "caviar")

			assert.Len(t, f.ctrl.Displayed(), tt.wantShown)
			assert.Equal(t, tt.wantState, f.ctrl.Filter())
			if tt.wantShown == 0 {
				_, _, ok := f.ctrl.Focus()
				assert.False(t, ok)
				_, state := f.ctrl.ActiveImage()
				assert.Equal(t, enrich.StateAbsent, state)
			}
		})
	}
}

func TestClearFilter_RestoresCatalogAndFirstCard(t *testing.T) {
	fake := providertest.New()
	fake.SearchFunc = func(context.Context, string, []catalog.SearchDoc) ([]string, error) {
		return []string{"burger", "salmon"}, nil
	}
	f := newFixture(t, fake, search.Config{})
	f.ctrl.Search(context.Background(), "protein")
	f.ctrl.Step(1)

	f.ctrl.ClearFilter()

	assert.Equal(t, []string{"risotto", "noodles", "burger", "salmon", "tiramisu"}, displayedIDs(f.ctrl))
	idx, _, _ := f.ctrl.Focus()
	assert.Equal(t, 0, idx)
	assert.False(t, f.ctrl.Filter().Active)
}

func TestSearch_SupersededResultsAreDiscarded(t *testing.T) {
	fake := providertest.New()
	fake.SearchFunc = func(_ context.Context, q string, _ []catalog.SearchDoc) ([]string, error) {
		if q == "first" {
			return []string{"burger"}, nil
		}
		return []string{"salmon"}, nil
	}

	t.Run("by clear", func(t *testing.T) {
		f := newFixture(t, fake, search.Config{})
		ticket, ok := f.ctrl.BeginSearch("first")
		require.True(t, ok)
		assert.True(t, f.ctrl.Searching())

		f.ctrl.ClearFilter()
		msg := f.ctrl.SearchCmd(context.Background(), ticket)().(SearchResultMsg)

		assert.False(t, f.ctrl.ApplySearch(msg.Ticket, msg.Result))
		assert.Len(t, f.ctrl.Displayed(), 5)
		assert.False(t, f.ctrl.Searching())
	})

	t.Run("by newer search", func(t *testing.T) {
		f := newFixture(t, fake, search.Config{})
		older, _ := f.ctrl.BeginSearch("first")
		newer, _ := f.ctrl.BeginSearch("second")

		assert.True(t, f.ctrl.ApplySearch(newer, f.ctrl.RunSearch(context.Background(), newer)))
		assert.False(t, f.ctrl.ApplySearch(older, f.ctrl.RunSearch(context.Background(), older)))
		assert.Equal(t, []string{"salmon"}, displayedIDs(f.ctrl))
	})
}

func TestSearch_ProviderFailureShowsFullMenu(t *testing.T) {
	fake := providertest.New()
	fake.SearchFunc = func(context.Context, string, []catalog.SearchDoc) ([]string, error) {
		return nil, provider.ErrUnavailable
	}
	f := newFixture(t, fake, search.Config{})

	res, applied := f.ctrl.Search(context.Background(), "vegetarian")

	assert.True(t, applied)
	assert.True(t, res.Degraded)
	assert.Len(t, f.ctrl.Displayed(), 5)
	assert.Equal(t, FilterState{Degraded: true}, f.ctrl.Filter())
}
