// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexindemo/Nex-reelmenu/internal/cart"
	"github.com/nexindemo/Nex-reelmenu/internal/catalog"
	"github.com/nexindemo/Nex-reelmenu/internal/util"
)

func openTestStore(t *testing.T) *OrderStore {
	t.Helper()
	store, err := OpenOrderStore(filepath.Join(t.TempDir(), "nested", "orders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func receipt(t *testing.T, at time.Time, items ...catalog.Item) cart.Receipt {
	t.Helper()
	l := cart.NewLedger(nil)
	for _, it := range items {
		l.Add(it)
	}
	r, ok := l.Checkout(at)
	require.True(t, ok)
	return r
}

var (
	risotto = catalog.Item{ID: "truffle-risotto", Name: "Truffle Risotto", Price: 2800}
	noodles = catalog.Item{ID: "dan-dan-noodles", Name: "Dan Dan Noodles", Price: 1850, Spicy: true}
)

func TestOrderStore_SaveAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	at := time.Date(2025, 6, 1, 20, 15, 0, 0, time.UTC)
	r := receipt(t, at, risotto, noodles, risotto)

	require.NoError(t, store.Save(ctx, r))

	got, err := store.Get(ctx, r.OrderID)
	require.NoError(t, err)
	assert.Equal(t, r.OrderID, got.OrderID)
	assert.True(t, got.PlacedAt.Equal(at))
	assert.Equal(t, util.Cents(7450), got.Subtotal)
	assert.Equal(t, r.Surcharge, got.Surcharge)
	assert.Equal(t, r.Total, got.Total)
	require.Len(t, got.Lines, 2)
	assert.Equal(t, "truffle-risotto", got.Lines[0].Item.ID)
	assert.Equal(t, 2, got.Lines[0].Quantity)
	assert.Equal(t, util.Cents(2800), got.Lines[0].Item.Price)
	assert.Equal(t, "Dan Dan Noodles", got.Lines[1].Item.Name)
	assert.Equal(t, 3, got.Count())
}

func TestOrderStore_SaveRejects(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	r := receipt(t, time.Now(), risotto)
	require.NoError(t, store.Save(ctx, r))

	tests := []struct {
		name    string
		receipt cart.Receipt
		want    error
	}{
		{"duplicate order id", r, ErrDuplicateOrder},
		{"no lines", cart.Receipt{OrderID: "empty"}, ErrEmptyOrder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, store.Save(ctx, tt.receipt), tt.want)
		})
	}

	sum, err := store.Summarize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Orders)
}

func TestOrderStore_GetMissing(t *testing.T) {
	store := openTestStore(t)
	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderStore_ListNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 4; i++ {
		r := receipt(t, base.Add(time.Duration(i)*time.Hour), noodles)
		require.NoError(t, store.Save(ctx, r))
		ids = append(ids, r.OrderID)
	}

	got, err := store.List(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, ids[3], got[0].OrderID)
	assert.Equal(t, ids[1], got[2].OrderID)
	for _, r := range got {
		require.Len(t, r.Lines, 1)
		assert.Equal(t, "dan-dan-noodles", r.Lines[0].Item.ID)
	}

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestOrderStore_ListEmpty(t *testing.T) {
	store := openTestStore(t)
	got, err := store.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOrderStore_Summarize(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	a := receipt(t, time.Now(), risotto, risotto)
	b := receipt(t, time.Now(), noodles)
	require.NoError(t, store.Save(ctx, a))
	require.NoError(t, store.Save(ctx, b))

	sum, err := store.Summarize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Orders)
	assert.Equal(t, 3, sum.Items)
	assert.Equal(t, a.Total+b.Total, sum.Revenue)
}

func TestOrderStore_ReopenKeepsTickets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.db")
	store, err := OpenOrderStore(path)
	require.NoError(t, err)
	r := receipt(t, time.Now(), risotto)
	require.NoError(t, store.Save(context.Background(), r))
	require.NoError(t, store.Close())

	reopened, err := OpenOrderStore(path)
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, path, reopened.Path())

	got, err := reopened.Get(context.Background(), r.OrderID)
	require.NoError(t, err)
	assert.Equal(t, r.Total, got.Total)
}
