// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package search narrows the menu to the dishes that match a free-text
// craving.
//
// Matching is delegated to the provider. Blank queries never reach it,
// identical concurrent queries share one call, and successful answers are
// remembered for a while. A failed call falls back to the full menu.
package search

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/nexindemo/Nex-reelmenu/internal/catalog"
	"github.com/nexindemo/Nex-reelmenu/internal/provider"
)

// Defaults for Config.
const (
	DefaultMemoTTL = 10 * time.Minute
	DefaultTimeout = 45 * time.Second
)

// Suggestions are offered as one-tap searches.
var Suggestions = []string{
	"Something spicy 🌶️",
	"High protein 💪",
	"Comfort food 🌙",
	"Vegetarian 🌱",
}

// Outcome classifies a search result.
type Outcome int

const (
	// OutcomeRejected means the query was blank. Nothing changed.
	OutcomeRejected Outcome = iota
	// OutcomeFiltered means at least one dish matched.
	OutcomeFiltered
	// OutcomeAll means the full menu is shown: nothing matched, or the
	// provider could not answer.
	OutcomeAll
	// OutcomeNoMatches means nothing matched and the caller asked for an
	// explicit empty state.
	OutcomeNoMatches
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRejected:
		return "rejected"
	case OutcomeFiltered:
		return "filtered"
	case OutcomeAll:
		return "all"
	case OutcomeNoMatches:
		return "no-matches"
	default:
		return "unknown"
	}
}

// Result is what a search produced.
type Result struct {
	Query    string         // normalized query text
	Outcome  Outcome
	Items    []catalog.Item // collection to display, in catalog order
	Matched  int            // number of catalog dishes the provider matched
	Degraded bool           // the provider failed and the full menu is shown
	Memoized bool           // answered from the memo without a provider call
}

// Filtered reports whether the result narrows the menu.
func (r Result) Filtered() bool {
	return r.Outcome == OutcomeFiltered || r.Outcome == OutcomeNoMatches
}

// Config tunes a Filter. Zero values take defaults.
type Config struct {
	MemoTTL time.Duration
	Timeout time.Duration

	// DistinctEmptyResult reports zero matches as OutcomeNoMatches instead
	// of falling back to the full menu.
	DistinctEmptyResult bool
}

// Filter runs menu searches. It is safe for concurrent use.
type Filter struct {
	catalog  *catalog.Catalog
	provider provider.Provider
	cfg      Config
	log      *zap.Logger

	memo   *gocache.Cache
	flight singleflight.Group
}

// New creates a Filter over cat.
func New(cat *catalog.Catalog, p provider.Provider, cfg Config, log *zap.Logger) *Filter {
	if cfg.MemoTTL <= 0 {
		cfg.MemoTTL = DefaultMemoTTL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Filter{
		catalog:  cat,
		provider: p,
		cfg:      cfg,
		log:      log.Named("search"),
		memo:     gocache.New(cfg.MemoTTL, 2*cfg.MemoTTL),
	}
}

// Normalize returns the query as sent to the provider: NFC, trimmed, with
// runs of whitespace collapsed. A blank query normalizes to "".
func Normalize(query string) string {
	return strings.Join(strings.Fields(norm.NFC.String(query)), " ")
}

// memoKey folds case so "Spicy" and "spicy" share an answer. A Caser keeps
// state, so each call gets its own.
func memoKey(q string) string {
	return cases.Fold().String(q)
}

// Search matches query against the whole catalog. It never returns an
// error: failures are logged and degrade to the full menu.
func (f *Filter) Search(ctx context.Context, query string) Result {
	q := Normalize(query)
	if q == "" {
		return Result{Outcome: OutcomeRejected}
	}
	key := memoKey(q)

	if cached, ok := f.memo.Get(key); ok {
		res := f.resolve(q, cached.([]string))
		res.Memoized = true
		f.log.Debug("search memo hit", zap.String("query", q), zap.Stringer("outcome", res.Outcome))
		return res
	}

	ch := f.flight.DoChan(key, func() (interface{}, error) {
		// The shared call must outlive any single caller.
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.cfg.Timeout)
		defer cancel()
		ids, err := f.provider.Search(callCtx, q, f.catalog.SearchDocs())
		if err != nil {
			return nil, err
		}
		f.memo.SetDefault(key, ids)
		return ids, nil
	})

	select {
	case <-ctx.Done():
		f.log.Debug("search abandoned", zap.String("query", q), zap.Error(ctx.Err()))
		return f.degraded(q)
	case r := <-ch:
		if r.Err != nil {
			if provider.IsNotConfigured(r.Err) {
				f.log.Info("search unavailable, showing full menu", zap.String("query", q))
			} else {
				f.log.Warn("search failed, showing full menu", zap.String("query", q), zap.Error(r.Err))
			}
			return f.degraded(q)
		}
		return f.resolve(q, r.Val.([]string))
	}
}

func (f *Filter) degraded(q string) Result {
	return Result{Query: q, Outcome: OutcomeAll, Items: f.catalog.Items(), Degraded: true}
}

func (f *Filter) resolve(q string, ids []string) Result {
	items := f.catalog.Subset(ids)
	switch {
	case len(items) > 0:
		return Result{Query: q, Outcome: OutcomeFiltered, Items: items, Matched: len(items)}
	case f.cfg.DistinctEmptyResult:
		return Result{Query: q, Outcome: OutcomeNoMatches, Items: []catalog.Item{}}
	default:
		return Result{Query: q, Outcome: OutcomeAll, Items: f.catalog.Items()}
	}
}

// Forget drops every memoized answer.
func (f *Filter) Forget() {
	f.memo.Flush()
}
