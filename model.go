// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nexindemo/Nex-reelmenu/internal/catalog"
	"github.com/nexindemo/Nex-reelmenu/internal/enrich"
	"github.com/nexindemo/Nex-reelmenu/internal/session"
	"github.com/nexindemo/Nex-reelmenu/internal/ui/components"
	"github.com/nexindemo/Nex-reelmenu/internal/ui/styles"
)

// =============================================================================
// APPLICATION STATE
// =============================================================================

// State represents what the browser is showing on top of the feed.
type State int

const (
	StateFeed State = iota
	StateCart
	StateChat
	StateNutrition
	StateSearch
	StateOrderPlaced
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateFeed:
		return "feed"
	case StateCart:
		return "cart"
	case StateChat:
		return "chat"
	case StateNutrition:
		return "nutrition"
	case StateSearch:
		return "search"
	case StateOrderPlaced:
		return "order-placed"
	default:
		return "unknown"
	}
}

// Layout constants.
const (
	headerHeight = 1
	statusHeight = 1
	dockedDrawer = 40 // cart drawer width in the wide layout
	maxCardWidth = 72
	minCardLines = 12
	flashTimeout = 3 * time.Second
)

// Options configures the browser.
type Options struct {
	Backend      string // provider name shown in the header
	ImagePreview bool   // draw generated images as half-block art
	WheelLines   int    // lines one wheel notch scrolls
	Logger       *zap.Logger
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// Model is the root bubbletea model of the browser. All session state lives
// in the controller; the model keeps presentation state only.
type Model struct {
	ctrl  *session.Controller
	theme *styles.Theme
	keys  KeyMap
	help  help.Model
	opts  Options
	log   *zap.Logger

	// ctx is cancelled on quit so background chat and search calls stop.
	ctx    context.Context
	cancel context.CancelFunc

	state    State
	showHelp bool
	width    int
	height   int

	// offset is the feed's scroll position in lines.
	offset float64

	liked    map[string]bool
	addedID  string // dish showing ADDED feedback
	addedSeq int
	flashSeq int

	// pictures caches rendered art by pictureKey. A failed decode is
	// cached as "" so it is not retried.
	pictures map[string]string
	decoding map[string]bool

	spinner components.Spinner
	drawer  *components.CartDrawer
	chef    *components.ChefChat
	search  *components.SearchBox
	status  *components.StatusBar
	success components.OrderSuccess
}

// NewModel creates the browser over ctrl.
func NewModel(ctrl *session.Controller, theme *styles.Theme, opts Options) *Model {
	if opts.WheelLines <= 0 {
		opts.WheelLines = 3
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())

	spin := components.NewPlatingSpinner()
	return &Model{
		ctrl:     ctrl,
		theme:    theme,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		opts:     opts,
		log:      log.Named("tui"),
		ctx:      ctx,
		cancel:   cancel,
		width:    80,
		height:   24,
		liked:    make(map[string]bool),
		pictures: make(map[string]string),
		decoding: make(map[string]bool),
		spinner:  spin,
		drawer:   components.NewCartDrawer(),
		chef:     components.NewChefChat(theme),
		search:   components.NewSearchBox(theme),
		status:   components.NewStatusBar(theme),
	}
}

// =============================================================================
// MESSAGES
// =============================================================================

// addedExpiredMsg ends the ADDED feedback started by add number seq.
type addedExpiredMsg struct{ seq int }

// flashExpiredMsg clears flash number seq from the status bar.
type flashExpiredMsg struct{ seq int }

// pictureMsg carries rendered half-block art.
type pictureMsg struct {
	key string
	art string
	err error
}

// =============================================================================
// LAYOUT
// =============================================================================

// docked reports whether the cart drawer sits beside the feed.
func (m *Model) docked() bool {
	return m.theme.GetLayoutMode() == styles.LayoutWide
}

// feedWidth is the width left for the card column.
func (m *Model) feedWidth() int {
	w := m.width
	if m.docked() {
		w -= dockedDrawer
	}
	return max(w, 30)
}

// cardWidth is the width of one card.
func (m *Model) cardWidth() int {
	return min(m.feedWidth(), maxCardWidth)
}

// extent is the height of one card in lines, which is also the distance
// the feed scrolls between two cards.
func (m *Model) extent() int {
	return max(m.height-headerHeight-statusHeight, minCardLines)
}

// pictureSize returns the cell size of the image panel.
func (m *Model) pictureSize() (cols, rows int) {
	return m.cardWidth() - 6, max(m.extent()/3, 3)
}

func pictureKey(itemID string, cols, rows int) string {
	return fmt.Sprintf("%s@%dx%d", itemID, cols, rows)
}

// =============================================================================
// DERIVED STATE
// =============================================================================

// focused returns the focused dish.
func (m *Model) focused() (catalog.Item, bool) {
	_, item, ok := m.ctrl.Focus()
	return item, ok
}

// pending reports whether anything on screen is waiting on the provider.
func (m *Model) pending() bool {
	if _, state := m.ctrl.ActiveImage(); state == enrich.StatePending {
		return true
	}
	if _, e, ok := m.ctrl.Nutrition(); ok && e.State == enrich.StatePending {
		return true
	}
	if m.ctrl.Searching() {
		return true
	}
	if id := m.chef.ItemID(); id != "" {
		if t, ok := m.ctrl.Chats().Thread(id); ok && t.Awaiting() {
			return true
		}
	}
	return false
}

// syncSpinner runs the shared spinner while something is pending.
func (m *Model) syncSpinner() tea.Cmd {
	switch p := m.pending(); {
	case p && !m.spinner.IsActive():
		return m.spinner.Start()
	case !p && m.spinner.IsActive():
		m.spinner.Stop()
	}
	return nil
}

// pictureCmd renders the focused dish's generated image when it is ready
// and not rendered yet.
func (m *Model) pictureCmd() tea.Cmd {
	if !m.opts.ImagePreview {
		return nil
	}
	item, ok := m.focused()
	if !ok {
		return nil
	}
	ref, state := m.ctrl.ActiveImage()
	if state != enrich.StateReady || !catalog.IsGenerated(ref) {
		return nil
	}
	cols, rows := m.pictureSize()
	key := pictureKey(item.ID, cols, rows)
	if _, done := m.pictures[key]; done || m.decoding[key] {
		return nil
	}
	m.decoding[key] = true
	return func() tea.Msg {
		art, err := components.RenderPicture(ref, cols, rows)
		return pictureMsg{key: key, art: art, err: err}
	}
}

// picture returns cached art for the focused dish.
func (m *Model) picture(item catalog.Item) string {
	cols, rows := m.pictureSize()
	return m.pictures[pictureKey(item.ID, cols, rows)]
}

// inCart returns the quantity of id in v.
func inCart(v session.CartView, id string) int {
	for _, ln := range v.Lines {
		if ln.Item.ID == id {
			return ln.Quantity
		}
	}
	return 0
}
