// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nexindemo/Nex-reelmenu/internal/enrich"
	"github.com/nexindemo/Nex-reelmenu/internal/search"
	"github.com/nexindemo/Nex-reelmenu/internal/session"
	"github.com/nexindemo/Nex-reelmenu/internal/ui/components"
	"github.com/nexindemo/Nex-reelmenu/internal/ui/styles"
)

// Init starts the image request for the first card and the spinner.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.syncSpinner(), m.pictureCmd())
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case session.EnrichedMsg:
		if !m.ctrl.Accept(msg.Update) {
			return m, nil
		}
		if msg.Update.Key.Kind == enrich.KindImage && msg.Update.Entry.State == enrich.StateFailed {
			m.log.Debug("image unavailable, keeping the studio photo",
				zap.String("item", msg.Update.Key.ItemID),
				zap.String("reason", msg.Update.Entry.Reason))
		}
		return m, tea.Batch(m.syncSpinner(), m.pictureCmd())

	case session.ChatReplyMsg:
		if m.state == StateChat && m.chef.ItemID() == msg.ItemID {
			if t, ok := m.ctrl.Chats().Thread(msg.ItemID); ok {
				m.chef.SetMessages(t.Messages())
				m.chef.SetThinking(t.Awaiting())
			}
		}
		return m, m.syncSpinner()

	case session.SearchResultMsg:
		return m.handleSearchResult(msg)

	case session.OrderRecordedMsg:
		if msg.Receipt.OrderID != m.success.Receipt.OrderID {
			return m, nil
		}
		if msg.Err != nil {
			m.success.LogNote = "Not saved to the order log"
			return m, m.flash("Order log unavailable", components.FlashWarning)
		}
		m.success.LogNote = "Saved to the order log"
		return m, nil

	case pictureMsg:
		delete(m.decoding, msg.key)
		if msg.err != nil {
			m.log.Debug("picture not rendered", zap.String("key", msg.key), zap.Error(msg.err))
		}
		m.pictures[msg.key] = msg.art
		return m, nil

	case addedExpiredMsg:
		if msg.seq == m.addedSeq {
			m.addedID = ""
		}
		return m, nil

	case flashExpiredMsg:
		if msg.seq == m.flashSeq {
			m.status.ClearFlash()
		}
		return m, nil
	}

	// Spinner ticks and textinput cursor blinks.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)
	switch m.state {
	case StateChat:
		cmds = append(cmds, m.chef.Update(msg))
	case StateSearch:
		cmds = append(cmds, m.search.Update(msg))
	}
	return m, tea.Batch(cmds...)
}

// resize lays the components out for a new window size and snaps the feed
// to the focused card.
func (m *Model) resize(width, height int) (tea.Model, tea.Cmd) {
	m.width, m.height = width, height
	m.theme.SetSize(width, height)
	m.help.Width = width
	m.status.SetWidth(width)

	overlay := min(width-4, 76)
	m.chef.SetSize(overlay, min(height-4, 30))
	m.search.SetWidth(overlay)
	if m.docked() {
		m.drawer.SetSize(dockedDrawer, height-headerHeight-statusHeight)
	} else {
		m.drawer.SetSize(min(width, 60), height-headerHeight-statusHeight)
	}

	idx, _, _ := m.ctrl.Focus()
	m.offset = float64(idx * m.extent())
	return m, m.pictureCmd()
}

// =============================================================================
// KEYBOARD
// =============================================================================

// handleKeyPress processes keyboard input.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	switch m.state {
	case StateCart:
		return m.handleCartKey(msg)
	case StateChat:
		return m.handleChatKey(msg)
	case StateNutrition:
		return m.handleNutritionKey(msg)
	case StateSearch:
		return m.handleSearchKey(msg)
	case StateOrderPlaced:
		// Any key keeps browsing.
		m.state = StateFeed
		return m, nil
	}
	return m.handleFeedKey(msg)
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	m.spinner.Stop()
	m.log.Info("quit", zap.Stringer("state", m.state))
	return m, tea.Quit
}

func (m *Model) handleFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	idx, item, ok := m.ctrl.Focus()
	n := len(m.ctrl.Displayed())

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Next):
		return m.step(1)
	case key.Matches(msg, m.keys.Prev):
		return m.step(-1)
	case key.Matches(msg, m.keys.Top):
		return m.step(-idx)
	case key.Matches(msg, m.keys.Bottom):
		return m.step(n - 1 - idx)

	case key.Matches(msg, m.keys.Search):
		m.state = StateSearch
		m.showHelp = false
		return m, m.search.Open()

	case key.Matches(msg, m.keys.ClearFilter), key.Matches(msg, m.keys.Submit) && n == 0:
		return m.clearFilter()

	case key.Matches(msg, m.keys.Cart):
		m.state = StateCart
		m.drawer.Reset()
		return m, nil
	}

	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Add):
		if !m.ctrl.AddToCart(item.ID) {
			return m, nil
		}
		m.addedSeq++
		m.addedID = item.ID
		seq := m.addedSeq
		return m, tea.Tick(styles.AddedFeedback, func(time.Time) tea.Msg {
			return addedExpiredMsg{seq: seq}
		})

	case key.Matches(msg, m.keys.Like):
		m.liked[item.ID] = !m.liked[item.ID]
		return m, nil

	case key.Matches(msg, m.keys.Chef):
		return m.openChat(item.ID, item.Name)

	case key.Matches(msg, m.keys.Nutrition):
		return m.openNutrition(item.ID)
	}
	return m, nil
}

// step moves focus by delta cards and snaps the feed to it.
func (m *Model) step(delta int) (tea.Model, tea.Cmd) {
	idx, changed := m.ctrl.Step(delta)
	m.offset = float64(idx * m.extent())
	if !changed {
		return m, nil
	}
	return m, tea.Batch(m.syncSpinner(), m.pictureCmd())
}

func (m *Model) clearFilter() (tea.Model, tea.Cmd) {
	f := m.ctrl.Filter()
	searching := m.ctrl.Searching()
	m.ctrl.ClearFilter()
	m.offset = 0
	var cmd tea.Cmd
	if f.Active || searching {
		cmd = m.flash("Showing the full menu", components.FlashInfo)
	}
	return m, tea.Batch(cmd, m.syncSpinner(), m.pictureCmd())
}

// =============================================================================
// MOUSE
// =============================================================================

// handleMouse scrolls the feed. Focus follows the card nearest the offset.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.state != StateFeed {
		if m.state == StateChat {
			return m, m.chef.Update(msg)
		}
		return m, nil
	}

	lines := float64(m.opts.WheelLines)
	switch msg.Type {
	case tea.MouseWheelUp:
		m.offset -= lines
	case tea.MouseWheelDown:
		m.offset += lines
	default:
		return m, nil
	}

	extent := float64(m.extent())
	last := float64(max(len(m.ctrl.Displayed())-1, 0)) * extent
	m.offset = min(max(m.offset, 0), last)

	if _, changed := m.ctrl.Scroll(m.offset, extent); !changed {
		return m, nil
	}
	return m, tea.Batch(m.syncSpinner(), m.pictureCmd())
}

// =============================================================================
// CART DRAWER
// =============================================================================

func (m *Model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := m.ctrl.Cart()

	switch {
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Cart):
		m.state = StateFeed
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Next):
		m.drawer.Move(1, len(v.Lines))
	case key.Matches(msg, m.keys.Prev):
		m.drawer.Move(-1, len(v.Lines))
	case key.Matches(msg, m.keys.Increase):
		if id, onButton := m.drawer.Selected(v); !onButton {
			m.ctrl.AdjustCart(id, 1)
		}
	case key.Matches(msg, m.keys.Decrease):
		if id, onButton := m.drawer.Selected(v); !onButton {
			m.ctrl.AdjustCart(id, -1)
		}
	case key.Matches(msg, m.keys.Submit):
		if _, onButton := m.drawer.Selected(v); !onButton {
			m.drawer.Move(len(v.Lines), len(v.Lines))
			return m, nil
		}
		return m.checkout()
	}
	return m, nil
}

// checkout places the order and hands the ticket to the order log.
func (m *Model) checkout() (tea.Model, tea.Cmd) {
	r, ok := m.ctrl.Checkout()
	if !ok {
		return m, nil
	}
	m.success = components.OrderSuccess{Receipt: r}
	m.state = StateOrderPlaced
	m.drawer.Reset()

	cmd := m.ctrl.RecordCmd(r)
	if cmd != nil {
		m.success.LogNote = "Sending to the kitchen..."
	}
	return m, cmd
}

// =============================================================================
// CHEF CHAT
// =============================================================================

func (m *Model) openChat(itemID, dish string) (tea.Model, tea.Cmd) {
	t, ok := m.ctrl.OpenChat(itemID)
	if !ok {
		return m, nil
	}
	m.state = StateChat
	m.showHelp = false
	cmd := m.chef.Open(itemID, dish)
	m.chef.SetMessages(t.Messages())
	m.chef.SetThinking(t.Awaiting())
	return m, tea.Batch(cmd, m.syncSpinner())
}

func (m *Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.chef.Close()
		m.state = StateFeed
		return m, m.syncSpinner()

	case key.Matches(msg, m.keys.Suggest):
		m.chef.NextSuggestion()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		ex, ok := m.ctrl.SubmitChat(m.chef.ItemID(), m.chef.Value())
		if !ok {
			return m, nil
		}
		m.chef.ClearInput()
		m.chef.SetMessages(ex.Thread().Messages())
		m.chef.SetThinking(true)
		return m, tea.Batch(session.ChatCmd(m.ctx, ex), m.syncSpinner())
	}
	return m, m.chef.Update(msg)
}

// =============================================================================
// NUTRITION
// =============================================================================

func (m *Model) openNutrition(itemID string) (tea.Model, tea.Cmd) {
	e, ok := m.ctrl.OpenNutrition(itemID)
	if !ok {
		return m, nil
	}
	m.state = StateNutrition
	m.showHelp = false
	m.log.Debug("nutrition opened", zap.String("item", itemID), zap.Stringer("state", e.State))
	return m, m.syncSpinner()
}

func (m *Model) handleNutritionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.ctrl.CloseNutrition()
		m.state = StateFeed
		return m, m.syncSpinner()
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Nutrition):
		// Retry after a failure; a no-op while pending or ready.
		if id, e, ok := m.ctrl.Nutrition(); ok && e.State == enrich.StateFailed {
			return m.openNutrition(id)
		}
	}
	return m, nil
}

// =============================================================================
// SMART SEARCH
// =============================================================================

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.search.Close()
		m.state = StateFeed
		return m, nil

	case key.Matches(msg, m.keys.Suggest):
		m.search.NextSuggestion()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		t, ok := m.ctrl.BeginSearch(m.search.Value())
		if !ok {
			return m, m.flash("Tell the chef what you feel like first", components.FlashWarning)
		}
		return m, tea.Batch(m.ctrl.SearchCmd(m.ctx, t), m.syncSpinner())
	}
	return m, m.search.Update(msg)
}

func (m *Model) handleSearchResult(msg session.SearchResultMsg) (tea.Model, tea.Cmd) {
	if !m.ctrl.ApplySearch(msg.Ticket, msg.Result) {
		return m, m.syncSpinner()
	}
	if m.state == StateSearch {
		m.search.Close()
		m.state = StateFeed
	}
	m.offset = 0

	res := msg.Result
	var note tea.Cmd
	switch {
	case res.Outcome == search.OutcomeFiltered:
		note = m.flash(fmt.Sprintf("%d %s match", len(res.Items), plural(len(res.Items), "dish", "dishes")), components.FlashSuccess)
	case res.Degraded:
		note = m.flash("Chef unavailable, showing the full menu", components.FlashWarning)
	case res.Outcome == search.OutcomeAll:
		note = m.flash("No matches, showing the full menu", components.FlashInfo)
	}
	return m, tea.Batch(note, m.syncSpinner(), m.pictureCmd())
}

// =============================================================================
// HELPERS
// =============================================================================

// flash shows msg in the status bar for a few seconds.
func (m *Model) flash(msg string, kind components.FlashKind) tea.Cmd {
	m.flashSeq++
	seq := m.flashSeq
	m.status.SetFlash(msg, kind)
	return tea.Tick(flashTimeout, func(time.Time) tea.Msg {
		return flashExpiredMsg{seq: seq}
	})
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
