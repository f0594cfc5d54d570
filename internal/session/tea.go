// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nexindemo/Nex-reelmenu/internal/cart"
	"github.com/nexindemo/Nex-reelmenu/internal/chat"
	"github.com/nexindemo/Nex-reelmenu/internal/enrich"
	"github.com/nexindemo/Nex-reelmenu/internal/search"
)

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// recordTimeout bounds one order log write.
const recordTimeout = 5 * time.Second

// EnrichedMsg carries an enrichment result for a view.
type EnrichedMsg struct {
	Update enrich.Update
}

// ChatReplyMsg carries the chef's reply.
type ChatReplyMsg struct {
	ItemID string
	Reply  chat.Message
}

// SearchResultMsg carries a finished search.
type SearchResultMsg struct {
	Ticket SearchTicket
	Result search.Result
}

// OrderRecordedMsg reports the outcome of writing a ticket to the order log.
type OrderRecordedMsg struct {
	Receipt cart.Receipt
	Err     error
}

// Notifier returns an enrich.Notifier that forwards updates to a running
// program. send is usually (*tea.Program).Send.
func Notifier(send func(tea.Msg)) enrich.Notifier {
	return func(u enrich.Update) {
		send(EnrichedMsg{Update: u})
	}
}

// ChatCmd resolves ex in the background.
func ChatCmd(ctx context.Context, ex *chat.Exchange) tea.Cmd {
	return func() tea.Msg {
		reply := ex.Resolve(ctx)
		return ChatReplyMsg{ItemID: ex.Thread().ItemID(), Reply: reply}
	}
}

// SearchCmd runs t in the background. Apply the result with ApplySearch.
func (c *Controller) SearchCmd(ctx context.Context, t SearchTicket) tea.Cmd {
	return func() tea.Msg {
		return SearchResultMsg{Ticket: t, Result: c.RunSearch(ctx, t)}
	}
}

// RecordCmd writes r to the order log. It returns nil when no recorder is
// configured. Failures are logged and reported but never undo the order.
func (c *Controller) RecordCmd(r cart.Receipt) tea.Cmd {
	if c.recorder == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		err := c.recorder.Save(ctx, r)
		if err != nil {
			c.log.Warn("order log write failed", zap.String("order", r.OrderID), zap.Error(err))
		}
		return OrderRecordedMsg{Receipt: r, Err: err}
	}
}
