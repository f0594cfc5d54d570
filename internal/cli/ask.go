// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single question command for reelmenu.
//
// Command: ask <item-id> <question...>
// Short:   Ask the chef one question about a dish
//
// Examples:
//   reelmenu ask dan-dan-noodles how spicy is this?
//   reelmenu ask tiramisu "is it gluten-free?"
//   reelmenu ask --json miso-salmon what wine goes with it
//
// The reply is rendered as markdown when stdout is a terminal.
package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/glamour"
)

var (
	markdownRenderer     *glamour.TermRenderer
	markdownRendererOnce sync.Once
)

// renderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering fails.
func renderMarkdown(content string) string {
	markdownRendererOnce.Do(func() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(min(GetTerminalWidth()-4, 80)),
		)
		if err == nil {
			markdownRenderer = r
		}
	})
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayReply writes a chef reply, rendered when colors are on.
func displayReply(out io.Writer, text string) {
	if ColorsEnabled() {
		fmt.Fprint(out, renderMarkdown(text))
		return
	}
	fmt.Fprintln(out, text)
}

// AskOutput is the JSON payload of the ask command.
type AskOutput struct {
	ItemID   string `json:"item_id"`
	Dish     string `json:"dish"`
	Question string `json:"question"`
	Reply    string `json:"reply"`
	Fallback bool   `json:"fallback"`
}

// HandleAsk sends one question to the chef and prints the reply.
func HandleAsk(rt *Runtime, args Args, out io.Writer) error {
	p := NewArgParser(args.Raw)
	item, err := rt.Item(p.Positional(0))
	if err != nil {
		return err
	}
	question := JoinPositionalArgs(p, 1)

	ctx, stop := commandContext()
	defer stop()

	reply, ok := rt.Chats.Send(ctx, item, question)
	if !ok {
		return NewValidationErrorWithExample("question", "", "ask the chef something",
			fmt.Sprintf("reelmenu ask %s what goes well with it?", item.ID))
	}

	if args.JSON {
		return NewJSONResponse("ask", AskOutput{
			ItemID:   item.ID,
			Dish:     item.Name,
			Question: question,
			Reply:    reply.Text,
			Fallback: reply.Fallback,
		}).Write(out)
	}

	fmt.Fprintln(out, RenderConditional(TitleStyle, "Chef's Table · "+item.Name))
	displayReply(out, reply.Text)
	return nil
}
