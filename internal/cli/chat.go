// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chef chat for reelmenu.
//
// Command: chat <item-id>
// Short:   Chat with the chef about one dish
//
// Slash commands inside the chat:
//   /help, /h           Show available commands
//   /ideas              Show suggested questions
//   /1 .. /4            Ask a suggested question
//   /history            Show the conversation so far
//   /quit, /q, /exit    Leave the chat
//
// Input history is kept across sessions with arrow-key navigation.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/peterh/liner"

	"github.com/nexindemo/Nex-reelmenu/internal/catalog"
	"github.com/nexindemo/Nex-reelmenu/internal/chat"
	"github.com/nexindemo/Nex-reelmenu/internal/config"
	"github.com/nexindemo/Nex-reelmenu/internal/provider"
)

// =============================================================================
// INPUT WITH HISTORY
// =============================================================================

// LineReader reads one line of user input.
type LineReader interface {
	ReadInput(prompt string) (string, error)
	Close()
}

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a new ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	cli := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	cli.LoadHistory()
	return cli
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists command history with owner-only permissions.
func (c *ChatCLI) SaveHistory() {
	if err := os.MkdirAll(filepath.Dir(c.historyFile), 0700); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// CHAT HANDLER
// =============================================================================

// HandleChat runs the interactive chat loop for one dish.
func HandleChat(rt *Runtime, args Args, out io.Writer) error {
	p := NewArgParser(args.Raw)
	item, err := rt.Item(p.Positional(0))
	if err != nil {
		return err
	}
	if err := RequiresTTY("chat"); err != nil {
		return err
	}

	in := NewChatCLI()
	defer in.Close()
	return runChat(rt.Chats, item, in, out)
}

// chatLoop holds the state of one REPL.
type chatLoop struct {
	sessions *chat.Sessions
	item     catalog.Item
	thread   *chat.Thread
	out      io.Writer

	mu     sync.Mutex
	cancel context.CancelFunc
}

// runChat drives the REPL until the user leaves or input ends.
func runChat(sessions *chat.Sessions, item catalog.Item, in LineReader, out io.Writer) error {
	loop := &chatLoop{
		sessions: sessions,
		item:     item,
		thread:   sessions.Open(item),
		out:      out,
	}

	// Ctrl+C while the chef is answering cancels that answer only.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	defer signal.Stop(sigChan)
	go func() {
		for range sigChan {
			loop.interrupt()
		}
	}()

	loop.printWelcome()
	prompt := RenderConditional(TitleStyle.MarginBottom(0), "you> ")
	for {
		input, err := in.ReadInput(prompt)
		if err != nil {
			// Ctrl+C at the prompt (liner.ErrPromptAborted) or EOF.
			if !errors.Is(err, liner.ErrPromptAborted) && !errors.Is(err, io.EOF) {
				return NewCommandError("chat", item.ID, "read input", err)
			}
			fmt.Fprintln(out)
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if strings.HasPrefix(input, "/") {
			question, keepGoing := loop.slash(input)
			if !keepGoing {
				return nil
			}
			if question == "" {
				continue
			}
			input = question
		} else if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			return nil
		}

		loop.ask(input)
	}
}

func (l *chatLoop) interrupt() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

func (l *chatLoop) ask(question string) {
	ex, ok := l.sessions.Submit(l.item, question)
	if !ok {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	l.mu.Lock()
	l.cancel = cancel
	l.mu.Unlock()
	defer l.interrupt()

	fmt.Fprintln(l.out, RenderConditional(DimStyle, "Chef is thinking..."))
	reply := ex.Resolve(ctx)

	fmt.Fprint(l.out, RenderConditional(SuccessStyle, "chef> "))
	displayReply(l.out, reply.Text)
}

// slash runs a slash command. It returns a question to ask, if the command
// picked one, and false when the chat should end.
func (l *chatLoop) slash(cmd string) (string, bool) {
	name := strings.ToLower(strings.Fields(cmd)[0])
	switch name {
	case "/quit", "/q", "/exit":
		return "", false
	case "/help", "/h", "/?":
		l.printHelp()
	case "/ideas", "/suggest":
		l.printSuggestions()
	case "/history":
		l.printHistory()
	default:
		if n, err := strconv.Atoi(strings.TrimPrefix(name, "/")); err == nil && n >= 1 && n <= len(chat.SuggestedQuestions) {
			q := chat.SuggestedQuestions[n-1]
			fmt.Fprintf(l.out, "%s %s\n", RenderConditional(DimStyle, "you>"), q)
			return q, true
		}
		fmt.Fprintf(l.out, "%s unknown command %s (try /help)\n", RenderConditional(WarningStyle, "[?]"), name)
	}
	return "", true
}

func (l *chatLoop) printWelcome() {
	fmt.Fprintln(l.out, RenderConditional(TitleStyle, "Chef's Table · "+l.item.Name))
	for _, m := range l.thread.Messages() {
		if m.Role == provider.RoleAssistant {
			fmt.Fprint(l.out, RenderConditional(SuccessStyle, "chef> "))
			displayReply(l.out, m.Text)
		}
	}
	l.printSuggestions()
	fmt.Fprintln(l.out, RenderConditional(DimStyle, "Type /help for commands, /quit to leave."))
}

func (l *chatLoop) printSuggestions() {
	for i, q := range chat.SuggestedQuestions {
		fmt.Fprintf(l.out, "  %s %s\n", RenderConditional(DimStyle, fmt.Sprintf("/%d", i+1)), q)
	}
}

func (l *chatLoop) printHelp() {
	commands := [][2]string{
		{"/ideas", "Show suggested questions"},
		{"/1 .. /4", "Ask a suggested question"},
		{"/history", "Show the conversation so far"},
		{"/quit", "Leave the chat"},
	}
	for _, c := range commands {
		fmt.Fprintf(l.out, "  %s %s\n", RenderLabel(c[0], 12), c[1])
	}
}

func (l *chatLoop) printHistory() {
	for _, m := range l.thread.Messages() {
		who := "you "
		if m.Role == provider.RoleAssistant {
			who = "chef"
		}
		fmt.Fprintf(l.out, "%s %s  %s\n",
			RenderConditional(DimStyle, m.At.Format("15:04")), who, m.Text)
	}
}
