// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat keeps the per-dish conversations with the chef.
//
// A thread is created lazily the first time a dish's chat is opened and
// lives for the rest of the process. Sending is split in two: Submit appends
// the diner's message immediately and returns an Exchange, and
// Exchange.Resolve performs the provider call and appends the chef's reply.
// Provider calls on one thread run one at a time, so every call sees the
// answers to the questions asked before it.
package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/nexindemo/Nex-reelmenu/internal/catalog"
	"github.com/nexindemo/Nex-reelmenu/internal/provider"
)

const (
	greetingFormat = "Hello! I'm the Executive Chef. What would you like to know about our %s?"

	// BusyReply is appended when the provider call fails.
	BusyReply = "The chef is a bit busy right now! Please ask again in a moment."

	// OfflineReply is appended when no provider is configured.
	OfflineReply = "I'm sorry, I can't connect to the kitchen right now (Missing API Key)."

	// DefaultTimeout bounds one chef reply.
	DefaultTimeout = 45 * time.Second

	maxMessageRunes = 500
)

// SuggestedQuestions are offered as one-tap prompts.
var SuggestedQuestions = []string{
	"Is this dish spicy? 🌶️",
	"What are the main ingredients? 🥕",
	"Is it gluten-free? 🌾",
	"What drink goes best with this? 🍷",
}

// Greeting is the chef's opening line for a dish.
func Greeting(dish string) string {
	return fmt.Sprintf(greetingFormat, dish)
}

// Message is one chat bubble.
type Message struct {
	ID       string
	Role     provider.Role
	Text     string
	At       time.Time
	ReplyTo  string // user message answered by an assistant message
	Fallback bool   // the reply is a canned fallback, not the chef's answer
}

// =============================================================================
// THREAD
// =============================================================================

// Thread is the conversation about one dish. Messages are append-only.
type Thread struct {
	itemID string
	dish   string

	mu       sync.Mutex
	messages []Message
	pending  map[string]struct{} // unanswered user message ids

	turn sync.Mutex // held for the duration of a provider call
}

// ItemID returns the dish id.
func (t *Thread) ItemID() string { return t.itemID }

// Dish returns the dish name.
func (t *Thread) Dish() string { return t.dish }

// Messages returns a copy of the conversation, oldest first.
func (t *Thread) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages.
func (t *Thread) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages)
}

// Awaiting reports whether any question is still waiting for a reply.
func (t *Thread) Awaiting() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending) > 0
}

func (t *Thread) append(m Message) {
	t.mu.Lock()
	t.messages = append(t.messages, m)
	if m.Role == provider.RoleUser {
		t.pending[m.ID] = struct{}{}
	} else if m.ReplyTo != "" {
		delete(t.pending, m.ReplyTo)
	}
	t.mu.Unlock()
}

// history returns every message except the question being asked and any
// other question still waiting for its answer.
func (t *Thread) history(questionID string) []provider.Turn {
	t.mu.Lock()
	defer t.mu.Unlock()
	turns := make([]provider.Turn, 0, len(t.messages))
	for _, m := range t.messages {
		if m.ID == questionID {
			continue
		}
		if _, waiting := t.pending[m.ID]; waiting {
			continue
		}
		turns = append(turns, provider.Turn{Role: m.Role, Text: m.Text})
	}
	return turns
}

// =============================================================================
// SESSIONS
// =============================================================================

// Config tunes Sessions. Zero values take defaults.
type Config struct {
	Timeout time.Duration
	Now     func() time.Time
}

// Sessions owns every chat thread.
//
// Sessions is safe for concurrent use.
type Sessions struct {
	provider provider.Provider
	timeout  time.Duration
	now      func() time.Time
	log      *zap.Logger

	mu      sync.Mutex
	threads map[string]*Thread
}

// NewSessions creates an empty set of threads backed by p.
func NewSessions(p provider.Provider, cfg Config, log *zap.Logger) *Sessions {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Sessions{
		provider: p,
		timeout:  cfg.Timeout,
		now:      cfg.Now,
		log:      log.Named("chat"),
		threads:  make(map[string]*Thread),
	}
}

// Open returns the thread for item, creating it with the chef's greeting on
// first use. Opening an existing thread changes nothing.
func (s *Sessions) Open(item catalog.Item) *Thread {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.threads[item.ID]; ok {
		return t
	}
	t := &Thread{
		itemID:  item.ID,
		dish:    item.Name,
		pending: make(map[string]struct{}),
	}
	t.messages = append(t.messages, Message{
		ID:   uuid.NewString(),
		Role: provider.RoleAssistant,
		Text: Greeting(item.Name),
		At:   s.now(),
	})
	s.threads[item.ID] = t
	s.log.Debug("thread opened", zap.String("item", item.ID))
	return t
}

// Thread returns an existing thread.
func (s *Sessions) Thread(itemID string) (*Thread, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.threads[itemID]
	return t, ok
}

// normalize returns the text to store for a question, or "" when the input
// carries nothing to ask.
func normalize(text string) string {
	text = strings.TrimSpace(norm.NFC.String(text))
	if r := []rune(text); len(r) > maxMessageRunes {
		text = string(r[:maxMessageRunes])
	}
	return text
}

// Exchange is a submitted question whose reply has not been fetched yet.
type Exchange struct {
	s        *Sessions
	thread   *Thread
	question Message
}

// Question returns the diner's message.
func (e *Exchange) Question() Message { return e.question }

// Thread returns the conversation the question belongs to.
func (e *Exchange) Thread() *Thread { return e.thread }

// Submit appends text as the diner's message and returns the pending
// exchange. Blank text is rejected: nothing is appended and ok is false.
// The thread is opened if needed.
func (s *Sessions) Submit(item catalog.Item, text string) (ex *Exchange, ok bool) {
	text = normalize(text)
	if text == "" {
		return nil, false
	}
	t := s.Open(item)
	q := Message{
		ID:   uuid.NewString(),
		Role: provider.RoleUser,
		Text: text,
		At:   s.now(),
	}
	t.append(q)
	return &Exchange{s: s, thread: t, question: q}, true
}

// Resolve asks the provider and appends the chef's reply, or a fallback
// when the call fails. It always appends exactly one assistant message and
// returns it.
func (e *Exchange) Resolve(ctx context.Context) Message {
	t := e.thread
	t.turn.Lock()
	defer t.turn.Unlock()

	ctx, cancel := context.WithTimeout(ctx, e.s.timeout)
	defer cancel()

	reply, err := e.s.provider.Chat(ctx, provider.ChatRequest{
		Dish:    t.dish,
		History: t.history(e.question.ID),
		Message: e.question.Text,
	})

	m := Message{
		ID:      uuid.NewString(),
		Role:    provider.RoleAssistant,
		ReplyTo: e.question.ID,
	}
	switch {
	case err == nil && strings.TrimSpace(reply) != "":
		m.Text = strings.TrimSpace(reply)
	case provider.IsNotConfigured(err):
		m.Text, m.Fallback = OfflineReply, true
		e.s.log.Info("chef offline, using fallback", zap.String("item", t.itemID))
	default:
		m.Text, m.Fallback = BusyReply, true
		e.s.log.Warn("chef reply failed, using fallback", zap.String("item", t.itemID), zap.Error(err))
	}
	m.At = e.s.now()
	t.append(m)
	return m
}

// Send submits text and waits for the reply.
func (s *Sessions) Send(ctx context.Context, item catalog.Item, text string) (Message, bool) {
	ex, ok := s.Submit(item, text)
	if !ok {
		return Message{}, false
	}
	return ex.Resolve(ctx), true
}
