// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/nexindemo/Nex-reelmenu/internal/cart"
	"github.com/nexindemo/Nex-reelmenu/internal/catalog"
	"github.com/nexindemo/Nex-reelmenu/internal/chat"
	"github.com/nexindemo/Nex-reelmenu/internal/enrich"
	"github.com/nexindemo/Nex-reelmenu/internal/provider"
	"github.com/nexindemo/Nex-reelmenu/internal/session"
	"github.com/nexindemo/Nex-reelmenu/internal/ui/styles"
	"github.com/nexindemo/Nex-reelmenu/internal/util"
)

func testTheme(t *testing.T) *styles.Theme {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
	return styles.NewTheme(styles.ModeDark)
}

func dish(id string) catalog.Item {
	item, ok := catalog.Default().Lookup(id)
	if !ok {
		panic("unknown demo dish " + id)
	}
	return item
}

// =============================================================================
// CARD
// =============================================================================

func TestCard_View(t *testing.T) {
	theme := testTheme(t)
	base := Card{Item: dish("dan-dan-noodles"), Index: 1, Total: 8, Focused: true, Width: 70, Height: 30}

	tests := []struct {
		name    string
		mutate  func(*Card)
		want    []string
		notWant []string
	}{
		{
			name: "pending image shows plating",
			mutate: func(c *Card) {
				c.ImageState = enrich.StatePending
				c.Plating = "AI Plating..."
			},
			want: []string{"AI Plating...", "Dan Dan Noodles", "$18.50", "SPICY", "2/8", "ADD TO ORDER"},
		},
		{
			name:    "added feedback",
			mutate:  func(c *Card) { c.Added = true },
			want:    []string{"ADDED"},
			notWant: []string{"ADD TO ORDER"},
		},
		{
			name:   "liked and in cart",
			mutate: func(c *Card) { c.Liked = true; c.InCart = 2 },
			want:   []string{"♥", "2 in order"},
		},
		{
			name:    "picture replaces placeholder",
			mutate:  func(c *Card) { c.Picture = "<<art>>"; c.ImageState = enrich.StateReady },
			want:    []string{"<<art>>"},
			notWant: []string{"Photo"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			out := c.View(theme)
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("card missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("card should not contain %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestRenderEmphasis(t *testing.T) {
	theme := testTheme(t)
	out := RenderEmphasis(theme, "Pairs beautifully with a glass of **Barolo** or a crisp **Vermentino**.", 200)
	if strings.Contains(out, "**") {
		t.Errorf("markers should be consumed: %q", out)
	}
	for _, w := range []string{"Barolo", "Vermentino", "Pairs beautifully"} {
		if !strings.Contains(out, w) {
			t.Errorf("missing %q in %q", w, out)
		}
	}
}

func TestPhotoSource(t *testing.T) {
	tests := []struct{ ref, want string }{
		{"https://images.unsplash.com/photo-1", "images.unsplash.com"},
		{"data:image/png;base64,AAAA", ""},
		{"", ""},
		{"not a url", ""},
	}
	for _, tt := range tests {
		if got := photoSource(tt.ref); got != tt.want {
			t.Errorf("photoSource(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

// =============================================================================
// CART DRAWER
// =============================================================================

func cartView(lines ...cart.Line) session.CartView {
	l := cart.NewLedger(catalog.Default().Lookup)
	for _, ln := range lines {
		for i := 0; i < ln.Quantity; i++ {
			l.Add(ln.Item)
		}
	}
	return session.CartView{
		Lines: l.Lines(), Count: l.Count(),
		Subtotal: l.Subtotal(), Surcharge: l.Surcharge(), Total: l.Total(),
	}
}

func TestCartDrawer_Empty(t *testing.T) {
	d := NewCartDrawer()
	out := d.View(testTheme(t), session.CartView{})
	if !strings.Contains(out, "Your cart is empty") {
		t.Errorf("empty drawer:\n%s", out)
	}
	if strings.Contains(out, "PLACE ORDER") {
		t.Error("empty drawer must not offer PLACE ORDER")
	}
}

func TestCartDrawer_LinesAndTrash(t *testing.T) {
	d := NewCartDrawer()
	v := cartView(cart.Line{Item: dish("tiramisu"), Quantity: 1}, cart.Line{Item: dish("wagyu-burger"), Quantity: 2})
	out := d.View(testTheme(t), v)

	for _, w := range []string{"Your Order (3)", "Classic Tiramisu", "Wagyu Smash Burger", "PLACE ORDER", v.Total.String(), styles.Trash} {
		if !strings.Contains(out, w) {
			t.Errorf("drawer missing %q:\n%s", w, out)
		}
	}
	if strings.Count(out, styles.Trash) != 1 {
		t.Errorf("only the quantity-1 line shows the trash glyph:\n%s", out)
	}
}

func TestCartDrawer_Cursor(t *testing.T) {
	d := NewCartDrawer()
	v := cartView(cart.Line{Item: dish("tiramisu"), Quantity: 1}, cart.Line{Item: dish("short-rib"), Quantity: 1})

	id, onButton := d.Selected(v)
	if id != "tiramisu" || onButton {
		t.Fatalf("first row = %q/%v", id, onButton)
	}

	d.Move(1, len(v.Lines))
	if id, _ := d.Selected(v); id != "short-rib" {
		t.Fatalf("second row = %q", id)
	}

	d.Move(5, len(v.Lines))
	if _, onButton := d.Selected(v); !onButton {
		t.Fatal("cursor should stop on PLACE ORDER")
	}

	// Lines removed under the cursor clamp it back.
	one := cartView(cart.Line{Item: dish("tiramisu"), Quantity: 1})
	if _, onButton := d.Selected(one); !onButton {
		t.Fatal("cursor beyond the lines should land on the button")
	}
	d.Move(-10, len(one.Lines))
	if id, _ := d.Selected(one); id != "tiramisu" {
		t.Fatalf("cursor should clamp to the first row, got %q", id)
	}
}

// =============================================================================
// OVERLAYS
// =============================================================================

func TestNutritionPanel(t *testing.T) {
	theme := testTheme(t)
	spin := NewSpinner()

	tests := []struct {
		name  string
		entry enrich.Entry
		want  []string
	}{
		{"pending", enrich.Entry{State: enrich.StatePending}, []string{AnalyzingMessage}},
		{"ready", enrich.Entry{State: enrich.StateReady, Nutrition: &provider.Nutrition{
			Calories: 640, Protein: "22g", Carbs: "71g", Fat: "28g", Highlight: "Rich in umami.",
		}}, []string{"640", "22g", "71g", "28g", "Rich in umami."}},
		{"failed", enrich.Entry{State: enrich.StateFailed, Reason: "provider unavailable"}, []string{"unavailable", "press n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NutritionPanel{Dish: "Miso Glazed Salmon", Entry: tt.entry, Width: 60}.View(theme, spin)
			for _, w := range append(tt.want, "Nutrition Facts", "Miso Glazed Salmon") {
				if !strings.Contains(out, w) {
					t.Errorf("missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestChefChat(t *testing.T) {
	theme := testTheme(t)
	c := NewChefChat(theme)
	c.SetSize(70, 30)
	c.Open("tiramisu", "Classic Tiramisu")

	c.SetMessages([]chat.Message{{Role: provider.RoleAssistant, Text: chat.Greeting("Classic Tiramisu")}})
	out := c.View(NewSpinner())
	for _, w := range []string{"Chef's Table", "Ask about Classic Tiramisu", chat.SuggestedQuestions[0]} {
		if !strings.Contains(out, w) {
			t.Errorf("missing %q:\n%s", w, out)
		}
	}

	c.NextSuggestion()
	if c.Value() != chat.SuggestedQuestions[0] {
		t.Errorf("first suggestion = %q", c.Value())
	}
	c.NextSuggestion()
	if c.Value() != chat.SuggestedQuestions[1] {
		t.Errorf("second suggestion = %q", c.Value())
	}

	c.SetMessages([]chat.Message{
		{Role: provider.RoleAssistant, Text: chat.Greeting("Classic Tiramisu")},
		{Role: provider.RoleUser, Text: "Is it boozy?"},
	})
	c.SetThinking(true)
	out = c.View(NewSpinner())
	if !strings.Contains(out, ThinkingMessage) {
		t.Errorf("thinking row missing:\n%s", out)
	}
	if strings.Contains(out, chat.SuggestedQuestions[3]) {
		t.Error("suggestions disappear once the diner has asked")
	}

	// Reopening another dish clears the draft.
	c.Open("short-rib", "Braised Short Rib")
	if c.Value() != "" {
		t.Errorf("draft should reset for a new dish, got %q", c.Value())
	}
}

func TestSearchBox(t *testing.T) {
	theme := testTheme(t)
	s := NewSearchBox(theme)
	s.SetWidth(60)
	s.Open()

	out := s.View(theme, false, NewSpinner())
	for _, w := range []string{"Smart Search", "Describe your craving...", "Something spicy"} {
		if !strings.Contains(out, w) {
			t.Errorf("missing %q:\n%s", w, out)
		}
	}
	s.NextSuggestion()
	if s.Value() == "" {
		t.Error("tab should fill a suggestion")
	}
	if out := s.View(theme, true, NewSpinner()); !strings.Contains(out, SearchingMessage) {
		t.Errorf("searching state missing:\n%s", out)
	}
}

func TestOrderSuccess(t *testing.T) {
	r := cart.Receipt{OrderID: "0123456789abcdef", Total: util.Cents(3885), Lines: []cart.Line{{Item: dish("dan-dan-noodles"), Quantity: 2}}}
	out := OrderSuccess{Receipt: r, LogNote: "Ticket saved"}.View(testTheme(t))
	for _, w := range []string{OrderPlacedTitle, OrderPlacedBody, "01234567", "2 items", "$38.85", "Ticket saved"} {
		if !strings.Contains(out, w) {
			t.Errorf("missing %q:\n%s", w, out)
		}
	}
}

func TestStatusBar(t *testing.T) {
	theme := testTheme(t)
	s := NewStatusBar(theme)
	s.SetWidth(120)

	if out := s.View(); !strings.Contains(out, "Full menu") {
		t.Errorf("default state:\n%s", out)
	}
	s.Filter = session.FilterState{Active: true, Query: "something spicy"}
	if out := s.View(); !strings.Contains(out, "Filtered: something spicy") {
		t.Errorf("filter chip missing:\n%s", out)
	}
	s.SetFlash("Added Classic Tiramisu", FlashSuccess)
	if out := s.View(); !strings.Contains(out, "Added Classic Tiramisu") {
		t.Errorf("flash missing:\n%s", out)
	}
	s.ClearFlash()
	s.Filter = session.FilterState{Degraded: true}
	if out := s.View(); !strings.Contains(out, "Chef unavailable") {
		t.Errorf("degraded state missing:\n%s", out)
	}

	s.SetWidth(40)
	if w := lipgloss.Width(s.View()); w > 40 {
		t.Errorf("narrow status bar is %d wide", w)
	}
}

func TestHeader(t *testing.T) {
	theme := testTheme(t)
	out := Header{Width: 80, Backend: "gemini", CartCount: 3, CartTotal: util.Cents(6000)}.View(theme)
	for _, w := range []string{"ReelMenu", "gemini", "3", "$60.00"} {
		if !strings.Contains(out, w) {
			t.Errorf("missing %q:\n%s", w, out)
		}
	}
}

func TestItoa(t *testing.T) {
	tests := map[int]string{0: "0", 7: "7", 42: "42", 99: "99", 100: "99+", -1: "0"}
	for n, want := range tests {
		if got := itoa(n); got != want {
			t.Errorf("itoa(%d) = %q, want %q", n, got, want)
		}
	}
}

// =============================================================================
// PICTURE AND SPINNER
// =============================================================================

func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestRenderPicture(t *testing.T) {
	ref := pngDataURL(t, 18, 32)

	out, err := RenderPicture(ref, 20, 8)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 8 {
		t.Errorf("got %d rows, want 8", len(lines))
	}
	for _, ln := range lines {
		if w := lipgloss.Width(ln); w > 20 {
			t.Errorf("row is %d wide, want <= 20", w)
		}
	}
	if !strings.Contains(out, styles.HalfBlock) {
		t.Error("picture should be drawn with half blocks")
	}
}

func TestDecodeDataURL_Errors(t *testing.T) {
	tests := []string{
		"https://example.com/a.png",
		"data:image/png,rawbytes",
		"data:image/png;base64,!!!",
		"data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("not an image")),
	}
	for _, ref := range tests {
		if _, err := DecodeDataURL(ref); err == nil {
			t.Errorf("DecodeDataURL(%q) should fail", ref)
		}
	}
}

func TestSpinner(t *testing.T) {
	s := NewPlatingSpinner()
	if s.IsActive() {
		t.Fatal("new spinner should be idle")
	}
	if !strings.Contains(s.View(), PlatingMessage+"...") {
		t.Errorf("idle view = %q", s.View())
	}
	if cmd := s.Start(); cmd == nil {
		t.Fatal("Start should schedule a tick")
	}
	if !s.IsActive() {
		t.Fatal("spinner should be active after Start")
	}
	s.Stop()
	if _, cmd := s.Update(nil); cmd != nil {
		t.Error("stopped spinner must not reschedule")
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{0, "0s"},
		{42, "42s"},
		{65, "1m05s"},
	}
	for _, tt := range tests {
		if got := formatElapsed(time.Duration(tt.secs) * time.Second); got != tt.want {
			t.Errorf("formatElapsed(%ds) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}
