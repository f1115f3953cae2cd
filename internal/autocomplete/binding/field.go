// Package binding connects text fields to a suggestion coordinator: it turns
// change, key and caret events into coordinator calls and works out where
// the ghost text goes.
package binding

import (
	"sync"
	"unicode/utf8"

	"github.com/vslstudio/vsl-backend/internal/autocomplete/coordinator"
	"github.com/vslstudio/vsl-backend/internal/autocomplete/domain"
)

// AcceptHint is shown next to a ready suggestion.
const AcceptHint = "Tab ↹"

// Position of the ghost text relative to the field's content box, in pixels.
type Position struct {
	Top        float64 `json:"top"`
	Left       float64 `json:"left"`
	LineHeight float64 `json:"line_height"`
}

// Ghost is what a field renders on top of its value.
type Ghost struct {
	Text     string   `json:"text"`
	Position Position `json:"position"`
	Loading  bool     `json:"loading"`
	Hint     string   `json:"hint,omitempty"`
}

// Visible reports whether there is ghost text to draw.
func (g Ghost) Visible() bool {
	return g.Text != ""
}

// Suggester is the coordinator surface a field drives.
type Suggester interface {
	RequestSuggestion(fullText string, caret int)
	AcceptSuggestion(fullText string, caret int) (string, int)
	ClearSuggestion()
	GhostText(fullText string, caret int) string
	State() domain.SuggestionState
	Close()
}

var _ Suggester = (*coordinator.Coordinator)(nil)

// Hooks are the host callbacks a field invokes.
type Hooks struct {
	// OnChange receives the new value after an accepted suggestion.
	OnChange func(text string)
	// OnKeyDown is the host's key handler; it runs for every key.
	OnKeyDown KeyHandler
	// OnRender receives the ghost overlay whenever it may have changed.
	OnRender func(g Ghost)
}

type locateFunc func(text string, caret int) Position

type field struct {
	suggester Suggester
	hooks     Hooks
	locate    locateFunc

	mu    sync.Mutex
	text  string
	caret int
}

// Change forwards an edit. caret is a character offset into text.
func (f *field) Change(text string, caret int) {
	caret = clampCaret(text, caret)
	f.mu.Lock()
	f.text = text
	f.caret = caret
	f.mu.Unlock()

	f.suggester.RequestSuggestion(text, caret)
	f.render()
}

// KeyDown handles Tab, ArrowRight and Escape and then passes the event on to
// the host handler. Tab and ArrowRight are only taken while ghost text is
// shown.
func (f *field) KeyDown(ev *KeyEvent) {
	if ev == nil {
		return
	}

	switch ev.Key {
	case KeyTab, KeyArrowRight:
		if f.Ghost().Visible() {
			ev.PreventDefault()
			f.accept()
		}
	case KeyEscape:
		f.suggester.ClearSuggestion()
		f.render()
	}

	if f.hooks.OnKeyDown != nil {
		f.hooks.OnKeyDown(ev)
	}
}

func (f *field) accept() {
	text, caret := f.snapshot()
	newText, inserted := f.suggester.AcceptSuggestion(text, caret)

	f.mu.Lock()
	f.text = newText
	f.caret = caret + inserted
	f.mu.Unlock()

	if f.hooks.OnChange != nil {
		f.hooks.OnChange(newText)
	}
	f.render()
}

// MoveCaret updates the caret after a click or arrow key without a text
// change. Only the overlay position is recomputed.
func (f *field) MoveCaret(caret int) {
	f.mu.Lock()
	f.caret = clampCaret(f.text, caret)
	f.mu.Unlock()
	f.render()
}

// Value returns the field's text and caret.
func (f *field) Value() (string, int) {
	return f.snapshot()
}

// Ghost computes the current overlay.
func (f *field) Ghost() Ghost {
	text, caret := f.snapshot()
	return f.ghostFor(text, caret)
}

func (f *field) ghostFor(text string, caret int) Ghost {
	state := f.suggester.State()
	if state.IsLoading {
		return Ghost{Loading: true}
	}
	if !state.Ready() {
		return Ghost{}
	}
	suggestion := f.suggester.GhostText(text, caret)
	if suggestion == "" {
		return Ghost{}
	}
	return Ghost{
		Text:     suggestion,
		Position: f.locate(text, caret),
		Hint:     AcceptHint,
	}
}

// Unmount releases the coordinator.
func (f *field) Unmount() {
	f.suggester.Close()
}

func (f *field) render() {
	if f.hooks.OnRender == nil {
		return
	}
	f.hooks.OnRender(f.Ghost())
}

func (f *field) snapshot() (string, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.text, f.caret
}

func clampCaret(text string, caret int) int {
	if caret < 0 {
		return 0
	}
	if n := utf8.RuneCountInString(text); caret > n {
		return n
	}
	return caret
}

func textBefore(text string, caret int) string {
	runes := []rune(text)
	if caret > len(runes) {
		caret = len(runes)
	}
	if caret < 0 {
		caret = 0
	}
	return string(runes[:caret])
}
