package binding

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vslstudio/vsl-backend/internal/autocomplete/coordinator"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func countingCompleter(text string, calls *int32) coordinator.Completer {
	return coordinator.CompleterFunc(func(ctx context.Context, fragment string) (string, error) {
		atomic.AddInt32(calls, 1)
		return text, nil
	})
}

func settle(f *field) {
	f.suggester.(*coordinator.Coordinator).Wait()
}

type recorder struct {
	mu      sync.Mutex
	changes []string
	keys    []string
	renders int
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		OnChange: func(text string) {
			r.mu.Lock()
			r.changes = append(r.changes, text)
			r.mu.Unlock()
		},
		OnKeyDown: func(ev *KeyEvent) {
			r.mu.Lock()
			r.keys = append(r.keys, ev.Name)
			r.mu.Unlock()
		},
		OnRender: func(Ghost) {
			r.mu.Lock()
			r.renders++
			r.mu.Unlock()
		},
	}
}

func TestSingleLine_AcceptWithTab(t *testing.T) {
	var calls int32
	rec := &recorder{}
	s := NewSingleLine(countingCompleter("á! Bem-vindo", &calls), DefaultSingleLineGeometry(), rec.hooks())
	defer s.Unmount()

	s.Change("Ol", 2)
	settle(&s.field)

	ghost := s.Ghost()
	require.True(t, ghost.Visible())
	assert.Equal(t, "á! Bem-vindo", ghost.Text)
	assert.Equal(t, AcceptHint, ghost.Hint)
	assert.InDelta(t, 12+2*0.6*8, ghost.Position.Left, 1e-9)

	ev := NewKeyEvent("Tab")
	s.KeyDown(ev)

	assert.True(t, ev.DefaultPrevented())
	text, caret := s.Value()
	assert.Equal(t, "Olá! Bem-vindo", text)
	assert.Equal(t, 14, caret)
	assert.Equal(t, []string{"Olá! Bem-vindo"}, rec.changes)
	assert.Equal(t, []string{"Tab"}, rec.keys)
	assert.False(t, s.Ghost().Visible())
}

func TestSingleLine_ArrowRightAcceptsWithoutDuplicatedPrefix(t *testing.T) {
	var calls int32
	s := NewSingleLine(countingCompleter("ajudar você hoje", &calls), DefaultSingleLineGeometry(), Hooks{})
	defer s.Unmount()

	s.Change("como posso ajud", 15)
	settle(&s.field)

	ev := NewKeyEvent("ArrowRight")
	s.KeyDown(ev)

	assert.True(t, ev.DefaultPrevented())
	text, caret := s.Value()
	assert.Equal(t, "como posso ajudar você hoje", text)
	assert.Equal(t, 15+len([]rune("ar você hoje")), caret)
}

func TestTabWithoutSuggestionPassesThrough(t *testing.T) {
	var calls int32
	rec := &recorder{}
	s := NewSingleLine(countingCompleter("x", &calls), DefaultSingleLineGeometry(), rec.hooks())
	defer s.Unmount()

	s.Change("a", 1)
	ev := NewKeyEvent("Tab")
	s.KeyDown(ev)

	assert.False(t, ev.DefaultPrevented())
	assert.Equal(t, []string{"Tab"}, rec.keys)
	assert.Empty(t, rec.changes)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestTabPassesThroughWhenGhostIsEmptyAtCaret(t *testing.T) {
	var calls int32
	rec := &recorder{}
	m := NewMultiLine(countingCompleter("ola", &calls), MultiLineGeometry{ClientWidth: 400}, nil, rec.hooks())
	defer m.Unmount()

	m.Change("ola mu", 6)
	settle(&m.field)
	require.True(t, m.Ghost().Visible())

	m.MoveCaret(3)
	require.False(t, m.Ghost().Visible())

	ev := NewKeyEvent("Tab")
	m.KeyDown(ev)

	assert.False(t, ev.DefaultPrevented())
	text, caret := m.Value()
	assert.Equal(t, "ola mu", text)
	assert.Equal(t, 3, caret)
	assert.Empty(t, rec.changes)
	assert.Equal(t, []string{"Tab"}, rec.keys)
}

func TestEscapeClearsSuggestion(t *testing.T) {
	var calls int32
	rec := &recorder{}
	m := NewMultiLine(countingCompleter("ndo", &calls), MultiLineGeometry{ClientWidth: 400}, nil, rec.hooks())
	defer m.Unmount()

	m.Change("mu", 2)
	settle(&m.field)
	require.True(t, m.Ghost().Visible())

	m.KeyDown(NewKeyEvent("Escape"))

	assert.False(t, m.Ghost().Visible())
	assert.Equal(t, []string{"Escape"}, rec.keys)
}

func TestOtherKeysReachHostHandler(t *testing.T) {
	var calls int32
	rec := &recorder{}
	m := NewMultiLine(countingCompleter("ndo", &calls), MultiLineGeometry{ClientWidth: 400}, nil, rec.hooks())
	defer m.Unmount()

	m.Change("mu", 2)
	settle(&m.field)

	ev := NewKeyEvent("Enter")
	m.KeyDown(ev)

	assert.False(t, ev.DefaultPrevented())
	assert.Equal(t, []string{"Enter"}, rec.keys)
	assert.True(t, m.Ghost().Visible())
}

func TestMoveCaretDoesNotRequest(t *testing.T) {
	var calls int32
	m := NewMultiLine(countingCompleter("ndo", &calls), MultiLineGeometry{ClientWidth: 400}, CellMeasurer{CellWidth: 10}, Hooks{})
	defer m.Unmount()

	m.Change("ola mu", 6)
	settle(&m.field)
	before := m.Ghost().Position

	m.MoveCaret(3)
	settle(&m.field)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	_, caret := m.Value()
	assert.Equal(t, 3, caret)
	assert.Less(t, m.Ghost().Position.Left, before.Left)
}

func TestRenderHookFiresOnSettle(t *testing.T) {
	var calls int32
	rec := &recorder{}
	s := NewSingleLine(countingCompleter("do", &calls), DefaultSingleLineGeometry(), rec.hooks())
	defer s.Unmount()

	s.Change("mun", 3)
	settle(&s.field)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.GreaterOrEqual(t, rec.renders, 2)
}

func TestSingleLineUsesShortLookback(t *testing.T) {
	var got string
	var mu sync.Mutex
	s := NewSingleLine(coordinator.CompleterFunc(func(ctx context.Context, fragment string) (string, error) {
		mu.Lock()
		got = fragment
		mu.Unlock()
		return "", nil
	}), DefaultSingleLineGeometry(), Hooks{})
	defer s.Unmount()

	text := "0123456789012345678901234567890123456789"
	s.Change(text, 40)
	settle(&s.field)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, text[10:], got)
}

func TestMultiLinePosition(t *testing.T) {
	m := NewMultiLine(nil, MultiLineGeometry{ClientWidth: 80, PaddingX: 10, PaddingLeft: 10, PaddingTop: 5},
		CellMeasurer{CellWidth: 10, RowHeight: 20}, Hooks{})
	defer m.Unmount()

	pos := m.position("hello world", 11)
	assert.Equal(t, Position{Top: 25, Left: 60, LineHeight: 20}, pos)

	pos = m.position("hi\nyo", 5)
	assert.Equal(t, Position{Top: 25, Left: 30, LineHeight: 20}, pos)
}

func TestLayout(t *testing.T) {
	width := CellMeasurer{CellWidth: 10}.Width

	tests := []struct {
		name  string
		text  string
		max   float64
		lines int
		last  string
	}{
		{"fits", "hello", 100, 0, "hello"},
		{"word wraps", "hello world", 60, 1, "world"},
		{"trailing space hangs", "hello ", 50, 0, "hello "},
		{"hard newline", "ab\ncd", 100, 1, "cd"},
		{"long word breaks", "abcdefghij", 40, 2, "ij"},
		{"empty", "", 40, 0, ""},
		{"wide runes", "日本語", 40, 1, "語"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, last := layout(tt.text, tt.max, width)
			assert.Equal(t, tt.lines, lines)
			assert.Equal(t, tt.last, last)
		})
	}
}

func TestParseKey(t *testing.T) {
	assert.Equal(t, KeyTab, ParseKey("Tab"))
	assert.Equal(t, KeyArrowRight, ParseKey("ArrowRight"))
	assert.Equal(t, KeyEscape, ParseKey("Escape"))
	assert.Equal(t, KeyOther, ParseKey("a"))
}
