package coordinator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vslstudio/vsl-backend/internal/autocomplete/domain"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func staticCompleter(text string, calls *int32) Completer {
	return CompleterFunc(func(ctx context.Context, fragment string) (string, error) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		return text, nil
	})
}

// gatedCompleter blocks each fragment until its gate is released and
// deliberately ignores cancellation so the stale-response guard is exercised.
type gatedCompleter struct {
	mu     sync.Mutex
	gates  map[string]chan string
	called chan string
}

func newGatedCompleter(fragments ...string) *gatedCompleter {
	g := &gatedCompleter{gates: map[string]chan string{}, called: make(chan string, 8)}
	for _, f := range fragments {
		g.gates[f] = make(chan string, 1)
	}
	return g
}

func (g *gatedCompleter) Complete(ctx context.Context, fragment string) (string, error) {
	g.mu.Lock()
	gate := g.gates[fragment]
	g.mu.Unlock()
	g.called <- fragment
	return <-gate, nil
}

func (g *gatedCompleter) release(fragment, text string) {
	g.gates[fragment] <- text
}

type fakeTimer struct {
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeTimers struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (ft *fakeTimers) afterFunc(d time.Duration, f func()) Timer {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	t := &fakeTimer{f: f}
	ft.timers = append(ft.timers, t)
	return t
}

// fireAll runs every timer that has not been stopped.
func (ft *fakeTimers) fireAll() int {
	ft.mu.Lock()
	pending := make([]*fakeTimer, 0, len(ft.timers))
	for _, t := range ft.timers {
		if !t.stopped {
			t.stopped = true
			pending = append(pending, t)
		}
	}
	ft.mu.Unlock()
	for _, t := range pending {
		t.f()
	}
	return len(pending)
}

func TestRequestSuggestion_RealTimeReady(t *testing.T) {
	c := New(staticCompleter("á, tudo bem?", nil), WithMinChars(2))
	defer c.Close()

	c.RequestSuggestion("Ol", 2)
	c.Wait()

	assert.Equal(t, domain.SuggestionState{Text: "á, tudo bem?", IsLoading: false, Visible: true}, c.State())
	assert.Equal(t, domain.PhaseReady, c.State().Phase())
}

func TestRequestSuggestion_MinCharsThreshold(t *testing.T) {
	var calls int32
	c := New(staticCompleter("x", &calls), WithMinChars(2))
	defer c.Close()

	c.RequestSuggestion("O", 1)
	c.Wait()
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	assert.Equal(t, domain.EmptyState(), c.State())

	c.RequestSuggestion("Ol", 2)
	c.Wait()
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRequestSuggestion_SameContextIsNotRefetched(t *testing.T) {
	var calls int32
	c := New(staticCompleter("a", &calls), WithMinChars(2))
	defer c.Close()

	c.RequestSuggestion("bom di", 6)
	c.Wait()
	// caret moved inside a longer text, trailing window unchanged
	c.RequestSuggestion("bom di", 6)
	c.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRequestSuggestion_IneligibleClears(t *testing.T) {
	c := New(staticCompleter("ndo", nil), WithMinChars(2))
	defer c.Close()

	c.RequestSuggestion("ola mu", 6)
	c.Wait()
	require.True(t, c.State().Ready())

	c.RequestSuggestion("o", 1)
	assert.Equal(t, domain.EmptyState(), c.State())
}

func TestRequestSuggestion_UsesTrailingWindow(t *testing.T) {
	var got string
	var mu sync.Mutex
	c := New(CompleterFunc(func(ctx context.Context, fragment string) (string, error) {
		mu.Lock()
		got = fragment
		mu.Unlock()
		return "", nil
	}), WithMaxLookback(5), WithMinChars(2))
	defer c.Close()

	c.RequestSuggestion("uma frase comprida|depois", 18)
	c.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "prida", got)
}

func TestClearSuggestion_Idempotent(t *testing.T) {
	c := New(staticCompleter("do", nil), WithMinChars(2))
	defer c.Close()

	c.RequestSuggestion("mun", 3)
	c.Wait()

	c.ClearSuggestion()
	once := c.State()
	c.ClearSuggestion()
	twice := c.State()

	assert.Equal(t, domain.EmptyState(), once)
	assert.Equal(t, once, twice)
}

func TestEscapeResetsState(t *testing.T) {
	g := newGatedCompleter("mund")
	c := New(g, WithMinChars(2))
	defer c.Close()

	c.RequestSuggestion("mund", 4)
	<-g.called
	assert.Equal(t, domain.LoadingState(), c.State())

	c.ClearSuggestion()
	assert.Equal(t, domain.EmptyState(), c.State())

	g.release("mund", "o")
	c.Wait()
	assert.Equal(t, domain.EmptyState(), c.State())
}

func TestAcceptSuggestion_RoundTrip(t *testing.T) {
	c := New(staticCompleter("á! Bem-vindo", nil), WithMinChars(2))
	defer c.Close()

	c.RequestSuggestion("Ol", 2)
	c.Wait()

	text, inserted := c.AcceptSuggestion("Ol", 2)
	assert.Equal(t, "Olá! Bem-vindo", text)
	assert.Equal(t, len([]rune("á! Bem-vindo")), inserted)
	assert.Equal(t, domain.EmptyState(), c.State())
}

func TestAcceptSuggestion_KeepsTextAfterCaret(t *testing.T) {
	c := New(staticCompleter("ajudar você hoje", nil), WithMinChars(2))
	defer c.Close()

	c.RequestSuggestion("posso ajud", 10)
	c.Wait()

	text, inserted := c.AcceptSuggestion("posso ajud. Fim", 10)
	assert.Equal(t, "posso ajudar você hoje. Fim", text)
	assert.Equal(t, len([]rune("ar você hoje")), inserted)
}

func TestAcceptSuggestion_NoopWithoutReadySuggestion(t *testing.T) {
	g := newGatedCompleter("abc")
	c := New(g, WithMinChars(2))
	defer c.Close()

	text, inserted := c.AcceptSuggestion("abc", 3)
	assert.Equal(t, "abc", text)
	assert.Zero(t, inserted)

	c.RequestSuggestion("abc", 3)
	<-g.called
	text, inserted = c.AcceptSuggestion("abc", 3)
	assert.Equal(t, "abc", text)
	assert.Zero(t, inserted)

	g.release("abc", "d")
	c.Wait()
}

func TestAcceptSuggestion_ClearsDedupMarker(t *testing.T) {
	var calls int32
	c := New(staticCompleter("ndo", &calls), WithMinChars(2))
	defer c.Close()

	c.RequestSuggestion("mu", 2)
	c.Wait()
	c.AcceptSuggestion("mu", 2)

	c.RequestSuggestion("mu", 2)
	c.Wait()
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestStaleResponseIsDropped(t *testing.T) {
	g := newGatedCompleter("ol", "ola tudo ")
	c := New(g, WithMinChars(2))
	defer c.Close()

	c.RequestSuggestion("ol", 2)
	<-g.called
	c.RequestSuggestion("ola tudo ", 9)
	<-g.called

	g.release("ola tudo ", "bem?")
	g.release("ol", "á")
	c.Wait()

	assert.Equal(t, domain.ReadyState("bem?"), c.State())
}

func TestFailedRequestClearsSilently(t *testing.T) {
	c := New(CompleterFunc(func(ctx context.Context, fragment string) (string, error) {
		return "", errors.New("boom")
	}), WithMinChars(2))
	defer c.Close()

	assert.NotPanics(t, func() { c.RequestSuggestion("ola", 3) })
	c.Wait()

	assert.Equal(t, domain.SuggestionState{}, c.State())
}

func TestFailedRequestAllowsRetryOfSameContext(t *testing.T) {
	var calls int32
	c := New(CompleterFunc(func(ctx context.Context, fragment string) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "", domain.ErrCompletionFailed
	}), WithMinChars(2))
	defer c.Close()

	c.RequestSuggestion("ola", 3)
	c.Wait()
	c.RequestSuggestion("ola", 3)
	c.Wait()

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestSupersededRequestIsCancelled(t *testing.T) {
	cancelled := make(chan struct{})
	started := make(chan struct{}, 2)
	c := New(CompleterFunc(func(ctx context.Context, fragment string) (string, error) {
		started <- struct{}{}
		if fragment == "ol" {
			<-ctx.Done()
			close(cancelled)
			return "", ctx.Err()
		}
		return "bem", nil
	}), WithMinChars(2))
	defer c.Close()

	c.RequestSuggestion("ol", 2)
	<-started
	c.RequestSuggestion("ola", 3)

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("superseded request was not cancelled")
	}
	c.Wait()
	assert.Equal(t, domain.ReadyState("bem"), c.State())
}

func TestDebounceCollapsesKeystrokes(t *testing.T) {
	var calls int32
	var mu sync.Mutex
	var fragments []string
	timers := &fakeTimers{}

	c := New(CompleterFunc(func(ctx context.Context, fragment string) (string, error) {
		atomic.AddInt32(&calls, 1)
		mu.Lock()
		fragments = append(fragments, fragment)
		mu.Unlock()
		return "s", nil
	}), WithMinChars(2), WithDebounce(400*time.Millisecond), WithAfterFunc(timers.afterFunc))
	defer c.Close()

	c.RequestSuggestion("pro", 3)
	c.RequestSuggestion("prod", 4)
	c.RequestSuggestion("produ", 5)
	assert.Equal(t, domain.EmptyState(), c.State())

	assert.Equal(t, 1, timers.fireAll())
	c.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, []string{"produ"}, fragments)
	assert.Equal(t, domain.ReadyState("s"), c.State())
}

func TestDebounceBackspaceRestoresSettledSuggestion(t *testing.T) {
	var mu sync.Mutex
	var fragments []string
	timers := &fakeTimers{}

	c := New(CompleterFunc(func(ctx context.Context, fragment string) (string, error) {
		mu.Lock()
		fragments = append(fragments, fragment)
		mu.Unlock()
		return "sugg-for-" + fragment, nil
	}), WithMinChars(2), WithDebounce(400*time.Millisecond), WithAfterFunc(timers.afterFunc))
	defer c.Close()

	c.RequestSuggestion("abc", 3)
	require.Equal(t, 1, timers.fireAll())
	c.Wait()
	require.Equal(t, domain.ReadyState("sugg-for-abc"), c.State())

	c.RequestSuggestion("abcd", 4)
	assert.Equal(t, domain.EmptyState(), c.State())

	c.RequestSuggestion("abc", 3)
	assert.Equal(t, domain.ReadyState("sugg-for-abc"), c.State())

	assert.Zero(t, timers.fireAll())
	c.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"abc"}, fragments)
	assert.Equal(t, domain.ReadyState("sugg-for-abc"), c.State())
	text, n := c.AcceptSuggestion("abc", 3)
	assert.Equal(t, "abcsugg-for-abc", text)
	assert.Equal(t, len("sugg-for-abc"), n)
}

func TestDebounceHoldsResponseForOutdatedText(t *testing.T) {
	timers := &fakeTimers{}
	g := newGatedCompleter("abc")
	c := New(g, WithMinChars(2), WithDebounce(400*time.Millisecond), WithAfterFunc(timers.afterFunc))
	defer c.Close()

	c.RequestSuggestion("abc", 3)
	require.Equal(t, 1, timers.fireAll())
	<-g.called

	c.RequestSuggestion("abcd", 4)
	g.release("abc", "x")
	c.Wait()
	assert.False(t, c.State().Visible)

	c.RequestSuggestion("abc", 3)
	assert.Equal(t, domain.ReadyState("x"), c.State())
	assert.Zero(t, timers.fireAll())
	c.Wait()
}

func TestDebounceTimerCancelledByClear(t *testing.T) {
	var calls int32
	timers := &fakeTimers{}
	c := New(staticCompleter("x", &calls), WithMinChars(2), WithDebounce(0), WithAfterFunc(timers.afterFunc))
	defer c.Close()

	c.RequestSuggestion("abc", 3)
	c.ClearSuggestion()
	timers.fireAll()
	c.Wait()

	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestDebounceWithRealTimer(t *testing.T) {
	done := make(chan string, 1)
	c := New(CompleterFunc(func(ctx context.Context, fragment string) (string, error) {
		done <- fragment
		return "e", nil
	}), WithMinChars(2), WithDebounce(10*time.Millisecond))
	defer c.Close()

	c.RequestSuggestion("cas", 3)

	select {
	case f := <-done:
		assert.Equal(t, "cas", f)
	case <-time.After(2 * time.Second):
		t.Fatal("debounced request never fired")
	}
	c.Wait()
}

func TestOnChangeSeesFinalState(t *testing.T) {
	var mu sync.Mutex
	var seen []domain.SuggestionState
	c := New(staticCompleter("ndo", nil), WithMinChars(2), WithOnChange(func(s domain.SuggestionState) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	}))
	defer c.Close()

	c.RequestSuggestion("mu", 2)
	c.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, seen)
	assert.Equal(t, domain.ReadyState("ndo"), seen[len(seen)-1])
}

func TestDisabledNeverRequests(t *testing.T) {
	var calls int32
	c := New(staticCompleter("x", &calls), WithEnabled(false))
	defer c.Close()

	c.RequestSuggestion("qualquer coisa", 14)
	c.Wait()
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestCloseCancelsAndDisables(t *testing.T) {
	var calls int32
	c := New(CompleterFunc(func(ctx context.Context, fragment string) (string, error) {
		atomic.AddInt32(&calls, 1)
		<-ctx.Done()
		return "", ctx.Err()
	}), WithMinChars(2))

	c.RequestSuggestion("ola", 3)
	c.Close()
	c.Wait()
	c.RequestSuggestion("olaa", 4)
	c.Wait()

	assert.Equal(t, domain.EmptyState(), c.State())
	assert.LessOrEqual(t, atomic.LoadInt32(&calls), int32(1))
}
