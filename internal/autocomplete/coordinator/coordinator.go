// Package coordinator owns the ghost-text suggestion state of a single text
// field: it decides when to ask the completion service for a continuation,
// keeps only the newest response and applies accepted suggestions to the
// field's text.
package coordinator

import (
	"context"
	"errors"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/vslstudio/vsl-backend/internal/autocomplete/domain"
	"go.uber.org/zap"
)

// Completer returns a short continuation for fragment. Implementations must
// return promptly once ctx is cancelled.
type Completer interface {
	Complete(ctx context.Context, fragment string) (string, error)
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(ctx context.Context, fragment string) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, fragment string) (string, error) {
	return f(ctx, fragment)
}

type inflight struct {
	req    domain.SuggestionRequest
	cancel context.CancelFunc
}

// Coordinator is created per field mount and never shared between fields.
type Coordinator struct {
	completer Completer
	opts      options

	base       context.Context
	cancelBase context.CancelFunc

	mu          sync.Mutex
	state       domain.SuggestionState
	lastContext string
	current     *inflight
	timer       Timer
	timerSeq    uint64
	closed      bool
	// parked is the ready suggestion for lastContext while a debounce for
	// newer text is pending.
	parked domain.SuggestionState

	notifyMu sync.Mutex
	wg       sync.WaitGroup
}

// New returns a coordinator in the Idle state.
func New(completer Completer, opts ...Option) *Coordinator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	base, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		completer:  completer,
		opts:       o,
		base:       base,
		cancelBase: cancel,
	}
}

// State returns a snapshot of the current suggestion state.
func (c *Coordinator) State() domain.SuggestionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Mode reports the dispatch policy the coordinator was built with.
func (c *Coordinator) Mode() Mode {
	return c.opts.mode
}

// MaxLookback is the bound on the context window.
func (c *Coordinator) MaxLookback() int {
	return c.opts.maxLookback
}

// RequestSuggestion re-evaluates the field after its text or caret changed.
// It never blocks on the network; results land in State asynchronously.
func (c *Coordinator) RequestSuggestion(fullText string, caret int) {
	c.mu.Lock()
	if c.closed || c.opts.disabled || c.completer == nil {
		changed := c.resetLocked()
		c.mu.Unlock()
		c.notifyIf(changed)
		return
	}

	window := ContextWindow(fullText, caret, c.opts.maxLookback)
	if !Eligible(window, c.opts.minChars) {
		changed := c.resetLocked()
		c.mu.Unlock()
		c.notifyIf(changed)
		return
	}

	if window == c.lastContext {
		changed := c.unparkLocked()
		c.mu.Unlock()
		c.notifyIf(changed)
		return
	}

	var changed bool
	if c.opts.mode == Debounced {
		changed = c.scheduleLocked(window)
	} else {
		changed = c.issueLocked(window)
	}
	c.mu.Unlock()
	c.notifyIf(changed)
}

// AcceptSuggestion inserts the ready suggestion at caret and returns the new
// text together with the number of characters inserted. The caller moves the
// caret to caret+inserted. Without a ready suggestion the text is returned
// unchanged.
func (c *Coordinator) AcceptSuggestion(fullText string, caret int) (string, int) {
	c.mu.Lock()
	if !c.state.Ready() {
		c.mu.Unlock()
		return fullText, 0
	}

	before, after := splitAt(fullText, caret)
	inserted := CleanSuggestion(c.state.Text, before)
	c.resetLocked()
	c.mu.Unlock()

	c.notifyIf(true)
	return before + inserted + after, utf8.RuneCountInString(inserted)
}

// GhostText is the cleaned suggestion a binding should render after the
// caret, or "" when nothing is ready.
func (c *Coordinator) GhostText(fullText string, caret int) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.Ready() {
		return ""
	}
	before, _ := splitAt(fullText, caret)
	return CleanSuggestion(c.state.Text, before)
}

// ClearSuggestion drops any suggestion, pending timer and in-flight request.
// It is idempotent.
func (c *Coordinator) ClearSuggestion() {
	c.mu.Lock()
	changed := c.resetLocked()
	c.mu.Unlock()
	c.notifyIf(changed)
}

// Close is called on field unmount. Later calls to RequestSuggestion only
// clear state.
func (c *Coordinator) Close() {
	c.mu.Lock()
	changed := c.resetLocked()
	c.closed = true
	c.mu.Unlock()
	c.cancelBase()
	c.notifyIf(changed)
}

// Wait blocks until every dispatched request has settled.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// resetLocked returns the machine to Idle and reports whether the visible
// state changed.
func (c *Coordinator) resetLocked() bool {
	c.stopTimerLocked()
	c.cancelInflightLocked()
	c.lastContext = ""
	c.parked = domain.EmptyState()
	prev := c.state
	c.state = domain.EmptyState()
	return prev != c.state
}

func (c *Coordinator) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	// a timer that already fired but is waiting on mu must not dispatch
	c.timerSeq++
}

func (c *Coordinator) cancelInflightLocked() {
	if c.current != nil {
		c.current.cancel()
		c.current = nil
	}
}

// scheduleLocked arms the debounce timer for window. A ready suggestion for
// an older context is hidden right away since it no longer matches the text.
func (c *Coordinator) scheduleLocked(window string) bool {
	c.stopTimerLocked()
	seq := c.timerSeq
	c.timer = c.opts.afterFunc(c.opts.debounce, func() {
		c.fire(seq, window)
	})

	if c.state.Ready() {
		c.parked = c.state
		c.state = domain.EmptyState()
		return true
	}
	return false
}

// unparkLocked handles the text going back to lastContext: a debounce armed
// for newer text is dropped and the suggestion it hid is shown again.
func (c *Coordinator) unparkLocked() bool {
	if c.timer == nil {
		return false
	}
	c.stopTimerLocked()
	parked := c.parked
	c.parked = domain.EmptyState()
	if !parked.Ready() || c.state == parked {
		return false
	}
	c.state = parked
	return true
}

func (c *Coordinator) fire(seq uint64, window string) {
	c.mu.Lock()
	if c.closed || seq != c.timerSeq {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	if window == c.lastContext {
		c.mu.Unlock()
		return
	}
	changed := c.issueLocked(window)
	c.mu.Unlock()
	c.notifyIf(changed)
}

// issueLocked supersedes any in-flight request with a new one for window.
func (c *Coordinator) issueLocked(window string) bool {
	c.cancelInflightLocked()

	req := domain.SuggestionRequest{
		ID:       uuid.NewString(),
		Fragment: window,
		IssuedAt: c.opts.now(),
	}
	ctx, cancel := context.WithCancel(c.base)
	c.current = &inflight{req: req, cancel: cancel}
	c.lastContext = window
	c.parked = domain.EmptyState()

	prev := c.state
	c.state = domain.LoadingState()

	c.opts.logger.Debug("suggestion requested",
		zap.String("request_id", req.ID),
		zap.Int("fragment_len", utf8.RuneCountInString(window)),
		zap.Stringer("mode", c.opts.mode))

	c.wg.Add(1)
	go c.fetch(ctx, req)

	return prev != c.state
}

func (c *Coordinator) fetch(ctx context.Context, req domain.SuggestionRequest) {
	defer c.wg.Done()

	text, err := c.completer.Complete(ctx, req.Fragment)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}

	c.mu.Lock()
	if c.current == nil || c.current.req.ID != req.ID {
		c.mu.Unlock()
		c.opts.logger.Debug("stale suggestion dropped", zap.String("request_id", req.ID))
		return
	}
	c.current.cancel()
	c.current = nil

	prev := c.state
	switch {
	case err != nil:
		if !errors.Is(err, context.Canceled) {
			c.opts.logger.Warn("suggestion request failed",
				zap.String("request_id", req.ID),
				zap.Error(err))
		}
		c.state = domain.EmptyState()
		c.lastContext = ""
	case CleanSuggestion(text, req.Fragment) == "":
		c.state = domain.EmptyState()
	case c.timer != nil:
		// the text moved on while this was in flight
		c.parked = domain.ReadyState(text)
		c.state = domain.EmptyState()
	default:
		c.state = domain.ReadyState(text)
	}
	changed := prev != c.state
	c.mu.Unlock()

	c.notifyIf(changed)
}

// notifyIf delivers the latest state, not the one at the time of the change.
func (c *Coordinator) notifyIf(changed bool) {
	if !changed || c.opts.onChange == nil {
		return
	}
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	c.opts.onChange(c.State())
}
