package coordinator

import (
	"time"

	"github.com/vslstudio/vsl-backend/internal/autocomplete/domain"
	"go.uber.org/zap"
)

// Mode selects when a completion call is dispatched after a keystroke.
type Mode int

const (
	// RealTime issues the call in the same turn as the keystroke.
	RealTime Mode = iota
	// Debounced defers the call and restarts the delay on every keystroke.
	Debounced
)

func (m Mode) String() string {
	if m == Debounced {
		return "debounced"
	}
	return "real-time"
}

const (
	DefaultMinChars    = 3
	DefaultMaxLookback = 80
	DefaultDebounce    = 300 * time.Millisecond
)

// Timer is the part of *time.Timer the coordinator needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it once wrapped.
type AfterFunc func(d time.Duration, f func()) Timer

type options struct {
	minChars    int
	maxLookback int
	mode        Mode
	debounce    time.Duration
	disabled    bool
	onChange    func(domain.SuggestionState)
	logger      *zap.Logger
	afterFunc   AfterFunc
	now         func() time.Time
}

func defaultOptions() options {
	return options{
		minChars:    DefaultMinChars,
		maxLookback: DefaultMaxLookback,
		mode:        RealTime,
		debounce:    DefaultDebounce,
		logger:      zap.NewNop(),
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		now: time.Now,
	}
}

// Option configures a Coordinator.
type Option func(*options)

func WithMinChars(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.minChars = n
		}
	}
}

// WithMaxLookback bounds the context window sent to the completion service.
func WithMaxLookback(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxLookback = n
		}
	}
}

func WithRealTime() Option {
	return func(o *options) { o.mode = RealTime }
}

// WithDebounce switches to debounced dispatch with delay d.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.mode = Debounced
		if d > 0 {
			o.debounce = d
		}
	}
}

// WithEnabled turns suggestions on or off for the field.
func WithEnabled(enabled bool) Option {
	return func(o *options) { o.disabled = !enabled }
}

// WithOnChange registers a callback fired after every state change. It runs
// outside the coordinator lock but must not call mutating coordinator
// methods synchronously.
func WithOnChange(fn func(domain.SuggestionState)) Option {
	return func(o *options) { o.onChange = fn }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithAfterFunc replaces the timer source, mostly for tests.
func WithAfterFunc(fn AfterFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.afterFunc = fn
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
