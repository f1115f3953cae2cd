package binding

import (
	"unicode/utf8"

	"github.com/vslstudio/vsl-backend/internal/autocomplete/coordinator"
	"github.com/vslstudio/vsl-backend/internal/autocomplete/domain"
)

const (
	SingleLineLookback = 30
	SingleLineMinChars = 2

	// approximate glyph advance of an average character, in ch units
	avgCharAdvance = 0.6
)

// SingleLineGeometry holds the metrics used to approximate the caret offset.
type SingleLineGeometry struct {
	// ChWidth is the width of the "0" glyph in pixels.
	ChWidth     float64
	PaddingLeft float64
	LineHeight  float64
}

// DefaultSingleLineGeometry matches a 16px sans-serif input.
func DefaultSingleLineGeometry() SingleLineGeometry {
	return SingleLineGeometry{ChWidth: 8, PaddingLeft: 12, LineHeight: 20}
}

// SingleLine binds a one-line input.
type SingleLine struct {
	field
	geometry SingleLineGeometry
}

// NewSingleLine mounts a single-line field. opts are applied after the
// field defaults and may override them.
func NewSingleLine(completer coordinator.Completer, geometry SingleLineGeometry, hooks Hooks, opts ...coordinator.Option) *SingleLine {
	s := &SingleLine{geometry: geometry}
	s.hooks = hooks
	s.locate = s.position

	base := []coordinator.Option{
		coordinator.WithMaxLookback(SingleLineLookback),
		coordinator.WithMinChars(SingleLineMinChars),
		coordinator.WithRealTime(),
		coordinator.WithOnChange(func(domain.SuggestionState) { s.render() }),
	}
	s.suggester = coordinator.New(completer, append(base, opts...)...)
	return s
}

// position estimates the caret offset from the character count before it.
func (s *SingleLine) position(text string, caret int) Position {
	chars := utf8.RuneCountInString(textBefore(text, caret))
	return Position{
		Top:        0,
		Left:       s.geometry.PaddingLeft + float64(chars)*avgCharAdvance*s.geometry.ChWidth,
		LineHeight: s.geometry.LineHeight,
	}
}
