package binding

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/vslstudio/vsl-backend/internal/autocomplete/coordinator"
	"github.com/vslstudio/vsl-backend/internal/autocomplete/domain"
)

const (
	MultiLineLookback = 80
	MultiLineMinChars = 2
)

// TextMeasurer measures rendered text in the field's font.
type TextMeasurer interface {
	Width(s string) float64
	LineHeight() float64
}

// CellMeasurer measures monospace text by terminal cell width, so wide
// runes such as CJK take two cells.
type CellMeasurer struct {
	CellWidth float64
	RowHeight float64
}

func (m CellMeasurer) Width(s string) float64 {
	return float64(runewidth.StringWidth(s)) * m.CellWidth
}

// LineHeight falls back to 20px when RowHeight is unset.
func (m CellMeasurer) LineHeight() float64 {
	if m.RowHeight <= 0 {
		return 20
	}
	return m.RowHeight
}

// MultiLineGeometry describes the textarea box.
type MultiLineGeometry struct {
	// ClientWidth is the inner width including padding.
	ClientWidth float64
	PaddingLeft float64
	PaddingTop  float64
	PaddingX    float64
}

// MultiLine binds a textarea. The ghost text is placed by laying out the
// text before the caret with pre-wrap/break-word rules.
type MultiLine struct {
	field
	geometry MultiLineGeometry
	measurer TextMeasurer
}

// NewMultiLine mounts a multi-line field.
func NewMultiLine(completer coordinator.Completer, geometry MultiLineGeometry, measurer TextMeasurer, hooks Hooks, opts ...coordinator.Option) *MultiLine {
	if measurer == nil {
		measurer = CellMeasurer{CellWidth: 8, RowHeight: 20}
	}
	m := &MultiLine{geometry: geometry, measurer: measurer}
	m.hooks = hooks
	m.locate = m.position

	base := []coordinator.Option{
		coordinator.WithMaxLookback(MultiLineLookback),
		coordinator.WithMinChars(MultiLineMinChars),
		coordinator.WithRealTime(),
		coordinator.WithOnChange(func(domain.SuggestionState) { m.render() }),
	}
	m.suggester = coordinator.New(completer, append(base, opts...)...)
	return m
}

func (m *MultiLine) position(text string, caret int) Position {
	lineHeight := m.measurer.LineHeight()
	contentWidth := m.geometry.ClientWidth - 2*m.geometry.PaddingX
	line, last := layout(textBefore(text, caret), contentWidth, m.measurer.Width)
	return Position{
		Top:        m.geometry.PaddingTop + float64(line)*lineHeight,
		Left:       m.geometry.PaddingLeft + m.measurer.Width(last),
		LineHeight: lineHeight,
	}
}

// layout wraps text into lines no wider than maxWidth and returns the index
// of the last line together with its content. Explicit newlines always
// break; words move to the next line when they do not fit and a word wider
// than the box breaks between characters. Trailing spaces hang.
func layout(text string, maxWidth float64, width func(string) float64) (int, string) {
	paragraphs := strings.Split(text, "\n")
	lines := 0
	var last string
	for i, p := range paragraphs {
		if i > 0 {
			lines++
		}
		n, l := wrapParagraph(p, maxWidth, width)
		lines += n
		last = l
	}
	return lines, last
}

// wrapParagraph returns the number of soft breaks and the final line.
func wrapParagraph(p string, maxWidth float64, width func(string) float64) (int, string) {
	if maxWidth <= 0 {
		return 0, p
	}
	breaks := 0
	line := ""
	for _, seg := range segments(p) {
		word := strings.TrimRightFunc(seg, unicode.IsSpace)
		if line != "" && width(line+word) > maxWidth {
			breaks++
			line = ""
		}
		if line == "" && width(word) > maxWidth {
			for _, r := range seg {
				if line != "" && !unicode.IsSpace(r) && width(line+string(r)) > maxWidth {
					breaks++
					line = ""
				}
				line += string(r)
			}
			continue
		}
		line += seg
	}
	return breaks, line
}

// segments splits p into words, each carrying its trailing whitespace.
func segments(p string) []string {
	var out []string
	var b strings.Builder
	inSpace := false
	for _, r := range p {
		space := unicode.IsSpace(r)
		if inSpace && !space {
			out = append(out, b.String())
			b.Reset()
		}
		inSpace = space
		b.WriteRune(r)
	}
	if b.Len() > 0 {
		out = append(out, b.String())
	}
	return out
}
