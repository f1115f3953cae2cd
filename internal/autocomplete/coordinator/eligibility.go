package coordinator

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// completedWordMinChars is the trimmed length a context needs when the
	// caret sits right after a finished word.
	completedWordMinChars = 5
	// longContextChars makes any context eligible regardless of caret position.
	longContextChars = 10
)

// ContextWindow returns the text before caret, bounded to the last
// maxLookback characters. caret is a character (rune) offset and is clamped
// to the text.
func ContextWindow(text string, caret, maxLookback int) string {
	before, _ := splitAt(text, caret)
	if maxLookback <= 0 {
		return before
	}
	runes := []rune(before)
	if len(runes) <= maxLookback {
		return before
	}
	return string(runes[len(runes)-maxLookback:])
}

// Eligible decides whether context warrants a completion request.
func Eligible(context string, minChars int) bool {
	trimmed := strings.TrimSpace(context)
	trimmedLen := utf8.RuneCountInString(trimmed)
	if trimmedLen == 0 || trimmedLen < minChars {
		return false
	}

	midWord := utf8.RuneCountInString(LastWord(context)) >= 1
	afterWord := endsWithSpace(context) && trimmedLen >= completedWordMinChars
	long := utf8.RuneCountInString(context) >= longContextChars

	return midWord || afterWord || long
}

// LastWord is the in-progress token before the caret. It is empty when the
// text ends in whitespace.
func LastWord(text string) string {
	if text == "" || endsWithSpace(text) {
		return ""
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func endsWithSpace(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r != utf8.RuneError && unicode.IsSpace(r)
}

// splitAt splits text at a rune offset, clamping the offset.
func splitAt(text string, caret int) (string, string) {
	if caret <= 0 {
		return "", text
	}
	i := 0
	for byteIdx := range text {
		if i == caret {
			return text[:byteIdx], text[byteIdx:]
		}
		i++
	}
	return text, ""
}
