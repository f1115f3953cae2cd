package coordinator

import (
	"regexp"
	"strings"
)

var cleanupPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^["'“”‘’]\s*`),
	regexp.MustCompile(`\s*["'“”‘’]$`),
	regexp.MustCompile(`^\s*[-–—]\s*`),
	regexp.MustCompile(`^\s*\.\s*`),
}

// CleanSuggestion strips the punctuation artifacts the completion model tends
// to echo, and drops a prefix that repeats the word being typed at the end
// of contextTail.
func CleanSuggestion(raw, contextTail string) string {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return ""
	}

	for _, p := range cleanupPatterns {
		clean = p.ReplaceAllString(clean, "")
	}

	last := []rune(LastWord(contextTail))
	if len(last) == 0 {
		return clean
	}
	runes := []rune(clean)
	if len(runes) < len(last) {
		return clean
	}
	if strings.EqualFold(string(runes[:len(last)]), string(last)) {
		return string(runes[len(last):])
	}
	return clean
}
