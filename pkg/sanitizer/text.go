package sanitizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Text trims s, removes control characters, normalizes it to NFC and caps it
// at maxRunes runes. A maxRunes of zero or less disables the cap.
func Text(s string, maxRunes int) string {
	s = norm.NFC.String(StripControl(strings.TrimSpace(s)))
	if maxRunes > 0 {
		s = Truncate(s, maxRunes)
	}
	return strings.TrimSpace(s)
}

// StripControl removes Unicode control characters, including CR, LF and TAB.
func StripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
