package extraction

import (
	"regexp"
	"strings"
	"unicode"
)

// segment is a candidate span and its byte offset in the source text.
type segment struct {
	Text   string
	Offset int
}

var bulletPrefix = regexp.MustCompile(`^(?:[-*+•]|\d+\)|\[[ xX]?\])\s*`)

// splitSegments cuts text on sentence punctuation, semicolons and line
// breaks. A period between two digits ("2.5 km") or inside a dotted
// initialism ("U.S.") is not a boundary.
func splitSegments(text string) []segment {
	var out []segment
	start := 0
	for i := 0; i < len(text); i++ {
		if !isBoundary(text, i) {
			continue
		}
		out = appendSegment(out, text, start, i)
		start = i + 1
	}
	return appendSegment(out, text, start, len(text))
}

func isBoundary(text string, i int) bool {
	switch text[i] {
	case '!', '?', ';', '\n', '\r':
		return true
	case '.':
		if i > 0 && i+1 < len(text) && isDigit(text[i-1]) && isDigit(text[i+1]) {
			return false
		}
		return !inInitialism(text, i)
	}
	return false
}

// inInitialism reports whether the period at i belongs to a dotted run of
// single capitals such as "U.S." or "E.U.". A sentence ending in one merges
// with the next.
func inInitialism(text string, i int) bool {
	if i == 0 || !isUpper(text[i-1]) || (i >= 2 && isLetter(text[i-2])) {
		return false
	}
	if i+1 < len(text) && isUpper(text[i+1]) && (i+2 == len(text) || text[i+2] == '.') {
		return true
	}
	return i >= 2 && text[i-2] == '.'
}

func isDigit(b byte) bool  { return b >= '0' && b <= '9' }
func isUpper(b byte) bool  { return b >= 'A' && b <= 'Z' }
func isLetter(b byte) bool { return isUpper(b) || (b >= 'a' && b <= 'z') }

func appendSegment(out []segment, text string, start, end int) []segment {
	raw := text[start:end]
	trimmed := strings.TrimLeftFunc(raw, unicode.IsSpace)
	offset := start + len(raw) - len(trimmed)
	if loc := bulletPrefix.FindStringIndex(trimmed); loc != nil {
		trimmed = trimmed[loc[1]:]
		offset += loc[1]
	}
	trimmed = strings.TrimRightFunc(trimmed, unicode.IsSpace)
	if trimmed == "" {
		return out
	}
	return append(out, segment{Text: trimmed, Offset: offset})
}

// tokenStats returns the number of whitespace tokens and the share of them
// that contain at least one letter.
func tokenStats(s string) (tokens int, wordShare float64) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, 0
	}
	words := 0
	for _, f := range fields {
		if strings.IndexFunc(f, unicode.IsLetter) >= 0 {
			words++
		}
	}
	return len(fields), float64(words) / float64(len(fields))
}
