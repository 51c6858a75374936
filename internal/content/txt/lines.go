// Package txt implements the line-oriented content file format: line
// normalisation, section splitting, key/value extraction, and the field
// mini-grammars shared by every entity assembler.
package txt

import (
	"strings"
	"unicode"
)

// HeaderMarker introduces a new entity section.
const HeaderMarker = '#'

// Section is one raw entity block: the header name and its member lines.
type Section struct {
	Name  string
	Lines []string
}

// byteOrderMark is trimmed like whitespace.
const byteOrderMark = '\ufeff'

func isBlank(r rune) bool { return unicode.IsSpace(r) || r == byteOrderMark }

func trim(s string) string { return strings.TrimFunc(s, isBlank) }

// Lines splits text into trimmed, non-empty lines in input order. A byte-order
// mark counts as whitespace.
//
// Postcondition: no returned line is empty or has surrounding whitespace.
func Lines(text string) []string {
	raw := strings.Split(text, "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		l = trim(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

// IsHeader reports whether line's first non-whitespace character is the marker.
func IsHeader(line string) bool {
	l := trim(line)
	return l != "" && l[0] == HeaderMarker
}

// HeaderName returns everything after the first marker, trimmed.
//
// Precondition: IsHeader(line).
func HeaderName(line string) string {
	i := strings.IndexByte(line, HeaderMarker)
	if i < 0 {
		return strings.TrimSpace(line)
	}
	return strings.TrimSpace(line[i+1:])
}

// Sections groups lines into entity blocks. Lines before the first header are
// discarded. A block with no member lines is still emitted, and the last open
// block is flushed at end of input.
//
// Postcondition: len(result) equals the number of header lines in text.
func Sections(text string) []Section {
	var (
		out []Section
		cur *Section
	)
	for _, line := range Lines(text) {
		if IsHeader(line) {
			if cur != nil {
				out = append(out, *cur)
			}
			cur = &Section{Name: HeaderName(line)}
			continue
		}
		if cur == nil {
			continue
		}
		cur.Lines = append(cur.Lines, line)
	}
	if cur != nil {
		out = append(out, *cur)
	}
	return out
}

// SplitKeyValue splits line at its first colon. The key is trimmed and
// lower-cased for dispatch; the value is trimmed.
//
// Postcondition: ok is false iff line contains no colon.
func SplitKeyValue(line string) (key, value string, ok bool) {
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return "", "", false
	}
	return strings.ToLower(strings.TrimSpace(line[:i])), strings.TrimSpace(line[i+1:]), true
}
