// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import "unicode/utf8"

// Span is a half-open [Start, End) range of character (rune) offsets into
// the full input text.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// overlaps reports whether s and o share at least one character.
func (s Span) overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// document indexes text by character so windows and offsets are measured in
// runes, not bytes.
type document struct {
	text  string
	runes []rune
}

func newDocument(text string) *document {
	return &document{text: text, runes: []rune(text)}
}

func (d *document) len() int {
	return len(d.runes)
}

// clamp limits a character offset to [0, len].
func (d *document) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i > len(d.runes) {
		return len(d.runes)
	}
	return i
}

// slice returns the characters in [start, end), clamped to the text.
func (d *document) slice(start, end int) string {
	start, end = d.clamp(start), d.clamp(end)
	if start >= end {
		return ""
	}
	return string(d.runes[start:end])
}

// runeOffset converts a byte offset in s to a character offset.
func runeOffset(s string, byteOff int) int {
	return utf8.RuneCountInString(s[:byteOff])
}
