// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"unicode"
)

// titleTrimChars are stripped from both ends of a raw title.
const titleTrimChars = " .,:;-_\n\t"

// Title derives a display title from the text around span.
func (e *Engine) Title(text string, span Span) string {
	return e.title(newDocument(text), span, nil)
}

// title takes TitleLead characters before span and TitleTrail after it.
// When cut overlaps that window its text is removed so the title does not
// repeat the time range.
func (e *Engine) title(doc *document, span Span, cut *Span) string {
	window := Span{
		Start: doc.clamp(span.Start - e.opts.TitleLead),
		End:   doc.clamp(span.End + e.opts.TitleTrail),
	}

	raw := doc.slice(window.Start, window.End)
	if cut != nil && cut.overlaps(window) {
		left := doc.slice(window.Start, cut.Start)
		right := doc.slice(cut.End, window.End)
		raw = strings.TrimRightFunc(left, unicode.IsSpace) + " " + strings.TrimLeftFunc(right, unicode.IsSpace)
	}

	if title := cleanTitle(raw); title != "" {
		return title
	}
	return e.opts.PlaceholderTitle
}

// cleanTitle strips punctuation from the ends of raw and drops a lone
// leading letter ("a Team Sync"), which OCR often produces from bullets.
func cleanTitle(raw string) string {
	title := []rune(strings.Trim(raw, titleTrimChars))
	if len(title) > 1 && unicode.IsLetter(title[0]) && title[1] == ' ' {
		return strings.TrimSpace(string(title[2:]))
	}
	return string(title)
}
