// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"

	"github.com/pdiddy/eventscan/pkg/types"
)

// dateMentionRe matches date-like text in two shapes:
//
//   - month names, with an optional day before ("15 Jan") or after
//     ("January 15th") and an optional year ("Jan 15, 2027");
//   - numeric dates such as 3/22/2025 or 22-03-25.
var dateMentionRe = regexp.MustCompile(`(?i)` +
	`\b(?:(?P<lead>\d{1,2})\s?)?` +
	`(?P<month>(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*)` +
	`(?:\s+(?P<trail>\d{1,2})(?:st|nd|rd|th)?)?` +
	`(?:,?\s+(?P<year>\d{4}))?\b` +
	`|\b(?P<numeric>\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\b`)

var (
	leadGroup  = dateMentionRe.SubexpIndex("lead")
	monthGroup = dateMentionRe.SubexpIndex("month")
	trailGroup = dateMentionRe.SubexpIndex("trail")
	yearGroup  = dateMentionRe.SubexpIndex("year")
)

// RawMatch is a date mention found in the text together with its resolved
// calendar date.
type RawMatch struct {
	Date types.Date
	Span Span
}

// FindDates returns the resolvable date mentions in text, left to right.
// Mentions never overlap.
func (e *Engine) FindDates(text string) []RawMatch {
	return e.findDates(newDocument(text))
}

func (e *Engine) findDates(doc *document) []RawMatch {
	var matches []RawMatch
	for pos := 0; pos < len(doc.text); {
		loc := dateMentionRe.FindStringSubmatchIndex(doc.text[pos:])
		if loc == nil {
			break
		}
		for i := range loc {
			if loc[i] >= 0 {
				loc[i] += pos
			}
		}

		start, end := mentionStart(doc.text, loc), mentionEnd(doc.text, loc)
		pos = end

		date, ok := e.resolver.ResolveDate(doc.text[start:end], e.ref)
		if !ok {
			continue
		}
		matches = append(matches, RawMatch{
			Date: date,
			Span: Span{Start: runeOffset(doc.text, start), End: runeOffset(doc.text, end)},
		})
	}
	return matches
}

// mentionStart returns the byte offset where a date mention starts. A
// leading day directly preceded by ':' or '/' is the minutes of a clock time
// ("10:30 Jan 15") or the tail of a numeric date, so the mention starts at
// the month instead.
func mentionStart(text string, loc []int) int {
	leadStart := loc[2*leadGroup]
	if leadStart > 0 && endsNumber(text, leadStart) {
		return loc[2*monthGroup]
	}
	return loc[0]
}

// mentionEnd returns the byte offset where a date mention ends. A trailing
// day or year directly followed by ':' or '/' belongs to a clock time
// ("Jan 10:00") or a numeric date ("Mar 5/6/2027") and is cut from the
// mention; scanning resumes at the cut.
func mentionEnd(text string, loc []int) int {
	end := loc[1]
	monthEnd := loc[2*monthGroup+1]
	if monthEnd < 0 {
		return end
	}

	trailStart, trailEnd := loc[2*trailGroup], loc[2*trailGroup+1]
	yearStart, yearEnd := loc[2*yearGroup], loc[2*yearGroup+1]

	if yearStart >= 0 && continuesNumber(text, yearEnd) {
		end = monthEnd
		if trailStart >= 0 {
			end = trailEnd
		}
	}
	if trailStart >= 0 && end == trailEnd && continuesNumber(text, trailEnd) {
		end = monthEnd
	}
	return end
}

func continuesNumber(text string, i int) bool {
	return i < len(text) && (text[i] == ':' || text[i] == '/')
}

func endsNumber(text string, i int) bool {
	return i > 0 && (text[i-1] == ':' || text[i-1] == '/')
}
