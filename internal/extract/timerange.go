// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/eventscan/pkg/types"
)

// timeRangeRe matches "10:00-11:30", "9:00 am – 10:15 a.m." and similar.
// The start half cannot contain a dash, so the first dash separates the halves.
var timeRangeRe = regexp.MustCompile(
	`(?P<start>\d{1,2}:\d{2}(?:\s*[APMapm.]+)?)\s*[-–]\s*(?P<end>\d{1,2}:\d{2}(?:\s*[APMapm.]+)?)`)

var clockRe = regexp.MustCompile(`^\d{1,2}:\d{2}`)

var (
	rangeStartGroup = timeRangeRe.SubexpIndex("start")
	rangeEndGroup   = timeRangeRe.SubexpIndex("end")
)

// TimeRange is the first time range found near a date mention. Start and
// End are nil when their half did not resolve; both are nil when no range
// was found.
type TimeRange struct {
	Start *types.TimeOfDay
	End   *types.TimeOfDay

	// Found reports whether the range pattern matched at all.
	Found bool

	// Span locates the matched range text in the full input.
	Span Span
}

// FindTimeRange searches the characters within the configured window
// around pos for a time range.
func (e *Engine) FindTimeRange(text string, pos int) TimeRange {
	return e.findTimeRange(newDocument(text), pos)
}

func (e *Engine) findTimeRange(doc *document, pos int) TimeRange {
	winStart := doc.clamp(pos - e.opts.TimeWindow)
	snippet := doc.slice(winStart, pos+e.opts.TimeWindow)

	loc := timeRangeRe.FindStringSubmatchIndex(snippet)
	if loc == nil {
		return TimeRange{}
	}

	// The end half's suffix may have run into the next word ("13:00 Ma" of
	// "13:00 May"); the match then ends at the clock time.
	end := meridiemEnd(snippet, loc[2*rangeEndGroup], loc[1])

	startText := snippet[loc[2*rangeStartGroup]:loc[2*rangeStartGroup+1]]
	endText := snippet[loc[2*rangeEndGroup]:end]

	return TimeRange{
		Start: e.resolveTime(startText),
		End:   e.resolveTime(endText),
		Found: true,
		Span: Span{
			Start: winStart + runeOffset(snippet, loc[0]),
			End:   winStart + runeOffset(snippet, end),
		},
	}
}

// meridiemEnd returns end when s[start:end] is a clock time with no suffix
// or with a whole am/pm marker. Otherwise it returns the end of the clock
// time.
func meridiemEnd(s string, start, end int) int {
	clock := start + len(clockRe.FindString(s[start:end]))
	if clock == end {
		return end
	}
	suffix := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s[clock:end]), ".", ""))
	if suffix != "am" && suffix != "pm" {
		return clock
	}
	if r, _ := utf8.DecodeRuneInString(s[end:]); unicode.IsLetter(r) {
		return clock
	}
	return end
}

func (e *Engine) resolveTime(fragment string) *types.TimeOfDay {
	t, ok := e.resolver.ResolveTime(strings.TrimSpace(fragment), e.ref)
	if !ok {
		return nil
	}
	return &t
}
