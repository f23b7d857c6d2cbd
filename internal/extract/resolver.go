// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"time"

	dateparser "github.com/markusmobius/go-dateparser"

	"github.com/pdiddy/eventscan/pkg/types"
)

// Resolver turns matched text fragments into calendar values. A false
// second return value means the fragment could not be resolved; it is
// never an error. Tests supply a stub; production uses DateparserResolver.
type Resolver interface {
	// ResolveDate resolves a date mention, preferring the nearest
	// occurrence on or after ref when the year is missing.
	ResolveDate(fragment string, ref time.Time) (types.Date, bool)

	// ResolveTime resolves a clock time such as "10:00" or "2:30 p.m.".
	ResolveTime(fragment string, ref time.Time) (types.TimeOfDay, bool)
}

// DateparserResolver resolves fragments with go-dateparser.
type DateparserResolver struct {
	languages []string
}

// NewDateparserResolver creates a resolver restricted to the given
// language codes. An empty list lets the parser detect the language.
func NewDateparserResolver(languages []string) *DateparserResolver {
	return &DateparserResolver{languages: languages}
}

func (r *DateparserResolver) ResolveDate(fragment string, ref time.Time) (types.Date, bool) {
	t, ok := r.parseDate(fragment, ref)
	if !ok {
		return types.Date{}, false
	}
	d := types.DateOf(t)

	// The parser treats ref's own day as past, so a yearless mention of that
	// day lands a year late. An explicit year survives a reparse against an
	// earlier reference; a yearless mention moves with it.
	today := types.DateOf(ref)
	if d == (types.Date{Year: today.Year + 1, Month: today.Month, Day: today.Day}) {
		if earlier, ok := r.parseDate(fragment, ref.AddDate(-2, 0, 0)); ok && earlier.Year() != t.Year() {
			return today, true
		}
	}
	return d, true
}

func (r *DateparserResolver) parseDate(fragment string, ref time.Time) (time.Time, bool) {
	return r.parse(fragment, &dateparser.Configuration{
		CurrentTime:         ref,
		Languages:           r.languages,
		PreferredDateSource: dateparser.Future,
	})
}

func (r *DateparserResolver) ResolveTime(fragment string, ref time.Time) (types.TimeOfDay, bool) {
	t, ok := r.parse(fragment, &dateparser.Configuration{
		CurrentTime: ref,
		Languages:   r.languages,
	})
	if !ok {
		return types.TimeOfDay{}, false
	}
	return types.TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, true
}

func (r *DateparserResolver) parse(fragment string, cfg *dateparser.Configuration) (time.Time, bool) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return time.Time{}, false
	}
	dt, err := dateparser.Parse(cfg, fragment)
	if err != nil || dt.Time.IsZero() {
		return time.Time{}, false
	}
	return dt.Time, true
}
