// Package extract finds calendar-event candidates in unstructured text.
//
// Extraction is heuristic: date mentions are located by pattern and resolved
// by a Resolver, the nearest "HH:MM-HH:MM" range supplies start and end
// times, and a title is guessed from the surrounding text. Every resolved
// date mention yields exactly one EventCandidate; unresolvable text is
// skipped, never reported as an error.
package extract

import (
	"fmt"
	"time"

	"github.com/pdiddy/eventscan/pkg/types"
)

const (
	defaultTimeWindow       = 50
	defaultTitleLead        = 30
	defaultTitleTrail       = 20
	defaultDuration         = time.Hour
	defaultPlaceholderTitle = "No title found"
)

// defaultStart is used when no start time is found near a date.
var defaultStart = types.TimeOfDay{Hour: 9}

// Options tunes the extraction heuristics.
type Options struct {
	TimeWindow       int
	TitleLead        int
	TitleTrail       int
	DefaultStart     types.TimeOfDay
	DefaultDuration  time.Duration
	PlaceholderTitle string
}

// DefaultOptions returns the standard heuristics: a 50-character time
// window, 30/20 characters of title context, and 09:00 plus one hour when
// no time is found.
func DefaultOptions() Options {
	return Options{
		TimeWindow:       defaultTimeWindow,
		TitleLead:        defaultTitleLead,
		TitleTrail:       defaultTitleTrail,
		DefaultStart:     defaultStart,
		DefaultDuration:  defaultDuration,
		PlaceholderTitle: defaultPlaceholderTitle,
	}
}

// OptionsFromConfig converts configuration into Options. Zero values fall
// back to the defaults.
func OptionsFromConfig(cfg types.ExtractionConfig) (Options, error) {
	opts := DefaultOptions()
	if cfg.TimeWindow > 0 {
		opts.TimeWindow = cfg.TimeWindow
	}
	if cfg.TitleLead > 0 {
		opts.TitleLead = cfg.TitleLead
	}
	if cfg.TitleTrail > 0 {
		opts.TitleTrail = cfg.TitleTrail
	}
	if cfg.DefaultStart != "" {
		start, err := types.ParseTimeOfDay(cfg.DefaultStart)
		if err != nil {
			return Options{}, fmt.Errorf("default start: %w", err)
		}
		opts.DefaultStart = start
	}
	if cfg.DefaultDuration > 0 {
		opts.DefaultDuration = cfg.DefaultDuration
	}
	if cfg.PlaceholderTitle != "" {
		opts.PlaceholderTitle = cfg.PlaceholderTitle
	}
	return opts, nil
}

// Engine extracts event candidates. It holds no mutable state; one Engine
// may be reused for any number of texts.
type Engine struct {
	resolver Resolver
	ref      time.Time
	opts     Options
}

// New creates an Engine. ref is the reference date that yearless mentions
// are resolved against; callers pass time.Now() only at the outermost layer.
func New(resolver Resolver, ref time.Time, opts Options) *Engine {
	return &Engine{resolver: resolver, ref: ref, opts: opts}
}

// Events extracts candidates from text with the default resolver and options.
func Events(text string, ref time.Time) []types.EventCandidate {
	return New(NewDateparserResolver([]string{"en"}), ref, DefaultOptions()).Extract(text)
}

// Extract returns one candidate per resolvable date mention in text, in
// the order the mentions appear. Text with no mentions yields nil.
func (e *Engine) Extract(text string) []types.EventCandidate {
	doc := newDocument(text)

	var events []types.EventCandidate
	for _, m := range e.findDates(doc) {
		tr := e.findTimeRange(doc, m.Span.Start)

		var cut *Span
		if tr.Found {
			cut = &tr.Span
		}

		events = append(events, e.assemble(m, tr, e.title(doc, m.Span, cut)))
	}
	return events
}

// assemble applies the default-fill policy: a missing start becomes the
// default start, a missing end becomes start plus the default duration.
// Parsed times are kept as they are, even when End is before Start.
func (e *Engine) assemble(m RawMatch, tr TimeRange, title string) types.EventCandidate {
	start := e.opts.DefaultStart
	if tr.Start != nil {
		start = *tr.Start
	}
	end := start.Add(e.opts.DefaultDuration)
	if tr.End != nil {
		end = *tr.End
	}
	return types.EventCandidate{
		Title: title,
		Date:  m.Date,
		Start: start,
		End:   end,
	}
}
