// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"

	"go.yaml.in/yaml/v3"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Date is a calendar date without a time of day or location.
type Date struct {
	Year  int        `validate:"gte=1,lte=9999"`
	Month time.Month `validate:"gte=1,lte=12"`
	Day   int        `validate:"gte=1,lte=31"`
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// IsValid reports whether d names a day that exists on the calendar.
func (d Date) IsValid() bool {
	if d.Year < 1 || d.Month < time.January || d.Month > time.December || d.Day < 1 {
		return false
	}
	return DateOf(d.At(TimeOfDay{})) == d
}

// At combines d with a time of day into a floating time.Time (UTC location).
func (d Date) At(t TimeOfDay) time.Time {
	return time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, 0, 0, time.UTC)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalYAML renders the date as YYYY-MM-DD.
func (d Date) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML accepts a YYYY-MM-DD scalar.
func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TimeOfDay is a wall-clock time with minute precision.
type TimeOfDay struct {
	Hour   int `validate:"gte=0,lte=23"`
	Minute int `validate:"gte=0,lte=59"`
}

// ParseTimeOfDay parses a time in HH:MM (24-hour) form.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("parsing time of day %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// Add returns t shifted by d, wrapping around midnight. There is no
// date rollover: 23:30 plus one hour is 00:30.
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	const day = 24 * 60
	mins := (t.Hour*60 + t.Minute + int(d/time.Minute)) % day
	if mins < 0 {
		mins += day
	}
	return TimeOfDay{Hour: mins / 60, Minute: mins % 60}
}

// Before reports whether t is earlier in the day than u.
func (t TimeOfDay) Before(u TimeOfDay) bool {
	return t.Hour*60+t.Minute < u.Hour*60+u.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MarshalYAML renders the time as HH:MM.
func (t TimeOfDay) MarshalYAML() (any, error) {
	return t.String(), nil
}

// UnmarshalYAML accepts an HH:MM scalar.
func (t *TimeOfDay) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// EventCandidate is one event guessed from source text. Users may edit
// every field before export.
type EventCandidate struct {
	// Title is derived from the text around the date mention.
	Title string `json:"title" yaml:"title" validate:"required"`

	// Date is the resolved calendar date of the mention.
	Date Date `json:"date" yaml:"date"`

	// Start is the parsed start time, or the default start when none was found.
	Start TimeOfDay `json:"start" yaml:"start"`

	// End is the parsed end time, or Start plus the default duration.
	// It is not reordered against Start.
	End TimeOfDay `json:"end" yaml:"end"`
}

// ScanResult holds the candidates extracted from a single input.
type ScanResult struct {
	// Source names the input (file path, URL, or "stdin").
	Source string `json:"source" yaml:"source"`

	// Reference is the date that yearless mentions were resolved against.
	Reference Date `json:"reference" yaml:"reference"`

	// Text is the OCR or file text the events were extracted from.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// Events lists the candidates in the order their dates appear in Text.
	Events []EventCandidate `json:"events" yaml:"events"`
}
