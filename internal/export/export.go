// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export turns reviewed event candidates into calendar entries:
// one iCalendar file per event and a Google Calendar template link.
package export

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pdiddy/eventscan/pkg/types"
)

const (
	productID      = "-//pdiddy//eventscan//EN"
	floatingLayout = "20060102T150405"
	googleRender   = "https://calendar.google.com/calendar/render?"
)

// uidNamespace seeds the name-based UUIDs used as event UIDs.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/pdiddy/eventscan"))

// now is overridable for tests.
var now = time.Now

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks a candidate after manual editing. All problems are
// reported together.
func Validate(ev types.EventCandidate) error {
	var errs []error

	if strings.TrimSpace(ev.Title) == "" {
		errs = append(errs, errors.New("title: must not be blank"))
	}

	if err := validatorInstance().Struct(ev); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validating event: %w", err)
		}
		for _, fe := range verrs {
			if fe.Namespace() == "EventCandidate.Title" {
				continue
			}
			errs = append(errs, fmt.Errorf("%s: failed %q (value %v)", fieldPath(fe), fe.Tag(), fe.Value()))
		}
	}

	if !ev.Date.IsValid() {
		errs = append(errs, fmt.Errorf("date: %s is not a calendar day", ev.Date))
	}

	return errors.Join(errs...)
}

// fieldPath renders "EventCandidate.Start.Hour" as "start.hour".
func fieldPath(fe validator.FieldError) string {
	_, rest, _ := strings.Cut(fe.Namespace(), ".")
	return strings.ToLower(rest)
}

// Interval returns the floating start and end instants of ev. An end that
// is not after the start is taken to fall on the following day.
func Interval(ev types.EventCandidate) (time.Time, time.Time) {
	start := ev.Date.At(ev.Start)
	end := ev.Date.At(ev.End)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end
}

// UID returns the stable identifier for ev. Exporting the same candidate
// twice yields the same UID, so calendar apps update instead of duplicating.
func UID(ev types.EventCandidate) string {
	name := strings.Join([]string{ev.Title, ev.Date.String(), ev.Start.String(), ev.End.String()}, "\x00")
	return uuid.NewSHA1(uidNamespace, []byte(name)).String() + "@eventscan"
}

// ICS renders ev as a VCALENDAR holding a single VEVENT with floating
// (zone-less) start and end times.
func ICS(ev types.EventCandidate) ([]byte, error) {
	if err := Validate(ev); err != nil {
		return nil, fmt.Errorf("invalid event %q: %w", ev.Title, err)
	}
	start, end := Interval(ev)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)

	event := cal.AddEvent(UID(ev))
	event.SetDtStampTime(now().UTC())
	event.SetSummary(ev.Title)
	event.SetProperty(ics.ComponentPropertyDtStart, start.Format(floatingLayout))
	event.SetProperty(ics.ComponentPropertyDtEnd, end.Format(floatingLayout))

	return []byte(cal.Serialize()), nil
}

// GoogleCalendarURL returns a link that opens Google Calendar's event
// editor prefilled with ev.
func GoogleCalendarURL(ev types.EventCandidate) string {
	start, end := Interval(ev)
	v := url.Values{}
	v.Set("action", "TEMPLATE")
	v.Set("text", ev.Title)
	v.Set("dates", start.Format(floatingLayout)+"/"+end.Format(floatingLayout))
	return googleRender + v.Encode()
}
