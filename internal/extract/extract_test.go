// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/eventscan/pkg/types"
)

// --- stub resolver ---

// stubResolver understands a handful of layouts so tests do not depend on
// the natural-language parser. Yearless dates resolve to the next
// occurrence on or after ref.
type stubResolver struct {
	dateCalls []string
	timeCalls []string
}

var stubDateLayouts = []string{"1/2/2006", "1-2-2006", "1/2/06", "January 2, 2006", "Jan 2, 2006", "2 January 2006"}

var stubYearlessLayouts = []string{"Jan 2", "January 2", "2 Jan", "2 January", "Jan 2nd", "January 2nd", "Jan 2th", "Jan 2st"}

var stubTimeLayouts = []string{"15:04", "3:04pm", "3:04 pm"}

func (s *stubResolver) ResolveDate(fragment string, ref time.Time) (types.Date, bool) {
	s.dateCalls = append(s.dateCalls, fragment)
	for _, layout := range stubDateLayouts {
		if t, err := time.Parse(layout, fragment); err == nil {
			return types.DateOf(t), true
		}
	}
	for _, layout := range stubYearlessLayouts {
		t, err := time.Parse(layout, fragment)
		if err != nil {
			continue
		}
		d := time.Date(ref.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		if d.Before(time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)) {
			d = d.AddDate(1, 0, 0)
		}
		return types.DateOf(d), true
	}
	return types.Date{}, false
}

func (s *stubResolver) ResolveTime(fragment string, _ time.Time) (types.TimeOfDay, bool) {
	s.timeCalls = append(s.timeCalls, fragment)
	normalized := strings.ToLower(strings.ReplaceAll(fragment, ".", ""))
	for _, layout := range stubTimeLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return types.TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, true
		}
	}
	return types.TimeOfDay{}, false
}

var testRef = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

func newTestEngine() (*Engine, *stubResolver) {
	r := &stubResolver{}
	return New(r, testRef, DefaultOptions()), r
}

func tod(h, m int) types.TimeOfDay {
	return types.TimeOfDay{Hour: h, Minute: m}
}

func date(y int, m time.Month, d int) types.Date {
	return types.Date{Year: y, Month: m, Day: d}
}

// --- Extract ---

func TestExtract_TeamSyncWithRange(t *testing.T) {
	e, _ := newTestEngine()

	events := e.Extract("Team Sync Jan 15 10:00-11:30 Room 2")
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, date(2027, time.January, 15), ev.Date)
	assert.Equal(t, tod(10, 0), ev.Start)
	assert.Equal(t, tod(11, 30), ev.End)
	assert.Equal(t, "Team Sync Jan 15 Room 2", ev.Title)
	assert.NotContains(t, ev.Title, "10:00")
}

func TestExtract_NumericDateDefaults(t *testing.T) {
	e, _ := newTestEngine()

	events := e.Extract("Meeting on 3/22/2025")
	require.Len(t, events, 1)
	assert.Equal(t, date(2025, time.March, 22), events[0].Date)
	assert.Equal(t, tod(9, 0), events[0].Start)
	assert.Equal(t, tod(10, 0), events[0].End)
	assert.Equal(t, "Meeting on 3/22/2025", events[0].Title)
}

func TestExtract_NoDates(t *testing.T) {
	e, _ := newTestEngine()

	assert.Empty(t, e.Extract("no dates here"))
	assert.Empty(t, e.Extract(""))
	assert.Empty(t, e.Extract("   \n\t "))
}

func TestExtract_TwoDistantMentions(t *testing.T) {
	e, _ := newTestEngine()

	first := "Kickoff Mar 3 09:30-10:30 main hall."
	filler := strings.Repeat(" bring laptops and chargers please", 4)
	second := " Retro Apr 7 14:00-15:15 upstairs"
	text := first + filler + second

	events := e.Extract(text)
	require.Len(t, events, 2)

	assert.Equal(t, date(2027, time.March, 3), events[0].Date)
	assert.Equal(t, tod(9, 30), events[0].Start)
	assert.Equal(t, tod(10, 30), events[0].End)

	assert.Equal(t, date(2027, time.April, 7), events[1].Date)
	assert.Equal(t, tod(14, 0), events[1].Start)
	assert.Equal(t, tod(15, 15), events[1].End)
}

func TestExtract_DefaultFill(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantStart types.TimeOfDay
		wantEnd   types.TimeOfDay
	}{
		{
			name:      "no range nearby",
			text:      "Dentist Jan 20",
			wantStart: tod(9, 0),
			wantEnd:   tod(10, 0),
		},
		{
			name:      "end half unparsable",
			text:      "Launch Feb 2 23:30-99:99",
			wantStart: tod(23, 30),
			wantEnd:   tod(0, 30),
		},
		{
			name:      "start half unparsable keeps parsed end",
			text:      "Launch Feb 2 77:00-11:00",
			wantStart: tod(9, 0),
			wantEnd:   tod(11, 0),
		},
		{
			name:      "end before start is kept",
			text:      "Party Dec 31 22:00-01:00",
			wantStart: tod(22, 0),
			wantEnd:   tod(1, 0),
		},
		{
			name:      "am pm suffixes",
			text:      "Standup Nov 4 9:15 a.m. – 9:45 a.m.",
			wantStart: tod(9, 15),
			wantEnd:   tod(9, 45),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine()
			events := e.Extract(tt.text)
			require.Len(t, events, 1)
			assert.Equal(t, tt.wantStart, events[0].Start)
			assert.Equal(t, tt.wantEnd, events[0].End)
		})
	}
}

func TestExtract_CustomOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.DefaultStart = tod(18, 0)
	opts.DefaultDuration = 90 * time.Minute
	opts.PlaceholderTitle = "Untitled"

	e := New(&stubResolver{}, testRef, opts)
	events := e.Extract("Jan 5")
	require.Len(t, events, 1)
	assert.Equal(t, tod(18, 0), events[0].Start)
	assert.Equal(t, tod(19, 30), events[0].End)
	assert.Equal(t, "Jan 5", events[0].Title)
}

func TestExtract_Idempotent(t *testing.T) {
	text := "Board meeting 12/01/2026 13:00-14:00\nOffsite Jan 9th\nMay 3 8:00-9:00 yoga"
	e, _ := newTestEngine()

	first := e.Extract(text)
	second := e.Extract(text)
	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
}

func TestExtract_Properties(t *testing.T) {
	inputs := []string{
		"",
		"no dates here",
		"Jan",
		"Sept 9 Marketing Mayhem Decide 1/1/1",
		"Café Ünïcödé Feb 14 20:00-23:59 ♥ Valentine's dinner",
		"13/45/2020 and 99-99-99 are not dates",
		"Jan 10:00-11:00",
		strings.Repeat("x", 500) + " Oct 31 18:00-21:00 " + strings.Repeat("y", 500),
	}

	for _, text := range inputs {
		t.Run(text[:min(len(text), 20)], func(t *testing.T) {
			e, r := newTestEngine()
			events := e.Extract(text)

			// One resolver call per scanned mention.
			assert.LessOrEqual(t, len(events), len(r.dateCalls))
			for _, ev := range events {
				assert.NotEmpty(t, ev.Title)
				for _, tm := range []types.TimeOfDay{ev.Start, ev.End} {
					assert.GreaterOrEqual(t, tm.Hour, 0)
					assert.LessOrEqual(t, tm.Hour, 23)
					assert.GreaterOrEqual(t, tm.Minute, 0)
					assert.LessOrEqual(t, tm.Minute, 59)
				}
			}
		})
	}
}

// --- FindDates ---

func TestFindDates(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantFrags []string
		wantDates []types.Date
	}{
		{
			name:      "month then day",
			text:      "Team Sync Jan 15 10:00",
			wantFrags: []string{"Jan 15"},
			wantDates: []types.Date{date(2027, time.January, 15)},
		},
		{
			name:      "day then month",
			text:      "due 15 Jan",
			wantFrags: []string{"15 Jan"},
			wantDates: []types.Date{date(2027, time.January, 15)},
		},
		{
			name:      "full month name with year",
			text:      "Gala on January 2, 2027!",
			wantFrags: []string{"January 2, 2027"},
			wantDates: []types.Date{date(2027, time.January, 2)},
		},
		{
			name:      "ordinal day",
			text:      "Offsite Jan 9th",
			wantFrags: []string{"Jan 9th"},
			wantDates: []types.Date{date(2027, time.January, 9)},
		},
		{
			name:      "case insensitive",
			text:      "DEC 25 lunch",
			wantFrags: []string{"DEC 25"},
			wantDates: []types.Date{date(2026, time.December, 25)},
		},
		{
			name:      "numeric slash and dash",
			text:      "3/22/2025 then 4-1-2025",
			wantFrags: []string{"3/22/2025", "4-1-2025"},
			wantDates: []types.Date{date(2025, time.March, 22), date(2025, time.April, 1)},
		},
		{
			name:      "clock time after month is not a day",
			text:      "Jan 10:00-11:00",
			wantFrags: []string{"Jan"},
			wantDates: nil,
		},
		{
			name:      "minutes of a time range are not a leading day",
			text:      "Yoga 9:00-10:00 Jan 15",
			wantFrags: []string{"Jan 15"},
			wantDates: []types.Date{date(2027, time.January, 15)},
		},
		{
			name:      "minutes of a clock time are not a leading day",
			text:      "Standup at 10:30 Jan 15",
			wantFrags: []string{"Jan 15"},
			wantDates: []types.Date{date(2027, time.January, 15)},
		},
		{
			name:      "tail of a numeric fragment is not a leading day",
			text:      "ref 2/3 Jan",
			wantFrags: []string{"Jan"},
			wantDates: nil,
		},
		{
			name:      "day before a numeric date is not a trailing day",
			text:      "Mar 5/6/2027",
			wantFrags: []string{"Mar", "5/6/2027"},
			wantDates: []types.Date{date(2027, time.May, 6)},
		},
		{
			name:      "unresolvable mentions dropped",
			text:      "Marketing Mayhem in Decemberish",
			wantFrags: []string{"Marketing", "Mayhem", "Decemberish"},
			wantDates: nil,
		},
		{
			name:      "month inside a word is ignored",
			text:      "Ajanta caves",
			wantFrags: nil,
			wantDates: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, r := newTestEngine()
			matches := e.FindDates(tt.text)

			assert.Equal(t, tt.wantFrags, r.dateCalls)
			var got []types.Date
			for _, m := range matches {
				got = append(got, m.Date)
			}
			assert.Equal(t, tt.wantDates, got)
		})
	}
}

func TestFindDates_RuneOffsets(t *testing.T) {
	e, _ := newTestEngine()

	matches := e.FindDates("Café Jan 15 — déjà vu 3/4/2027")
	require.Len(t, matches, 2)
	assert.Equal(t, Span{Start: 5, End: 11}, matches[0].Span)
	assert.Equal(t, Span{Start: 22, End: 30}, matches[1].Span)
}

func TestFindDates_LeftToRightNonOverlapping(t *testing.T) {
	e, _ := newTestEngine()

	matches := e.FindDates("1/2/2027 Feb 3, 4 Mar and 5/6/2027")
	require.Len(t, matches, 4)
	for i := 1; i < len(matches); i++ {
		assert.LessOrEqual(t, matches[i-1].Span.End, matches[i].Span.Start)
	}
}

// --- FindTimeRange ---

func TestFindTimeRange(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		pos       int
		wantFound bool
		wantStart *types.TimeOfDay
		wantEnd   *types.TimeOfDay
	}{
		{
			name:      "hyphen",
			text:      "Jan 15 10:00-11:30",
			pos:       0,
			wantFound: true,
			wantStart: &types.TimeOfDay{Hour: 10},
			wantEnd:   &types.TimeOfDay{Hour: 11, Minute: 30},
		},
		{
			name:      "en dash with spaces and suffix",
			text:      "Jan 15 2:00 pm – 3:30 pm",
			pos:       0,
			wantFound: true,
			wantStart: &types.TimeOfDay{Hour: 14},
			wantEnd:   &types.TimeOfDay{Hour: 15, Minute: 30},
		},
		{
			name:      "range before the date",
			text:      "8:00-9:00 breakfast Jan 15",
			pos:       20,
			wantFound: true,
			wantStart: &types.TimeOfDay{Hour: 8},
			wantEnd:   &types.TimeOfDay{Hour: 9},
		},
		{
			name:      "first range wins",
			text:      "Jan 15 10:00-11:00 then 12:00-13:00",
			pos:       0,
			wantFound: true,
			wantStart: &types.TimeOfDay{Hour: 10},
			wantEnd:   &types.TimeOfDay{Hour: 11},
		},
		{
			name:      "end suffix stops before the next word",
			text:      "Lunch 12:00-13:00 May 3",
			pos:       18,
			wantFound: true,
			wantStart: &types.TimeOfDay{Hour: 12},
			wantEnd:   &types.TimeOfDay{Hour: 13},
		},
		{
			name:      "trailing period after a meridiem is kept",
			text:      "Jan 15 9:00 a.m. - 10:15 a.m.",
			pos:       0,
			wantFound: true,
			wantStart: &types.TimeOfDay{Hour: 9},
			wantEnd:   &types.TimeOfDay{Hour: 10, Minute: 15},
		},
		{
			name:      "halves resolved independently",
			text:      "Jan 15 10:00-61:00",
			pos:       0,
			wantFound: true,
			wantStart: &types.TimeOfDay{Hour: 10},
			wantEnd:   nil,
		},
		{
			name:      "single time is not a range",
			text:      "Jan 15 at 10:00",
			pos:       0,
			wantFound: false,
		},
		{
			name:      "range outside the window",
			text:      "Jan 15" + strings.Repeat(".", 60) + "10:00-11:00",
			pos:       0,
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine()
			tr := e.FindTimeRange(tt.text, tt.pos)
			assert.Equal(t, tt.wantFound, tr.Found)
			assert.Equal(t, tt.wantStart, tr.Start)
			assert.Equal(t, tt.wantEnd, tr.End)
		})
	}
}

func TestFindTimeRange_SpanEndsAtClockBeforeWord(t *testing.T) {
	e, _ := newTestEngine()

	tr := e.FindTimeRange("Lunch 12:00-13:00 May 3", 18)
	require.True(t, tr.Found)
	assert.Equal(t, Span{Start: 6, End: 17}, tr.Span)

	tr = e.FindTimeRange("Jan 15 2:00 pm-3:30 pm", 0)
	require.True(t, tr.Found)
	assert.Equal(t, Span{Start: 7, End: 22}, tr.Span)
}

func TestFindTimeRange_WindowIsCharacterBased(t *testing.T) {
	e, _ := newTestEngine()

	// Two-byte characters keep the range inside a 50-character window even
	// though it ends more than 50 bytes away.
	text := "Jan 15 " + strings.Repeat("é", 20) + " 10:00-11:00"
	tr := e.FindTimeRange(text, 0)
	require.True(t, tr.Found)
	assert.Equal(t, Span{Start: 28, End: 39}, tr.Span)
}

func TestFindTimeRange_ClampsAtTextEdges(t *testing.T) {
	e, _ := newTestEngine()

	tr := e.FindTimeRange("9:00-10:00", 1000)
	assert.False(t, tr.Found)

	tr = e.FindTimeRange("9:00-10:00", -5)
	assert.True(t, tr.Found)
}

// --- Title ---

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"  Team Sync  ", "Team Sync"},
		{"-- Team Sync: ;", "Team Sync"},
		{"\n\t_Review_.\n", "Review"},
		{"o Weekly review", "Weekly review"},
		{"a  spaced", "spaced"},
		{"I am here", "am here"},
		{"ab cd", "ab cd"},
		{"1 Jan", "1 Jan"},
		{"x", "x"},
		{" .,:;-_\n\t", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanTitle(tt.raw))
		})
	}
}

func TestTitle_Window(t *testing.T) {
	e, _ := newTestEngine()

	prefix := "ignored prefix text. " + strings.Repeat("x", 10) + "Quarterly planning "
	text := prefix + "Jan 15 in the big room downstairs"
	start := len([]rune(prefix))
	span := Span{Start: start, End: start + len("Jan 15")}

	got := e.Title(text, span)
	assert.Equal(t, "xxxxxxxxxxQuarterly planning Jan 15 in the big room dow", got)
}

func TestTitle_Placeholder(t *testing.T) {
	e, _ := newTestEngine()

	text := " -- ;; -- "
	assert.Equal(t, "No title found", e.Title(text, Span{Start: 3, End: 5}))
}

func TestTitle_CutsTimeRange(t *testing.T) {
	e, _ := newTestEngine()

	doc := newDocument("Yoga 10:00-11:00 Jan 15")
	cut := Span{Start: 5, End: 16}
	assert.Equal(t, "Yoga Jan 15", e.title(doc, Span{Start: 17, End: 23}, &cut))

	assert.Equal(t, "Lunch May 3", e.Extract("Lunch 12:00-13:00 May 3")[0].Title)

	doc = newDocument("10:00-11:00")
	cut = Span{Start: 0, End: 11}
	assert.Equal(t, "No title found", e.title(doc, Span{Start: 0, End: 0}, &cut))
}

// --- OptionsFromConfig ---

func TestOptionsFromConfig(t *testing.T) {
	opts, err := OptionsFromConfig(types.ExtractionConfig{})
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), opts)

	opts, err = OptionsFromConfig(types.ExtractionConfig{
		TimeWindow:       80,
		TitleLead:        10,
		TitleTrail:       5,
		DefaultStart:     "08:30",
		DefaultDuration:  30 * time.Minute,
		PlaceholderTitle: "Event",
	})
	require.NoError(t, err)
	assert.Equal(t, Options{
		TimeWindow:       80,
		TitleLead:        10,
		TitleTrail:       5,
		DefaultStart:     tod(8, 30),
		DefaultDuration:  30 * time.Minute,
		PlaceholderTitle: "Event",
	}, opts)

	_, err = OptionsFromConfig(types.ExtractionConfig{DefaultStart: "nine"})
	assert.Error(t, err)
}
