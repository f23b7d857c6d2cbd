// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pdiddy/eventscan/pkg/types"
)

const maxFileStem = 60

var unsafeFileChars = regexp.MustCompile(`[^\p{L}\p{N}._-]+`)

// FileName returns a filesystem-safe .ics name for the i-th event (0-based).
// The index keeps names unique when titles repeat.
func FileName(ev types.EventCandidate, i int) string {
	stem := unsafeFileChars.ReplaceAllString(strings.TrimSpace(ev.Title), "-")
	stem = strings.Trim(stem, "-.")
	if r := []rune(stem); len(r) > maxFileStem {
		stem = strings.TrimRight(string(r[:maxFileStem]), "-.")
	}
	if stem == "" {
		stem = "event"
	}
	return fmt.Sprintf("%02d-%s.ics", i+1, stem)
}

// WriteSummary reports the outcome of WriteAll.
type WriteSummary struct {
	Written int
	Invalid int
}

// Total returns the number of events considered.
func (s WriteSummary) Total() int {
	return s.Written + s.Invalid
}

// HasFailures reports whether any event was rejected.
func (s WriteSummary) HasFailures() bool {
	return s.Invalid > 0
}

// WriteAll writes one ICS file per event into dir and prints a status line
// and Google Calendar link for each to w. Invalid events are reported and
// skipped.
func WriteAll(dir string, events []types.EventCandidate, w io.Writer) (WriteSummary, error) {
	var summary WriteSummary
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return summary, fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	for i, ev := range events {
		data, err := ICS(ev)
		if err != nil {
			fmt.Fprintf(w, "invalid %d: %v\n", i+1, err)
			summary.Invalid++
			continue
		}

		path := filepath.Join(dir, FileName(ev, i))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return summary, fmt.Errorf("writing %s: %w", path, err)
		}
		summary.Written++
		fmt.Fprintf(w, "wrote %s\n  %s\n", path, GoogleCalendarURL(ev))
	}
	return summary, nil
}
