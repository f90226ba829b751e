package util

import (
	"errors"
	"strings"
	"time"
)

// ParseDateRange parses optional start/end filter strings. Each value may be
// RFC3339 or a bare YYYY-MM-DD; a date-only end is made inclusive by returning
// the start of the next day as an exclusive boundary. Reversed ranges are
// swapped rather than rejected.
func ParseDateRange(startStr, endStr *string) (start time.Time, hasStart bool, endExclusive time.Time, hasEnd bool, err error) {
	parse := func(s string) (time.Time, bool, bool, error) {
		s = strings.TrimSpace(s)
		if s == "" {
			return time.Time{}, false, false, nil
		}
		if t, e := time.Parse(time.RFC3339, s); e == nil {
			return t, true, false, nil
		}
		if t, e := time.Parse("2006-01-02", s); e == nil {
			return t, true, true, nil
		}
		return time.Time{}, false, false, errors.New("invalid date format (use YYYY-MM-DD or RFC3339)")
	}

	var (
		rawStart, rawEnd time.Time
		startOk, endOk   bool
		endDateOnly      bool
	)

	if startStr != nil {
		t, ok, _, e := parse(*startStr)
		if e != nil {
			return time.Time{}, false, time.Time{}, false, e
		}
		rawStart, startOk = t, ok
	}
	if endStr != nil {
		t, ok, dateOnly, e := parse(*endStr)
		if e != nil {
			return time.Time{}, false, time.Time{}, false, e
		}
		rawEnd, endOk, endDateOnly = t, ok, dateOnly
	}

	if startOk && endOk && rawEnd.Before(rawStart) {
		rawStart, rawEnd = rawEnd, rawStart
	}

	if startOk {
		start, hasStart = rawStart, true
	}
	if endOk {
		endExclusive, hasEnd = rawEnd, true
		if endDateOnly {
			endExclusive = rawEnd.AddDate(0, 0, 1)
		}
	}

	return start, hasStart, endExclusive, hasEnd, nil
}
