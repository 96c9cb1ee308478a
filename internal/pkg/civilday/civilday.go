// Package civilday buckets instants into calendar days of a single fixed
// reference timezone. Every date boundary in the attendance core goes through
// one Resolver so that records never split across day boundaries when the
// server runs in a different locale.
package civilday

import (
	"fmt"
	"time"
)

// DefaultTimezone is the civil reference timezone used when none is configured.
const DefaultTimezone = "Asia/Kolkata"

type Resolver struct {
	loc *time.Location
}

// NewResolver loads the given IANA timezone name. An empty name selects
// DefaultTimezone.
func NewResolver(timezone string) (*Resolver, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load civil timezone %q: %w", timezone, err)
	}
	return &Resolver{loc: loc}, nil
}

// MustResolver is for tests and fixed-config call sites.
func MustResolver(timezone string) *Resolver {
	r, err := NewResolver(timezone)
	if err != nil {
		panic(err)
	}
	return r
}

// Location returns the reference timezone.
func (r *Resolver) Location() *time.Location {
	return r.loc
}

// StartOfDay returns the civil date t falls on as a UTC-midnight marker.
// Bucketing happens on the reference wall clock, so the result is independent
// of t's own location and of the process's local timezone; the marker form
// round-trips cleanly through DATE columns and "2006-01-02" formatting.
func (r *Resolver) StartOfDay(t time.Time) time.Time {
	y, m, d := t.In(r.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the start of the current civil day.
func (r *Resolver) Today() time.Time {
	return r.StartOfDay(time.Now())
}

// Clock returns the wall-clock hour and minute of t in the reference timezone.
func (r *Resolver) Clock(t time.Time) (hour, minute int) {
	local := t.In(r.loc)
	return local.Hour(), local.Minute()
}

// At reconstructs the instant with wall-clock hour:minute on the same civil
// date t falls on. Used to place a shift start or a permission window boundary
// onto a check-in's calendar date.
func (r *Resolver) At(t time.Time, hour, minute int) time.Time {
	y, m, d := t.In(r.loc).Date()
	return time.Date(y, m, d, hour, minute, 0, 0, r.loc).UTC()
}

// MonthRange returns the calendar month as [start, end) civil-date markers.
func (r *Resolver) MonthRange(year int, month time.Month) (start, end time.Time) {
	start = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
	return start, end
}

// FormatClock renders t as a 12-hour "hh:mm AM/PM" wall-clock string in the
// reference timezone.
func (r *Resolver) FormatClock(t time.Time) string {
	return t.In(r.loc).Format("03:04 PM")
}

// ParseWallClock parses an "HH:mm" wall-clock string such as a shift start
// time or a permission window boundary.
func ParseWallClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid wall-clock time %q: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}
