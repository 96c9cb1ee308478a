package attendance

import (
	"time"
)

// AttendanceDay is the ledger document: one row per (employee, civil day).
// Date is the civil-date marker produced by the civilday resolver.
// Sessions are ordered; at most the last one may be open.
type AttendanceDay struct {
	ID               string
	EmployeeID       string
	Date             time.Time
	Sessions         []Session
	TotalWorkedHours float64
	TotalBreakHours  float64
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined for list responses
	EmployeeName       *string
	EmployeeDepartment *string
}

// Session is one check-in/check-out pair. WorkedHours stays 0 while the
// session is open and becomes (checkOut - checkIn) - TotalBreakHours, in
// decimal hours, when it closes.
type Session struct {
	CheckIn         time.Time       `json:"checkIn"`
	CheckOut        *time.Time      `json:"checkOut,omitempty"`
	WorkedHours     float64         `json:"workedHours"`
	Breaks          []BreakInterval `json:"breaks"`
	TotalBreakHours float64         `json:"totalBreakHours"`
}

type BreakInterval struct {
	BreakStart    time.Time  `json:"breakStart"`
	BreakEnd      *time.Time `json:"breakEnd,omitempty"`
	BreakDuration float64    `json:"breakDuration"`
}

// Open reports whether the session has no checkout yet.
func (s *Session) Open() bool {
	return s.CheckOut == nil
}

// OnBreak reports whether the session's last break is still open.
func (s *Session) OnBreak() bool {
	if len(s.Breaks) == 0 {
		return false
	}
	return s.Breaks[len(s.Breaks)-1].BreakEnd == nil
}

// lastSession returns the final session, or nil for an empty day.
func (d *AttendanceDay) lastSession() *Session {
	if len(d.Sessions) == 0 {
		return nil
	}
	return &d.Sessions[len(d.Sessions)-1]
}

// HasOpenSession reports whether the day's last session is open.
func (d *AttendanceDay) HasOpenSession() bool {
	last := d.lastSession()
	return last != nil && last.Open()
}

// HasOpenBreak reports whether the day's last session has an open break.
func (d *AttendanceDay) HasOpenBreak() bool {
	last := d.lastSession()
	return last != nil && last.Open() && last.OnBreak()
}

// StartSession appends a new open session at now. Fails with
// ErrAlreadyCheckedIn while the previous session is still open.
func (d *AttendanceDay) StartSession(now time.Time) error {
	if d.HasOpenSession() {
		return ErrAlreadyCheckedIn
	}
	d.Sessions = append(d.Sessions, Session{CheckIn: now})
	return nil
}

// CloseSession closes the last open session at now, computing its worked
// hours net of recorded breaks, and refreshes the day totals.
func (d *AttendanceDay) CloseSession(now time.Time) error {
	last := d.lastSession()
	if last == nil || !last.Open() {
		return ErrNoActiveCheckIn
	}
	if now.Before(last.CheckIn) {
		now = last.CheckIn
	}
	if last.OnBreak() {
		// A dangling break ends with the session so its time is not
		// counted as work.
		if err := d.EndBreak(now); err != nil {
			return err
		}
	}
	checkOut := now
	last.CheckOut = &checkOut
	last.WorkedHours = checkOut.Sub(last.CheckIn).Hours() - last.TotalBreakHours
	if last.WorkedHours < 0 {
		last.WorkedHours = 0
	}
	d.recomputeTotals()
	return nil
}

// StartBreak opens a break inside the current open session.
func (d *AttendanceDay) StartBreak(now time.Time) error {
	last := d.lastSession()
	if last == nil || !last.Open() {
		return ErrNoActiveSession
	}
	if last.OnBreak() {
		return ErrAlreadyOnBreak
	}
	last.Breaks = append(last.Breaks, BreakInterval{BreakStart: now})
	return nil
}

// EndBreak closes the current open break and refreshes break totals on both
// the session and the day.
func (d *AttendanceDay) EndBreak(now time.Time) error {
	last := d.lastSession()
	if last == nil || len(last.Breaks) == 0 {
		return ErrNoActiveBreak
	}
	brk := &last.Breaks[len(last.Breaks)-1]
	if brk.BreakEnd != nil {
		return ErrBreakAlreadyEnded
	}
	if now.Before(brk.BreakStart) {
		now = brk.BreakStart
	}
	end := now
	brk.BreakEnd = &end
	brk.BreakDuration = end.Sub(brk.BreakStart).Hours()
	total := 0.0
	for _, b := range last.Breaks {
		total += b.BreakDuration
	}
	last.TotalBreakHours = total
	d.recomputeTotals()
	return nil
}

// ForceClose closes a dangling open session exactly like CloseSession but
// reports whether anything changed; an already-closed (or empty) day is a
// no-op so disconnect signals can race a genuine checkout safely.
func (d *AttendanceDay) ForceClose(now time.Time) bool {
	if !d.HasOpenSession() {
		return false
	}
	// HasOpenSession guarantees CloseSession succeeds.
	_ = d.CloseSession(now)
	return true
}

// recomputeTotals derives the day aggregates from the sessions. Open
// sessions contribute zero worked hours; closed breaks always count.
func (d *AttendanceDay) recomputeTotals() {
	worked, breaks := 0.0, 0.0
	for _, s := range d.Sessions {
		worked += s.WorkedHours
		breaks += s.TotalBreakHours
	}
	d.TotalWorkedHours = worked
	d.TotalBreakHours = breaks
}

// RecomputeTotals re-derives cached totals; used when reading back stored
// rows whose caches may predate a schema fix.
func (d *AttendanceDay) RecomputeTotals() {
	d.recomputeTotals()
}

// FirstCheckIn returns the day's earliest check-in instant, or false for a
// day with no sessions.
func (d *AttendanceDay) FirstCheckIn() (time.Time, bool) {
	if len(d.Sessions) == 0 {
		return time.Time{}, false
	}
	return d.Sessions[0].CheckIn, true
}
