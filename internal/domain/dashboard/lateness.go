package dashboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/EethalTeam/enis-hrm-go/internal/domain/permission"
	"github.com/EethalTeam/enis-hrm-go/internal/pkg/civilday"
)

// LateCandidate is one attendance day joined with the employee's shift and
// the day's approved permission windows, ready for evaluation.
type LateCandidate struct {
	EmployeeID     string
	EmployeeName   string
	CheckIn        time.Time
	ShiftStartTime string // "HH:mm"
	Windows        []permission.Window
}

// LateLogin is a reported unexcused late arrival.
type LateLogin struct {
	EmployeeID     string `json:"employeeId"`
	Name           string `json:"name"`
	LoginTime      string `json:"loginTime"`
	ShiftStartTime string `json:"shiftStartTime"`
	LateBy         string `json:"lateBy"`

	checkIn time.Time
}

// EvaluateLateLogins classifies candidates against their shift start in the
// civil timezone. A check-in is late when its wall-clock (hour, minute)
// exceeds the shift start lexicographically; an approved permission window
// containing the check-in instant excuses it. Duplicate rows for one
// employee collapse to a single entry, keeping the latest check-in.
func EvaluateLateLogins(resolver *civilday.Resolver, candidates []LateCandidate) []LateLogin {
	latest := make(map[string]LateLogin)

	for _, c := range candidates {
		shiftHour, shiftMin, err := civilday.ParseWallClock(c.ShiftStartTime)
		if err != nil {
			continue
		}

		inHour, inMin := resolver.Clock(c.CheckIn)
		isLate := inHour > shiftHour || (inHour == shiftHour && inMin > shiftMin)
		if !isLate {
			continue
		}
		if excusedBy(resolver, c.CheckIn, c.Windows) {
			continue
		}

		entry := LateLogin{
			EmployeeID:     c.EmployeeID,
			Name:           c.EmployeeName,
			LoginTime:      resolver.FormatClock(c.CheckIn),
			ShiftStartTime: c.ShiftStartTime,
			LateBy:         formatLateBy(c.CheckIn, resolver.At(c.CheckIn, shiftHour, shiftMin)),
			checkIn:        c.CheckIn,
		}
		if prev, ok := latest[c.EmployeeID]; !ok || entry.checkIn.After(prev.checkIn) {
			latest[c.EmployeeID] = entry
		}
	}

	result := make([]LateLogin, 0, len(latest))
	for _, e := range latest {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// excusedBy reports whether any window's [from, to] interval, placed on the
// check-in's civil date, contains the check-in instant.
func excusedBy(resolver *civilday.Resolver, checkIn time.Time, windows []permission.Window) bool {
	for _, w := range windows {
		fromHour, fromMin, err := civilday.ParseWallClock(w.FromTime)
		if err != nil {
			continue
		}
		toHour, toMin, err := civilday.ParseWallClock(w.ToTime)
		if err != nil {
			continue
		}
		from := resolver.At(checkIn, fromHour, fromMin)
		to := resolver.At(checkIn, toHour, toMin)
		if !checkIn.Before(from) && !checkIn.After(to) {
			return true
		}
	}
	return false
}

// formatLateBy renders the delay as "H hr M mins". The hour part is omitted
// when zero; the minute part is omitted only when there are whole hours and
// zero remaining minutes.
func formatLateBy(checkIn, shiftStart time.Time) string {
	lateMins := 0
	if checkIn.After(shiftStart) {
		lateMins = int(checkIn.Sub(shiftStart).Minutes())
	}
	hours := lateMins / 60
	minutes := lateMins % 60

	out := ""
	if hours > 0 {
		out = fmt.Sprintf("%d hr", hours)
	}
	if minutes > 0 || hours == 0 {
		if out != "" {
			out += " "
		}
		out += fmt.Sprintf("%d mins", minutes)
	}
	return out
}
