package permission

import "time"

// Window is an approved permission request: a wall-clock interval on one
// civil day during which a late check-in is excused. Read-only to the
// attendance core; approval flows live elsewhere.
type Window struct {
	ID         string
	EmployeeID string
	Date       time.Time // civil-date marker
	FromTime   string    // "HH:mm"
	ToTime     string    // "HH:mm"
	TotalHours float64
	Reason     *string
}
