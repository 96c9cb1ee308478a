package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the directory record the attendance core consumes: identity,
// shift assignment, active flag and live presence. Everything else about an
// employee lives outside this service.
type Employee struct {
	ID                  string
	Name                string
	Email               string
	Department          *string
	ShiftID             *string
	Presence            Presence
	IsActive            bool
	IsCurrentlyLoggedIn bool
	LastLoggedIn        *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Presence is the advisory live status pushed by the ledger as a side
// effect of check-in/out/break transitions. It is not part of the ledger's
// own consistency.
type Presence string

const (
	PresenceOnline  Presence = "Online"
	PresenceOffline Presence = "Offline"
	PresenceOnBreak Presence = "On-Break"
)

// Shift is the configured work window, wall-clock in the civil timezone.
type Shift struct {
	ID         string
	Name       string
	Code       *string
	StartTime  string // "HH:mm"
	EndTime    string // "HH:mm"
	TotalHours float64
	HourlyRate decimal.Decimal
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
