package civilday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_StartOfDay_BucketsByWallClock(t *testing.T) {
	t.Parallel()
	r := MustResolver(DefaultTimezone)

	// 2026-01-14 23:59:59.999 IST is 18:29:59.999 UTC the same day.
	justBefore := time.Date(2026, 1, 14, 18, 29, 59, 999_000_000, time.UTC)
	// One millisecond later the civil day flips.
	justAfter := time.Date(2026, 1, 14, 18, 30, 0, 0, time.UTC)

	d1 := r.StartOfDay(justBefore)
	d2 := r.StartOfDay(justAfter)

	assert.Equal(t, time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC), d1)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), d2)
	assert.False(t, d1.Equal(d2))
}

func TestResolver_StartOfDay_IgnoresInputLocation(t *testing.T) {
	t.Parallel()
	r := MustResolver(DefaultTimezone)

	instant := time.Date(2026, 3, 10, 2, 15, 0, 0, time.UTC)
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	assert.Equal(t, r.StartOfDay(instant), r.StartOfDay(instant.In(ny)))
}

func TestResolver_StartOfDay_Idempotent(t *testing.T) {
	t.Parallel()
	r := MustResolver(DefaultTimezone)

	boundary := r.StartOfDay(time.Now().UTC())
	assert.Equal(t, boundary, r.StartOfDay(boundary))
}

func TestResolver_Clock(t *testing.T) {
	t.Parallel()
	r := MustResolver(DefaultTimezone)

	// 04:00 UTC is 09:30 IST.
	h, m := r.Clock(time.Date(2026, 5, 1, 4, 0, 0, 0, time.UTC))
	assert.Equal(t, 9, h)
	assert.Equal(t, 30, m)
}

func TestResolver_At_ReprojectsOnSameCivilDay(t *testing.T) {
	t.Parallel()
	r := MustResolver(DefaultTimezone)

	checkIn := time.Date(2026, 5, 1, 4, 45, 0, 0, time.UTC) // 10:15 IST
	shiftStart := r.At(checkIn, 9, 30)

	assert.Equal(t, time.Date(2026, 5, 1, 4, 0, 0, 0, time.UTC), shiftStart)
	assert.Equal(t, 45*time.Minute, checkIn.Sub(shiftStart))
}

func TestResolver_MonthRange(t *testing.T) {
	t.Parallel()
	r := MustResolver(DefaultTimezone)

	start, end := r.MonthRange(2026, time.February)

	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestParseWallClock(t *testing.T) {
	t.Parallel()

	h, m, err := ParseWallClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, h)
	assert.Equal(t, 30, m)

	_, _, err = ParseWallClock("9:30am")
	assert.Error(t, err)

	_, _, err = ParseWallClock("")
	assert.Error(t, err)
}

func TestResolver_FormatClock(t *testing.T) {
	t.Parallel()
	r := MustResolver(DefaultTimezone)

	// 04:45 UTC is 10:15 AM IST.
	assert.Equal(t, "10:15 AM", r.FormatClock(time.Date(2026, 5, 1, 4, 45, 0, 0, time.UTC)))
}

func TestNewResolver_UnknownTimezone(t *testing.T) {
	t.Parallel()

	_, err := NewResolver("Mars/Olympus")
	assert.Error(t, err)
}
