package postgresql

import (
	"testing"
	"time"

	"github.com/EethalTeam/enis-hrm-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstCheckIn_IgnoresLaterSessions(t *testing.T) {
	t.Parallel()

	morning := time.Date(2026, 5, 1, 3, 30, 0, 0, time.UTC)
	afternoon := time.Date(2026, 5, 1, 8, 30, 0, 0, time.UTC)
	lunch := morning.Add(4 * time.Hour)

	// An on-time login followed by a post-lunch re-entry: the re-entry
	// must never become the lateness reference.
	got, ok := firstCheckIn([]attendance.Session{
		{CheckIn: morning, CheckOut: &lunch},
		{CheckIn: afternoon},
	})
	require.True(t, ok)
	assert.Equal(t, morning, got)
}

func TestFirstCheckIn_EmptyDay(t *testing.T) {
	t.Parallel()

	_, ok := firstCheckIn(nil)
	assert.False(t, ok)

	_, ok = firstCheckIn([]attendance.Session{{}})
	assert.False(t, ok)
}
