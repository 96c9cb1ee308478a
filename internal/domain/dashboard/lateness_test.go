package dashboard

import (
	"testing"
	"time"

	"github.com/EethalTeam/enis-hrm-go/internal/domain/permission"
	"github.com/EethalTeam/enis-hrm-go/internal/pkg/civilday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ist builds the UTC instant for an IST wall-clock time on 2026-05-01.
func ist(hour, min int) time.Time {
	loc, _ := time.LoadLocation(civilday.DefaultTimezone)
	return time.Date(2026, 5, 1, hour, min, 0, 0, loc).UTC()
}

func TestEvaluateLateLogins_LateWithoutExcuse(t *testing.T) {
	t.Parallel()
	r := civilday.MustResolver(civilday.DefaultTimezone)

	result := EvaluateLateLogins(r, []LateCandidate{
		{EmployeeID: "e1", EmployeeName: "Asha", CheckIn: ist(10, 15), ShiftStartTime: "09:30"},
	})

	require.Len(t, result, 1)
	assert.Equal(t, "45 mins", result[0].LateBy)
	assert.Equal(t, "10:15 AM", result[0].LoginTime)
	assert.Equal(t, "09:30", result[0].ShiftStartTime)
}

func TestEvaluateLateLogins_OnTimeAndEarlyExcluded(t *testing.T) {
	t.Parallel()
	r := civilday.MustResolver(civilday.DefaultTimezone)

	result := EvaluateLateLogins(r, []LateCandidate{
		{EmployeeID: "e1", EmployeeName: "Asha", CheckIn: ist(9, 30), ShiftStartTime: "09:30"},
		{EmployeeID: "e2", EmployeeName: "Binu", CheckIn: ist(9, 0), ShiftStartTime: "09:30"},
	})

	assert.Empty(t, result)
}

func TestEvaluateLateLogins_PermissionWindowExcuses(t *testing.T) {
	t.Parallel()
	r := civilday.MustResolver(civilday.DefaultTimezone)

	windows := []permission.Window{{FromTime: "10:00", ToTime: "10:30"}}

	excused := EvaluateLateLogins(r, []LateCandidate{
		{EmployeeID: "e1", EmployeeName: "Asha", CheckIn: ist(10, 15), ShiftStartTime: "09:30", Windows: windows},
	})
	assert.Empty(t, excused)

	// Inclusive boundaries.
	boundary := EvaluateLateLogins(r, []LateCandidate{
		{EmployeeID: "e1", EmployeeName: "Asha", CheckIn: ist(10, 30), ShiftStartTime: "09:30", Windows: windows},
	})
	assert.Empty(t, boundary)

	// Outside the window the lateness stands.
	outside := EvaluateLateLogins(r, []LateCandidate{
		{EmployeeID: "e1", EmployeeName: "Asha", CheckIn: ist(10, 31), ShiftStartTime: "09:30", Windows: windows},
	})
	assert.Len(t, outside, 1)
}

func TestEvaluateLateLogins_DuplicateRowsCollapse(t *testing.T) {
	t.Parallel()
	r := civilday.MustResolver(civilday.DefaultTimezone)

	// The same day surfacing more than once still yields one report entry,
	// keyed on the latest check-in.
	result := EvaluateLateLogins(r, []LateCandidate{
		{EmployeeID: "e1", EmployeeName: "Asha", CheckIn: ist(9, 45), ShiftStartTime: "09:30"},
		{EmployeeID: "e1", EmployeeName: "Asha", CheckIn: ist(9, 45), ShiftStartTime: "09:30"},
		{EmployeeID: "e1", EmployeeName: "Asha", CheckIn: ist(10, 0), ShiftStartTime: "09:30"},
	})

	require.Len(t, result, 1)
	assert.Equal(t, "30 mins", result[0].LateBy)
}

func TestEvaluateLateLogins_SortedByName(t *testing.T) {
	t.Parallel()
	r := civilday.MustResolver(civilday.DefaultTimezone)

	result := EvaluateLateLogins(r, []LateCandidate{
		{EmployeeID: "e2", EmployeeName: "Zara", CheckIn: ist(10, 0), ShiftStartTime: "09:30"},
		{EmployeeID: "e1", EmployeeName: "Asha", CheckIn: ist(10, 0), ShiftStartTime: "09:30"},
	})

	require.Len(t, result, 2)
	assert.Equal(t, "Asha", result[0].Name)
	assert.Equal(t, "Zara", result[1].Name)
}

func TestEvaluateLateLogins_SkipsMalformedShiftTime(t *testing.T) {
	t.Parallel()
	r := civilday.MustResolver(civilday.DefaultTimezone)

	result := EvaluateLateLogins(r, []LateCandidate{
		{EmployeeID: "e1", EmployeeName: "Asha", CheckIn: ist(10, 0), ShiftStartTime: "late-ish"},
	})

	assert.Empty(t, result)
}

func TestFormatLateBy(t *testing.T) {
	t.Parallel()

	base := ist(9, 30)
	cases := []struct {
		mins int
		want string
	}{
		{0, "0 mins"},
		{45, "45 mins"},
		{60, "1 hr"},
		{75, "1 hr 15 mins"},
		{120, "2 hr"},
	}
	for _, tc := range cases {
		got := formatLateBy(base.Add(time.Duration(tc.mins)*time.Minute), base)
		assert.Equal(t, tc.want, got, "mins=%d", tc.mins)
	}
}
