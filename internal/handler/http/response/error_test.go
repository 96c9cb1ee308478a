package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/EethalTeam/enis-hrm-go/internal/domain/attendance"
	"github.com/EethalTeam/enis-hrm-go/internal/domain/employee"
	"github.com/EethalTeam/enis-hrm-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError_StatusMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"already checked in", attendance.ErrAlreadyCheckedIn, http.StatusBadRequest},
		{"no active check-in", attendance.ErrNoActiveCheckIn, http.StatusBadRequest},
		{"already on break", attendance.ErrAlreadyOnBreak, http.StatusBadRequest},
		{"break already ended", attendance.ErrBreakAlreadyEnded, http.StatusBadRequest},
		{"no attendance record", attendance.ErrNoAttendanceRecord, http.StatusNotFound},
		{"attendance not found", attendance.ErrAttendanceNotFound, http.StatusNotFound},
		{"employee not found", employee.ErrEmployeeNotFound, http.StatusNotFound},
		{"version conflict", attendance.ErrVersionConflict, http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tc.err)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestHandleError_ValidationErrors(t *testing.T) {
	t.Parallel()

	errs := validator.ValidationErrors{
		{Field: "employeeId", Message: "employeeId is required"},
	}

	rec := httptest.NewRecorder()
	HandleError(rec, errs)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "employeeId is required", body.Error.Details["employeeId"])
}

func TestHandleError_UnknownErrorHidesDetails(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	HandleError(rec, errors.New("pq: secret table missing"))

	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestHandleError_WrappedErrorsStillMatch(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	HandleError(rec, fmtWrap(attendance.ErrVersionConflict))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func fmtWrap(err error) error {
	return errors.Join(errors.New("attendance write did not converge"), err)
}
