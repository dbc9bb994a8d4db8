package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
)

func TestAttendanceRecord_Close(t *testing.T) {
	in := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	notes := "entrada"
	r := &entity.AttendanceRecord{ClockIn: in, Notes: &notes}

	r.Close(in.Add(8*time.Hour), nil)

	require.True(t, r.HasClockedOut())
	require.NotNil(t, r.TotalHours)
	assert.InDelta(t, 8.0, *r.TotalHours, 1e-9)
	assert.Equal(t, "entrada", *r.Notes, "sin notas nuevas se conservan las anteriores")

	r2 := &entity.AttendanceRecord{ClockIn: in, Notes: &notes}
	salida := "salida"
	r2.Close(in.Add(7*time.Hour+30*time.Minute), &salida)
	assert.InDelta(t, 7.5, *r2.TotalHours, 1e-9)
	assert.Equal(t, "salida", *r2.Notes)
}

func TestLeaveRequest_DaysInclusivo(t *testing.T) {
	l := &entity.LeaveRequest{
		StartDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 6, l.Days())

	l.EndDate = l.StartDate
	assert.Equal(t, 1, l.Days())
}

func TestLeaveRequest_Decide(t *testing.T) {
	at := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	l := &entity.LeaveRequest{Status: entity.LeavePending}

	l.Decide(entity.LeaveApproved, "admin-1", nil, at)
	assert.Equal(t, entity.LeaveApproved, l.Status)
	require.NotNil(t, l.ApprovedAt)
	assert.Equal(t, at, *l.ApprovedAt)
	assert.Nil(t, l.RejectionReason)
	assert.Equal(t, "admin-1", *l.ApprovedBy)

	reason := "X"
	r := &entity.LeaveRequest{Status: entity.LeavePending}
	r.Decide(entity.LeaveRejected, "admin-1", &reason, at)
	assert.Nil(t, r.ApprovedAt)
	assert.Equal(t, "X", *r.RejectionReason)
	assert.False(t, r.IsPending())
}

func TestValidadores(t *testing.T) {
	assert.True(t, entity.ValidLeaveType("sick"))
	assert.False(t, entity.ValidLeaveType("sabbatical"))
	assert.True(t, entity.ValidRole("admin"))
	assert.False(t, entity.ValidRole("bodeguero"))

	var nilUser *entity.User
	assert.False(t, nilUser.IsActive())
	assert.True(t, (&entity.User{Active: true}).IsActive())
}
