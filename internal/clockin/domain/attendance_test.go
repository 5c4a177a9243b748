package domain_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/stretchr/testify/require"
)

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T { return &v }

func TestStatusOf(t *testing.T) {
	require.Equal(t, domain.ClockedOut, domain.StatusOf(nil))
	require.Equal(t, domain.OnBreak, domain.StatusOf(&domain.AttendanceRecord{Activity: domain.ActivityBreak}))
	require.Equal(t, domain.ClockedIn, domain.StatusOf(&domain.AttendanceRecord{Activity: domain.ActivityGuidedTour}))
}

func TestSummarise(t *testing.T) {
	now := at("2026-03-03T12:00:00Z")
	records := []domain.AttendanceRecord{
		{Activity: domain.ActivityGuidedTour, ClockIn: at("2026-03-02T09:00:00Z"), ClockOut: ptr(at("2026-03-02T12:00:00Z"))},
		{Activity: domain.ActivityBreak, ClockIn: at("2026-03-02T12:00:00Z"), ClockOut: ptr(at("2026-03-02T12:30:00Z"))},
		{Activity: domain.ActivityExhibition, ClockIn: at("2026-03-02T12:30:00Z"), ClockOut: ptr(at("2026-03-02T17:00:00Z"))},
		// Still open, counts up to now
		{Activity: domain.ActivityMeeting, ClockIn: at("2026-03-03T10:00:00Z")},
	}

	days := domain.Summarise(records, time.UTC, now)
	require.Len(t, days, 2)

	require.Equal(t, "2026-03-03", days[0].Date)
	require.Equal(t, 2*time.Hour, days[0].Worked)

	require.Equal(t, "2026-03-02", days[1].Date)
	require.Equal(t, 7*time.Hour+30*time.Minute, days[1].Worked)
	require.Equal(t, 30*time.Minute, days[1].Breaks)
	require.Len(t, days[1].Records, 3)
}

func TestRoleParsingAndRoutes(t *testing.T) {
	r, ok := domain.ParseRole(" Admin ")
	require.True(t, ok)
	require.Equal(t, domain.RoleAdmin, r)
	require.Equal(t, "/admin", r.HomeRoute())

	require.Equal(t, "/dashboard", domain.RoleStaff.HomeRoute())
	require.Equal(t, "/dashboard", domain.RoleSupervisor.HomeRoute())

	_, ok = domain.ParseRole("owner")
	require.False(t, ok)
}

func TestRequestActionStatus(t *testing.T) {
	s, ok := domain.ActionApprove.Status()
	require.True(t, ok)
	require.Equal(t, domain.RequestApproved, s)

	s, ok = domain.ActionReject.Status()
	require.True(t, ok)
	require.Equal(t, domain.RequestRejected, s)

	_, ok = domain.RequestAction("delete").Status()
	require.False(t, ok)
}
