package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/stretchr/testify/require"
)

// clock is a settable time source.
type clock struct{ t time.Time }

func newClock(rfc3339 string) *clock     { return &clock{t: mustTime(rfc3339)} }
func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }
func (c *clock) Set(rfc3339 string)      { c.t = mustTime(rfc3339) }

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestClockInSwitchAndBreak(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.register(t, "kofi@example.com", "", true, "")
	c := newClock("2026-05-04T08:00:00Z")
	f.attendance.Now = c.Now

	st, err := f.attendance.Status(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ClockedOut, st.Status)

	_, err = f.attendance.ClockIn(ctx, p.ID, ClockInInput{Activity: "juggling"})
	requireKind(t, err, KindInvalid, "")

	_, err = f.attendance.ClockIn(ctx, p.ID, ClockInInput{Activity: domain.ActivityGuidedTour, Location: " Gallery 2 "})
	require.NoError(t, err)

	c.Advance(2 * time.Hour)
	_, err = f.attendance.ClockIn(ctx, p.ID, ClockInInput{Activity: domain.ActivityBreak})
	require.NoError(t, err)

	st, err = f.attendance.Status(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OnBreak, st.Status)
	require.Equal(t, domain.ActivityBreak, st.Activity)
	require.Len(t, st.TodayRecords, 2)
	require.Equal(t, 2*time.Hour, st.TodayWorked)

	c.Advance(30 * time.Minute)
	_, err = f.attendance.ClockIn(ctx, p.ID, ClockInInput{Activity: domain.ActivityExhibition})
	require.NoError(t, err)

	c.Advance(time.Hour)
	st, err = f.attendance.Status(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ClockedIn, st.Status)
	require.Equal(t, 3*time.Hour, st.TodayWorked)
	require.NotNil(t, st.ClockIn)

	closed, err := f.attendance.ClockOut(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, closed.ClockOut)

	_, err = f.attendance.ClockOut(ctx, p.ID)
	requireKind(t, err, KindConflict, "")
}

func TestHistoryGroupsByDay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.register(t, "ama@example.com", "", true, "")
	c := newClock("2026-05-01T09:00:00Z")
	f.attendance.Now = c.Now

	_, err := f.attendance.ClockIn(ctx, p.ID, ClockInInput{Activity: domain.ActivityMaintenance})
	require.NoError(t, err)
	c.Advance(4 * time.Hour)
	_, err = f.attendance.ClockOut(ctx, p.ID)
	require.NoError(t, err)

	c.Set("2026-05-02T10:00:00Z")
	_, err = f.attendance.ClockIn(ctx, p.ID, ClockInInput{Activity: domain.ActivityTraining})
	require.NoError(t, err)
	c.Advance(time.Hour)
	_, err = f.attendance.ClockOut(ctx, p.ID)
	require.NoError(t, err)

	days, err := f.attendance.History(ctx, p.ID, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, days, 2)
	require.Equal(t, "2026-05-02", days[0].Date)
	require.Equal(t, time.Hour, days[0].Worked)
	require.Equal(t, 4*time.Hour, days[1].Worked)

	_, err = f.attendance.History(ctx, p.ID, mustTime("2026-05-03T00:00:00Z"), mustTime("2026-05-01T00:00:00Z"))
	requireKind(t, err, KindInvalid, "")
}
