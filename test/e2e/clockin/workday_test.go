package clockin_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/clockin/pkg/clocksdk"
	"github.com/stretchr/testify/require"
)

// TestStaffWorkday walks a new staff member from registration through a
// clocked shift, as the admin sees it.
func TestStaffWorkday(t *testing.T) {
	client := setupContainer(t)
	ctx := t.Context()
	admin := bootstrapAdmin(t, client)

	reg, err := client.Register(ctx, clocksdk.RegisterRequest{
		Email:       "guide@museum.example",
		Password:    staffPassword,
		FullName:    "Tour Guide",
		Department:  "Tours",
		StaffNumber: "T-001",
	})
	require.NoError(t, err)

	_, err = client.LoginWithStaffNumber(ctx, "T-001")
	assertStatus(t, err, http.StatusForbidden, "unapproved staff cannot log in")

	require.NoError(t, admin.ApproveStaff(ctx, reg.UserID))

	staff, err := client.LoginWithStaffNumber(ctx, "t-001")
	require.NoError(t, err)
	require.Equal(t, "/dashboard", staff.Route())

	_, err = staff.ClockIn(ctx, clocksdk.ClockInRequest{Activity: "guided-tour", Location: "Main Hall"})
	require.NoError(t, err)

	list, err := admin.ListStaff(ctx)
	require.NoError(t, err)
	var seen bool
	for _, m := range list {
		if m.ID == reg.UserID {
			seen = true
			require.Equal(t, "clocked-in", m.ClockStatus)
			require.Equal(t, "guided-tour", m.Activity)
		}
	}
	require.True(t, seen, "admin should see the new staff member")

	_, err = staff.ClockIn(ctx, clocksdk.ClockInRequest{Activity: "break"})
	require.NoError(t, err)
	st, err := staff.ClockStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, "on-break", st.Status)

	rec, err := staff.ClockOut(ctx)
	require.NoError(t, err)
	require.NotNil(t, rec.ClockOut)

	days, err := admin.StaffAttendance(ctx, reg.UserID, "", "")
	require.NoError(t, err)
	require.Len(t, days, 1)
	require.Len(t, days[0].Records, 2)

	page, err := admin.LoginActivity(ctx, clocksdk.LoginActivityQuery{Method: "staff_id", Range: "today"})
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Total, "one refused and one successful staff number login")
}

// TestPasswordRequestApproval verifies an admin can approve a request and
// the staff member sees the outcome.
func TestPasswordRequestApproval(t *testing.T) {
	client := setupContainer(t)
	ctx := t.Context()
	admin := bootstrapAdmin(t, client)
	onboardStaff(t, client, admin, "keeper@museum.example", "K-7")

	staff, err := client.LoginWithPassword(ctx, "keeper@museum.example", staffPassword)
	require.NoError(t, err)

	pr, err := staff.RequestPasswordReset(ctx, "New phone, lost the password manager")
	require.NoError(t, err)

	msg, err := admin.ProcessPasswordRequest(ctx, clocksdk.ProcessPasswordRequest{RequestID: pr.ID, Action: "approve"})
	require.NoError(t, err)
	require.Contains(t, msg, "approved")

	mine, err := staff.ListPasswordRequests(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "approved", mine[0].Status)
}
