package http

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/pkg/clocksdk"
	"github.com/stretchr/testify/require"
)

func TestPasswordRequestLifecycle(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	ctx := context.Background()
	staff := srv.register(t, "ana@example.com", "", true, domain.RoleStaff)
	admin := srv.register(t, "boss@example.com", "", true, domain.RoleAdmin)
	staffSess := srv.login(t, staff)
	adminSess := srv.login(t, admin)

	pr, err := staffSess.RequestPasswordReset(ctx, "Forgot it")
	require.NoError(t, err)
	require.Equal(t, "pending", pr.Status)

	_, err = staffSess.RequestPasswordReset(ctx, "Still forgot it")
	requireAPIError(t, err, http.StatusConflict, "You already have a pending request")

	pending, err := adminSess.ListAllPasswordRequests(ctx, "pending")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, "ana@example.com", pending[0].Email)

	msg, err := adminSess.ProcessPasswordRequest(ctx, clocksdk.ProcessPasswordRequest{
		RequestID:  pr.ID,
		Action:     "approve",
		AdminNotes: "verified by phone",
	})
	require.NoError(t, err)
	require.Equal(t, "Request approved. Password reset email sent to user.", msg)

	_, err = adminSess.ProcessPasswordRequest(ctx, clocksdk.ProcessPasswordRequest{RequestID: pr.ID, Action: "reject"})
	requireAPIError(t, err, http.StatusBadRequest, "Request has already been processed")

	mine, err := staffSess.ListPasswordRequests(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "approved", mine[0].Status)
	require.Equal(t, admin.ID, mine[0].ResolvedBy)

	sent := srv.mail.Sent()
	require.Len(t, sent, 1)
	require.Equal(t, "ana@example.com", sent[0].To)

	reset, err := clocksdk.ResetRequestFromLink(sent[0].Link, "brand-new-pass")
	require.NoError(t, err)
	require.NoError(t, srv.client.ResetPassword(ctx, reset))

	// Recovery links are single use
	err = srv.client.ResetPassword(ctx, reset)
	requireAPIError(t, err, http.StatusUnauthorized, "Invalid or expired reset link")

	_, err = srv.client.LoginWithPassword(ctx, "ana@example.com", "brand-new-pass")
	require.NoError(t, err)
	_, err = srv.client.LoginWithPassword(ctx, "ana@example.com", testPassword)
	requireAPIError(t, err, http.StatusUnauthorized, "")
}

func TestProcessPasswordRequestFailuresAre400(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	staff := srv.register(t, "ana@example.com", "", true, domain.RoleStaff)
	admin := srv.register(t, "boss@example.com", "", true, domain.RoleAdmin)
	staffSess := srv.login(t, staff)
	adminSess := srv.login(t, admin)

	pr, err := staffSess.RequestPasswordReset(context.Background(), "Locked out")
	require.NoError(t, err)

	const path = "/v1/admin/password-requests/process"
	tests := []struct {
		name  string
		token string
		body  string
		want  string
	}{
		{
			name: "no bearer token",
			body: `{"requestId":"` + pr.ID + `","action":"approve"}`,
			want: "Unauthorized",
		},
		{
			name:  "garbage bearer token",
			token: "not-a-jwt",
			body:  `{"requestId":"` + pr.ID + `","action":"approve"}`,
			want:  "Unauthorized",
		},
		{
			name:  "not an admin",
			token: staffSess.AccessToken(),
			body:  `{"requestId":"` + pr.ID + `","action":"approve"}`,
			want:  "Only admins can process password requests",
		},
		{
			name:  "invalid body",
			token: adminSess.AccessToken(),
			body:  `{"requestId":`,
			want:  msgInvalidBody,
		},
		{
			name:  "unknown action",
			token: adminSess.AccessToken(),
			body:  `{"requestId":"` + pr.ID + `","action":"escalate"}`,
			want:  "Invalid action",
		},
		{
			name:  "unknown request",
			token: adminSess.AccessToken(),
			body:  `{"requestId":"01ARZ3NDEKTSV4RRFFQ69G5FAV","action":"reject"}`,
			want:  "Request not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := srv.do(t, http.MethodPost, path, tt.token, tt.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			requireErrorBody(t, body, tt.want)
		})
	}

	// None of the above touched the request
	mine, err := staffSess.ListPasswordRequests(context.Background())
	require.NoError(t, err)
	require.Equal(t, "pending", mine[0].Status)
}

func TestApproveKeepsRequestPendingWhenEmailFails(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	ctx := context.Background()
	staff := srv.register(t, "ana@example.com", "", true, domain.RoleStaff)
	admin := srv.register(t, "boss@example.com", "", true, domain.RoleAdmin)
	staffSess := srv.login(t, staff)
	adminSess := srv.login(t, admin)

	pr, err := staffSess.RequestPasswordReset(ctx, "Forgot it")
	require.NoError(t, err)

	srv.mail.mu.Lock()
	srv.mail.err = errors.New("provider down")
	srv.mail.mu.Unlock()

	_, err = adminSess.ProcessPasswordRequest(ctx, clocksdk.ProcessPasswordRequest{RequestID: pr.ID, Action: "approve"})
	requireAPIError(t, err, http.StatusBadRequest, "Failed to send password reset email")

	pending, err := adminSess.ListAllPasswordRequests(ctx, "pending")
	require.NoError(t, err)
	require.Len(t, pending, 1)

	_, err = adminSess.ListAllPasswordRequests(ctx, "lost")
	requireAPIError(t, err, http.StatusBadRequest, "Invalid status")
}

func TestStaffCannotListAllPasswordRequests(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	staff := srv.register(t, "ana@example.com", "", true, domain.RoleStaff)
	sess := srv.login(t, staff)

	_, err := sess.ListAllPasswordRequests(context.Background(), "")
	requireAPIError(t, err, http.StatusForbidden, "Forbidden")
}
