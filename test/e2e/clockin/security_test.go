package clockin_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/clockin/pkg/clocksdk"
	"github.com/stretchr/testify/require"
)

// TestInvalidCredentials verifies a wrong password is rejected.
func TestInvalidCredentials(t *testing.T) {
	client := setupContainer(t)
	bootstrapAdmin(t, client)

	_, err := client.LoginWithPassword(t.Context(), adminEmail, "wrong-password")
	assertStatus(t, err, http.StatusUnauthorized)
}

// TestInvalidAccessToken verifies forged bearer tokens are rejected.
func TestInvalidAccessToken(t *testing.T) {
	client := setupContainer(t)
	bootstrapAdmin(t, client)

	forged := client.NewSessionFromTokens(clocksdk.SessionResponse{
		AccessToken: "invalid-token-12345",
		TokenType:   "Bearer",
		ExpiresIn:   3600,
	})
	_, err := forged.Me(t.Context())
	assertStatus(t, err, http.StatusUnauthorized)
}

// TestStaffCannotUseAdminEndpoints verifies role checks on the admin API.
func TestStaffCannotUseAdminEndpoints(t *testing.T) {
	client := setupContainer(t)
	ctx := t.Context()
	admin := bootstrapAdmin(t, client)
	onboardStaff(t, client, admin, "guard@museum.example", "G-1")

	staff, err := client.LoginWithStaffNumber(ctx, "G-1")
	require.NoError(t, err)

	_, err = staff.ListStaff(ctx)
	assertStatus(t, err, http.StatusForbidden)

	_, err = staff.CreateDepartment(ctx, "Night Watch")
	assertStatus(t, err, http.StatusForbidden)

	_, err = staff.ProcessPasswordRequest(ctx, clocksdk.ProcessPasswordRequest{RequestID: "x", Action: "approve"})
	assertStatus(t, err, http.StatusBadRequest, "process answers every failure with 400")
}

// TestPendingStaffCannotLogInByPassword verifies approval gates every login
// method.
func TestPendingStaffCannotLogInByPassword(t *testing.T) {
	client := setupContainer(t)
	bootstrapAdmin(t, client)

	_, err := client.Register(t.Context(), clocksdk.RegisterRequest{
		Email:    "new@museum.example",
		Password: staffPassword,
		FullName: "New Starter",
	})
	require.NoError(t, err)

	_, err = client.LoginWithPassword(t.Context(), "new@museum.example", staffPassword)
	assertStatus(t, err, http.StatusForbidden)
}
