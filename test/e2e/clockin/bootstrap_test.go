package clockin_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/clockin/pkg/clocksdk"
)

// TestBootstrapSuccess verifies bootstrap creates an admin who lands on the
// admin page.
func TestBootstrapSuccess(t *testing.T) {
	client := setupContainer(t)

	admin := bootstrapAdmin(t, client)
	if admin.Route() != "/admin" {
		t.Fatalf("admin route = %q, want /admin", admin.Route())
	}
}

// TestBootstrapOnlyOnce verifies a second bootstrap is refused.
func TestBootstrapOnlyOnce(t *testing.T) {
	client := setupContainer(t)
	bootstrapAdmin(t, client)

	_, err := client.Bootstrap(t.Context(), bootstrapToken, clocksdk.BootstrapRequest{
		Email:    "other@museum.example",
		Password: "Another123!",
		FullName: "Another Admin",
	})
	assertStatus(t, err, http.StatusConflict, "second bootstrap should be rejected")
}

// TestBootstrapWrongToken verifies the bootstrap token is checked.
func TestBootstrapWrongToken(t *testing.T) {
	client := setupContainer(t)

	_, err := client.Bootstrap(t.Context(), "not-the-token", clocksdk.BootstrapRequest{
		Email:    adminEmail,
		Password: adminPassword,
		FullName: adminName,
	})
	assertStatus(t, err, http.StatusUnauthorized)
}
