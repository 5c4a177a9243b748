/*
Package clocksdk is a Go client for the clockin staff attendance service.

# Client and Session

A Client covers the operations that need no account: badge and staff number
sign in, registration, password reset links, the department list, bootstrap
and health checks. Signing in returns a Session, which carries the access and
refresh tokens and refreshes them on its own before they expire.

	client := clocksdk.NewClient("https://clock.example.com")

	session, err := client.LoginWithQR(ctx, scannedToken)
	if errors.Is(err, clocksdk.ErrVerificationFailed) {
		// the one-time token was used or expired, scan again
	}

	status, err := session.ClockStatus(ctx)
	rec, err := session.ClockIn(ctx, clocksdk.ClockInRequest{Activity: "guided-tour"})

A QR or staff number login is two calls: the first checks the credential and
returns a single use token, the second redeems it. LoginWithQR and
LoginWithStaffNumber do both. RequestQRLogin and Verify are there for callers
that want to do them separately.

# Admin operations

Sessions of admins can manage staff, departments and password requests:

	staff, err := session.ListStaff(ctx)
	msg, err := session.ProcessPasswordRequest(ctx, clocksdk.ProcessPasswordRequest{
		RequestID: id,
		Action:    "approve",
	})

Other roles get an *APIError with status 403.

# Errors

Non-2xx responses are returned as *APIError holding the status code and the
service's error text. IsStatus tests for a status.

# Thread Safety

Sessions are safe for concurrent use.
*/
package clocksdk
