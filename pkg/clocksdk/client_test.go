package clocksdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLoginWithQR(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/login/qr", func(w http.ResponseWriter, r *http.Request) {
		var req QRLoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.QRToken != "badge-1" {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Invalid QR code"})
			return
		}
		writeJSON(w, http.StatusOK, LoginGrantResponse{
			Success: true, Email: "ana@example.com", TokenHash: "otp", Type: "magiclink", Role: "staff",
		})
	})
	mux.HandleFunc("POST /v1/login/verify", func(w http.ResponseWriter, r *http.Request) {
		var req VerifyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "ana@example.com", req.Email)
		require.Equal(t, "magiclink", req.Type)
		writeJSON(w, http.StatusOK, SessionResponse{
			AccessToken: "at", RefreshToken: "rt", TokenType: "Bearer", ExpiresIn: 900,
			UserID: "u1", Role: "staff", Redirect: "/dashboard",
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL + "/")

	t.Run("valid badge", func(t *testing.T) {
		sess, err := client.LoginWithQR(context.Background(), "badge-1")
		require.NoError(t, err)
		require.Equal(t, "u1", sess.UserID())
		require.Equal(t, "staff", sess.Role())
		require.Equal(t, "/dashboard", sess.Route())
		require.Equal(t, "at", sess.AccessToken())
		require.Equal(t, "rt", sess.RefreshToken())
	})

	t.Run("unknown badge", func(t *testing.T) {
		_, err := client.LoginWithQR(context.Background(), "nope")
		require.True(t, IsStatus(err, http.StatusUnauthorized))

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, "Invalid QR code", apiErr.Message)
	})
}

func TestVerifyRejected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired login link"})
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient(srv.URL).Verify(context.Background(), VerifyRequest{Email: "a@b.c", TokenHash: "x", Type: "magiclink"})
	require.ErrorIs(t, err, ErrVerificationFailed)
}

func TestSessionRefreshesExpiredToken(t *testing.T) {
	t.Parallel()

	var refreshes atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/token/refresh", func(w http.ResponseWriter, r *http.Request) {
		var req RefreshRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "rt-old", req.RefreshToken)
		refreshes.Add(1)
		writeJSON(w, http.StatusOK, SessionResponse{
			AccessToken: "at-new", RefreshToken: "rt-new", ExpiresIn: 900, UserID: "u1", Role: "admin", Redirect: "/admin",
		})
	})
	mux.HandleFunc("GET /v1/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-new" {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
			return
		}
		writeJSON(w, http.StatusOK, ProfileResponse{ID: "u1", Email: "ana@example.com", Role: "admin"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	// ExpiresIn of zero is already inside the refresh buffer
	sess := NewClient(srv.URL).NewSessionFromTokens(SessionResponse{
		AccessToken: "at-old", RefreshToken: "rt-old", ExpiresIn: 0, UserID: "u1", Role: "admin",
	})

	p, err := sess.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "u1", p.ID)
	require.Equal(t, "rt-new", sess.RefreshToken())
	require.Equal(t, "/admin", sess.Route())

	// The new token is fresh, no second refresh
	_, err = sess.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, int32(1), refreshes.Load())
}

func TestSessionAdminCalls(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /v1/admin/staff/{id}", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "u 2", r.PathValue("id"))
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /v1/admin/login-activity", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "qr", q.Get("method"))
		require.Equal(t, "7days", q.Get("range"))
		require.Equal(t, "2", q.Get("page"))
		writeJSON(w, http.StatusOK, LoginActivityPage{Page: 2, PageSize: 10, Total: 11, TotalPages: 2})
	})
	mux.HandleFunc("POST /v1/admin/password-requests/process", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Request already processed"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	sess := NewClient(srv.URL).NewSessionFromTokens(SessionResponse{AccessToken: "at", RefreshToken: "rt", ExpiresIn: 900})
	ctx := context.Background()

	require.NoError(t, sess.DeleteStaff(ctx, "u 2"))

	page, err := sess.LoginActivity(ctx, LoginActivityQuery{Method: "qr", Range: "7days", Page: 2})
	require.NoError(t, err)
	require.Equal(t, 2, page.TotalPages)

	_, err = sess.ProcessPasswordRequest(ctx, ProcessPasswordRequest{RequestID: "r1", Action: "approve"})
	require.True(t, IsStatus(err, http.StatusBadRequest))
	require.EqualError(t, err, "clocksdk: HTTP 400: Request already processed")
}

func TestResetRequestFromLink(t *testing.T) {
	t.Parallel()

	req, err := ResetRequestFromLink(
		"https://clock.example.com/reset-password?email=ana%40example.com&token_hash=abc&type=recovery", "hunter22")
	require.NoError(t, err)
	require.Equal(t, PasswordResetRequest{Email: "ana@example.com", TokenHash: "abc", Password: "hunter22"}, req)

	_, err = ResetRequestFromLink("https://clock.example.com/reset-password?token_hash=abc&type=magiclink", "x")
	require.Error(t, err)
}

func TestRangeQuery(t *testing.T) {
	t.Parallel()

	require.Empty(t, rangeQuery("", ""))
	require.Equal(t, "?from=2024-01-01", rangeQuery("2024-01-01", ""))
	require.Equal(t, "?from=2024-01-01&to=2024-01-31", rangeQuery("2024-01-01", "2024-01-31"))
}
