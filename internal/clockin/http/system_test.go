package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/clockin/pkg/clocksdk"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	ctx := context.Background()

	live, err := srv.client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := srv.client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Signer)

	jwks, err := srv.client.GetJWKS(ctx)
	require.NoError(t, err)
	require.Len(t, jwks.Keys, 1)
	require.Equal(t, "EdDSA", jwks.Keys[0].Alg)
}

func TestReadyzReportsDatabaseDown(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	require.NoError(t, srv.store.Close())

	resp, body := srv.do(t, http.MethodGet, "/readyz", "", "")
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	require.Contains(t, body, `"status":"degraded"`)
}

func TestCORS(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	t.Run("preflight", func(t *testing.T) {
		resp, body := srv.do(t, http.MethodOptions, "/v1/admin/password-requests/process", "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Empty(t, body)
		require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
		require.Equal(t, "authorization, x-client-info, apikey, content-type",
			resp.Header.Get("Access-Control-Allow-Headers"))
	})

	t.Run("errors carry the headers", func(t *testing.T) {
		resp, _ := srv.do(t, http.MethodPost, "/v1/admin/password-requests/process", "", "{}")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	})
}

func TestBootstrap(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	ctx := context.Background()
	req := clocksdk.BootstrapRequest{Email: "root@example.com", Password: "admin-pass", FullName: "Root"}

	_, err := srv.client.Bootstrap(ctx, "wrong", req)
	requireAPIError(t, err, http.StatusUnauthorized, "Invalid bootstrap token")

	resp, err := srv.client.Bootstrap(ctx, testBootstrapToken, req)
	require.NoError(t, err)
	require.NotEmpty(t, resp.AdminUserID)

	_, err = srv.client.Bootstrap(ctx, testBootstrapToken, req)
	requireAPIError(t, err, http.StatusConflict, "System has already been bootstrapped")

	sess, err := srv.client.LoginWithPassword(ctx, "root@example.com", "admin-pass")
	require.NoError(t, err)
	require.Equal(t, resp.AdminUserID, sess.UserID())
	require.Equal(t, "/admin", sess.Route())
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	_, err := srv.client.GetLiveness(context.Background())
	require.NoError(t, err)

	resp, body := srv.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, `clockin_http_requests_total{method="GET",route="GET /livez",status="200"} 1`)
}

func TestSwaggerDocs(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp, body := srv.do(t, http.MethodGet, "/swagger/doc.json", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "/v1/login/qr")
}
