package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/clockin/pkg/httpx"
	"github.com/aussiebroadwan/clockin/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestCORSPreflight(t *testing.T) {
	called := false
	h := httpx.CORS("")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/v1/login/qr", nil))

	require.False(t, called, "preflight must not reach the handler")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Body.String())
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "authorization, x-client-info, apikey, content-type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORSHeadersOnErrors(t *testing.T) {
	h := httpx.CORS("https://staff.example.org")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusUnauthorized, "Invalid QR code")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/login/qr", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "https://staff.example.org", rec.Header().Get("Access-Control-Allow-Origin"))
	require.JSONEq(t, `{"error":"Invalid QR code"}`, rec.Body.String())
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler, mw("a"), mw("b"), mw("c"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"a", "b", "c"}, order)
}

func TestAuthnMiddleware(t *testing.T) {
	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{Issuer: "clockin-test"})
	require.NoError(t, err)

	token, err := km.Signer().Sign(jwtx.NewAccessClaims(jwtx.AccessParams{
		Subject: "user-1",
		Issuer:  "clockin-test",
	}))
	require.NoError(t, err)

	var seen string
	h := httpx.AuthnMiddleware(km.Verifier, http.StatusUnauthorized)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = httpx.UserIDFromContext(r.Context())
	}))

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"valid", "Bearer " + token, http.StatusOK},
		{"lowercase scheme", "bearer " + token, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"tampered", "Bearer " + strings.TrimSuffix(token, token[len(token)-4:]) + "AAAA", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusOK {
				require.Equal(t, "user-1", seen)
			} else {
				require.Empty(t, seen)
				require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var body struct {
		QRToken string `json:"qr_token"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"qr_token":"abc"}`))
	require.NoError(t, httpx.DecodeJSON(req, &body))
	require.Equal(t, "abc", body.QRToken)

	body.QRToken = ""
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	require.NoError(t, httpx.DecodeJSON(req, &body))
	require.Empty(t, body.QRToken)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"qr_token":`))
	require.Error(t, httpx.DecodeJSON(req, &body))
}
