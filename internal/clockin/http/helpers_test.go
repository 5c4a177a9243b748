package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/mailer"
	"github.com/aussiebroadwan/clockin/internal/clockin/metrics"
	"github.com/aussiebroadwan/clockin/internal/clockin/service"
	"github.com/aussiebroadwan/clockin/internal/clockin/store/drivers/sqlite"
	"github.com/aussiebroadwan/clockin/pkg/clocksdk"
	"github.com/aussiebroadwan/clockin/pkg/jwtx"
	"github.com/aussiebroadwan/clockin/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer         = "clockin-test"
	testBootstrapToken = "bootstrap-secret"
	testPassword       = "secret-pass"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.PasswordReset
	err  error
}

func (m *fakeMailer) SendPasswordReset(_ context.Context, msg mailer.PasswordReset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) Sent() []mailer.PasswordReset {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mailer.PasswordReset(nil), m.sent...)
}

// testServer runs a fully wired router over an in-memory store. Every
// testServer has its own rate limiters.
type testServer struct {
	*httptest.Server
	store      *sqlite.Store
	mail       *fakeMailer
	profiles   *service.ProfileService
	attendance *service.AttendanceService
	client     *clocksdk.Client
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{Issuer: testIssuer, Audience: []string{"clockin"}})
	require.NoError(t, err)

	m := metrics.New()
	mail := &fakeMailer{}
	links := &service.LinkIssuer{Links: st.LoginLinks(), Metrics: m}
	tokens := &service.TokenService{KeyManager: km, Store: st, Issuer: testIssuer, Audience: []string{"clockin"}}
	activity := &service.ActivityService{Store: st}
	attendance := &service.AttendanceService{Store: st, Location: time.UTC}

	r := NewRouter(km.KeySet, km.Verifier, "test", st, slogx.Discard(), m, "*")
	r.Location = time.UTC
	r.LoginService = &service.LoginService{Store: st, Links: links, Tokens: tokens, Activity: activity, Metrics: m}
	r.TokenService = tokens
	r.ProfileService = &service.ProfileService{Store: st}
	r.StaffService = &service.StaffService{Store: st, Clock: attendance}
	r.DepartmentService = &service.DepartmentService{Store: st}
	r.AttendanceService = attendance
	r.PasswordRequestService = &service.PasswordRequestService{
		Store:     st,
		Links:     links,
		Mailer:    mail,
		PublicURL: "https://clock.example",
		Metrics:   m,
	}
	r.ActivityService = activity
	r.BootstrapService = &service.BootstrapService{Store: st, Token: testBootstrapToken}
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testServer{
		Server:     srv,
		store:      st,
		mail:       mail,
		profiles:   r.ProfileService,
		attendance: attendance,
		client:     clocksdk.NewClient(srv.URL),
	}
}

// testClock is a settable time source shared with handler goroutines.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// register creates a profile directly in the store, approving it and
// setting role when asked.
func (s *testServer) register(t *testing.T, email, staffNumber string, approved bool, role domain.Role) domain.Profile {
	t.Helper()
	ctx := context.Background()

	p, err := s.profiles.Register(ctx, service.RegisterInput{
		Email:       email,
		Password:    testPassword,
		FullName:    "User " + email,
		StaffNumber: staffNumber,
	})
	require.NoError(t, err)

	if approved {
		require.NoError(t, s.store.Profiles().SetApproved(ctx, p.ID, time.Now().UTC()))
		p.IsApproved = true
	}
	if role != "" && role != domain.RoleStaff {
		require.NoError(t, s.store.Roles().SetRole(ctx, p.ID, role))
	}
	return p
}

// login signs p in with its badge. It uses one request on each of the QR
// and verify routes.
func (s *testServer) login(t *testing.T, p domain.Profile) *clocksdk.Session {
	t.Helper()
	sess, err := s.client.LoginWithQR(context.Background(), p.QRToken)
	require.NoError(t, err)
	return sess
}

// do sends a raw request and returns the status and body.
func (s *testServer) do(t *testing.T, method, path, token, body string) (*http.Response, string) {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, s.URL+path, rd)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(b)
}

func requireErrorBody(t *testing.T, body, msg string) {
	t.Helper()
	var e clocksdk.ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(body), &e), body)
	require.Equal(t, msg, e.Error)
}

func requireAPIError(t *testing.T, err error, status int, msg string) {
	t.Helper()
	var apiErr *clocksdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	if msg != "" {
		require.Equal(t, msg, apiErr.Message)
	}
}
