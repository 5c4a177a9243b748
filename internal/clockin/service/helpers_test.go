package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/mailer"
	"github.com/aussiebroadwan/clockin/internal/clockin/metrics"
	"github.com/aussiebroadwan/clockin/internal/clockin/store"
	"github.com/aussiebroadwan/clockin/internal/clockin/store/drivers/sqlite"
	"github.com/aussiebroadwan/clockin/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "clockin-test"

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.PasswordReset
	err  error

	// onSend runs before the message is recorded.
	onSend func(mailer.PasswordReset)
}

func (m *fakeMailer) SendPasswordReset(_ context.Context, msg mailer.PasswordReset) error {
	if m.onSend != nil {
		m.onSend(msg)
	}
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

// countingLinks counts the links written through it.
type countingLinks struct {
	store.LinkStore

	mu      sync.Mutex
	created int
}

func (c *countingLinks) CreateLink(ctx context.Context, l domain.LoginLink) error {
	c.mu.Lock()
	c.created++
	c.mu.Unlock()
	return c.LinkStore.CreateLink(ctx, l)
}

func (c *countingLinks) Created() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.created
}

// fixture wires every service over one in-memory store.
type fixture struct {
	store      *sqlite.Store
	keys       *jwtx.KeyManager
	mail       *fakeMailer
	links      *LinkIssuer
	tokens     *TokenService
	activity   *ActivityService
	login      *LoginService
	profiles   *ProfileService
	requests   *PasswordRequestService
	attendance *AttendanceService
	staff      *StaffService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{Issuer: testIssuer, Audience: []string{"clockin"}})
	require.NoError(t, err)

	m := metrics.New()
	f := &fixture{store: st, keys: km, mail: &fakeMailer{}}
	f.links = &LinkIssuer{Links: st.LoginLinks(), Metrics: m}
	f.tokens = &TokenService{
		KeyManager: km,
		Store:      st,
		Issuer:     testIssuer,
		Audience:   []string{"clockin"},
	}
	f.activity = &ActivityService{Store: st}
	f.login = &LoginService{Store: st, Links: f.links, Tokens: f.tokens, Activity: f.activity, Metrics: m}
	f.profiles = &ProfileService{Store: st}
	f.requests = &PasswordRequestService{
		Store:     st,
		Links:     f.links,
		Mailer:    f.mail,
		PublicURL: "https://clock.example",
		Metrics:   m,
	}
	f.attendance = &AttendanceService{Store: st}
	f.staff = &StaffService{Store: st, Clock: f.attendance}
	return f
}

// register creates a profile, approving it and setting role when asked.
func (f *fixture) register(t *testing.T, email, staffNumber string, approved bool, role domain.Role) domain.Profile {
	t.Helper()
	ctx := context.Background()

	p, err := f.profiles.Register(ctx, RegisterInput{
		Email:       email,
		Password:    "secret-pass",
		FullName:    "User " + email,
		StaffNumber: staffNumber,
	})
	require.NoError(t, err)

	if approved {
		require.NoError(t, f.store.Profiles().SetApproved(ctx, p.ID, time.Now().UTC()))
		p.IsApproved = true
	}
	if role != "" && role != domain.RoleStaff {
		require.NoError(t, f.store.Roles().SetRole(ctx, p.ID, role))
	}
	return p
}

func requireKind(t *testing.T, err error, kind ErrorKind, msg string) {
	t.Helper()
	require.Error(t, err)
	var se *Error
	require.True(t, errors.As(err, &se), "expected *service.Error, got %T: %v", err, err)
	require.Equal(t, kind, se.Kind)
	if msg != "" {
		require.Equal(t, msg, se.Message)
	}
}
