package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/metrics"
	"github.com/aussiebroadwan/clockin/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingPurgesSpentCredentials(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.register(t, "kaya@example.com", "", true, "")

	// One used, one expired, one live link
	used, err := f.links.Mint(ctx, p, domain.LinkTypeMagicLink, domain.LoginMethodQR)
	require.NoError(t, err)
	_, err = f.links.Redeem(ctx, p.Email, used, domain.LinkTypeMagicLink)
	require.NoError(t, err)

	stale := &LinkIssuer{Links: f.store.LoginLinks(), Now: func() time.Time { return time.Now().Add(-time.Hour) }}
	_, err = stale.Mint(ctx, p, domain.LinkTypeMagicLink, domain.LoginMethodQR)
	require.NoError(t, err)

	live, err := f.links.Mint(ctx, p, domain.LinkTypeMagicLink, domain.LoginMethodQR)
	require.NoError(t, err)

	sess, err := f.tokens.IssueSession(ctx, p, domain.RoleStaff, domain.LoginMethodQR)
	require.NoError(t, err)
	require.NoError(t, f.tokens.Logout(ctx, sess.Tokens.SessionID))

	m := metrics.New()
	hk := NewHousekeepingService(f.store, nil, slogx.Discard(), m, 0)
	require.Equal(t, time.Hour, hk.Interval)
	hk.Cleanup(ctx)

	require.Equal(t, 2.0, purged(t, m, "login_links"))
	require.Equal(t, 1.0, purged(t, m, "refresh_tokens"))

	// The live link survives
	_, err = f.links.Redeem(ctx, p.Email, live, domain.LinkTypeMagicLink)
	require.NoError(t, err)
}

func TestHousekeepingStartStop(t *testing.T) {
	f := newFixture(t)
	hk := NewHousekeepingService(f.store, f.store.LoginLinks(), slogx.Discard(), nil, time.Millisecond)
	hk.Start()
	time.Sleep(5 * time.Millisecond)
	hk.Stop()
}

func purged(t *testing.T, m *metrics.Metrics, table string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "clockin_housekeeping_purged_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if lp.GetName() == "table" && lp.GetValue() == table {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}
