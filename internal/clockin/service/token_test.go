package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestRefreshRotates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.register(t, "ato@example.com", "", true, "")

	first, err := f.tokens.IssueSession(ctx, p, domain.RoleStaff, domain.LoginMethodStaffID)
	require.NoError(t, err)

	second, err := f.tokens.Refresh(ctx, first.Tokens.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, first.Tokens.RefreshToken, second.Tokens.RefreshToken)
	require.Equal(t, first.Tokens.SessionID, second.Tokens.SessionID)

	claims, err := f.keys.Verifier.Verify(second.Tokens.AccessToken)
	require.NoError(t, err)
	require.Equal(t, []string{"staff_id", "refresh"}, claims.AMR)

	// Picks up a role change made since the first token
	require.NoError(t, f.store.Roles().SetRole(ctx, p.ID, domain.RoleAdmin))
	third, err := f.tokens.Refresh(ctx, second.Tokens.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, third.Role)
}

func TestRefreshReuseRevokesSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.register(t, "esi@example.com", "", true, "")

	first, err := f.tokens.IssueSession(ctx, p, domain.RoleStaff, domain.LoginMethodQR)
	require.NoError(t, err)
	second, err := f.tokens.Refresh(ctx, first.Tokens.RefreshToken)
	require.NoError(t, err)

	// Replaying the rotated token kills the live one too
	_, err = f.tokens.Refresh(ctx, first.Tokens.RefreshToken)
	requireKind(t, err, KindUnauthorized, msgInvalidRefresh)

	_, err = f.tokens.Refresh(ctx, second.Tokens.RefreshToken)
	requireKind(t, err, KindUnauthorized, msgInvalidRefresh)
}

func TestRefreshRejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.register(t, "nana@example.com", "", true, "")

	_, err := f.tokens.Refresh(ctx, "")
	requireKind(t, err, KindInvalid, "")

	_, err = f.tokens.Refresh(ctx, "never-issued")
	requireKind(t, err, KindUnauthorized, msgInvalidRefresh)

	expired := &TokenService{
		KeyManager: f.keys,
		Store:      f.store,
		Issuer:     testIssuer,
		RefreshTTL: time.Minute,
		Now:        func() time.Time { return time.Now().Add(-time.Hour) },
	}
	old, err := expired.IssueSession(ctx, p, domain.RoleStaff, domain.LoginMethodQR)
	require.NoError(t, err)
	_, err = f.tokens.Refresh(ctx, old.Tokens.RefreshToken)
	requireKind(t, err, KindUnauthorized, msgInvalidRefresh)
}

func TestLogoutRevokesSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.register(t, "akua@example.com", "", true, "")

	sess, err := f.tokens.IssueSession(ctx, p, domain.RoleStaff, domain.LoginMethodPassword)
	require.NoError(t, err)
	require.NoError(t, f.tokens.Logout(ctx, sess.Tokens.SessionID))

	rt, err := f.store.RefreshTokens().GetRefreshTokenByHash(ctx, cryptox.FingerprintToken(sess.Tokens.RefreshToken))
	require.NoError(t, err)
	require.True(t, rt.Revoked)

	_, err = f.tokens.Refresh(ctx, sess.Tokens.RefreshToken)
	requireKind(t, err, KindUnauthorized, msgInvalidRefresh)
}
