package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/store"
	"github.com/aussiebroadwan/clockin/pkg/cryptox"
	"github.com/aussiebroadwan/clockin/pkg/idx"
	"github.com/aussiebroadwan/clockin/pkg/jwtx"
	"github.com/aussiebroadwan/clockin/pkg/slogx"
)

const amrRefresh = "refresh"

const msgInvalidRefresh = "Invalid refresh token"

// TokenService mints access tokens and the rotating refresh tokens behind
// them.
type TokenService struct {
	KeyManager *jwtx.KeyManager
	Store      store.Store
	Issuer     string
	Audience   []string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Now is overridden in tests.
	Now func() time.Time
}

// Session is a freshly issued token pair with the caller's resolved role.
type Session struct {
	Tokens domain.TokenPair
	UserID string
	Role   domain.Role
}

// Redirect is the client route for this session.
func (s Session) Redirect() string { return s.Role.HomeRoute() }

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *TokenService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

func (s *TokenService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return jwtx.DefaultRefreshTokenTTL
}

// IssueSession starts a new session for p.
func (s *TokenService) IssueSession(
	ctx context.Context,
	p domain.Profile,
	role domain.Role,
	method domain.LoginMethod,
) (Session, error) {
	now := s.now()
	sessionID := idx.NewAt(now).String()
	amr := []string{string(method)}

	access, err := s.signAccess(p, role, sessionID, amr, now)
	if err != nil {
		return Session{}, err
	}

	refreshOpaque, refresh, err := s.newRefresh(p.ID, sessionID, method, now)
	if err != nil {
		return Session{}, err
	}
	if err := s.Store.RefreshTokens().CreateRefreshToken(ctx, refresh); err != nil {
		return Session{}, err
	}

	return Session{
		Tokens: domain.TokenPair{
			AccessToken:  access,
			RefreshToken: refreshOpaque,
			ExpiresIn:    s.accessTTL(),
			SessionID:    sessionID,
		},
		UserID: p.ID,
		Role:   role,
	}, nil
}

// Refresh rotates refreshOpaque into a new pair. Presenting a token that
// was already rotated revokes its whole session.
func (s *TokenService) Refresh(ctx context.Context, refreshOpaque string) (Session, error) {
	l := slogx.FromContext(ctx)
	now := s.now()

	refreshOpaque = strings.TrimSpace(refreshOpaque)
	if refreshOpaque == "" {
		return Session{}, invalid("Refresh token is required")
	}

	fp := cryptox.FingerprintToken(refreshOpaque)
	rt, err := s.Store.RefreshTokens().GetRefreshTokenByHash(ctx, fp)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Session{}, unauthorized(msgInvalidRefresh)
		}
		return Session{}, upstream(msgInternal, err)
	}

	if rt.Revoked {
		l.Warn("revoked refresh token presented, revoking session", slog.String("session_id", rt.SessionID))
		if err := s.Store.RefreshTokens().RevokeSession(ctx, rt.SessionID, now); err != nil {
			l.Error("failed to revoke session", slog.Any("error", err))
		}
		return Session{}, unauthorized(msgInvalidRefresh)
	}
	if now.After(rt.ExpiresAt) {
		return Session{}, unauthorized(msgInvalidRefresh)
	}

	p, err := s.Store.Profiles().GetProfileByID(ctx, rt.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Session{}, unauthorized(msgInvalidRefresh)
		}
		return Session{}, upstream(msgInternal, err)
	}
	if !p.IsApproved {
		return Session{}, forbidden(msgPendingApproval)
	}

	role, err := RoleOf(ctx, s.Store.Roles(), p.ID)
	if err != nil {
		return Session{}, upstream(msgInternal, err)
	}

	access, err := s.signAccess(p, role, rt.SessionID, []string{string(rt.Method), amrRefresh}, now)
	if err != nil {
		return Session{}, upstream(msgInternal, err)
	}
	newOpaque, next, err := s.newRefresh(p.ID, rt.SessionID, rt.Method, now)
	if err != nil {
		return Session{}, upstream(msgInternal, err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.RefreshTokens().RevokeRefreshToken(ctx, fp, now); err != nil {
			return err
		}
		return tx.RefreshTokens().CreateRefreshToken(ctx, next)
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			// Lost a race with another rotation of the same token
			return Session{}, unauthorized(msgInvalidRefresh)
		}
		return Session{}, upstream(msgInternal, err)
	}

	return Session{
		Tokens: domain.TokenPair{
			AccessToken:  access,
			RefreshToken: newOpaque,
			ExpiresIn:    s.accessTTL(),
			SessionID:    rt.SessionID,
		},
		UserID: p.ID,
		Role:   role,
	}, nil
}

// Logout revokes every refresh token of the session. Access tokens already
// handed out stay valid until they expire.
func (s *TokenService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return invalid("Session is required")
	}
	if err := s.Store.RefreshTokens().RevokeSession(ctx, sessionID, s.now()); err != nil {
		return upstream(msgInternal, err)
	}
	return nil
}

func (s *TokenService) signAccess(
	p domain.Profile,
	role domain.Role,
	sessionID string,
	amr []string,
	now time.Time,
) (string, error) {
	return s.KeyManager.Signer().Sign(jwtx.NewAccessClaims(jwtx.AccessParams{
		Subject:   p.ID,
		SessionID: sessionID,
		Role:      string(role),
		Name:      p.FullName,
		AMR:       amr,
		Issuer:    s.Issuer,
		Audience:  s.Audience,
		TTL:       s.accessTTL(),
		Now:       now,
	}))
}

func (s *TokenService) newRefresh(
	userID, sessionID string,
	method domain.LoginMethod,
	now time.Time,
) (string, domain.RefreshToken, error) {
	opaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", domain.RefreshToken{}, err
	}
	return opaque, domain.RefreshToken{
		ID:        idx.NewAt(now).String(),
		UserID:    userID,
		TokenHash: cryptox.FingerprintToken(opaque),
		SessionID: sessionID,
		Method:    method,
		ExpiresAt: now.Add(s.refreshTTL()),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// RoleOf loads the role of userID, defaulting to staff when none is set.
func RoleOf(ctx context.Context, roles store.Roles, userID string) (domain.Role, error) {
	role, err := roles.GetRole(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.RoleStaff, nil
		}
		return "", err
	}
	return role, nil
}
