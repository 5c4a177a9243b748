package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/clockin/internal/clockin/badge"
	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/metrics"
	"github.com/aussiebroadwan/clockin/internal/clockin/store"
	"github.com/aussiebroadwan/clockin/pkg/cryptox"
	"github.com/aussiebroadwan/clockin/pkg/slogx"
)

const (
	msgQRRequired          = "QR token is required"
	msgInvalidQR           = "Invalid QR code"
	msgStaffNumberRequired = "Staff number is required"
	msgInvalidStaffNumber  = "Invalid staff number"
	msgLinkFailed          = "Failed to generate login link"
	msgVerificationFailed  = "Verification failed"
	msgInvalidCredentials  = "Invalid email or password"
)

// LoginService checks sign in credentials. Badge and staff number logins
// return a one-time link that the client redeems with Verify.
type LoginService struct {
	Store    store.Store
	Links    *LinkIssuer
	Tokens   *TokenService
	Activity *ActivityService
	Metrics  *metrics.Metrics
}

// LoginWithQR resolves the scanned badge token to a one-time link.
func (s *LoginService) LoginWithQR(ctx context.Context, qrToken string, client ClientInfo) (domain.LoginGrant, error) {
	qrToken = strings.TrimSpace(qrToken)
	if qrToken == "" {
		return domain.LoginGrant{}, invalid(msgQRRequired)
	}
	// Malformed tokens fail like unknown ones without touching the store
	if !badge.ValidToken(qrToken) {
		s.Metrics.LoginAttempt(string(domain.LoginMethodQR), "unknown")
		return domain.LoginGrant{}, unauthorized(msgInvalidQR)
	}

	p, err := s.Store.Profiles().GetProfileByQRToken(ctx, strings.ToLower(qrToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.Metrics.LoginAttempt(string(domain.LoginMethodQR), "unknown")
			return domain.LoginGrant{}, unauthorized(msgInvalidQR)
		}
		return domain.LoginGrant{}, upstream(msgInternal, err)
	}

	return s.grant(ctx, p, domain.LoginMethodQR, client)
}

// LoginWithStaffNumber resolves a staff number, matched case-insensitively,
// to a one-time link.
func (s *LoginService) LoginWithStaffNumber(ctx context.Context, staffNumber string, client ClientInfo) (domain.LoginGrant, error) {
	staffNumber = strings.ToUpper(strings.TrimSpace(staffNumber))
	if staffNumber == "" {
		return domain.LoginGrant{}, invalid(msgStaffNumberRequired)
	}

	p, err := s.Store.Profiles().GetProfileByStaffNumber(ctx, staffNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.Metrics.LoginAttempt(string(domain.LoginMethodStaffID), "unknown")
			return domain.LoginGrant{}, unauthorized(msgInvalidStaffNumber)
		}
		return domain.LoginGrant{}, upstream(msgInternal, err)
	}

	return s.grant(ctx, p, domain.LoginMethodStaffID, client)
}

func (s *LoginService) grant(
	ctx context.Context,
	p domain.Profile,
	method domain.LoginMethod,
	client ClientInfo,
) (domain.LoginGrant, error) {
	l := slogx.FromContext(ctx)

	if !p.IsApproved {
		s.Metrics.LoginAttempt(string(method), "pending")
		s.Activity.Record(ctx, p.ID, method, client, false, "account pending approval")
		return domain.LoginGrant{}, forbidden(msgPendingApproval)
	}

	role, err := RoleOf(ctx, s.Store.Roles(), p.ID)
	if err != nil {
		return domain.LoginGrant{}, upstream(msgInternal, err)
	}

	token, err := s.Links.Mint(ctx, p, domain.LinkTypeMagicLink, method)
	if err != nil {
		l.Error("failed to mint login link", slog.String("user_id", p.ID), slog.Any("error", err))
		s.Metrics.LoginAttempt(string(method), "error")
		return domain.LoginGrant{}, upstream(msgLinkFailed, err)
	}

	s.Metrics.LoginAttempt(string(method), "granted")
	return domain.LoginGrant{
		UserID:    p.ID,
		Email:     p.Email,
		TokenHash: token,
		Type:      domain.LinkTypeMagicLink,
		FullName:  p.FullName,
		Role:      role,
	}, nil
}

// Verify redeems a magic link for a session. Every rejection of the link
// itself reads the same.
func (s *LoginService) Verify(
	ctx context.Context,
	email, token string,
	linkType domain.LinkType,
	client ClientInfo,
) (Session, error) {
	if linkType != domain.LinkTypeMagicLink {
		return Session{}, unauthorized(msgVerificationFailed)
	}

	link, err := s.Links.Redeem(ctx, email, token, linkType)
	if err != nil {
		if errors.Is(err, ErrLinkRejected) {
			return Session{}, unauthorized(msgVerificationFailed)
		}
		return Session{}, upstream(msgInternal, err)
	}

	p, err := s.Store.Profiles().GetProfileByID(ctx, link.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Session{}, unauthorized(msgVerificationFailed)
		}
		return Session{}, upstream(msgInternal, err)
	}

	return s.startSession(ctx, p, link.Method, client)
}

// LoginWithPassword signs in with email and password.
func (s *LoginService) LoginWithPassword(ctx context.Context, email, password string, client ClientInfo) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, invalid("Email and password are required")
	}

	p, err := s.Store.Profiles().GetProfileByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.Metrics.LoginAttempt(string(domain.LoginMethodPassword), "unknown")
			return Session{}, unauthorized(msgInvalidCredentials)
		}
		return Session{}, upstream(msgInternal, err)
	}

	if err := cryptox.VerifyPassword(password, p.PasswordHash); err != nil {
		s.Metrics.LoginAttempt(string(domain.LoginMethodPassword), "rejected")
		s.Activity.Record(ctx, p.ID, domain.LoginMethodPassword, client, false, "wrong password")
		return Session{}, unauthorized(msgInvalidCredentials)
	}

	return s.startSession(ctx, p, domain.LoginMethodPassword, client)
}

func (s *LoginService) startSession(
	ctx context.Context,
	p domain.Profile,
	method domain.LoginMethod,
	client ClientInfo,
) (Session, error) {
	if !p.IsApproved {
		s.Metrics.LoginAttempt(string(method), "pending")
		s.Activity.Record(ctx, p.ID, method, client, false, "account pending approval")
		return Session{}, forbidden(msgPendingApproval)
	}

	role, err := RoleOf(ctx, s.Store.Roles(), p.ID)
	if err != nil {
		return Session{}, upstream(msgInternal, err)
	}

	sess, err := s.Tokens.IssueSession(ctx, p, role, method)
	if err != nil {
		return Session{}, upstream(msgInternal, err)
	}

	s.Metrics.LoginAttempt(string(method), "success")
	s.Activity.Record(ctx, p.ID, method, client, true, "")
	slogx.FromContext(ctx).Info("user signed in",
		slog.String("user_id", p.ID),
		slog.String("method", string(method)),
		slog.String("session_id", sess.Tokens.SessionID),
	)
	return sess, nil
}
