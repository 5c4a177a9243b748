package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/mailer"
	"github.com/aussiebroadwan/clockin/internal/clockin/metrics"
	"github.com/aussiebroadwan/clockin/internal/clockin/store"
	"github.com/aussiebroadwan/clockin/pkg/cryptox"
	"github.com/aussiebroadwan/clockin/pkg/idx"
	"github.com/aussiebroadwan/clockin/pkg/slogx"
)

const (
	msgAlreadyPending    = "You already have a pending request"
	msgOnlyAdmins        = "Only admins can process password requests"
	msgRequestNotFound   = "Request not found"
	msgAlreadyProcessed  = "Request has already been processed"
	msgResetEmailFailed  = "Failed to send password reset email"
	msgInvalidAction     = "Invalid action"
	msgApproved          = "Request approved. Password reset email sent to user."
	msgRejected          = "Request rejected."
	msgResetLinkRejected = "Invalid or expired reset link"
)

// PasswordRequestService handles staff asking for a password reset and
// admins deciding on it.
type PasswordRequestService struct {
	Store     store.Store
	Links     *LinkIssuer
	Mailer    mailer.Mailer
	PublicURL string
	Metrics   *metrics.Metrics

	// Now is overridden in tests.
	Now func() time.Time
}

func (s *PasswordRequestService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Submit files a pending request for userID. A user has at most one
// pending request.
func (s *PasswordRequestService) Submit(ctx context.Context, userID, reason string) (domain.PasswordRequest, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.PasswordRequest{}, invalid("Please provide a reason for your request")
	}

	pending, err := s.Store.PasswordRequests().HasPendingRequest(ctx, userID)
	if err != nil {
		return domain.PasswordRequest{}, upstream(msgInternal, err)
	}
	if pending {
		return domain.PasswordRequest{}, conflict(msgAlreadyPending)
	}

	now := s.now()
	req := domain.PasswordRequest{
		ID:          idx.NewAt(now).String(),
		UserID:      userID,
		Reason:      reason,
		Status:      domain.RequestPending,
		RequestedAt: now,
	}
	if err := s.Store.PasswordRequests().CreateRequest(ctx, req); err != nil {
		// The partial unique index catches a concurrent submission
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.PasswordRequest{}, conflict(msgAlreadyPending)
		}
		return domain.PasswordRequest{}, upstream(msgInternal, err)
	}

	slogx.FromContext(ctx).Info("password change requested", slog.String("request_id", req.ID))
	return req, nil
}

func (s *PasswordRequestService) ListMine(ctx context.Context, userID string) ([]domain.PasswordRequest, error) {
	reqs, err := s.Store.PasswordRequests().ListRequestsForUser(ctx, userID)
	if err != nil {
		return nil, upstream(msgInternal, err)
	}
	return reqs, nil
}

// ListAll returns requests with their requester, optionally filtered by
// status.
func (s *PasswordRequestService) ListAll(ctx context.Context, status string) ([]domain.PasswordRequest, error) {
	st := domain.RequestStatus(strings.ToLower(strings.TrimSpace(status)))
	if st != "" && !st.Valid() {
		return nil, invalid("Invalid status")
	}
	reqs, err := s.Store.PasswordRequests().ListRequests(ctx, st)
	if err != nil {
		return nil, upstream(msgInternal, err)
	}
	return reqs, nil
}

// ProcessInput is an admin decision on a request.
type ProcessInput struct {
	RequestID  string
	Action     domain.RequestAction
	AdminNotes string
}

// Process approves or rejects a pending request on behalf of caller and
// returns the confirmation message. On approval the reset email goes out
// before the decision is written, so a failed send leaves the request
// pending. When the decision loses to another admin the mailed link is
// spent.
func (s *PasswordRequestService) Process(ctx context.Context, caller domain.Session, in ProcessInput) (string, error) {
	l := slogx.FromContext(ctx)

	if !caller.Role.IsAdmin() {
		return "", forbidden(msgOnlyAdmins)
	}

	status, ok := in.Action.Status()
	if !ok {
		return "", invalid(msgInvalidAction)
	}

	if strings.TrimSpace(in.RequestID) == "" {
		return "", notFound(msgRequestNotFound)
	}
	req, err := s.Store.PasswordRequests().GetRequest(ctx, in.RequestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", notFound(msgRequestNotFound)
		}
		return "", upstream(msgInternal, err)
	}
	if req.Status != domain.RequestPending {
		s.Metrics.PasswordDecision(string(in.Action), "already_processed")
		return "", conflict(msgAlreadyProcessed)
	}

	// token is the recovery link mailed on approval. It is spent again if
	// the decision cannot be written.
	var token string
	if status == domain.RequestApproved {
		token, err = s.sendReset(ctx, req.UserID)
		if err != nil {
			l.Error("failed to send password reset email",
				slog.String("request_id", req.ID),
				slog.Any("error", err),
			)
			s.discardReset(ctx, req.ID, token)
			s.Metrics.PasswordDecision(string(in.Action), "email_failed")
			return "", upstream(msgResetEmailFailed, err)
		}
	}

	err = s.Store.PasswordRequests().ResolveRequest(ctx, domain.Resolution{
		RequestID:  req.ID,
		Status:     status,
		ResolvedBy: caller.UserID,
		AdminNotes: strings.TrimSpace(in.AdminNotes),
		ResolvedAt: s.now(),
	})
	if err != nil {
		s.discardReset(ctx, req.ID, token)
		if errors.Is(err, store.ErrConflict) {
			s.Metrics.PasswordDecision(string(in.Action), "already_processed")
			return "", conflict(msgAlreadyProcessed)
		}
		return "", upstream(msgInternal, err)
	}

	s.Metrics.PasswordDecision(string(in.Action), "ok")
	l.Info("password request processed",
		slog.String("request_id", req.ID),
		slog.String("status", string(status)),
		slog.String("resolved_by", caller.UserID),
	)

	if status == domain.RequestApproved {
		return msgApproved, nil
	}
	return msgRejected, nil
}

// sendReset mints a recovery link for the requester and mails it. The
// token is returned even when the send fails so the caller can spend it.
func (s *PasswordRequestService) sendReset(ctx context.Context, userID string) (string, error) {
	p, err := s.Store.Profiles().GetProfileByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load requester: %w", err)
	}

	token, err := s.Links.Mint(ctx, p, domain.LinkTypeRecovery, domain.LoginMethodPassword)
	if err != nil {
		return "", err
	}

	return token, s.Mailer.SendPasswordReset(ctx, mailer.PasswordReset{
		To:       p.Email,
		FullName: p.FullName,
		Link:     mailer.ResetLink(s.PublicURL, p.Email, token),
	})
}

func (s *PasswordRequestService) discardReset(ctx context.Context, requestID, token string) {
	if err := s.Links.Discard(ctx, token); err != nil {
		slogx.FromContext(ctx).Warn("failed to discard recovery link",
			slog.String("request_id", requestID),
			slog.Any("error", err),
		)
	}
}

// ResetPassword redeems a recovery link and sets a new password. Every
// open session of the user is signed out.
func (s *PasswordRequestService) ResetPassword(ctx context.Context, email, token, password string) error {
	if err := cryptox.ValidatePassword(password); err != nil {
		return invalid(fmt.Sprintf("Password must be at least %d characters", cryptox.MinPasswordLength))
	}

	link, err := s.Links.Redeem(ctx, email, token, domain.LinkTypeRecovery)
	if err != nil {
		if errors.Is(err, ErrLinkRejected) {
			return unauthorized(msgResetLinkRejected)
		}
		return upstream(msgInternal, err)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return upstream(msgInternal, err)
	}

	now := s.now()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Profiles().SetPasswordHash(ctx, link.UserID, hash, now); err != nil {
			return err
		}
		return tx.RefreshTokens().RevokeUserRefreshTokens(ctx, link.UserID, now)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return unauthorized(msgResetLinkRejected)
		}
		return upstream(msgInternal, err)
	}

	slogx.FromContext(ctx).Info("password reset", slog.String("user_id", link.UserID))
	return nil
}
