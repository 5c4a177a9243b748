package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/metrics"
	"github.com/aussiebroadwan/clockin/internal/clockin/store"
	"github.com/aussiebroadwan/clockin/pkg/cryptox"
	"github.com/aussiebroadwan/clockin/pkg/idx"
)

const (
	DefaultLinkTTL     = 5 * time.Minute
	DefaultRecoveryTTL = time.Hour
)

// ErrLinkRejected is returned for every redemption failure so a caller
// cannot tell an unknown token from a spent or mismatched one.
var ErrLinkRejected = errors.New("login link rejected")

// LinkIssuer mints single use login credentials and redeems them. Only the
// fingerprint of a credential is stored.
type LinkIssuer struct {
	Links       store.LinkStore
	TTL         time.Duration
	RecoveryTTL time.Duration
	Metrics     *metrics.Metrics

	// Now is overridden in tests.
	Now func() time.Time
}

func (s *LinkIssuer) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *LinkIssuer) ttl(t domain.LinkType) time.Duration {
	if t == domain.LinkTypeRecovery {
		if s.RecoveryTTL > 0 {
			return s.RecoveryTTL
		}
		return DefaultRecoveryTTL
	}
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultLinkTTL
}

// Mint stores a new link for p and returns the opaque credential. The
// credential is what clients send back as token_hash.
func (s *LinkIssuer) Mint(ctx context.Context, p domain.Profile, t domain.LinkType, method domain.LoginMethod) (string, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", fmt.Errorf("generate link token: %w", err)
	}

	now := s.now()
	link := domain.LoginLink{
		ID:        idx.NewAt(now).String(),
		UserID:    p.ID,
		Email:     p.Email,
		TokenHash: cryptox.FingerprintToken(token),
		Type:      t,
		Method:    method,
		ExpiresAt: now.Add(s.ttl(t)),
		CreatedAt: now,
	}
	if err := s.Links.CreateLink(ctx, link); err != nil {
		return "", fmt.Errorf("store link: %w", err)
	}

	s.Metrics.LinkIssued(string(t))
	return token, nil
}

// Discard spends the link behind token without redeeming it. A link that
// is already spent or expired is not an error.
func (s *LinkIssuer) Discard(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	_, err := s.Links.ConsumeLink(ctx, cryptox.FingerprintToken(token), s.now())
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("discard link: %w", err)
	}
	return nil
}

// Redeem consumes the link behind token. The link is spent even when email
// or type do not match, so a leaked credential cannot be probed.
func (s *LinkIssuer) Redeem(ctx context.Context, email, token string, t domain.LinkType) (domain.LoginLink, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		s.Metrics.LinkRedeemed("rejected")
		return domain.LoginLink{}, ErrLinkRejected
	}

	link, err := s.Links.ConsumeLink(ctx, cryptox.FingerprintToken(token), s.now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.Metrics.LinkRedeemed("rejected")
			return domain.LoginLink{}, ErrLinkRejected
		}
		s.Metrics.LinkRedeemed("error")
		return domain.LoginLink{}, fmt.Errorf("consume link: %w", err)
	}

	if link.Type != t || !strings.EqualFold(link.Email, strings.TrimSpace(email)) {
		s.Metrics.LinkRedeemed("mismatch")
		return domain.LoginLink{}, ErrLinkRejected
	}

	s.Metrics.LinkRedeemed("ok")
	return link, nil
}
