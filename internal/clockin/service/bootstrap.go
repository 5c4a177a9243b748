package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/badge"
	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/store"
	"github.com/aussiebroadwan/clockin/pkg/cryptox"
	"github.com/aussiebroadwan/clockin/pkg/idx"
	"github.com/aussiebroadwan/clockin/pkg/slogx"
)

// BootstrapService creates the first admin. It is only reachable while a
// bootstrap token is configured and no admin exists.
type BootstrapService struct {
	Store store.Store
	Token string
}

func (s *BootstrapService) Enabled() bool { return s.Token != "" }

// IsBootstrapped reports whether any profile holds the admin role.
func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	profiles, err := s.Store.Profiles().ListProfiles(ctx)
	if err != nil {
		return false, err
	}
	for _, p := range profiles {
		role, err := RoleOf(ctx, s.Store.Roles(), p.ID)
		if err != nil {
			return false, err
		}
		if role.IsAdmin() {
			return true, nil
		}
	}
	return false, nil
}

// Bootstrap creates an approved admin profile from in.
func (s *BootstrapService) Bootstrap(ctx context.Context, token string, in RegisterInput) (domain.Profile, error) {
	l := slogx.FromContext(ctx)

	if !s.Enabled() {
		return domain.Profile{}, notFound("Bootstrap is not enabled")
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.Token)) != 1 {
		l.Warn("unauthorized bootstrap attempt")
		return domain.Profile{}, unauthorized("Invalid bootstrap token")
	}

	done, err := s.IsBootstrapped(ctx)
	if err != nil {
		return domain.Profile{}, upstream(msgInternal, err)
	}
	if done {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return domain.Profile{}, conflict("System has already been bootstrapped")
	}

	email, err := normaliseEmail(in.Email)
	if err != nil {
		return domain.Profile{}, err
	}
	if err := cryptox.ValidatePassword(in.Password); err != nil {
		return domain.Profile{}, invalid("Password is too short")
	}
	if in.FullName == "" {
		return domain.Profile{}, invalid("Full name is required")
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.Profile{}, upstream(msgInternal, err)
	}

	now := time.Now().UTC()
	id := idx.NewAt(now)
	pair, err := badge.NewQRPair(id, now)
	if err != nil {
		return domain.Profile{}, upstream(msgInternal, err)
	}
	p := domain.Profile{
		ID:           id.String(),
		Email:        email,
		FullName:     in.FullName,
		Department:   in.Department,
		StaffNumber:  normaliseStaffNumber(in.StaffNumber),
		QRCode:       pair.Code,
		QRToken:      pair.Token,
		PasswordHash: hash,
		IsApproved:   true,
		WorkStatus:   domain.WorkStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Profiles().CreateProfile(ctx, p); err != nil {
			return err
		}
		return tx.Roles().SetRole(ctx, p.ID, domain.RoleAdmin)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Profile{}, conflict(msgDuplicateUser)
		}
		l.Error("failed to create admin", slog.Any("error", err))
		return domain.Profile{}, upstream("Failed to create admin user", err)
	}

	l.Info("successfully bootstrapped system", slog.String("admin_user_id", p.ID))
	return p, nil
}
