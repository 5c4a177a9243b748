package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/badge"
	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/store"
	"github.com/aussiebroadwan/clockin/pkg/cryptox"
	"github.com/aussiebroadwan/clockin/pkg/idx"
	"github.com/aussiebroadwan/clockin/pkg/slogx"
)

const (
	msgProfileNotFound = "Profile not found"
	msgDuplicateUser   = "An account with this email or staff number already exists"
)

// ProfileService covers registration and a user's own profile.
type ProfileService struct {
	Store store.Store

	// Now is overridden in tests.
	Now func() time.Time
}

func (s *ProfileService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

type RegisterInput struct {
	Email       string
	Password    string
	FullName    string
	Department  string
	StaffNumber string
}

// Register creates an unapproved staff profile with a fresh badge.
func (s *ProfileService) Register(ctx context.Context, in RegisterInput) (domain.Profile, error) {
	email, err := normaliseEmail(in.Email)
	if err != nil {
		return domain.Profile{}, err
	}
	if err := cryptox.ValidatePassword(in.Password); err != nil {
		return domain.Profile{}, invalid(fmt.Sprintf("Password must be at least %d characters", cryptox.MinPasswordLength))
	}
	name := strings.TrimSpace(in.FullName)
	if name == "" {
		return domain.Profile{}, invalid("Full name is required")
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.Profile{}, upstream(msgInternal, err)
	}

	now := s.now()
	id := idx.NewAt(now)
	pair, err := badge.NewQRPair(id, now)
	if err != nil {
		return domain.Profile{}, upstream(msgInternal, err)
	}

	p := domain.Profile{
		ID:           id.String(),
		Email:        email,
		FullName:     name,
		Department:   strings.TrimSpace(in.Department),
		StaffNumber:  normaliseStaffNumber(in.StaffNumber),
		QRCode:       pair.Code,
		QRToken:      pair.Token,
		PasswordHash: hash,
		WorkStatus:   domain.WorkStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Profiles().CreateProfile(ctx, p); err != nil {
			return err
		}
		return tx.Roles().SetRole(ctx, p.ID, domain.RoleStaff)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Profile{}, conflict(msgDuplicateUser)
		}
		return domain.Profile{}, upstream(msgInternal, err)
	}

	slogx.FromContext(ctx).Info("profile registered", slog.String("user_id", p.ID))
	return p, nil
}

// Get returns the profile of userID with its role.
func (s *ProfileService) Get(ctx context.Context, userID string) (domain.Profile, domain.Role, error) {
	p, err := s.Store.Profiles().GetProfileByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Profile{}, "", notFound(msgProfileNotFound)
		}
		return domain.Profile{}, "", upstream(msgInternal, err)
	}
	role, err := RoleOf(ctx, s.Store.Roles(), userID)
	if err != nil {
		return domain.Profile{}, "", upstream(msgInternal, err)
	}
	return p, role, nil
}

// Update applies the non nil fields of u to userID's profile.
func (s *ProfileService) Update(ctx context.Context, userID string, u domain.ProfileUpdate) (domain.Profile, error) {
	return updateDetails(ctx, s.Store, userID, u, s.now())
}

// Badge renders the QR image of userID's badge token.
func (s *ProfileService) Badge(ctx context.Context, userID string, size int) ([]byte, error) {
	p, err := s.Store.Profiles().GetProfileByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound(msgProfileNotFound)
		}
		return nil, upstream(msgInternal, err)
	}
	if size <= 0 {
		size = badge.DefaultImageSize
	}
	img, err := badge.PNG(p.QRToken, size)
	if err != nil {
		return nil, upstream(msgInternal, err)
	}
	return img, nil
}

func updateDetails(ctx context.Context, st store.Store, userID string, u domain.ProfileUpdate, now time.Time) (domain.Profile, error) {
	p, err := st.Profiles().GetProfileByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Profile{}, notFound(msgProfileNotFound)
		}
		return domain.Profile{}, upstream(msgInternal, err)
	}

	if u.FullName != nil {
		name := strings.TrimSpace(*u.FullName)
		if name == "" {
			return domain.Profile{}, invalid("Full name is required")
		}
		p.FullName = name
	}
	if u.Department != nil {
		p.Department = strings.TrimSpace(*u.Department)
	}
	if u.StaffNumber != nil {
		p.StaffNumber = normaliseStaffNumber(*u.StaffNumber)
	}
	p.UpdatedAt = now

	if err := st.Profiles().UpdateProfileDetails(ctx, p); err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return domain.Profile{}, conflict("Staff number is already in use")
		case errors.Is(err, store.ErrNotFound):
			return domain.Profile{}, notFound(msgProfileNotFound)
		}
		return domain.Profile{}, upstream(msgInternal, err)
	}
	return p, nil
}

func normaliseEmail(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", invalid("Email is required")
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw {
		return "", invalid("Invalid email address")
	}
	return strings.ToLower(addr.Address), nil
}

func normaliseStaffNumber(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
