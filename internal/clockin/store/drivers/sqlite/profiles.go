package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/store"
	"github.com/aussiebroadwan/clockin/internal/clockin/store/drivers/sqlite/gen"
)

type profilesRepo struct {
	q *gen.Queries
}

func (r *profilesRepo) CreateProfile(ctx context.Context, p domain.Profile) error {
	err := r.q.CreateProfile(ctx, gen.CreateProfileParams{
		ID:           p.ID,
		Email:        p.Email,
		FullName:     p.FullName,
		Department:   mapStringNull(p.Department),
		StaffNumber:  mapStringNull(p.StaffNumber),
		QrCode:       p.QRCode,
		QrToken:      p.QRToken,
		PasswordHash: p.PasswordHash,
		IsApproved:   p.IsApproved,
		WorkStatus:   string(p.WorkStatus),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	})
	return mapConstraint(err)
}

func (r *profilesRepo) GetProfileByID(ctx context.Context, id string) (domain.Profile, error) {
	row, err := r.q.GetProfileByID(ctx, id)
	if err != nil {
		return domain.Profile{}, mapNotFound(err)
	}
	return mapProfile(row), nil
}

func (r *profilesRepo) GetProfileByEmail(ctx context.Context, email string) (domain.Profile, error) {
	row, err := r.q.GetProfileByEmail(ctx, email)
	if err != nil {
		return domain.Profile{}, mapNotFound(err)
	}
	return mapProfile(row), nil
}

func (r *profilesRepo) GetProfileByQRToken(ctx context.Context, token string) (domain.Profile, error) {
	row, err := r.q.GetProfileByQRToken(ctx, token)
	if err != nil {
		return domain.Profile{}, mapNotFound(err)
	}
	return mapProfile(row), nil
}

func (r *profilesRepo) GetProfileByStaffNumber(ctx context.Context, staffNumber string) (domain.Profile, error) {
	row, err := r.q.GetProfileByStaffNumber(ctx, staffNumber)
	if err != nil {
		return domain.Profile{}, mapNotFound(err)
	}
	return mapProfile(row), nil
}

func (r *profilesRepo) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	rows, err := r.q.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.Profile, len(rows))
	for i, row := range rows {
		profiles[i] = mapProfile(row)
	}
	return profiles, nil
}

func (r *profilesRepo) UpdateProfileDetails(ctx context.Context, p domain.Profile) error {
	n, err := r.q.UpdateProfileDetails(ctx, gen.UpdateProfileDetailsParams{
		FullName:    p.FullName,
		Department:  mapStringNull(p.Department),
		StaffNumber: mapStringNull(p.StaffNumber),
		UpdatedAt:   p.UpdatedAt,
		ID:          p.ID,
	})
	return expectOne(n, mapConstraint(err), store.ErrNotFound)
}

func (r *profilesRepo) SetApproved(ctx context.Context, id string, at time.Time) error {
	n, err := r.q.ApproveProfile(ctx, gen.ApproveProfileParams{UpdatedAt: at, ID: id})
	return expectOne(n, err, store.ErrNotFound)
}

func (r *profilesRepo) SetWorkStatus(
	ctx context.Context,
	id string,
	status domain.WorkStatus,
	at time.Time,
) error {
	n, err := r.q.UpdateProfileWorkStatus(ctx, gen.UpdateProfileWorkStatusParams{
		WorkStatus: string(status),
		UpdatedAt:  at,
		ID:         id,
	})
	return expectOne(n, err, store.ErrNotFound)
}

func (r *profilesRepo) SetQRPair(ctx context.Context, id string, pair domain.QRPair, at time.Time) error {
	n, err := r.q.UpdateProfileQRPair(ctx, gen.UpdateProfileQRPairParams{
		QrCode:    pair.Code,
		QrToken:   pair.Token,
		UpdatedAt: at,
		ID:        id,
	})
	return expectOne(n, mapConstraint(err), store.ErrNotFound)
}

func (r *profilesRepo) SetPasswordHash(ctx context.Context, id, hash string, at time.Time) error {
	n, err := r.q.UpdateProfilePasswordHash(ctx, gen.UpdateProfilePasswordHashParams{
		PasswordHash: hash,
		UpdatedAt:    at,
		ID:           id,
	})
	return expectOne(n, err, store.ErrNotFound)
}

// DeleteProfile relies on ON DELETE CASCADE for the dependent tables.
func (r *profilesRepo) DeleteProfile(ctx context.Context, id string) error {
	n, err := r.q.DeleteProfile(ctx, id)
	return expectOne(n, err, store.ErrNotFound)
}
