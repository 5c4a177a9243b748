package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/badge"
	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/store"
	"github.com/aussiebroadwan/clockin/pkg/idx"
	"github.com/aussiebroadwan/clockin/pkg/slogx"
)

// StaffMember is one row of the admin staff table.
type StaffMember struct {
	Profile     domain.Profile
	Role        domain.Role
	ClockStatus domain.ClockStatus
	Activity    domain.Activity
	TodayWorked time.Duration
}

// StaffService is the admin view of every profile.
type StaffService struct {
	Store store.Store
	Clock *AttendanceService

	// Now is overridden in tests.
	Now func() time.Time
}

func (s *StaffService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// List returns every profile with its role and today's clock state.
func (s *StaffService) List(ctx context.Context) ([]StaffMember, error) {
	profiles, err := s.Store.Profiles().ListProfiles(ctx)
	if err != nil {
		return nil, upstream(msgInternal, err)
	}
	today, err := s.Clock.Today(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]StaffMember, 0, len(profiles))
	for _, p := range profiles {
		role, err := RoleOf(ctx, s.Store.Roles(), p.ID)
		if err != nil {
			return nil, upstream(msgInternal, err)
		}

		var open *domain.AttendanceRecord
		records := today[p.ID]
		for i := range records {
			if records[i].ClockOut == nil {
				open = &records[i]
			}
		}
		st := clockState(open, records, now)

		out = append(out, StaffMember{
			Profile:     p,
			Role:        role,
			ClockStatus: st.Status,
			Activity:    st.Activity,
			TodayWorked: st.TodayWorked,
		})
	}
	return out, nil
}

func (s *StaffService) Approve(ctx context.Context, id string) error {
	return s.mapProfileErr(s.Store.Profiles().SetApproved(ctx, id, s.now()))
}

func (s *StaffService) SetWorkStatus(ctx context.Context, id string, status domain.WorkStatus) error {
	if !status.Valid() {
		return invalid("Invalid work status")
	}
	return s.mapProfileErr(s.Store.Profiles().SetWorkStatus(ctx, id, status, s.now()))
}

// SetRole changes id's role. Admins cannot change their own role so the
// last admin cannot lock everyone out.
func (s *StaffService) SetRole(ctx context.Context, caller domain.Session, id, role string) error {
	r, ok := domain.ParseRole(role)
	if !ok {
		return invalid("Invalid role")
	}
	if id == caller.UserID {
		return invalid("You cannot change your own role")
	}
	if _, err := s.Store.Profiles().GetProfileByID(ctx, id); err != nil {
		return s.mapProfileErr(err)
	}
	if err := s.Store.Roles().SetRole(ctx, id, r); err != nil {
		return upstream(msgInternal, err)
	}

	slogx.FromContext(ctx).Info("role changed",
		slog.String("user_id", id),
		slog.String("role", string(r)),
		slog.String("changed_by", caller.UserID),
	)
	return nil
}

func (s *StaffService) Update(ctx context.Context, id string, u domain.ProfileUpdate) (domain.Profile, error) {
	return updateDetails(ctx, s.Store, id, u, s.now())
}

// RotateQR replaces id's badge and returns the new display code. Links
// already minted from the old badge stay valid until used or expired.
func (s *StaffService) RotateQR(ctx context.Context, id string) (string, error) {
	uid, err := idx.Parse(id)
	if err != nil {
		return "", notFound(msgProfileNotFound)
	}
	now := s.now()
	pair, err := badge.NewQRPair(uid, now)
	if err != nil {
		return "", upstream(msgInternal, err)
	}
	if err := s.Store.Profiles().SetQRPair(ctx, id, pair, now); err != nil {
		return "", s.mapProfileErr(err)
	}

	slogx.FromContext(ctx).Info("badge rotated", slog.String("user_id", id))
	return pair.Code, nil
}

// Delete removes id and everything it owns.
func (s *StaffService) Delete(ctx context.Context, caller domain.Session, id string) error {
	if id == caller.UserID {
		return invalid("You cannot delete your own account")
	}
	if err := s.Store.Profiles().DeleteProfile(ctx, id); err != nil {
		return s.mapProfileErr(err)
	}

	slogx.FromContext(ctx).Info("profile deleted",
		slog.String("user_id", id),
		slog.String("deleted_by", caller.UserID),
	)
	return nil
}

// Attendance returns id's history for the admin history dialog.
func (s *StaffService) Attendance(ctx context.Context, id string, from, to time.Time) ([]domain.DaySummary, error) {
	if _, err := s.Store.Profiles().GetProfileByID(ctx, id); err != nil {
		return nil, s.mapProfileErr(err)
	}
	return s.Clock.History(ctx, id, from, to)
}

func (s *StaffService) mapProfileErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return notFound(msgProfileNotFound)
	case errors.Is(err, store.ErrAlreadyExists):
		return conflict("Badge collision, try again")
	}
	return upstream(msgInternal, err)
}
