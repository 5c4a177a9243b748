package sqlite

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/store"
	"github.com/aussiebroadwan/clockin/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedProfile(t *testing.T, s *Store, email, staffNumber string) domain.Profile {
	t.Helper()
	now := time.Now().UTC()
	id := idx.New().String()
	p := domain.Profile{
		ID:           id,
		Email:        email,
		FullName:     "Test " + email,
		StaffNumber:  staffNumber,
		QRCode:       "NKYM-test-ABC123-" + id,
		QRToken:      strings.Repeat("a", 48) + strings.ToLower(id[len(id)-16:]),
		PasswordHash: "hash",
		WorkStatus:   domain.WorkStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Profiles().CreateProfile(context.Background(), p))
	return p
}

func TestMigrationsSeedDepartments(t *testing.T) {
	s := newTestStore(t)

	depts, err := s.Departments().ListDepartments(context.Background())
	require.NoError(t, err)
	require.Len(t, depts, 8)

	// Applying again is a no-op
	require.NoError(t, s.ApplyMigrations())
}

func TestProfileLookups(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	p := seedProfile(t, s, "ada@example.com", "S-100")

	got, err := s.Profiles().GetProfileByStaffNumber(ctx, "s-100")
	require.NoError(t, err)
	require.Equal(t, p.ID, got.ID)

	got, err = s.Profiles().GetProfileByQRToken(ctx, p.QRToken)
	require.NoError(t, err)
	require.Equal(t, p.Email, got.Email)
	require.False(t, got.IsApproved)

	_, err = s.Profiles().GetProfileByQRToken(ctx, strings.Repeat("0", 64))
	require.ErrorIs(t, err, store.ErrNotFound)

	err = s.Profiles().CreateProfile(ctx, domain.Profile{
		ID:         idx.New().String(),
		Email:      "ADA@example.com",
		FullName:   "Dup",
		QRCode:     "other",
		QRToken:    strings.Repeat("b", 64),
		WorkStatus: domain.WorkStatusActive,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestDeleteProfileCascades(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	p := seedProfile(t, s, "cascade@example.com", "")
	now := time.Now().UTC()

	require.NoError(t, s.Roles().SetRole(ctx, p.ID, domain.RoleAdmin))
	require.NoError(t, s.Attendance().OpenRecord(ctx, domain.AttendanceRecord{
		ID: idx.New().String(), UserID: p.ID, Activity: domain.ActivityMeeting, ClockIn: now,
	}))
	reqID := idx.New().String()
	require.NoError(t, s.PasswordRequests().CreateRequest(ctx, domain.PasswordRequest{
		ID: reqID, UserID: p.ID, Reason: "forgot", RequestedAt: now,
	}))

	require.NoError(t, s.Profiles().DeleteProfile(ctx, p.ID))

	_, err := s.Roles().GetRole(ctx, p.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Attendance().GetOpenRecord(ctx, p.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.PasswordRequests().GetRequest(ctx, reqID)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, s.Profiles().DeleteProfile(ctx, p.ID), store.ErrNotFound)
}

func TestOnePendingRequestPerUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	p := seedProfile(t, s, "pending@example.com", "")
	now := time.Now().UTC()

	first := domain.PasswordRequest{ID: idx.New().String(), UserID: p.ID, Reason: "a", RequestedAt: now}
	require.NoError(t, s.PasswordRequests().CreateRequest(ctx, first))

	err := s.PasswordRequests().CreateRequest(ctx, domain.PasswordRequest{
		ID: idx.New().String(), UserID: p.ID, Reason: "b", RequestedAt: now,
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	// Once resolved, a new request is allowed
	require.NoError(t, s.PasswordRequests().ResolveRequest(ctx, domain.Resolution{
		RequestID: first.ID, Status: domain.RequestRejected, ResolvedBy: p.ID, ResolvedAt: now,
	}))
	require.NoError(t, s.PasswordRequests().CreateRequest(ctx, domain.PasswordRequest{
		ID: idx.New().String(), UserID: p.ID, Reason: "c", RequestedAt: now,
	}))

	// The first resolution wins
	err = s.PasswordRequests().ResolveRequest(ctx, domain.Resolution{
		RequestID: first.ID, Status: domain.RequestApproved, ResolvedAt: now,
	})
	require.ErrorIs(t, err, store.ErrConflict)

	got, err := s.PasswordRequests().GetRequest(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RequestRejected, got.Status)

	listed, err := s.PasswordRequests().ListRequests(ctx, domain.RequestPending)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, p.Email, listed[0].Email)
}

func TestConsumeLinkOnce(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	p := seedProfile(t, s, "link@example.com", "")
	now := time.Now().UTC()

	link := domain.LoginLink{
		ID:        idx.New().String(),
		UserID:    p.ID,
		Email:     p.Email,
		TokenHash: "fingerprint",
		Type:      domain.LinkTypeMagicLink,
		Method:    domain.LoginMethodQR,
		ExpiresAt: now.Add(time.Minute),
		CreatedAt: now,
	}
	require.NoError(t, s.LoginLinks().CreateLink(ctx, link))

	got, err := s.LoginLinks().ConsumeLink(ctx, "fingerprint", now)
	require.NoError(t, err)
	require.Equal(t, p.ID, got.UserID)
	require.Equal(t, domain.LoginMethodQR, got.Method)
	require.NotNil(t, got.UsedAt)

	_, err = s.LoginLinks().ConsumeLink(ctx, "fingerprint", now)
	require.ErrorIs(t, err, store.ErrNotFound)

	expired := link
	expired.ID = idx.New().String()
	expired.TokenHash = "expired"
	expired.ExpiresAt = now.Add(-time.Second)
	require.NoError(t, s.LoginLinks().CreateLink(ctx, expired))
	_, err = s.LoginLinks().ConsumeLink(ctx, "expired", now)
	require.ErrorIs(t, err, store.ErrNotFound)

	n, err := s.LoginLinks().DeleteStaleLinks(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
}

func TestLoginActivityFilter(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	p := seedProfile(t, s, "activity@example.com", "S-7")
	now := time.Now().UTC()

	for i, m := range []domain.LoginMethod{domain.LoginMethodQR, domain.LoginMethodQR, domain.LoginMethodPassword} {
		require.NoError(t, s.LoginActivity().RecordActivity(ctx, domain.LoginActivity{
			ID:      idx.New().String(),
			UserID:  p.ID,
			Method:  m,
			Success: true,
			LoginAt: now.Add(-time.Duration(i) * 48 * time.Hour),
		}))
	}

	n, err := s.LoginActivity().CountActivity(ctx, domain.ActivityFilter{Method: domain.LoginMethodQR})
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	since := now.Add(-24 * time.Hour)
	rows, err := s.LoginActivity().ListActivity(ctx, domain.ActivityFilter{Since: &since, Limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "S-7", rows[0].StaffNumber)
}

func TestResolveRequestConflictMock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE password_change_requests").
		WithArgs("approved", sqlmock.AnyArg(), "admin-1", sqlmock.AnyArg(), "req-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	s := newStore(db)
	err = s.PasswordRequests().ResolveRequest(context.Background(), domain.Resolution{
		RequestID:  "req-1",
		Status:     domain.RequestApproved,
		ResolvedBy: "admin-1",
		ResolvedAt: time.Now(),
	})
	require.ErrorIs(t, err, store.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCloseRecordConflictMock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE attendance_records").
		WithArgs(sqlmock.AnyArg(), "rec-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE attendance_records").
		WithArgs(sqlmock.AnyArg(), "rec-2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := newStore(db)
	require.ErrorIs(t, s.Attendance().CloseRecord(context.Background(), "rec-1", time.Now()), store.ErrConflict)
	require.NoError(t, s.Attendance().CloseRecord(context.Background(), "rec-2", time.Now()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Departments().CreateDepartment(ctx, domain.Department{
			ID: idx.New().String(), Name: "Archives", CreatedAt: time.Now().UTC(),
		}))
		return store.ErrConflict
	})
	require.ErrorIs(t, err, store.ErrConflict)

	depts, err := s.Departments().ListDepartments(ctx)
	require.NoError(t, err)
	for _, d := range depts {
		require.NotEqual(t, "Archives", d.Name)
	}
}
