package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/store"
	"github.com/aussiebroadwan/clockin/internal/clockin/store/drivers/sqlite/gen"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

// NewStore opens the database at dsn. Times are written in a fixed
// RFC 3339 like layout so they compare correctly as text.
func NewStore(dsn string) (*Store, error) {
	dsn = withDefaultParams(dsn)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Each connection to :memory: is its own database
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := newStore(db)
	s.dsn = dsn
	return s, nil
}

func withDefaultParams(dsn string) string {
	params := []string{"_time_format=sqlite", "_pragma=foreign_keys(1)"}
	for _, p := range params {
		if strings.Contains(dsn, p) {
			continue
		}
		if strings.Contains(dsn, "?") {
			dsn += "&" + p
		} else {
			dsn += "?" + p
		}
	}
	return dsn
}

func newStore(db *sql.DB) *Store {
	return &Store{db: db, q: gen.New(db)}
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Profiles() store.Profiles                 { return &profilesRepo{q: s.q} }
func (s *Store) Roles() store.Roles                       { return &rolesRepo{q: s.q} }
func (s *Store) Departments() store.Departments           { return &departmentsRepo{q: s.q} }
func (s *Store) Attendance() store.Attendance             { return &attendanceRepo{q: s.q} }
func (s *Store) PasswordRequests() store.PasswordRequests { return &passwordRequestsRepo{q: s.q} }
func (s *Store) LoginActivity() store.LoginActivity       { return &loginActivityRepo{q: s.q} }
func (s *Store) LoginLinks() store.LinkStore              { return &loginLinksRepo{q: s.q} }
func (s *Store) RefreshTokens() store.RefreshTokens       { return &refreshTokensRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint turns a UNIQUE violation into store.ErrAlreadyExists.
func mapConstraint(err error) error {
	if err == nil {
		return nil
	}
	var se *msqlite.Error
	if errors.As(err, &se) && se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT &&
		strings.Contains(se.Error(), "UNIQUE") {
		return store.ErrAlreadyExists
	}
	return err
}

// expectOne maps the rows affected by a targeted write to ErrNotFound
// (or the given sentinel) when nothing matched.
func expectOne(n int64, err error, none error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return none
	}
	return nil
}

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func mapNullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		val := nt.Time
		return &val
	}
	return nil
}

func mapOptionalTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func mapTimeNull(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func mapProfile(row gen.Profile) domain.Profile {
	return domain.Profile{
		ID:           row.ID,
		Email:        row.Email,
		FullName:     row.FullName,
		Department:   mapNullString(row.Department),
		StaffNumber:  mapNullString(row.StaffNumber),
		QRCode:       row.QrCode,
		QRToken:      row.QrToken,
		PasswordHash: row.PasswordHash,
		IsApproved:   row.IsApproved,
		WorkStatus:   domain.WorkStatus(row.WorkStatus),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func mapDepartment(row gen.Department) domain.Department {
	return domain.Department{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
	}
}

func mapAttendanceRecord(row gen.AttendanceRecord) domain.AttendanceRecord {
	return domain.AttendanceRecord{
		ID:       row.ID,
		UserID:   row.UserID,
		Activity: domain.Activity(row.Activity),
		Notes:    mapNullString(row.Notes),
		Location: mapNullString(row.Location),
		ClockIn:  row.ClockInTime,
		ClockOut: mapNullTimePtr(row.ClockOutTime),
	}
}

func mapPasswordRequest(row gen.PasswordChangeRequest) domain.PasswordRequest {
	return domain.PasswordRequest{
		ID:          row.ID,
		UserID:      row.UserID,
		Reason:      row.Reason,
		Status:      domain.RequestStatus(row.Status),
		RequestedAt: row.RequestedAt,
		ResolvedAt:  mapNullTimePtr(row.ResolvedAt),
		ResolvedBy:  mapNullString(row.ResolvedBy),
		AdminNotes:  mapNullString(row.AdminNotes),
	}
}

func mapLoginLink(row gen.LoginLink) domain.LoginLink {
	return domain.LoginLink{
		ID:        row.ID,
		UserID:    row.UserID,
		Email:     row.Email,
		TokenHash: row.TokenHash,
		Type:      domain.LinkType(row.Type),
		Method:    domain.LoginMethod(row.Method),
		ExpiresAt: row.ExpiresAt,
		UsedAt:    mapNullTimePtr(row.UsedAt),
		CreatedAt: row.CreatedAt,
	}
}

func mapRefreshToken(row gen.RefreshToken) domain.RefreshToken {
	return domain.RefreshToken{
		ID:        row.ID,
		UserID:    row.UserID,
		TokenHash: row.TokenHash,
		SessionID: row.SessionID,
		Method:    domain.LoginMethod(row.Method),
		ExpiresAt: row.ExpiresAt,
		Revoked:   row.Revoked,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
