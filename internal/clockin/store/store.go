package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrConflict reports a conditional write that matched no row because
	// another writer got there first.
	ErrConflict = errors.New("store: conflict")
)

// Store is the persistence boundary of the service. Implementations must be
// safe for concurrent use.
type Store interface {
	Profiles() Profiles
	Roles() Roles
	Departments() Departments
	Attendance() Attendance
	PasswordRequests() PasswordRequests
	LoginActivity() LoginActivity
	LoginLinks() LinkStore
	RefreshTokens() RefreshTokens

	// ApplyMigrations brings the schema up to date.
	ApplyMigrations() error

	// Tx starts a transaction. The returned Tx shares this interface so
	// repositories are used the same way inside and outside of it.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping checks the database is reachable.
	Ping(ctx context.Context) error
}

type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Profiles interface {
	// CreateProfile inserts p. A duplicate email, staff number or QR pair
	// returns ErrAlreadyExists.
	CreateProfile(ctx context.Context, p domain.Profile) error

	GetProfileByID(ctx context.Context, id string) (domain.Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (domain.Profile, error)

	// GetProfileByQRToken matches the lowercase hex token exactly.
	GetProfileByQRToken(ctx context.Context, token string) (domain.Profile, error)

	// GetProfileByStaffNumber matches case-insensitively.
	GetProfileByStaffNumber(ctx context.Context, staffNumber string) (domain.Profile, error)

	// ListProfiles returns every profile, newest first.
	ListProfiles(ctx context.Context) ([]domain.Profile, error)

	// UpdateProfileDetails writes the name, department and staff number of p.
	UpdateProfileDetails(ctx context.Context, p domain.Profile) error

	SetApproved(ctx context.Context, id string, at time.Time) error
	SetWorkStatus(ctx context.Context, id string, status domain.WorkStatus, at time.Time) error
	SetQRPair(ctx context.Context, id string, pair domain.QRPair, at time.Time) error
	SetPasswordHash(ctx context.Context, id, hash string, at time.Time) error

	// DeleteProfile removes the profile and everything that references it.
	DeleteProfile(ctx context.Context, id string) error
}

type Roles interface {
	// GetRole returns ErrNotFound when the user has no explicit role.
	GetRole(ctx context.Context, userID string) (domain.Role, error)
	SetRole(ctx context.Context, userID string, role domain.Role) error
}

type Departments interface {
	ListDepartments(ctx context.Context) ([]domain.Department, error)
	CreateDepartment(ctx context.Context, d domain.Department) error
	RenameDepartment(ctx context.Context, id, name string) error
	DeleteDepartment(ctx context.Context, id string) error
}

type Attendance interface {
	// OpenRecord inserts r with no clock out. A second open record for the
	// same user returns ErrAlreadyExists.
	OpenRecord(ctx context.Context, r domain.AttendanceRecord) error

	// GetOpenRecord returns ErrNotFound when the user is clocked out.
	GetOpenRecord(ctx context.Context, userID string) (domain.AttendanceRecord, error)

	// CloseRecord sets the clock out of an open record. ErrConflict when
	// the record was already closed.
	CloseRecord(ctx context.Context, id string, at time.Time) error

	// ListRecords returns the user's records clocked in within [from, to),
	// newest first.
	ListRecords(ctx context.Context, userID string, from, to time.Time) ([]domain.AttendanceRecord, error)

	// ListRecordsSince returns every user's records clocked in at or after
	// since, plus any still open.
	ListRecordsSince(ctx context.Context, since time.Time) ([]domain.AttendanceRecord, error)
}

type PasswordRequests interface {
	// CreateRequest inserts a pending request. ErrAlreadyExists when the
	// user already has one pending.
	CreateRequest(ctx context.Context, r domain.PasswordRequest) error

	GetRequest(ctx context.Context, id string) (domain.PasswordRequest, error)
	HasPendingRequest(ctx context.Context, userID string) (bool, error)
	ListRequestsForUser(ctx context.Context, userID string) ([]domain.PasswordRequest, error)

	// ListRequests returns requests joined with the requester, filtered by
	// status when it is non-empty.
	ListRequests(ctx context.Context, status domain.RequestStatus) ([]domain.PasswordRequest, error)

	// ResolveRequest moves a pending request to its terminal status. It
	// returns ErrConflict when the request is no longer pending.
	ResolveRequest(ctx context.Context, res domain.Resolution) error
}

type LoginActivity interface {
	RecordActivity(ctx context.Context, a domain.LoginActivity) error

	// ListActivity returns entries newest first joined with the profile.
	ListActivity(ctx context.Context, f domain.ActivityFilter) ([]domain.LoginActivity, error)
	CountActivity(ctx context.Context, f domain.ActivityFilter) (int64, error)
}

// LinkStore keeps one-time login links. It is implemented by the SQL store
// and by the Redis driver.
type LinkStore interface {
	CreateLink(ctx context.Context, l domain.LoginLink) error

	// ConsumeLink atomically marks the unused, unexpired link with the given
	// fingerprint as used and returns it. Any other state is ErrNotFound.
	ConsumeLink(ctx context.Context, tokenHash string, now time.Time) (domain.LoginLink, error)

	// DeleteStaleLinks removes links that are used or expired before now.
	DeleteStaleLinks(ctx context.Context, now time.Time) (int64, error)
}

type RefreshTokens interface {
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error
	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// RevokeRefreshToken flips the token to revoked. ErrConflict when it
	// was already revoked, so a token rotates at most once.
	RevokeRefreshToken(ctx context.Context, hash string, at time.Time) error

	RevokeSession(ctx context.Context, sessionID string, at time.Time) error
	RevokeUserRefreshTokens(ctx context.Context, userID string, at time.Time) error
	DeleteStaleRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}
