package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/clockin/internal/clockin/store"
	"github.com/aussiebroadwan/clockin/internal/clockin/store/drivers/sqlite/gen"
)

type txStore struct {
	tx *sql.Tx
	q  *gen.Queries
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{
		tx: tx,
		q:  gen.New(tx),
	}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // the outer DB stays open

// Ping is a no-op; the connection is held by the transaction.
func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Profiles() store.Profiles                 { return &profilesRepo{q: t.q} }
func (t *txStore) Roles() store.Roles                       { return &rolesRepo{q: t.q} }
func (t *txStore) Departments() store.Departments           { return &departmentsRepo{q: t.q} }
func (t *txStore) Attendance() store.Attendance             { return &attendanceRepo{q: t.q} }
func (t *txStore) PasswordRequests() store.PasswordRequests { return &passwordRequestsRepo{q: t.q} }
func (t *txStore) LoginActivity() store.LoginActivity       { return &loginActivityRepo{q: t.q} }
func (t *txStore) LoginLinks() store.LinkStore              { return &loginLinksRepo{q: t.q} }
func (t *txStore) RefreshTokens() store.RefreshTokens       { return &refreshTokensRepo{q: t.q} }

func (t *txStore) ApplyMigrations() error { return nil } // applied before any tx starts
