// Package sqlrepo holds the repository implementations shared by the SQL
// drivers. Queries are written with ? placeholders and rebound for the
// driver in use; driver specific error codes are translated by ErrMapper.
package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/autoescuela/internal/school/store"
	"github.com/jmoiron/sqlx"
)

// ErrMapper translates driver errors into store sentinels.
type ErrMapper func(error) error

// Base implements store.Store on top of a *sqlx.DB. Drivers embed it and
// add ApplyMigrations.
type Base struct {
	DB        *sqlx.DB
	MapErr    ErrMapper
	TxOptions *sql.TxOptions
}

func (b *Base) conn() conn { return conn{x: b.DB, mapErr: b.MapErr} }

func (b *Base) Schools() store.Schools         { return &schoolsRepo{c: b.conn()} }
func (b *Base) Memberships() store.Memberships { return &membershipsRepo{c: b.conn()} }
func (b *Base) Invites() store.Invites         { return &invitesRepo{c: b.conn()} }

func (b *Base) Close() error { return b.DB.Close() }

// Ping verifies the database connection is still alive.
func (b *Base) Ping(ctx context.Context) error {
	return b.DB.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (b *Base) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := b.DB.BeginTxx(ctx, b.TxOptions)
	if err != nil {
		return nil, err
	}
	return &txStore{tx: tx, mapErr: b.MapErr}, nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (b *Base) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := b.Tx(ctx)
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

type txStore struct {
	tx     *sqlx.Tx
	mapErr ErrMapper
}

func (t *txStore) conn() conn { return conn{x: t.tx, mapErr: t.mapErr} }

func (t *txStore) Schools() store.Schools         { return &schoolsRepo{c: t.conn()} }
func (t *txStore) Memberships() store.Memberships { return &membershipsRepo{c: t.conn()} }
func (t *txStore) Invites() store.Invites         { return &invitesRepo{c: t.conn()} }

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the caller commits or rolls back and the DB stays open.
func (t *txStore) Close() error { return nil }

// Ping is a no-op for transactions, the connection is already held.
func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

// ApplyMigrations is a no-op; migrations run before any transaction starts.
func (t *txStore) ApplyMigrations() error { return nil }

// conn is what every repo runs queries through: either the pool or a tx.
type conn struct {
	x      sqlx.ExtContext
	mapErr ErrMapper
}

func (c conn) get(ctx context.Context, dest any, query string, args ...any) error {
	err := sqlx.GetContext(ctx, c.x, dest, c.x.Rebind(query), args...)
	return c.err(err)
}

func (c conn) selectAll(ctx context.Context, dest any, query string, args ...any) error {
	err := sqlx.SelectContext(ctx, c.x, dest, c.x.Rebind(query), args...)
	return c.err(err)
}

func (c conn) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := c.x.ExecContext(ctx, c.x.Rebind(query), args...)
	if err != nil {
		return 0, c.err(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, c.err(err)
	}
	return n, nil
}

func (c conn) err(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return store.ErrNotFound
	case c.mapErr != nil:
		return c.mapErr(err)
	default:
		return err
	}
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	v := nt.Time.UTC()
	return &v
}
