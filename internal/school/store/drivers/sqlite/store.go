package sqlite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/autoescuela/internal/school/store"
	"github.com/aussiebroadwan/autoescuela/internal/school/store/drivers/internal/sqlrepo"
	"github.com/jmoiron/sqlx"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// defaultParams are appended to every DSN. Times are written in SQLite's
// own format so that comparisons in SQL order correctly, and write
// transactions take the lock up front.
var defaultParams = []string{
	"_pragma=busy_timeout(5000)",
	"_pragma=foreign_keys(1)",
	"_time_format=sqlite",
	"_txlock=immediate",
}

type Store struct {
	sqlrepo.Base
}

var _ store.Store = (*Store)(nil)

// NewStore opens a SQLite database. dsn is a file path or ":memory:",
// optionally with query parameters of its own.
func NewStore(dsn string) (*Store, error) {
	full := withParams(dsn)

	db, err := sqlx.Open("sqlite", full)
	if err != nil {
		return nil, err
	}

	// One connection: ":memory:" databases are per connection, and SQLite
	// serialises writers anyway.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: open %q: %w", dsn, err)
	}

	return &Store{
		Base: sqlrepo.Base{DB: db, MapErr: mapErr},
	}, nil
}

func withParams(dsn string) string {
	params := defaultParams
	if !strings.Contains(dsn, ":memory:") {
		params = append(params[:len(params):len(params)], "_pragma=journal_mode(WAL)")
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

func mapErr(err error) error {
	var se *msqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%w: %v", store.ErrNotFound, err)
		}
	}
	return err
}
