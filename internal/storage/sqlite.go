// Package storage provides the SQL-backed store the tracker executes against,
// for an embedded SQLite file or a PostgreSQL server.
package storage

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/hackbright/hba/internal/tracker"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func init() {
	// sqlx only knows the cgo driver name "sqlite3".
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// DB wraps a database connection and the unit of work pending on it.
// It implements tracker.Store.
type DB struct {
	db     *sqlx.DB
	driver string
	tx     *sqlx.Tx
	logger *slog.Logger
}

// Option configures a DB.
type Option func(*DB)

// WithLogger traces statements and commits to logger at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(d *DB) {
		d.logger = logger
	}
}

// ParseURL maps a database URL to a driver name and data source name.
// postgres:// and postgresql:// URLs select PostgreSQL; anything else is a
// SQLite path, optionally prefixed with sqlite://.
func ParseURL(url string) (driver, dsn string) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return DriverPostgres, url
	case strings.HasPrefix(url, "sqlite://"):
		url = strings.TrimPrefix(url, "sqlite://")
	}

	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return DriverSQLite, url + sep + "_pragma=foreign_keys(1)"
}

// OpenDB connects to the database at url and verifies it is reachable.
// A database that cannot be reached is reported as tracker.ErrUnavailable.
func OpenDB(url string, opts ...Option) (*DB, error) {
	driver, dsn := ParseURL(url)

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if driver == DriverSQLite {
		// SQLite doesn't support concurrent writes
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", unavailable(err))
	}

	d := &DB{
		db:     db,
		driver: driver,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Driver returns the database/sql driver name in use.
func (d *DB) Driver() string {
	return d.driver
}

// Execute binds params to the named placeholders in statement and runs it.
//
// Queries return their rows. Any other statement joins the pending unit of work,
// which is started on first use and finished by Commit; a failed write rolls it
// back so the next statement starts clean.
func (d *DB) Execute(statement string, params map[string]any) (tracker.Cursor, error) {
	query, args, err := sqlx.Named(statement, params)
	if err != nil {
		return nil, fmt.Errorf("binding parameters: %w", err)
	}
	query = d.db.Rebind(query)

	d.logger.Debug("execute",
		"statement", strings.Join(strings.Fields(statement), " "),
		"params", paramNames(params),
		"in_tx", d.tx != nil)

	if isQuery(statement) {
		var rows *sqlx.Rows
		if d.tx != nil {
			rows, err = d.tx.Queryx(query, args...)
		} else {
			rows, err = d.db.Queryx(query, args...)
		}
		if err != nil {
			return nil, classify(err)
		}
		return rows, nil
	}

	if d.tx == nil {
		d.tx, err = d.db.Beginx()
		if err != nil {
			d.tx = nil
			return nil, classify(err)
		}
	}
	if _, err := d.tx.Exec(query, args...); err != nil {
		d.rollback()
		return nil, classify(err)
	}
	return noRows{}, nil
}

// Commit makes the pending unit of work durable. It is a no-op when nothing is pending.
func (d *DB) Commit() error {
	if d.tx == nil {
		return nil
	}
	tx := d.tx
	d.tx = nil

	d.logger.Debug("commit")
	if err := tx.Commit(); err != nil {
		return classify(err)
	}
	return nil
}

// Close discards any uncommitted work and closes the connection.
func (d *DB) Close() error {
	d.rollback()
	return d.db.Close()
}

func (d *DB) rollback() {
	if d.tx == nil {
		return
	}
	d.logger.Debug("rollback")
	d.tx.Rollback()
	d.tx = nil
}

// isQuery reports whether a statement produces rows.
func isQuery(statement string) bool {
	fields := strings.Fields(statement)
	if len(fields) == 0 {
		return false
	}
	switch strings.ToUpper(fields[0]) {
	case "SELECT", "WITH":
		return true
	}
	return false
}

// paramNames lists parameter names for logging without their values.
func paramNames(params map[string]any) []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// noRows is the cursor returned for statements that produce no rows.
type noRows struct{}

func (noRows) Next() bool        { return false }
func (noRows) Scan(...any) error { return fmt.Errorf("statement returned no rows") }
func (noRows) Err() error        { return nil }
func (noRows) Close() error      { return nil }
