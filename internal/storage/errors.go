package storage

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/hackbright/hba/internal/tracker"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// PostgreSQL SQLSTATE classes (https://www.postgresql.org/docs/current/errcodes-appendix.html).
const (
	pqClassConnection   = "08" // connection_exception
	pqClassResources    = "53" // insufficient_resources
	pqClassIntervention = "57" // operator_intervention, e.g. admin_shutdown
	pqClassIntegrity    = "23" // integrity_constraint_violation
)

// classify tags a driver error with tracker.ErrConstraint or tracker.ErrUnavailable
// when it falls in one of those classes. Other errors are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() & 0xff {
		case sqlite3.SQLITE_CONSTRAINT:
			return constraint(err)
		case sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_IOERR,
			sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_READONLY:
			return unavailable(err)
		}
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case pqClassIntegrity:
			return constraint(err)
		case pqClassConnection, pqClassResources, pqClassIntervention:
			return unavailable(err)
		}
		return err
	}

	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.As(err, &netErr) {
		return unavailable(err)
	}
	return err
}

func constraint(err error) error {
	return fmt.Errorf("%w: %w", tracker.ErrConstraint, err)
}

func unavailable(err error) error {
	if errors.Is(err, tracker.ErrUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", tracker.ErrUnavailable, err)
}
