// Package tracker implements the Hackbright project tracker: the operations on
// students, projects and grades, and the line-oriented interpreter that drives them.
package tracker

import (
	"errors"
	"fmt"
)

// Cursor iterates over the rows produced by a statement.
// *sql.Rows and *sqlx.Rows both satisfy it.
type Cursor interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// Store executes parameterized statements against the relational backend.
//
// Statements use named placeholders (":github"). Values in params are bound by
// the driver and never spliced into the statement text. Writes become durable
// only after Commit.
//
// Implementations report driver failures by wrapping ErrConstraint or
// ErrUnavailable so the tracker can tell them apart.
type Store interface {
	Execute(statement string, params map[string]any) (Cursor, error)
	Commit() error
}

// Store failure classes.
var (
	// ErrConstraint marks a write rejected by a uniqueness, foreign key or NOT NULL constraint.
	ErrConstraint = errors.New("constraint violation")

	// ErrUnavailable marks a store that cannot be reached or opened.
	ErrUnavailable = errors.New("store unavailable")
)

// fetchOne scans the first row of cur into dest and closes the cursor.
// found is false when the statement produced no rows.
func fetchOne(cur Cursor, dest ...any) (found bool, err error) {
	defer cur.Close()

	if !cur.Next() {
		return false, cur.Err()
	}
	if err := cur.Scan(dest...); err != nil {
		return false, fmt.Errorf("scanning row: %w", err)
	}
	return true, nil
}

// drain closes a cursor returned by a write, surfacing any deferred error.
func drain(cur Cursor) error {
	for cur.Next() {
	}
	err := cur.Err()
	if cerr := cur.Close(); err == nil {
		err = cerr
	}
	return err
}
