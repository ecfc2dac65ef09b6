package tracker

import (
	"fmt"
	"io"
)

// Tracker runs the student, project and grade operations against a Store and
// writes their confirmations to an output stream.
type Tracker struct {
	store           Store
	out             io.Writer
	checkReferences bool
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithReferenceCheck makes AssignGrade verify that the student and project exist
// before inserting. When off, referential integrity is left to the store.
func WithReferenceCheck(on bool) Option {
	return func(t *Tracker) {
		t.checkReferences = on
	}
}

// New creates a Tracker that executes against store and prints to out.
func New(store Store, out io.Writer, opts ...Option) *Tracker {
	t := &Tracker{
		store: store,
		out:   out,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Out returns the stream the tracker prints to.
func (t *Tracker) Out() io.Writer {
	return t.out
}

func (t *Tracker) printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

// insert executes a write and commits it as its own unit of work.
func (t *Tracker) insert(op, statement string, params map[string]any) error {
	cur, err := t.store.Execute(statement, params)
	if err != nil {
		return storeError(op, err)
	}
	if err := drain(cur); err != nil {
		return storeError(op, err)
	}
	if err := t.store.Commit(); err != nil {
		return storeError(op, err)
	}
	return nil
}

// selectOne executes a lookup and scans at most one row into dest.
func (t *Tracker) selectOne(op, statement string, params map[string]any, dest ...any) (bool, error) {
	cur, err := t.store.Execute(statement, params)
	if err != nil {
		return false, storeError(op, err)
	}
	found, err := fetchOne(cur, dest...)
	if err != nil {
		return false, storeError(op, err)
	}
	return found, nil
}

// required returns an ArgumentError naming the first empty value in fields.
func required(command string, fields ...[2]string) error {
	for _, f := range fields {
		if f[1] == "" {
			return &ArgumentError{Command: command, Reason: f[0] + " is required"}
		}
	}
	return nil
}
