package tracker

import (
	"database/sql"
	"fmt"
)

// memStore is an in-memory Store that understands the tracker's own statements.
// Writes are staged until Commit, like a database transaction.
type memStore struct {
	students map[string]Student
	projects map[string]Project
	grades   map[[2]string]int

	pending    []func() error
	executed   []string
	commits    int
	executeErr error
	commitErr  error
}

func newMemStore() *memStore {
	return &memStore{
		students: make(map[string]Student),
		projects: make(map[string]Project),
		grades:   make(map[[2]string]int),
	}
}

func (m *memStore) Execute(statement string, params map[string]any) (Cursor, error) {
	m.executed = append(m.executed, statement)
	if m.executeErr != nil {
		return nil, m.executeErr
	}

	str := func(name string) string {
		s, _ := params[name].(string)
		return s
	}

	switch statement {
	case selectStudentQuery:
		s, ok := m.students[str("github")]
		if !ok {
			return &sliceCursor{}, nil
		}
		return &sliceCursor{rows: [][]any{{s.First, s.Last, s.GitHub}}}, nil

	case selectProjectQuery:
		p, ok := m.projects[str("title")]
		if !ok {
			return &sliceCursor{}, nil
		}
		return &sliceCursor{rows: [][]any{{int64(1), p.Title, p.Description, int64(p.MaxGrade)}}}, nil

	case selectGradeQuery:
		g, ok := m.grades[[2]string{str("github"), str("title")}]
		if !ok {
			return &sliceCursor{}, nil
		}
		return &sliceCursor{rows: [][]any{{int64(g)}}}, nil

	case insertStudentQuery:
		s := Student{First: str("first_name"), Last: str("last_name"), GitHub: str("github")}
		m.pending = append(m.pending, func() error {
			if _, dup := m.students[s.GitHub]; dup {
				return fmt.Errorf("%w: UNIQUE constraint failed: students.github", ErrConstraint)
			}
			m.students[s.GitHub] = s
			return nil
		})
		return &sliceCursor{}, nil

	case insertProjectQuery:
		p := Project{Title: str("title"), Description: str("description"), MaxGrade: params["max_grade"].(int)}
		m.pending = append(m.pending, func() error {
			if _, dup := m.projects[p.Title]; dup {
				return fmt.Errorf("%w: UNIQUE constraint failed: projects.title", ErrConstraint)
			}
			m.projects[p.Title] = p
			return nil
		})
		return &sliceCursor{}, nil

	case insertGradeQuery:
		key := [2]string{str("github"), str("title")}
		grade := params["grade"].(int)
		m.pending = append(m.pending, func() error {
			if _, dup := m.grades[key]; dup {
				return fmt.Errorf("%w: UNIQUE constraint failed: grades.student_github, grades.project_title", ErrConstraint)
			}
			m.grades[key] = grade
			return nil
		})
		return &sliceCursor{}, nil
	}

	return nil, fmt.Errorf("unexpected statement: %s", statement)
}

func (m *memStore) Commit() error {
	if m.commitErr != nil {
		m.pending = nil
		return m.commitErr
	}
	for _, apply := range m.pending {
		if err := apply(); err != nil {
			m.pending = nil
			return err
		}
	}
	m.pending = nil
	m.commits++
	return nil
}

// sliceCursor serves rows from memory.
type sliceCursor struct {
	rows   [][]any
	pos    int
	closed bool
}

func (c *sliceCursor) Next() bool {
	if c.pos >= len(c.rows) {
		return false
	}
	c.pos++
	return true
}

func (c *sliceCursor) Scan(dest ...any) error {
	row := c.rows[c.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("expected %d destination arguments in Scan, not %d", len(row), len(dest))
	}
	for i, d := range dest {
		switch d := d.(type) {
		case *string:
			*d = row[i].(string)
		case *int:
			*d = int(row[i].(int64))
		case *int64:
			*d = row[i].(int64)
		case *sql.NullString:
			*d = sql.NullString{String: row[i].(string), Valid: true}
		case *any:
			*d = row[i]
		default:
			return fmt.Errorf("unsupported scan type %T", d)
		}
	}
	return nil
}

func (c *sliceCursor) Err() error { return nil }

func (c *sliceCursor) Close() error {
	c.closed = true
	return nil
}
