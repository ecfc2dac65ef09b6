package storage

import (
	"fmt"

	"github.com/hackbright/hba/internal/tracker"
)

// ListStudents returns all students ordered by GitHub account.
func (d *DB) ListStudents() ([]tracker.Student, error) {
	var students []tracker.Student
	err := d.db.Select(&students, `
		SELECT first_name, last_name, github
		FROM students
		ORDER BY github
	`)
	if err != nil {
		return nil, fmt.Errorf("querying students: %w", classify(err))
	}
	return students, nil
}

// ListProjects returns all projects ordered by title.
func (d *DB) ListProjects() ([]tracker.Project, error) {
	var projects []tracker.Project
	err := d.db.Select(&projects, `
		SELECT title, COALESCE(description, '') AS description, max_grade
		FROM projects
		ORDER BY title
	`)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", classify(err))
	}
	return projects, nil
}

// ListGrades returns all grades ordered by GitHub account, then project title.
func (d *DB) ListGrades() ([]tracker.Grade, error) {
	var grades []tracker.Grade
	err := d.db.Select(&grades, `
		SELECT student_github, project_title, grade
		FROM grades
		ORDER BY student_github, project_title
	`)
	if err != nil {
		return nil, fmt.Errorf("querying grades: %w", classify(err))
	}
	return grades, nil
}

// Counts holds the number of rows in each table.
type Counts struct {
	Students int `json:"students"`
	Projects int `json:"projects"`
	Grades   int `json:"grades"`
}

// Count returns the number of rows in each table.
func (d *DB) Count() (Counts, error) {
	var c Counts
	for _, q := range []struct {
		table string
		dest  *int
	}{
		{"students", &c.Students},
		{"projects", &c.Projects},
		{"grades", &c.Grades},
	} {
		if err := d.db.Get(q.dest, "SELECT COUNT(*) FROM "+q.table); err != nil {
			return Counts{}, fmt.Errorf("counting %s: %w", q.table, classify(err))
		}
	}
	return c, nil
}
