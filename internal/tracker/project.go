package tracker

import (
	"database/sql"
	"strconv"
)

// Project is a row of the projects table. Title identifies the project.
type Project struct {
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	MaxGrade    int    `json:"max_grade" db:"max_grade"`
}

const (
	selectProjectQuery = `
		SELECT *
		FROM projects
		WHERE title = :title
		`

	insertProjectQuery = `
		INSERT INTO projects (title, description, max_grade)
			VALUES (:title, :description, :max_grade)
		`
)

// ParseMaxGrade converts a command-line max grade to a positive integer.
func ParseMaxGrade(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ArgumentError{Command: "add_project", Reason: "max grade must be a whole number, got " + strconv.Quote(raw)}
	}
	if n <= 0 {
		return 0, &ArgumentError{Command: "add_project", Reason: "max grade must be positive"}
	}
	return n, nil
}

// GetProjectByTitle prints the project with the given title.
func (t *Tracker) GetProjectByTitle(title string) (*Project, error) {
	if err := required("project_title", [2]string{"title", title}); err != nil {
		return nil, err
	}

	var (
		id          int64
		p           Project
		description sql.NullString
	)
	found, err := t.selectOne("looking up project", selectProjectQuery,
		map[string]any{"title": title},
		&id, &p.Title, &description, &p.MaxGrade)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &NotFoundError{Entity: "project", Key: title}
	}
	p.Description = description.String

	t.printf("Project Title: %s\nProject Description: %s\nMaximum Grade: %d\n",
		p.Title, p.Description, p.MaxGrade)
	return &p, nil
}

// AddProject adds a project and prints a confirmation.
func (t *Tracker) AddProject(title, description string, maxGrade int) error {
	if err := required("add_project",
		[2]string{"title", title},
		[2]string{"description", description},
	); err != nil {
		return err
	}
	return t.addProject(title, description, maxGrade)
}

// RestoreProject adds a project read back from an export. Unlike AddProject
// the description may be empty, since the projects table allows it.
func (t *Tracker) RestoreProject(title, description string, maxGrade int) error {
	if err := required("add_project", [2]string{"title", title}); err != nil {
		return err
	}
	return t.addProject(title, description, maxGrade)
}

func (t *Tracker) addProject(title, description string, maxGrade int) error {
	if maxGrade <= 0 {
		return &ArgumentError{Command: "add_project", Reason: "max grade must be positive"}
	}

	err := t.insert("adding project "+title, insertProjectQuery, map[string]any{
		"title":       title,
		"description": description,
		"max_grade":   maxGrade,
	})
	if err != nil {
		return err
	}

	t.printf("Successfully added %s.\n", title)
	return nil
}
