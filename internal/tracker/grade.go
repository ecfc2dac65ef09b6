package tracker

import (
	"fmt"
	"strconv"
)

// Grade is a row of the grades table.
type Grade struct {
	GitHub string `json:"student_github" db:"student_github"`
	Title  string `json:"project_title" db:"project_title"`
	Grade  int    `json:"grade" db:"grade"`
}

const (
	selectGradeQuery = `
		SELECT grade
		FROM grades
		WHERE student_github = :github AND project_title = :title
		`

	insertGradeQuery = `
		INSERT INTO grades (student_github, project_title, grade)
			VALUES (:github, :title, :grade)
		`
)

// ParseGrade converts a command-line grade to a non-negative integer.
func ParseGrade(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ArgumentError{Command: "add_grade", Reason: "grade must be a whole number, got " + strconv.Quote(raw)}
	}
	if n < 0 {
		return 0, &ArgumentError{Command: "add_grade", Reason: "grade must not be negative"}
	}
	return n, nil
}

// GetGradeByGitHubTitle prints the grade a student received on a project.
func (t *Tracker) GetGradeByGitHubTitle(github, title string) (int, error) {
	if err := required("get_grade",
		[2]string{"github", github},
		[2]string{"title", title},
	); err != nil {
		return 0, err
	}

	var grade int
	found, err := t.selectOne("looking up grade", selectGradeQuery,
		map[string]any{"github": github, "title": title},
		&grade)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, &NotFoundError{Entity: "grade", Key: fmt.Sprintf("%s on %s", github, title)}
	}

	t.printf("Student grade: %d\n", grade)
	return grade, nil
}

// AssignGrade records a student's grade on a project and prints a confirmation.
//
// With the reference check enabled the student and project must already exist
// and the grade may not exceed the project's maximum.
func (t *Tracker) AssignGrade(github string, grade int, title string) error {
	if err := required("add_grade",
		[2]string{"github", github},
		[2]string{"title", title},
	); err != nil {
		return err
	}
	if grade < 0 {
		return &ArgumentError{Command: "add_grade", Reason: "grade must not be negative"}
	}

	if t.checkReferences {
		if err := t.checkGradeReferences(github, grade, title); err != nil {
			return err
		}
	}

	err := t.insert(fmt.Sprintf("adding grade for %s on %s", github, title), insertGradeQuery, map[string]any{
		"github": github,
		"title":  title,
		"grade":  grade,
	})
	if err != nil {
		return err
	}

	t.printf("Successfully added grade for %s on %s project\n", github, title)
	return nil
}

func (t *Tracker) checkGradeReferences(github string, grade int, title string) error {
	var handle string
	found, err := t.selectOne("checking student", selectStudentQuery,
		map[string]any{"github": github},
		new(string), new(string), &handle)
	if err != nil {
		return err
	}
	if !found {
		return &NotFoundError{Entity: "student", Key: github}
	}

	var (
		id       int64
		p        Project
		descNull any
	)
	found, err = t.selectOne("checking project", selectProjectQuery,
		map[string]any{"title": title},
		&id, &p.Title, &descNull, &p.MaxGrade)
	if err != nil {
		return err
	}
	if !found {
		return &NotFoundError{Entity: "project", Key: title}
	}
	if grade > p.MaxGrade {
		return &ArgumentError{
			Command: "add_grade",
			Reason:  fmt.Sprintf("grade %d exceeds maximum grade %d for %s", grade, p.MaxGrade, title),
		}
	}
	return nil
}
