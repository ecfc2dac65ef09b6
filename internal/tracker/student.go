package tracker

// Student is a row of the students table. GitHub identifies the student.
type Student struct {
	First  string `json:"first_name" db:"first_name"`
	Last   string `json:"last_name" db:"last_name"`
	GitHub string `json:"github" db:"github"`
}

const (
	selectStudentQuery = `
		SELECT first_name, last_name, github
		FROM students
		WHERE github = :github
		`

	insertStudentQuery = `
		INSERT INTO students (first_name, last_name, github)
			VALUES (:first_name, :last_name, :github)
		`
)

// GetStudentByGitHub prints the student with the given GitHub account.
func (t *Tracker) GetStudentByGitHub(github string) (*Student, error) {
	if err := required("student", [2]string{"github", github}); err != nil {
		return nil, err
	}

	var s Student
	found, err := t.selectOne("looking up student", selectStudentQuery,
		map[string]any{"github": github},
		&s.First, &s.Last, &s.GitHub)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &NotFoundError{Entity: "student", Key: github}
	}

	t.printf("Student: %s %s\nGitHub account: %s\n", s.First, s.Last, s.GitHub)
	return &s, nil
}

// MakeNewStudent adds a student and prints a confirmation.
// A GitHub account that is already taken surfaces as a *StoreConstraintError.
func (t *Tracker) MakeNewStudent(first, last, github string) error {
	if err := required("new_student",
		[2]string{"first name", first},
		[2]string{"last name", last},
		[2]string{"github", github},
	); err != nil {
		return err
	}

	err := t.insert("adding student "+github, insertStudentQuery, map[string]any{
		"first_name": first,
		"last_name":  last,
		"github":     github,
	})
	if err != nil {
		return err
	}

	t.printf("Successfully added student: %s %s\n", first, last)
	return nil
}
