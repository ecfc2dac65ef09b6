package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hackbright/hba/internal/tracker"
)

// Snapshot is the full contents of the tracker tables.
type Snapshot struct {
	Students []tracker.Student
	Projects []tracker.Project
	Grades   []tracker.Grade
}

// Snapshot reads every table.
func (d *DB) Snapshot() (*Snapshot, error) {
	students, err := d.ListStudents()
	if err != nil {
		return nil, err
	}
	projects, err := d.ListProjects()
	if err != nil {
		return nil, err
	}
	grades, err := d.ListGrades()
	if err != nil {
		return nil, err
	}
	return &Snapshot{Students: students, Projects: projects, Grades: grades}, nil
}

// ExportDir writes the snapshot as students.jsonl, projects.jsonl and grades.jsonl in dir.
func (s *Snapshot) ExportDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	if err := WriteJSONL(filepath.Join(dir, StudentsFile), s.Students); err != nil {
		return err
	}
	if err := WriteJSONL(filepath.Join(dir, ProjectsFile), s.Projects); err != nil {
		return err
	}
	return WriteJSONL(filepath.Join(dir, GradesFile), s.Grades)
}

// LoadSnapshotDir reads a snapshot previously written by ExportDir.
// Missing files are treated as empty.
func LoadSnapshotDir(dir string) (*Snapshot, error) {
	students, err := ReadJSONL[tracker.Student](filepath.Join(dir, StudentsFile))
	if err != nil {
		return nil, err
	}
	projects, err := ReadJSONL[tracker.Project](filepath.Join(dir, ProjectsFile))
	if err != nil {
		return nil, err
	}
	grades, err := ReadJSONL[tracker.Grade](filepath.Join(dir, GradesFile))
	if err != nil {
		return nil, err
	}
	return &Snapshot{Students: students, Projects: projects, Grades: grades}, nil
}

// ImportResult counts the records an import added and the ones it skipped.
type ImportResult struct {
	Added   int      `json:"added"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// Replay adds every record of the snapshot through t, students first so grades
// can reference them. Records that fail, for example duplicates, are counted as
// skipped and do not stop the import.
func (s *Snapshot) Replay(t *tracker.Tracker) ImportResult {
	var res ImportResult
	record := func(err error) {
		if err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, err.Error())
			return
		}
		res.Added++
	}

	for _, st := range s.Students {
		record(t.MakeNewStudent(st.First, st.Last, st.GitHub))
	}
	for _, p := range s.Projects {
		record(t.RestoreProject(p.Title, p.Description, p.MaxGrade))
	}
	for _, g := range s.Grades {
		record(t.AssignGrade(g.GitHub, g.Grade, g.Title))
	}
	return res
}
