package tracker

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

func newTestTracker(opts ...Option) (*Tracker, *memStore, *bytes.Buffer) {
	store := newMemStore()
	var out bytes.Buffer
	return New(store, &out, opts...), store, &out
}

func TestMakeNewStudent_ThenLookup(t *testing.T) {
	tr, store, out := newTestTracker()

	if err := tr.MakeNewStudent("Jane", "Hacker", "jhacks"); err != nil {
		t.Fatalf("MakeNewStudent() error = %v", err)
	}
	if got, want := out.String(), "Successfully added student: Jane Hacker\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if store.commits != 1 {
		t.Errorf("commits = %d, want 1", store.commits)
	}

	out.Reset()
	s, err := tr.GetStudentByGitHub("jhacks")
	if err != nil {
		t.Fatalf("GetStudentByGitHub() error = %v", err)
	}
	want := Student{First: "Jane", Last: "Hacker", GitHub: "jhacks"}
	if *s != want {
		t.Errorf("GetStudentByGitHub() = %+v, want %+v", *s, want)
	}
	if got, want := out.String(), "Student: Jane Hacker\nGitHub account: jhacks\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestGetStudentByGitHub_NotFound(t *testing.T) {
	tr, _, out := newTestTracker()

	_, err := tr.GetStudentByGitHub("nobody")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("GetStudentByGitHub() error = %v, want *NotFoundError", err)
	}
	if nf.Entity != "student" || nf.Key != "nobody" {
		t.Errorf("NotFoundError = %+v", nf)
	}
	if out.Len() != 0 {
		t.Errorf("output = %q, want nothing", out.String())
	}
}

func TestMakeNewStudent_Duplicate(t *testing.T) {
	tr, _, _ := newTestTracker()

	if err := tr.MakeNewStudent("Jane", "Hacker", "jhacks"); err != nil {
		t.Fatalf("MakeNewStudent() error = %v", err)
	}
	err := tr.MakeNewStudent("Janet", "Hacker", "jhacks")
	if !IsConstraint(err) {
		t.Fatalf("MakeNewStudent() duplicate error = %v, want *StoreConstraintError", err)
	}
	if !errors.Is(err, ErrConstraint) {
		t.Errorf("errors.Is(err, ErrConstraint) = false")
	}

	s, err := tr.GetStudentByGitHub("jhacks")
	if err != nil {
		t.Fatalf("GetStudentByGitHub() error = %v", err)
	}
	if s.First != "Jane" {
		t.Errorf("First = %q, want original row kept", s.First)
	}
}

func TestMakeNewStudent_Required(t *testing.T) {
	tr, store, _ := newTestTracker()

	err := tr.MakeNewStudent("Jane", "", "jhacks")
	if !IsArgument(err) {
		t.Fatalf("MakeNewStudent() error = %v, want *ArgumentError", err)
	}
	if len(store.executed) != 0 {
		t.Errorf("executed %d statements, want 0", len(store.executed))
	}
}

func TestAddProject_ThenLookup(t *testing.T) {
	tr, _, out := newTestTracker()

	if err := tr.AddProject("Markov", "Tweets generated from Markov chains", 50); err != nil {
		t.Fatalf("AddProject() error = %v", err)
	}
	if got, want := out.String(), "Successfully added Markov.\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	out.Reset()
	p, err := tr.GetProjectByTitle("Markov")
	if err != nil {
		t.Fatalf("GetProjectByTitle() error = %v", err)
	}
	want := Project{Title: "Markov", Description: "Tweets generated from Markov chains", MaxGrade: 50}
	if *p != want {
		t.Errorf("GetProjectByTitle() = %+v, want %+v", *p, want)
	}
	wantOut := "Project Title: Markov\nProject Description: Tweets generated from Markov chains\nMaximum Grade: 50\n"
	if out.String() != wantOut {
		t.Errorf("output = %q, want %q", out.String(), wantOut)
	}
}

func TestGetProjectByTitle_NotFound(t *testing.T) {
	tr, _, _ := newTestTracker()

	_, err := tr.GetProjectByTitle("Wits and Wagers")
	if !IsNotFound(err) {
		t.Fatalf("GetProjectByTitle() error = %v, want *NotFoundError", err)
	}
}

func TestAddProject_InvalidMaxGrade(t *testing.T) {
	tr, store, _ := newTestTracker()

	if err := tr.AddProject("Markov", "desc", 0); !IsArgument(err) {
		t.Fatalf("AddProject() error = %v, want *ArgumentError", err)
	}
	if len(store.executed) != 0 {
		t.Errorf("executed %d statements, want 0", len(store.executed))
	}
}

func TestRestoreProject_EmptyDescription(t *testing.T) {
	tr, store, _ := newTestTracker()

	if err := tr.AddProject("Blockly", "", 50); !IsArgument(err) {
		t.Fatalf("AddProject() with empty description error = %v, want *ArgumentError", err)
	}
	if err := tr.RestoreProject("Blockly", "", 50); err != nil {
		t.Fatalf("RestoreProject() error = %v", err)
	}
	if p := store.projects["Blockly"]; p.MaxGrade != 50 || p.Description != "" {
		t.Errorf("project = %+v", p)
	}
	if err := tr.RestoreProject("", "desc", 50); !IsArgument(err) {
		t.Errorf("RestoreProject() without title error = %v, want *ArgumentError", err)
	}
	if err := tr.RestoreProject("Markov", "", 0); !IsArgument(err) {
		t.Errorf("RestoreProject() with zero max grade error = %v, want *ArgumentError", err)
	}
}

func TestAssignGrade_ThenLookup(t *testing.T) {
	tr, _, out := newTestTracker()

	if err := tr.AssignGrade("jhacks", 89, "Wits and Wagers"); err != nil {
		t.Fatalf("AssignGrade() error = %v", err)
	}
	if got, want := out.String(), "Successfully added grade for jhacks on Wits and Wagers project\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	out.Reset()
	grade, err := tr.GetGradeByGitHubTitle("jhacks", "Wits and Wagers")
	if err != nil {
		t.Fatalf("GetGradeByGitHubTitle() error = %v", err)
	}
	if grade != 89 {
		t.Errorf("grade = %d, want 89", grade)
	}
	if got, want := out.String(), "Student grade: 89\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestGetGradeByGitHubTitle_NotFound(t *testing.T) {
	tr, _, _ := newTestTracker()

	_, err := tr.GetGradeByGitHubTitle("jhacks", "Markov")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("GetGradeByGitHubTitle() error = %v, want *NotFoundError", err)
	}
	if nf.Entity != "grade" {
		t.Errorf("Entity = %q, want grade", nf.Entity)
	}
}

func TestAssignGrade_ReferenceCheck(t *testing.T) {
	tests := []struct {
		name      string
		github    string
		grade     int
		title     string
		wantErr   func(error) bool
		wantWrite bool
	}{
		{"valid", "jhacks", 89, "Markov", nil, true},
		{"unknown student", "nobody", 89, "Markov", IsNotFound, false},
		{"unknown project", "jhacks", 89, "Blockly", IsNotFound, false},
		{"above max grade", "jhacks", 120, "Markov", IsArgument, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, store, _ := newTestTracker(WithReferenceCheck(true))
			if err := tr.MakeNewStudent("Jane", "Hacker", "jhacks"); err != nil {
				t.Fatal(err)
			}
			if err := tr.AddProject("Markov", "Tweets", 100); err != nil {
				t.Fatal(err)
			}
			commitsBefore := store.commits

			err := tr.AssignGrade(tt.github, tt.grade, tt.title)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("AssignGrade() error = %v", err)
			}
			if tt.wantErr != nil && !tt.wantErr(err) {
				t.Fatalf("AssignGrade() error = %v, wrong kind", err)
			}

			wrote := store.commits > commitsBefore
			if wrote != tt.wantWrite {
				t.Errorf("wrote = %v, want %v", wrote, tt.wantWrite)
			}
		})
	}
}

func TestAssignGrade_NoReferenceCheck(t *testing.T) {
	tr, _, _ := newTestTracker()

	// Without the check the store alone decides; memStore has no foreign keys.
	if err := tr.AssignGrade("nobody", 70, "Nothing"); err != nil {
		t.Fatalf("AssignGrade() error = %v", err)
	}
}

func TestAssignGrade_Negative(t *testing.T) {
	tr, _, _ := newTestTracker()

	if err := tr.AssignGrade("jhacks", -1, "Markov"); !IsArgument(err) {
		t.Fatalf("AssignGrade() error = %v, want *ArgumentError", err)
	}
}

func TestStoreErrors(t *testing.T) {
	tests := []struct {
		name    string
		execErr error
		check   func(error) bool
	}{
		{"unavailable", fmt.Errorf("%w: connection refused", ErrUnavailable), IsUnavailable},
		{"constraint", fmt.Errorf("%w: NOT NULL", ErrConstraint), IsConstraint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, store, _ := newTestTracker()
			store.executeErr = tt.execErr

			if _, err := tr.GetStudentByGitHub("jhacks"); !tt.check(err) {
				t.Errorf("GetStudentByGitHub() error = %v", err)
			}
			if err := tr.MakeNewStudent("Jane", "Hacker", "jhacks"); !tt.check(err) {
				t.Errorf("MakeNewStudent() error = %v", err)
			}
		})
	}
}

func TestStoreErrors_Unclassified(t *testing.T) {
	tr, store, _ := newTestTracker()
	store.executeErr = errors.New("syntax error")

	_, err := tr.GetStudentByGitHub("jhacks")
	if err == nil || IsNotFound(err) || IsConstraint(err) || IsUnavailable(err) {
		t.Fatalf("GetStudentByGitHub() error = %v, want plain wrapped error", err)
	}
}

func TestCommitFailure(t *testing.T) {
	tr, store, out := newTestTracker()
	store.commitErr = fmt.Errorf("%w: disk I/O error", ErrUnavailable)

	err := tr.MakeNewStudent("Jane", "Hacker", "jhacks")
	if !IsUnavailable(err) {
		t.Fatalf("MakeNewStudent() error = %v, want *StoreUnavailableError", err)
	}
	if out.Len() != 0 {
		t.Errorf("printed confirmation %q for a failed commit", out.String())
	}
}
