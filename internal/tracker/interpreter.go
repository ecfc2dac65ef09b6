package tracker

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompt is printed before each command is read.
const Prompt = "HBA Database> "

// QuitCommand ends the interpreter loop.
const QuitCommand = "quit"

// MaxLineLength is the longest command line the interpreter accepts (1MB).
// Longer lines are reported and skipped.
const MaxLineLength = 1024 * 1024

// ErrInvalidEntry is returned for an unrecognized command verb.
var ErrInvalidEntry = errors.New("invalid entry")

// command describes one verb of the interpreter.
type command struct {
	usage string
	run   func(t *Tracker, args []string) error
}

var commands = map[string]command{
	"student": {
		usage: "student <github>",
		run: func(t *Tracker, args []string) error {
			if len(args) != 1 {
				return wrongArgs("student", "expected 1 argument", len(args))
			}
			_, err := t.GetStudentByGitHub(args[0])
			return err
		},
	},
	"new_student": {
		usage: "new_student <first> <last> <github>",
		run: func(t *Tracker, args []string) error {
			if len(args) != 3 {
				return wrongArgs("new_student", "expected 3 arguments", len(args))
			}
			return t.MakeNewStudent(args[0], args[1], args[2])
		},
	},
	"project_title": {
		usage: "project_title <title>",
		run: func(t *Tracker, args []string) error {
			if len(args) < 1 {
				return wrongArgs("project_title", "expected a title", len(args))
			}
			_, err := t.GetProjectByTitle(strings.Join(args, " "))
			return err
		},
	},
	"get_grade": {
		usage: "get_grade <github> <title>",
		run: func(t *Tracker, args []string) error {
			if len(args) < 2 {
				return wrongArgs("get_grade", "expected a github account and a title", len(args))
			}
			_, err := t.GetGradeByGitHubTitle(args[0], strings.Join(args[1:], " "))
			return err
		},
	},
	"add_grade": {
		usage: "add_grade <github> <grade> <title>",
		run: func(t *Tracker, args []string) error {
			if len(args) < 3 {
				return wrongArgs("add_grade", "expected a github account, a grade and a title", len(args))
			}
			grade, err := ParseGrade(args[1])
			if err != nil {
				return err
			}
			return t.AssignGrade(args[0], grade, strings.Join(args[2:], " "))
		},
	},
	"add_project": {
		usage: `add_project <title> <description> <max_grade>`,
		run: func(t *Tracker, args []string) error {
			if len(args) < 3 {
				return wrongArgs("add_project", "expected a title, a description and a max grade", len(args))
			}
			last := len(args) - 1
			maxGrade, err := ParseMaxGrade(args[last])
			if err != nil {
				return err
			}
			return t.AddProject(args[0], strings.Join(args[1:last], " "), maxGrade)
		},
	},
}

func wrongArgs(verb, want string, got int) error {
	return &ArgumentError{Command: verb, Reason: fmt.Sprintf("%s, got %d", want, got)}
}

// Usage returns the usage line for a verb, or "" if the verb is unknown.
func Usage(verb string) string {
	if verb == QuitCommand {
		return QuitCommand
	}
	return commands[verb].usage
}

// Interpreter reads command lines and dispatches them to a Tracker.
type Interpreter struct {
	tracker *Tracker
	out     io.Writer
	prompt  string
}

// InterpreterOption configures an Interpreter.
type InterpreterOption func(*Interpreter)

// WithPrompt replaces the default prompt.
func WithPrompt(prompt string) InterpreterOption {
	return func(in *Interpreter) {
		in.prompt = prompt
	}
}

// NewInterpreter creates an interpreter that prints to the tracker's output.
func NewInterpreter(t *Tracker, opts ...InterpreterOption) *Interpreter {
	in := &Interpreter{
		tracker: t,
		out:     t.Out(),
		prompt:  Prompt,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Run prompts for and executes commands from r until "quit" or end of input.
// Command failures are reported on the output stream and do not stop the loop;
// only a read error is returned.
func (in *Interpreter) Run(r io.Reader) error {
	reader := bufio.NewReader(r)

	command := ""
	for command != QuitCommand {
		fmt.Fprint(in.out, in.prompt)
		line, err := readLine(reader)
		if err == io.EOF {
			fmt.Fprintln(in.out)
			return nil
		}
		if err != nil && !errors.Is(err, errLineTooLong) {
			fmt.Fprintln(in.out)
			return err
		}

		verb := ""
		if err == nil {
			verb, err = in.Execute(line)
		}
		if err != nil {
			fmt.Fprintln(in.out, Describe(err))
		}
		command = verb
	}
	return nil
}

var errLineTooLong = &ArgumentError{Reason: fmt.Sprintf("line longer than %d bytes", MaxLineLength)}

// readLine returns the next line without its line ending. A line longer than
// MaxLineLength is consumed and reported as errLineTooLong. A final line
// without a newline is returned before io.EOF.
func readLine(r *bufio.Reader) (string, error) {
	var (
		buf     []byte
		tooLong bool
	)
	for {
		chunk, err := r.ReadSlice('\n')
		if !tooLong && len(buf)+len(chunk) <= MaxLineLength+len("\r\n") {
			buf = append(buf, chunk...)
		} else {
			tooLong = true
			buf = nil
		}

		switch {
		case err == bufio.ErrBufferFull:
			continue
		case err == io.EOF && len(buf) == 0 && !tooLong:
			return "", io.EOF
		case err != nil && err != io.EOF:
			return "", err
		}

		if tooLong {
			return "", errLineTooLong
		}
		line := strings.TrimSuffix(string(buf), "\n")
		line = strings.TrimSuffix(line, "\r")
		if len(line) > MaxLineLength {
			return "", errLineTooLong
		}
		return line, nil
	}
}

// Execute tokenizes and runs a single command line. It returns the command
// verb, which is empty for a blank line, and the error from the operation.
func (in *Interpreter) Execute(line string) (string, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return "", err
	}
	if len(tokens) == 0 {
		return "", nil
	}

	verb, args := tokens[0], tokens[1:]
	if verb == QuitCommand {
		return verb, nil
	}

	cmd, ok := commands[verb]
	if !ok {
		return verb, ErrInvalidEntry
	}

	err = cmd.run(in.tracker, args)
	var argErr *ArgumentError
	if errors.As(err, &argErr) {
		if argErr.Command == "" {
			argErr.Command = verb
		}
		if argErr.Usage == "" {
			argErr.Usage = cmd.usage
		}
	}
	return verb, err
}

// Describe renders an error from Execute as the one-line message shown to the user.
func Describe(err error) string {
	var (
		argErr         *ArgumentError
		notFoundErr    *NotFoundError
		constraintErr  *StoreConstraintError
		unavailableErr *StoreUnavailableError
	)

	switch {
	case errors.Is(err, ErrInvalidEntry):
		return "Invalid Entry. Try again."
	case errors.As(err, &argErr):
		if argErr.Usage != "" {
			return fmt.Sprintf("Invalid Entry: %s. Usage: %s", argErr.Reason, argErr.Usage)
		}
		return fmt.Sprintf("Invalid Entry: %s.", argErr.Reason)
	case errors.As(err, &notFoundErr):
		return fmt.Sprintf("No %s found for %s", notFoundErr.Entity, notFoundErr.Key)
	case errors.As(err, &constraintErr):
		return fmt.Sprintf("Failed %s: %v", constraintErr.Op, constraintErr.Err)
	case errors.As(err, &unavailableErr):
		return fmt.Sprintf("Database unavailable while %s: %v", unavailableErr.Op, unavailableErr.Err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
