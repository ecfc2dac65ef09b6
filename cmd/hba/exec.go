package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hackbright/hba/internal/tracker"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(execCmd)
}

var execCmd = &cobra.Command{
	Use:   "exec <command>...",
	Short: "Run shell commands without the prompt",
	Long: `Run one or more shell commands and exit. Each argument is a full command line.

Examples:
  hba exec "student jhacks"
  hba exec "new_student Jane Hacker jhacks" "get_grade jhacks Markov"

Results go to stdout and failures to stderr. The exit status is 4 if any
command failed. A "quit" argument stops processing.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func runExec(cmd *cobra.Command, args []string) error {
	settings := mustLoadSettings(cmd)
	db := mustOpenDatabase(settings)

	t := newTracker(db, settings, os.Stdout)
	failed := execLines(tracker.NewInterpreter(t), args, os.Stderr)
	db.Close()

	if failed > 0 {
		os.Exit(ExitCommandFailed)
	}
	return nil
}

// execLines runs each line through the interpreter, reporting failures to errOut.
// It stops after "quit" and returns the number of failed commands.
func execLines(in *tracker.Interpreter, lines []string, errOut io.Writer) int {
	failed := 0
	for _, line := range lines {
		verb, err := in.Execute(line)
		if err != nil {
			fmt.Fprintln(errOut, tracker.Describe(err))
			failed++
		}
		if verb == tracker.QuitCommand {
			break
		}
	}
	return failed
}
