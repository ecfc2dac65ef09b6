package main

import (
	"os"

	"github.com/hackbright/hba/internal/tracker"
	"github.com/spf13/cobra"
)

func runShell(cmd *cobra.Command, args []string) error {
	enableShellOutput()

	settings := mustLoadSettings(cmd)
	db := mustOpenDatabase(settings)
	defer db.Close()

	var opts []tracker.InterpreterOption
	if settings.Prompt != "" {
		opts = append(opts, tracker.WithPrompt(settings.Prompt))
	}

	t := newTracker(db, settings, os.Stdout)
	return tracker.NewInterpreter(t, opts...).Run(os.Stdin)
}

// enableShellOutput switches error reporting to "error:" lines on stderr;
// the shell never prints JSON.
func enableShellOutput() {
	humanOutput = true
}
