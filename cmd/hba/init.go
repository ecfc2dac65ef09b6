package main

import (
	"github.com/hackbright/hba/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

// InitResult is the response for the init command.
type InitResult struct {
	StatusResponse
	Counts storage.Counts `json:"counts"`
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the students, projects and grades tables",
	Long: `Create the students, projects and grades tables if they don't exist.

SQLite databases are initialized automatically on first use; run this once
against a new PostgreSQL database. Existing rows are left untouched.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	settings := mustLoadSettings(cmd)
	db := mustOpenDatabase(settings)
	defer db.Close()

	if err := db.EnsureSchema(); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	counts, err := db.Count()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		outputHuman("Initialized %s database at %s\n", db.Driver(), displayDatabase(settings.DatabaseURL))
		outputHuman("  %d students, %d projects, %d grades\n", counts.Students, counts.Projects, counts.Grades)
		return nil
	}

	return outputJSON(InitResult{
		StatusResponse: StatusResponse{
			Status:   "initialized",
			Driver:   db.Driver(),
			Database: displayDatabase(settings.DatabaseURL),
		},
		Counts: counts,
	})
}
