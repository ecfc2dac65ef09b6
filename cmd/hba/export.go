package main

import (
	"io"
	"os"

	"github.com/hackbright/hba/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

// ExportResult is the response for the export command.
type ExportResult struct {
	Status string         `json:"status"`
	Dir    string         `json:"dir"`
	Counts storage.Counts `json:"counts"`
}

// ImportResponse is the response for the import command.
type ImportResponse struct {
	Status string `json:"status"`
	Dir    string `json:"dir"`
	storage.ImportResult
}

var exportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Write all students, projects and grades as JSONL",
	Long: `Write students.jsonl, projects.jsonl and grades.jsonl to a directory,
one record per line, replacing files that already exist.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Add students, projects and grades from JSONL files",
	Long: `Add the records in students.jsonl, projects.jsonl and grades.jsonl from a
directory, as written by 'hba export'. Each record is added the same way the
shell adds it and committed on its own; records that fail (for example a
GitHub account that already exists) are skipped and reported.

The exit status is 4 if any record was skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runExport(cmd *cobra.Command, args []string) error {
	dir := args[0]

	settings := mustLoadSettings(cmd)
	db := mustOpenDatabase(settings)
	defer db.Close()

	snap, err := db.Snapshot()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if err := snap.ExportDir(dir); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	counts := storage.Counts{
		Students: len(snap.Students),
		Projects: len(snap.Projects),
		Grades:   len(snap.Grades),
	}
	if humanOutput {
		outputHuman("Exported %d students, %d projects, %d grades to %s\n",
			counts.Students, counts.Projects, counts.Grades, dir)
		return nil
	}
	return outputJSON(ExportResult{Status: "exported", Dir: dir, Counts: counts})
}

func runImport(cmd *cobra.Command, args []string) error {
	dir := args[0]

	if _, err := os.Stat(dir); err != nil {
		exitWithError(ExitError, "import directory: %v", err)
	}

	snap, err := storage.LoadSnapshotDir(dir)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	settings := mustLoadSettings(cmd)
	db := mustOpenDatabase(settings)

	// Per-record confirmations only in human mode; JSON mode prints the summary alone.
	var out io.Writer = io.Discard
	if humanOutput {
		out = os.Stdout
	}
	res := snap.Replay(newTracker(db, settings, out))
	db.Close()

	if humanOutput {
		outputHuman("Imported %d records, skipped %d\n", res.Added, res.Skipped)
		for _, e := range res.Errors {
			outputHuman("  skipped: %s\n", e)
		}
	} else {
		outputJSON(ImportResponse{Status: "imported", Dir: dir, ImportResult: res})
	}

	if res.Skipped > 0 {
		os.Exit(ExitCommandFailed)
	}
	return nil
}
