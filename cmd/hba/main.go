// Package main provides the hba CLI entry point.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"

	"github.com/hackbright/hba/internal/config"
	"github.com/hackbright/hba/internal/storage"
	"github.com/hackbright/hba/internal/tracker"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output for
	// administrative commands. The shell and exec are always human-readable.
	humanOutput bool

	databaseURL     string
	checkReferences bool
	debugLog        bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hba",
	Short: "Hackbright project tracker",
	Long: `hba tracks students, class projects and the grades students receive.

Run without arguments for the interactive shell:

  HBA Database> new_student Jane Hacker jhacks
  HBA Database> add_project Markov "Tweets generated from Markov chains" 100
  HBA Database> add_grade jhacks 89 Markov
  HBA Database> get_grade jhacks Markov
  Student grade: 89
  HBA Database> quit

The database is a SQLite file (default ~/.local/share/hba/hackbright.db) or a
PostgreSQL URL set with --database, HBA_DATABASE_URL or 'hba config database-url'.`,
	Args:          cobra.NoArgs,
	RunE:          runShell,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database", "", "SQLite path or postgres:// URL")
	rootCmd.PersistentFlags().BoolVar(&checkReferences, "check-references", false, "Verify student and project exist before adding a grade")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Trace SQL statements to stderr")
	rootCmd.Version = Version
}

// mustLoadSettings merges .env, the global config, HBA_* variables and flags, exits on error.
func mustLoadSettings(cmd *cobra.Command) *config.Settings {
	if err := config.LoadDotEnv(); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	var o config.Overrides
	if cmd.Flags().Changed("database") {
		o.DatabaseURL = &databaseURL
	}
	if cmd.Flags().Changed("check-references") {
		o.CheckReferences = &checkReferences
	}

	s, err := config.Resolve(o)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return s
}

// mustOpenDatabase opens the database, exits on error.
// A local SQLite file gets its tables created on first use.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase(s *config.Settings) *storage.DB {
	if err := s.EnsureDatabaseDir(); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	db, err := storage.OpenDB(s.DatabaseURL, storage.WithLogger(newLogger()))
	if err != nil {
		if errors.Is(err, tracker.ErrUnavailable) {
			exitWithError(ExitStoreUnavailable, "database %s is unavailable: %v", displayDatabase(s.DatabaseURL), err)
		}
		exitWithError(ExitError, "opening database: %v", err)
	}

	if db.Driver() == storage.DriverSQLite {
		if err := db.EnsureSchema(); err != nil {
			db.Close()
			exitWithError(ExitError, "%v", err)
		}
	}
	return db
}

// newTracker builds a tracker over db that prints to out.
func newTracker(db *storage.DB, s *config.Settings, out io.Writer) *tracker.Tracker {
	return tracker.New(db, out, tracker.WithReferenceCheck(s.CheckReferences))
}

// newLogger returns the stderr logger; statement tracing is enabled by --debug.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if debugLog {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// displayDatabase renders a database URL with any password removed.
func displayDatabase(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return raw
	}
	return u.Redacted()
}
