package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings is the configuration a session runs with, after the config file,
// environment and command-line flags have been merged.
type Settings struct {
	DatabaseURL     string
	CheckReferences bool
	Prompt          string
}

// Overrides carries values given on the command line. Nil fields are unset.
type Overrides struct {
	DatabaseURL     *string
	CheckReferences *bool
}

// LoadDotEnv loads a .env file from the working directory if present.
// Variables already set in the environment take precedence.
func LoadDotEnv() error {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// Resolve merges, lowest precedence first: defaults, the global config file,
// HBA_* environment variables, then command-line overrides.
func Resolve(o Overrides) (*Settings, error) {
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return nil, err
	}

	s := &Settings{
		DatabaseURL:     cfg.DatabaseURL,
		CheckReferences: cfg.CheckReferences,
		Prompt:          cfg.Prompt,
	}

	if v := os.Getenv(EnvDatabaseURL); v != "" {
		s.DatabaseURL = ExpandTilde(v)
	}
	if v := os.Getenv(EnvCheckReferences); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%s must be true or false, got %q", EnvCheckReferences, v)
		}
		s.CheckReferences = b
	}
	if v := os.Getenv(EnvPrompt); v != "" {
		s.Prompt = v
	}

	if o.DatabaseURL != nil && *o.DatabaseURL != "" {
		s.DatabaseURL = ExpandTilde(*o.DatabaseURL)
	}
	if o.CheckReferences != nil {
		s.CheckReferences = *o.CheckReferences
	}

	if s.DatabaseURL == "" {
		s.DatabaseURL = DefaultDatabasePath()
	}
	return s, nil
}

// IsLocalFile reports whether the database URL names a local SQLite file.
func (s *Settings) IsLocalFile() bool {
	u := s.DatabaseURL
	return !strings.Contains(u, "://") || strings.HasPrefix(u, "sqlite://")
}

// EnsureDatabaseDir creates the parent directory of a local SQLite database.
func (s *Settings) EnsureDatabaseDir() error {
	if !s.IsLocalFile() {
		return nil
	}
	path := strings.TrimPrefix(s.DatabaseURL, "sqlite://")
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}
	return nil
}
