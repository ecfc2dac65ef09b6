// Package config handles the global hba configuration file and its
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/hba/config.yml.
type GlobalConfig struct {
	DatabaseURL     string `yaml:"database_url,omitempty"`
	CheckReferences bool   `yaml:"check_references,omitempty"`
	Prompt          string `yaml:"prompt,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "hba"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
	// DatabaseFile is the default SQLite file under XDG_DATA_HOME/hba.
	DatabaseFile = "hackbright.db"
)

// Environment variables that override the config file.
const (
	EnvDatabaseURL     = "HBA_DATABASE_URL"
	EnvCheckReferences = "HBA_CHECK_REFERENCES"
	EnvPrompt          = "HBA_PROMPT"
)

// Keys accepted by Get and Set.
var Keys = []string{"database-url", "check-references", "prompt"}

// ErrUnknownKey is returned for a key not in Keys.
var ErrUnknownKey = errors.New("unknown configuration key")

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/hba/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// DefaultDatabasePath returns the SQLite file used when no database is configured.
// Respects XDG_DATA_HOME, defaults to ~/.local/share/hba/hackbright.db.
func DefaultDatabasePath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DatabaseFile
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, GlobalConfigDir, DatabaseFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			globalConfigCache = &GlobalConfig{}
			return globalConfigCache, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	if cfg.DatabaseURL != "" {
		cfg.DatabaseURL = ExpandTilde(cfg.DatabaseURL)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// Save writes the config to GlobalConfigPath, creating its directory.
func (c *GlobalConfig) Save() error {
	path := GlobalConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding global config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing global config: %w", err)
	}

	globalConfigCache = c
	return nil
}

// Get returns the value of a key as text.
func (c *GlobalConfig) Get(key string) (string, error) {
	switch NormalizeKey(key) {
	case "database-url":
		return c.DatabaseURL, nil
	case "check-references":
		return strconv.FormatBool(c.CheckReferences), nil
	case "prompt":
		return c.Prompt, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// Set parses and assigns the value of a key.
func (c *GlobalConfig) Set(key, value string) error {
	switch NormalizeKey(key) {
	case "database-url":
		c.DatabaseURL = ExpandTilde(value)
	case "check-references":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("check-references must be true or false, got %q", value)
		}
		c.CheckReferences = b
	case "prompt":
		c.Prompt = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// NormalizeKey converts key formats (database_url, DATABASE-URL) to database-url.
func NormalizeKey(key string) string {
	key = strings.ToLower(key)
	return strings.ReplaceAll(key, "_", "-")
}

// ExpandTilde expands a leading ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
