package main

import (
	"errors"
	"fmt"

	"github.com/hackbright/hba/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

// ConfigResponse is the response for config get commands.
type ConfigResponse struct {
	Path            string `json:"path"`
	DatabaseURL     string `json:"database_url,omitempty"`
	CheckReferences bool   `json:"check_references"`
	Prompt          string `json:"prompt,omitempty"`
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set global configuration values",
	Long: `Get or set values in ~/.config/hba/config.yml.

Usage:
  hba config                                  # Show all config
  hba config database-url                     # Get specific value
  hba config database-url postgres:///hackbright
  hba config check-references true

Keys:
  database-url      SQLite path or postgres:// URL (env: HBA_DATABASE_URL)
  check-references  Verify student and project exist before adding a grade
                    (env: HBA_CHECK_REFERENCES)
  prompt            Shell prompt (env: HBA_PROMPT)`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	// No args: show all config
	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("database-url:      %s\n", displayDatabase(cfg.DatabaseURL))
			fmt.Printf("check-references:  %t\n", cfg.CheckReferences)
			fmt.Printf("prompt:            %s\n", cfg.Prompt)
			return nil
		}
		return outputJSON(ConfigResponse{
			Path:            config.GlobalConfigPath(),
			DatabaseURL:     displayDatabase(cfg.DatabaseURL),
			CheckReferences: cfg.CheckReferences,
			Prompt:          cfg.Prompt,
		})
	}

	key := config.NormalizeKey(args[0])

	// One arg: get specific value
	if len(args) == 1 {
		value, err := cfg.Get(key)
		if err != nil {
			exitWithError(ExitError, "%v (valid: %v)", err, config.Keys)
		}
		if key == "database-url" {
			value = displayDatabase(value)
		}
		if humanOutput {
			fmt.Println(value)
			return nil
		}
		return outputJSON(map[string]string{key: value})
	}

	// Two args: set value
	value := args[1]
	if err := cfg.Set(key, value); err != nil {
		if errors.Is(err, config.ErrUnknownKey) {
			exitWithError(ExitError, "%v (valid: %v)", err, config.Keys)
		}
		exitWithError(ExitConfigError, "%v", err)
	}

	if err := cfg.Save(); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s\n", key)
		return nil
	}
	return outputJSON(UpdateResponse{
		Status: "updated",
		Key:    key,
		Value:  displayDatabase(value),
	})
}
