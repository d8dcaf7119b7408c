package replaylist

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tsahi-Elkayam/replaylist/internal/auth"
	"github.com/Tsahi-Elkayam/replaylist/pkg/config"
)

// NewConfigCommand creates the config management command
func NewConfigCommand(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage replaylist configuration",
		Long: `Manage replaylist configuration files and settings.

A config file is optional. It is useful to keep the PostHog host, project
and playlist defaults in one place; the API key is best kept in the
environment (POSTHOG_API_KEY) or a .env file.

Examples:
  # Show current effective configuration
  replaylist config show

  # Show where replaylist looks for config files
  replaylist config path

  # Generate an example config file to customize
  replaylist config init`,
	}

	cmd.AddCommand(NewConfigShowCommand(app))
	cmd.AddCommand(NewConfigInitCommand(app))
	cmd.AddCommand(NewConfigPathCommand(app))
	cmd.AddCommand(NewConfigValidateCommand(app))

	return cmd
}

// NewConfigShowCommand shows the current effective configuration
func NewConfigShowCommand(app *appContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current effective configuration",
		Long: `Show the configuration replaylist is using after merging built-in
defaults, the config file and environment overrides. The API key is masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *app.config
			cfg.PostHog.APIKey = cfg.PostHog.MaskedAPIKey()

			switch strings.ToLower(format) {
			case "yaml", "json":
				return encode(cmd.OutOrStdout(), strings.ToLower(format), cfg)
			case "table":
				showConfigTable(cmd.OutOrStdout(), &cfg, app.loader.UsedConfigFile())
				return nil
			default:
				return NewUsageError(cmd, fmt.Errorf("--format must be one of: table, yaml, json"))
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format (table, yaml, json)")

	return cmd
}

// NewConfigInitCommand creates a new configuration file
func NewConfigInitCommand(app *appContext) *cobra.Command {
	var configFile string
	var force bool
	var minimal bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate an example configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if configFile == "" {
				configFile = app.loader.GetConfigPath()
			}

			if !force && fileExists(configFile) {
				fmt.Fprintf(out, "Config file already exists: %s\n", configFile)
				fmt.Fprintf(out, "Use --force to overwrite, or specify a different path with --file\n")
				return nil
			}

			var err error
			if minimal {
				err = app.loader.SaveConfig(config.DefaultConfig(), configFile)
			} else {
				err = app.loader.GenerateExampleConfig(configFile)
			}
			if err != nil {
				return fmt.Errorf("failed to generate config file: %w", err)
			}

			fmt.Fprintf(out, "Generated configuration file: %s\n", configFile)
			fmt.Fprintf(out, "Set POSTHOG_API_KEY in your environment or a .env file, then run 'replaylist config show'.\n")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFile, "file", "f", "", "Config file path (default: ~/.replaylist.yaml)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config file")
	cmd.Flags().BoolVar(&minimal, "minimal", false, "Write the built-in defaults without comments")

	return cmd
}

// NewConfigPathCommand shows configuration file paths and search locations
func NewConfigPathCommand(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Show configuration file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Default config path: %s\n\n", app.loader.GetConfigPath())

			fmt.Fprintf(out, "Search locations (in order of priority):\n")
			for i, path := range app.loader.SearchPaths() {
				status := "not found"
				if fileExists(path) {
					status = "found"
				}
				fmt.Fprintf(out, "  %d. %s (%s)\n", i+1, path, status)
			}

			if used := app.loader.UsedConfigFile(); used != "" {
				fmt.Fprintf(out, "\nIn use: %s\n", used)
			} else {
				fmt.Fprintf(out, "\nNo config file in use, built-in defaults apply.\n")
			}

			fmt.Fprintf(out, "\nEnvironment variables that override config:\n")
			for _, env := range app.loader.EnvVars() {
				status := "not set"
				if os.Getenv(env) != "" {
					status = "set"
				}
				fmt.Fprintf(out, "  %s (%s)\n", env, status)
			}

			return nil
		},
	}

	return cmd
}

// NewConfigValidateCommand validates the configuration
func NewConfigValidateCommand(app *appContext) *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg := app.config
			if configFile != "" {
				var err error
				if cfg, err = app.loader.LoadConfig(configFile); err != nil {
					return err
				}
			}

			fmt.Fprintf(out, "Configuration is valid.\n")

			warnings := validateConfigWarnings(cfg)
			if len(warnings) > 0 {
				fmt.Fprintf(out, "\nWarnings:\n")
				for _, warning := range warnings {
					fmt.Fprintf(out, "  - %s\n", warning)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFile, "file", "f", "", "Config file to validate (default: auto-detect)")

	return cmd
}

// showConfigTable displays configuration in a readable format
func showConfigTable(w io.Writer, cfg *config.Config, usedFile string) {
	source := "built-in defaults (no config file)"
	if usedFile != "" {
		source = usedFile
	}
	fmt.Fprintf(w, "Config source: %s\n\n", source)

	fmt.Fprintf(w, "PostHog:\n")
	fmt.Fprintf(w, "  Host: %s\n", cfg.PostHog.Host)
	fmt.Fprintf(w, "  Project ID: %s\n", valueOrUnset(cfg.PostHog.ProjectID))
	fmt.Fprintf(w, "  API Key: %s\n\n", valueOrUnset(cfg.PostHog.APIKey))

	fmt.Fprintf(w, "Playlist defaults:\n")
	fmt.Fprintf(w, "  Date From: %s\n", cfg.Playlist.DateFrom)
	fmt.Fprintf(w, "  Filter Test Accounts: %v\n", cfg.Playlist.FilterTestAccounts)
	fmt.Fprintf(w, "  Host Filter: %s\n\n", valueOrUnset(cfg.Playlist.Host))

	fmt.Fprintf(w, "Output:\n")
	fmt.Fprintf(w, "  Format: %s\n\n", cfg.Output.Format)

	fmt.Fprintf(w, "Logging:\n")
	fmt.Fprintf(w, "  Level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(w, "  Format: %s\n", cfg.Logging.Format)
	if cfg.Logging.File != "" {
		fmt.Fprintf(w, "  File: %s\n", cfg.Logging.File)
	}
}

// validateConfigWarnings returns configuration warnings
func validateConfigWarnings(cfg *config.Config) []string {
	var warnings []string

	if cfg.PostHog.APIKey == "" {
		warnings = append(warnings, "No API key configured - pass --api-key or set POSTHOG_API_KEY")
	} else if kind := auth.ClassifyKey(cfg.PostHog.APIKey); kind != auth.KeyPersonal {
		warnings = append(warnings, fmt.Sprintf("API key looks like a %s key; playlists need a personal API key (phx_...)", kind))
	}

	if cfg.PostHog.ProjectID == "" {
		warnings = append(warnings, "No project ID configured - pass --project-id or set POSTHOG_PROJECT_ID")
	}

	if strings.Contains(cfg.PostHog.Host, "://") {
		warnings = append(warnings, "PostHog host should not include a scheme, e.g. eu.posthog.com")
	}

	return warnings
}

func valueOrUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
