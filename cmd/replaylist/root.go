package replaylist

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Tsahi-Elkayam/replaylist/pkg/config"
	"github.com/Tsahi-Elkayam/replaylist/pkg/posthog"
	"github.com/Tsahi-Elkayam/replaylist/pkg/utils"
)

var version = "dev" // set during build

// appContext is shared by every command of one root command
type appContext struct {
	logger        *logrus.Logger
	loader        *config.Loader
	config        *config.Config
	cfgFile       string
	verbose       bool
	clientOptions []posthog.Option
}

// Option customizes the root command
type Option func(*appContext)

// WithClientOptions passes extra options to every PostHog client created
func WithClientOptions(opts ...posthog.Option) Option {
	return func(app *appContext) {
		app.clientOptions = append(app.clientOptions, opts...)
	}
}

// newClient creates the PostHog client for one invocation
func (app *appContext) newClient(host, apiKey string) *posthog.Client {
	opts := append([]posthog.Option{posthog.WithLogger(app.logger)}, app.clientOptions...)
	return posthog.NewClient(host, apiKey, opts...)
}

// NewRootCommand creates the root command for the replaylist CLI
func NewRootCommand(logger *logrus.Logger, opts ...Option) *cobra.Command {
	app := &appContext{
		logger: logger,
		loader: config.NewLoader(logger),
	}
	for _, opt := range opts {
		opt(app)
	}

	rootCmd := &cobra.Command{
		Use:   "replaylist",
		Short: "Create PostHog session replay playlists from common filters",
		Long: `replaylist creates saved session replay playlists in PostHog.

A playlist is built from one filter type, optionally limited to a single site:
  person_property  Persons with a property value, or with the property set
  event            Sessions containing an event
  url              Pageviews whose URL contains a substring
  rage_clicks      Sessions with rage clicks
  console_errors   Sessions with console errors
  mobile           Sessions recorded on mobile

Configuration priority (highest to lowest):
  1. Command line flags
  2. Environment variables (POSTHOG_API_KEY, POSTHOG_PROJECT_ID, REPLAYLIST_*)
  3. Configuration file (~/.replaylist.yaml)
  4. Built-in defaults`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loader.LoadConfig(app.cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			app.config = cfg

			if err := utils.ConfigureLogger(logger, utils.LoggerConfig{
				Level:   cfg.Logging.Level,
				Format:  cfg.Logging.Format,
				Color:   cfg.Logging.Color,
				File:    cfg.Logging.File,
				Verbose: app.verbose,
			}); err != nil {
				logger.Warnf("Failed to configure logging: %v", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&app.cfgFile, "config", "",
		"config file (default: searches for .replaylist.yaml in ., ~, /etc/replaylist)")
	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false,
		"verbose output (overrides config log level)")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return NewUsageError(cmd, err)
	})

	rootCmd.AddCommand(NewCreateCommand(app))
	rootCmd.AddCommand(NewFiltersCommand(app))
	rootCmd.AddCommand(NewConfigCommand(app))

	return rootCmd
}

// Execute runs the command tree and returns the process exit code.
// Errors are reported on stderr.
func Execute(ctx context.Context, rootCmd *cobra.Command, stderr io.Writer) int {
	return ReportError(stderr, rootCmd.ExecuteContext(ctx))
}
