package replaylist

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Tsahi-Elkayam/replaylist/internal/auth"
	"github.com/Tsahi-Elkayam/replaylist/pkg/config"
	"github.com/Tsahi-Elkayam/replaylist/pkg/models"
	"github.com/Tsahi-Elkayam/replaylist/pkg/posthog"
	"github.com/Tsahi-Elkayam/replaylist/pkg/types"
	"github.com/Tsahi-Elkayam/replaylist/pkg/validation"
)

// NewCreateCommand creates the create command
func NewCreateCommand(app *appContext) *cobra.Command {
	opts := &types.CreateOptions{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a session replay playlist",
		Long: `Create a PostHog session replay playlist from one filter type.

Recordings are ordered by start time (newest first) and only recordings with
more than 5 active seconds are included.

Required flags per filter type:
  person_property  --property-key (with --property-value or --is-set)
  event            --event-name (optional --event-property-key/--event-property-value)
  url              --url
  rage_clicks, console_errors, mobile: none`,
		Example: `  # LinkedIn Ad visitors
  replaylist create --api-key phx_xxx --project-id 12345 --name "LinkedIn Visitors" \
      --filter-type person_property --property-key li_fat_id --is-set --host thelai.com

  # Rage clicks
  replaylist create --api-key phx_xxx --project-id 12345 --name "Rage Clicks" \
      --filter-type rage_clicks --host thelai.com

  # Specific URL, printing the request body instead of sending it
  replaylist create --project-id 12345 --name "Checkout Sessions" \
      --filter-type url --url "/checkout" --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreateCommand(cmd.Context(), cmd, opts, app)
		},
	}

	// Credentials and target
	cmd.Flags().StringVar(&opts.APIKey, "api-key", "",
		"PostHog personal API key (phx_...), or POSTHOG_API_KEY")
	cmd.Flags().StringVar(&opts.ProjectID, "project-id", "",
		"PostHog project ID, or POSTHOG_PROJECT_ID")
	cmd.Flags().StringVar(&opts.PostHogHost, "posthog-host", posthog.DefaultHost,
		"PostHog host (us.posthog.com or eu.posthog.com)")

	// Playlist
	cmd.Flags().StringVar(&opts.Name, "name", "", "Playlist name")
	cmd.Flags().StringVar(&opts.Description, "description", "", "Playlist description")
	cmd.Flags().Var(&opts.FilterType, "filter-type",
		fmt.Sprintf("Type of filter to create (%s)", types.FilterTypeNames()))
	cmd.Flags().StringVar(&opts.Host, "host", "", "Filter by host/domain (e.g., thelai.com)")
	cmd.Flags().StringVar(&opts.DateFrom, "date-from", models.DefaultDateFrom, "Date range (e.g., -30d, -90d)")
	cmd.Flags().BoolVar(&opts.FilterTestAccounts, "filter-test-accounts", false, "Filter out test accounts")

	// person_property
	cmd.Flags().StringVar(&opts.PropertyKey, "property-key", "", "Person property key (for person_property filter)")
	cmd.Flags().StringVar(&opts.PropertyValue, "property-value", "", "Person property value (for person_property filter)")
	cmd.Flags().BoolVar(&opts.IsSet, "is-set", false, "Check if property is set (for person_property filter)")

	// event
	cmd.Flags().StringVar(&opts.EventName, "event-name", "", "Event name (for event filter)")
	cmd.Flags().StringVar(&opts.EventPropertyKey, "event-property-key", "", "Event property key")
	cmd.Flags().StringVar(&opts.EventPropertyValue, "event-property-value", "", "Event property value")

	// url
	cmd.Flags().StringVar(&opts.URL, "url", "", "URL substring to filter (for url filter)")

	// Output
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text,json,yaml)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Print the request body without creating the playlist")

	return cmd
}

// runCreateCommand executes the create command
func runCreateCommand(ctx context.Context, cmd *cobra.Command, opts *types.CreateOptions, app *appContext) error {
	if app.config == nil {
		return fmt.Errorf("configuration not loaded")
	}

	resolveCreateOptions(cmd.Flags(), opts, app.config)

	if err := validation.ValidateStruct(opts); err != nil {
		return NewUsageError(cmd, err)
	}

	app.logger.WithFields(logrus.Fields{
		"project":     opts.ProjectID,
		"posthog":     opts.PostHogHost,
		"filter_type": opts.FilterType,
		"host":        opts.Host,
		"date_from":   opts.DateFrom,
	}).Debug("Creating playlist")

	payload := posthog.NewPlaylistPayload(opts)

	if opts.DryRun {
		return NewJSONEncoder(cmd.OutOrStdout()).Encode(payload)
	}

	if err := auth.CheckKey(opts.APIKey); err != nil {
		app.logger.Warn(err)
	}

	client := app.newClient(opts.PostHogHost, opts.APIKey)
	result, err := client.CreatePlaylist(ctx, opts.ProjectID, payload)
	if err != nil {
		return err
	}

	return printPlaylistResult(cmd.OutOrStdout(), result, opts.Output)
}

// resolveCreateOptions fills options that were not given on the command line
// from configuration (which already includes environment overrides)
func resolveCreateOptions(flags *pflag.FlagSet, opts *types.CreateOptions, cfg *config.Config) {
	setString := func(name string, target *string, value string) {
		if !flags.Changed(name) && value != "" {
			*target = value
		}
	}
	setBool := func(name string, target *bool, value bool) {
		if !flags.Changed(name) {
			*target = value
		}
	}

	setString("api-key", &opts.APIKey, cfg.PostHog.APIKey)
	setString("project-id", &opts.ProjectID, cfg.PostHog.ProjectID)
	setString("posthog-host", &opts.PostHogHost, cfg.PostHog.Host)
	setString("date-from", &opts.DateFrom, cfg.Playlist.DateFrom)
	setString("host", &opts.Host, cfg.Playlist.Host)
	setString("output", &opts.Output, cfg.Output.Format)
	setBool("filter-test-accounts", &opts.FilterTestAccounts, cfg.Playlist.FilterTestAccounts)
}

// printPlaylistResult prints the created playlist in the requested format
func printPlaylistResult(w io.Writer, result *models.PlaylistResult, format string) error {
	switch format {
	case "json", "yaml":
		return encode(w, format, result)
	default:
		fmt.Fprintf(w, "Playlist created successfully!\n")
		fmt.Fprintf(w, "  Name: %s\n", result.Name)
		fmt.Fprintf(w, "  ID: %d\n", result.ID)
		fmt.Fprintf(w, "  Short ID: %s\n", result.ShortID)
		fmt.Fprintf(w, "  URL: %s\n", result.URL)
		return nil
	}
}
