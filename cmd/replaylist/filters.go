package replaylist

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tsahi-Elkayam/replaylist/pkg/filters"
)

// NewFiltersCommand creates the command listing the supported filter types
func NewFiltersCommand(app *appContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "filters",
		Short: "List supported filter types and their flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			specs := filters.All()
			app.logger.WithField("count", len(specs)).Debug("Listing filter types")

			switch strings.ToLower(output) {
			case "json", "yaml":
				return encode(cmd.OutOrStdout(), strings.ToLower(output), specs)
			case "text":
				return printFilterTable(cmd.OutOrStdout(), specs)
			default:
				return NewUsageError(cmd, fmt.Errorf("--output must be one of: text, json, yaml"))
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text,json,yaml)")

	return cmd
}

func printFilterTable(w io.Writer, specs []filters.Spec) error {
	rowFormat := "%-16s %-28s %-45s %s\n"

	fmt.Fprintf(w, rowFormat, "TYPE", "REQUIRED", "OPTIONAL", "DESCRIPTION")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for _, spec := range specs {
		fmt.Fprintf(w, rowFormat, spec.Type, flagList(spec.Required), flagList(spec.Optional), spec.Description)
	}
	return nil
}

func flagList(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	flags := make([]string, len(names))
	for i, name := range names {
		flags[i] = "--" + name
	}
	return strings.Join(flags, ", ")
}
