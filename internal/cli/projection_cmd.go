package cli

import (
	"fmt"
	"strconv"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/cli/formatter"
	"github.com/spf13/cobra"
)

// horizonFlag registers --months defaulting to the configured horizon.
func horizonFlag(cmd *cobra.Command, app *App, months *int) {
	cmd.Flags().IntVarP(months, "months", "m", app.Horizon, "Number of months to project")
}

func newProjectCmd(app *App) *cobra.Command {
	var months int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project the balance month by month",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Projection.Project(cmd.Context(), months)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), p)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjection(p, app.Currency))
			return nil
		},
	}

	horizonFlag(cmd, app, &months)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON")

	return cmd
}

func newMarkersCmd(app *App) *cobra.Command {
	var months int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "markers",
		Short: "List months where schedules start or end or yearly expenses fire",
		RunE: func(cmd *cobra.Command, args []string) error {
			markers, err := app.Projection.Markers(cmd.Context(), months)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), markers)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMarkers(markers))
			return nil
		},
	}

	horizonFlag(cmd, app, &months)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON")

	return cmd
}

func newDetailCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "detail <month>",
		Short: "Show what resolves in one projected month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("month must be an integer, got %q", args[0])
			}
			d, err := app.Projection.Detail(cmd.Context(), month)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDetail(d))
			return nil
		},
	}
}
