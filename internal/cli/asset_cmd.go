package cli

import (
	"fmt"
	"time"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/calendar"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAssetsCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "assets",
		Short: "List liquid and illiquid assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.Records.Assets(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), list)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAssets(list, app.Currency))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON")

	return cmd
}

func newSweepCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Trigger scheduled assets whose date has arrived",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			if date != "" {
				d, err := calendar.ParseDate(date)
				if err != nil {
					return fmt.Errorf("invalid --date %q: %w", date, err)
				}
				now = d.Add(12 * time.Hour)
			}

			res, err := app.Trigger.Sweep(cmd.Context(), now)
			if err != nil && res == nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSweep(res, app.Currency))
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Sweep as of this day (YYYY-MM-DD) instead of today")

	return cmd
}
