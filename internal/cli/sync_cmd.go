package cli

import (
	"fmt"
	"time"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSyncCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push, pull or inspect the cloud snapshot",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Sync == nil {
				return errSyncDisabled
			}
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "push",
			Short: "Upload local data as the latest snapshot",
			RunE: func(cmd *cobra.Command, args []string) error {
				stop := formatter.StartSpinner(cmd.OutOrStdout(), app.interactive(), "pushing snapshot")
				ts, err := app.Sync.Push(cmd.Context())
				stop()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s Pushed snapshot at %s\n",
					formatter.StyleGreen.Render("✔"), ts.Format(time.RFC3339))
				return nil
			},
		},
		&cobra.Command{
			Use:   "pull",
			Short: "Replace local data with the latest snapshot",
			RunE: func(cmd *cobra.Command, args []string) error {
				stop := formatter.StartSpinner(cmd.OutOrStdout(), app.interactive(), "pulling snapshot")
				data, err := app.Sync.Pull(cmd.Context())
				stop()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s Pulled %s\n",
					formatter.StyleGreen.Render("✔"), formatter.Plural(data.RecordCount(), "record"))
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the sync state and last sync time",
			RunE: func(cmd *cobra.Command, args []string) error {
				st, err := app.Sync.Status(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSyncStatus(st, app.now()))
				return nil
			},
		},
	)

	return cmd
}
