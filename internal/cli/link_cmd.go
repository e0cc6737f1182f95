package cli

import (
	"fmt"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newLinkCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "link <expense-id> <asset-id>",
		Short: "Link an expense to the illiquid asset it pays for",
		Long: "Link an expense to an illiquid asset. If the expense has a specific date " +
			"the asset is scheduled to trigger on that date at the expense amount.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Links.Link(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLinkResult("Linked", res))
			return nil
		},
	}
}

func newUnlinkCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <expense-id>",
		Short: "Remove an expense's asset link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Links.Unlink(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLinkResult("Unlinked", res))
			return nil
		},
	}
}

func newExpenseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Edit expenses",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set-date <expense-id> <YYYY-MM-DD>",
		Short: "Set an expense's specific date and move its linked asset's schedule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Links.SetExpenseDate(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLinkResult("Updated", res))
			return nil
		},
	})

	return cmd
}
