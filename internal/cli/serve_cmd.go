package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/api"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/trigger"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr, spec string
	var noSweep bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and run the scheduled asset sweep",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, app, addr, spec, noSweep)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", app.HTTPAddr, "HTTP listen address")
	cmd.Flags().StringVar(&spec, "sweep-spec", app.SweepSpec, "Cron schedule for the asset sweep")
	cmd.Flags().BoolVar(&noSweep, "no-sweep", false, "Serve without the scheduled sweep")

	return cmd
}

// serve runs the API until ctx is cancelled. The sweeper, when enabled, is
// stopped after the server has drained.
func serve(ctx context.Context, app *App, addr, spec string, noSweep bool) error {
	logger := app.logger()

	if !noSweep {
		sweeper, err := trigger.NewSweeper(spec, func(ctx context.Context, now time.Time) error {
			_, err := app.Trigger.Sweep(ctx, now)
			return err
		}, logger, trigger.WithClock(app.now))
		if err != nil {
			return err
		}
		if err := sweeper.Start(ctx); err != nil {
			return err
		}
		defer sweeper.Stop()
	}

	server := api.NewServer(api.Services{
		Records:    app.Records,
		Projection: app.Projection,
		Links:      app.Links,
		Trigger:    app.Trigger,
		Sync:       app.Sync,
	}, app.Horizon, app.now, logger)

	if err := server.ListenAndServe(ctx, addr); err != nil {
		return fmt.Errorf("serving http: %w", err)
	}
	logger.Info("http server stopped")
	return nil
}
