package cli

import (
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var errSyncDisabled = errors.New("cloud sync is not configured (set NUMORAQ_REMOTE_DSN)")

// App holds the services and settings CLI commands run against. Sync is nil
// when no remote is configured.
type App struct {
	Records    service.RecordService
	Projection service.ProjectionService
	Links      service.LinkService
	Trigger    service.TriggerService
	Sync       service.SyncService

	Horizon   int
	Currency  string
	HTTPAddr  string
	SweepSpec string
	Logger    logrus.FieldLogger

	// Clock defaults to time.Now in UTC.
	Clock func() time.Time
	// IsInteractive reports whether stdout is a terminal. Spinners only run
	// when it returns true.
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Clock != nil {
		return a.Clock()
	}
	return time.Now().UTC()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() logrus.FieldLogger {
	if a.Logger != nil {
		return a.Logger
	}
	return logrus.StandardLogger()
}

// NewRootCmd creates the top-level "numoraq" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "numoraq",
		Short:         "Personal finance projection and scheduled asset tracking",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newImportCmd(app),
		newExportCmd(app),
		newProjectCmd(app),
		newMarkersCmd(app),
		newDetailCmd(app),
		newAssetsCmd(app),
		newSweepCmd(app),
		newLinkCmd(app),
		newUnlinkCmd(app),
		newExpenseCmd(app),
		newSyncCmd(app),
		newServeCmd(app),
	)

	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
