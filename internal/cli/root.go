package cli

import (
	"github.com/spf13/cobra"

	"pomoplan/internal/service"
	"pomoplan/internal/sync"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Plans    service.PlanService
	Sessions service.SessionService

	// Sync is the device-side client; nil when no server is configured.
	Sync *sync.Client

	// ServeFunc starts the sync server; wired in main so the CLI package
	// stays free of transport setup.
	ServeFunc func(addr string) error

	// IsInteractive reports whether stdin is a terminal; confirmations are
	// skipped when it is not.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "pomoplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "pomoplan",
		Short: "Pomodoro day planner with multi-device sync",
	}

	root.AddCommand(
		newPlanCmd(app),
		newSessionCmd(app),
		newTimerCmd(app),
		newServeCmd(app),
	)

	return root
}
