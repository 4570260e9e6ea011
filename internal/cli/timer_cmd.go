package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pomoplan/internal/domain"
)

func newTimerCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "timer [date]",
		Short: "Run the pomodoro timer for a session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			date := dateArg(args)

			session, err := app.Sessions.Get(ctx, date)
			if err != nil {
				return err
			}
			if session.Status == domain.SessionPlanned {
				return fmt.Errorf("session %s has not been started yet, run `pomoplan session start %s`", date, date)
			}
			if !session.Mutable() {
				return fmt.Errorf("session %s is archived", date)
			}

			model := newTimerModel(session)
			prog := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := prog.Run(); err != nil {
				return fmt.Errorf("running timer: %w", err)
			}

			// Persist box completion recorded during the run.
			if err := app.Sessions.Save(ctx, session); err != nil {
				return fmt.Errorf("saving session: %w", err)
			}
			if app.Sync != nil {
				if err := pushSession(ctx, app.Sync, session); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "Warning: sync failed, session saved locally:", err)
				}
			}
			return nil
		},
	}
}
