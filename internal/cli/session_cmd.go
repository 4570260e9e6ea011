package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"pomoplan/internal/cli/formatter"
	"pomoplan/internal/domain"
	"pomoplan/internal/planner"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage planned sessions",
	}

	cmd.AddCommand(
		newSessionListCmd(app),
		newSessionShowCmd(app),
		newSessionStartCmd(app),
		newSessionCompleteCmd(app),
		newSessionArchiveCmd(app),
		newSessionDeleteCmd(app),
		newSessionRescaleCmd(app),
	)

	return cmd
}

func newSessionListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := app.Sessions.List(context.Background())
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatSessionList(sessions))
			return nil
		},
	}
}

func newSessionShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [date]",
		Short: "Show a session's schedule",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.Sessions.Get(context.Background(), dateArg(args))
			if err != nil {
				return err
			}
			estimates := planner.ComputeTimeEstimates(session.TotalDuration, time.Now())
			fmt.Println(formatter.FormatSessionDetail(session, estimates))
			return nil
		},
	}
}

func newSessionStartCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "start [date]",
		Short: "Start a planned session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			date := dateArg(args)

			// Planned sessions are gated behind an explicit confirmation.
			if !yes && app.interactive() {
				session, err := app.Sessions.Get(ctx, date)
				if err != nil {
					return err
				}
				confirmed, err := confirmStart(session)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Not started.")
					return nil
				}
			}

			session, err := app.Sessions.Start(ctx, date)
			if err != nil {
				return err
			}
			fmt.Printf("Session %s started.\n", session.Date)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Start without confirmation")
	return cmd
}

func confirmStart(session *domain.Session) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Start session %s? (%s of work)", session.Date, planner.FormatMinutes(session.TotalDuration))).
				Affirmative("Start").
				Negative("Not yet").
				Value(&confirmed),
		),
	).WithTheme(pomoplanHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}

func newSessionCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete [date]",
		Short: "Mark a session as completed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.Sessions.Complete(context.Background(), dateArg(args))
			if err != nil {
				return err
			}
			pct := planner.CompletionPercentage(session)
			fmt.Printf("Session %s completed. %s\n", session.Date, formatter.RenderProgress(float64(pct)/100, 14))
			return nil
		},
	}
}

func newSessionArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive [date]",
		Short: "Archive a session, freezing its task state",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.Sessions.Archive(context.Background(), dateArg(args))
			if err != nil {
				return err
			}
			fmt.Printf("Session %s archived with %d unfinished task(s).\n",
				session.Date, session.IncompleteTasks.Count)
			return nil
		},
	}
}

func newSessionDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [date]",
		Short: "Delete a session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := dateArg(args)
			if err := app.Sessions.Delete(context.Background(), date); err != nil {
				return err
			}
			fmt.Printf("Session %s deleted.\n", date)
			return nil
		},
	}
}

func newSessionRescaleCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "rescale <story> <minutes>",
		Short: "Stretch or shrink a story to a new total duration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			minutes, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid minutes %q", args[1])
			}
			if date == "" {
				date = time.Now().Format(domain.DateLayout)
			}

			session, err := app.Sessions.Get(ctx, date)
			if err != nil {
				return err
			}
			if session.Status != domain.SessionPlanned {
				return fmt.Errorf("can only rescale a planned session, %s is %s", date, session.Status)
			}
			story := findStory(session, args[0])
			if story == nil {
				return fmt.Errorf("no story %q in session %s", args[0], date)
			}
			if err := planner.RescaleStoryDuration(story, minutes); err != nil {
				return err
			}
			// Rebuild the timeline so the timeboxes match the new durations.
			session = planner.BuildSession(session.StoryBlocks, session.Date, time.Now())
			if err := app.Sessions.Save(ctx, session); err != nil {
				return err
			}
			fmt.Printf("Story %q rescaled to %s.\n", story.Title, planner.FormatMinutes(minutes))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Session date (YYYY-MM-DD, default today)")
	return cmd
}

// findStory matches by id first, then by exact title.
func findStory(session *domain.Session, ref string) *domain.Story {
	for i := range session.StoryBlocks {
		if session.StoryBlocks[i].ID == ref {
			return &session.StoryBlocks[i]
		}
	}
	for i := range session.StoryBlocks {
		if session.StoryBlocks[i].Title == ref {
			return &session.StoryBlocks[i]
		}
	}
	return nil
}

// dateArg returns the date argument, defaulting to today.
func dateArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return time.Now().Format(domain.DateLayout)
}
