package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"pomoplan/internal/cli/formatter"
	"pomoplan/internal/domain"
	"pomoplan/internal/sync"
)

func newPlanCmd(app *App) *cobra.Command {
	var date string
	var noSync bool

	cmd := &cobra.Command{
		Use:   "plan [task]...",
		Short: "Organize tasks into a time-boxed session",
		Long: `Organize free-form task lines into a scheduled session.
Tasks are read from the arguments, or from stdin when no arguments are given
(one task per line).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			lines := args
			if len(lines) == 0 {
				var err error
				lines, err = readLines(os.Stdin)
				if err != nil {
					return fmt.Errorf("reading tasks from stdin: %w", err)
				}
			}
			if len(lines) == 0 {
				return fmt.Errorf("no tasks given")
			}
			if date == "" {
				date = time.Now().Format(domain.DateLayout)
			}

			result, err := app.Plans.PlanDay(ctx, date, lines)
			if err != nil {
				return err
			}

			if gaps := formatter.FormatCoverageGaps(result.Gaps); gaps != "" {
				fmt.Fprint(os.Stderr, gaps)
			}
			fmt.Println(formatter.FormatSessionDetail(result.Session, result.Estimates))

			if err := app.Sessions.Save(ctx, result.Session); err != nil {
				return fmt.Errorf("saving session: %w", err)
			}

			if app.Sync != nil && !noSync {
				if err := pushSession(ctx, app.Sync, result.Session); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: sync failed, session saved locally: %v\n", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Session date (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&noSync, "no-sync", false, "Skip pushing the session to the sync server")

	return cmd
}

func readLines(f *os.File) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

// pushSession queues a saveSession mutation and pushes it.
func pushSession(ctx context.Context, client *sync.Client, session *domain.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := client.Enqueue(sync.MutationSaveSession, sync.SessionArgs{Date: session.Date, Session: raw}); err != nil {
		return err
	}
	return client.Push(ctx)
}
