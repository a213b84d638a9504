package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/planvox/planvox/internal/cli/formatter"
	"github.com/planvox/planvox/internal/domain"
	"github.com/planvox/planvox/internal/repository"
	"github.com/spf13/cobra"
)

func newSessionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List stored planning sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries, err := app.Conversations.List(context.Background())
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Println(formatter.Dim("No sessions yet. Start one with 'planvox chat' or 'planvox new'."))
				return nil
			}

			headers := []string{"ID", "Stage", "Client", "Budget", "Messages", "Updated"}
			rows := make([][]string, 0, len(summaries))
			for _, s := range summaries {
				budget := "-"
				if s.Budget > 0 {
					budget = domain.FormatMoney(s.Budget)
				}
				client := s.Client
				if client == "" {
					client = "-"
				}
				rows = append(rows, []string{
					shortID(s.ID),
					string(s.Stage),
					client,
					budget,
					fmt.Sprintf("%d", s.MessageCount),
					s.UpdatedAt.Format("2006-01-02 15:04"),
				})
			}

			fmt.Println(formatter.Header("Sessions"))
			fmt.Println(formatter.RenderTable(headers, rows))
			fmt.Println(formatter.Dim("resume with: planvox chat --session <id>"))
			return nil
		},
	}

	cmd.AddCommand(newSessionsRmCmd(app))
	return cmd
}

func newSessionsRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <session-id>",
		Short: "Delete a stored session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := app.Conversations.Delete(context.Background(), args[0])
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("no session with ID %s", args[0])
				}
				return err
			}
			fmt.Println(formatter.Dim("deleted " + args[0]))
			return nil
		},
	}
}

// shortID truncates a UUID for table display; the full ID is still accepted
// everywhere an ID is taken.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
