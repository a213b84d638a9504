package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/planvox/planvox/internal/cli/formatter"
	"github.com/planvox/planvox/internal/domain"
	"github.com/planvox/planvox/internal/repository"
	"github.com/spf13/cobra"
)

func newAskCmd(app *App) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "ask <instruction>",
		Short: "Run one instruction against the most recent session",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			text := strings.Join(args, " ")

			s, err := askSession(ctx, app, sessionID)
			if err != nil {
				return err
			}

			reply, err := app.Conversations.HandleTurn(ctx, s, text)
			if err != nil {
				return err
			}

			fmt.Println(formatter.Emphasis(reply.Text))
			if len(reply.SuggestedReplies) > 0 {
				fmt.Println(formatter.Dim("try: " + strings.Join(reply.SuggestedReplies, "  ·  ")))
			}
			if s.Plan != nil {
				fmt.Println()
				fmt.Println(formatter.FormatPlan(s.Plan))
			}
			fmt.Println(formatter.Dim("session " + s.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Target a stored session by ID (default: most recent)")
	return cmd
}

// askSession picks the target conversation: an explicit ID, else the most
// recently updated session, else a brand-new one.
func askSession(ctx context.Context, app *App, sessionID string) (*domain.Session, error) {
	if sessionID != "" {
		s, err := app.Conversations.GetByID(ctx, sessionID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("no session with ID %s", sessionID)
			}
			return nil, err
		}
		return s, nil
	}

	s, err := app.Conversations.Latest(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return app.Conversations.Start(ctx)
		}
		return nil, err
	}
	return s, nil
}
