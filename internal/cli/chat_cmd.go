package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/planvox/planvox/internal/domain"
	"github.com/planvox/planvox/internal/repository"
	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Open the interactive planning chat",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(app, sessionID)
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Resume a stored session by ID")
	return cmd
}

func runChat(app *App, sessionID string) error {
	if app.IsInteractive != nil && !app.IsInteractive() {
		return fmt.Errorf("chat needs an interactive terminal; use 'planvox ask' for scripted turns")
	}

	ctx := context.Background()
	s, err := resolveSession(ctx, app, sessionID)
	if err != nil {
		return err
	}

	program := tea.NewProgram(newChatModel(app, s))
	_, err = program.Run()
	return err
}

// resolveSession loads the requested session, or starts a new one when no
// ID is given.
func resolveSession(ctx context.Context, app *App, sessionID string) (*domain.Session, error) {
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
	return app.Conversations.Start(ctx)
}
