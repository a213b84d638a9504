package cli

import (
	"github.com/planvox/planvox/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to the services used by CLI commands.
type App struct {
	Conversations service.ConversationService

	// IsInteractive reports whether stdin is a terminal; the chat shell
	// refuses to start without one.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "planvox" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "planvox",
		Short: "Conversational media plan builder",
		Long:  "planvox builds and refines media plans from plain-English instructions.",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation opens the chat shell.
			return runChat(app, "")
		},
	}

	root.AddCommand(
		newChatCmd(app),
		newNewCmd(app),
		newAskCmd(app),
		newSessionsCmd(app),
	)

	return root
}
