package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/planvox/planvox/internal/cli/formatter"
	"github.com/planvox/planvox/internal/domain"
	"github.com/planvox/planvox/internal/parse"
	"github.com/spf13/cobra"
)

// planvoxHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func planvoxHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func newNewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Create a plan through a guided form",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("the wizard needs an interactive terminal; use 'planvox ask' for scripted turns")
			}

			var (
				client    string
				budgetRaw string
				strategy  = domain.StrategyBalanced
			)

			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("Client").
						Placeholder("Acme Corp").
						Value(&client).
						Validate(func(s string) error {
							if strings.TrimSpace(s) == "" {
								return fmt.Errorf("client name is required")
							}
							return nil
						}),
					huh.NewInput().
						Title("Budget").
						Placeholder("$500k").
						Value(&budgetRaw).
						Validate(func(s string) error {
							if v, ok := parse.Money(s); !ok || v <= 0 {
								return fmt.Errorf("enter an amount like 250000, $250k or $1.5m")
							}
							return nil
						}),
					huh.NewSelect[domain.Strategy]().
						Title("Strategy").
						Options(
							huh.NewOption("Balanced (70/20/10)", domain.StrategyBalanced),
							huh.NewOption("Digital-first", domain.StrategyDigital),
							huh.NewOption("Awareness (TV + OOH heavy)", domain.StrategyAwareness),
						).
						Value(&strategy),
				),
			).WithTheme(planvoxHuhTheme()).WithShowHelp(false)

			if err := form.Run(); err != nil {
				return err
			}

			budget, _ := parse.Money(budgetRaw)
			s, err := app.Conversations.StartWithPlan(context.Background(), strings.TrimSpace(client), budget, strategy)
			if err != nil {
				return err
			}

			if last := s.LastAgentMessage(); last != nil {
				fmt.Println(formatter.Emphasis(last.Text))
			}
			fmt.Println()
			fmt.Println(formatter.FormatPlan(s.Plan))
			fmt.Println(formatter.Dim("session " + s.ID + "  ·  resume with: planvox chat --session " + s.ID))
			return nil
		},
	}
}
