package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/planvox/planvox/internal/cli/formatter"
	"github.com/planvox/planvox/internal/domain"
)

// chatModel is the interactive shell: a transcript, a prompt, and the plan
// table re-rendered after turns that change it.
type chatModel struct {
	app     *App
	session *domain.Session
	input   textinput.Model

	transcript []string
	waiting    bool
	err        error
}

type replyMsg struct {
	reply       domain.Message
	planChanged bool
}

type turnErrMsg struct{ err error }

func newChatModel(app *App, s *domain.Session) *chatModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 500

	m := &chatModel{app: app, session: s, input: ti}

	// Replay stored history so a resumed session picks up where it left off.
	for _, msg := range s.History {
		m.transcript = append(m.transcript, renderMessage(msg))
	}
	if s.Plan != nil {
		m.transcript = append(m.transcript, formatter.FormatPlan(s.Plan))
	}
	return m
}

func (m *chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.waiting {
				return m, nil
			}
			input := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if input == "" {
				return m, nil
			}
			if input == "exit" || input == "quit" {
				return m, tea.Quit
			}
			m.transcript = append(m.transcript, formatter.Dim("you> ")+input)
			m.waiting = true
			return m, m.turnCmd(input)
		}

	case replyMsg:
		m.waiting = false
		m.transcript = append(m.transcript, renderMessage(msg.reply))
		if msg.planChanged && m.session.Plan != nil {
			m.transcript = append(m.transcript, formatter.FormatPlan(m.session.Plan))
		}
		return m, nil

	case turnErrMsg:
		m.waiting = false
		m.err = msg.err
		m.transcript = append(m.transcript, formatter.StyleRed.Render(fmt.Sprintf("error: %v", msg.err)))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// turnCmd runs one turn against the conversation service. The session
// pointer is the single mutable context; bubbletea delivers messages
// serially so no turn overlaps another.
func (m *chatModel) turnCmd(input string) tea.Cmd {
	before := planFingerprint(m.session.Plan)
	return func() tea.Msg {
		reply, err := m.app.Conversations.HandleTurn(context.Background(), m.session, input)
		if err != nil {
			return turnErrMsg{err: err}
		}
		return replyMsg{reply: reply, planChanged: planFingerprint(m.session.Plan) != before}
	}
}

func (m *chatModel) View() string {
	var b strings.Builder
	for _, line := range m.transcript {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.waiting {
		b.WriteString(formatter.Dim("thinking..."))
		b.WriteString("\n")
	}

	prompt := formatter.StylePurple.Render("plan") + formatter.Dim("> ")
	b.WriteString(prompt)
	b.WriteString(m.input.View())
	return b.String()
}

// renderMessage formats one history entry for the transcript, including
// suggested replies and any side-effect acknowledgment.
func renderMessage(msg domain.Message) string {
	if msg.Role == domain.RoleUser {
		return formatter.Dim("you> ") + msg.Text
	}

	var b strings.Builder
	b.WriteString(formatter.Emphasis(msg.Text))
	if msg.Action != nil {
		b.WriteString("\n")
		b.WriteString(formatter.StyleBlue.Render(fmt.Sprintf("→ %s", actionLabel(msg.Action))))
	}
	if len(msg.SuggestedReplies) > 0 {
		b.WriteString("\n")
		b.WriteString(formatter.Dim("try: " + strings.Join(msg.SuggestedReplies, "  ·  ")))
	}
	return b.String()
}

func actionLabel(a *domain.Action) string {
	switch a.Type {
	case domain.ActionExportPDF:
		return "exporting PDF"
	case domain.ActionExportPPT:
		return "exporting slide deck"
	case domain.ActionLayoutLeft, domain.ActionLayoutRight, domain.ActionLayoutBottom:
		return "layout change: " + strings.ToLower(strings.TrimPrefix(string(a.Type), "LAYOUT_"))
	case domain.ActionCreateCampaign:
		return "campaign created"
	case domain.ActionCreateFlight:
		return "flight updated"
	default:
		return string(a.Type)
	}
}

// planFingerprint captures the parts of a plan that should trigger a table
// re-render when they change.
func planFingerprint(p *domain.MediaPlan) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%d|%d|%s|%.2f|%d", p.Version, len(p.Campaign.Placements), p.GroupingMode, p.TotalSpend, activeFingerprint(p))
}

func activeFingerprint(p *domain.MediaPlan) int {
	return p.ActiveCount()
}
