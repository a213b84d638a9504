package session

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/planvox/planvox/internal/domain"
)

// layoutPattern matches the global canvas commands. These run before the
// state machine and the router, in any stage, and never advance the stage.
var layoutPattern = regexp.MustCompile(`(?i)\b(?:switch|move|dock|put)\b.*\b(left|right|bottom)\b|\blayout\s+(left|right|bottom)\b`)

func layoutTurn(text string) (turn, bool) {
	m := layoutPattern.FindStringSubmatch(text)
	if m == nil {
		return turn{}, false
	}
	side := m[1]
	if side == "" {
		side = m[2]
	}
	side = strings.ToLower(side)

	var action domain.ActionType
	switch side {
	case "left":
		action = domain.ActionLayoutLeft
	case "right":
		action = domain.ActionLayoutRight
	default:
		action = domain.ActionLayoutBottom
	}

	return turn{
		text:   fmt.Sprintf("Moving the chat panel to the **%s**.", side),
		action: &domain.Action{Type: action},
	}, true
}

var finishPattern = regexp.MustCompile(`(?i)\b(?:finish|finalize|finalise|wrap up|we'?re done|all done|complete)\b.*\bplan\b|\bthat'?s everything\b|^\s*done\s*[.!]?\s*$`)

// finishTurn closes out the workflow. The next message after this resets
// the session to INIT.
func (e *Engine) finishTurn(s *domain.Session, text string) (turn, bool) {
	if s.Plan == nil || !finishPattern.MatchString(text) {
		return turn{}, false
	}
	p := s.Plan
	return turn{
		text: fmt.Sprintf("Done! The **%s** plan is locked: %s, %s of %s spent, forecasting %.1fM impressions. Say anything to start a new plan.",
			p.Campaign.Client,
			fmtCount(len(p.Campaign.Placements), "placement"),
			money(p.TotalSpend), money(p.Campaign.Budget),
			p.Metrics.Impressions/1_000_000),
		stage:     domain.StageFinished,
		suggested: []string{"Start a new plan"},
	}, true
}
