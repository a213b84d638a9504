package session

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/planvox/planvox/internal/domain"
	"github.com/planvox/planvox/internal/parse"
)

func money(v float64) string { return domain.FormatMoney(v) }

var planIntentPattern = regexp.MustCompile(`(?i)\bplan\b|\bcampaign\b|\bcreate\b|\bbuild\b|\bstart\b`)

// initTurn creates the plan from the first budget-bearing message. An
// unparseable budget silently defaults rather than re-asking; a message with
// no plan intent at all just re-prompts.
func (e *Engine) initTurn(text string) turn {
	_, hasMoney := parse.Money(text)
	if !hasMoney && !planIntentPattern.MatchString(text) {
		return turn{
			text:      "Let's start a plan — tell me the client and budget, like **\"Create a plan for Acme ($500k)\"**.",
			suggested: []string{"Create a plan for Acme ($500k)"},
		}
	}

	budget := parse.MoneyOrDefault(text, defaultBudget)
	client, ok := parse.ClientName(text)
	if !ok {
		client = "New Client"
	}

	now := e.now().UTC()
	start := now.Truncate(24 * time.Hour).AddDate(0, 0, 14)
	created := &domain.MediaPlan{
		Campaign: domain.Campaign{
			ID:        uuid.New().String(),
			Client:    client,
			Budget:    budget,
			StartDate: start,
			EndDate:   start.AddDate(0, 0, 90),
		},
		RemainingBudget: budget,
		Version:         1,
		GroupingMode:    domain.GroupingDetailed,
		Strategy:        domain.StrategyBalanced,
	}

	return turn{
		text: fmt.Sprintf("Got it — a **%s** plan for **%s**. How should I split the budget? I can do a balanced **70/20/10** mix, go **digital**-heavy, or lean into **awareness** with TV and OOH.",
			money(budget), client),
		plan:  created,
		stage: domain.StageBudgeting,
		suggested: []string{
			"70/20/10",
			"Go digital-heavy",
			"Focus on awareness",
		},
		action: &domain.Action{
			Type: domain.ActionCreateCampaign,
			Payload: map[string]string{
				"client": client,
				"budget": fmt.Sprintf("%.0f", budget),
			},
		},
	}
}

var confirmPattern = regexp.MustCompile(`(?i)\b(generate|show|yes|yep|yeah|create|build|go ahead|sounds good|sure|ok|okay)\b`)

// budgetingTurn picks a strategy and runs the allocator. Strategy keywords
// and plain confirmations both allocate and advance; anything else defaults
// the strategy to balanced and re-prompts without advancing.
func (e *Engine) budgetingTurn(s *domain.Session, text string) turn {
	lower := strings.ToLower(text)

	if strategy, ok := strategyFromText(lower); ok {
		next := s.Plan.Clone()
		next.Strategy = strategy
		return e.allocateTurn(next, fmt.Sprintf("A **%s** mix it is", strings.ToLower(string(strategy))))
	}

	if confirmPattern.MatchString(lower) {
		return e.allocateTurn(s.Plan, "Building the plan with the current strategy")
	}

	next := s.Plan.Clone()
	next.Strategy = domain.StrategyBalanced
	return turn{
		text: "I'll default to a **balanced 70/20/10** split unless you'd rather go digital-heavy or awareness-first. Say **\"generate\"** when you're ready.",
		plan: next,
		suggested: []string{
			"Generate the plan",
			"Go digital-heavy",
			"Focus on awareness",
		},
	}
}

// allocateTurn runs the Budget Allocator and moves the workflow into
// refinement.
func (e *Engine) allocateTurn(p *domain.MediaPlan, lead string) turn {
	updated := e.alloc.Apply(p)
	return turn{
		text: fmt.Sprintf("%s — I generated **%s** spending %s of the %s budget (%s unallocated). Refine it however you like.",
			lead,
			fmtCount(len(updated.Campaign.Placements), "placement"),
			money(updated.TotalSpend), money(updated.Campaign.Budget), money(updated.RemainingBudget)),
		plan:  updated,
		stage: domain.StageRefinement,
		suggested: []string{
			"Add ESPN SportsCenter",
			"Show me a channel summary",
			"Optimize the plan",
		},
	}
}

// strategyFromText maps strategy keywords onto the taxonomy. "70/20/10" is
// the balanced split's conventional name.
func strategyFromText(lower string) (domain.Strategy, bool) {
	switch {
	case strings.Contains(lower, "70/20/10") || strings.Contains(lower, "balanced"):
		return domain.StrategyBalanced, true
	case strings.Contains(lower, "digital"):
		return domain.StrategyDigital, true
	case strings.Contains(lower, "awareness") || strings.Contains(lower, "tv") ||
		strings.Contains(lower, "ooh") || strings.Contains(lower, "out of home"):
		return domain.StrategyAwareness, true
	}
	return "", false
}
