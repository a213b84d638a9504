// Package session owns the conversation workflow: which stage the dialogue
// is in, the plan under construction, and the append-only message history.
// Each turn produces exactly one agent reply; nothing in a turn can abort
// the session.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/planvox/planvox/internal/allocator"
	"github.com/planvox/planvox/internal/domain"
	"github.com/planvox/planvox/internal/router"
)

const defaultBudget = 100_000.0

// Engine processes turns against a Session. It is synchronous and
// single-writer: one message is fully handled before the next is accepted.
type Engine struct {
	router *router.Router
	alloc  *allocator.Allocator
	now    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock injects a deterministic time source for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine builds an engine around the given allocator.
func NewEngine(alloc *allocator.Allocator, opts ...Option) *Engine {
	e := &Engine{
		router: router.New(),
		alloc:  alloc,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewSession creates an empty conversation in INIT with a greeting already
// in history.
func (e *Engine) NewSession() *domain.Session {
	now := e.now().UTC()
	s := &domain.Session{
		ID:        uuid.New().String(),
		Stage:     domain.StageInit,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Append(domain.Message{
		ID:        uuid.New().String(),
		Role:      domain.RoleAgent,
		Text:      "Hi! I build media plans. Tell me who the plan is for and roughly how much you want to spend.",
		Timestamp: now,
		SuggestedReplies: []string{
			"Create a plan for Acme ($500k)",
			"Build a $1m campaign for Northwind",
		},
	})
	return s
}

// StartPlanned creates a session that skips the guided workflow: the plan is
// built and allocated immediately and the conversation opens in REFINEMENT.
// This is the wizard path, equivalent to typing a creation sentence and a
// strategy.
func (e *Engine) StartPlanned(client string, budget float64, strategy domain.Strategy) *domain.Session {
	now := e.now().UTC()
	s := &domain.Session{
		ID:        uuid.New().String(),
		Stage:     domain.StageInit,
		CreatedAt: now,
		UpdatedAt: now,
	}

	start := now.Truncate(24 * time.Hour).AddDate(0, 0, 14)
	seed := &domain.MediaPlan{
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
		Strategy:        strategy,
	}

	t := e.allocateTurn(seed, fmt.Sprintf("Here's a first cut for **%s**", client))
	e.apply(s, t, now)
	s.Append(domain.Message{
		ID:               uuid.New().String(),
		Role:             domain.RoleAgent,
		Text:             t.text,
		Timestamp:        now,
		SuggestedReplies: t.suggested,
	})
	return s
}

// turn is the resolved outcome of one message, applied to the session in a
// single place (apply) so no handler mutates the context directly.
type turn struct {
	text      string
	suggested []string
	action    *domain.Action
	plan      *domain.MediaPlan
	stage     domain.Stage
	clearPlan bool
}

// Process handles one operator message: appends it to history, resolves a
// reply, applies any plan/stage change, and appends and returns the agent
// message.
func (e *Engine) Process(s *domain.Session, text string) domain.Message {
	now := e.now().UTC()
	s.Append(domain.Message{
		ID:        uuid.New().String(),
		Role:      domain.RoleUser,
		Text:      text,
		Timestamp: now,
	})

	t := e.resolve(s, text)
	e.apply(s, t, now)

	reply := domain.Message{
		ID:               uuid.New().String(),
		Role:             domain.RoleAgent,
		Text:             t.text,
		Timestamp:        now,
		SuggestedReplies: t.suggested,
		Action:           t.action,
	}
	return s.Append(reply)
}

// resolve picks the reply: global layout commands first, then a finish
// check, then the command router when a plan exists, then the
// stage-specific fallback.
func (e *Engine) resolve(s *domain.Session, text string) turn {
	if t, ok := layoutTurn(text); ok {
		return t
	}

	if s.Stage == domain.StageFinished {
		return turn{
			text:      "Starting a fresh plan. Who's the client, and what's the budget?",
			stage:     domain.StageInit,
			clearPlan: true,
			suggested: []string{"Create a plan for Acme ($500k)"},
		}
	}

	if t, ok := e.finishTurn(s, text); ok {
		return t
	}

	if s.Plan != nil {
		resp, ok := e.router.Route(router.Request{Text: text, Plan: s.Plan, Now: e.now()})
		if ok {
			return turn{
				text:      resp.Text,
				suggested: resp.SuggestedReplies,
				action:    resp.Action,
				plan:      resp.Plan,
				stage:     resp.NextStage,
			}
		}
	}

	switch s.Stage {
	case domain.StageInit:
		return e.initTurn(text)
	case domain.StageBudgeting:
		return e.budgetingTurn(s, text)
	case domain.StageChannelSelection:
		return e.allocateTurn(s.Plan, "Here's the channel mix I'd recommend")
	default:
		return helpTurn(s)
	}
}

// apply is the single point where a turn's outcome lands on the session.
func (e *Engine) apply(s *domain.Session, t turn, now time.Time) {
	if t.clearPlan {
		s.Plan = nil
	} else if t.plan != nil {
		s.Plan = t.plan
	}
	if t.stage != "" {
		s.Stage = t.stage
	}
	s.UpdatedAt = now
}

func helpTurn(s *domain.Session) turn {
	return turn{
		text: "I didn't catch that. You can add placements (**\"add ESPN SportsCenter\"**), pause or resume rows (**\"pause row 2\"**), change the budget (**\"change the budget to $250k\"**), optimize, or export the plan.",
		suggested: []string{
			"Add a podcast placement",
			"Pause row 2",
			"Show me a channel summary",
			"Export to slides",
		},
	}
}

func fmtCount(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
