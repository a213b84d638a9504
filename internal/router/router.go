// Package router classifies free-form instructions into intents and executes
// them against the current media plan. It is an ordered list of independent
// matchers: the first matcher whose pattern fires wins and later matchers are
// never consulted, even if they would also match.
package router

import (
	"time"

	"github.com/planvox/planvox/internal/domain"
)

// Request is one turn's input to the router.
type Request struct {
	Text string
	Plan *domain.MediaPlan
	Now  time.Time

	lower string
}

// Response is the outcome of a matched command. A nil Plan means the command
// did not change the plan.
type Response struct {
	Text             string
	Plan             *domain.MediaPlan
	SuggestedReplies []string
	Action           *domain.Action
	// NextStage moves the workflow when non-empty (the optimize intent
	// shifts a refinement session into OPTIMIZATION).
	NextStage domain.Stage
}

type rule struct {
	name    string
	mutates bool
	match   func(req *Request) bool
	run     func(req *Request) Response
}

// Router is the ordered matcher chain.
type Router struct {
	rules []rule
}

// New builds the chain in priority order. The order is part of the contract:
// add commands outrank budget commands, which outrank lifecycle commands,
// which outrank exports and view changes.
func New() *Router {
	return &Router{rules: []rule{
		addByChannelRule(),
		addByNameRule(),
		changeBudgetRule(),
		changeDatesRule(),
		pauseRule(),
		resumeRule(),
		optimizeRule(),
		exportSlidesRule(),
		exportDocRule(),
		groupingRule(),
		segmentRule(),
	}}
}

// Route runs the chain. ok is false when no matcher fired and the caller
// should fall through to its stage-specific handler. Mutating commands
// issued without an active plan get a conversational rejection, never an
// error.
func (r *Router) Route(req Request) (Response, bool) {
	req.lower = lowerText(req.Text)
	for _, rl := range r.rules {
		if !rl.match(&req) {
			continue
		}
		if rl.mutates && req.Plan == nil {
			return Response{
				Text:             "I need an active plan before I can do that. Tell me a budget to get started — for example **\"Create a plan for Acme ($250k)\"**.",
				SuggestedReplies: []string{"Create a plan for Acme ($250k)"},
			}, true
		}
		return rl.run(&req), true
	}
	return Response{}, false
}
