package router

import (
	"fmt"
	"regexp"

	"github.com/planvox/planvox/internal/domain"
	"github.com/planvox/planvox/internal/parse"
	"github.com/planvox/planvox/internal/plan"
)

var budgetPattern = regexp.MustCompile(`(?i)\bbudget\b|\b(?:increase|decrease|raise|lower|bump|change|set)\b.*\$`)

// shiftGuard keeps reallocation phrasing with no amount ("shift budget into
// search") out of the budget rule so the optimize matcher can claim it.
var shiftGuard = regexp.MustCompile(`(?i)\b(shift|boost|double down)\b`)

func changeBudgetRule() rule {
	return rule{
		name:    "change-budget",
		mutates: true,
		match: func(req *Request) bool {
			if !budgetPattern.MatchString(req.lower) {
				return false
			}
			if _, ok := parse.Money(req.Text); !ok && shiftGuard.MatchString(req.lower) {
				return false
			}
			return true
		},
		run: func(req *Request) Response {
			amount, ok := parse.Money(req.Text)
			if !ok {
				return Response{
					Text:             "What should the budget be? Give me a number like **$250k** or **$1.5m**.",
					SuggestedReplies: []string{"Change the budget to $250k"},
				}
			}
			if amount <= 0 {
				return Response{Text: "A budget has to be a positive amount — that one wouldn't buy anything."}
			}

			// A row reference makes this a per-row resize instead of a
			// whole-campaign change.
			if row, hasRow := parse.RowRef(req.Text); hasRow {
				updated, outcome := plan.SetRowBudget(req.Plan, row, amount)
				if outcome.NotFound {
					return notFoundResponse(req.Plan, row)
				}
				return Response{
					Text: fmt.Sprintf("Set **%s** (row %d) to %s. Total spend is now %s with %s remaining.",
						outcome.Affected[0], row, money(amount), money(updated.TotalSpend), money(updated.RemainingBudget)),
					Plan: updated,
				}
			}

			updated := plan.SetCampaignBudget(req.Plan, amount)
			return Response{
				Text: fmt.Sprintf("Campaign budget is now **%s**. Current placements spend %s, leaving %s unallocated.",
					money(amount), money(updated.TotalSpend), money(updated.RemainingBudget)),
				Plan:             updated,
				SuggestedReplies: []string{"Add a social placement", "Show me a channel summary"},
			}
		},
	}
}

var datesPattern = regexp.MustCompile(`(?i)\bdates?\b|\bflight\b|\brun from\b|\bschedule\b|\btiming\b`)

func changeDatesRule() rule {
	return rule{
		name:    "change-dates",
		mutates: true,
		match: func(req *Request) bool {
			return datesPattern.MatchString(req.lower)
		},
		run: func(req *Request) Response {
			start, end, ok := parse.DateRange(req.Text, req.Now)
			if !ok {
				return Response{
					Text:             "When should the campaign run? Try something like **\"run from June 1 to August 31\"**.",
					SuggestedReplies: []string{"Run from June 1 to August 31"},
				}
			}

			updated := plan.SetDates(req.Plan, start, end)
			text := fmt.Sprintf("Flight updated: starts **%s**", start.Format("Jan 2, 2006"))
			if !end.IsZero() {
				text += fmt.Sprintf(", ends **%s**", end.Format("Jan 2, 2006"))
			}
			text += "."

			return Response{
				Text: text,
				Plan: updated,
				Action: &domain.Action{
					Type: domain.ActionCreateFlight,
					Payload: map[string]string{
						"start": updated.Campaign.StartDate.Format("2006-01-02"),
						"end":   updated.Campaign.EndDate.Format("2006-01-02"),
					},
				},
			}
		},
	}
}

func notFoundResponse(m *domain.MediaPlan, row int) Response {
	return Response{
		Text: fmt.Sprintf("I don't see a row %d — the plan has %s. Try **\"show me the plan\"** to check the numbering.",
			row, count(len(m.Campaign.Placements), "placement")),
	}
}
