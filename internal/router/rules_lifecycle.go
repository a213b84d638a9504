package router

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/planvox/planvox/internal/domain"
	"github.com/planvox/planvox/internal/parse"
	"github.com/planvox/planvox/internal/plan"
	"github.com/planvox/planvox/internal/reference"
)

var (
	pausePattern  = regexp.MustCompile(`(?i)\b(pause|stop|hold)\b`)
	resumePattern = regexp.MustCompile(`(?i)\b(resume|unpause|reactivate|restart)\b|\bturn\b.*\bback on\b`)
	// optimizeGuard keeps optimization phrasing ("pause everything below
	// 2x ROAS") out of the plain pause rule so the optimize matcher can
	// claim it.
	optimizeGuard = regexp.MustCompile(`(?i)optimi[sz]e|performance|underperform|roas`)
)

func pauseRule() rule {
	return rule{
		name:    "pause-by-row-or-name",
		mutates: true,
		match: func(req *Request) bool {
			return pausePattern.MatchString(req.lower) && !optimizeGuard.MatchString(req.lower)
		},
		run: func(req *Request) Response {
			return statusResponse(req, domain.PlacementPaused, "Paused", "pause")
		},
	}
}

func resumeRule() rule {
	return rule{
		name:    "resume-by-row-or-name",
		mutates: true,
		match: func(req *Request) bool {
			return resumePattern.MatchString(req.lower)
		},
		run: func(req *Request) Response {
			return statusResponse(req, domain.PlacementActive, "Resumed", "resume")
		},
	}
}

// statusResponse handles both the row-addressed and name-addressed variants
// of a status flip. Row references win when present; otherwise the leftover
// words after the verb are matched against vendor and placement names.
func statusResponse(req *Request, status domain.PlacementStatus, verb, verbLower string) Response {
	if row, ok := parse.RowRef(req.Text); ok {
		updated, outcome := plan.SetStatusRow(req.Plan, row, status)
		switch {
		case outcome.NotFound:
			return notFoundResponse(req.Plan, row)
		case outcome.NoChange:
			return Response{Text: fmt.Sprintf("Row %d (**%s**) is already %s — nothing to %s.",
				row, outcome.Affected[0], strings.ToLower(string(status)), verbLower)}
		default:
			return Response{
				Text: fmt.Sprintf("%s **%s** (row %d).", verb, outcome.Affected[0], row),
				Plan: updated,
			}
		}
	}

	name := statusTarget(req.lower)
	if name == "" {
		return Response{
			Text: fmt.Sprintf("Which placement should I %s? Give me a row number or a name, like **\"%s row 2\"**.",
				verbLower, verbLower),
		}
	}

	updated, outcome := plan.SetStatusByName(req.Plan, name, status)
	switch {
	case outcome.NotFound:
		return Response{Text: fmt.Sprintf("I couldn't find a placement matching **%s**.", name)}
	case outcome.NoChange:
		return Response{Text: fmt.Sprintf("No matching active placement to %s — everything matching **%s** is already %s.",
			verbLower, name, strings.ToLower(string(status)))}
	default:
		return Response{
			Text: fmt.Sprintf("%s %s: **%s**.", verb, count(len(outcome.Affected), "placement"),
				strings.Join(outcome.Affected, "**, **")),
			Plan: updated,
		}
	}
}

var statusVerbs = regexp.MustCompile(`(?i)\b(please|can you|could you|pause|stop|hold|resume|unpause|reactivate|restart|turn|back|on|off|the|all|my|placements?|ads?|campaigns?)\b`)

// statusTarget strips command words, leaving the name fragment to match
// against placements.
func statusTarget(lower string) string {
	rest := statusVerbs.ReplaceAllString(lower, " ")
	rest = strings.Join(strings.Fields(rest), " ")
	return strings.Trim(rest, " ,.!?")
}

var segmentPattern = regexp.MustCompile(`(?i)\b(change|switch|move|swap)\b`)

func segmentRule() rule {
	return rule{
		name:    "change-segment-by-row",
		mutates: true,
		match: func(req *Request) bool {
			if !segmentPattern.MatchString(req.lower) {
				return false
			}
			_, ok := parse.RowRef(req.Text)
			return ok
		},
		run: func(req *Request) Response {
			row, _ := parse.RowRef(req.Text)

			target := segmentTarget(req.Text)
			if target == "" {
				return Response{
					Text: fmt.Sprintf("What should row %d become? Try **\"switch row %d to Spotify\"**.", row, row),
				}
			}

			if alt, denied := reference.Denied(target); denied {
				return Response{
					Text: fmt.Sprintf("I can't move a placement into **%s** — that channel isn't supported. **%s** would be the closest fit.",
						strings.TrimSpace(target), alt),
				}
			}

			cls := reference.Classify(target)
			updated, outcome := plan.Resegment(req.Plan, row, cls, reference.MidRate(cls.Channel))
			if outcome.NotFound {
				return notFoundResponse(req.Plan, row)
			}
			return Response{
				Text: fmt.Sprintf("Row %d is now **%s** on %s, repriced at the same %s allocation.",
					row, outcome.Affected[0], cls.Channel, money(updated.Campaign.Placements[row-1].TotalCost)),
				Plan: updated,
			}
		},
	}
}

var segmentToPattern = regexp.MustCompile(`(?i)\b(?:to|into|for)\s+(.+?)\s*$`)

func segmentTarget(text string) string {
	m := segmentToPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.Trim(m[1], " ,.!?")
}

var groupingPattern = regexp.MustCompile(`(?i)\bchannel summary\b|\bsummary view\b|\bdetailed view\b|\bgroup by\b|\bview by\b|\bbreak (?:it )?out\b|\broll (?:it )?up\b`)

func groupingRule() rule {
	return rule{
		name:    "change-grouping-view",
		mutates: true,
		match: func(req *Request) bool {
			return groupingPattern.MatchString(req.lower)
		},
		run: func(req *Request) Response {
			mode := domain.GroupingChannelSummary
			if strings.Contains(req.lower, "detail") || strings.Contains(req.lower, "break") {
				mode = domain.GroupingDetailed
			}
			updated := plan.SetGrouping(req.Plan, mode)
			if mode == domain.GroupingChannelSummary {
				return Response{
					Text:             "Switched to the **channel summary** view — one line per channel.",
					Plan:             updated,
					SuggestedReplies: []string{"Show the detailed view"},
				}
			}
			return Response{
				Text:             "Switched to the **detailed** view — every placement on its own row.",
				Plan:             updated,
				SuggestedReplies: []string{"Show me a channel summary"},
			}
		},
	}
}
