package router

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/planvox/planvox/internal/domain"
	"github.com/planvox/planvox/internal/plan"
	"github.com/planvox/planvox/internal/reference"
)

const (
	// roasFloor is the ROAS below which the pause intent cuts placements.
	roasFloor = 2.0
	// searchLift is the quantity increase applied by the boost intent.
	searchLift = 0.20
)

var (
	optimizePattern = regexp.MustCompile(`(?i)optimi[sz]e|performance|\bboost\b|\bshift\b|underperform|roas|\bimprove\b`)
	cutIntent       = regexp.MustCompile(`(?i)\b(pause|cut|drop|kill|turn off)\b|underperform`)
	boostIntent     = regexp.MustCompile(`(?i)\b(boost|shift|more|increase|double down)\b`)
)

func optimizeRule() rule {
	return rule{
		name:    "optimize",
		mutates: true,
		match: func(req *Request) bool {
			return optimizePattern.MatchString(req.lower)
		},
		run: func(req *Request) Response {
			switch {
			case cutIntent.MatchString(req.lower):
				updated, n := plan.PauseUnderperforming(req.Plan, roasFloor)
				if n == 0 {
					return Response{
						Text:      fmt.Sprintf("Nothing to cut — every active placement is at or above a %.1fx return.", roasFloor),
						NextStage: domain.StageOptimization,
					}
				}
				return Response{
					Text: fmt.Sprintf("Paused %s running below a %.1fx return. Spend under management is now %s.",
						count(n, "placement"), roasFloor, money(updated.TotalSpend)),
					Plan:             updated,
					NextStage:        domain.StageOptimization,
					SuggestedReplies: []string{"Shift budget into search", "Show me a channel summary"},
				}

			case boostIntent.MatchString(req.lower):
				updated, n := plan.BoostSearch(req.Plan, searchLift)
				if n == 0 {
					return Response{
						Text:      "There are no search placements to boost. Add one first with **\"add search\"**.",
						NextStage: domain.StageOptimization,
					}
				}
				return Response{
					Text: fmt.Sprintf("Boosted %s by %.0f%%. Search now carries %s of the plan's %s total.",
						count(n, "search placement"), searchLift*100,
						money(searchSpend(updated)), money(updated.TotalSpend)),
					Plan:             updated,
					NextStage:        domain.StageOptimization,
					SuggestedReplies: []string{"Pause anything below 2x ROAS"},
				}

			default:
				return Response{
					Text:      insightSummary(req.Plan),
					NextStage: domain.StageOptimization,
					SuggestedReplies: []string{
						"Pause anything below 2x ROAS",
						"Shift budget into search",
					},
				}
			}
		},
	}
}

// insightSummary is the generic optimization answer when neither the pause
// nor the boost intent is present.
func insightSummary(m *domain.MediaPlan) string {
	var weakest *domain.Placement
	var weakestROAS float64
	for i := range m.Campaign.Placements {
		p := &m.Campaign.Placements[i]
		if p.Status != domain.PlacementActive {
			continue
		}
		r := effectiveROAS(p)
		if weakest == nil || r < weakestROAS {
			weakest, weakestROAS = p, r
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The plan has %s active across %s of spend, forecasting %.1fM impressions at a %s blended CPM.",
		count(m.ActiveCount(), "placement"), money(m.TotalSpend),
		m.Metrics.Impressions/1_000_000, money(m.Metrics.CPM))
	if weakest != nil {
		fmt.Fprintf(&b, " **%s** is the weakest line at a %.1fx expected return — pausing it or shifting budget into search are the usual moves.",
			weakest.Label(), weakestROAS)
	}
	return b.String()
}

func effectiveROAS(p *domain.Placement) float64 {
	return p.EffectiveROAS(reference.ProfileFor(p.Channel).BenchmarkROAS)
}

func searchSpend(m *domain.MediaPlan) float64 {
	var total float64
	for i := range m.Campaign.Placements {
		if m.Campaign.Placements[i].Channel == domain.ChannelSearch {
			total += m.Campaign.Placements[i].TotalCost
		}
	}
	return total
}
