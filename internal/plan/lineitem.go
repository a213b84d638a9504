// Package plan holds the mutation operations on a media plan. Every mutator
// clones the incoming plan, applies its change, and recalculates the rolled-up
// totals before returning; the session loop performs the single assignment of
// the result back onto the conversation context.
package plan

import (
	"math"

	"github.com/google/uuid"
	"github.com/planvox/planvox/internal/domain"
	"github.com/planvox/planvox/internal/reference"
)

// AddShare is the fraction of campaign budget allocated to a placement added
// by an explicit command, floored at AddMinimum.
const (
	AddShare   = 0.05
	AddMinimum = 5_000.0
)

// NewLineItem builds a placement for the given channel profile, deriving
// quantity from the allocation under the cost method's unit convention and
// recomputing cost from the derived quantity. CPM cost is per-thousand;
// Spot/Flat buys always purchase at least one unit.
func NewLineItem(profile reference.ChannelProfile, vendor, adUnit string, allocation, rate float64) domain.Placement {
	var quantity float64
	switch profile.CostMethod {
	case domain.CostCPM:
		quantity = allocation * 1000 / rate
	case domain.CostSpot, domain.CostFlat:
		quantity = math.Max(1, math.Floor(allocation/rate))
	default:
		quantity = math.Floor(allocation / rate)
	}

	p := domain.Placement{
		ID:         uuid.New().String(),
		Channel:    profile.Channel,
		Vendor:     vendor,
		AdUnit:     adUnit,
		CostMethod: profile.CostMethod,
		Rate:       rate,
		Quantity:   quantity,
		Status:     domain.PlacementActive,
	}
	Reprice(&p)
	return p
}

// Reprice recomputes TotalCost and ForecastImpressions from the placement's
// quantity and rate. Call after any quantity or rate change.
func Reprice(p *domain.Placement) {
	switch p.CostMethod {
	case domain.CostCPM:
		p.TotalCost = p.Quantity * p.Rate / 1000
		p.ForecastImpressions = p.Quantity
	default:
		p.TotalCost = p.Quantity * p.Rate
		p.ForecastImpressions = p.Quantity * reference.ProfileFor(p.Channel).ImpressionsPerUnit
	}
}

// Resize rescales a placement to a new total allocation, keeping its rate and
// re-deriving quantity and cost.
func Resize(p *domain.Placement, allocation float64) {
	switch p.CostMethod {
	case domain.CostCPM:
		p.Quantity = allocation * 1000 / p.Rate
	case domain.CostSpot, domain.CostFlat:
		p.Quantity = math.Max(1, math.Floor(allocation/p.Rate))
	default:
		p.Quantity = math.Floor(allocation / p.Rate)
	}
	Reprice(p)
}

// AddAllocation returns the budget share given to a command-added placement:
// 5% of the campaign budget with a 5,000 floor.
func AddAllocation(campaignBudget float64) float64 {
	return math.Max(AddMinimum, campaignBudget*AddShare)
}
