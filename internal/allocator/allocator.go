// Package allocator synthesizes a media plan's line items against a target
// budget under a chosen strategy. The allocator is best effort: jitter and
// per-unit rounding mean final spend lands near, not exactly on, the target.
package allocator

import (
	"math/rand"

	"github.com/planvox/planvox/internal/domain"
	"github.com/planvox/planvox/internal/plan"
	"github.com/planvox/planvox/internal/reference"
)

const (
	// fillTarget stops the fill pass once spend reaches this share of budget.
	fillTarget = 0.95
	// fillCap bounds the fill pass; small budgets may stop short of the
	// target, which is accepted behavior.
	fillCap = 20
	// offlineBudgetFloor gates the offline layer for non-awareness plans.
	offlineBudgetFloor = 50_000.0
	// minFillCost discards fill placements whose cost rounds to noise.
	minFillCost = 10.0
)

// Allocator builds line-item lists. The random source drives rate jitter and
// offline channel selection; inject a seeded source for deterministic output.
type Allocator struct {
	rng *rand.Rand
}

func New(rng *rand.Rand) *Allocator {
	return &Allocator{rng: rng}
}

// Build produces a line-item list for the target budget under the strategy,
// in three passes: a core digital layer, an offline broad-reach layer, and a
// small-placement fill pass toward 95% of budget.
func (a *Allocator) Build(budget float64, strategy domain.Strategy) []domain.Placement {
	var items []domain.Placement
	spent := 0.0

	add := func(p domain.Placement) {
		items = append(items, p)
		spent += p.TotalCost
	}

	// Pass 1: core digital layer.
	for _, ch := range []domain.Channel{domain.ChannelSearch, domain.ChannelSocial, domain.ChannelDisplay} {
		if strategy == domain.StrategyAwareness && ch == domain.ChannelDisplay {
			continue
		}
		share := a.digitalShare(ch, strategy)
		allocation := budget * share
		profile := reference.ProfileFor(ch)
		add(plan.NewLineItem(profile, reference.DefaultVendor(ch), defaultAdUnit(ch), allocation, a.pickRate(profile)))
	}

	// Pass 2: offline broad-reach layer.
	if strategy == domain.StrategyAwareness || budget > offlineBudgetFloor {
		share := 0.15
		picks := 2
		if strategy == domain.StrategyAwareness {
			share = 0.25
			picks = 4
		}
		for i, ch := range a.offlineOrder(strategy) {
			if i >= picks {
				break
			}
			profile := reference.ProfileFor(ch)
			item := plan.NewLineItem(profile, reference.DefaultVendor(ch), defaultAdUnit(ch), budget*share, a.pickRate(profile))

			// Keep only if it does not overshoot the budget; the first
			// awareness pick is always kept.
			forced := strategy == domain.StrategyAwareness && i == 0
			if !forced && spent+item.TotalCost > budget {
				continue
			}
			add(item)
		}
	}

	// Pass 3: fill with small social/display placements.
	for i := 0; i < fillCap && spent < budget*fillTarget; i++ {
		ch := domain.ChannelSocial
		if a.rng.Intn(2) == 1 {
			ch = domain.ChannelDisplay
		}
		profile := reference.ProfileFor(ch)
		item := plan.NewLineItem(profile, reference.DefaultVendor(ch), fillAdUnit(ch), budget*0.05, a.pickRate(profile))
		if item.TotalCost <= minFillCost {
			continue
		}
		add(item)
	}

	return items
}

// Apply runs Build against the plan's campaign budget and swaps in the
// resulting line items, recording spend and bumping the version.
func (a *Allocator) Apply(m *domain.MediaPlan) *domain.MediaPlan {
	out := m.Clone()
	out.Campaign.Placements = a.Build(out.Campaign.Budget, out.Strategy)
	out.Version++
	plan.Recalculate(out)
	return out
}

// digitalShare is the strategy-dependent budget fraction for a core digital
// channel, plus a small jitter.
func (a *Allocator) digitalShare(ch domain.Channel, strategy domain.Strategy) float64 {
	var base float64
	switch strategy {
	case domain.StrategyDigital:
		base = 0.25
	case domain.StrategyAwareness:
		if ch == domain.ChannelSearch {
			base = 0.05
		} else {
			base = 0.02
		}
	default:
		base = 0.10
	}
	return base + a.rng.Float64()*0.02
}

// offlineOrder returns offline channel candidates. Awareness forces TV and
// OOH to the front; the rest are shuffled.
func (a *Allocator) offlineOrder(strategy domain.Strategy) []domain.Channel {
	rest := []domain.Channel{domain.ChannelRadio, domain.ChannelPrint}
	if strategy != domain.StrategyAwareness {
		rest = []domain.Channel{domain.ChannelTV, domain.ChannelRadio, domain.ChannelOOH, domain.ChannelPrint}
	}
	a.rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })
	if strategy == domain.StrategyAwareness {
		return append([]domain.Channel{domain.ChannelTV, domain.ChannelOOH}, rest...)
	}
	return rest
}

// pickRate draws a rate uniformly from the channel's range.
func (a *Allocator) pickRate(p reference.ChannelProfile) float64 {
	return p.MinRate + a.rng.Float64()*(p.MaxRate-p.MinRate)
}

func defaultAdUnit(ch domain.Channel) string {
	switch ch {
	case domain.ChannelSearch:
		return "Search Ads"
	case domain.ChannelSocial:
		return "Feed + Stories"
	case domain.ChannelDisplay:
		return "Standard Banners"
	case domain.ChannelTV:
		return ":30 Spots"
	case domain.ChannelRadio:
		return ":30 Spots"
	case domain.ChannelOOH:
		return "Bulletins"
	case domain.ChannelPrint:
		return "Full Page"
	default:
		return ""
	}
}

func fillAdUnit(ch domain.Channel) string {
	if ch == domain.ChannelSocial {
		return "Retargeting"
	}
	return "Remnant Banners"
}
