package plan

import "github.com/planvox/planvox/internal/domain"

// reachShare approximates unique reach as a fixed fraction of impressions.
const reachShare = 0.4

// Recalculate rebuilds the plan's derived fields from its line items:
// totalSpend, remainingBudget, and the metrics rollup. Impressions prefer
// observed performance and fall back to forecasts per line. It mutates the
// given plan in place and is called by every mutator before returning.
func Recalculate(m *domain.MediaPlan) {
	var spend, impressions float64
	for i := range m.Campaign.Placements {
		p := &m.Campaign.Placements[i]
		spend += p.TotalCost
		impressions += p.Impressions()
	}

	m.TotalSpend = spend
	m.RemainingBudget = m.Campaign.Budget - spend

	metrics := domain.PlanMetrics{Impressions: impressions}
	metrics.Reach = impressions * reachShare
	if metrics.Reach > 0 {
		metrics.Frequency = impressions / metrics.Reach
	}
	if impressions > 0 {
		metrics.CPM = spend / impressions * 1000
	}
	m.Metrics = metrics
}
