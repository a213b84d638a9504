package domain

// Performance holds observed delivery numbers for a placement. Absent until
// the host feeds actuals back into the plan.
type Performance struct {
	Impressions float64
	Clicks      float64
	Spend       float64
	Revenue     float64
}

// ROAS is revenue over spend. Returns 0 when no spend has been recorded.
func (p Performance) ROAS() float64 {
	if p.Spend <= 0 {
		return 0
	}
	return p.Revenue / p.Spend
}

type Placement struct {
	ID         string
	Channel    Channel
	Vendor     string
	AdUnit     string
	CostMethod CostMethod
	Rate       float64
	Quantity   float64
	TotalCost  float64
	Status     PlacementStatus

	// ForecastImpressions is set at creation from the channel's audience
	// model and never changes unless quantity does.
	ForecastImpressions float64
	Performance         *Performance
}

// Impressions returns observed impressions when performance data exists,
// otherwise the forecast.
func (p *Placement) Impressions() float64 {
	if p.Performance != nil {
		return p.Performance.Impressions
	}
	return p.ForecastImpressions
}

// EffectiveROAS prefers observed ROAS and falls back to the supplied
// channel benchmark for placements with no performance yet.
func (p *Placement) EffectiveROAS(benchmark float64) float64 {
	if p.Performance != nil && p.Performance.Spend > 0 {
		return p.Performance.ROAS()
	}
	return benchmark
}

// Label is the display name for a placement, vendor plus ad unit.
func (p *Placement) Label() string {
	if p.AdUnit == "" {
		return p.Vendor
	}
	return p.Vendor + " " + p.AdUnit
}

func (p *Placement) clone() Placement {
	out := *p
	if p.Performance != nil {
		perf := *p.Performance
		out.Performance = &perf
	}
	return out
}
