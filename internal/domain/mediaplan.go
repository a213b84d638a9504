package domain

import "time"

type Campaign struct {
	ID         string
	Client     string
	Budget     float64
	StartDate  time.Time
	EndDate    time.Time
	Placements []Placement
}

// PlanMetrics is the rolled-up view of a plan's line items. It is always
// derived from the placements, never edited directly.
type PlanMetrics struct {
	Impressions float64
	Reach       float64
	Frequency   float64
	CPM         float64
}

type MediaPlan struct {
	Campaign        Campaign
	TotalSpend      float64
	RemainingBudget float64
	Version         int
	GroupingMode    GroupingMode
	Strategy        Strategy
	Metrics         PlanMetrics
}

// Clone returns a deep copy. Mutators operate on clones so the session loop
// holds the only live reference to the current plan.
func (m *MediaPlan) Clone() *MediaPlan {
	out := *m
	out.Campaign.Placements = make([]Placement, len(m.Campaign.Placements))
	for i := range m.Campaign.Placements {
		out.Campaign.Placements[i] = m.Campaign.Placements[i].clone()
	}
	return &out
}

// PlacementAt returns the placement for a 1-based row reference, or nil when
// the row is out of range.
func (m *MediaPlan) PlacementAt(row int) *Placement {
	if row < 1 || row > len(m.Campaign.Placements) {
		return nil
	}
	return &m.Campaign.Placements[row-1]
}

// ActiveCount returns how many placements are currently ACTIVE.
func (m *MediaPlan) ActiveCount() int {
	n := 0
	for i := range m.Campaign.Placements {
		if m.Campaign.Placements[i].Status == PlacementActive {
			n++
		}
	}
	return n
}
