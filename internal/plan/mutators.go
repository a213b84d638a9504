package plan

import (
	"strings"
	"time"

	"github.com/planvox/planvox/internal/domain"
	"github.com/planvox/planvox/internal/reference"
)

// RowOutcome reports what a row- or name-addressed mutation did.
type RowOutcome struct {
	// Affected holds the labels of placements the mutation changed.
	Affected []string
	// NotFound is set when the row reference was out of range or no name
	// matched any placement.
	NotFound bool
	// NoChange is set when targets were found but already in the requested
	// state (pausing an already-paused row).
	NoChange bool
}

// Add appends a placement and bumps the plan version.
func Add(m *domain.MediaPlan, p domain.Placement) *domain.MediaPlan {
	out := m.Clone()
	out.Campaign.Placements = append(out.Campaign.Placements, p)
	out.Version++
	Recalculate(out)
	return out
}

// SetStatusRow flips the status of the 1-based row. Setting a row to the
// status it already has reports NoChange rather than double-counting.
func SetStatusRow(m *domain.MediaPlan, row int, status domain.PlacementStatus) (*domain.MediaPlan, RowOutcome) {
	out := m.Clone()
	target := out.PlacementAt(row)
	if target == nil {
		return m, RowOutcome{NotFound: true}
	}
	if target.Status == status {
		return m, RowOutcome{NoChange: true, Affected: []string{target.Label()}}
	}
	target.Status = status
	Recalculate(out)
	return out, RowOutcome{Affected: []string{target.Label()}}
}

// SetStatusByName flips the status of every placement whose vendor or label
// contains name (case-insensitive). May affect multiple rows.
func SetStatusByName(m *domain.MediaPlan, name string, status domain.PlacementStatus) (*domain.MediaPlan, RowOutcome) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return m, RowOutcome{NotFound: true}
	}

	out := m.Clone()
	var affected []string
	matched := false
	for i := range out.Campaign.Placements {
		p := &out.Campaign.Placements[i]
		if !strings.Contains(strings.ToLower(p.Label()), needle) &&
			!strings.Contains(strings.ToLower(string(p.Channel)), needle) {
			continue
		}
		matched = true
		if p.Status != status {
			p.Status = status
			affected = append(affected, p.Label())
		}
	}
	if !matched {
		return m, RowOutcome{NotFound: true}
	}
	if len(affected) == 0 {
		return m, RowOutcome{NoChange: true}
	}
	Recalculate(out)
	return out, RowOutcome{Affected: affected}
}

// SetCampaignBudget replaces the whole-campaign budget. Non-positive amounts
// are rejected by the router before this is called.
func SetCampaignBudget(m *domain.MediaPlan, amount float64) *domain.MediaPlan {
	out := m.Clone()
	out.Campaign.Budget = amount
	out.Version++
	Recalculate(out)
	return out
}

// SetRowBudget rescales one row to a new total allocation.
func SetRowBudget(m *domain.MediaPlan, row int, amount float64) (*domain.MediaPlan, RowOutcome) {
	out := m.Clone()
	target := out.PlacementAt(row)
	if target == nil {
		return m, RowOutcome{NotFound: true}
	}
	Resize(target, amount)
	out.Version++
	Recalculate(out)
	return out, RowOutcome{Affected: []string{target.Label()}}
}

// SetDates moves the campaign flight. A zero end keeps the current end date.
func SetDates(m *domain.MediaPlan, start, end time.Time) *domain.MediaPlan {
	out := m.Clone()
	out.Campaign.StartDate = start
	if !end.IsZero() {
		out.Campaign.EndDate = end
	}
	out.Version++
	Recalculate(out)
	return out
}

// Resegment moves a row to a different channel/vendor, keeping its current
// cost as the allocation and repricing under the new channel's profile.
func Resegment(m *domain.MediaPlan, row int, cls reference.Classification, rate float64) (*domain.MediaPlan, RowOutcome) {
	out := m.Clone()
	target := out.PlacementAt(row)
	if target == nil {
		return m, RowOutcome{NotFound: true}
	}

	allocation := target.TotalCost
	profile := reference.ProfileFor(cls.Channel)
	rebuilt := NewLineItem(profile, cls.Vendor, cls.AdUnit, allocation, rate)
	rebuilt.ID = target.ID
	rebuilt.Status = target.Status
	*target = rebuilt

	out.Version++
	Recalculate(out)
	return out, RowOutcome{Affected: []string{target.Label()}}
}

// DeleteRow removes a row from the plan entirely.
func DeleteRow(m *domain.MediaPlan, row int) (*domain.MediaPlan, RowOutcome) {
	if m.PlacementAt(row) == nil {
		return m, RowOutcome{NotFound: true}
	}
	out := m.Clone()
	label := out.Campaign.Placements[row-1].Label()
	out.Campaign.Placements = append(out.Campaign.Placements[:row-1], out.Campaign.Placements[row:]...)
	out.Version++
	Recalculate(out)
	return out, RowOutcome{Affected: []string{label}}
}

// SetGrouping changes the display aggregation level. Presentation-only, so
// no version bump.
func SetGrouping(m *domain.MediaPlan, mode domain.GroupingMode) *domain.MediaPlan {
	out := m.Clone()
	out.GroupingMode = mode
	return out
}

// PauseUnderperforming pauses every active placement whose effective ROAS
// (observed, or the channel benchmark when no performance exists) is below
// threshold. Returns the pause count.
func PauseUnderperforming(m *domain.MediaPlan, threshold float64) (*domain.MediaPlan, int) {
	out := m.Clone()
	count := 0
	for i := range out.Campaign.Placements {
		p := &out.Campaign.Placements[i]
		if p.Status != domain.PlacementActive {
			continue
		}
		benchmark := reference.ProfileFor(p.Channel).BenchmarkROAS
		if p.EffectiveROAS(benchmark) < threshold {
			p.Status = domain.PlacementPaused
			count++
		}
	}
	if count == 0 {
		return m, 0
	}
	Recalculate(out)
	return out, count
}

// BoostSearch lifts every Search placement's quantity (and therefore cost)
// by the given fraction. Returns how many placements were boosted.
func BoostSearch(m *domain.MediaPlan, lift float64) (*domain.MediaPlan, int) {
	out := m.Clone()
	count := 0
	for i := range out.Campaign.Placements {
		p := &out.Campaign.Placements[i]
		if p.Channel != domain.ChannelSearch {
			continue
		}
		p.Quantity = p.Quantity * (1 + lift)
		Reprice(p)
		count++
	}
	if count == 0 {
		return m, 0
	}
	out.Version++
	Recalculate(out)
	return out, count
}
