package plan

import (
	"testing"
	"time"

	"github.com/planvox/planvox/internal/domain"
	"github.com/planvox/planvox/internal/reference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlan() *domain.MediaPlan {
	m := &domain.MediaPlan{
		Campaign: domain.Campaign{
			ID: "c1", Client: "Acme", Budget: 500_000,
			StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC),
		},
		Version:      1,
		GroupingMode: domain.GroupingDetailed,
		Strategy:     domain.StrategyBalanced,
	}
	m.Campaign.Placements = []domain.Placement{
		NewLineItem(reference.ProfileFor(domain.ChannelSearch), "Google", "", 50_000, 3.00),
		NewLineItem(reference.ProfileFor(domain.ChannelSocial), "Meta", "", 125_000, 10.00),
		NewLineItem(reference.ProfileFor(domain.ChannelTV), "ESPN", "SportsCenter", 100_000, 5_000),
	}
	Recalculate(m)
	return m
}

// assertBalanced checks the core accounting identity after a mutation.
func assertBalanced(t *testing.T, m *domain.MediaPlan) {
	t.Helper()
	assert.InDelta(t, m.Campaign.Budget, m.TotalSpend+m.RemainingBudget, 0.01)
}

func TestRecalculate_Identity(t *testing.T) {
	m := testPlan()
	assertBalanced(t, m)
	assert.Greater(t, m.TotalSpend, 0.0)
	assert.Greater(t, m.Metrics.Impressions, 0.0)
	assert.InDelta(t, m.Metrics.Impressions*0.4, m.Metrics.Reach, 0.001)
	assert.InDelta(t, 2.5, m.Metrics.Frequency, 0.001)
	assert.InDelta(t, m.TotalSpend/m.Metrics.Impressions*1000, m.Metrics.CPM, 0.001)
}

func TestRecalculate_ObservedImpressionsWin(t *testing.T) {
	m := testPlan()
	forecastTotal := m.Metrics.Impressions

	m.Campaign.Placements[0].Performance = &domain.Performance{Impressions: 1}
	Recalculate(m)
	assert.Less(t, m.Metrics.Impressions, forecastTotal)
}

func TestAdd(t *testing.T) {
	m := testPlan()
	item := NewLineItem(reference.ProfileFor(domain.ChannelPodcast), "Wondery", "", 25_000, 25.00)

	out := Add(m, item)
	assert.Len(t, out.Campaign.Placements, 4)
	assert.Equal(t, m.Version+1, out.Version)
	assert.Len(t, m.Campaign.Placements, 3, "input plan untouched")
	assertBalanced(t, out)
}

func TestSetStatusRow(t *testing.T) {
	m := testPlan()

	out, res := SetStatusRow(m, 2, domain.PlacementPaused)
	require.False(t, res.NotFound)
	require.False(t, res.NoChange)
	assert.Equal(t, []string{"Meta"}, res.Affected)
	assert.Equal(t, domain.PlacementPaused, out.Campaign.Placements[1].Status)
	assert.Equal(t, domain.PlacementActive, m.Campaign.Placements[1].Status, "input plan untouched")
	assert.Equal(t, m.Version, out.Version, "status flips do not bump the version")
}

func TestSetStatusRow_OutOfRange(t *testing.T) {
	m := testPlan()
	out, res := SetStatusRow(m, 7, domain.PlacementPaused)
	assert.True(t, res.NotFound)
	assert.Same(t, m, out)
}

func TestSetStatusRow_AlreadyInState(t *testing.T) {
	m := testPlan()
	paused, _ := SetStatusRow(m, 1, domain.PlacementPaused)

	out, res := SetStatusRow(paused, 1, domain.PlacementPaused)
	assert.True(t, res.NoChange)
	assert.Same(t, paused, out)
}

func TestSetStatusByName(t *testing.T) {
	m := testPlan()

	out, res := SetStatusByName(m, "espn", domain.PlacementPaused)
	require.False(t, res.NotFound)
	assert.Equal(t, []string{"ESPN SportsCenter"}, res.Affected)
	assert.Equal(t, domain.PlacementPaused, out.Campaign.Placements[2].Status)
}

func TestSetStatusByName_MatchesChannel(t *testing.T) {
	m := testPlan()
	out, res := SetStatusByName(m, "search", domain.PlacementPaused)
	require.False(t, res.NotFound)
	assert.Equal(t, domain.PlacementPaused, out.Campaign.Placements[0].Status)
}

func TestSetStatusByName_NoMatch(t *testing.T) {
	m := testPlan()
	_, res := SetStatusByName(m, "telegraph", domain.PlacementPaused)
	assert.True(t, res.NotFound)
}

func TestSetCampaignBudget(t *testing.T) {
	m := testPlan()
	out := SetCampaignBudget(m, 750_000)

	assert.InDelta(t, 750_000.0, out.Campaign.Budget, 0.001)
	assert.Equal(t, m.Version+1, out.Version)
	assert.InDelta(t, m.TotalSpend, out.TotalSpend, 0.001, "spend unchanged, only headroom moves")
	assertBalanced(t, out)
}

func TestSetRowBudget(t *testing.T) {
	m := testPlan()
	out, res := SetRowBudget(m, 2, 50_000)

	require.False(t, res.NotFound)
	assert.InDelta(t, 50_000.0, out.Campaign.Placements[1].TotalCost, 0.001)
	assert.Equal(t, m.Version+1, out.Version)
	assertBalanced(t, out)

	_, res = SetRowBudget(m, 9, 50_000)
	assert.True(t, res.NotFound)
}

func TestSetDates(t *testing.T) {
	m := testPlan()
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	out := SetDates(m, start, end)
	assert.Equal(t, start, out.Campaign.StartDate)
	assert.Equal(t, end, out.Campaign.EndDate)
	assert.Equal(t, m.Version+1, out.Version)

	// Zero end keeps the prior end date.
	out = SetDates(m, start, time.Time{})
	assert.Equal(t, start, out.Campaign.StartDate)
	assert.Equal(t, m.Campaign.EndDate, out.Campaign.EndDate)
}

func TestResegment(t *testing.T) {
	m := testPlan()
	spend := m.Campaign.Placements[2].TotalCost
	id := m.Campaign.Placements[2].ID

	cls := reference.Classify("spotify")
	out, res := Resegment(m, 3, cls, reference.MidRate(cls.Channel))

	require.False(t, res.NotFound)
	moved := out.Campaign.Placements[2]
	assert.Equal(t, domain.ChannelStreamingAudio, moved.Channel)
	assert.Equal(t, "Spotify", moved.Vendor)
	assert.Equal(t, id, moved.ID, "identity survives the move")
	assert.InDelta(t, spend, moved.TotalCost, 0.01, "allocation carries over")
	assert.Equal(t, m.Version+1, out.Version)
	assertBalanced(t, out)
}

func TestDeleteRow(t *testing.T) {
	m := testPlan()
	out, res := DeleteRow(m, 1)

	require.False(t, res.NotFound)
	assert.Equal(t, []string{"Google"}, res.Affected)
	assert.Len(t, out.Campaign.Placements, 2)
	assert.Equal(t, "Meta", out.Campaign.Placements[0].Vendor)
	assert.Equal(t, m.Version+1, out.Version)
	assertBalanced(t, out)

	_, res = DeleteRow(m, 4)
	assert.True(t, res.NotFound)
}

func TestSetGrouping_NoVersionBump(t *testing.T) {
	m := testPlan()
	out := SetGrouping(m, domain.GroupingChannelSummary)
	assert.Equal(t, domain.GroupingChannelSummary, out.GroupingMode)
	assert.Equal(t, m.Version, out.Version)
}

func TestPauseUnderperforming(t *testing.T) {
	m := testPlan()
	// Search benchmark 3.2 and Social 2.4 clear a 2.0 floor; TV at 1.8 does not.
	out, count := PauseUnderperforming(m, 2.0)

	assert.Equal(t, 1, count)
	assert.Equal(t, domain.PlacementActive, out.Campaign.Placements[0].Status)
	assert.Equal(t, domain.PlacementActive, out.Campaign.Placements[1].Status)
	assert.Equal(t, domain.PlacementPaused, out.Campaign.Placements[2].Status)
}

func TestPauseUnderperforming_ObservedROAS(t *testing.T) {
	m := testPlan()
	// Strong observed numbers rescue the TV row from its weak benchmark.
	m.Campaign.Placements[2].Performance = &domain.Performance{Spend: 10_000, Revenue: 40_000}

	out, count := PauseUnderperforming(m, 2.0)
	assert.Equal(t, 0, count)
	assert.Same(t, m, out)
}

func TestPauseUnderperforming_SkipsPausedRows(t *testing.T) {
	m := testPlan()
	paused, _ := SetStatusRow(m, 3, domain.PlacementPaused)

	_, count := PauseUnderperforming(paused, 2.0)
	assert.Equal(t, 0, count, "already-paused rows are not re-counted")
}

func TestBoostSearch(t *testing.T) {
	m := testPlan()
	before := m.Campaign.Placements[0]

	out, count := BoostSearch(m, 0.20)
	assert.Equal(t, 1, count)
	boosted := out.Campaign.Placements[0]
	assert.InDelta(t, before.Quantity*1.2, boosted.Quantity, 0.001)
	assert.InDelta(t, before.TotalCost*1.2, boosted.TotalCost, 0.5)
	assert.Equal(t, m.Version+1, out.Version)
	assertBalanced(t, out)

	assert.InDelta(t, before.Quantity, m.Campaign.Placements[0].Quantity, 0.001, "input plan untouched")
}

func TestBoostSearch_NoSearchRows(t *testing.T) {
	m := testPlan()
	trimmed, _ := DeleteRow(m, 1)

	out, count := BoostSearch(trimmed, 0.20)
	assert.Equal(t, 0, count)
	assert.Same(t, trimmed, out)
}
