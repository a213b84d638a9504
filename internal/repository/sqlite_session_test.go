package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/planvox/planvox/internal/domain"
	"github.com/planvox/planvox/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var repoNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func storedSession() *domain.Session {
	s := &domain.Session{
		ID:        uuid.New().String(),
		Stage:     domain.StageRefinement,
		CreatedAt: repoNow,
		UpdatedAt: repoNow,
		Plan: &domain.MediaPlan{
			Campaign: domain.Campaign{
				ID: uuid.New().String(), Client: "Acme", Budget: 500_000,
				StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC),
				Placements: []domain.Placement{
					{ID: uuid.New().String(), Channel: domain.ChannelSearch, Vendor: "Google",
						AdUnit: "Search Ads", CostMethod: domain.CostCPC, Rate: 3.0, Quantity: 16666,
						TotalCost: 49_998, Status: domain.PlacementActive, ForecastImpressions: 2_999_880},
					{ID: uuid.New().String(), Channel: domain.ChannelTV, Vendor: "ESPN",
						AdUnit: "SportsCenter", CostMethod: domain.CostSpot, Rate: 5_000, Quantity: 20,
						TotalCost: 100_000, Status: domain.PlacementPaused, ForecastImpressions: 1_700_000,
						Performance: &domain.Performance{Impressions: 1_500_000, Clicks: 120, Spend: 80_000, Revenue: 200_000}},
				},
			},
			TotalSpend: 149_998, RemainingBudget: 350_002, Version: 4,
			GroupingMode: domain.GroupingDetailed, Strategy: domain.StrategyBalanced,
		},
	}
	s.Append(domain.Message{ID: uuid.New().String(), Role: domain.RoleAgent, Text: "Hi!",
		Timestamp: repoNow, SuggestedReplies: []string{"Create a plan for Acme ($500k)"}})
	s.Append(domain.Message{ID: uuid.New().String(), Role: domain.RoleUser, Text: "pause row 2",
		Timestamp: repoNow})
	s.Append(domain.Message{ID: uuid.New().String(), Role: domain.RoleAgent, Text: "Paused **ESPN SportsCenter** (row 2).",
		Timestamp: repoNow, Action: &domain.Action{Type: domain.ActionCreateFlight,
			Payload: map[string]string{"start": "2026-03-01", "end": "2026-05-31"}}})
	return s
}

func TestSessionRepo_SaveAndGetByID(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	s := storedSession()
	require.NoError(t, repo.Save(ctx, s))
	require.NoError(t, repo.AppendMessages(ctx, s.ID, s.History))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)

	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, domain.StageRefinement, got.Stage)
	require.NotNil(t, got.Plan)
	assert.Equal(t, "Acme", got.Plan.Campaign.Client)
	assert.InDelta(t, 500_000.0, got.Plan.Campaign.Budget, 0.001)
	assert.Equal(t, 4, got.Plan.Version)
	assert.Equal(t, domain.StrategyBalanced, got.Plan.Strategy)
	assert.Equal(t, s.Plan.Campaign.StartDate, got.Plan.Campaign.StartDate)

	// Placement order and fields survive the round trip.
	require.Len(t, got.Plan.Campaign.Placements, 2)
	first, second := got.Plan.Campaign.Placements[0], got.Plan.Campaign.Placements[1]
	assert.Equal(t, "Google", first.Vendor)
	assert.Equal(t, domain.CostCPC, first.CostMethod)
	assert.Nil(t, first.Performance)
	assert.Equal(t, "ESPN", second.Vendor)
	assert.Equal(t, domain.PlacementPaused, second.Status)
	require.NotNil(t, second.Performance)
	assert.InDelta(t, 200_000.0, second.Performance.Revenue, 0.001)

	// Messages come back in sequence order with replies and actions intact.
	require.Len(t, got.History, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{got.History[0].Seq, got.History[1].Seq, got.History[2].Seq})
	assert.Equal(t, domain.RoleUser, got.History[1].Role)
	assert.Equal(t, []string{"Create a plan for Acme ($500k)"}, got.History[0].SuggestedReplies)
	require.NotNil(t, got.History[2].Action)
	assert.Equal(t, domain.ActionCreateFlight, got.History[2].Action.Type)
	assert.Equal(t, "2026-03-01", got.History[2].Action.Payload["start"])
}

func TestSessionRepo_GetByID_Prefix(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	s := storedSession()
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.GetByID(ctx, s.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
}

func TestSessionRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t))
	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_SaveIsUpsert(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	s := storedSession()
	require.NoError(t, repo.Save(ctx, s))

	// Mutate, drop a placement, save again: the snapshot is replaced.
	s.Stage = domain.StageOptimization
	s.Plan.Version = 5
	s.Plan.Campaign.Placements = s.Plan.Campaign.Placements[:1]
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageOptimization, got.Stage)
	assert.Equal(t, 5, got.Plan.Version)
	assert.Len(t, got.Plan.Campaign.Placements, 1)
}

func TestSessionRepo_NilPlanClearsSnapshot(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	s := storedSession()
	require.NoError(t, repo.Save(ctx, s))

	s.Plan = nil
	s.Stage = domain.StageInit
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Plan)
}

func TestSessionRepo_LatestAndList(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	older := storedSession()
	older.UpdatedAt = repoNow.Add(-time.Hour)
	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.AppendMessages(ctx, older.ID, older.History))

	newer := storedSession()
	require.NoError(t, repo.Save(ctx, newer))

	got, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)

	summaries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, newer.ID, summaries[0].ID, "most recently updated first")
	assert.Equal(t, "Acme", summaries[0].Client)
	assert.Equal(t, 0, summaries[0].MessageCount)
	assert.Equal(t, 3, summaries[1].MessageCount)
}

func TestSessionRepo_LatestEmpty(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t))
	_, err := repo.Latest(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(database)
	ctx := context.Background()

	s := storedSession()
	require.NoError(t, repo.Save(ctx, s))
	require.NoError(t, repo.AppendMessages(ctx, s.ID, s.History))

	require.NoError(t, repo.Delete(ctx, s.ID))
	_, err := repo.GetByID(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Child rows go with the session.
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM placements`).Scan(&n))
	assert.Zero(t, n)
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM messages`).Scan(&n))
	assert.Zero(t, n)

	assert.ErrorIs(t, repo.Delete(ctx, s.ID), ErrNotFound)
}
