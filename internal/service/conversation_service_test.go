package service

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/planvox/planvox/internal/allocator"
	"github.com/planvox/planvox/internal/domain"
	"github.com/planvox/planvox/internal/repository"
	"github.com/planvox/planvox/internal/session"
	"github.com/planvox/planvox/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var svcNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func testService(t *testing.T) ConversationService {
	t.Helper()
	database := testutil.NewTestDB(t)
	engine := session.NewEngine(
		allocator.New(rand.New(rand.NewSource(42))),
		session.WithClock(func() time.Time { return svcNow }),
	)
	return NewConversationService(engine,
		repository.NewSQLiteSessionRepo(database),
		testutil.NewTestUoW(database))
}

func TestStart_PersistsGreeting(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	s, err := svc.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StageInit, s.Stage)

	got, err := svc.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageInit, got.Stage)
	require.Len(t, got.History, 1)
	assert.Equal(t, domain.RoleAgent, got.History[0].Role)
}

func TestHandleTurn_PersistsTurnAtomically(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	s, err := svc.Start(ctx)
	require.NoError(t, err)

	reply, err := svc.HandleTurn(ctx, s, "Create a plan for Acme ($500k)")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAgent, reply.Role)
	assert.Equal(t, 3, reply.Seq)

	got, err := svc.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageBudgeting, got.Stage)
	require.NotNil(t, got.Plan)
	assert.Equal(t, "Acme", got.Plan.Campaign.Client)
	require.Len(t, got.History, 3, "greeting plus exactly the turn's two messages")
	assert.Equal(t, "Create a plan for Acme ($500k)", got.History[1].Text)
}

func TestHandleTurn_FullWorkflowSurvivesRestore(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	s, err := svc.Start(ctx)
	require.NoError(t, err)
	_, err = svc.HandleTurn(ctx, s, "Create a plan for Acme ($500k)")
	require.NoError(t, err)
	_, err = svc.HandleTurn(ctx, s, "70/20/10")
	require.NoError(t, err)
	_, err = svc.HandleTurn(ctx, s, "pause row 2")
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageRefinement, got.Stage)
	require.NotNil(t, got.Plan)
	assert.Equal(t, len(s.Plan.Campaign.Placements), len(got.Plan.Campaign.Placements))
	assert.Equal(t, s.Plan.Version, got.Plan.Version)
	assert.Equal(t, domain.PlacementPaused, got.Plan.Campaign.Placements[1].Status)
	assert.Len(t, got.History, 7)

	// A restored session keeps working where it left off.
	_, err = svc.HandleTurn(ctx, got, "resume row 2")
	require.NoError(t, err)
	assert.Equal(t, domain.PlacementActive, got.Plan.Campaign.Placements[1].Status)
}

func TestStartWithPlan(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	s, err := svc.StartWithPlan(ctx, "Northwind", 750_000, domain.StrategyDigital)
	require.NoError(t, err)
	assert.Equal(t, domain.StageRefinement, s.Stage)

	got, err := svc.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Plan)
	assert.Equal(t, "Northwind", got.Plan.Campaign.Client)
	assert.Equal(t, domain.StrategyDigital, got.Plan.Strategy)
	assert.NotEmpty(t, got.Plan.Campaign.Placements)
}

func TestLatestAndListAndDelete(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	first, err := svc.Start(ctx)
	require.NoError(t, err)
	second, err := svc.StartWithPlan(ctx, "Acme", 250_000, domain.StrategyBalanced)
	require.NoError(t, err)

	summaries, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, summaries, 2)

	require.NoError(t, svc.Delete(ctx, first.ID))
	summaries, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, second.ID, summaries[0].ID)

	got, err := svc.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
}
