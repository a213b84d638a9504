package session

import (
	"math/rand"
	"testing"
	"time"

	"github.com/planvox/planvox/internal/allocator"
	"github.com/planvox/planvox/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var engineNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func testEngine() *Engine {
	alloc := allocator.New(rand.New(rand.NewSource(42)))
	return NewEngine(alloc, WithClock(func() time.Time { return engineNow }))
}

func TestNewSession_GreetsInInit(t *testing.T) {
	s := testEngine().NewSession()

	assert.Equal(t, domain.StageInit, s.Stage)
	assert.Nil(t, s.Plan)
	require.Len(t, s.History, 1)
	assert.Equal(t, domain.RoleAgent, s.History[0].Role)
	assert.Equal(t, 1, s.History[0].Seq)
	assert.NotEmpty(t, s.History[0].SuggestedReplies)
}

func TestProcess_OneReplyPerTurn(t *testing.T) {
	e := testEngine()
	s := e.NewSession()

	e.Process(s, "Create a plan for Acme ($500k)")
	e.Process(s, "70/20/10")
	e.Process(s, "pause row 1")

	// Greeting plus two messages per turn, sequenced in insertion order.
	require.Len(t, s.History, 7)
	for i, msg := range s.History {
		assert.Equal(t, i+1, msg.Seq)
	}
	assert.Equal(t, domain.RoleUser, s.History[1].Role)
	assert.Equal(t, domain.RoleAgent, s.History[2].Role)
}

func TestProcess_InitCreatesPlanAndAdvances(t *testing.T) {
	e := testEngine()
	s := e.NewSession()

	reply := e.Process(s, "Create a plan for Acme ($500k)")

	assert.Equal(t, domain.StageBudgeting, s.Stage)
	require.NotNil(t, s.Plan)
	assert.Equal(t, "Acme", s.Plan.Campaign.Client)
	assert.InDelta(t, 500_000.0, s.Plan.Campaign.Budget, 0.001)
	assert.Empty(t, s.Plan.Campaign.Placements, "no line items until a strategy is chosen")
	assert.Equal(t, domain.StrategyBalanced, s.Plan.Strategy)

	// Flight defaults: two weeks out, 90 days long.
	assert.Equal(t, engineNow.Truncate(24*time.Hour).AddDate(0, 0, 14), s.Plan.Campaign.StartDate)
	assert.Equal(t, s.Plan.Campaign.StartDate.AddDate(0, 0, 90), s.Plan.Campaign.EndDate)

	require.NotNil(t, reply.Action)
	assert.Equal(t, domain.ActionCreateCampaign, reply.Action.Type)
	assert.Equal(t, "Acme", reply.Action.Payload["client"])
	assert.Contains(t, reply.Text, "$500,000")
}

func TestProcess_InitDefaultsBudgetAndClient(t *testing.T) {
	e := testEngine()
	s := e.NewSession()

	e.Process(s, "build a campaign")

	require.NotNil(t, s.Plan)
	assert.InDelta(t, 100_000.0, s.Plan.Campaign.Budget, 0.001)
	assert.Equal(t, "New Client", s.Plan.Campaign.Client)
	assert.Equal(t, domain.StageBudgeting, s.Stage)
}

func TestProcess_InitRepromptsOnSmallTalk(t *testing.T) {
	e := testEngine()
	s := e.NewSession()

	reply := e.Process(s, "hello")

	assert.Equal(t, domain.StageInit, s.Stage)
	assert.Nil(t, s.Plan)
	assert.Contains(t, reply.Text, "client and budget")
}

func TestProcess_BudgetingStrategyAllocates(t *testing.T) {
	e := testEngine()
	s := e.NewSession()
	e.Process(s, "Create a plan for Acme ($500k)")

	reply := e.Process(s, "70/20/10")

	assert.Equal(t, domain.StageRefinement, s.Stage)
	require.NotNil(t, s.Plan)
	assert.Equal(t, domain.StrategyBalanced, s.Plan.Strategy)
	assert.NotEmpty(t, s.Plan.Campaign.Placements)
	assert.InDelta(t, s.Plan.Campaign.Budget, s.Plan.TotalSpend+s.Plan.RemainingBudget, 0.01)
	assert.Contains(t, reply.Text, fmtCount(len(s.Plan.Campaign.Placements), "placement"))
}

func TestProcess_BudgetingDigitalStrategy(t *testing.T) {
	e := testEngine()
	s := e.NewSession()
	e.Process(s, "Create a plan for Acme ($500k)")

	e.Process(s, "go digital-heavy")

	assert.Equal(t, domain.StageRefinement, s.Stage)
	assert.Equal(t, domain.StrategyDigital, s.Plan.Strategy)
}

func TestProcess_BudgetingUnclearRepromptsWithoutAdvancing(t *testing.T) {
	e := testEngine()
	s := e.NewSession()
	e.Process(s, "Create a plan for Acme ($500k)")

	reply := e.Process(s, "hmm not sure")

	assert.Equal(t, domain.StageBudgeting, s.Stage)
	assert.Empty(t, s.Plan.Campaign.Placements)
	assert.Equal(t, domain.StrategyBalanced, s.Plan.Strategy)
	assert.Contains(t, reply.Text, "balanced")
}

func TestProcess_BudgetingConfirmAllocates(t *testing.T) {
	e := testEngine()
	s := e.NewSession()
	e.Process(s, "Create a plan for Acme ($500k)")
	e.Process(s, "hmm not sure")

	e.Process(s, "ok generate it")

	assert.Equal(t, domain.StageRefinement, s.Stage)
	assert.NotEmpty(t, s.Plan.Campaign.Placements)
}

func TestProcess_RouterCommandsInRefinement(t *testing.T) {
	e := testEngine()
	s := e.NewSession()
	e.Process(s, "Create a plan for Acme ($500k)")
	e.Process(s, "70/20/10")
	before := len(s.Plan.Campaign.Placements)
	version := s.Plan.Version

	reply := e.Process(s, "add ESPN SportsCenter")

	assert.Equal(t, domain.StageRefinement, s.Stage)
	assert.Len(t, s.Plan.Campaign.Placements, before+1)
	assert.Equal(t, version+1, s.Plan.Version)
	assert.Contains(t, reply.Text, "ESPN SportsCenter")
}

func TestProcess_OptimizeMovesToOptimization(t *testing.T) {
	e := testEngine()
	s := e.NewSession()
	e.Process(s, "Create a plan for Acme ($500k)")
	e.Process(s, "70/20/10")

	e.Process(s, "optimize the plan")

	assert.Equal(t, domain.StageOptimization, s.Stage)
}

func TestProcess_LayoutCommandIsStageNeutral(t *testing.T) {
	e := testEngine()
	s := e.NewSession()
	e.Process(s, "Create a plan for Acme ($500k)")
	e.Process(s, "70/20/10")
	version := s.Plan.Version

	reply := e.Process(s, "move the chat to the left")

	assert.Equal(t, domain.StageRefinement, s.Stage, "layout never advances the stage")
	assert.Equal(t, version, s.Plan.Version, "layout never touches the plan")
	require.NotNil(t, reply.Action)
	assert.Equal(t, domain.ActionLayoutLeft, reply.Action.Type)
}

func TestProcess_LayoutWorksInInit(t *testing.T) {
	e := testEngine()
	s := e.NewSession()

	reply := e.Process(s, "dock the panel at the bottom")

	assert.Equal(t, domain.StageInit, s.Stage)
	require.NotNil(t, reply.Action)
	assert.Equal(t, domain.ActionLayoutBottom, reply.Action.Type)
}

func TestProcess_FinishLocksThePlan(t *testing.T) {
	e := testEngine()
	s := e.NewSession()
	e.Process(s, "Create a plan for Acme ($500k)")
	e.Process(s, "70/20/10")

	reply := e.Process(s, "finish the plan")

	assert.Equal(t, domain.StageFinished, s.Stage)
	assert.NotNil(t, s.Plan, "the locked plan stays visible")
	assert.Contains(t, reply.Text, "Acme")
}

func TestProcess_FinishedResetsOnNextMessage(t *testing.T) {
	e := testEngine()
	s := e.NewSession()
	e.Process(s, "Create a plan for Acme ($500k)")
	e.Process(s, "70/20/10")
	e.Process(s, "finish the plan")

	reply := e.Process(s, "hello again")

	assert.Equal(t, domain.StageInit, s.Stage)
	assert.Nil(t, s.Plan)
	assert.Contains(t, reply.Text, "fresh plan")
}

func TestProcess_ChannelSelectionAllocates(t *testing.T) {
	e := testEngine()
	s := e.NewSession()
	e.Process(s, "Create a plan for Acme ($500k)")
	s.Stage = domain.StageChannelSelection

	e.Process(s, "proceed please")

	assert.Equal(t, domain.StageRefinement, s.Stage)
	assert.NotEmpty(t, s.Plan.Campaign.Placements)
}

func TestProcess_HelpFallbackInRefinement(t *testing.T) {
	e := testEngine()
	s := e.NewSession()
	e.Process(s, "Create a plan for Acme ($500k)")
	e.Process(s, "70/20/10")

	reply := e.Process(s, "what is the meaning of life")

	assert.Equal(t, domain.StageRefinement, s.Stage)
	assert.Contains(t, reply.Text, "didn't catch that")
	assert.NotEmpty(t, reply.SuggestedReplies)
}

func TestStartPlanned_OpensInRefinement(t *testing.T) {
	e := testEngine()
	s := e.StartPlanned("Northwind", 750_000, domain.StrategyAwareness)

	assert.Equal(t, domain.StageRefinement, s.Stage)
	require.NotNil(t, s.Plan)
	assert.Equal(t, "Northwind", s.Plan.Campaign.Client)
	assert.InDelta(t, 750_000.0, s.Plan.Campaign.Budget, 0.001)
	assert.Equal(t, domain.StrategyAwareness, s.Plan.Strategy)
	assert.NotEmpty(t, s.Plan.Campaign.Placements)
	require.Len(t, s.History, 1)
	assert.Equal(t, domain.RoleAgent, s.History[0].Role)
	assert.Contains(t, s.History[0].Text, "Northwind")
}
