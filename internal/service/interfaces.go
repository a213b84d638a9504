package service

import (
	"context"

	"github.com/planvox/planvox/internal/domain"
	"github.com/planvox/planvox/internal/repository"
)

// ConversationService runs conversations and keeps their stored snapshots in
// step with every turn.
type ConversationService interface {
	// Start creates and persists a fresh session in INIT.
	Start(ctx context.Context) (*domain.Session, error)
	// StartWithPlan creates a session seeded with an already-built plan,
	// beginning in REFINEMENT (the wizard path).
	StartWithPlan(ctx context.Context, client string, budget float64, strategy domain.Strategy) (*domain.Session, error)
	// HandleTurn processes one operator message and persists the outcome
	// atomically. The session is updated in place.
	HandleTurn(ctx context.Context, s *domain.Session, text string) (domain.Message, error)
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	Latest(ctx context.Context) (*domain.Session, error)
	List(ctx context.Context) ([]repository.SessionSummary, error)
	Delete(ctx context.Context, id string) error
}
