package service

import (
	"context"
	"fmt"

	"github.com/planvox/planvox/internal/db"
	"github.com/planvox/planvox/internal/domain"
	"github.com/planvox/planvox/internal/repository"
	"github.com/planvox/planvox/internal/session"
)

type conversationService struct {
	engine   *session.Engine
	sessions repository.SessionRepo
	uow      db.UnitOfWork
}

// NewConversationService wires the interpreter engine to the session store.
func NewConversationService(engine *session.Engine, sessions repository.SessionRepo, uow db.UnitOfWork) ConversationService {
	return &conversationService{engine: engine, sessions: sessions, uow: uow}
}

func (c *conversationService) Start(ctx context.Context) (*domain.Session, error) {
	s := c.engine.NewSession()
	if err := c.persist(ctx, s, s.History); err != nil {
		return nil, err
	}
	return s, nil
}

func (c *conversationService) StartWithPlan(ctx context.Context, client string, budget float64, strategy domain.Strategy) (*domain.Session, error) {
	s := c.engine.StartPlanned(client, budget, strategy)
	if err := c.persist(ctx, s, s.History); err != nil {
		return nil, err
	}
	return s, nil
}

// HandleTurn processes one message and snapshots the result. The session
// row, plan, and placements are rewritten and the turn's two messages are
// appended inside a single transaction, so a stored session can always be
// restored to exactly what the operator last saw.
func (c *conversationService) HandleTurn(ctx context.Context, s *domain.Session, text string) (domain.Message, error) {
	before := len(s.History)
	reply := c.engine.Process(s, text)

	if err := c.persist(ctx, s, s.History[before:]); err != nil {
		return domain.Message{}, fmt.Errorf("persisting turn: %w", err)
	}
	return reply, nil
}

func (c *conversationService) persist(ctx context.Context, s *domain.Session, newMsgs []domain.Message) error {
	return c.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteSessionRepo(tx)
		if err := repo.Save(ctx, s); err != nil {
			return err
		}
		return repo.AppendMessages(ctx, s.ID, newMsgs)
	})
}

func (c *conversationService) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	return c.sessions.GetByID(ctx, id)
}

func (c *conversationService) Latest(ctx context.Context) (*domain.Session, error) {
	return c.sessions.Latest(ctx)
}

func (c *conversationService) List(ctx context.Context) ([]repository.SessionSummary, error) {
	return c.sessions.List(ctx)
}

func (c *conversationService) Delete(ctx context.Context, id string) error {
	return c.sessions.Delete(ctx, id)
}
