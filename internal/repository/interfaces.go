package repository

import (
	"context"
	"errors"
	"time"

	"github.com/planvox/planvox/internal/domain"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// SessionSummary is the listing view of a stored conversation.
type SessionSummary struct {
	ID           string
	Stage        domain.Stage
	Client       string
	Budget       float64
	MessageCount int
	UpdatedAt    time.Time
}

// SessionRepo persists conversation snapshots. Save replaces the session,
// plan, and placement rows; messages are append-only and written separately
// so history is never rewritten.
type SessionRepo interface {
	Save(ctx context.Context, s *domain.Session) error
	AppendMessages(ctx context.Context, sessionID string, msgs []domain.Message) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	Latest(ctx context.Context) (*domain.Session, error)
	List(ctx context.Context) ([]SessionSummary, error)
	Delete(ctx context.Context, id string) error
}
