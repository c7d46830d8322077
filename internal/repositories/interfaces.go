package repositories

import (
	"context"

	"github.com/SAP-F-2025/career-service/internal/models"
)

type DoubtFilters struct {
	Status *models.DoubtStatus
}

type DoubtRepository interface {
	Create(ctx context.Context, doubt *models.Doubt) error
	GetByID(ctx context.Context, id uint) (*models.Doubt, error)
	// ListByUser returns the user's doubts ordered by updated_at DESC.
	ListByUser(ctx context.Context, userID uint, filters DoubtFilters) ([]*models.Doubt, error)
	Resolve(ctx context.Context, id uint, notes *string) error
	Touch(ctx context.Context, id uint) error
}

// DoubtMessageRepository returns thread messages in (created_at, id) ascending order.
type DoubtMessageRepository interface {
	Create(ctx context.Context, message *models.DoubtMessage) error
	ListByDoubt(ctx context.Context, doubtID uint) ([]*models.DoubtMessage, error)
	// ListRecent returns the last limit messages, still in chronological order.
	ListRecent(ctx context.Context, doubtID uint, limit int) ([]*models.DoubtMessage, error)
	ListByDoubts(ctx context.Context, doubtIDs []uint) ([]*models.DoubtMessage, error)
}
