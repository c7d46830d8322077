package repositories

import (
	"context"

	"github.com/SAP-F-2025/career-service/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// StudentRepository stores the one-per-user profile.
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByUserID(ctx context.Context, userID uint) (*models.Student, error)
	// GetProfile joins the student with the owning account.
	GetProfile(ctx context.Context, userID uint) (*models.StudentProfile, error)
	ExistsByUserID(ctx context.Context, userID uint) (bool, error)
	Update(ctx context.Context, student *models.Student) error
	DeleteByUserID(ctx context.Context, userID uint) error
}

type CareerSummaryRepository interface {
	Create(ctx context.Context, summary *models.CareerSummary) error
	// ListByUser returns summaries newest first. A limit of 0 means no limit.
	ListByUser(ctx context.Context, userID uint, limit int) ([]*models.CareerSummary, error)
}
