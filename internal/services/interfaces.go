package services

import (
	"context"
	"io"

	"github.com/SAP-F-2025/career-service/internal/models"
)

// ===== SERVICE INTERFACES =====

// AuthService owns account registration and credential checks.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

// ProfileService manages the one-per-user student profile.
type ProfileService interface {
	CheckProfile(ctx context.Context, userID uint) (bool, error)
	GetProfile(ctx context.Context, userID uint) (*models.StudentProfile, error)
	// Submit stores a new profile and returns career advice for it. Advice
	// failures are reported in the advice text, never as an error.
	Submit(ctx context.Context, userID uint, req *models.ProfileSubmitRequest) (*models.ProfileSubmitResponse, error)
	Update(ctx context.Context, userID uint, req *models.ProfileUpdateRequest) (*models.StudentProfile, error)
	Delete(ctx context.Context, userID uint) error
}

type CareerService interface {
	Summary(ctx context.Context, userID uint) (*models.CareerSummaryResponse, error)
	History(ctx context.Context, userID uint) ([]models.CareerSummaryItem, error)
	Chat(ctx context.Context, userID uint, message string) (string, error)
}

// DoubtService runs the doubt threads. Every operation is scoped to the owning user.
type DoubtService interface {
	Create(ctx context.Context, userID uint, req *models.CreateDoubtRequest) (*models.Doubt, error)
	List(ctx context.Context, userID uint, status string) ([]models.DoubtListItem, error)
	Get(ctx context.Context, userID, doubtID uint) (*models.DoubtDetailResponse, error)
	Reply(ctx context.Context, userID, doubtID uint, req *models.ReplyDoubtRequest) (*models.ReplyDoubtResponse, error)
	Resolve(ctx context.Context, userID, doubtID uint, req *models.ResolveDoubtRequest) error
	// Export writes the user's doubts and messages as an xlsx workbook.
	Export(ctx context.Context, userID uint, w io.Writer) error
}

type ServiceManager interface {
	Auth() AuthService
	Profile() ProfileService
	Career() CareerService
	Doubt() DoubtService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
