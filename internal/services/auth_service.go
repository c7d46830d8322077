package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/career-service/internal/models"
	"github.com/SAP-F-2025/career-service/internal/repositories"
	"github.com/SAP-F-2025/career-service/internal/utils"
	"github.com/SAP-F-2025/career-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	tokens    *utils.TokenIssuer
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(repo repositories.Repository, tokens *utils.TokenIssuer, logger *slog.Logger, validator *validator.Validator) AuthService {
	return &authService{
		repo:      repo,
		tokens:    tokens,
		logger:    logger,
		validator: validator,
	}
}

func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.User().ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailExists
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Email: req.Email, PasswordHash: hash}
	if err := s.repo.User().Create(ctx, user); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.InfoContext(ctx, "User registered", "user_id", user.ID)

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &models.RegisterResponse{Success: true, UserID: user.ID, Token: token}, nil
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.WarnContext(ctx, "Login rejected", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Success: true, UserID: user.ID, Email: user.Email, Token: token}, nil
}

// issueToken returns an empty token when no issuer is configured.
func (s *authService) issueToken(userID uint) (string, error) {
	if s.tokens == nil {
		return "", nil
	}
	token, err := s.tokens.GenerateToken(userID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}
