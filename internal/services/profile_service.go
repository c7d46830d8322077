package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/career-service/internal/ai"
	"github.com/SAP-F-2025/career-service/internal/events"
	"github.com/SAP-F-2025/career-service/internal/models"
	"github.com/SAP-F-2025/career-service/internal/repositories"
	"github.com/SAP-F-2025/career-service/internal/validator"
)

const profileSavedMessage = "Data saved successfully!"

type profileService struct {
	repo      repositories.Repository
	ai        ai.Client
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewProfileService(repo repositories.Repository, client ai.Client, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) ProfileService {
	return &profileService{
		repo:      repo,
		ai:        client,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *profileService) CheckProfile(ctx context.Context, userID uint) (bool, error) {
	exists, err := s.repo.Student().ExistsByUserID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check profile: %w", err)
	}
	return exists, nil
}

func (s *profileService) GetProfile(ctx context.Context, userID uint) (*models.StudentProfile, error) {
	profile, err := s.repo.Student().GetProfile(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) Submit(ctx context.Context, userID uint, req *models.ProfileSubmitRequest) (*models.ProfileSubmitResponse, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.Student().ExistsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check profile: %w", err)
	}
	if exists {
		return nil, ErrProfileExists
	}

	student := &models.Student{
		UserID:               userID,
		Name:                 req.Name,
		Email:                req.Email,
		HighestQualification: req.HighestQualification,
		FieldOfStudy:         req.FieldOfStudy,
		KnownSkills:          req.KnownSkills,
		CareerInterests:      req.CareerInterests,
		ExpectedSalary:       req.ExpectedSalary,
		PreferredJobLocation: req.PreferredJobLocation,
		Strengths:            req.Strengths,
		LongTermGoals:        req.LongTermGoals,
	}
	if err := s.repo.Student().Create(ctx, student); err != nil {
		switch {
		case repositories.IsDuplicateError(err):
			return nil, ErrProfileExists
		case repositories.IsForeignKeyError(err):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	s.logger.InfoContext(ctx, "Profile submitted", "user_id", userID, "student_id", student.ID)
	events.PublishSafe(ctx, s.publisher, s.logger,
		events.NewEvent(events.ProfileSubmitted, userID, events.ProfileEventData{StudentID: student.ID}))

	advice, err := generateAdvice(ctx, s.ai, student)
	if err != nil {
		s.logger.WarnContext(ctx, "Career analysis failed", "user_id", userID, "error", err)
		advice = careerAnalysisErrorPrefix + err.Error()
	} else {
		recordSummary(ctx, s.repo, s.logger, student, advice)
	}

	return &models.ProfileSubmitResponse{Message: profileSavedMessage, CareerAdvice: advice}, nil
}

func (s *profileService) Update(ctx context.Context, userID uint, req *models.ProfileUpdateRequest) (*models.StudentProfile, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	student, err := s.repo.Student().GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	applyProfileUpdate(student, req)
	if err := s.repo.Student().Update(ctx, student); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	events.PublishSafe(ctx, s.publisher, s.logger,
		events.NewEvent(events.ProfileUpdated, userID, events.ProfileEventData{StudentID: student.ID}))

	return s.GetProfile(ctx, userID)
}

func (s *profileService) Delete(ctx context.Context, userID uint) error {
	student, err := s.repo.Student().GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("failed to load profile: %w", err)
	}

	if err := s.repo.Student().DeleteByUserID(ctx, userID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	s.logger.InfoContext(ctx, "Profile deleted", "user_id", userID)
	events.PublishSafe(ctx, s.publisher, s.logger,
		events.NewEvent(events.ProfileDeleted, userID, events.ProfileEventData{StudentID: student.ID}))
	return nil
}

func applyProfileUpdate(student *models.Student, req *models.ProfileUpdateRequest) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&student.Name, req.Name)
	set(&student.Email, req.Email)
	set(&student.HighestQualification, req.HighestQualification)
	set(&student.FieldOfStudy, req.FieldOfStudy)
	set(&student.KnownSkills, req.KnownSkills)
	set(&student.CareerInterests, req.CareerInterests)
	set(&student.ExpectedSalary, req.ExpectedSalary)
	set(&student.PreferredJobLocation, req.PreferredJobLocation)
	set(&student.Strengths, req.Strengths)
	set(&student.LongTermGoals, req.LongTermGoals)
}
