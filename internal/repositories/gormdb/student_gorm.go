package gormdb

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/career-service/internal/cache"
	"github.com/SAP-F-2025/career-service/internal/models"
	"github.com/SAP-F-2025/career-service/internal/repositories"
)

type StudentGorm struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewStudentGorm(db *gorm.DB, cacheManager *cache.CacheManager) repositories.StudentRepository {
	return &StudentGorm{db: db, cacheManager: cacheManager}
}

// cachedProfile keeps both emails apart; StudentProfile's JSON shadows one of them.
type cachedProfile struct {
	Student      models.Student `json:"student"`
	AccountEmail string         `json:"account_email"`
}

func (s *StudentGorm) Create(ctx context.Context, student *models.Student) error {
	if err := s.db.WithContext(ctx).Create(student).Error; err != nil {
		return handleDBError(err, "create student")
	}
	s.cacheManager.InvalidateUser(ctx, student.UserID)
	return nil
}

func (s *StudentGorm) GetByUserID(ctx context.Context, userID uint) (*models.Student, error) {
	var student models.Student
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Take(&student).Error; err != nil {
		return nil, handleDBError(err, "get student")
	}
	return &student, nil
}

func (s *StudentGorm) GetProfile(ctx context.Context, userID uint) (*models.StudentProfile, error) {
	cached, err := cache.GetOrLoad(ctx, s.cacheManager.Profile, cache.ProfileKey(userID), cache.ProfileTTL,
		func() (cachedProfile, error) {
			var profile models.StudentProfile
			err := s.db.WithContext(ctx).
				Table("students").
				Select("students.*, users.email AS account_email").
				Joins("JOIN users ON users.id = students.user_id").
				Where("students.user_id = ?", userID).
				Take(&profile).Error
			if err != nil {
				return cachedProfile{}, handleDBError(err, "get student profile")
			}
			return cachedProfile{Student: profile.Student, AccountEmail: profile.AccountEmail}, nil
		})
	if err != nil {
		return nil, err
	}
	return &models.StudentProfile{Student: cached.Student, AccountEmail: cached.AccountEmail}, nil
}

func (s *StudentGorm) ExistsByUserID(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Student{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return false, handleDBError(err, "check student")
	}
	return count > 0, nil
}

func (s *StudentGorm) Update(ctx context.Context, student *models.Student) error {
	result := s.db.WithContext(ctx).Model(student).Select(
		"name", "email", "highest_qualification", "field_of_study", "known_skills",
		"career_interests", "expected_salary", "preferred_job_location",
		"strengths", "long_term_goals", "updated_at",
	).Updates(student)
	if result.Error != nil {
		return handleDBError(result.Error, "update student")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "update student")
	}
	s.cacheManager.InvalidateUser(ctx, student.UserID)
	return nil
}

func (s *StudentGorm) DeleteByUserID(ctx context.Context, userID uint) error {
	result := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Student{})
	if result.Error != nil {
		return handleDBError(result.Error, "delete student")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete student")
	}
	s.cacheManager.InvalidateUser(ctx, userID)
	return nil
}
