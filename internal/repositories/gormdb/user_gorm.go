package gormdb

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/career-service/internal/models"
	"github.com/SAP-F-2025/career-service/internal/repositories"
)

type UserGorm struct {
	db *gorm.DB
}

func NewUserGorm(db *gorm.DB) repositories.UserRepository {
	return &UserGorm{db: db}
}

func (u *UserGorm) Create(ctx context.Context, user *models.User) error {
	return handleDBError(u.db.WithContext(ctx).Create(user).Error, "create user")
}

func (u *UserGorm) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, handleDBError(err, "get user")
	}
	return &user, nil
}

func (u *UserGorm) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).Where("email = ?", email).Take(&user).Error; err != nil {
		return nil, handleDBError(err, "get user by email")
	}
	return &user, nil
}

func (u *UserGorm) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := u.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, handleDBError(err, "check user email")
	}
	return count > 0, nil
}
