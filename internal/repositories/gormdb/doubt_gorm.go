package gormdb

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/career-service/internal/models"
	"github.com/SAP-F-2025/career-service/internal/repositories"
)

type DoubtGorm struct {
	db *gorm.DB
}

func NewDoubtGorm(db *gorm.DB) repositories.DoubtRepository {
	return &DoubtGorm{db: db}
}

func (d *DoubtGorm) Create(ctx context.Context, doubt *models.Doubt) error {
	if doubt.Status == "" {
		doubt.Status = models.DoubtOpen
	}
	return handleDBError(d.db.WithContext(ctx).Omit("Messages").Create(doubt).Error, "create doubt")
}

func (d *DoubtGorm) GetByID(ctx context.Context, id uint) (*models.Doubt, error) {
	var doubt models.Doubt
	if err := d.db.WithContext(ctx).First(&doubt, id).Error; err != nil {
		return nil, handleDBError(err, "get doubt")
	}
	return &doubt, nil
}

func (d *DoubtGorm) ListByUser(ctx context.Context, userID uint, filters repositories.DoubtFilters) ([]*models.Doubt, error) {
	query := d.db.WithContext(ctx).Where("user_id = ?", userID)
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	var doubts []*models.Doubt
	if err := query.Order("updated_at DESC").Order("id DESC").Find(&doubts).Error; err != nil {
		return nil, handleDBError(err, "list doubts")
	}
	return doubts, nil
}

func (d *DoubtGorm) Resolve(ctx context.Context, id uint, notes *string) error {
	result := d.db.WithContext(ctx).Model(&models.Doubt{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":           models.DoubtResolved,
		"resolution_notes": notes,
		"updated_at":       time.Now(),
	})
	if result.Error != nil {
		return handleDBError(result.Error, "resolve doubt")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "resolve doubt")
	}
	return nil
}

func (d *DoubtGorm) Touch(ctx context.Context, id uint) error {
	err := d.db.WithContext(ctx).Model(&models.Doubt{}).Where("id = ?", id).Update("updated_at", time.Now()).Error
	return handleDBError(err, "touch doubt")
}
