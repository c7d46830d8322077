package gormdb

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/career-service/internal/models"
	"github.com/SAP-F-2025/career-service/internal/repositories"
)

type CareerSummaryGorm struct {
	db *gorm.DB
}

func NewCareerSummaryGorm(db *gorm.DB) repositories.CareerSummaryRepository {
	return &CareerSummaryGorm{db: db}
}

func (c *CareerSummaryGorm) Create(ctx context.Context, summary *models.CareerSummary) error {
	return handleDBError(c.db.WithContext(ctx).Create(summary).Error, "create career summary")
}

func (c *CareerSummaryGorm) ListByUser(ctx context.Context, userID uint, limit int) ([]*models.CareerSummary, error) {
	var summaries []*models.CareerSummary
	err := applyLimit(
		c.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC"),
		limit,
	).Find(&summaries).Error
	if err != nil {
		return nil, handleDBError(err, "list career summaries")
	}
	return summaries, nil
}
