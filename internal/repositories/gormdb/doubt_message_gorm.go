package gormdb

import (
	"context"
	"slices"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/career-service/internal/models"
	"github.com/SAP-F-2025/career-service/internal/repositories"
)

type DoubtMessageGorm struct {
	db *gorm.DB
}

func NewDoubtMessageGorm(db *gorm.DB) repositories.DoubtMessageRepository {
	return &DoubtMessageGorm{db: db}
}

func (m *DoubtMessageGorm) Create(ctx context.Context, message *models.DoubtMessage) error {
	return handleDBError(m.db.WithContext(ctx).Create(message).Error, "create doubt message")
}

func (m *DoubtMessageGorm) ListByDoubt(ctx context.Context, doubtID uint) ([]*models.DoubtMessage, error) {
	var messages []*models.DoubtMessage
	err := threadOrder(m.db.WithContext(ctx).Where("doubt_id = ?", doubtID)).Find(&messages).Error
	if err != nil {
		return nil, handleDBError(err, "list doubt messages")
	}
	return messages, nil
}

func (m *DoubtMessageGorm) ListRecent(ctx context.Context, doubtID uint, limit int) ([]*models.DoubtMessage, error) {
	var messages []*models.DoubtMessage
	err := applyLimit(
		m.db.WithContext(ctx).Where("doubt_id = ?", doubtID).Order("created_at DESC").Order("id DESC"),
		limit,
	).Find(&messages).Error
	if err != nil {
		return nil, handleDBError(err, "list recent doubt messages")
	}
	slices.Reverse(messages)
	return messages, nil
}

func (m *DoubtMessageGorm) ListByDoubts(ctx context.Context, doubtIDs []uint) ([]*models.DoubtMessage, error) {
	if len(doubtIDs) == 0 {
		return nil, nil
	}
	var messages []*models.DoubtMessage
	err := m.db.WithContext(ctx).
		Where("doubt_id IN ?", doubtIDs).
		Order("doubt_id ASC").Order("created_at ASC").Order("id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, handleDBError(err, "list messages for doubts")
	}
	return messages, nil
}
