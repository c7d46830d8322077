package gormdb

import (
	"fmt"

	"gorm.io/gorm"
)

// handleDBError wraps err with the failed operation, keeping gorm sentinels reachable.
func handleDBError(err error, operation string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s failed: %w", operation, err)
}

// threadOrder is the total order of messages inside a doubt.
func threadOrder(query *gorm.DB) *gorm.DB {
	return query.Order("created_at ASC").Order("id ASC")
}

func applyLimit(query *gorm.DB, limit int) *gorm.DB {
	if limit > 0 {
		query = query.Limit(limit)
	}
	return query
}
